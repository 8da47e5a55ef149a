// Package resource is the model-wide resource table.
//
// A 3MF package may contain several model parts. Inside one part resources
// are numbered with local ModelResourceIDs; across the whole package every
// resource also gets a UniqueResourceID. A PackageResourceID ties the two
// together with the part path, and the Model resolves (path, local id) pairs
// to resources.
//
// # Lifecycle
//
//  1. A Model is created for the root part path.
//  2. Readers or builders reserve ids with NewBase and register resources with Add.
//  3. Consumers resolve references through FindPackageResourceID / Find.
//  4. Writers ask SortedResources for a dependency-respecting emission order.
//
// The Model is not safe for concurrent mutation; documents are built and
// validated on a single goroutine.
package resource
