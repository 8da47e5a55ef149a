// Package field holds the scalar field resources consumed by volumetric
// properties and level sets, together with VolumeData.
//
// Fields reference other resources by local id inside their own model part.
// References are checked by Validate, never when they are set, so a reader
// can build resources in document order.
package field
