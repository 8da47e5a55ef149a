package resource

import "fmt"

// ModelResourceID is the id of a resource inside one model part.
type ModelResourceID uint32

// UniqueResourceID is the id of a resource across the whole package.
type UniqueResourceID uint32

// PackageResourceID locates a resource both locally and package-wide.
type PackageResourceID struct {
	path     string
	modelID  ModelResourceID
	uniqueID UniqueResourceID
}

// Path is the part path the resource lives in.
func (p *PackageResourceID) Path() string { return p.path }

// ModelResourceID is the local id within Path.
func (p *PackageResourceID) ModelResourceID() ModelResourceID { return p.modelID }

// UniqueID is the package-wide id.
func (p *PackageResourceID) UniqueID() UniqueResourceID { return p.uniqueID }

func (p *PackageResourceID) String() string {
	return fmt.Sprintf("%s#%d", p.path, p.modelID)
}

type localKey struct {
	path string
	id   ModelResourceID
}
