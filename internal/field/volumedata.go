package field

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/vk/threemf/internal/implicit"
	"github.com/vk/threemf/internal/resource"
)

// Property is a named volumetric property driven by a function channel.
type Property struct {
	Name     string
	Function FunctionReference
	Required bool
}

// VolumeData attaches volumetric color and properties to an object.
type VolumeData struct {
	resource.Base

	color      *FunctionReference
	properties []Property
}

// NewVolumeData creates empty volume data and registers it in m.
func NewVolumeData(m *resource.Model, id resource.ModelResourceID) (*VolumeData, error) {
	base, err := m.NewBase(id)
	if err != nil {
		return nil, err
	}
	v := &VolumeData{Base: base}
	if err := m.Add(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Color returns the color reference and whether one is set.
func (v *VolumeData) Color() (FunctionReference, bool) {
	if v.color == nil {
		return FunctionReference{}, false
	}
	return *v.color, true
}

func (v *VolumeData) SetColor(ref FunctionReference) { v.color = &ref }
func (v *VolumeData) ClearColor()                    { v.color = nil }

// Properties returns the properties in insertion order.
func (v *VolumeData) Properties() []Property {
	return append([]Property(nil), v.properties...)
}

// AddProperty appends a property. Names are unique.
func (v *VolumeData) AddProperty(p Property) error {
	if p.Name == "" {
		return fmt.Errorf("resource %s: %w: empty property name", v.PackageResourceID(), implicit.ErrInvalidIdentifier)
	}
	if _, ok := v.FindProperty(p.Name); ok {
		return fmt.Errorf("resource %s: %w: %q", v.PackageResourceID(), ErrDuplicateProperty, p.Name)
	}
	v.properties = append(v.properties, p)
	return nil
}

// FindProperty looks a property up by name.
func (v *VolumeData) FindProperty(name string) (Property, bool) {
	for _, p := range v.properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// RemoveProperty deletes the named property and reports whether it existed.
func (v *VolumeData) RemoveProperty(name string) bool {
	for i, p := range v.properties {
		if p.Name == name {
			v.properties = append(v.properties[:i], v.properties[i+1:]...)
			return true
		}
	}
	return false
}

// Validate checks every function reference. The color channel must be a
// vector output, property channels scalar outputs.
func (v *VolumeData) Validate() error {
	var result *multierror.Error
	if v.color != nil {
		if _, err := v.color.Resolve(v, implicit.PortVector); err != nil {
			result = multierror.Append(result, fmt.Errorf("color: %w", err))
		}
	}
	for _, p := range v.properties {
		if _, err := p.Function.Resolve(v, implicit.PortScalar); err != nil {
			result = multierror.Append(result, fmt.Errorf("property %q: %w", p.Name, err))
		}
	}
	return result.ErrorOrNil()
}

// Dependencies lists the functions referenced by color and properties.
func (v *VolumeData) Dependencies() []*resource.PackageResourceID {
	var ids []resource.ModelResourceID
	if v.color != nil {
		ids = append(ids, v.color.FunctionID)
	}
	for _, p := range v.properties {
		ids = append(ids, p.Function.FunctionID)
	}
	return dependencies(v, ids...)
}
