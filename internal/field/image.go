package field

import (
	"fmt"

	"github.com/vk/threemf/internal/geom"
	"github.com/vk/threemf/internal/resource"
)

// Image3D is a stack of image sheets addressed by a FromImage3D field.
type Image3D struct {
	resource.Base
	Name   string
	Sheets []string
}

// NewImage3D creates an image stack and registers it in m.
func NewImage3D(m *resource.Model, id resource.ModelResourceID, name string, sheets ...string) (*Image3D, error) {
	base, err := m.NewBase(id)
	if err != nil {
		return nil, err
	}
	img := &Image3D{Base: base, Name: name, Sheets: sheets}
	if err := m.Add(img); err != nil {
		return nil, err
	}
	return img, nil
}

// FromImage3D reads one color channel of an image stack, remapped by
// Scale and Offset.
type FromImage3D struct {
	resource.Base
	ImageID   resource.ModelResourceID
	Channel   ColorChannel
	Transform geom.Matrix4x4
	Scale     float64
	Offset    float64
}

// NewFromImage3D creates an image-backed field and registers it in m.
func NewFromImage3D(m *resource.Model, id, image resource.ModelResourceID, channel ColorChannel) (*FromImage3D, error) {
	base, err := m.NewBase(id)
	if err != nil {
		return nil, err
	}
	f := &FromImage3D{Base: base, ImageID: image, Channel: channel, Transform: geom.Identity(), Scale: 1}
	if err := m.Add(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *FromImage3D) Kind() Kind { return KindImage3D }

func (f *FromImage3D) Validate() error {
	pid := f.PackageResourceID()
	if f.Channel < ChannelRed || f.Channel > ChannelAlpha {
		return fmt.Errorf("resource %s: %w: %s", pid, ErrInvalidColorChannel, f.Channel)
	}
	if f.ImageID == 0 {
		return fmt.Errorf("resource %s: %w: image is not set", pid, resource.ErrInvalidModelResource)
	}
	r, err := f.Model().Resolve(pid.Path(), f.ImageID)
	if err != nil {
		return err
	}
	if _, ok := r.(*Image3D); !ok {
		return &resource.Error{Path: pid.Path(), ID: f.ImageID, Err: fmt.Errorf("%w: not an image stack", resource.ErrUnknownModelResource)}
	}
	return nil
}

func (f *FromImage3D) Dependencies() []*resource.PackageResourceID {
	return dependencies(f, f.ImageID)
}
