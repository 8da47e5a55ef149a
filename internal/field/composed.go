package field

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/vk/threemf/internal/resource"
)

// Composed combines two fields, optionally gated by a mask field.
type Composed struct {
	resource.Base

	method  Method
	field1  Reference
	field2  Reference
	mask    *Reference
	factor1 float64
	factor2 float64
}

// NewComposed creates a composed field and registers it in m. Factors
// default to 1.
func NewComposed(m *resource.Model, id resource.ModelResourceID, method Method) (*Composed, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCompositionMethod, method)
	}
	base, err := m.NewBase(id)
	if err != nil {
		return nil, err
	}
	c := &Composed{Base: base, method: method, factor1: 1, factor2: 1}
	if err := m.Add(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Composed) Kind() Kind            { return KindComposed }
func (c *Composed) Method() Method        { return c.method }
func (c *Composed) Field1() Reference     { return c.field1 }
func (c *Composed) Field2() Reference     { return c.field2 }
func (c *Composed) Factor1() float64      { return c.factor1 }
func (c *Composed) Factor2() float64      { return c.factor2 }
func (c *Composed) SetField1(r Reference) { c.field1 = r }
func (c *Composed) SetField2(r Reference) { c.field2 = r }
func (c *Composed) SetFactor1(f float64)  { c.factor1 = f }
func (c *Composed) SetFactor2(f float64)  { c.factor2 = f }
func (c *Composed) SetMask(r Reference)   { c.mask = &r }
func (c *Composed) ClearMask()            { c.mask = nil }

// Mask returns the mask reference and whether one is set.
func (c *Composed) Mask() (Reference, bool) {
	if c.mask == nil {
		return Reference{}, false
	}
	return *c.mask, true
}

func (c *Composed) SetMethod(m Method) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidCompositionMethod, m)
	}
	c.method = m
	return nil
}

// Validate checks the method, that both inputs (and the mask for
// MethodMask) resolve to scalar fields of the same part, and that the
// composition does not feed back into itself.
func (c *Composed) Validate() error {
	var result *multierror.Error
	pid := c.PackageResourceID()
	if !c.method.Valid() {
		result = multierror.Append(result, fmt.Errorf("resource %s: %w: %s", pid, ErrInvalidCompositionMethod, c.method))
	}
	for i, ref := range []Reference{c.field1, c.field2} {
		if !ref.IsSet() {
			result = multierror.Append(result, fmt.Errorf("resource %s: %w: field%d is not set", pid, resource.ErrInvalidModelResource, i+1))
			continue
		}
		if _, err := resolveField(c, ref.ID); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if c.method == MethodMask {
		if c.mask == nil || !c.mask.IsSet() {
			result = multierror.Append(result, fmt.Errorf("resource %s: %w", pid, ErrMaskRequired))
		} else if _, err := resolveField(c, c.mask.ID); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := c.checkAcyclic(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// Dependencies lists the registered fields this composition reads.
func (c *Composed) Dependencies() []*resource.PackageResourceID {
	return dependencies(c, c.referencedIDs()...)
}

func (c *Composed) referencedIDs() []resource.ModelResourceID {
	ids := []resource.ModelResourceID{c.field1.ID, c.field2.ID}
	if c.mask != nil && c.method == MethodMask {
		ids = append(ids, c.mask.ID)
	}
	return ids
}

func (c *Composed) checkAcyclic() error {
	const (
		visiting = 1
		done     = 2
	)
	marks := make(map[*Composed]int)
	var walk func(cur *Composed) error
	walk = func(cur *Composed) error {
		marks[cur] = visiting
		for _, id := range cur.referencedIDs() {
			if id == 0 {
				continue
			}
			sf, err := resolveField(cur, id)
			if err != nil {
				continue
			}
			next, ok := sf.(*Composed)
			if !ok {
				continue
			}
			switch marks[next] {
			case visiting:
				return fmt.Errorf("resource %s: %w: composed field %s reads itself",
					c.PackageResourceID(), resource.ErrCircularDependency, next.PackageResourceID())
			case 0:
				if err := walk(next); err != nil {
					return err
				}
			}
		}
		marks[cur] = done
		return nil
	}
	return walk(c)
}
