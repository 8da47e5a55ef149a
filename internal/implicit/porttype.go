package implicit

import (
	"fmt"
	"reflect"

	"github.com/vk/threemf/internal/resource"
	"github.com/zclconf/go-cty/cty"
)

// PortType is the kind of value a port carries.
type PortType int

const (
	PortScalar PortType = iota
	PortVector
	PortMatrix
	PortResourceID
)

var portTypeNames = map[PortType]string{
	PortScalar:     "scalar",
	PortVector:     "vector",
	PortMatrix:     "matrix",
	PortResourceID: "resourceid",
}

// resourceIDType marks values holding a model resource id.
var resourceIDType = cty.Capsule("resource id", reflect.TypeOf(resource.ModelResourceID(0)))

func (t PortType) String() string {
	if name, ok := portTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("PortType(%d)", int(t))
}

// CtyType is the value shape a port of this type carries.
func (t PortType) CtyType() cty.Type {
	switch t {
	case PortScalar:
		return cty.Number
	case PortVector:
		return cty.List(cty.Number)
	case PortMatrix:
		return cty.List(cty.List(cty.Number))
	case PortResourceID:
		return resourceIDType
	default:
		return cty.DynamicPseudoType
	}
}

// PortTypeFromString parses the lowercase port type keyword.
func PortTypeFromString(s string) (PortType, error) {
	for t, name := range portTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown port type %q", s)
}

// Direction tells whether a port consumes or produces a value.
type Direction int

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Input {
		return "input"
	}
	return "output"
}
