package field

import (
	"fmt"
	"strings"
)

// Method is how a composed field combines its two inputs.
type Method int

const (
	MethodWeightedSum Method = iota
	MethodMultiply
	MethodMin
	MethodMax
	MethodMask
)

var methodNames = [...]string{
	MethodWeightedSum: "weightedsum",
	MethodMultiply:    "multiply",
	MethodMin:         "min",
	MethodMax:         "max",
	MethodMask:        "mask",
}

func (m Method) String() string {
	if m >= 0 && int(m) < len(methodNames) {
		return methodNames[m]
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// Valid reports whether m is one of the known methods.
func (m Method) Valid() bool {
	return m >= 0 && int(m) < len(methodNames)
}

// MethodFromString parses a method name, ignoring case.
func MethodFromString(s string) (Method, error) {
	for i, name := range methodNames {
		if strings.EqualFold(s, name) {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCompositionMethod, s)
}

// ColorChannel selects one channel of an image.
type ColorChannel int

const (
	ChannelRed ColorChannel = iota
	ChannelGreen
	ChannelBlue
	ChannelAlpha
)

var channelNames = [...]string{
	ChannelRed:   "R",
	ChannelGreen: "G",
	ChannelBlue:  "B",
	ChannelAlpha: "A",
}

func (c ColorChannel) String() string {
	if c >= 0 && int(c) < len(channelNames) {
		return channelNames[c]
	}
	return fmt.Sprintf("ColorChannel(%d)", int(c))
}

// ChannelFromString parses "R", "G", "B" or "A", ignoring case.
func ChannelFromString(s string) (ColorChannel, error) {
	for i, name := range channelNames {
		if strings.EqualFold(s, name) {
			return ColorChannel(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidColorChannel, s)
}
