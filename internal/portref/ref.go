package portref

import (
	"errors"
	"fmt"
	"strings"
)

const separator = "."

var (
	// ErrMissingNode is returned when a reference has no node part.
	ErrMissingNode = errors.New("reference has no node identifier")
	// ErrMissingPort is returned when a reference has no port part.
	ErrMissingPort = errors.New("reference has no port identifier")
)

// Ref is the structured form of a "<node>.<port>" reference.
type Ref struct {
	Node string
	Port string
}

// New builds a reference from its parts.
func New(node, port string) Ref {
	return Ref{Node: node, Port: port}
}

// Parse splits raw at its last dot.
func Parse(raw string) (Ref, error) {
	i := strings.LastIndex(raw, separator)
	if i < 0 {
		if raw == "" {
			return Ref{}, ErrMissingNode
		}
		return Ref{}, fmt.Errorf("%q: %w", raw, ErrMissingPort)
	}
	ref := Ref{Node: raw[:i], Port: raw[i+1:]}
	if ref.Node == "" {
		return Ref{}, fmt.Errorf("%q: %w", raw, ErrMissingNode)
	}
	if ref.Port == "" {
		return Ref{}, fmt.Errorf("%q: %w", raw, ErrMissingPort)
	}
	return ref, nil
}

// String serializes the reference into its canonical form.
func (r Ref) String() string {
	return r.Node + separator + r.Port
}

// IsZero reports whether r is the empty reference.
func (r Ref) IsZero() bool {
	return r.Node == "" && r.Port == ""
}
