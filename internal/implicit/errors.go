package implicit

import (
	"errors"
	"strings"
)

// Sentinel errors for graph construction and validation.
var (
	// ErrUnknownNodeType is returned when a node type has no registry entry.
	ErrUnknownNodeType = errors.New("unknown implicit node type")

	// ErrInvalidConfiguration is returned when a node type does not offer the
	// requested configuration.
	ErrInvalidConfiguration = errors.New("configuration not supported by node type")

	// ErrInvalidLiteralAccess is returned when a literal getter or setter does
	// not match the node type, or a literal is read before it was set.
	ErrInvalidLiteralAccess = errors.New("invalid literal access")

	// ErrInvalidLiteralValue is returned when a literal has the wrong shape.
	ErrInvalidLiteralValue = errors.New("invalid literal value")

	ErrInvalidSourceNode = errors.New("invalid source node")
	ErrInvalidTargetNode = errors.New("invalid target node")
	ErrInvalidSourcePort = errors.New("invalid source port")
	ErrInvalidTargetPort = errors.New("invalid target port")

	// ErrDuplicateNodeIdentifier is returned when a node identifier is
	// already used in the function.
	ErrDuplicateNodeIdentifier = errors.New("duplicate node identifier")

	// ErrDuplicatePortIdentifier is returned when a port identifier is
	// already used in the same input or output set.
	ErrDuplicatePortIdentifier = errors.New("duplicate port identifier")

	// ErrReservedIdentifier is returned for node identifiers that collide
	// with the function boundary namespaces.
	ErrReservedIdentifier = errors.New("reserved identifier")

	// ErrInvalidIdentifier is returned for empty identifiers and port
	// identifiers containing the reference separator.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrNodeNotFound is returned when removing a node that does not exist.
	ErrNodeNotFound = errors.New("node not found")

	// ErrUnresolvedReference is returned when a port's reference does not
	// name an existing port.
	ErrUnresolvedReference = errors.New("referenced port is not set")

	// ErrUnconnectedPort is returned when an input has no reference at all.
	ErrUnconnectedPort = errors.New("port is not connected")

	// ErrPortTypeMismatch is returned when a link joins ports of different types.
	ErrPortTypeMismatch = errors.New("port type mismatch")

	// ErrInvalidPorts is returned when a node's ports do not match the
	// registry contract for its type.
	ErrInvalidPorts = errors.New("ports do not match node type")

	// ErrCircularReference is returned when the graph contains a cycle.
	ErrCircularReference = errors.New("circular reference")
)

// GraphError locates a failure inside a function graph.
type GraphError struct {
	Function  string
	Node      string
	Port      string
	Reference string
	Err       error
}

func (e *GraphError) Error() string {
	var sb strings.Builder
	if e.Function != "" {
		sb.WriteString("function " + quote(e.Function) + ": ")
	}
	if e.Node != "" {
		sb.WriteString("node " + quote(e.Node) + ": ")
	}
	if e.Port != "" {
		sb.WriteString("port " + quote(e.Port) + ": ")
	}
	if e.Reference != "" {
		sb.WriteString("reference " + quote(e.Reference) + ": ")
	}
	sb.WriteString(e.Err.Error())
	return sb.String()
}

func (e *GraphError) Unwrap() error {
	return e.Err
}

func quote(s string) string {
	return "'" + s + "'"
}
