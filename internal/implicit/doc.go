// Package implicit models implicit function graphs: typed, named-port dataflow
// graphs whose nodes compute scalar, vector and matrix fields used by level
// set objects.
//
// # Structure
//
// A Function owns an ordered list of Nodes plus its own boundary input and
// output Ports. Each Node owns the input and output Ports prescribed for its
// NodeType by the node type registry; ports are created when the node is added.
//
// # Links
//
// Links are stored as text on the consuming port: an input port's reference
// is "<node>.<port>" naming the output that feeds it. The reserved node
// identifier "inputs" addresses the function's boundary inputs and "outputs"
// its boundary outputs, so a function result is wired with
// AddLink("add.result", "outputs.shape").
//
// References are resolved on demand and cached until the graph changes, which
// lets a reader set a reference before the referenced node exists. ResolveAll
// checks every reference at once and reports all failures together;
// SortNodesTopologically requires a fully resolvable, acyclic graph.
//
// # Lifecycle
//
//	Empty -> Building -> Validated -> Sorted
//
// Any structural change (adding or removing nodes, ports or links) moves the
// function back to Building.
//
// A Function is not safe for concurrent mutation.
package implicit
