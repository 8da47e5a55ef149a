// Package portref parses and formats the textual link references used by
// implicit function graphs.
//
// A reference has the form "<node>.<port>". The port part is everything after
// the last dot and the node part is everything before it, so node identifiers
// may themselves contain dots ("group.add.result" names port "result" of node
// "group.add"). Port identifiers never contain dots.
package portref
