// Package hclmodel reads model descriptions written in HCL into a
// resource.Model.
//
// A description is a set of top-level blocks, each declaring one resource
// with an explicit local id:
//
//	function "gyroid" {
//	  id = 1
//	  input "pos" { type = vector }
//	  output "shape" {
//	    type      = scalar
//	    reference = add.result
//	  }
//	  node "constant" "c1" { value = 2 }
//	  node "addition" "add" {
//	    inputs = { A = c1.value, B = c1.value }
//	  }
//	}
//
//	levelset "part" {
//	  id       = 3
//	  function = 1
//	  mesh     = 2
//	}
//
// Port references are written as traversals (c1.value, inputs.pos) or as
// strings when a node identifier contains dots. They are stored without
// being resolved; the loader only reports problems it can see locally, and
// graph-level checks are left to the resources' own validation.
package hclmodel
