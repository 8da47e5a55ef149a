// Package object implements the model objects a build refers to: meshes,
// component assemblies and level sets.
//
// Object is a closed set of variants. Callers dispatch on Kind, or use a
// type switch over *MeshObject, *ComponentsObject and *LevelSetObject.
package object
