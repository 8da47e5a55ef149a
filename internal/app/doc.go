// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the check lifecycle (load, validate, sort,
// report), decoupled from any specific entrypoint like a CLI.
package app
