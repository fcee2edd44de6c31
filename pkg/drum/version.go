// Package drum holds project-wide identifiers for the drum game.
package drum

// Version is the current release of the drum CLI.
const Version = "0.1.0"

// ModulePath is the Go module path of the project.
const ModulePath = "github.com/mesh-intelligence/drum"
