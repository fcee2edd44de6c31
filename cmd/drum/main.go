// Package main provides the drum CLI.
package main

import "github.com/mesh-intelligence/drum/internal/cli"

func main() {
	cli.Execute()
}
