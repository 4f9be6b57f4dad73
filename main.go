// Package main is the entry point for the counterpart CLI.
package main

import "counterpart.dev/pkg/counterpart/cmd"

func main() {
	cmd.Execute()
}
