// Package main is the entry point for fauna, a command-line tool that keeps a
// collection of animals and scores them against a point table.
package main

import "github.com/incognito1025/fauna-go/cmd"

func main() {
	cmd.Execute()
}
