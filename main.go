// Copyright © 2025 The pycheck authors

package main

import "github.com/luthersystems/pycheck/cmd"

func main() {
	cmd.Execute()
}
