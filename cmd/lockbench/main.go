package main

import (
	"github.com/llxisdsh/lockbench/cmd/lockbench/cmd"
)

func main() {
	cmd.Execute()
}
