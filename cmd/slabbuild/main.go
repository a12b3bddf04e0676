package main

import (
	"os"

	"github.com/psantana5/slabbuild/cmd/slabbuild/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
