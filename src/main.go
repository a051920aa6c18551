package main

import (
	"github.com/eriklarko/truth-table/src/cli"
)

func main() {
	cli.Execute()
}
