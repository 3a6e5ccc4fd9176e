package main

import "github.com/tmcampos/biblioteca/internal/cli"

func main() {
	cli.Execute()
}
