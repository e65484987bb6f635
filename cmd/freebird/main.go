package main

import "github.com/dgallion1/freebird/internal/cli"

func main() {
	cli.Execute()
}
