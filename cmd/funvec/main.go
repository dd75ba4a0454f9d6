package main

import (
	"github.com/funvibe/funvec/pkg/cli"
)

func main() {
	cli.Run()
}
