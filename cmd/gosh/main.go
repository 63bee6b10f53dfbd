package main

import (
	"github.com/Paintersrp/gosh/internal/cli"
)

func main() {
	cli.Execute()
}
