package main

import (
	"github.com/mvp-joe/codescope/internal/cli"
)

func main() {
	cli.Execute()
}
