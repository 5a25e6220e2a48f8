package main

import (
	"os"

	"github.com/ariel-frischer/relnotes/internal/cli/hello"
)

func main() {
	os.Exit(hello.Execute())
}
