package main

import (
	"os"

	"github.com/jitsuin-inc/archivist-go/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
