package main

import (
	"os"

	"github.com/institutions-in-your-pocket/overview/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], cli.Options{}))
}
