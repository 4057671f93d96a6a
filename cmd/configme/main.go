package main

import (
	"os"

	"github.com/goodwillcoding/configme/internal/cli"
)

func main() {
	os.Exit(cli.NewRunner().Run(os.Args[1:]))
}
