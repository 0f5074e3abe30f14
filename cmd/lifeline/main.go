package main

import (
	"os"

	"lifeline/internal/cli"
)

func main() {
	os.Exit(cli.Main())
}
