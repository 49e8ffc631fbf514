package main

import (
	"os"

	"agency/internal/cli"
)

func main() { os.Exit(cli.Main()) }
