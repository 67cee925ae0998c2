package main

import (
	"os"

	"github.com/nekores/compressifypro/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
