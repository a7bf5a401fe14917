// lmread - Binary Log Packet Reader
//
// lmread decodes binary log packet files found under one or more directories
// and prints their contents in file-name order.
package main

import (
	"os"

	"github.com/ccollicutt/lmread/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
