package main

import (
	"os"

	"github.com/woelper/taskmonger/internal/cli"
)

func main() {
	code := cli.Run(os.Args[1:])
	os.Exit(code)
}
