package main

import (
	"os"

	"github.com/echoflaresat/earthframes/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
