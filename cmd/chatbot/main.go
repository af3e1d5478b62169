package main

import (
	"os"

	"github.com/vijayhiremath01/ChatBot/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
