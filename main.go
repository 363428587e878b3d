package main

import (
	"os"

	"github.com/abhisek/speakflow/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
