package main

import (
	"os"

	"github.com/ates/study/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
