package main

import (
	"fmt"
	"os"

	"github.com/shivasurya/code-pathfinder/pycpg/cmd"
)

var (
	Version   = "dev"
	GitCommit = "none"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Git Commit: %s\n", GitCommit)
		return
	}
	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
