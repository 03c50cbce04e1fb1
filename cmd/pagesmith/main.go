package main

import (
	"errors"
	"fmt"
	"os"
)

var exit = os.Exit

func main() {
	root := newRootCmd(newApp(os.Stdout, os.Stderr))
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'pagesmith --help' for usage.")
		}
		exit(1)
	}
}
