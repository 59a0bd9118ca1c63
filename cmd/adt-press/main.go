package main

import (
	"fmt"
	"os"

	"github.com/Eliezir/adt-press/cmd/adt-press/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
