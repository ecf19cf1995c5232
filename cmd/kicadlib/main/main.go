package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/kicadlib/cmd/kicadlib"
	"github.com/arthur-debert/kicadlib/pkg/style"
)

func main() {
	rootCmd := kicadlib.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
