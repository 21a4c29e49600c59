package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/uievent/cmd/uievent"
	"github.com/arthur-debert/uievent/internal/version"
)

func main() {
	rootCmd := uievent.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "UIEVENT",
		Section: "1",
		Source:  "uievent " + version.Version,
		Manual:  "uievent manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
