package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/uievent/cmd/uievent"
	"github.com/arthur-debert/uievent/pkg/errors"
	"github.com/arthur-debert/uievent/pkg/report"
)

func main() {
	rootCmd := uievent.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := report.DefaultStyles().Get("Fail")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))

		// A failing run already printed its report
		if !errors.IsErrorCode(err, errors.ErrScenarioFailed) {
			fmt.Fprintln(os.Stderr)
			_ = rootCmd.Usage()
		}

		os.Exit(1)
	}
}
