package report

import (
	"fmt"
	"io"

	"github.com/arthur-debert/uievent/pkg/scenario"
	"github.com/pterm/pterm"
)

func termPainter(styles Styles, width int) painter {
	render := func(name string) func(string) string {
		style := styles.Get(name)
		return func(s string) string { return style.Render(s) }
	}
	failure := styles.Get("Failure")
	if width > 0 {
		failure = failure.Width(width - failure.GetMarginLeft())
	}
	return painter{
		pass:     render("Pass"),
		fail:     render("Fail"),
		scenario: render("Scenario"),
		variant:  render("Variant"),
		muted:    render("Muted"),
		failure:  func(s string) string { return failure.Render(s) },
	}
}

func renderTerm(w io.Writer, results []*scenario.Result, opts Options) error {
	styles := DefaultStyles()
	var tableErr error
	err := writeResults(w, results, termPainter(styles, opts.Width), func(s scenario.Summary) string {
		table, err := summaryTable(s)
		if err != nil {
			tableErr = err
			return ""
		}
		verdict := styles.Get("Pass").Render("all scenarios passed")
		if !s.Passed() {
			verdict = styles.Get("Fail").Render(fmt.Sprintf("%d scenario(s) failed", s.FailedScenarios))
		}
		return styles.Get("Summary").Render(verdict) + "\n" + table
	})
	if err != nil {
		return err
	}
	return tableErr
}

func summaryTable(s scenario.Summary) (string, error) {
	data := pterm.TableData{
		{"", "Total", "Passed", "Failed"},
		{"Scenarios", itoa(s.Scenarios), itoa(s.Scenarios - s.FailedScenarios), itoa(s.FailedScenarios)},
		{"Variants", itoa(s.Variants), itoa(s.Variants - s.FailedVariants), itoa(s.FailedVariants)},
		{"Steps", itoa(s.Steps), itoa(s.Steps - s.FailedSteps), itoa(s.FailedSteps)},
	}
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
}

func itoa(n int) string { return fmt.Sprintf("%d", n) }
