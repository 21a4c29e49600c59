package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/uievent/pkg/scenario"
	"github.com/muesli/reflow/wordwrap"
)

// painter styles the pieces of a report line. The text renderer uses the
// identity painter.
type painter struct {
	pass, fail, scenario, variant, muted func(string) string
	failure                              func(string) string
}

func plainPainter(width int) painter {
	id := func(s string) string { return s }
	return painter{
		pass: id, fail: id, scenario: id, variant: id, muted: id,
		failure: func(s string) string { return indent(wrap(s, width-6), "      ") },
	}
}

func renderText(w io.Writer, results []*scenario.Result, opts Options) error {
	return writeResults(w, results, plainPainter(opts.Width), summaryLine)
}

func writeResults(w io.Writer, results []*scenario.Result, p painter, summary func(scenario.Summary) string) error {
	var b strings.Builder
	for _, r := range results {
		status := p.pass("PASS")
		if !r.Passed() {
			status = p.fail("FAIL")
		}
		fmt.Fprintf(&b, "%s %s %s\n", status, p.scenario(r.Scenario),
			p.muted(fmt.Sprintf("(%d variant(s))", len(r.Variants))))
		if r.Passed() {
			continue
		}
		for _, v := range r.Variants {
			vstatus := p.pass("ok")
			if !v.Passed() {
				vstatus = p.fail("failed")
			}
			fmt.Fprintf(&b, "  %s %s\n", p.variant(v.Name), vstatus)
			for _, s := range v.FailedSteps() {
				fmt.Fprintf(&b, "    step %d (%s)\n", s.Index, s.Label)
				for _, f := range s.Failures {
					fmt.Fprintf(&b, "%s\n", p.failure(f))
				}
			}
		}
	}
	b.WriteString(summary(scenario.Summarize(results)))
	_, err := io.WriteString(w, b.String())
	return err
}

func summaryLine(s scenario.Summary) string {
	verdict := "PASS"
	if !s.Passed() {
		verdict = "FAIL"
	}
	return fmt.Sprintf("%s: %d scenario(s), %d failed; %d variant(s), %d failed; %d step(s), %d failed\n",
		verdict, s.Scenarios, s.FailedScenarios, s.Variants, s.FailedVariants, s.Steps, s.FailedSteps)
}

// wrap breaks s into lines of at most width cells at spaces. A width
// below 20 leaves s unchanged.
func wrap(s string, width int) string {
	if width < 20 {
		return s
	}
	return wordwrap.String(s, width)
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
