package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/arthur-debert/uievent/pkg/scenario"
	"github.com/beevik/etree"
)

// renderJUnit writes one testsuite per scenario and one testcase per
// variant. Each failing step becomes a failure element.
func renderJUnit(w io.Writer, results []*scenario.Result, opts Options) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	summary := scenario.Summarize(results)
	root := doc.CreateElement("testsuites")
	root.CreateAttr("name", opts.Suite)
	root.CreateAttr("tests", itoa(summary.Variants))
	root.CreateAttr("failures", itoa(summary.FailedVariants))

	for _, r := range results {
		var total time.Duration
		suite := root.CreateElement("testsuite")
		suite.CreateAttr("name", r.Scenario)
		suite.CreateAttr("tests", itoa(len(r.Variants)))
		suite.CreateAttr("failures", itoa(r.FailedVariants()))
		if r.Source != "" {
			suite.CreateAttr("file", r.Source)
		}

		for _, v := range r.Variants {
			total += v.Duration
			tc := suite.CreateElement("testcase")
			tc.CreateAttr("classname", r.Scenario)
			tc.CreateAttr("name", v.Name)
			tc.CreateAttr("time", seconds(v.Duration))
			for _, s := range v.FailedSteps() {
				failure := tc.CreateElement("failure")
				failure.CreateAttr("message", fmt.Sprintf("step %d (%s)", s.Index, s.Label))
				failure.CreateAttr("type", s.Op)
				failure.SetText(strings.Join(s.Failures, "\n"))
			}
		}
		suite.CreateAttr("time", seconds(total))
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.6f", d.Seconds())
}
