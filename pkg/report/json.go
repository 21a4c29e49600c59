package report

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/uievent/pkg/scenario"
)

type jsonReport struct {
	Summary scenario.Summary   `json:"summary"`
	Results []*scenario.Result `json:"results"`
}

func renderJSON(w io.Writer, results []*scenario.Result, _ Options) error {
	if results == nil {
		results = []*scenario.Result{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(jsonReport{Summary: scenario.Summarize(results), Results: results})
}
