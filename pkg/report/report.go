// Package report renders scenario results.
//
// Results can be written as styled terminal output, plain text, JSON or
// JUnit XML. FormatAuto picks between the first two from the destination,
// see Resolve.
package report

import (
	"io"

	"github.com/arthur-debert/uievent/pkg/errors"
	"github.com/arthur-debert/uievent/pkg/logging"
	"github.com/arthur-debert/uievent/pkg/registry"
	"github.com/arthur-debert/uievent/pkg/scenario"
)

// Options controls rendering
type Options struct {
	// Format must be concrete; resolve FormatAuto first
	Format Format
	// Width wraps failure messages in term and text output; 0 disables
	Width int
	// Suite names the top-level JUnit element
	Suite string
}

type renderFunc func(w io.Writer, results []*scenario.Result, opts Options) error

var renderers = newRenderers()

func newRenderers() registry.Registry[renderFunc] {
	r := registry.New[renderFunc]()
	registry.MustRegister(r, FormatTerminal.String(), renderTerm)
	registry.MustRegister(r, FormatText.String(), renderText)
	registry.MustRegister(r, FormatJSON.String(), renderJSON)
	registry.MustRegister(r, FormatJUnit.String(), renderJUnit)
	return r
}

// Render writes results to w in the requested format
func Render(w io.Writer, results []*scenario.Result, opts Options) error {
	logger := logging.GetLogger("report")

	fn, err := renderers.Get(opts.Format.String())
	if err != nil {
		return errors.Newf(errors.ErrInvalidInput, "no renderer for format %s", opts.Format)
	}
	if opts.Suite == "" {
		opts.Suite = "uievent"
	}

	logger.Debug().Str("format", opts.Format.String()).Int("scenarios", len(results)).Msg("Rendering report")
	if err := fn(w, results, opts); err != nil {
		return errors.Wrapf(err, errors.ErrReportRender, "failed to render %s report", opts.Format)
	}
	return nil
}
