package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/arthur-debert/uievent/pkg/errors"
	"github.com/arthur-debert/uievent/pkg/event"
	"github.com/arthur-debert/uievent/pkg/logging"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/arthur-debert/uievent/pkg/scenario"

// Sender is the identity a scenario sender name resolves to. Each variant
// run allocates its own senders, so identity never leaks across runs.
type Sender struct{ Name string }

func (s *Sender) String() string {
	if s == nil {
		return "<nil>"
	}
	return s.Name
}

// Args is the value fires carry when a variant has args enabled
type Args struct{ Variant string }

func (a *Args) String() string {
	if a == nil {
		return "<nil>"
	}
	return "args(" + a.Variant + ")"
}

// Options configures a Runner
type Options struct {
	// StopOnFailure ends a variant at its first failing step
	StopOnFailure bool
	// Tracer overrides the global OpenTelemetry tracer
	Tracer trace.Tracer
}

// Runner executes scenarios
type Runner struct {
	opts   Options
	tracer trace.Tracer
	log    zerolog.Logger
}

// NewRunner creates a Runner
func NewRunner(opts Options) *Runner {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &Runner{
		opts:   opts,
		tracer: tracer,
		log:    logging.GetLogger("scenario"),
	}
}

// RunAll runs every scenario in order. It stops early only when ctx is
// cancelled.
func (rn *Runner) RunAll(ctx context.Context, scenarios []*Scenario) ([]*Result, error) {
	results := make([]*Result, 0, len(scenarios))
	for _, sc := range scenarios {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, rn.Run(ctx, sc))
	}
	return results, nil
}

// Run executes every variant of the scenario against a fresh registry
func (rn *Runner) Run(ctx context.Context, sc *Scenario) *Result {
	ctx, span := rn.tracer.Start(ctx, "scenario "+sc.Name,
		trace.WithAttributes(attribute.String("scenario.name", sc.Name)))
	defer span.End()

	done := logging.LogOperationStart(rn.log, "scenario "+sc.Name)
	defer done()

	res := &Result{Scenario: sc.Name, Description: sc.Description, Source: sc.Source}
	for _, v := range sc.EffectiveVariants() {
		res.Variants = append(res.Variants, rn.runVariant(ctx, sc, v))
	}

	if !res.Passed() {
		span.SetStatus(codes.Error, fmt.Sprintf("%d variant(s) failed", res.FailedVariants()))
		rn.log.Info().Str("scenario", sc.Name).Int("failed", res.FailedVariants()).Msg("Scenario failed")
	} else {
		rn.log.Debug().Str("scenario", sc.Name).Msg("Scenario passed")
	}
	return res
}

func (rn *Runner) runVariant(ctx context.Context, sc *Scenario, v Variant) VariantResult {
	_, span := rn.tracer.Start(ctx, "variant "+v.Name, trace.WithAttributes(
		attribute.String("variant.name", v.Name),
		attribute.Bool("variant.global", v.Global),
		attribute.Bool("variant.args", v.Args),
	))
	defer span.End()

	start := time.Now()
	r := newRun(v)
	vr := VariantResult{Name: v.Name, Global: v.Global, Args: v.Args}

	for i, s := range sc.Steps {
		sr := rn.runStep(r, i, s)
		vr.Steps = append(vr.Steps, sr)
		if !sr.Passed() {
			for _, f := range sr.Failures {
				span.AddEvent("step failure", trace.WithAttributes(
					attribute.Int("step.index", sr.Index),
					attribute.String("step.label", sr.Label),
					attribute.String("failure", f),
				))
			}
			if rn.opts.StopOnFailure {
				break
			}
		}
	}
	r.close()

	vr.Duration = time.Since(start)
	if !vr.Passed() {
		span.SetStatus(codes.Error, "variant failed")
	}
	return vr
}

func (rn *Runner) runStep(r *run, i int, s Step) (sr StepResult) {
	sr = StepResult{Index: i + 1, Op: s.Op, Label: s.Describe()}
	r.failures = nil

	defer func() {
		if p := recover(); p != nil {
			r.failf("handler panicked: %v", p)
		}
		sr.Failures = r.failures
	}()

	op, err := operations.Get(s.Op)
	if err != nil {
		r.failf("%v", err)
		return sr
	}

	err = op(r, s)
	rn.log.Trace().Int("step", sr.Index).Str("op", s.Op).Err(err).Msg("Step applied")

	switch {
	case s.ExpectError != "" && err == nil:
		r.failf("expected error %s, got none", s.ExpectError)
	case s.ExpectError != "" && string(errors.GetErrorCode(err)) != s.ExpectError:
		r.failf("expected error %s, got %v", s.ExpectError, err)
	case s.ExpectError == "" && err != nil:
		r.failf("unexpected error: %v", err)
	}
	return sr
}

// slot is a named handler position in a scenario. A slot can be added,
// deleted and added again; each add mints a new registry id.
type slot struct {
	name       string
	id         int
	registered bool
	owner      *run

	gotRun    bool
	gotSender *Sender
	gotArgs   *Args
}

func (h *slot) record(sender *Sender, args *Args) {
	h.gotRun = true
	h.gotSender = sender
	h.gotArgs = args
	h.owner.runs++
	h.owner.calls = append(h.owner.calls, h.name)
}

func (h *slot) reset() {
	h.gotRun = false
	h.gotSender = nil
	h.gotArgs = nil
}

// run is the state of one variant execution
type run struct {
	variant Variant
	event   *event.Event[*Sender, *Args]
	freed   bool
	args    *Args
	senders map[string]*Sender
	slots   map[string]*slot
	names   []string

	// runs and calls cover the current fire step; calls is in dispatch order
	runs     int
	calls    []string
	failures []string
}

func newRun(v Variant) *run {
	r := &run{
		variant: v,
		event:   event.New[*Sender, *Args](event.Options{Global: v.Global}),
		senders: make(map[string]*Sender),
		slots:   make(map[string]*slot),
	}
	if v.Args {
		r.args = &Args{Variant: v.Name}
	}
	return r
}

// sender resolves a sender name. An empty name is the null sender on a
// global variant and the default sender otherwise.
func (r *run) sender(name string) *Sender {
	if name == NullSender {
		return nil
	}
	if name == "" {
		if r.variant.Global {
			return nil
		}
		name = DefaultSender
	}
	s, ok := r.senders[name]
	if !ok {
		s = &Sender{Name: name}
		r.senders[name] = s
	}
	return s
}

func (r *run) slot(name string) *slot {
	h, ok := r.slots[name]
	if !ok {
		h = &slot{name: name, owner: r}
		r.slots[name] = h
		r.names = append(r.names, name)
	}
	return h
}

func (r *run) failf(format string, args ...interface{}) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func (r *run) close() {
	if r.freed {
		return
	}
	_ = r.event.Free()
	r.freed = true
}
