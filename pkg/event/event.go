package event

import (
	"slices"

	"github.com/arthur-debert/uievent/pkg/errors"
	"github.com/arthur-debert/uievent/pkg/logging"
	"github.com/rs/zerolog"
)

// Handler is called when the event fires for a matching sender.
// Any state the handler needs is captured by the closure.
type Handler[S comparable, A any] func(sender S, args A)

// Options configures a new Event
type Options struct {
	// Global makes every fire reach every unblocked handler,
	// whatever sender it was fired with.
	Global bool
}

type entry[S comparable, A any] struct {
	id      int
	fn      Handler[S, A]
	sender  S
	blocked bool
}

// Event is a registry of handlers for one logical event.
// The zero value of S is the null sender.
type Event[S comparable, A any] struct {
	global      bool
	entries     map[int]*entry[S, A]
	order       []int
	invalidated map[S]struct{}
	nextID      int
	firing      int
	freed       bool
	log         zerolog.Logger
}

// New creates an empty event registry
func New[S comparable, A any](opts Options) *Event[S, A] {
	e := &Event[S, A]{
		global:      opts.Global,
		entries:     make(map[int]*entry[S, A]),
		invalidated: make(map[S]struct{}),
		log:         logging.GetLogger("event"),
	}
	e.log.Trace().Bool("global", e.global).Msg("Event created")
	return e
}

// Free releases the registry. Every handler id becomes invalid and
// all further calls fail.
func (e *Event[S, A]) Free() error {
	if err := e.checkLive("free"); err != nil {
		return err
	}
	if e.firing > 0 {
		return e.violation(errors.New(errors.ErrEventFiring, "cannot free an event while it is firing"))
	}
	if n := len(e.order); n > 0 {
		e.log.Debug().Int("handlers", n).Msg("Freeing event with handlers still registered")
	}
	e.freed = true
	e.entries = nil
	e.order = nil
	e.invalidated = nil
	e.log.Trace().Msg("Event freed")
	return nil
}

// AddHandler registers fn for sender and returns the new handler's id.
// The handler starts unblocked and runs after every handler already
// registered. On a global event the sender is ignored.
func (e *Event[S, A]) AddHandler(fn Handler[S, A], sender S) (int, error) {
	if err := e.checkLive("add handler"); err != nil {
		return 0, err
	}
	if fn == nil {
		return 0, e.violation(errors.New(errors.ErrNilHandler, "handler function is required"))
	}
	if e.global {
		var zero S
		sender = zero
	} else if isZero(sender) {
		return 0, e.violation(errors.New(errors.ErrNilSender, "sender is required for a non-global event"))
	}

	e.nextID++
	h := &entry[S, A]{
		id:     e.nextID,
		fn:     fn,
		sender: sender,
	}
	e.entries[h.id] = h
	e.order = append(e.order, h.id)

	e.log.Trace().Int("id", h.id).Int("handlers", len(e.order)).Msg("Handler added")
	return h.id, nil
}

// DeleteHandler removes the handler with the given id.
// The relative order of the remaining handlers is unchanged.
func (e *Event[S, A]) DeleteHandler(id int) error {
	if _, err := e.lookup(id, "delete handler"); err != nil {
		return err
	}
	delete(e.entries, id)
	if i := slices.Index(e.order, id); i >= 0 {
		e.order = slices.Delete(e.order, i, i+1)
	}
	e.log.Trace().Int("id", id).Int("handlers", len(e.order)).Msg("Handler deleted")
	return nil
}

// SetHandlerBlocked blocks or unblocks a handler. A blocked handler stays
// registered but is skipped by Fire.
func (e *Event[S, A]) SetHandlerBlocked(id int, blocked bool) error {
	h, err := e.lookup(id, "set handler blocked")
	if err != nil {
		return err
	}
	h.blocked = blocked
	e.log.Trace().Int("id", id).Bool("blocked", blocked).Msg("Handler block state set")
	return nil
}

// HandlerBlocked reports whether the handler is blocked
func (e *Event[S, A]) HandlerBlocked(id int) (bool, error) {
	h, err := e.lookup(id, "query handler blocked")
	if err != nil {
		return false, err
	}
	return h.blocked, nil
}

// InvalidateSender stops every future Fire with sender from running any
// handler. Registrations bound to sender are kept. There is no way back.
func (e *Event[S, A]) InvalidateSender(sender S) error {
	if err := e.checkLive("invalidate sender"); err != nil {
		return err
	}
	if isZero(sender) {
		return e.violation(errors.New(errors.ErrNilSender, "cannot invalidate the null sender"))
	}
	e.invalidated[sender] = struct{}{}
	e.log.Trace().Msg("Sender invalidated")
	return nil
}

// Invalidated reports whether sender has been invalidated
func (e *Event[S, A]) Invalidated(sender S) bool {
	_, ok := e.invalidated[sender]
	return ok
}

// Fire runs, in registration order, every unblocked handler whose sender
// matches. Handlers run synchronously; a panicking handler stops the
// dispatch and the panic reaches the caller.
func (e *Event[S, A]) Fire(sender S, args A) error {
	if err := e.checkLive("fire"); err != nil {
		return err
	}
	if !e.global && isZero(sender) {
		return e.violation(errors.New(errors.ErrNilSender, "sender is required to fire a non-global event"))
	}
	if _, ok := e.invalidated[sender]; ok {
		e.log.Trace().Msg("Fire skipped for invalidated sender")
		return nil
	}

	snapshot := slices.Clone(e.order)
	e.firing++
	defer func() { e.firing-- }()

	ran := 0
	for _, id := range snapshot {
		h, ok := e.entries[id]
		if !ok || h.blocked {
			continue
		}
		if !e.global && h.sender != sender {
			continue
		}
		h.fn(sender, args)
		ran++
	}

	e.log.Trace().Int("ran", ran).Int("handlers", len(snapshot)).Msg("Event fired")
	return nil
}

// Global reports whether the event ignores senders
func (e *Event[S, A]) Global() bool {
	return e.global
}

// Len returns the number of registered handlers
func (e *Event[S, A]) Len() int {
	return len(e.order)
}

// Firing reports whether a Fire call is in progress
func (e *Event[S, A]) Firing() bool {
	return e.firing > 0
}

func (e *Event[S, A]) lookup(id int, op string) (*entry[S, A], error) {
	if err := e.checkLive(op); err != nil {
		return nil, err
	}
	h, ok := e.entries[id]
	if !ok {
		return nil, e.violation(errors.Newf(errors.ErrUnknownHandler, "%s: handler %d is not registered", op, id).
			WithDetail("id", id))
	}
	return h, nil
}

func (e *Event[S, A]) checkLive(op string) error {
	if e.freed {
		return e.violation(errors.Newf(errors.ErrEventFreed, "%s: event has been freed", op))
	}
	return nil
}

func (e *Event[S, A]) violation(err *errors.Error) error {
	err.WithDetail("global", e.global)
	e.log.Debug().Err(err).Str("code", string(err.Code)).Msg("Event contract violation")
	return err
}

func isZero[S comparable](s S) bool {
	var zero S
	return s == zero
}

// Must panics if err is non-nil. Use it where a contract violation
// should abort the caller, as in toolkit initialization code.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// MustAddHandler is AddHandler that panics on a contract violation
func MustAddHandler[S comparable, A any](e *Event[S, A], fn Handler[S, A], sender S) int {
	id, err := e.AddHandler(fn, sender)
	Must(err)
	return id
}
