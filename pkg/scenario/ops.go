package scenario

import (
	"slices"
	"sort"

	"github.com/arthur-debert/uievent/pkg/errors"
	"github.com/arthur-debert/uievent/pkg/registry"
)

// opFunc applies one step to a variant run. Returned errors are compared
// against the step's expect_error; mismatches are recorded with r.failf.
type opFunc func(r *run, s Step) error

// operations must be populated before init parses the builtin suite
var operations = newOperations()

func newOperations() registry.Registry[opFunc] {
	ops := registry.New[opFunc]()
	registry.MustRegister(ops, OpAdd, opAdd, registry.WithDoc("register a handler for a sender"))
	registry.MustRegister(ops, OpDelete, opDelete, registry.WithDoc("delete a registered handler"))
	registry.MustRegister(ops, OpBlock, opBlock(true), registry.WithDoc("block a handler"))
	registry.MustRegister(ops, OpUnblock, opBlock(false), registry.WithDoc("unblock a handler"))
	registry.MustRegister(ops, OpInvalidate, opInvalidate, registry.WithDoc("invalidate a sender"))
	registry.MustRegister(ops, OpFire, opFire, registry.WithDoc("fire the event and check who ran"))
	registry.MustRegister(ops, OpFree, opFree, registry.WithDoc("free the event"))
	return ops
}

// OpDoc describes a step operation
type OpDoc struct {
	Name string
	Doc  string
}

// Operations lists the supported step ops sorted by name
func Operations() []OpDoc {
	var docs []OpDoc
	for _, e := range operations.Entries() {
		docs = append(docs, OpDoc{Name: e.Name, Doc: e.Doc})
	}
	return docs
}

func opAdd(r *run, s Step) error {
	h := r.slot(s.Handler)
	if h.registered {
		return errors.Newf(errors.ErrAlreadyExists, "handler %q is already registered", s.Handler)
	}
	id, err := r.event.AddHandler(h.record, r.sender(s.Sender))
	if err != nil {
		return err
	}
	h.id = id
	h.registered = true
	return nil
}

// opDelete uses the slot's last id even when it is no longer registered,
// so scenarios can assert that a stale id is rejected
func opDelete(r *run, s Step) error {
	h := r.slot(s.Handler)
	if err := r.event.DeleteHandler(h.id); err != nil {
		return err
	}
	h.registered = false
	return nil
}

func opBlock(blocked bool) opFunc {
	return func(r *run, s Step) error {
		return r.event.SetHandlerBlocked(r.slot(s.Handler).id, blocked)
	}
}

func opInvalidate(r *run, s Step) error {
	return r.event.InvalidateSender(r.sender(s.Sender))
}

func opFree(r *run, _ Step) error {
	if err := r.event.Free(); err != nil {
		return err
	}
	r.freed = true
	return nil
}

func opFire(r *run, s Step) error {
	sender := r.sender(s.Sender)
	r.runs = 0
	r.calls = nil
	for _, h := range r.slots {
		h.reset()
	}

	if err := r.event.Fire(sender, r.args); err != nil {
		return err
	}

	wantRun := toSet(s.Run)
	wantBlocked := toSet(s.Blocked)
	failed := len(r.failures)

	for _, name := range r.names {
		h := r.slots[name]
		switch {
		case h.gotRun && !wantRun[name]:
			r.failf("%s ran; should not have", name)
		case !h.gotRun && wantRun[name]:
			r.failf("%s did not run; should have", name)
		case h.gotRun:
			if h.gotSender != sender {
				r.failf("incorrect sender seen by %s: got %s, want %s", name, h.gotSender, sender)
			}
			if h.gotArgs != r.args {
				r.failf("incorrect args seen by %s: got %s, want %s", name, h.gotArgs, r.args)
			}
		}
	}

	// Order only means something once the right handlers ran
	if len(r.failures) == failed && !slices.Equal(r.calls, s.Run) && len(r.calls) == len(s.Run) {
		r.failf("handlers ran in order %v; want %v", r.calls, s.Run)
	}

	for _, name := range sortedKeys(wantBlocked) {
		if h := r.slots[name]; h == nil || !h.registered {
			r.failf("%s is expected blocked but is not registered", name)
		}
	}
	for _, name := range r.names {
		h := r.slots[name]
		if !h.registered {
			continue
		}
		blocked, err := r.event.HandlerBlocked(h.id)
		if err != nil {
			r.failf("querying block state of %s: %v", name, err)
			continue
		}
		switch {
		case blocked && !wantBlocked[name]:
			r.failf("%s blocked; should not have been", name)
		case !blocked && wantBlocked[name]:
			r.failf("%s not blocked; should have been", name)
		}
	}

	if want := s.WantCount(); r.runs != want {
		r.failf("incorrect number of handler runs: got %d, want %d", r.runs, want)
	}
	return nil
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
