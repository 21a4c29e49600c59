// Package event implements the event dispatch core shared by every toolkit
// backend: a registry of handlers for one logical event.
//
// Each handler is bound to a sender. Firing the event with a sender runs, in
// registration order, every unblocked handler bound to that same sender.
// Senders are compared with ==, so pointer senders (a *Button, a *Window)
// match by identity. A registry created with Options{Global: true} ignores
// senders and runs every unblocked handler on each fire.
//
// A sender can be invalidated, typically when the control it represents is
// destroyed. From then on firing with that sender runs nothing, for the
// lifetime of the registry. Blocking is per handler and independent of
// invalidation.
//
// An Event is not safe for concurrent use. It belongs to the UI thread, like
// the controls that own it.
//
// Contract violations (unknown handler ids, a missing sender, use after Free)
// are returned as *errors.Error values whose codes satisfy
// errors.IsProgrammerError. Must turns them into panics for callers that treat
// them as fatal.
//
// Dispatch works on a snapshot of the handler order taken when Fire is
// entered. Handlers added by a running handler are not called by that dispatch.
// Handlers deleted or blocked by a running handler are skipped if they have
// not been reached yet. Fire may be nested.
package event
