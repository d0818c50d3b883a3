// Copyright 2026 the blackbird authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package blackbird

import "fmt"

// Promise is a handle to one or more values, or an error, that may not be
// available yet.
//
// A Promise starts out Pending, and settles exactly once, to either
// Fulfilled(via Finish) or Rejected(via SignalError). A Promise that's
// finished with another Promise as its first value doesn't settle at all;
// it becomes Forwarded, and adopts the eventual outcome of that other
// Promise (see Finish).
//
// A Promise is not safe for concurrent use. All attaching and settling is
// expected to happen on a single goroutine, typically the one driving the
// installed Scheduler. See the package comment for details.
//
// The zero value is a valid pending Promise.
type Promise struct {
	name      string
	callbacks []registeredCallback
	errbacks  []errbackEntry
	forward   *Promise
	state     State
	err       error
	values    []any
}

// registeredCallback is a success continuation, already wrapped with the
// ambient-binding snapshot that was current when it was attached.
type registeredCallback func(vals []any)

// errbackEntry pairs an error handler with the promise its outcome drives.
type errbackEntry struct {
	derived *Promise
	handler Errback
}

// State is the lifecycle state of a Promise.
type State int

const (
	// Pending means the promise hasn't settled (nor forwarded) yet.
	Pending State = iota

	// Forwarded means the promise was finished with another promise, and
	// delegates all behavior to the terminal promise behind it.
	Forwarded

	// Fulfilled means the promise settled with zero or more values.
	Fulfilled

	// Rejected means the promise settled with an error.
	Rejected
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Forwarded:
		return "forwarded"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	default:
		return "<unknown>"
	}
}

// settled reports whether the state is terminal (Fulfilled or Rejected).
func (s State) settled() bool {
	return s == Fulfilled || s == Rejected
}

// NewPromise returns a new pending Promise, with nothing attached.
func NewPromise() *Promise {
	return &Promise{}
}

// State returns the promise's own state. A Forwarded promise reports
// Forwarded; use it on the value of Deref to observe the adopted outcome.
func (p *Promise) State() State {
	return p.state
}

// Err returns the stored error of the terminal promise behind p, or nil
// if it isn't Rejected.
func (p *Promise) Err() error {
	return p.deref().err
}

// Values returns the settled values of the terminal promise behind p, or
// nil if it isn't Fulfilled. The returned slice must not be modified.
func (p *Promise) Values() []any {
	return p.deref().values
}

// Name returns the diagnostic name of the terminal promise behind p.
func (p *Promise) Name() string {
	return p.deref().name
}

// SetName sets a diagnostic name on the terminal promise behind p.
// It returns p, to allow naming at construction sites.
func (p *Promise) SetName(name string) *Promise {
	p.deref().name = name
	return p
}

// Deref returns the terminal promise behind p, following forward links.
// For a non-forwarded promise it returns p itself.
func (p *Promise) Deref() *Promise {
	return p.deref()
}

func (p *Promise) String() string {
	pt := p.deref()
	if pt.name != "" {
		return fmt.Sprintf("promise[%s %s]", pt.name, pt.state)
	}
	return fmt.Sprintf("promise[%s]", pt.state)
}

// deref resolves the terminal promise behind p by iteratively following
// forward links. Chains are finite (forward is never reset), so plain
// iteration terminates.
func (p *Promise) deref() *Promise {
	for p.forward != nil {
		p = p.forward
	}
	return p
}

// Finish settles the terminal promise behind p with the given values, and
// dispatches its callbacks through the installed Scheduler.
//
// If the promise is already settled, Finish is a no-op.
//
// If the first value is itself a *Promise, the promise doesn't settle;
// it adopts that promise instead: all currently registered callbacks and
// errbacks migrate onto it (in registration order), the promise becomes
// Forwarded, and every later attach resolves to the adopted promise.
// Any values after the first are ignored in that case.
func (p *Promise) Finish(vals ...any) {
	pt := p.deref()
	if pt.state.settled() {
		return
	}
	if len(vals) > 0 {
		if target, ok := vals[0].(*Promise); ok {
			pt.forwardTo(target)
			return
		}
	}
	pt.values = vals
	pt.state = Fulfilled
	traceSettle(pt)
	schedule(pt.run)
}

// SignalError settles the terminal promise behind p with err, and
// dispatches its errbacks through the installed Scheduler.
//
// If the promise is already settled, SignalError is a no-op.
//
// The error is retained: errbacks attached after the fact still receive
// it, however much later ("lazy delivery"), until the promise is Reset.
func (p *Promise) SignalError(err error) {
	pt := p.deref()
	if pt.state.settled() {
		return
	}
	pt.err = err
	pt.state = Rejected
	traceSettle(pt)
	schedule(pt.run)
}

// forwardTo makes pt adopt target's eventual outcome.
// pt must be terminal and unsettled.
func (pt *Promise) forwardTo(target *Promise) {
	t := target.deref()
	if t == pt {
		// resolving a promise with itself (at any forwarding depth) can
		// never settle; reject instead of building a forward cycle.
		pt.SignalError(ErrCircularChain)
		return
	}
	t.callbacks = append(t.callbacks, pt.callbacks...)
	t.errbacks = append(t.errbacks, pt.errbacks...)
	pt.callbacks = nil
	pt.errbacks = nil
	pt.forward = target
	pt.state = Forwarded
	traceForward(pt, t)
	// the adopted promise may already be settled; this dispatch is
	// finish-triggered, so it goes through the scheduler hook too.
	schedule(t.run)
}

// Then attaches a success continuation to the terminal promise behind p,
// and returns a new derived promise driven solely by the continuation's
// outcome:
//
//   - fn's non-error return finishes the derived promise (a *Promise
//     return is adopted, a Values return settles with multiple values);
//   - fn's error return, or a panic inside fn, rejects it;
//   - an error on the source bypasses fn and rejects it directly.
//
// fn is wrapped with a snapshot of the preserved ambient bindings taken
// now; see SetPreservedBindings.
func (p *Promise) Then(fn Callback) *Promise {
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}
	pt := p.deref()
	derived := NewPromise()
	wrapped := wrapCallback(fn)
	pt.errbacks = append(pt.errbacks, errbackEntry{derived: derived, handler: forwardError})
	pt.callbacks = append(pt.callbacks, func(vals []any) {
		res, err := invokeCallback(wrapped, vals)
		if err != nil {
			derived.SignalError(err)
			return
		}
		derived.finishWith(res)
	})
	pt.run()
	return derived
}

// Catch attaches an error continuation to the terminal promise behind p,
// and returns a new derived promise driven by the continuation's outcome:
// fn's non-error return finishes it (resuming the success path), and
// fn's error return, or a panic inside fn, rejects it.
//
// If the source is already rejected, fn runs before Catch returns (the
// stored error is replayed to every errback ever attached). If the
// source finishes successfully, fn never runs and the derived promise
// stays pending; use Catcher for pass-through error handling.
//
// fn is wrapped with a snapshot of the preserved ambient bindings taken
// now.
func (p *Promise) Catch(fn Errback) *Promise {
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}
	pt := p.deref()
	derived := NewPromise()
	pt.errbacks = append(pt.errbacks, errbackEntry{derived: derived, handler: wrapErrback(fn)})
	pt.run()
	return derived
}

// Reset clears the terminal promise behind p back to a bare pending
// state: callbacks, errbacks, values, error, and state are all dropped.
// It's an explicit escape hatch for halting or restarting a continuation
// chain; forward links into the promise are left intact.
func (p *Promise) Reset() *Promise {
	pt := p.deref()
	pt.callbacks = nil
	pt.errbacks = nil
	pt.err = nil
	pt.values = nil
	pt.state = Pending
	traceReset(pt)
	return p
}

// run dispatches whatever the promise's settlement has to report.
//
// On Rejected with registered errbacks: every (derived, handler) pair is
// invoked in registration order with the stored error; the handler's
// return finishes the derived promise (subject to the same flattening
// rules as Finish), and a handler's error rejects it. On Fulfilled:
// every callback is invoked in registration order with the stored
// values. Either registry is consumed exactly once, before its entries
// fire, so re-entrant dispatch from inside a continuation is safe and
// re-dispatch only ever affects newly added entries. Pending and
// Forwarded promises, and a rejection with no errbacks yet, dispatch
// nothing.
func (p *Promise) run() {
	switch {
	case p.state == Rejected && len(p.errbacks) > 0:
		ebs := p.errbacks
		p.errbacks = nil
		for _, eb := range ebs {
			eb.fire(p.err)
		}
	case p.state == Fulfilled:
		cbs := p.callbacks
		p.callbacks = nil
		for _, cb := range cbs {
			cb(p.values)
		}
	}
}

// fire runs the errback handler and settles the derived promise with its
// outcome.
func (e errbackEntry) fire(err error) {
	res, herr := invokeErrback(e.handler, err)
	if herr != nil {
		e.derived.SignalError(herr)
		return
	}
	e.derived.finishWith(res)
}

// finishWith finishes d with a single continuation result, spreading a
// Values result into multiple settlement values.
func (d *Promise) finishWith(res any) {
	if vs, ok := res.(Values); ok {
		d.Finish(vs...)
		return
	}
	d.Finish(res)
}

// forwardError is the internal errback registered by Then: it routes the
// source's error straight into the derived promise's error slot.
func forwardError(err error) (any, error) {
	return nil, err
}
