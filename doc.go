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

// Package blackbird implements a composable promise engine: a value that
// may not exist yet, continuations attached to run once it does (or once
// an error does), and a combinator layer for sequencing, mapping,
// reducing, filtering, and recovering over such values.
//
// A Promise has four states, and it can be in only one of them, at any
// time:
// Pending: nothing has settled the promise yet.
// Fulfilled: the promise settled, via Finish, with zero or more values.
// Rejected: the promise settled, via SignalError, with an error.
// Forwarded: the promise was finished with another promise, and from
// then on delegates everything to the terminal promise behind it.
//
// Settlement is permanent and exactly-once: finishing or erroring a
// settled promise is a silent no-op, and so is re-dispatch of already
// consumed continuations. Reset is the one escape hatch, clearing a
// promise all the way back to Pending.
//
// General Notes:-
//
// * Attaching a continuation (Then, Catch, or anything built on them)
// always returns a new derived Promise, driven solely by the outcome of
// the continuation.
//
// * A rejection with no errback is retained indefinitely, and replayed
// to every errback attached later, however much later that is. Nothing
// is ever reported on its own.
//
// * Settlement values are plural: Finish accepts any number of values,
// callbacks receive all of them, and a callback returns a Values to
// settle its derived promise with more than one.
//
// Execution model:-
//
// The engine is single-threaded and cooperative. It takes no locks,
// spawns no goroutines, and provides no thread-safety of its own:
// attach and settle calls run their continuations synchronously on the
// calling goroutine, except at exactly one point, the Scheduler hook,
// which every Finish/SignalError dispatch is handed through. The
// default Scheduler invokes continuations immediately; installing one
// that defers (onto an event loop, a timer queue, a test harness)
// changes when continuations observably run and nothing else. Whatever
// drives that hook owns all actual concurrency, along with timeouts and
// cancellation, which this package deliberately doesn't provide.
//
// Callback Notes:-
//
// * A callback's error return, and a panic inside a callback, both
// reject the derived promise; a panic is delivered wrapped in a
// PanicError.
//
// * A callback returning a *Promise doesn't settle the derived promise
// with it; the derived promise adopts its eventual outcome, flattening
// arbitrarily deep promise-of-promise chains.
//
// * Ambient state that must survive deferred execution is declared via
// Binding values and SetPreservedBindings; every continuation captures
// the preserved set when attached and reinstalls it around its own
// invocation.
package blackbird
