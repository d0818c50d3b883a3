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

// ResolveFunc fulfills the promise it belongs to with the given values.
// Only the first settlement of the promise has any effect.
type ResolveFunc func(vals ...any)

// RejectFunc rejects the promise it belongs to with the given error.
// Only the first settlement of the promise has any effect.
type RejectFunc func(err error)

// New constructs a pending Promise and synchronously invokes init with
// its resolve and reject functions. Exactly one of the two is expected
// to be called, now or later; extra calls are no-ops. A panic inside
// init is recovered and routed through reject.
func New(init func(resolve ResolveFunc, reject RejectFunc)) *Promise {
	if init == nil {
		panic(nilCallbackPanicMsg)
	}
	p := NewPromise()
	resolve := func(vals ...any) { p.Finish(vals...) }
	reject := func(err error) { p.SignalError(err) }
	func() {
		defer func() {
			if v := recover(); v != nil {
				reject(PanicError{V: v})
			}
		}()
		init(resolve, reject)
	}()
	return p
}

// Resolve returns a promise already finished with the given values.
// Like any Finish, a leading *Promise value is adopted rather than
// stored, so Resolve(p) yields a promise tracking p's outcome.
func Resolve(vals ...any) *Promise {
	p := NewPromise()
	p.Finish(vals...)
	return p
}

// Reject returns a promise already rejected with err.
func Reject(err error) *Promise {
	p := NewPromise()
	p.SignalError(err)
	return p
}

// Chain normalizes a pipeline seed into a promise, as the entry point of
// a sequential pipeline:
//
//	blackbird.Chain(4).
//		Then(addSeven).
//		Map(increment).
//		Reduce(sum, 0)
//
// Stages chain left-to-right; an error raised in any stage short-circuits
// every later stage until the next Catcher or Finally.
func Chain(seed ...any) *Promise {
	if len(seed) == 1 {
		if p, ok := seed[0].(*Promise); ok {
			return p
		}
	}
	return Resolve(seed...)
}

// Promisify runs fn and normalizes its outcome into a promise: a
// *Promise result is returned unchanged, an error result or a panic
// yields a rejected promise, and any other result yields a fulfilled
// one (a Values result settles with multiple values).
func Promisify(fn func() (any, error)) *Promise {
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}
	res, err := invokeCallback(func(...any) (any, error) { return fn() }, nil)
	if err != nil {
		return Reject(err)
	}
	if p, ok := res.(*Promise); ok {
		return p
	}
	d := NewPromise()
	d.finishWith(res)
	return d
}

// toPromise normalizes a single collaborator-supplied value: a *Promise
// is used as-is, anything else becomes a fulfilled promise holding it.
func toPromise(v any) *Promise {
	if p, ok := v.(*Promise); ok {
		return p
	}
	p := NewPromise()
	p.values = []any{v}
	p.state = Fulfilled
	return p
}
