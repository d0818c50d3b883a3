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

import "errors"

// CatchClause pairs an error-category matcher with its handler, for use
// with Catcher. Build one with On.
type CatchClause struct {
	match   func(error) bool
	handler Errback
}

// On builds a CatchClause from a matcher and a handler. See Is and
// OfType for the common matchers.
func On(match func(error) bool, handler Errback) CatchClause {
	if match == nil || handler == nil {
		panic(nilCallbackPanicMsg)
	}
	return CatchClause{match: match, handler: handler}
}

// Is matches errors equal to (or wrapping) target, per errors.Is.
func Is(target error) func(error) bool {
	return func(err error) bool { return errors.Is(err, target) }
}

// OfType matches errors of (or wrapping one of) concrete type T, per
// errors.As.
func OfType[T error]() func(error) bool {
	return func(err error) bool {
		var t T
		return errors.As(err, &t)
	}
}

// Catcher returns a derived promise that handles p's error by category:
// on rejection the clauses are tried in order, the first match's handler
// runs, and its outcome (or its own error) becomes the derived outcome;
// an unmatched error passes through unchanged. A successful settlement
// passes through untouched, values and all.
func (p *Promise) Catcher(clauses ...CatchClause) *Promise {
	derived := NewPromise()
	p.Then(func(vals ...any) (any, error) {
		derived.Finish(vals...)
		return nil, nil
	})
	p.Catch(func(err error) (any, error) {
		for _, clause := range clauses {
			if !clause.match(err) {
				continue
			}
			res, herr := invokeErrback(clause.handler, err)
			if herr != nil {
				derived.SignalError(herr)
			} else {
				derived.finishWith(res)
			}
			return nil, nil
		}
		derived.SignalError(err)
		return nil, nil
	})
	return derived
}

// Tap returns a derived promise that, on success, invokes fn for its
// side effects and then carries p's original values forward. If fn
// returns a promise, the tap waits for it to fully settle first; either
// way the original values, not fn's result, flow on. On rejection fn is
// never invoked and the error passes through.
func (p *Promise) Tap(fn Callback) *Promise {
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}
	return p.Then(func(vals ...any) (any, error) {
		res, _ := invokeCallback(fn, vals)
		if tp, ok := res.(*Promise); ok {
			passthrough := NewPromise()
			tp.Then(func(...any) (any, error) {
				passthrough.Finish(vals...)
				return nil, nil
			})
			tp.Catch(func(error) (any, error) {
				passthrough.Finish(vals...)
				return nil, nil
			})
			return passthrough, nil
		}
		return Values(vals), nil
	})
}

// Finally returns a derived promise whose outcome is fn's own result,
// with fn invoked on both the success and the error path. Note the
// replace semantics: whatever value or error preceded the Finally is
// discarded in favor of what fn returns. This matches the original
// chain behavior this package reproduces, not the conventional
// pass-through finally.
func (p *Promise) Finally(fn func() (any, error)) *Promise {
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}
	derived := NewPromise()
	settle := func() {
		res, err := invokeCallback(func(...any) (any, error) { return fn() }, nil)
		if err != nil {
			derived.SignalError(err)
			return
		}
		derived.finishWith(res)
	}
	p.Then(func(...any) (any, error) {
		settle()
		return nil, nil
	})
	p.Catch(func(error) (any, error) {
		settle()
		return nil, nil
	})
	return derived
}
