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

// panic messages
const nilCallbackPanicMsg = "blackbird: the provided callback is nil"

// Callback is a success continuation. It receives the settled values of
// its source promise, and its outcome drives the derived promise:
// returning an error (or panicking) rejects it, returning a *Promise
// forwards it, returning a Values settles it with multiple values, and
// any other value settles it with that single value.
type Callback func(vals ...any) (any, error)

// Errback is an error continuation. It receives the source promise's
// error; its outcome drives the derived promise under the same rules as
// Callback.
type Errback func(err error) (any, error)

// Values is an ordered group of settlement values. Return one from a
// Callback or Errback (or yield one through Promisify) to settle the
// derived promise with multiple values instead of a single slice value.
type Values []any

// wrapCallback captures the preserved ambient bindings around fn.
// With no preserved bindings configured, fn is returned as-is.
func wrapCallback(fn Callback) Callback {
	snap := captureBindings()
	if snap == nil {
		return fn
	}
	return func(vals ...any) (any, error) {
		defer snap.install()()
		return fn(vals...)
	}
}

// wrapErrback is the Errback counterpart of wrapCallback.
func wrapErrback(fn Errback) Errback {
	snap := captureBindings()
	if snap == nil {
		return fn
	}
	return func(err error) (any, error) {
		defer snap.install()()
		return fn(err)
	}
}

// invokeCallback runs a continuation, converting a panic into an error
// return. The binding snapshot (if any) restores itself during the
// unwind, before the panic is caught here.
func invokeCallback(fn Callback, vals []any) (res any, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = PanicError{V: v}
		}
	}()
	return fn(vals...)
}

// invokeErrback is the Errback counterpart of invokeCallback.
func invokeErrback(fn Errback, cause error) (res any, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = PanicError{V: v}
		}
	}()
	return fn(cause)
}

// first returns the first settlement value, or nil for an empty
// settlement.
func first(vals []any) any {
	if len(vals) == 0 {
		return nil
	}
	return vals[0]
}
