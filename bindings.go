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

// Binding is a named ambient value cell. A Binding declared as preserved
// (see SetPreservedBindings) is snapshotted whenever a continuation is
// attached, and the snapshot is reinstalled around the continuation's
// eventual invocation, however the installed Scheduler defers it.
//
// A Binding distinguishes "bound to nil" from "unbound"; an unbound
// snapshot entry reinstalls the unbound state.
//
// Like the rest of the package, a Binding is not safe for concurrent use.
type Binding struct {
	name  string
	value any
	bound bool
}

// NewBinding returns a new unbound Binding with the given diagnostic
// name.
func NewBinding(name string) *Binding {
	return &Binding{name: name}
}

// Name returns the binding's diagnostic name.
func (b *Binding) Name() string { return b.name }

// Get returns the bound value, and whether the binding is bound at all.
func (b *Binding) Get() (any, bool) { return b.value, b.bound }

// Set binds the binding to v.
func (b *Binding) Set(v any) {
	b.value = v
	b.bound = true
}

// Unbind clears the binding back to the unbound state.
func (b *Binding) Unbind() {
	b.value = nil
	b.bound = false
}

// preservedBindings is the process-wide set of bindings captured around
// continuation execution. Read at continuation-attach time.
var preservedBindings []*Binding

// SetPreservedBindings replaces the process-wide set of preserved
// bindings. Call with no arguments to clear the set. It's meant to be
// installed once at startup, or per test with the previous set restored
// afterwards.
func SetPreservedBindings(bs ...*Binding) (prev []*Binding) {
	prev = preservedBindings
	preservedBindings = bs
	return prev
}

// PreservedBindings returns the current preserved set. The returned
// slice must not be modified.
func PreservedBindings() []*Binding {
	return preservedBindings
}

// bindingFrame is one captured binding state.
type bindingFrame struct {
	binding *Binding
	value   any
	bound   bool
}

// bindingSnapshot is the captured state of every preserved binding, in
// configuration order.
type bindingSnapshot []bindingFrame

// captureBindings snapshots the preserved set, or returns nil when none
// are configured, so attachment stays wrap-free in that case.
func captureBindings() bindingSnapshot {
	if len(preservedBindings) == 0 {
		return nil
	}
	snap := make(bindingSnapshot, len(preservedBindings))
	for i, b := range preservedBindings {
		snap[i] = bindingFrame{binding: b, value: b.value, bound: b.bound}
	}
	return snap
}

// install overrides every snapshotted binding with its captured state,
// and returns the function restoring what was current before the call.
// The restore must run on all exit paths, including panics.
func (s bindingSnapshot) install() (restore func()) {
	saved := make([]bindingFrame, len(s))
	for i, f := range s {
		saved[i] = bindingFrame{binding: f.binding, value: f.binding.value, bound: f.binding.bound}
		f.binding.value = f.value
		f.binding.bound = f.bound
	}
	return func() {
		// reverse order, in case the same binding appears twice.
		for i := len(saved) - 1; i >= 0; i-- {
			f := saved[i]
			f.binding.value = f.value
			f.binding.bound = f.bound
		}
	}
}
