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

// Scheduler decides when a settlement's continuations actually run. It
// receives a zero-argument completion thunk on every Finish/SignalError
// dispatch and may invoke it immediately, or hand it to an external
// event loop for later. It's the package's single suspension point:
// deferring here is the only way continuations can run after Finish or
// SignalError has returned to its caller.
type Scheduler func(run func())

// syncScheduler is the default: continuations run synchronously, inside
// the Finish/SignalError call that settled the promise.
func syncScheduler(run func()) { run() }

// scheduler is process-wide state, read at every settlement.
var scheduler Scheduler = syncScheduler

// SetScheduler installs s as the process-wide scheduler and returns the
// previously installed one, so callers (tests in particular) can restore
// it. Passing nil reinstalls the synchronous default.
//
// Replacing the scheduler changes when continuations observably run,
// and nothing else.
func SetScheduler(s Scheduler) (prev Scheduler) {
	prev = scheduler
	if s == nil {
		s = syncScheduler
	}
	scheduler = s
	return prev
}

func schedule(run func()) {
	scheduler(run)
}
