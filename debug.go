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

import "go.uber.org/zap"

// debugLogger is the opt-in trace sink for promise lifecycle events.
// The core never logs on its own behalf; tracing stays off until a
// logger is installed.
var (
	debugLogger  = zap.NewNop()
	debugEnabled bool
)

// SetDebugLogger installs a trace sink for promise lifecycle events
// (settlement, assimilation, reset), logged at Debug level. Passing nil
// turns tracing back off. Like the other process-wide configuration it
// should be installed once at startup or per test.
func SetDebugLogger(l *zap.Logger) {
	if l == nil {
		debugLogger = zap.NewNop()
		debugEnabled = false
		return
	}
	debugLogger = l
	debugEnabled = true
}

func traceSettle(p *Promise) {
	if !debugEnabled {
		return
	}
	if p.state == Rejected {
		debugLogger.Debug("promise rejected",
			zap.String("promise", p.String()),
			zap.Error(p.err),
			zap.Int("errbacks", len(p.errbacks)),
		)
		return
	}
	debugLogger.Debug("promise fulfilled",
		zap.String("promise", p.String()),
		zap.Int("values", len(p.values)),
		zap.Int("callbacks", len(p.callbacks)),
	)
}

func traceForward(p, target *Promise) {
	if !debugEnabled {
		return
	}
	// render the source directly: String follows the freshly set
	// forward link and would show the target twice.
	debugLogger.Debug("promise forwarded",
		zap.String("promise", p.name),
		zap.String("target", target.String()),
	)
}

func traceReset(p *Promise) {
	if !debugEnabled {
		return
	}
	debugLogger.Debug("promise reset",
		zap.String("promise", p.String()),
	)
}
