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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	t.Run("mixed values and promises, order preserved", func(t *testing.T) {
		later := NewPromise()
		d := All(1, later, Resolve(3))
		require.Equal(t, Pending, d.State())

		later.Finish(2)
		require.Equal(t, Fulfilled, d.State())
		require.Equal(t, []any{[]any{1, 2, 3}}, d.Values())
	})

	t.Run("empty input", func(t *testing.T) {
		d := All()
		require.Equal(t, []any{[]any{}}, d.Values())
	})

	t.Run("first reported error wins", func(t *testing.T) {
		a := NewPromise()
		b := NewPromise()
		d := All(a, b)

		b.SignalError(testStrError("b boom"))
		a.SignalError(testStrError("a boom"))
		require.EqualError(t, d.Err(), "b boom")
	})

	t.Run("error beats pending elements", func(t *testing.T) {
		stuck := NewPromise()
		d := All(stuck, Reject(testStrError("boom")))
		require.Equal(t, Rejected, d.State())
	})
}

func TestAMap(t *testing.T) {
	inc := func(item any) (any, error) { return item.(int) + 1, nil }

	t.Run("plain slice", func(t *testing.T) {
		d := AMap(inc, []any{1, 2, 3})
		require.Equal(t, []any{[]any{2, 3, 4}}, d.Values())
	})

	t.Run("sequence-valued promise", func(t *testing.T) {
		d := AMap(inc, Resolve([]any{10, 20}))
		require.Equal(t, []any{[]any{11, 21}}, d.Values())
	})

	t.Run("typed slices work", func(t *testing.T) {
		d := AMap(inc, []int{1, 2})
		require.Equal(t, []any{[]any{2, 3}}, d.Values())
	})

	t.Run("promise-returning fn preserves order", func(t *testing.T) {
		gates := []*Promise{NewPromise(), NewPromise()}
		d := AMap(func(item any) (any, error) {
			return gates[item.(int)], nil
		}, []any{0, 1})

		// settle out of order; output order must follow input order.
		gates[1].Finish("second")
		require.Equal(t, Pending, d.Deref().State())
		gates[0].Finish("first")
		require.Equal(t, []any{[]any{"first", "second"}}, d.Values())
	})

	t.Run("fn error rejects", func(t *testing.T) {
		boom := testStrError("boom")
		d := AMap(func(item any) (any, error) { return nil, boom }, []any{1})
		require.ErrorIs(t, d.Err(), boom)
	})

	t.Run("non-sequence rejects", func(t *testing.T) {
		d := AMap(inc, Resolve(42))
		require.ErrorIs(t, d.Err(), ErrNotSequence)
	})

	t.Run("absent value reads as empty sequence", func(t *testing.T) {
		d := AMap(inc, Resolve())
		require.Equal(t, []any{[]any{}}, d.Values())
	})
}

func TestAReduce(t *testing.T) {
	sum := func(acc, item any) (any, error) { return acc.(int) + item.(int), nil }

	t.Run("left fold with seed", func(t *testing.T) {
		d := AReduce(sum, []any{1, 2, 3}, 10)
		require.Equal(t, []any{16}, d.Values())
	})

	t.Run("fold order is left to right", func(t *testing.T) {
		var seen []any
		d := AReduce(func(acc, item any) (any, error) {
			seen = append(seen, item)
			return acc.(string) + item.(string), nil
		}, []any{"a", "b", "c"}, "")
		require.Equal(t, []any{"a", "b", "c"}, seen)
		require.Equal(t, []any{"abc"}, d.Values())
	})

	t.Run("each step awaits a promise-returning reducer", func(t *testing.T) {
		gate := NewPromise()
		var secondStepRan bool
		d := AReduce(func(acc, item any) (any, error) {
			if item.(int) == 1 {
				return gate, nil
			}
			secondStepRan = true
			return acc.(int) + item.(int), nil
		}, []any{1, 2}, 0)

		require.False(t, secondStepRan, "step 2 must wait for step 1's promise")
		gate.Finish(100)
		require.True(t, secondStepRan)
		require.Equal(t, []any{102}, d.Values())
	})

	t.Run("reducer error short-circuits", func(t *testing.T) {
		boom := testStrError("boom")
		calls := 0
		d := AReduce(func(acc, item any) (any, error) {
			calls++
			return nil, boom
		}, []any{1, 2, 3}, 0)
		require.ErrorIs(t, d.Err(), boom)
		require.Equal(t, 1, calls)
	})
}

func TestAFilter(t *testing.T) {
	t.Run("keeps truthy, preserves order", func(t *testing.T) {
		d := AFilter(func(item any) (any, error) {
			return item.(int)%2 == 0, nil
		}, []any{1, 2, 3, 4, 5})
		require.Equal(t, []any{[]any{2, 4}}, d.Values())
	})

	t.Run("nil and false are falsy, everything else truthy", func(t *testing.T) {
		d := AFilter(func(item any) (any, error) {
			switch item.(int) {
			case 0:
				return nil, nil
			case 1:
				return false, nil
			case 2:
				return 0, nil // zero is still truthy
			default:
				return true, nil
			}
		}, []any{0, 1, 2, 3})
		require.Equal(t, []any{[]any{2, 3}}, d.Values())
	})

	t.Run("promise-returning predicate", func(t *testing.T) {
		gate := NewPromise()
		d := AFilter(func(item any) (any, error) {
			if item.(int) == 2 {
				return gate, nil
			}
			return false, nil
		}, []any{1, 2, 3})

		require.Equal(t, Pending, d.Deref().State())
		gate.Finish(true)
		require.Equal(t, []any{[]any{2}}, d.Values())
	})
}

func TestSequentialPipeline(t *testing.T) {
	t.Run("transform map reduce", func(t *testing.T) {
		d := Chain(4).
			Then(func(vals ...any) (any, error) {
				return vals[0].(int) + 7, nil
			}).
			Then(func(vals ...any) (any, error) {
				x := vals[0].(int)
				return []any{3, x, 9}, nil
			}).
			Map(func(item any) (any, error) {
				return item.(int) + 1, nil
			}).
			Reduce(func(acc, item any) (any, error) {
				return acc.(int) + item.(int), nil
			}, 0)
		require.Equal(t, []any{26}, d.Values())
	})

	t.Run("error short-circuits to the next catcher", func(t *testing.T) {
		boom := &testPtrError{txt: "stage boom"}
		mapRan := false
		d := Chain(1).
			Then(func(vals ...any) (any, error) {
				return nil, boom
			}).
			Map(func(item any) (any, error) {
				mapRan = true
				return item, nil
			}).
			Catcher(
				On(OfType[*testPtrError](), func(err error) (any, error) {
					return "resumed", nil
				}),
			).
			Then(func(vals ...any) (any, error) {
				return vals[0].(string) + "!", nil
			})
		require.False(t, mapRan)
		require.Equal(t, []any{"resumed!"}, d.Values())
	})

	t.Run("finally replaces mid-pipeline", func(t *testing.T) {
		d := Chain(1).
			Then(func(vals ...any) (any, error) {
				return nil, testStrError("boom")
			}).
			Finally(func() (any, error) {
				return "afterwards", nil
			}).
			Then(func(vals ...any) (any, error) {
				return vals[0].(string) + " indeed", nil
			})
		require.Equal(t, []any{"afterwards indeed"}, d.Values())
	})

	t.Run("filter stage", func(t *testing.T) {
		d := Chain([]any{1, 2, 3, 4}).
			Filter(func(item any) (any, error) {
				return item.(int) > 2, nil
			}).
			Map(func(item any) (any, error) {
				return item.(int) * 10, nil
			})
		require.Equal(t, []any{[]any{30, 40}}, d.Values())
	})

	t.Run("pipeline under a deferred scheduler", func(t *testing.T) {
		q := &testQueue{}
		prev := SetScheduler(q.schedule)
		defer SetScheduler(prev)

		seed := NewPromise()
		d := Chain(seed).
			Map(func(item any) (any, error) {
				return item.(int) * 2, nil
			}).
			Reduce(func(acc, item any) (any, error) {
				return acc.(int) + item.(int), nil
			}, 0)

		seed.Finish([]any{1, 2, 3})
		require.Equal(t, Pending, d.Deref().State())
		q.drain()
		require.Equal(t, []any{12}, d.Values())
	})
}
