package blackbird

import "reflect"

// All returns a promise that finishes with a same-length, same-order
// []any of resolved values once every item has settled, mixing plain
// values and promises freely. If any item rejects, the returned promise
// rejects with the first error reported to it; which rejection counts as
// first follows dispatch order, not wall-clock order.
func All(items ...any) *Promise {
	d := NewPromise()
	n := len(items)
	if n == 0 {
		d.Finish([]any{})
		return d
	}
	results := make([]any, n)
	remaining := n
	for i, item := range items {
		i := i
		ip := toPromise(item)
		ip.Then(func(vals ...any) (any, error) {
			results[i] = first(vals)
			remaining--
			if remaining == 0 {
				d.Finish(results)
			}
			return nil, nil
		})
		ip.Catch(func(err error) (any, error) {
			d.SignalError(err)
			return nil, nil
		})
	}
	return d
}

// AMap applies fn to every element of a sequence-valued promise (or a
// plain sequence), and finishes with the []any of results, in input
// order. fn may return a promise; the result promise waits for all of
// them.
func AMap(fn func(item any) (any, error), seq any) *Promise {
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}
	return toPromise(seq).Then(func(vals ...any) (any, error) {
		items, ok := asSequence(first(vals))
		if !ok {
			return nil, ErrNotSequence
		}
		mapped := make([]any, len(items))
		for i, item := range items {
			res, err := fn(item)
			if err != nil {
				return nil, err
			}
			mapped[i] = res
		}
		return All(mapped...), nil
	})
}

// AReduce folds fn left-to-right over a sequence-valued promise (or a
// plain sequence), starting from seed. fn may return a promise for the
// next accumulator; each step settles before the next one runs.
func AReduce(fn func(acc, item any) (any, error), seq any, seed any) *Promise {
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}
	return toPromise(seq).Then(func(vals ...any) (any, error) {
		items, ok := asSequence(first(vals))
		if !ok {
			return nil, ErrNotSequence
		}
		acc := toPromise(seed)
		for _, item := range items {
			item := item
			acc = acc.Then(func(avals ...any) (any, error) {
				return fn(first(avals), item)
			})
		}
		return acc, nil
	})
}

// AFilter resolves to the order-preserving subsequence of elements whose
// predicate settled truthy. The predicate may return a promise; a result
// is truthy unless it's nil or false.
func AFilter(pred func(item any) (any, error), seq any) *Promise {
	if pred == nil {
		panic(nilCallbackPanicMsg)
	}
	return toPromise(seq).Then(func(vals ...any) (any, error) {
		items, ok := asSequence(first(vals))
		if !ok {
			return nil, ErrNotSequence
		}
		checks := make([]any, len(items))
		for i, item := range items {
			res, err := pred(item)
			if err != nil {
				return nil, err
			}
			checks[i] = res
		}
		return All(checks...).Then(func(fvals ...any) (any, error) {
			flags := first(fvals).([]any)
			kept := make([]any, 0, len(items))
			for i, flag := range flags {
				if truthy(flag) {
					kept = append(kept, items[i])
				}
			}
			return kept, nil
		}), nil
	})
}

// Map is the pipeline-stage form of AMap, applied to p's sequence-valued
// settlement.
func (p *Promise) Map(fn func(item any) (any, error)) *Promise {
	return AMap(fn, p)
}

// Reduce is the pipeline-stage form of AReduce.
func (p *Promise) Reduce(fn func(acc, item any) (any, error), seed any) *Promise {
	return AReduce(fn, p, seed)
}

// Filter is the pipeline-stage form of AFilter.
func (p *Promise) Filter(pred func(item any) (any, error)) *Promise {
	return AFilter(pred, p)
}

// asSequence extracts the element slice from a settled sequence value.
// It accepts []any and Values directly, any other slice or array kind
// via reflection, and reads an absent value as the empty sequence
// (mirroring the original's nil-is-empty-list convention).
func asSequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case nil:
		return []any{}, true
	case []any:
		return s, true
	case Values:
		return s, true
	}
	rv := reflect.ValueOf(v)
	if k := rv.Kind(); k != reflect.Slice && k != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// truthy reports whether a predicate result keeps its element: anything
// but nil and false does.
func truthy(v any) bool {
	return v != nil && v != false
}
