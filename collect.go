package stream

import "context"

// DuplicateKeyError reports a key collision in CollectMapNoDuplicateKeys.
// It is surfaced as a plain error rather than wrapped in Failure[E] —
// the same choice the corpus made (collect.go's own
// CollectMapNoDuplicateKeys, which canceled the stream's context with
// this value as the cause rather than threading it through the
// accumulator's result type).
type DuplicateKeyError[A any, K comparable] struct {
	Element A
	Key     K
}

func (e *DuplicateKeyError[A, K]) Error() string { return "stream: duplicate key" }

// CollectMap drains str into a map via key/value, a later element
// overwriting an earlier one under the same key.
func CollectMap[E, A any, K comparable, V any](str Stream[E, A], key func(A) K, value func(A) V) IO[E, map[K]V] {
	return Run[E, map[K]V, A, map[K]V](str, SinkFold[E, A, map[K]V](map[K]V{}, func(acc map[K]V, a A) map[K]V {
		acc[key(a)] = value(a)
		return acc
	}))
}

// CollectMapNoDuplicateKeys is CollectMap, but a repeated key aborts the
// run with a *DuplicateKeyError instead of overwriting.
func CollectMapNoDuplicateKeys[E, A any, K comparable, V any](str Stream[E, A], key func(A) K, value func(A) V) IO[E, map[K]V] {
	return func(ctx context.Context) (map[K]V, error) {
		acc := map[K]V{}
		_, err := Fold[map[K]V, E, A](str, acc, func(m map[K]V, a A) IO[E, Step[map[K]V]] {
			return func(context.Context) (Step[map[K]V], error) {
				k := key(a)
				if _, exists := m[k]; exists {
					return Step[map[K]V]{}, &DuplicateKeyError[A, K]{Element: a, Key: k}
				}
				m[k] = value(a)
				return Cont(m), nil
			}
		})(ctx)
		if err != nil {
			return acc, err
		}
		return acc, nil
	}
}

// CollectGroup drains str into a map of slices, grouping elements by key.
func CollectGroup[E, A any, K comparable, V any](str Stream[E, A], key func(A) K, value func(A) V) IO[E, map[K][]V] {
	return Run[E, map[K][]V, A, map[K][]V](str, SinkFold[E, A, map[K][]V](map[K][]V{}, func(acc map[K][]V, a A) map[K][]V {
		k := key(a)
		acc[k] = append(acc[k], value(a))
		return acc
	}))
}

// CollectPartition is CollectGroup specialized to a boolean predicate.
func CollectPartition[E, A, V any](str Stream[E, A], pred func(A) bool, value func(A) V) IO[E, map[bool][]V] {
	return CollectGroup[E, A, bool, V](str, pred, value)
}
