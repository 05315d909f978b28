package datastructures

import (
	"fmt"
	"slices"

	"github.com/abstratium-informatique-sarl/valuecell/pkg/logging"
	"github.com/samber/lo"
)

var log = logging.GetLog("datastructures")

// MutList is a list whose backing slice lives in a ValueCell, so every method works
// through a shared *MutList. Predicates passed to its methods run while the slice
// is lent out: calling back into the same list from a predicate sees an empty list.
type MutList[T any] struct {
	items ValueCell[[]T]
}

func NewMutList[T any]() *MutList[T] {
	l := &MutList[T]{}
	l.items.SetValue(make([]T, 0, 10))
	return l
}

func NewMutListFromArray[T any](initial []T) *MutList[T] {
	l := NewMutList[T]()
	l.AddAll(initial)
	return l
}

func (l *MutList[T]) Add(item T) {
	l.items.Map(func(items []T) []T {
		return append(items, item)
	})
}

func (l *MutList[T]) AddAll(items []T) {
	l.items.Map(func(current []T) []T {
		return append(current, items...)
	})
}

func equal[T any](a, b T) bool {
	var x any = a
	var y any = b
	return x == y
}

func (l *MutList[T]) Remove(item T) {
	removed := WithMut(&l.items, func(items *[]T) bool {
		i := slices.IndexFunc(*items, func(v T) bool { return equal(v, item) })
		if i < 0 {
			return false
		}
		*items = slices.Delete(*items, i, i+1)
		return true
	})
	if !removed {
		log.Trace().Msgf("remove: %v is not in the list", item)
	}
}

func (l *MutList[T]) RemoveIf(f func(T) bool) {
	l.items.Map(func(items []T) []T {
		return lo.Reject(items, func(v T, _ int) bool { return f(v) })
	})
}

func (l *MutList[T]) RemoveAfter(index int) {
	l.items.Map(func(items []T) []T {
		return items[:index]
	})
}

func (l *MutList[T]) Contains(item T) bool {
	return WithMut(&l.items, func(items *[]T) bool {
		return lo.ContainsBy(*items, func(v T) bool { return equal(v, item) })
	})
}

var NotFound = fmt.Errorf("not found")

func (l *MutList[T]) Find(f func(t T) bool) (T, error) {
	var v T
	var ok bool
	l.items.With(func(items *[]T) {
		v, ok = lo.Find(*items, f)
	})
	if !ok {
		log.Trace().Msg("find: no item matched")
		return lo.Empty[T](), NotFound
	}
	return v, nil
}

func (l *MutList[T]) Get(index int) T {
	return WithMut(&l.items, func(items *[]T) T {
		return (*items)[index]
	})
}

func (l *MutList[T]) Len() int {
	return WithMut(&l.items, func(items *[]T) int {
		return len(*items)
	})
}

func (l *MutList[T]) Clear() {
	l.items.Map(func([]T) []T {
		return make([]T, 0, 10)
	})
}

// Items returns a copy, changing it does not change the list.
func (l *MutList[T]) Items() []T {
	return WithMut(&l.items, func(items *[]T) []T {
		list := make([]T, len(*items))
		copy(list, *items)
		return list
	})
}

func (l *MutList[T]) SortFunc(f func(a, b T) int) {
	l.items.Inspect(func(items *[]T) {
		slices.SortFunc(*items, f)
	})
}

func (l *MutList[T]) Filter(f func(T) bool) *MutList[T] {
	filtered := WithMut(&l.items, func(items *[]T) []T {
		return lo.Filter(*items, func(v T, _ int) bool { return f(v) })
	})
	return NewMutListFromArray(filtered)
}

func (l *MutList[T]) Head(n int) *MutList[T] {
	head := WithMut(&l.items, func(items *[]T) []T {
		return (*items)[:min(n, len(*items))]
	})
	return NewMutListFromArray(head)
}

func (l *MutList[T]) String() string {
	return fmt.Sprint(&l.items)
}
