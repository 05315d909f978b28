package datastructures

import (
	"fmt"

	"github.com/huandu/go-clone"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// ValueCell owns one value and lends it to callbacks, so that code holding only a
// shared *ValueCell can run "take it out, change it, put it back" operations.
//
// Every access takes the value out of the slot, leaves a placeholder there, hands
// the value to the callback and writes it back when the callback returns. The
// placeholder is T's zero value, or the result of the factory given to
// NewValueCellWithPlaceholder.
//
// Callers must keep two things in mind:
//
//   - if a callback panics, the value is NOT restored. The panic propagates
//     unchanged and the cell keeps the placeholder; the previous value is lost.
//   - reading the cell from inside one of its own callbacks sees the placeholder,
//     and whatever is written to the cell there is overwritten once the outer
//     callback returns.
//
// A ValueCell is not safe for concurrent use. Sharing one between goroutines needs
// synchronization on the caller's side.
//
// The slot operations of Mut (GetValue, SetValue, Replace, Update, Ptr) are
// available directly on the cell. Don't copy a ValueCell after first use, pass a
// pointer.
type ValueCell[T any] struct {
	Mut[T]
	placeholder func() T
}

func NewValueCell[T any](value T) *ValueCell[T] {
	return &ValueCell[T]{
		Mut: Mut[T]{value: value},
	}
}

// NewDefaultValueCell returns a cell holding T's zero value. `ValueCell[T]{}` is
// equally valid.
func NewDefaultValueCell[T any]() *ValueCell[T] {
	return &ValueCell[T]{}
}

// NewValueCellWithPlaceholder is for types whose zero value is not a sensible
// stand-in. placeholder is called once per access and must not touch the cell.
func NewValueCellWithPlaceholder[T any](value T, placeholder func() T) *ValueCell[T] {
	return &ValueCell[T]{
		Mut:         Mut[T]{value: value},
		placeholder: placeholder,
	}
}

// From converts a bare value into a cell, same as NewValueCell.
func From[T any](value T) *ValueCell[T] {
	return NewValueCell(value)
}

func (c *ValueCell[T]) stub() T {
	if c.placeholder != nil {
		return c.placeholder()
	}
	return lo.Empty[T]()
}

// Take installs the placeholder and returns the previous content.
func (c *ValueCell[T]) Take() T {
	return c.Replace(c.stub())
}

func (c *ValueCell[T]) SwapCell(other *ValueCell[T]) {
	c.Mut.Swap(&other.Mut)
}

// WithMut takes the value out of the cell, passes a pointer to it to f and puts it
// back once f returns, discarding whatever is in the slot at that point. It
// returns f's result. If f panics the placeholder stays in the cell.
func WithMut[T, R any](c *ValueCell[T], f func(*T) R) R {
	v := c.Take()
	ret := f(&v)
	c.SetValue(v)
	return ret
}

// With is WithMut for callbacks without a result.
func (c *ValueCell[T]) With(f func(*T)) {
	v := c.Take()
	f(&v)
	c.SetValue(v)
}

// Inspect behaves like With and returns the cell so calls can be chained.
func (c *ValueCell[T]) Inspect(f func(*T)) *ValueCell[T] {
	c.With(f)
	return c
}

// Map passes the value itself to f and stores what f returns. Chainable:
//
//	cell.Map(trim).Map(strings.ToUpper).Inspect(func(s *string) { ... })
func (c *ValueCell[T]) Map(f func(T) T) *ValueCell[T] {
	c.SetValue(f(c.Take()))
	return c
}

// Clone returns a new cell holding a deep copy of the current value. The new cell
// uses the same placeholder factory.
func (c *ValueCell[T]) Clone() *ValueCell[T] {
	v := WithMut(c, func(v *T) T {
		// comma-ok: a nil interface value clones to nil, which must become T's zero value
		cloned, _ := clone.Clone(*v).(T)
		return cloned
	})
	return &ValueCell[T]{
		Mut:         Mut[T]{value: v},
		placeholder: c.placeholder,
	}
}

// Format prints the contained value exactly as fmt would print it directly, for
// every verb and flag.
func (c *ValueCell[T]) Format(s fmt.State, verb rune) {
	c.With(func(v *T) {
		fmt.Fprintf(s, fmt.FormatString(s, verb), *v)
	})
}

// MarshalZerologObject lets a cell be logged with `.Object("cell", c)`.
func (c *ValueCell[T]) MarshalZerologObject(e *zerolog.Event) {
	c.With(func(v *T) {
		e.Interface("value", *v)
	})
}
