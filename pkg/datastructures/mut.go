package datastructures

// an OO class for a single mutable slot, using generics.
// the zero value is a slot holding T's zero value.
// not safe for concurrent use.

type Mut[T any] struct {
	value T
}

func NewMut[T any](value T) *Mut[T] {
	return &Mut[T]{
		value: value,
	}
}

func (m *Mut[T]) SetValue(value T) {
	m.value = value
}

func (m *Mut[T]) GetValue() T {
	return m.value
}

// Replace installs value and returns what was in the slot before.
func (m *Mut[T]) Replace(value T) T {
	old := m.value
	m.value = value
	return old
}

// Take leaves T's zero value in the slot and returns the previous content.
func (m *Mut[T]) Take() T {
	var zero T
	return m.Replace(zero)
}

func (m *Mut[T]) Swap(other *Mut[T]) {
	if m == other {
		return
	}
	m.value, other.value = other.value, m.value
}

// Update stores f(old) and returns the new value.
func (m *Mut[T]) Update(f func(T) T) T {
	m.value = f(m.value)
	return m.value
}

// Ptr gives direct access to the slot. only use it when nothing else can reach the slot.
func (m *Mut[T]) Ptr() *T {
	return &m.value
}
