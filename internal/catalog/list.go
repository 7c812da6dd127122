package catalog

// List is an immutable ordered sequence. The zero value is an empty list.
type List[T any] struct {
	items []T
}

// Table is a list of plain strings.
type Table = List[string]

// NewList copies items into a new list.
func NewList[T any](items ...T) List[T] {
	cp := make([]T, len(items))
	copy(cp, items)
	return List[T]{items: cp}
}

func (l List[T]) Len() int {
	return len(l.items)
}

// At returns the i-th element. It panics when i is out of range, like a slice index.
func (l List[T]) At(i int) T {
	return l.items[i]
}
