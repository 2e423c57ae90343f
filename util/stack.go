package util

// Stack is a last-in first-out history, such as the pages a user can go
// back to. The zero value is empty.
type Stack[T any] []T

func (s *Stack[T]) Push(item T) {
	*s = append(*s, item)
}

// Pop removes the newest item. An empty stack yields the zero value.
func (s *Stack[T]) Pop() (item T) {
	n := len(*s)
	if n == 0 {
		return item
	}

	item = (*s)[n-1]
	clear((*s)[n-1:])
	*s = (*s)[:n-1]
	return item
}

func (s Stack[T]) Len() int {
	return len(s)
}

// Clear drops every item, releasing references held by the backing array.
func (s *Stack[T]) Clear() {
	clear(*s)
	*s = (*s)[:0]
}
