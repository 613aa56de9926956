package genericlist

// List is a doubly linked list with a typed element payload. It follows the
// container/list layout with a sentinel root element.
type List[T any] struct {
	root Element[T]
	len  int
}

type Element[T any] struct {
	next, prev *Element[T]
	list       *List[T]
	Value      T
}

func New[T any]() *List[T] {
	return new(List[T]).Init()
}

func (l *List[T]) Init() *List[T] {
	l.root.next = &l.root
	l.root.prev = &l.root
	l.len = 0
	return l
}

func (l *List[T]) Len() int {
	return l.len
}

func (l *List[T]) Front() *Element[T] {
	if l.len == 0 {
		return nil
	}
	return l.root.next
}

func (l *List[T]) Back() *Element[T] {
	if l.len == 0 {
		return nil
	}
	return l.root.prev
}

func (e *Element[T]) Next() *Element[T] {
	if p := e.next; e.list != nil && p != &e.list.root {
		return p
	}
	return nil
}

func (e *Element[T]) Prev() *Element[T] {
	if p := e.prev; e.list != nil && p != &e.list.root {
		return p
	}
	return nil
}

func (l *List[T]) PushBack(v T) *Element[T] {
	e := &Element[T]{Value: v, list: l}
	at := l.root.prev
	e.prev = at
	e.next = at.next
	at.next.prev = e
	at.next = e
	l.len++
	return e
}

func (l *List[T]) PushFront(v T) *Element[T] {
	e := &Element[T]{Value: v, list: l}
	at := &l.root
	e.prev = at
	e.next = at.next
	at.next.prev = e
	at.next = e
	l.len++
	return e
}

// Remove unlinks e from the list. e must be an element of l.
func (l *List[T]) Remove(e *Element[T]) T {
	if e.list == l {
		e.prev.next = e.next
		e.next.prev = e.prev
		e.next = nil
		e.prev = nil
		e.list = nil
		l.len--
	}
	return e.Value
}

// RemoveValue removes the first element equal to v under eq.
func (l *List[T]) RemoveValue(v T, eq func(a, b T) bool) bool {
	for e := l.Front(); e != nil; e = e.Next() {
		if eq(e.Value, v) {
			l.Remove(e)
			return true
		}
	}
	return false
}
