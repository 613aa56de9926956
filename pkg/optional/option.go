package optional

// Option represents a value that may be absent.
type Option[T any] struct {
	value  T
	isSome bool
}

func Some[T any](v T) Option[T] {
	return Option[T]{value: v, isSome: true}
}

func None[T any]() Option[T] {
	return Option[T]{}
}

func (o Option[T]) IsSome() bool {
	return o.isSome
}

func (o Option[T]) IsNone() bool {
	return !o.isSome
}

// Unwrap returns the contained value, or the zero value if none.
func (o Option[T]) Unwrap() T {
	return o.value
}

func (o Option[T]) Take() (T, bool) {
	return o.value, o.isSome
}

func (o Option[T]) TakeOr(fallback T) T {
	if o.isSome {
		return o.value
	}
	return fallback
}

func (o Option[T]) TakeOrElse(fallback func() T) T {
	if o.isSome {
		return o.value
	}
	return fallback()
}

func (o Option[T]) Filter(pred func(v T) bool) Option[T] {
	if o.isSome && pred(o.value) {
		return o
	}
	return None[T]()
}

func Map[T, U any](o Option[T], mapper func(v T) U) Option[U] {
	if o.IsNone() {
		return None[U]()
	}
	return Some(mapper(o.value))
}

func MapOr[T, U any](o Option[T], fallback U, mapper func(v T) U) U {
	if o.IsNone() {
		return fallback
	}
	return mapper(o.value)
}
