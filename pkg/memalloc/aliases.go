package memalloc

// GlobalAsFallback wraps a policy so that, when it cannot satisfy a
// request locally, the request falls through to the host's
// general-purpose heap instead of failing outright.
type GlobalAsFallback[A Policy, T any] = FallbackAllocator[A, GlobalAllocator[T]]

// DefaultInlineAllocator is an inline pool of n slots that falls back to
// the terminal heap once the pool is exhausted.
func DefaultInlineAllocator[T any](n int) GlobalAsFallback[*InlineAllocator[T], T] {
	return FallbackAllocator[*InlineAllocator[T], GlobalAllocator[T]]{
		Primary:  NewInlineAllocator[T](n),
		Fallback: GlobalAllocator[T]{},
	}
}
