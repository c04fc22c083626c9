package repokit

// Binder builds a repo bound to one Queryer, either the pool or an open transaction
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a plain constructor to Binder
type BindFunc[T any] func(Queryer) T

func (f BindFunc[T]) Bind(q Queryer) T {
	if q == nil {
		panic("repokit: bind on nil Queryer")
	}
	return f(q)
}
