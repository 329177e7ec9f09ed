package repository

// Order selects the value a store ranks by.
type Order int

const (
	// ByScore ranks by PLP.
	ByScore Order = iota
	// ByPoints ranks by raw KLP total.
	ByPoints
)

// Option applies a configuration option to the TreapStore.
type Option func(*TreapStore)

// WithOrder sets the ranking key. ByScore is the default.
func WithOrder(o Order) Option {
	return func(s *TreapStore) {
		s.order = o
	}
}
