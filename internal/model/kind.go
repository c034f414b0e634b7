package model

// Kind identifies the class of a tracked series.
type Kind string

const (
	KindFlights  Kind = "flights"
	KindExchange Kind = "exchange"
)

// Valid reports whether k is a known series kind.
func (k Kind) Valid() bool {
	return k == KindFlights || k == KindExchange
}
