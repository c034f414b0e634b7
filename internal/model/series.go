package model

// Route is a directional flight route between two IATA airport codes.
type Route struct {
	Origin      string `yaml:"origin" validate:"required,len=3"`
	Destination string `yaml:"destination" validate:"required,len=3"`
	Name        string `yaml:"name" validate:"required"`
}

// Key returns the series key for the route, e.g. "GDL-CUN".
func (r Route) Key() string {
	return r.Origin + "-" + r.Destination
}

// Pair is a currency pair. The tracked rate is base-currency units per one
// quote-currency unit, e.g. MXN-USD at 17.22 means 17.22 MXN per USD.
type Pair struct {
	Base  string `yaml:"base" validate:"required,len=3"`
	Quote string `yaml:"quote" validate:"required,len=3"`
}

// Key returns the series key for the pair, e.g. "MXN-USD".
func (p Pair) Key() string {
	return p.Base + "-" + p.Quote
}
