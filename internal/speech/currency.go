package speech

// Currency names the major and minor units spoken by Price.
type Currency struct {
	Singular     string `json:"singular,omitempty" yaml:"singular,omitempty" mapstructure:"singular"`
	Plural       string `json:"plural,omitempty" yaml:"plural,omitempty" mapstructure:"plural"`
	CentSingular string `json:"cent_singular,omitempty" yaml:"cent_singular,omitempty" mapstructure:"cent_singular"`
	CentPlural   string `json:"cent_plural,omitempty" yaml:"cent_plural,omitempty" mapstructure:"cent_plural"`
}

// Dollar is the default currency.
var Dollar = Currency{
	Singular:     "dollar",
	Plural:       "dollars",
	CentSingular: "cent",
	CentPlural:   "cents",
}

// Pound is British sterling.
var Pound = Currency{
	Singular:     "pound",
	Plural:       "pounds",
	CentSingular: "penny",
	CentPlural:   "pence",
}

// Euro is the single European currency.
var Euro = Currency{
	Singular:     "euro",
	Plural:       "euros",
	CentSingular: "cent",
	CentPlural:   "cents",
}

// Or returns c with every empty unit taken from fallback.
func (c Currency) Or(fallback Currency) Currency {
	if c.Singular == "" {
		c.Singular = fallback.Singular
	}
	if c.Plural == "" {
		c.Plural = fallback.Plural
	}
	if c.CentSingular == "" {
		c.CentSingular = fallback.CentSingular
	}
	if c.CentPlural == "" {
		c.CentPlural = fallback.CentPlural
	}
	return c
}
