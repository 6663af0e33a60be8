// Package speech builds SSML documents for text-to-speech engines.
//
// A Builder collects fragments in call order and renders them inside a
// <speak> root:
//
//	ssml := speech.New().
//		Say("Your total is ").
//		Price(156.99).
//		Pause(1).
//		Say("Order number ").
//		Digits(40213).
//		Render()
//
// Every fragment is formatted when its method is called; later changes to
// the arguments never affect output. Methods never fail: input that cannot
// be read as a number is written out as-is or as NaN and left for the speech
// engine to deal with.
//
// A Builder is not safe for concurrent use.
package speech

import (
	"math"
	"strings"
)

// Builder accumulates SSML fragments.
type Builder struct {
	parts    []string
	currency Currency
}

// Option configures a Builder.
type Option func(*Builder)

// WithCurrency sets the units Price uses. Empty fields keep the Dollar units.
func WithCurrency(c Currency) Option {
	return func(b *Builder) {
		b.currency = c.Or(Dollar)
	}
}

// New returns an empty Builder.
func New(opts ...Option) *Builder {
	b := &Builder{currency: Dollar}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Render returns the document wrapped in <speak></speak>.
func (b *Builder) Render() string {
	var sb strings.Builder
	sb.WriteString(speakOpen)
	for _, p := range b.parts {
		sb.WriteString(p)
	}
	sb.WriteString(speakClose)
	return sb.String()
}

// String implements fmt.Stringer.
func (b *Builder) String() string { return b.Render() }

// Len returns the number of fragments added so far.
func (b *Builder) Len() int { return len(b.parts) }

// Fragments returns a copy of the fragments in call order.
func (b *Builder) Fragments() []string {
	out := make([]string, len(b.parts))
	copy(out, b.parts)
	return out
}

func (b *Builder) push(fragment string) *Builder {
	b.parts = append(b.parts, fragment)
	return b
}

// Add appends text verbatim.
func (b *Builder) Add(text string) *Builder {
	return b.push(text)
}

// Say is an alias of Add.
func (b *Builder) Say(text string) *Builder {
	return b.Add(text)
}

// Pause appends a break of length seconds.
func (b *Builder) Pause(length any) *Builder {
	// TODO: accept millisecond breaks ("500ms") alongside seconds.
	return b.push(breakPrefix + text(length) + breakSuffix)
}

// Spell appends text to be read letter by letter.
func (b *Builder) Spell(s string) *Builder {
	return b.push(sayAs(KindSpellOut, s))
}

// Cardinal appends number read as a cardinal.
func (b *Builder) Cardinal(number any) *Builder {
	return b.push(sayAs(KindCardinal, text(number)))
}

// CardinalUnits appends number read as a cardinal followed by singular when
// the number equals exactly 1, or plural otherwise. When either unit is
// empty no unit is spoken.
func (b *Builder) CardinalUnits(number any, singular, plural string) *Builder {
	return b.push(cardinalUnits(number, singular, plural))
}

// Number is an alias of Cardinal.
func (b *Builder) Number(number any) *Builder {
	return b.Cardinal(number)
}

// NumberUnits is an alias of CardinalUnits.
func (b *Builder) NumberUnits(number any, singular, plural string) *Builder {
	return b.CardinalUnits(number, singular, plural)
}

func cardinalUnits(number any, singular, plural string) string {
	s := sayAs(KindCardinal, text(number))
	if singular == "" || plural == "" {
		return s
	}
	if toNumber(number) == 1 {
		return s + " " + singular
	}
	return s + " " + plural
}

// Ordinal appends number read as an ordinal ("first", "second").
func (b *Builder) Ordinal(number any) *Builder {
	return b.push(sayAs(KindOrdinal, text(number)))
}

// Digits appends number read digit by digit.
func (b *Builder) Digits(number any) *Builder {
	return b.push(sayAs(KindDigits, text(number)))
}

type magnitude struct {
	threshold float64
	label     string
}

// magnitudes is ordered from the largest threshold down.
var magnitudes = []magnitude{
	{1e12, "trillion"},
	{1e9, "billion"},
	{1e6, "million"},
	{1e3, "thousand"},
}

// ApproximateFactor appends number scaled to the largest magnitude it
// strictly exceeds, to one decimal: 12345 is spoken as "12.3 thousand".
// Numbers up to 1000 are written unchanged. A non-empty unit is spoken last.
func (b *Builder) ApproximateFactor(number any, unit string) *Builder {
	n := toNumber(number)

	s := ""
	for _, m := range magnitudes {
		if n > m.threshold {
			s = sayAs(KindOrdinal, toFixed(n/m.threshold, 1)) + " " + m.label
			break
		}
	}
	if s == "" {
		s = sayAs(KindOrdinal, text(number))
	}

	if unit != "" {
		s += " " + unit
	}
	return b.push(s)
}

// Fraction appends a fraction such as "1/8". The value is not checked.
func (b *Builder) Fraction(number any) *Builder {
	return b.push(sayAs(KindFraction, text(number)))
}

// Percent appends number followed by "percent".
func (b *Builder) Percent(number any) *Builder {
	return b.push(sayAs(KindOrdinal, text(number)) + " percent")
}

// PercentPrecision appends number rounded to precision decimals followed by
// "percent".
func (b *Builder) PercentPrecision(number any, precision int) *Builder {
	return b.push(sayAs(KindOrdinal, toFixed(toNumber(number), precision)) + " percent")
}

// Telephone appends a phone number.
func (b *Builder) Telephone(number any) *Builder {
	return b.push(sayAs(KindTelephone, text(number)))
}

// Address appends a street address.
func (b *Builder) Address(address string) *Builder {
	return b.push(sayAs(KindAddress, address))
}

// Date appends a date. The caller formats it for the target engine.
func (b *Builder) Date(date string) *Builder {
	return b.push(sayAs(KindDate, date))
}

// Time appends a time or duration such as 1'15".
func (b *Builder) Time(t string) *Builder {
	return b.push(sayAs(KindTime, t))
}

// Price appends amount in the builder's currency.
func (b *Builder) Price(amount any) *Builder {
	return b.PriceIn(amount, b.currency)
}

// PriceIn appends amount spoken as whole units and cents, e.g.
// "156 dollars and 99 cents". Empty fields of c fall back to the builder's
// currency. A zero amount is spoken as "0 dollars".
func (b *Builder) PriceIn(amount any, c Currency) *Builder {
	c = c.Or(b.currency)

	n := toNumber(amount)
	whole := math.Floor(n)
	// Cents are taken from the amount rounded to three decimals.
	fract := toFixed((toNumber(toFixed(n, 3))-whole)*100, 0)
	hasFract := toNumber(fract) > 0

	if whole != 0 {
		b.push(cardinalUnits(formatFloat(whole), c.Singular, c.Plural))
		if hasFract {
			b.push(" and ")
		}
	}
	if hasFract {
		b.push(cardinalUnits(fract, c.CentSingular, c.CentPlural))
	}
	if whole == 0 && !hasFract {
		b.push(cardinalUnits("0", c.Singular, c.Plural))
	}
	return b
}
