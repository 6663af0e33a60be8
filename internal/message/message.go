// Package message defines the data types exchanged with sayas clients.
package message

import "github.com/nadzzz/sayas/internal/speech"

// StepKind selects the builder operation a Step performs.
type StepKind string

const (
	// StepText appends the value verbatim.
	StepText StepKind = "text"

	// StepSay is an alias of StepText.
	StepSay StepKind = "say"

	// StepPause inserts a break of Value seconds.
	StepPause StepKind = "pause"

	// StepSpell reads the value letter by letter.
	StepSpell StepKind = "spell"

	// StepCardinal reads a cardinal number, optionally followed by
	// Singular or Plural.
	StepCardinal StepKind = "cardinal"

	// StepNumber is an alias of StepCardinal.
	StepNumber StepKind = "number"

	StepOrdinal   StepKind = "ordinal"
	StepDigits    StepKind = "digits"
	StepFraction  StepKind = "fraction"
	StepTelephone StepKind = "telephone"
	StepAddress   StepKind = "address"
	StepDate      StepKind = "date"
	StepTime      StepKind = "time"

	// StepApproximate scales large numbers to thousand, million, billion or
	// trillion. Unit is spoken after the magnitude.
	StepApproximate StepKind = "approximate"

	// StepPercent reads a percentage, rounded when Precision is set.
	StepPercent StepKind = "percent"

	// StepPrice reads an amount of money in Currency, falling back to the
	// request and then the server currency.
	StepPrice StepKind = "price"
)

// StepKinds lists every kind a script may use.
func StepKinds() []StepKind {
	return []StepKind{
		StepText, StepSay, StepPause, StepSpell, StepCardinal, StepNumber,
		StepOrdinal, StepDigits, StepFraction, StepTelephone, StepAddress,
		StepDate, StepTime, StepApproximate, StepPercent, StepPrice,
	}
}

// Step is one builder call in a script.
type Step struct {
	// Kind is the operation to perform.
	Kind StepKind `json:"kind" yaml:"kind"`

	// Value is the text or number the step formats.
	Value any `json:"value,omitempty" yaml:"value,omitempty" swaggertype:"string"`

	// Singular and Plural are cardinal unit labels.
	Singular string `json:"singular,omitempty" yaml:"singular,omitempty"`
	Plural   string `json:"plural,omitempty" yaml:"plural,omitempty"`

	// Unit follows an approximated number (e.g. "people").
	Unit string `json:"unit,omitempty" yaml:"unit,omitempty"`

	// Precision is the number of decimals for a percent.
	Precision *int `json:"precision,omitempty" yaml:"precision,omitempty"`

	// Currency overrides the units of a price step.
	Currency *speech.Currency `json:"currency,omitempty" yaml:"currency,omitempty"`
}

// RenderRequest is a speech script submitted for rendering.
type RenderRequest struct {
	// ID identifies the request. Generated when empty.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Source identifies the caller (e.g. "ivr-billing", "alexa-skill").
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Currency sets the default units for every price step in the script.
	Currency *speech.Currency `json:"currency,omitempty" yaml:"currency,omitempty"`

	// Steps are applied to the builder in order.
	Steps []Step `json:"steps" yaml:"steps"`
}

// RenderResult is the outcome of rendering a script.
type RenderResult struct {
	// RequestID is the ID of the rendered request.
	RequestID string `json:"request_id"`

	// SSML is the rendered <speak> document.
	SSML string `json:"ssml,omitempty"`

	// Fragments is the number of markup fragments in the document.
	Fragments int `json:"fragments"`

	// Error is set when the script was rejected.
	Error string `json:"error,omitempty"`
}
