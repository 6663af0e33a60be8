package script

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/nadzzz/sayas/internal/message"
	"github.com/nadzzz/sayas/internal/speech"
)

// Compile applies steps to b in order. It stops at the first step whose
// kind is unknown; steps before it stay applied.
func Compile(b *speech.Builder, steps []message.Step) error {
	for i, s := range steps {
		if err := apply(b, s); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

func apply(b *speech.Builder, s message.Step) error {
	switch s.Kind {
	case message.StepText, message.StepSay:
		b.Say(cast.ToString(s.Value))
	case message.StepPause:
		b.Pause(s.Value)
	case message.StepSpell:
		b.Spell(cast.ToString(s.Value))
	case message.StepCardinal, message.StepNumber:
		b.CardinalUnits(s.Value, s.Singular, s.Plural)
	case message.StepOrdinal:
		b.Ordinal(s.Value)
	case message.StepDigits:
		b.Digits(s.Value)
	case message.StepFraction:
		b.Fraction(s.Value)
	case message.StepTelephone:
		b.Telephone(s.Value)
	case message.StepAddress:
		b.Address(cast.ToString(s.Value))
	case message.StepDate:
		b.Date(cast.ToString(s.Value))
	case message.StepTime:
		b.Time(cast.ToString(s.Value))
	case message.StepApproximate:
		b.ApproximateFactor(s.Value, s.Unit)
	case message.StepPercent:
		if s.Precision != nil {
			b.PercentPrecision(s.Value, *s.Precision)
		} else {
			b.Percent(s.Value)
		}
	case message.StepPrice:
		if s.Currency != nil {
			b.PriceIn(s.Value, *s.Currency)
		} else {
			b.Price(s.Value)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}
	return nil
}
