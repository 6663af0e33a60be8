package speech

// Kind is an SSML say-as interpret-as value.
type Kind string

const (
	KindSpellOut  Kind = "spell-out"
	KindCardinal  Kind = "cardinal"
	KindOrdinal   Kind = "ordinal"
	KindDigits    Kind = "digits"
	KindFraction  Kind = "fraction"
	KindTelephone Kind = "telephone"
	KindAddress   Kind = "address"
	KindDate      Kind = "date"
	KindTime      Kind = "time"
)

const (
	speakOpen   = "<speak>"
	speakClose  = "</speak>"
	sayAsClose  = "</say-as>"
	breakPrefix = `<break time="`
	breakSuffix = `s"/>`
)

// openTags maps each kind to its opening say-as tag.
var openTags = map[Kind]string{
	KindSpellOut:  `<say-as interpret-as="spell-out">`,
	KindCardinal:  `<say-as interpret-as="cardinal">`,
	KindOrdinal:   `<say-as interpret-as="ordinal">`,
	KindDigits:    `<say-as interpret-as="digits">`,
	KindFraction:  `<say-as interpret-as="fraction">`,
	KindTelephone: `<say-as interpret-as="telephone">`,
	KindAddress:   `<say-as interpret-as="address">`,
	KindDate:      `<say-as interpret-as="date">`,
	KindTime:      `<say-as interpret-as="time">`,
}

// Kinds returns every supported interpret-as kind.
func Kinds() []Kind {
	return []Kind{
		KindSpellOut, KindCardinal, KindOrdinal, KindDigits, KindFraction,
		KindTelephone, KindAddress, KindDate, KindTime,
	}
}

func sayAs(kind Kind, value string) string {
	return openTags[kind] + value + sayAsClose
}
