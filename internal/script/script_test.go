package script

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadzzz/sayas/internal/message"
	"github.com/nadzzz/sayas/internal/speech"
)

const billingJSON = `{
	"id": "req-1",
	"source": "ivr-billing",
	"steps": [
		{"kind": "text", "value": "You owe "},
		{"kind": "price", "value": 156.99},
		{"kind": "pause", "value": 1},
		{"kind": "number", "value": 1, "singular": "invoice", "plural": "invoices"},
		{"kind": "percent", "value": 0.6515, "precision": 3}
	]
}`

const billingYAML = `
id: req-1
source: ivr-billing
steps:
  - kind: text
    value: "You owe "
  - kind: price
    value: 156.99
  - kind: pause
    value: 1
  - kind: number
    value: 1
    singular: invoice
    plural: invoices
  - kind: percent
    value: 0.6515
    precision: 3
`

const billingSSML = `<speak>You owe <say-as interpret-as="cardinal">156</say-as> dollars and ` +
	`<say-as interpret-as="cardinal">99</say-as> cents<break time="1s"/>` +
	`<say-as interpret-as="cardinal">1</say-as> invoice` +
	`<say-as interpret-as="ordinal">0.651</say-as> percent</speak>`

func TestParse_Formats(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"json", billingJSON, FormatJSON},
		{"yaml", billingYAML, FormatYAML},
		{"auto json", billingJSON, FormatAuto},
		{"auto yaml", billingYAML, FormatAuto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Parse([]byte(tt.data), tt.format)
			require.NoError(t, err)
			assert.Equal(t, "req-1", req.ID)
			assert.Equal(t, "ivr-billing", req.Source)
			require.Len(t, req.Steps, 5)
			require.NoError(t, Validate(req))

			b := speech.New()
			require.NoError(t, Compile(b, req.Steps))
			assert.Equal(t, billingSSML, b.Render())
		})
	}
}

func TestParse_KeepsJSONNumbersVerbatim(t *testing.T) {
	req, err := Parse([]byte(`{"steps":[{"kind":"digits","value":12345678901234567890}]}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, json.Number("12345678901234567890"), req.Steps[0].Value)

	b := speech.New()
	require.NoError(t, Compile(b, req.Steps))
	assert.Equal(t, `<speak><say-as interpret-as="digits">12345678901234567890</say-as></speak>`, b.Render())
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"unknown json field", `{"steps":[], "voice":"x"}`, FormatJSON},
		{"unknown yaml field", "steps: []\nvoice: x\n", FormatYAML},
		{"broken json", `{"steps":`, FormatJSON},
		{"trailing json", `{"steps":[]} {}`, FormatJSON},
		{"unsupported format", `steps: []`, Format("toml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidScript))
		})
	}
}

func TestValidate(t *testing.T) {
	two := 2
	tooPrecise := 101
	tests := []struct {
		name    string
		req     message.RenderRequest
		wantErr bool
		field   string
	}{
		{"empty script", message.RenderRequest{Steps: []message.Step{}}, false, ""},
		{"percent with precision", message.RenderRequest{Steps: []message.Step{
			{Kind: message.StepPercent, Value: 0.5, Precision: &two},
		}}, false, ""},
		{"price with currency", message.RenderRequest{
			Currency: &speech.Pound,
			Steps:    []message.Step{{Kind: message.StepPrice, Value: "3.50"}},
		}, false, ""},
		{"missing steps", message.RenderRequest{}, true, "steps"},
		{"unknown kind", message.RenderRequest{Steps: []message.Step{
			{Kind: "whisper", Value: "psst"},
		}}, true, "steps.0.kind"},
		{"precision out of range", message.RenderRequest{Steps: []message.Step{
			{Kind: message.StepPercent, Value: 1, Precision: &tooPrecise},
		}}, true, "steps.0.precision"},
		{"object value", message.RenderRequest{Steps: []message.Step{
			{Kind: message.StepText, Value: map[string]any{"a": 1}},
		}}, true, "steps.0.value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.req)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidScript))

			var se *SchemaError
			require.True(t, errors.As(err, &se))
			found := false
			for _, fe := range se.Errors {
				if fe.Field == tt.field {
					found = true
				}
			}
			assert.True(t, found, "no error for field %q in %v", tt.field, se.Errors)
		})
	}
}

func TestCompile_AllKinds(t *testing.T) {
	one := 1
	steps := []message.Step{
		{Kind: message.StepSay, Value: "Hi "},
		{Kind: message.StepSpell, Value: "abc"},
		{Kind: message.StepCardinal, Value: 3},
		{Kind: message.StepOrdinal, Value: 2},
		{Kind: message.StepDigits, Value: "42"},
		{Kind: message.StepFraction, Value: "1/8"},
		{Kind: message.StepTelephone, Value: "8675309"},
		{Kind: message.StepAddress, Value: "1 Main St."},
		{Kind: message.StepDate, Value: "20161103"},
		{Kind: message.StepTime, Value: `1'15"`},
		{Kind: message.StepApproximate, Value: 12345, Unit: "people"},
		{Kind: message.StepPercent, Value: 12.25},
		{Kind: message.StepPercent, Value: 12.25, Precision: &one},
		{Kind: message.StepPrice, Value: 2, Currency: &speech.Pound},
	}

	want := speech.New().
		Say("Hi ").
		Spell("abc").
		Cardinal(3).
		Ordinal(2).
		Digits("42").
		Fraction("1/8").
		Telephone("8675309").
		Address("1 Main St.").
		Date("20161103").
		Time(`1'15"`).
		ApproximateFactor(12345, "people").
		Percent(12.25).
		PercentPrecision(12.25, 1).
		PriceIn(2, speech.Pound)

	b := speech.New()
	require.NoError(t, Compile(b, steps))
	assert.Equal(t, want.Render(), b.Render())
}

func TestCompile_UnknownKind(t *testing.T) {
	b := speech.New()
	err := Compile(b, []message.Step{
		{Kind: message.StepText, Value: "kept"},
		{Kind: "shout", Value: "HEY"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownKind))
	assert.Contains(t, err.Error(), "step 1")
	assert.Equal(t, "<speak>kept</speak>", b.Render())
}

func TestFormatDetection(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("greeting.JSON"))
	assert.Equal(t, FormatYAML, FormatFromPath("greeting.yml"))
	assert.Equal(t, FormatAuto, FormatFromPath("greeting.txt"))

	assert.Equal(t, FormatJSON, FormatFromContentType("application/json; charset=utf-8"))
	assert.Equal(t, FormatYAML, FormatFromContentType("application/yaml"))
	assert.Equal(t, FormatAuto, FormatFromContentType(""))
}

func TestSchema_IsCopy(t *testing.T) {
	s := Schema()
	require.NotEmpty(t, s)
	s[0] = 'x'
	assert.Equal(t, byte('{'), Schema()[0])
}

func TestStepKinds_MatchSchema(t *testing.T) {
	for _, k := range message.StepKinds() {
		req := message.RenderRequest{Steps: []message.Step{{Kind: k, Value: "1"}}}
		assert.NoError(t, Validate(&req), "kind %q", k)
	}
}
