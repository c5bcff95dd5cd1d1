package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "R$ 0,00"},
		{"cents only", 0.5, "R$ 0,50"},
		{"no thousands", 999.99, "R$ 999,99"},
		{"single thousand", 1234.5, "R$ 1.234,50"},
		{"million", 1000000, "R$ 1.000.000,00"},
		{"rounding", 10.005, "R$ 10,01"},
		{"negative", -1234.5, "R$ -1.234,50"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Format(tc.amount))
		})
	}
}

func TestFormatPtr(t *testing.T) {
	assert.Equal(t, "R$ 0,00", FormatPtr(nil))

	v := 1200.0
	assert.Equal(t, "R$ 1.200,00", FormatPtr(&v))
}
