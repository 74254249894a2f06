package numeric

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "0"},
		{"blank", "   ", "0"},
		{"plain", "12.5", "12.5"},
		{"comma decimal", "12,5", "12.5"},
		{"surrounding spaces", " 4300.00 ", "4300"},
		{"thousands space", "1 234,56", "1234.56"},
		{"dot grouping comma decimal", "1.234,56", "1234.56"},
		{"comma grouping dot decimal", "1,234.56", "1234.56"},
		{"negative", "-3,5", "-3.5"},
		{"garbage", "abc", "0"},
		{"trailing unit", "12kg", "12"},
		{"double sign", "+-1", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := decimal.NewFromString(tt.want)
			assert.NoError(t, err)
			got := Parse(tt.in)
			assert.True(t, got.Equal(want), "Parse(%q) = %s, want %s", tt.in, got, want)
		})
	}
}

func TestParsePercent(t *testing.T) {
	assert.True(t, ParsePercent("10%").Equal(ParsePercent("10")))
	assert.Equal(t, "10", ParsePercent(" 10% ").String())
	assert.Equal(t, "0", ParsePercent("").String())
}

func TestFixed2(t *testing.T) {
	assert.Equal(t, "1800.00", Fixed2(Parse("1800")))
	assert.Equal(t, "12.35", Fixed2(Round2(Parse("12.345"))))
}
