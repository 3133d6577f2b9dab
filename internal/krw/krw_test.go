package krw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhrase(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{0, "영원"},
		{1000, "일금 천원정"},
		{30000, "일금 삼만원정"},
		{50000, "일금 오만원정"},
		{100000, "일금 십만원정"},
		{125000, "일금 십이만오천원정"},
		{1000000, "일금 백만원정"},
		{12345, "일금 일만이천삼백사십오원정"},
		{100000000, "일금 일억원정"},
		{350000000, "일금 삼억오천만원정"},
		{1000000000000, "일금 일조원정"},
		{100010001, "일금 일억일만일원정"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Phrase(tc.amount), "amount %d", tc.amount)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1,234,567", Format(1234567))
	assert.Equal(t, "0", Format(0))
	assert.Equal(t, "50,000", Format(50000))
}
