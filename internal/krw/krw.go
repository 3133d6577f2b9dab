// Package krw renders KRW amounts for human eyes: the formal numeral
// phrase used on gift registers and ko-KR digit grouping.
package krw

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	units  = []string{"", "만", "억", "조"}
	digits = []string{"", "일", "이", "삼", "사", "오", "육", "칠", "팔", "구"}
	places = []string{"", "십", "백", "천"}
)

// Phrase renders an amount as the formal phrase written on a register,
// e.g. 125000 → "일금 십이만오천원정". Zero is the fixed literal "영원".
func Phrase(amount int64) string {
	if amount == 0 {
		return "영원"
	}

	result := ""
	for unit := 0; amount > 0 && unit < len(units); unit++ {
		part := amount % 10000
		if part > 0 {
			result = group(int(part)) + units[unit] + result
		}
		amount /= 10000
	}
	return "일금 " + result + "원정"
}

// group spells a 1..9999 block: digit name plus place name per non-zero
// digit, e.g. 1205 → "천이백오". A leading 일 is dropped before 십, 백
// and 천 (십이만, not 일십이만) but kept for a bare group (일만, 일억).
func group(part int) string {
	s := ""
	for place := 0; part > 0; place++ {
		switch d := part % 10; {
		case d == 1 && place > 0:
			s = places[place] + s
		case d > 0:
			s = digits[d] + places[place] + s
		}
		part /= 10
	}
	return s
}

var printer = message.NewPrinter(language.Korean)

// Format renders an amount with ko-KR digit grouping, e.g. "1,234,567".
func Format(amount int64) string {
	return printer.Sprintf("%d", amount)
}
