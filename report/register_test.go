package report

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guestdesk/guestdesk/internal/ledger"
)

func makeEntries(n int) []ledger.Entry {
	entries := make([]ledger.Entry, 0, n)
	for i := 1; i <= n; i++ {
		entries = append(entries, ledger.Entry{
			ID:             fmt.Sprintf("id-%d", i),
			EnvelopeNumber: i,
			Name:           fmt.Sprintf("guest %d", i),
			Amount:         10000,
			Timestamp:      time.Now(),
		})
	}
	return entries
}

func TestBuildRegisterPagination(t *testing.T) {
	reg := BuildRegister("Guest Book", makeEntries(45), time.Now())

	require.Len(t, reg.Pages, 3)
	for _, p := range reg.Pages {
		assert.Len(t, p.Rows, RowsPerPage)
		assert.Equal(t, 3, p.Total)
	}

	// Third page holds entries 41-45 and pads 15 blank rows numbered
	// continuously from the preceding count.
	last := reg.Pages[2]
	assert.Equal(t, 41, last.Rows[0].Number)
	assert.False(t, last.Rows[4].Blank)
	assert.True(t, last.Rows[5].Blank)
	assert.Equal(t, 46, last.Rows[5].Number)
	assert.True(t, last.Rows[19].Blank)
	assert.Equal(t, 60, last.Rows[19].Number)
}

func TestBuildRegisterSortsByEnvelopeNumber(t *testing.T) {
	entries := []ledger.Entry{
		{ID: "b", EnvelopeNumber: 2, Name: "B"},
		{ID: "a", EnvelopeNumber: 1, Name: "A"},
	}
	reg := BuildRegister("Guest Book", entries, time.Now())
	require.Len(t, reg.Pages, 1)
	assert.Equal(t, "A", reg.Pages[0].Rows[0].Name)
	assert.Equal(t, "B", reg.Pages[0].Rows[1].Name)
}

func TestBuildRegisterEmptyLedgerHasOnlySummary(t *testing.T) {
	reg := BuildRegister("Guest Book", nil, time.Now())
	assert.Empty(t, reg.Pages)
	assert.Equal(t, 0, reg.Summary.TotalGuests)
	assert.Equal(t, "영원", reg.Summary.AmountInWords)
}

func TestBuildRegisterSummary(t *testing.T) {
	entries := []ledger.Entry{
		{ID: "a", EnvelopeNumber: 1, Name: "A", Amount: 100000, MealTickets: 2},
		{ID: "b", EnvelopeNumber: 2, Name: "B", Amount: 25000, MealTickets: 1, Message: "신랑 친구"},
	}
	reg := BuildRegister("Guest Book", entries, time.Now())

	assert.Equal(t, 2, reg.Summary.TotalGuests)
	assert.Equal(t, "125,000", reg.Summary.TotalAmount)
	assert.Equal(t, "일금 십이만오천원정", reg.Summary.AmountInWords)
	assert.Equal(t, 3, reg.Summary.TotalMealTickets)

	row := reg.Pages[0].Rows[1]
	assert.Equal(t, "식권 1장 · 신랑 친구", row.Remarks)
	assert.Equal(t, "25,000", row.Amount)
}

func TestRenderHTML(t *testing.T) {
	reg := BuildRegister("결혼식 방명록", makeEntries(3), time.Date(2026, 5, 16, 0, 0, 0, 0, time.UTC))
	html, err := RenderHTML(reg)
	require.NoError(t, err)

	assert.True(t, strings.Contains(html, "결혼식 방명록"))
	assert.True(t, strings.Contains(html, "2026년 5월 16일"))
	assert.True(t, strings.Contains(html, "위와 같이 정히 영수함."))
	assert.True(t, strings.Contains(html, "1 / 1"))
}
