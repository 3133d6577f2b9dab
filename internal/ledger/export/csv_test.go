package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guestdesk/guestdesk/internal/ledger"
)

func TestWriteCSVStartsWithBOM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
}

func TestWriteCSVRoundTrip(t *testing.T) {
	ts := time.Date(2026, 5, 16, 13, 30, 0, 0, time.Local)
	entries := []ledger.Entry{
		{ID: "b", EnvelopeNumber: 2, Name: "이영희", Amount: 100000, MealTickets: 1, Message: "축하해, \"친구\"야\n밥 먹자", Timestamp: ts},
		{ID: "a", EnvelopeNumber: 1, Name: "김철수", Amount: 50000, MealTickets: 2, Message: "같은 과, 동기", Timestamp: ts},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, entries))

	content := bytes.TrimPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF})
	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus two rows")

	assert.Equal(t, []string{"번호", "성명", "축의금", "식권", "비고", "등록시간"}, records[0])

	// Rows come back sorted ascending by envelope number with messages
	// containing commas, quotes and newlines intact.
	for i, want := range []ledger.Entry{entries[1], entries[0]} {
		row := records[i+1]
		assert.Equal(t, strconv.Itoa(want.EnvelopeNumber), row[0])
		assert.Equal(t, want.Name, row[1])
		assert.Equal(t, strconv.FormatInt(want.Amount, 10), row[2])
		assert.Equal(t, strconv.Itoa(want.MealTickets), row[3])
		assert.Equal(t, want.Message, row[4])
	}
}
