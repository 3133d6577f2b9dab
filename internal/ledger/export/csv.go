// Package export renders the ledger for spreadsheet tools.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/guestdesk/guestdesk/internal/ledger"
)

const csvBufferSize = 32 * 1024

// utf8BOM makes spreadsheet tools (Excel in particular) detect UTF-8 so
// Korean names render correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var csvHeader = []string{"번호", "성명", "축의금", "식권", "비고", "등록시간"}

// WriteCSV emits one row per entry sorted ascending by envelope number,
// preceded by a UTF-8 byte-order marker and the header row. Fields
// containing delimiters, quotes or newlines are quoted with embedded
// quotes doubled, per encoding/csv.
func WriteCSV(w io.Writer, entries []ledger.Entry) error {
	buf := bufio.NewWriterSize(w, csvBufferSize)
	if _, err := buf.Write(utf8BOM); err != nil {
		return fmt.Errorf("export: write bom: %w", err)
	}

	writer := csv.NewWriter(buf)
	writer.UseCRLF = true

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}

	sorted := make([]ledger.Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].EnvelopeNumber < sorted[j].EnvelopeNumber
	})

	for _, e := range sorted {
		row := []string{
			strconv.Itoa(e.EnvelopeNumber),
			e.Name,
			strconv.FormatInt(e.Amount, 10),
			strconv.Itoa(e.MealTickets),
			e.Message,
			e.Timestamp.Format("2006-01-02 15:04"),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("export: write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("export: flush csv: %w", err)
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("export: flush buffer: %w", err)
	}
	return nil
}
