// Package report builds the printable guest register: fixed-size pages
// of envelope rows padded with blank numbered lines, closed by a summary
// page, rendered to HTML and optionally to PDF via Gotenberg.
package report

import (
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/guestdesk/guestdesk/internal/krw"
	"github.com/guestdesk/guestdesk/internal/ledger"
)

// RowsPerPage is the number of register lines on one printed page.
const RowsPerPage = 20

// Row is one printed register line. Blank rows keep their running
// number so a page always shows RowsPerPage numbered lines.
type Row struct {
	Number  int
	Name    string
	Amount  string
	Remarks string
	Blank   bool
}

// Page is one content page of the register.
type Page struct {
	Number int
	Total  int
	Rows   []Row
}

// Summary is the closing page.
type Summary struct {
	TotalGuests      int
	TotalAmount      string
	AmountInWords    string
	TotalMealTickets int
}

// Register is the full printable document.
type Register struct {
	Title   string
	Date    string
	Pages   []Page
	Summary Summary
}

// BuildRegister lays the entries out in envelope-number order across
// RowsPerPage-row pages. Short pages are padded with blank rows whose
// numbers continue from the preceding count. An empty ledger produces
// no content pages, only the summary.
func BuildRegister(title string, entries []ledger.Entry, now time.Time) Register {
	sorted := make([]ledger.Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].EnvelopeNumber < sorted[j].EnvelopeNumber
	})

	var pages []Page
	for start := 0; start < len(sorted); start += RowsPerPage {
		end := start + RowsPerPage
		if end > len(sorted) {
			end = len(sorted)
		}

		rows := make([]Row, 0, RowsPerPage)
		for _, e := range sorted[start:end] {
			amount := "-"
			if e.Amount > 0 {
				amount = krw.Format(e.Amount)
			}
			rows = append(rows, Row{
				Number:  e.EnvelopeNumber,
				Name:    e.Name,
				Amount:  amount,
				Remarks: remarks(e),
			})
		}
		for len(rows) < RowsPerPage {
			rows = append(rows, Row{Number: start + len(rows) + 1, Blank: true})
		}
		pages = append(pages, Page{Number: len(pages) + 1, Rows: rows})
	}
	for i := range pages {
		pages[i].Total = len(pages)
	}

	stats := ledger.ComputeStats(entries)
	return Register{
		Title: title,
		Date:  now.Format("2006년 1월 2일"),
		Pages: pages,
		Summary: Summary{
			TotalGuests:      stats.TotalGuests,
			TotalAmount:      krw.Format(stats.TotalAmount),
			AmountInWords:    krw.Phrase(stats.TotalAmount),
			TotalMealTickets: stats.TotalMealTickets,
		},
	}
}

// remarks composes the 비고 column: meal tickets, then the note.
func remarks(e ledger.Entry) string {
	var parts []string
	if e.MealTickets > 0 {
		parts = append(parts, fmt.Sprintf("식권 %d장", e.MealTickets))
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	return strings.Join(parts, " · ")
}

var registerTemplate = template.Must(template.New("register").Parse(`<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: A4 landscape; margin: 15mm; }
body { font-family: serif; color: #000; background: #fff; }
.page { page-break-after: always; padding: 2rem; }
.page:last-child { page-break-after: auto; }
h1 { text-align: center; letter-spacing: .3em; border-bottom: 2px solid #333; padding-bottom: .5rem; }
.date { text-align: center; color: #666; font-size: .85rem; }
table { width: 100%; border-collapse: collapse; font-size: .9rem; }
th { border-bottom: 2px solid #999; padding: .4rem; }
td { border-bottom: 1px solid #ddd; padding: .4rem; text-align: center; }
td.remarks { text-align: left; color: #555; font-size: .8rem; }
td.blank { color: #ccc; }
.footer { text-align: center; color: #999; font-size: .75rem; margin-top: 1rem; }
.summary dl { max-width: 32rem; margin: 2rem auto; }
.summary div { display: flex; justify-content: space-between; border-bottom: 1px solid #ccc; padding: 1rem 0; font-size: 1.2rem; }
.words { text-align: right; color: #555; max-width: 32rem; margin: 0 auto; }
.closing { text-align: center; color: #666; margin-top: 3rem; }
</style>
</head>
<body>
{{range .Pages}}
<div class="page">
<h1>{{$.Title}}</h1>
{{if eq .Number 1}}<p class="date">{{$.Date}}</p>{{end}}
<table>
<thead>
<tr><th>번호</th><th>성 명</th><th>축의금 및 선물</th><th>비 고</th></tr>
</thead>
<tbody>
{{range .Rows}}
{{if .Blank}}<tr><td class="blank">{{.Number}}</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td></tr>
{{else}}<tr><td>{{.Number}}</td><td>{{.Name}}</td><td>{{.Amount}}</td><td class="remarks">{{.Remarks}}</td></tr>
{{end}}
{{end}}
</tbody>
</table>
<div class="footer">{{.Number}} / {{.Total}}</div>
</div>
{{end}}
<div class="page summary">
<h1>합 계</h1>
<dl>
<div><dt>총 인원</dt><dd>{{.Summary.TotalGuests}}명</dd></div>
<div><dt>축의금 합계</dt><dd>{{.Summary.TotalAmount}}</dd></div>
</dl>
<p class="words">{{.Summary.AmountInWords}}</p>
<dl>
<div><dt>식권 합계</dt><dd>{{.Summary.TotalMealTickets}}장</dd></div>
</dl>
<p class="closing">위와 같이 정히 영수함.</p>
</div>
</body>
</html>
`))

// RenderHTML renders the register document.
func RenderHTML(reg Register) (string, error) {
	var sb strings.Builder
	if err := registerTemplate.Execute(&sb, reg); err != nil {
		return "", fmt.Errorf("report: render register: %w", err)
	}
	return sb.String(), nil
}
