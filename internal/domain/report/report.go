// Package report renders weekly hour totals as a fixed-width text
// table. Column boundaries are positional: the name column is sized to
// the longest name, and hour values are right-aligned by padding
// four-character amounts with one extra space.
package report

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bva/billabot/internal/domain/model"
)

const (
	headerName    = "NAME:"
	headerColumns = "BILLABLE:  TOTAL:"
	columnGap     = 6
)

// Build renders totals into a table that aligns under a monospace
// font. Returns ErrNoTotals when totals is empty, since the
// longest-name computation is undefined on an empty batch.
func Build(totals []model.Total) (string, error) {
	if len(totals) == 0 {
		return "", ErrNoTotals
	}

	longest := 0
	for _, t := range totals {
		if n := utf8.RuneCountInString(t.Name); n > longest {
			longest = n
		}
	}

	var b strings.Builder
	b.WriteString(headerName)
	b.WriteString(spaces(longest - len(headerName) + 2))
	b.WriteString(headerColumns)
	b.WriteByte('\n')

	for _, t := range totals {
		b.WriteString(t.Name)
		b.WriteString(spaces(longest - utf8.RuneCountInString(t.Name) + 2))
		b.WriteString(formatHours(t.BillableHours))
		b.WriteString(spaces(columnGap))
		b.WriteString(formatHours(t.TotalHours))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// formatHours renders an hour value with two decimal places, left-
// padded so single-digit amounts line up against double-digit ones.
func formatHours(hours float64) string {
	s := strconv.FormatFloat(hours, 'f', 2, 64)
	if len(s) == 4 {
		s = " " + s
	}
	return s
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
