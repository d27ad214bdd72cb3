package tui

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aalvaropc/skein/internal/domain"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

// cellText renders a raw field value; blank values show a dash.
func cellText(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return clampString(s, cellWidth-2)
}

func formatFigure(v float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// rowMeterage shows a zero figure while the row cannot be parsed yet.
func rowMeterage(e domain.YarnEntry, precision int) string {
	m, ok := e.MeteragePer100g()
	if !ok {
		m = 0
	}
	return formatFigure(m, precision)
}
