package exporter

import (
	"fmt"
	"strconv"
	"time"

	"gdchart/pkg/contracts/domain"
)

// formatFloat formats a ratio with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

func formatInt(i int) string {
	return strconv.Itoa(i)
}

// formatDate renders a date in the input layout; the zero time is empty
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}
