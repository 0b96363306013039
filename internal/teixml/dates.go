package teixml

import (
	"fmt"
	"time"
)

var romanianMonths = [...]string{
	"ianuarie", "februarie", "martie", "aprilie", "mai", "iunie",
	"iulie", "august", "septembrie", "octombrie", "noiembrie", "decembrie",
}

// FormatDateRo renders a date the way Romanian session headings do,
// e.g. "13 decembrie 2004".
func FormatDateRo(d time.Time) string {
	return fmt.Sprintf("%d %s %d", d.Day(), romanianMonths[d.Month()-1], d.Year())
}

// FormatDateEn renders a date for the English titles, e.g.
// "December 13 2004".
func FormatDateEn(d time.Time) string {
	return fmt.Sprintf("%s %d %d", d.Month().String(), d.Day(), d.Year())
}

// FormatDateISO renders a date as yyyy-MM-dd.
func FormatDateISO(d time.Time) string {
	return d.Format("2006-01-02")
}

// FormatDateDisplay renders a date as dd.MM.yyyy for date element text.
func FormatDateDisplay(d time.Time) string {
	return d.Format("02.01.2006")
}

// FormatDateCompact renders a date as yyyyMMdd for meeting numbers and
// canonical URIs.
func FormatDateCompact(d time.Time) string {
	return d.Format("20060102")
}
