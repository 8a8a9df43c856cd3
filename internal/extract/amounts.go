package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// amountCleaner strips thousands separators and currency markers before
// decimal parsing. Malaysian statements prefix RM or MYR; OCR sometimes
// renders the pound/dollar sign on foreign-currency cards.
var amountCleaner = strings.NewReplacer(
	",", "",
	"RM", "",
	"MYR", "",
	"£", "",
	"$", "",
	" ", "",
)

// ParseAmount parses a monetary amount tolerating thousands separators and a
// leading or trailing currency marker. The sign, if any, is preserved;
// direction handling belongs to the per-format layout logic.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := amountCleaner.Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparseable amount %q: %w", s, err)
	}
	return d, nil
}

// statementDateFormats covers the date shapes seen across supported layouts.
var statementDateFormats = []string{
	"02/01/2006",
	"02/01/06",
	"02-01-2006",
	"2006-01-02",
	"02 Jan 2006",
	"02 Jan 06",
	"02-Jan-2006",
	"02-Jan-06",
	// Year-less credit-card line dates; resolved later via FixYear.
	"02/01",
	"02 Jan",
}

// ParseDate tries each known statement date format in order.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, format := range statementDateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unknown date format: %q", s)
}

// FixYear resolves day/month-only transaction dates against the statement
// date. Credit-card layouts print lines without a year; a transaction month
// later than the statement month belongs to the previous year.
func FixYear(t, statementDate time.Time) time.Time {
	if t.Year() != 0 {
		return t
	}
	year := statementDate.Year()
	if t.Month() > statementDate.Month() {
		year--
	}
	return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
