package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "123.45", want: "123.45"},
		{name: "thousands separator", input: "1,234.56", want: "1234.56"},
		{name: "ringgit prefix", input: "RM 100.00", want: "100"},
		{name: "myr prefix", input: "MYR2,500.00", want: "2500"},
		{name: "negative preserved", input: "-150.00", want: "-150"},
		{name: "empty", input: "  ", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{name: "slash dmy", input: "15/02/2026", want: time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)},
		{name: "short year", input: "15/02/26", want: time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)},
		{name: "iso", input: "2026-02-15", want: time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)},
		{name: "named month", input: "15 Feb 2026", want: time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)},
		{name: "yearless", input: "15/02", want: time.Date(0, 2, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}

	_, err := ParseDate("not a date")
	assert.Error(t, err)
}

func TestFixYear(t *testing.T) {
	statement := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	// A December line on a January statement belongs to the previous year.
	dec, err := ParseDate("28/12")
	require.NoError(t, err)
	assert.Equal(t, 2025, FixYear(dec, statement).Year())

	jan, err := ParseDate("05/01")
	require.NoError(t, err)
	assert.Equal(t, 2026, FixYear(jan, statement).Year())

	// Dates that already carry a year pass through untouched.
	full, err := ParseDate("05/01/2024")
	require.NoError(t, err)
	assert.Equal(t, 2024, FixYear(full, statement).Year())
}
