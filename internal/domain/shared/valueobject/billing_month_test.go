package valueobject

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBillingMonth(t *testing.T) {
	tests := []struct {
		input   string
		month   int
		year    int
		wantErr bool
	}{
		{"01-2026", 1, 2026, false},
		{"12-2025", 12, 2025, false},
		{"06-2024", 6, 2024, false},
		{"13-2026", 0, 0, true},
		{"00-2026", 0, 0, true},
		{"1-2026", 0, 0, true},
		{"2026-01", 0, 0, true},
		{"01/2026", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBillingMonth(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.month, got.Month())
			assert.Equal(t, tt.year, got.Year())
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestBillingMonth_Days(t *testing.T) {
	tests := []struct {
		input string
		days  int
	}{
		{"01-2026", 31},
		{"02-2026", 28},
		{"02-2024", 29}, // leap year
		{"04-2026", 30},
		{"12-2026", 31},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			bm, err := ParseBillingMonth(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.days, bm.Days())
		})
	}
}

func TestBillingMonth_Ordering(t *testing.T) {
	jan, _ := ParseBillingMonth("01-2026")
	feb, _ := ParseBillingMonth("02-2026")
	dec25, _ := ParseBillingMonth("12-2025")

	assert.True(t, jan.Before(feb))
	assert.True(t, feb.After(jan))
	assert.True(t, dec25.Before(jan))
	assert.False(t, jan.Before(jan))
	assert.True(t, jan.Equals(jan))

	// "12-2025" sorts after "01-2026" lexically; month ordering must not
	assert.True(t, "12-2025" > "01-2026")
	assert.True(t, dec25.Before(jan))
}

func TestBillingMonth_NextPrevious(t *testing.T) {
	dec, _ := ParseBillingMonth("12-2025")
	jan := dec.Next()
	assert.Equal(t, "01-2026", jan.String())
	assert.Equal(t, "12-2025", jan.Previous().String())
}

func TestBillingMonth_Contains(t *testing.T) {
	bm, _ := ParseBillingMonth("06-2026")
	assert.True(t, bm.Contains(time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)))
	assert.False(t, bm.Contains(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)))
}

func TestBillingMonth_JSONRoundTrip(t *testing.T) {
	bm, _ := ParseBillingMonth("08-2026")
	data, err := json.Marshal(bm)
	require.NoError(t, err)
	assert.Equal(t, `"08-2026"`, string(data))

	var decoded BillingMonth
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, bm.Equals(decoded))
}

func TestBillingMonth_Scan(t *testing.T) {
	var bm BillingMonth
	require.NoError(t, bm.Scan("03-2026"))
	assert.Equal(t, "03-2026", bm.String())

	var fromBytes BillingMonth
	require.NoError(t, fromBytes.Scan([]byte("11-2025")))
	assert.Equal(t, "11-2025", fromBytes.String())

	var bad BillingMonth
	assert.Error(t, bad.Scan(42))
	assert.Error(t, bad.Scan("2026-03"))
}

func TestBillingMonthOf(t *testing.T) {
	bm := BillingMonthOf(time.Date(2026, 2, 28, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, "02-2026", bm.String())
}
