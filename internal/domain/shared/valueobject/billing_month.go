package valueobject

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// BillingMonth is a value object for the "MM-YYYY" month encoding used on
// readings and invoices. It is compared by (year, month), never lexically.
type BillingMonth struct {
	month int // 1-12
	year  int
}

var billingMonthPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])-(\d{4})$`)

// ParseBillingMonth parses a "MM-YYYY" string into a BillingMonth
func ParseBillingMonth(s string) (BillingMonth, error) {
	matches := billingMonthPattern.FindStringSubmatch(s)
	if matches == nil {
		return BillingMonth{}, fmt.Errorf("invalid billing month %q: expected MM-YYYY", s)
	}
	month, _ := strconv.Atoi(matches[1])
	year, _ := strconv.Atoi(matches[2])
	return BillingMonth{month: month, year: year}, nil
}

// NewBillingMonth creates a BillingMonth from numeric month and year
func NewBillingMonth(month, year int) (BillingMonth, error) {
	if month < 1 || month > 12 {
		return BillingMonth{}, fmt.Errorf("invalid month %d: must be 1-12", month)
	}
	if year < 2000 || year > 9999 {
		return BillingMonth{}, fmt.Errorf("invalid year %d", year)
	}
	return BillingMonth{month: month, year: year}, nil
}

// BillingMonthOf returns the BillingMonth containing the given time
func BillingMonthOf(t time.Time) BillingMonth {
	return BillingMonth{month: int(t.Month()), year: t.Year()}
}

// Month returns the calendar month (1-12)
func (b BillingMonth) Month() int {
	return b.month
}

// Year returns the calendar year
func (b BillingMonth) Year() int {
	return b.year
}

// IsZero returns true for the zero value
func (b BillingMonth) IsZero() bool {
	return b.month == 0 && b.year == 0
}

// String returns the canonical "MM-YYYY" encoding
func (b BillingMonth) String() string {
	return fmt.Sprintf("%02d-%04d", b.month, b.year)
}

// Days returns the number of calendar days in the month
func (b BillingMonth) Days() int {
	// day 0 of the next month is the last day of this month
	return time.Date(b.year, time.Month(b.month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Start returns midnight UTC of the first day of the month
func (b BillingMonth) Start() time.Time {
	return time.Date(b.year, time.Month(b.month), 1, 0, 0, 0, 0, time.UTC)
}

// End returns midnight UTC of the first day of the following month
func (b BillingMonth) End() time.Time {
	return time.Date(b.year, time.Month(b.month)+1, 1, 0, 0, 0, 0, time.UTC)
}

// Next returns the following billing month
func (b BillingMonth) Next() BillingMonth {
	if b.month == 12 {
		return BillingMonth{month: 1, year: b.year + 1}
	}
	return BillingMonth{month: b.month + 1, year: b.year}
}

// Previous returns the preceding billing month
func (b BillingMonth) Previous() BillingMonth {
	if b.month == 1 {
		return BillingMonth{month: 12, year: b.year - 1}
	}
	return BillingMonth{month: b.month - 1, year: b.year}
}

// Equals returns true when both values denote the same month
func (b BillingMonth) Equals(other BillingMonth) bool {
	return b.month == other.month && b.year == other.year
}

// Before returns true when b precedes other
func (b BillingMonth) Before(other BillingMonth) bool {
	if b.year != other.year {
		return b.year < other.year
	}
	return b.month < other.month
}

// After returns true when b follows other
func (b BillingMonth) After(other BillingMonth) bool {
	return other.Before(b)
}

// Contains reports whether t falls inside the month
func (b BillingMonth) Contains(t time.Time) bool {
	return t.Year() == b.year && int(t.Month()) == b.month
}

// MarshalJSON encodes the month as its "MM-YYYY" string
func (b BillingMonth) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(b.String())), nil
}

// UnmarshalJSON decodes a "MM-YYYY" string
func (b *BillingMonth) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("invalid billing month JSON: %w", err)
	}
	parsed, err := ParseBillingMonth(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Value implements driver.Valuer; stored as the "MM-YYYY" string
func (b BillingMonth) Value() (driver.Value, error) {
	return b.String(), nil
}

// Scan implements sql.Scanner
func (b *BillingMonth) Scan(value any) error {
	if value == nil {
		*b = BillingMonth{}
		return nil
	}

	var strVal string
	switch v := value.(type) {
	case string:
		strVal = v
	case []byte:
		strVal = string(v)
	default:
		return fmt.Errorf("cannot scan %T into BillingMonth", value)
	}

	parsed, err := ParseBillingMonth(strVal)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
