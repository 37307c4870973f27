package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseBonusAmount normalises a spreadsheet amount such as "25%", " 1,000 % " or "30" to an int.
// Amounts are whole percentage points.
func ParseBonusAmount(raw string) (int, error) {
	cleaned := strings.NewReplacer("%", "", ",", "", " ", "", "\u00a0", "").Replace(raw)
	if cleaned == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidBonusAmount)
	}

	amount, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, fmt.Errorf("invalid bonus amount %q: %w", raw, err)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidBonusAmount, amount)
	}

	return amount, nil
}

// ParseSongDuration accepts "m:ss", "h:mm:ss" or a raw number of seconds
func ParseSongDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	parts := strings.Split(raw, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid song duration %q", raw)
	}

	var total int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid song duration %q", raw)
		}
		// seconds and minutes fields after the first must stay below 60
		if i > 0 && n >= 60 {
			return 0, fmt.Errorf("invalid song duration %q", raw)
		}
		total = total*60 + n
	}

	return time.Duration(total) * time.Second, nil
}
