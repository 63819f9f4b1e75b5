package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrOutOfRange   = errors.New("value out of range")
	ErrInvalidRange = errors.New("invalid range")
)

// NumberInput holds the raw text last entered into a bounded numeric field
// and forwards every change unchanged to OnChange.
type NumberInput struct {
	Min      float64
	Max      float64
	OnChange func(value string)
	value    string
}

func NewNumberInput(min, max float64, onChange func(string)) *NumberInput {
	return &NumberInput{Min: min, Max: max, OnChange: onChange}
}

func (n *NumberInput) Change(value string) {
	n.value = value
	if n.OnChange != nil {
		n.OnChange(value)
	}
}

func (n *NumberInput) Value() string {
	return n.value
}

func (n *NumberInput) Number() (float64, bool) {
	v := strings.TrimSpace(n.value)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (n *NumberInput) InRange() bool {
	f, ok := n.Number()
	return ok && f >= n.Min && f <= n.Max
}

// RangeValue builds the "lo-hi" value used by range filters from two
// inputs sharing the same bounds.
func RangeValue(lo, hi *NumberInput) (string, error) {
	if !lo.InRange() || !hi.InRange() {
		return "", fmt.Errorf("%w: %q-%q", ErrOutOfRange, lo.Value(), hi.Value())
	}
	low, _ := lo.Number()
	high, _ := hi.Number()
	if low > high {
		return "", fmt.Errorf("%w: %v > %v", ErrInvalidRange, low, high)
	}
	return formatNumber(low) + "-" + formatNumber(high), nil
}

// ParseRange reads a "lo-hi" value.
func ParseRange(value string) (low, high float64, ok bool) {
	n, err := fmt.Sscanf(value, "%f-%f", &low, &high)
	if err != nil || n != 2 || low > high {
		return 0, 0, false
	}
	return low, high, true
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
