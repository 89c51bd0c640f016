// Package budget provides token estimation and budget-based file
// selection so packed output fits within LLM context windows.
package budget

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads a token budget string with an optional k/M suffix.
// "100000", "100k", "100K", "2m" and "2M" are all accepted.
func Parse(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty token budget value")
	}

	multiplier := 1
	numberPart := value
	switch value[len(value)-1] {
	case 'k', 'K':
		numberPart = value[:len(value)-1]
		multiplier = 1_000
	case 'm', 'M':
		numberPart = value[:len(value)-1]
		multiplier = 1_000_000
	}

	n, err := strconv.Atoi(numberPart)
	if err != nil {
		return 0, fmt.Errorf("invalid token budget format: %q, expected format: 123, 100k, 2M", value)
	}
	return n * multiplier, nil
}

// FormatNumber renders n with thousand separators for reports.
func FormatNumber(n int) string {
	s := strconv.Itoa(n)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}
