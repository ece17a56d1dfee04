package output

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FilterRows keeps the rows where pattern matches a cell, or one item of a
// comma separated cell. Matching is case-insensitive. An empty pattern keeps
// every row.
func FilterRows(rows [][]string, pattern string) ([][]string, error) {
	if pattern == "" {
		return rows, nil
	}
	pattern = strings.ToLower(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid filter pattern %q", pattern)
	}

	var filtered [][]string
	for _, row := range rows {
		if matchRow(row, pattern) {
			filtered = append(filtered, row)
		}
	}
	return filtered, nil
}

func matchRow(row []string, pattern string) bool {
	for _, cell := range row {
		candidates := append([]string{cell}, strings.Split(cell, ",")...)
		for _, c := range candidates {
			c = strings.ToLower(strings.TrimSpace(c))
			if matched, _ := doublestar.Match(pattern, c); matched {
				return true
			}
		}
	}
	return false
}
