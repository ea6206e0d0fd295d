// pkg/validator/duplicates.go
package validator

import "strings"

// FindDuplicates groups values case-insensitively, ignoring blanks, and
// returns only the normalized values that occur more than once, mapped
// to every zero-based index where they appear.
func FindDuplicates(values []string) map[string][]int {
	groups := make(map[string][]int)
	for i, v := range values {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], i)
	}
	for key, indices := range groups {
		if len(indices) < 2 {
			delete(groups, key)
		}
	}
	return groups
}
