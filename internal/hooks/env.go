package hooks

import (
	"fmt"
	"strings"
)

// ValidateEnv checks that every entry is a KEY=VALUE assignment.
func ValidateEnv(envSlice []string) error {
	for _, e := range envSlice {
		if _, _, err := splitAssignment(e); err != nil {
			return err
		}
	}
	return nil
}

// MergeEnv concatenates assignment lists. Later lists win for duplicate
// keys once the process environment is built.
func MergeEnv(lists ...[]string) []string {
	var n int
	for _, l := range lists {
		n += len(l)
	}
	if n == 0 {
		return nil
	}
	merged := make([]string, 0, n)
	for _, l := range lists {
		merged = append(merged, l...)
	}
	return merged
}

func splitAssignment(e string) (string, string, error) {
	key, value, ok := strings.Cut(e, "=")
	if !ok {
		return "", "", fmt.Errorf("invalid env format %q: expected KEY=VALUE", e)
	}
	if key == "" {
		return "", "", fmt.Errorf("invalid env format %q: key cannot be empty", e)
	}
	return key, value, nil
}
