package helpers

import (
	"context"
	"strings"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

// NormalizeEmails - обрезает пробелы, приводит к нижнему регистру, убирает пустые и повторы
func NormalizeEmails(list []string) []string {
	result := make([]string, 0, len(list))
	seen := map[string]bool{}
	for _, item := range list {
		email := strings.ToLower(strings.TrimSpace(item))
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true
		result = append(result, email)
	}
	return result
}
