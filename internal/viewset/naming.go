package viewset

import "strings"

// splitWords cuts a Go-style entity name ("PendingItem") into lowercase words.
func splitWords(name string) []string {
	var words []string
	var current strings.Builder
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			words = append(words, strings.ToLower(current.String()))
			current.Reset()
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		words = append(words, strings.ToLower(current.String()))
	}
	return words
}

// snakeCase turns "PendingItem" into "pending_item".
func snakeCase(name string) string {
	return strings.Join(splitWords(name), "_")
}

// kebabCase turns "PendingItem" into "pending-item". Used for URL segments.
func kebabCase(name string) string {
	return strings.Join(splitWords(name), "-")
}

func snakePlural(name string) string {
	return snakeCase(name) + "s"
}

func kebabPlural(name string) string {
	return kebabCase(name) + "s"
}
