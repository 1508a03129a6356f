package reader

import "strings"

// Tokenize splits text into words on spaces and newlines, dropping empty
// tokens. Other whitespace (tabs, carriage returns) stays part of a word.
func Tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '\n'
	})
}

// Join is the inverse of Tokenize up to whitespace.
func Join(words []string) string {
	return strings.Join(words, " ")
}
