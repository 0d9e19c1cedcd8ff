package strutils

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToTitleCase returns the string with the first letter of each word capitalized.
// e.g. "rockchip" → "Rockchip"
func ToTitleCase(s string) string {
	caser := cases.Title(language.English)
	return caser.String(strings.ToLower(s))
}

// Capitalize returns the string with only the first character uppercased.
func Capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])

	return string(runes)
}
