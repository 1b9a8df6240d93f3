package parser

import (
	"strings"
	"unicode"
)

// delimiter characters that may separate a booth number from its name.
func isNameDelimiter(r rune) bool {
	return unicode.IsSpace(r) || r == '-' || r == ':' || r == '：'
}

func isCurrency(r rune) bool {
	return r == '¥' || r == '￥'
}

// nameStop characters end a name outright.
func isNameStop(r rune) bool {
	switch r {
	case '，', '。', ',', '；', ';':
		return true
	}
	return false
}

// trailingJunk is stripped from the end of an extracted name.
const trailingJunk = "，。,.；;】]）)"

// extractName pulls a display name out of the text following a matched booth
// number. The primary scan starts after a run of delimiter characters and
// ends before a two-or-more-space gap, a punctuation stop, or a token that
// carries a currency price. firstCharExcluded rejects name candidates whose
// first character falls in the given set; when the primary scan yields
// nothing, the first non-space, non-currency token is used instead.
func extractName(after string, firstCharExcluded func(rune) bool) string {
	name := scanDelimitedName(after, firstCharExcluded)
	if name == "" {
		name = firstSimpleToken(after)
	}
	return strings.TrimSpace(strings.TrimRight(name, trailingJunk))
}

func scanDelimitedName(after string, firstCharExcluded func(rune) bool) string {
	runes := []rune(after)

	i := 0
	for i < len(runes) && isNameDelimiter(runes[i]) {
		i++
	}
	if i == 0 || i >= len(runes) {
		return ""
	}
	if firstCharExcluded(runes[i]) {
		return ""
	}

	start := i
	for i < len(runes) {
		r := runes[i]
		switch {
		case isNameStop(r):
			return string(runes[start:i])
		case isCurrency(r) && i+1 < len(runes) && unicode.IsDigit(runes[i+1]):
			return string(runes[start:i])
		case unicode.IsSpace(r):
			if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) {
				return string(runes[start:i])
			}
			if tokenHasPrice(runes[i+1:]) {
				return string(runes[start:i])
			}
			i++
		default:
			i++
		}
	}
	return string(runes[start:])
}

// tokenHasPrice reports whether the whitespace-delimited token starting at
// runes[0] contains a currency symbol followed by a digit.
func tokenHasPrice(runes []rune) bool {
	for i := 0; i < len(runes) && !unicode.IsSpace(runes[i]); i++ {
		if isCurrency(runes[i]) && i+1 < len(runes) && unicode.IsDigit(runes[i+1]) {
			return true
		}
	}
	return false
}

func firstSimpleToken(after string) string {
	runes := []rune(after)

	i := 0
	for i < len(runes) && isNameDelimiter(runes[i]) {
		i++
	}
	start := i
	for i < len(runes) && !unicode.IsSpace(runes[i]) && !isCurrency(runes[i]) {
		i++
	}
	return string(runes[start:i])
}
