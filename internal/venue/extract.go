// Package venue recognizes and normalizes booth numbers for the three
// exhibition halls, and converts them into comparable ordering keys.
//
// Three grammars exist, checked in a fixed priority order:
//
//	doujin:     Chinese numerals + letter + optional hyphen + digits (壹A-01)
//	enterprise: "CP" + letter + digits, normalized to uppercase (CPA01)
//	creative:   "创" + digits (创01)
//
// All functions are pure; the package holds no mutable state.
package venue

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yukirin/cplist/internal/model"
)

// numeralClass matches one Chinese numeral character, informal (一–十) or
// formal (壹–拾).
const numeralClass = "[壹贰叁肆伍陆柒捌玖拾一二三四五六七八九十]"

var (
	doujinRe     = regexp.MustCompile(numeralClass + `+[A-Za-z]-?\d+`)
	enterpriseRe = regexp.MustCompile(`(?i)CP[A-Za-z]\d+`)
	creativeRe   = regexp.MustCompile(`创\d+`)

	doujinFullRe     = regexp.MustCompile(`^` + numeralClass + `+[A-Za-z]-?\d+$`)
	enterpriseFullRe = regexp.MustCompile(`(?i)^CP[A-Za-z]\d+$`)
	creativeFullRe   = regexp.MustCompile(`^创\d+$`)

	doujinPrefixRe     = regexp.MustCompile(`^` + numeralClass)
	enterprisePrefixRe = regexp.MustCompile(`(?i)^CP[A-Za-z]\d`)
	creativePrefixRe   = regexp.MustCompile(`^创\d`)
)

// MaxNumberLength is the upper bound (in characters) accepted by
// IsValidBoothNumber.
const MaxNumberLength = 15

// ExtractBoothNumber scans text for the first booth number, trying the
// doujin grammar, then enterprise, then creative. It returns the normalized
// number and the remaining text with the match removed and trimmed. When
// nothing matches, number is empty and extra is the trimmed input.
func ExtractBoothNumber(text string) (number, extra string) {
	s := strings.TrimSpace(text)
	if s == "" {
		return "", ""
	}

	if m := doujinRe.FindString(s); m != "" {
		return m, strings.TrimSpace(strings.Replace(s, m, "", 1))
	}
	if m := enterpriseRe.FindString(s); m != "" {
		return strings.ToUpper(m), strings.TrimSpace(strings.Replace(s, m, "", 1))
	}
	if m := creativeRe.FindString(s); m != "" {
		return m, strings.TrimSpace(strings.Replace(s, m, "", 1))
	}

	return "", s
}

// InferBoothType classifies a normalized number by its grammar. Numbers that
// match no grammar are classified as doujin: the permissive default keeps
// hand-entered garbage importable instead of rejecting it.
func InferBoothType(number string) model.VenueType {
	switch {
	case doujinPrefixRe.MatchString(number):
		return model.VenueDoujin
	case enterprisePrefixRe.MatchString(number):
		return model.VenueEnterprise
	case creativePrefixRe.MatchString(number):
		return model.VenueCreative
	default:
		return model.VenueDoujin
	}
}

// IsValidBoothNumber reports whether number is a strict full-string match of
// one of the three grammars. This is the validity gate before persistence,
// deliberately stricter than InferBoothType.
func IsValidBoothNumber(number string) bool {
	s := strings.TrimSpace(number)
	if s == "" || utf8.RuneCountInString(s) > MaxNumberLength {
		return false
	}
	return doujinFullRe.MatchString(s) || enterpriseFullRe.MatchString(s) || creativeFullRe.MatchString(s)
}
