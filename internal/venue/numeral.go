package venue

import (
	"regexp"
	"strconv"
	"strings"
)

// numeralValues maps each Chinese numeral character to its digit value.
// Informal and formal forms are equivalent.
var numeralValues = map[rune]int{
	'壹': 1, '一': 1,
	'贰': 2, '二': 2,
	'叁': 3, '三': 3,
	'肆': 4, '四': 4,
	'伍': 5, '五': 5,
	'陆': 6, '六': 6,
	'柒': 7, '七': 7,
	'捌': 8, '八': 8,
	'玖': 9, '九': 9,
	'拾': 10, '十': 10,
}

// ParseNumerals converts a run of Chinese numeral characters to an integer,
// reading each character as a base-10 digit in sequence. "十二" is read
// digit-by-digit, not as twelve; the positional reading matches how hall
// numbers are printed at the venue.
func ParseNumerals(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + numeralValues[r]
	}
	return n
}

// Sentinel ordering values for identifiers that fail to parse. Unparsable
// numbers always sort after well-formed ones.
const (
	sentinelHall   = 999
	sentinelNumber = 999
)

// DoujinKey is the fine ordering key for a doujin booth number.
type DoujinKey struct {
	Letter string
	Hall   int
	Number int
}

// EnterpriseKey is the fine ordering key for an enterprise booth number.
type EnterpriseKey struct {
	Letter string
	Number int
}

var (
	doujinKeyRe        = regexp.MustCompile(`^(` + numeralClass + `+)([A-Za-z])-?(\d+)$`)
	doujinNoHallRe     = regexp.MustCompile(`^([A-Za-z])-?(\d+)$`)
	digitsRe           = regexp.MustCompile(`\d+`)
	leadingHallRe      = regexp.MustCompile(`^` + numeralClass + `+`)
	enterpriseKeyRe    = regexp.MustCompile(`(?i)^CP([A-Za-z])(\d+)$`)
	enterpriseLetterRe = regexp.MustCompile(`(?i)^CP([A-Za-z])`)
)

// ParseDoujinNumber decomposes a doujin number into hall value, row letter
// and stall number. Degenerate forms (missing hall, bare digits) get zero
// keys so they sort ahead of nothing but stay grouped; fully unparsable
// numbers get maximal sentinel keys.
func ParseDoujinNumber(number string) DoujinKey {
	if m := doujinKeyRe.FindStringSubmatch(number); m != nil {
		n, _ := strconv.Atoi(m[3])
		return DoujinKey{Hall: ParseNumerals(m[1]), Letter: strings.ToUpper(m[2]), Number: n}
	}
	if m := doujinNoHallRe.FindStringSubmatch(number); m != nil {
		n, _ := strconv.Atoi(m[2])
		return DoujinKey{Hall: 0, Letter: strings.ToUpper(m[1]), Number: n}
	}
	if m := digitsRe.FindString(number); m != "" {
		n, _ := strconv.Atoi(m)
		return DoujinKey{Hall: 0, Letter: "A", Number: n}
	}
	return DoujinKey{Hall: sentinelHall, Letter: "Z", Number: sentinelNumber}
}

// ParseEnterpriseNumber decomposes an enterprise number into hall letter and
// stall number, with sentinel keys on failure.
func ParseEnterpriseNumber(number string) EnterpriseKey {
	if m := enterpriseKeyRe.FindStringSubmatch(number); m != nil {
		n, _ := strconv.Atoi(m[2])
		return EnterpriseKey{Letter: strings.ToUpper(m[1]), Number: n}
	}
	return EnterpriseKey{Letter: "Z", Number: sentinelNumber}
}

// ParseCreativeNumber returns the first embedded stall number of a creative
// booth, or the sentinel when none is present.
func ParseCreativeNumber(number string) int {
	if m := digitsRe.FindString(number); m != "" {
		n, _ := strconv.Atoi(m)
		return n
	}
	return sentinelNumber
}

// EnterpriseLetter returns the hall letter following the "CP" prefix,
// uppercased. ok is false when the number has no such prefix.
func EnterpriseLetter(number string) (letter string, ok bool) {
	if m := enterpriseLetterRe.FindStringSubmatch(number); m != nil {
		return strings.ToUpper(m[1]), true
	}
	return "", false
}

// LeadingNumerals returns the leading Chinese-numeral run of a doujin
// number, or empty when there is none.
func LeadingNumerals(number string) string {
	return leadingHallRe.FindString(number)
}
