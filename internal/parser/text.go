// Package parser turns unstructured pasted text into structured booth
// entries using three cooperating strategies: the labeled-field format,
// line scanning with booth-number patterns, and inline product-price
// extraction. Parsing never fails; unrecognized input simply contributes
// nothing to the result.
package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/yukirin/cplist/internal/model"
)

var (
	doujinLineRe     = regexp.MustCompile(`[壹贰叁肆伍陆柒捌玖拾一二三四五六七八九十]+[A-Za-z]-?\d+`)
	enterpriseLineRe = regexp.MustCompile(`(?i)CP[A-Za-z]\d+`)
	creativeLineRe   = regexp.MustCompile(`创\d+`)

	chineseNumeralRe = regexp.MustCompile(`[壹贰叁肆伍陆柒捌玖拾一二三四五六七八九十]`)
)

// ParseText parses a block of pasted text into booth entries.
//
// The labeled-field strategy runs first; when it recognizes a booth-number
// marker the input describes exactly one booth and its result is returned
// directly. Otherwise each line is scanned for booth numbers with a fixed
// per-line priority (doujin, then enterprise, then creative), a repeated
// number continues the existing entry, and lines with no number of their own
// become product lines for the most recent booth.
func ParseText(text string) []model.BoothEntry {
	if labeled := parseLabeledFormat(text); labeled != nil {
		return []model.BoothEntry{*labeled}
	}

	var (
		results []*model.BoothEntry
		seen    = make(map[string]*model.BoothEntry)
		current *model.BoothEntry
	)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		found := false

		for _, loc := range doujinLineRe.FindAllStringIndex(line, -1) {
			number := line[loc[0]:loc[1]]
			after := line[loc[1]:]
			current = addOrContinue(number, model.VenueDoujin, after, seen, &results, doujinFirstCharExcluded)
			found = true
		}

		if !found {
			for _, loc := range enterpriseLineRe.FindAllStringIndex(line, -1) {
				// A Chinese numeral directly before "CP" means the
				// letters belong to a doujin token, not an
				// enterprise number ("壹CPA01" is not CPA01).
				if numeralPrecedes(line, loc[0]) {
					continue
				}
				number := strings.ToUpper(line[loc[0]:loc[1]])
				after := line[loc[1]:]
				current = addOrContinue(number, model.VenueEnterprise, after, seen, &results, plainFirstCharExcluded)
				found = true
			}
		}

		if !found {
			for _, loc := range creativeLineRe.FindAllStringIndex(line, -1) {
				number := line[loc[0]:loc[1]]
				after := line[loc[1]:]
				current = addOrContinue(number, model.VenueCreative, after, seen, &results, plainFirstCharExcluded)
				found = true
			}
		}

		if !found && current != nil {
			ParseProductsFromLine(line, current)
		}
	}

	entries := make([]model.BoothEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, *r)
	}
	return entries
}

// addOrContinue registers a scanned number: a repeat becomes the current
// booth and still feeds its line remainder to product extraction; a new
// number starts a fresh entry with a name pulled from the remainder.
func addOrContinue(number string, t model.VenueType, after string, seen map[string]*model.BoothEntry, results *[]*model.BoothEntry, firstCharExcluded func(rune) bool) *model.BoothEntry {
	if existing, ok := seen[number]; ok {
		ParseProductsFromLine(after, existing)
		return existing
	}

	entry := &model.BoothEntry{
		Type:   t,
		Number: number,
		Name:   extractName(after, firstCharExcluded),
	}
	seen[number] = entry
	*results = append(*results, entry)

	ParseProductsFromLine(after, entry)
	return entry
}

// doujin name candidates additionally must not start with a digit or a
// delimiter; enterprise and creative names only exclude space and currency.
func doujinFirstCharExcluded(r rune) bool {
	return unicode.IsDigit(r) || r == '-' || r == ':' || r == '：' || isCurrency(r) || unicode.IsSpace(r)
}

func plainFirstCharExcluded(r rune) bool {
	return isCurrency(r) || unicode.IsSpace(r)
}

// numeralPrecedes reports whether the character immediately before byte
// offset idx is a Chinese numeral.
func numeralPrecedes(line string, idx int) bool {
	if idx == 0 {
		return false
	}
	prefix := line[:idx]
	runes := []rune(prefix)
	if len(runes) == 0 {
		return false
	}
	return chineseNumeralRe.MatchString(string(runes[len(runes)-1]))
}
