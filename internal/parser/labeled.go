package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yukirin/cplist/internal/model"
	"github.com/yukirin/cplist/internal/venue"
)

// Bracketed field markers for the labeled text convention. The format
// describes exactly one booth per input, so a successful labeled parse
// short-circuits the line-scanning strategies.
var (
	labelNumberRe   = regexp.MustCompile(`【摊位号】\s*([^\n【]+)`)
	labelNameRe     = regexp.MustCompile(`【摊位名】\s*([^\n【]+)`)
	labelZoneRe     = regexp.MustCompile(`【专区[/IP]*】\s*([^\n【]+)|【IP】\s*([^\n【]+)`)
	labelCNRe       = regexp.MustCompile(`【CN】\s*([^\n【]+)`)
	labelProductRe  = regexp.MustCompile(`【制品名称?】\s*([^\n【]+)`)
	labelPriceRe    = regexp.MustCompile(`【制品?价格】\s*([^\n【]+)|【单价】\s*([^\n【]+)`)
	labelQuantityRe = regexp.MustCompile(`【数量】\s*([^\n【]+)`)

	firstNumberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)
	firstIntRe    = regexp.MustCompile(`\d+`)

	productBlockMarker = "【制品名"
)

// parseLabeledFormat attempts the labeled-field strategy. It returns nil when
// the text carries no booth-number marker or the marker's value contains no
// recognizable number, letting the caller fall through to line scanning.
func parseLabeledFormat(text string) *model.BoothEntry {
	m := labelNumberRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	number, _ := venue.ExtractBoothNumber(m[1])
	if number == "" {
		return nil
	}
	boothType := venue.InferBoothType(number)

	// The booth-name marker wins over the creator-name fallback.
	name := ""
	if nm := labelNameRe.FindStringSubmatch(text); nm != nil {
		name = strings.TrimSpace(nm[1])
	} else if cn := labelCNRe.FindStringSubmatch(text); cn != nil {
		name = strings.TrimSpace(cn[1])
	}

	zone := ""
	if boothType == model.VenueDoujin {
		if zm := labelZoneRe.FindStringSubmatch(text); zm != nil {
			zone = strings.TrimSpace(firstGroup(zm))
		}
	}

	entry := &model.BoothEntry{
		Type:   boothType,
		Number: number,
		Name:   name,
		Zone:   zone,
	}

	for _, block := range splitBefore(text, productBlockMarker) {
		pm := labelProductRe.FindStringSubmatch(block)
		if pm == nil {
			continue
		}
		pName := strings.TrimSpace(pm[1])
		if pName == "" {
			continue
		}

		price := 0.0
		if prm := labelPriceRe.FindStringSubmatch(block); prm != nil {
			if num := firstNumberRe.FindString(firstGroup(prm)); num != "" {
				price, _ = strconv.ParseFloat(num, 64)
			}
		}

		// A stated count below one still means one copy.
		qty := 1
		if qm := labelQuantityRe.FindStringSubmatch(block); qm != nil {
			if num := firstIntRe.FindString(qm[1]); num != "" {
				if n, err := strconv.Atoi(num); err == nil && n > 0 {
					qty = n
				}
			}
		}

		entry.Products = append(entry.Products, model.ProductRecord{
			Name:     pName,
			Price:    price,
			Quantity: qty,
			Status:   model.StatusPending,
		})
	}

	return entry
}

// firstGroup returns the first non-empty capture of an alternation match.
func firstGroup(m []string) string {
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}

// splitBefore splits text at every occurrence of marker, keeping the marker
// at the head of each following segment.
func splitBefore(text, marker string) []string {
	if text == "" {
		return nil
	}
	var parts []string
	rest := text
	for {
		idx := strings.Index(rest[1:], marker)
		if idx < 0 {
			parts = append(parts, rest)
			return parts
		}
		parts = append(parts, rest[:idx+1])
		rest = rest[idx+1:]
	}
}
