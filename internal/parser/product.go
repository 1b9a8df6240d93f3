package parser

import (
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/yukirin/cplist/internal/model"
)

// maxProductNameLength caps product names picked up by line extraction;
// anything longer is almost certainly a sentence fragment, not an item.
const maxProductNameLength = 50

var (
	// name directly followed by a currency symbol and price, with an
	// optional currency word and ×quantity: "公式集¥50 ×2".
	symbolPriceRe = regexp.MustCompile(`([^\s¥￥,，0-9][^\s¥￥,，]*)\s*[¥￥]\s*(\d+(?:\.\d+)?)\s*[元块]?(?:\s*[xX×*]\s*(\d+))?`)

	// name, whitespace, bare price with a currency word: "徽章 10元 ×3".
	wordPriceRe = regexp.MustCompile(`([^\s,，0-9][^\s,，]*)\s+(\d+(?:\.\d+)?)\s*[元块](?:\s*[xX×*]\s*(\d+))?`)
)

// ParseProductsFromLine extracts every product mention in line and appends
// them to entry. The currency-symbol pattern is tried across the whole line
// first; the bare numeral + currency-word pattern is only consulted when the
// first pattern found nothing. Products are kept only with a non-empty name
// under the length cap and a positive price.
func ParseProductsFromLine(line string, entry *model.BoothEntry) {
	if entry == nil || line == "" {
		return
	}

	found := false
	for _, m := range symbolPriceRe.FindAllStringSubmatch(line, -1) {
		if p, ok := buildProduct(m[1], m[2], m[3]); ok {
			entry.Products = append(entry.Products, p)
			found = true
		}
	}
	if found {
		return
	}

	for _, m := range wordPriceRe.FindAllStringSubmatch(line, -1) {
		if p, ok := buildProduct(m[1], m[2], m[3]); ok {
			entry.Products = append(entry.Products, p)
		}
	}
}

func buildProduct(name, priceStr, qtyStr string) (model.ProductRecord, bool) {
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		price = 0
	}

	// An explicit ×0 or unparsable count means one copy, not zero.
	qty := 1
	if qtyStr != "" {
		if n, err := strconv.Atoi(qtyStr); err == nil && n > 0 {
			qty = n
		}
	}

	if name == "" || utf8.RuneCountInString(name) >= maxProductNameLength || price <= 0 {
		return model.ProductRecord{}, false
	}

	return model.ProductRecord{
		Name:     name,
		Price:    price,
		Quantity: qty,
		Status:   model.StatusPending,
	}, true
}
