// Package sheet locates and maps spreadsheet columns without a fixed header
// contract, then decodes rows into merged booth entries. Grids come from
// exports of unknown origin: headers may sit below banner rows, be missing
// entirely, or use any of several naming conventions.
package sheet

import "strings"

// Field is a semantic spreadsheet column.
type Field string

// The semantic fields a column can be mapped to.
const (
	FieldNumber  Field = "number"
	FieldName    Field = "name"
	FieldZone    Field = "zone"
	FieldType    Field = "type"
	FieldNote    Field = "note"
	FieldProduct Field = "product"
	FieldPrice   Field = "price"
	FieldQty     Field = "qty"
)

// fieldOrder fixes the iteration order over fields during header matching,
// so that credit assignment is deterministic.
var fieldOrder = []Field{
	FieldNumber, FieldName, FieldZone, FieldType,
	FieldNote, FieldProduct, FieldPrice, FieldQty,
}

// headerKeywords are the curated header spellings seen in the wild, per
// field. Shared read-only across calls; never mutated at runtime.
var headerKeywords = map[Field][]string{
	FieldNumber:  {"摊位号", "编号", "摊号", "展位号", "位置", "摊位编号", "展位", "社团摊位号", "booth", "number", "no", "id"},
	FieldName:    {"摊位名称", "摊位名", "社团名称", "社团名", "名称", "摊名", "社团", "店名", "名字", "name", "booth name", "circle"},
	FieldZone:    {"专区", "IP", "ip", "所属", "分区", "区域", "作品", "同人", "fandom", "zone", "area", "category"},
	FieldType:    {"类型", "场馆", "馆", "摊位类型", "type"},
	FieldNote:    {"备注", "说明", "注释", "想买", "备忘", "note", "memo", "remark"},
	FieldProduct: {"制品", "制品名", "制品名称", "展品名称", "展品名", "展品", "商品", "商品名", "物品", "货品", "产品", "product", "item", "goods"},
	FieldPrice:   {"价格", "单价", "售价", "金额", "price", "cost"},
	FieldQty:     {"数量", "个数", "件数", "购买数量", "quantity", "qty", "count", "amount"},
}

// matchesKeyword reports whether cell text matches any keyword for the
// field, by case-insensitive equality or substring containment in either
// direction.
func matchesKeyword(text string, field Field) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return false
	}
	for _, kw := range headerKeywords[field] {
		lk := strings.ToLower(kw)
		if lower == lk || strings.Contains(lower, lk) || strings.Contains(lk, lower) {
			return true
		}
	}
	return false
}

// matchesKeywordExact reports a verbatim (case-insensitive) keyword match.
func matchesKeywordExact(text string, field Field) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return false
	}
	for _, kw := range headerKeywords[field] {
		if lower == strings.ToLower(kw) {
			return true
		}
	}
	return false
}
