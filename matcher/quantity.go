package matcher

import (
	"regexp"
	"strconv"
	"strings"
)

// Unit is a recognised quantity unit on a listing.
type Unit string

const (
	UnitNone       Unit = ""
	UnitGram       Unit = "g"
	UnitKilogram   Unit = "kg"
	UnitMilliliter Unit = "ml"
	UnitLiter      Unit = "l"
	UnitPiece      Unit = "pc"
	UnitPack       Unit = "pack"
)

// QuantityInfo is the quantity breakdown extracted from a product name.
// UnitQuantity is the per-item amount (415 for "6 x 415g"), nil when the
// name only states a count ("Eggs 6 Pack"). PackSize defaults to 1.
type QuantityInfo struct {
	UnitQuantity *float64 `json:"unit_quantity,omitempty"`
	Unit         Unit     `json:"unit,omitempty"`
	PackSize     int      `json:"pack_size"`
}

// Quantity patterns, first match wins. The multipack-with-unit form must
// be tried before the bare single form so "6 x 415g" does not parse as
// a lone "415g".
var (
	multipackUnitPattern  = regexp.MustCompile(`(?i)\b(\d+)\s*[x×]\s*(\d+(?:\.\d+)?)\s*(kg|g|ml|l)\b`)
	multipackCountPattern = regexp.MustCompile(`(?i)\b(\d+)\s*(packs?|pcs?|pieces?|items?|cans?|bottles?)\b`)
	singleUnitPattern     = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(kg|g|ml|l)\b`)
	familyPackPattern     = regexp.MustCompile(`(?i)\b(family\s+pack|multipack|multi\s+pack)\b`)
)

// ExtractQuantity pulls unit quantity, unit and pack size from a product
// name. Names with no quantity information yield {nil, UnitNone, 1}.
func (m *Matcher) ExtractQuantity(name string) QuantityInfo {
	if match := multipackUnitPattern.FindStringSubmatch(name); match != nil {
		pack, _ := strconv.Atoi(match[1])
		qty, _ := strconv.ParseFloat(match[2], 64)
		if pack < 1 {
			pack = 1
		}
		return QuantityInfo{UnitQuantity: &qty, Unit: Unit(strings.ToLower(match[3])), PackSize: pack}
	}
	if match := multipackCountPattern.FindStringSubmatch(name); match != nil {
		pack, _ := strconv.Atoi(match[1])
		if pack < 1 {
			pack = 1
		}
		unit := UnitPack
		if strings.HasPrefix(strings.ToLower(match[2]), "pc") || strings.HasPrefix(strings.ToLower(match[2]), "piece") {
			unit = UnitPiece
		}
		return QuantityInfo{Unit: unit, PackSize: pack}
	}
	if match := singleUnitPattern.FindStringSubmatch(name); match != nil {
		qty, _ := strconv.ParseFloat(match[1], 64)
		return QuantityInfo{UnitQuantity: &qty, Unit: Unit(strings.ToLower(match[2])), PackSize: 1}
	}
	return QuantityInfo{PackSize: 1}
}

// IsMultipack reports whether a name describes a multi-item pack, either
// by an extracted pack size above one or by family-pack wording.
func (m *Matcher) IsMultipack(name string) bool {
	if m.ExtractQuantity(name).PackSize > 1 {
		return true
	}
	return familyPackPattern.MatchString(name)
}

// BaseQuantity converts the per-item amount to base units: grams and
// millilitres scale up to kilograms and litres. Counts (pc, pack) and
// missing quantities are not convertible; ok is false for those.
func (q QuantityInfo) BaseQuantity() (float64, bool) {
	if q.UnitQuantity == nil {
		return 0, false
	}
	switch q.Unit {
	case UnitGram, UnitMilliliter:
		return *q.UnitQuantity / 1000, true
	case UnitKilogram, UnitLiter:
		return *q.UnitQuantity, true
	}
	return 0, false
}

// TotalQuantity is the base per-item amount multiplied by pack size.
func (q QuantityInfo) TotalQuantity() (float64, bool) {
	base, ok := q.BaseQuantity()
	if !ok {
		return 0, false
	}
	return base * float64(q.PackSize), true
}

// RawTotal is the total amount in the unit as written on the listing
// (2490 for "6 x 415g"). Used for weight reporting and sanity checks.
func (q QuantityInfo) RawTotal() (float64, bool) {
	if q.UnitQuantity == nil {
		return 0, false
	}
	return *q.UnitQuantity * float64(q.PackSize), true
}
