package pos

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/govindalabs/dairypos/internal/domain"
)

// ParsedQuantity is the structured result of parsing a quantity expression.
// Callers must check Valid before using the result for anything that affects
// money or stock; invalid parses carry a safe fallback of 1 base unit.
type ParsedQuantity struct {
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Valid    bool    `json:"valid"`
}

// BaseUnit returns the canonical purchase unit a product's price is quoted
// in: kilograms for Kg-typed products, litres for Litre-typed products.
func BaseUnit(unitType string) string {
	if unitType == domain.UnitTypeLitre {
		return "l"
	}
	return "kg"
}

var quantityRegexp = regexp.MustCompile(`^\s*([0-9]*\.?[0-9]+)\s*([a-zA-Z]*)\s*$`)

var kgUnits = map[string]string{
	"kg": "kg", "kilogram": "kg", "kilograms": "kg",
	"g": "g", "gm": "g", "gram": "g", "grams": "g",
}

var litreUnits = map[string]string{
	"l": "l", "ltr": "l", "litre": "l", "litres": "l", "liter": "l", "liters": "l",
	"ml": "ml", "millilitre": "ml", "millilitres": "ml", "milliliter": "ml", "milliliters": "ml",
}

// ParseSmartQuantity parses free-text quantity input such as "250gm",
// "0.5L" or a bare "2" into a quantity and a canonical unit suffix for the
// given product unit type. A bare number assumes the base unit. It never
// panics; unparseable or non-positive input yields Valid=false with a
// fallback of one base unit.
func ParseSmartQuantity(text, unitType string) ParsedQuantity {
	fallback := ParsedQuantity{Quantity: 1, Unit: BaseUnit(unitType)}

	m := quantityRegexp.FindStringSubmatch(text)
	if m == nil {
		return fallback
	}
	qty, err := strconv.ParseFloat(m[1], 64)
	if err != nil || qty <= 0 {
		return fallback
	}

	suffix := strings.ToLower(m[2])
	if suffix == "" {
		return ParsedQuantity{Quantity: qty, Unit: BaseUnit(unitType), Valid: true}
	}

	var units map[string]string
	switch unitType {
	case domain.UnitTypeLitre:
		units = litreUnits
	default:
		units = kgUnits
	}
	canonical, ok := units[suffix]
	if !ok {
		return fallback
	}
	return ParsedQuantity{Quantity: qty, Unit: canonical, Valid: true}
}

// ConvertToBaseUnit converts a quantity in the given purchase unit to the
// product's base unit. Unrecognized units pass through unchanged rather than
// failing, so a bad suffix can never scale a price.
func ConvertToBaseUnit(qty float64, unit, unitType string) float64 {
	switch unitType {
	case domain.UnitTypeLitre:
		if strings.EqualFold(unit, "ml") {
			return qty / 1000
		}
	default:
		switch strings.ToLower(unit) {
		case "g", "gm":
			return qty / 1000
		}
	}
	return qty
}

// CalculateUnitPrice computes a line price from a per-base-unit price and a
// purchase quantity in an arbitrary recognized unit.
func CalculateUnitPrice(unitPrice, qty float64, unit, unitType string) float64 {
	return unitPrice * ConvertToBaseUnit(qty, unit, unitType)
}

// FormatQuantity renders a quantity+unit pair compactly, e.g. "250g" or
// "0.5kg", for cart line display names.
func FormatQuantity(qty float64, unit string) string {
	return strconv.FormatFloat(qty, 'f', -1, 64) + unit
}

// Currency renders an amount with the shop currency prefix and a fixed
// two-decimal format.
func Currency(n float64) string {
	return fmt.Sprintf("₹ %.2f", n)
}
