package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/govindalabs/dairypos/internal/domain"
)

func TestParseSmartQuantity(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		unitType string
		want     ParsedQuantity
	}{
		{"grams suffix", "250gm", domain.UnitTypeKg, ParsedQuantity{250, "g", true}},
		{"kilogram decimal", "0.5kg", domain.UnitTypeKg, ParsedQuantity{0.5, "kg", true}},
		{"bare number assumes base unit", "2", domain.UnitTypeKg, ParsedQuantity{2, "kg", true}},
		{"bare number litre product", "1.5", domain.UnitTypeLitre, ParsedQuantity{1.5, "l", true}},
		{"millilitres", "500ml", domain.UnitTypeLitre, ParsedQuantity{500, "ml", true}},
		{"litre suffix", "1.5l", domain.UnitTypeLitre, ParsedQuantity{1.5, "l", true}},
		{"spaces around", " 250 gm ", domain.UnitTypeKg, ParsedQuantity{250, "g", true}},
		{"uppercase suffix", "2KG", domain.UnitTypeKg, ParsedQuantity{2, "kg", true}},
		{"garbage", "abc", domain.UnitTypeKg, ParsedQuantity{1, "kg", false}},
		{"negative", "-2", domain.UnitTypeKg, ParsedQuantity{1, "kg", false}},
		{"zero", "0", domain.UnitTypeKg, ParsedQuantity{1, "kg", false}},
		{"empty", "", domain.UnitTypeLitre, ParsedQuantity{1, "l", false}},
		{"weight suffix on litre product", "250g", domain.UnitTypeLitre, ParsedQuantity{1, "l", false}},
		{"volume suffix on kg product", "500ml", domain.UnitTypeKg, ParsedQuantity{1, "kg", false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSmartQuantity(tt.text, tt.unitType))
		})
	}
}

func TestConvertToBaseUnit(t *testing.T) {
	assert.InDelta(t, 0.25, ConvertToBaseUnit(250, "g", domain.UnitTypeKg), 1e-9)
	assert.InDelta(t, 0.25, ConvertToBaseUnit(250, "gm", domain.UnitTypeKg), 1e-9)
	assert.InDelta(t, 2, ConvertToBaseUnit(2, "kg", domain.UnitTypeKg), 1e-9)
	assert.InDelta(t, 0.5, ConvertToBaseUnit(500, "ml", domain.UnitTypeLitre), 1e-9)
	assert.InDelta(t, 1.5, ConvertToBaseUnit(1.5, "l", domain.UnitTypeLitre), 1e-9)

	// unrecognized units pass through unchanged
	assert.InDelta(t, 3, ConvertToBaseUnit(3, "oz", domain.UnitTypeKg), 1e-9)
}

func TestCalculateUnitPrice(t *testing.T) {
	assert.InDelta(t, 112.5, CalculateUnitPrice(450, 250, "g", domain.UnitTypeKg), 1e-9)
	assert.InDelta(t, 225, CalculateUnitPrice(450, 0.5, "kg", domain.UnitTypeKg), 1e-9)
	assert.InDelta(t, 30, CalculateUnitPrice(60, 500, "ml", domain.UnitTypeLitre), 1e-9)
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "250g", FormatQuantity(250, "g"))
	assert.Equal(t, "0.5kg", FormatQuantity(0.5, "kg"))
	assert.Equal(t, "2", FormatQuantity(2, ""))
}

func TestCurrency(t *testing.T) {
	assert.Equal(t, "₹ 80.00", Currency(80))
	assert.Equal(t, "₹ 112.50", Currency(112.5))
}

func TestBaseUnit(t *testing.T) {
	assert.Equal(t, "kg", BaseUnit(domain.UnitTypeKg))
	assert.Equal(t, "l", BaseUnit(domain.UnitTypeLitre))
	assert.Equal(t, "kg", BaseUnit(""))
}
