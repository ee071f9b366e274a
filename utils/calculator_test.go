package utils

import (
	"math"
	"testing"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreditMonths(t *testing.T) {
	tests := []struct {
		terms string
		want  float64
	}{
		{"Net 30 Days", 1},
		{"Net 45 Days", 1.5},
		{"Net 60 Days", 2},
		{"Net 90", 3},
		{"Advance", 0},
		{"COD", 0},
		{"", 0},
		{"Payment against delivery", 0},
	}
	for _, tt := range tests {
		t.Run(tt.terms, func(t *testing.T) {
			assert.Equal(t, tt.want, CreditMonths(tt.terms))
		})
	}
}

func TestSafeConversionFactor(t *testing.T) {
	assert.Equal(t, 1.0, SafeConversionFactor(0))
	assert.Equal(t, 1.0, SafeConversionFactor(-5))
	assert.Equal(t, 1.0, SafeConversionFactor(math.NaN()))
	assert.Equal(t, 1.0, SafeConversionFactor(math.Inf(1)))
	assert.Equal(t, 50.0, SafeConversionFactor(50))
	assert.Equal(t, 0.3048, SafeConversionFactor(0.3048))
}

func TestApplyFinancials_TaxOnlyWhenExclusive(t *testing.T) {
	exclusive := models.Quote{GSTIncluded: false, GSTRate: 18, DeliveryTerm: models.DeliveryFOR, PaymentTerms: "Advance"}
	inclusive := models.Quote{GSTIncluded: true, GSTRate: 18, DeliveryTerm: models.DeliveryFOR, PaymentTerms: "Advance"}

	assert.InDelta(t, 118, ApplyFinancials(100, exclusive), 1e-9)
	assert.InDelta(t, 100, ApplyFinancials(100, inclusive), 1e-9)
}

func TestApplyFinancials_DefaultGSTRate(t *testing.T) {
	q := models.Quote{GSTIncluded: false, GSTRate: 0, DeliveryTerm: models.DeliveryFOR, PaymentTerms: "Advance"}
	assert.InDelta(t, 118, ApplyFinancials(100, q), 1e-9)
}

func TestApplyFinancials_TransportOnlyExWorks(t *testing.T) {
	exWorks := models.Quote{GSTIncluded: true, DeliveryTerm: models.DeliveryExWorks, TransportCost: 750, PaymentTerms: "Advance"}
	forTerm := models.Quote{GSTIncluded: true, DeliveryTerm: models.DeliveryFOR, TransportCost: 750, PaymentTerms: "Advance"}

	assert.InDelta(t, 850, ApplyFinancials(100, exWorks), 1e-9)
	assert.InDelta(t, 100, ApplyFinancials(100, forTerm), 1e-9)
}

func TestApplyFinancials_CreditDiscount(t *testing.T) {
	// Net 60 => 2 months => divide by 1.03.
	q := models.Quote{GSTIncluded: true, DeliveryTerm: models.DeliveryFOR, PaymentTerms: "Net 60 Days"}
	assert.InDelta(t, 97.09, ApplyFinancials(100, q), 0.005)
}

func TestApplyFinancials_OrderOfAdjustments(t *testing.T) {
	// Tax first, then transport, then the credit divide over the sum.
	q := models.Quote{
		GSTIncluded:   false,
		GSTRate:       18,
		DeliveryTerm:  models.DeliveryExWorks,
		TransportCost: 50,
		PaymentTerms:  "Net 30 Days",
	}
	want := (100*1.18 + 50) / (1 + 0.015*1)
	assert.InDelta(t, want, ApplyFinancials(100, q), 1e-12)
}

func TestApplyFinancials_Deterministic(t *testing.T) {
	q := models.Quote{
		GSTIncluded:   false,
		GSTRate:       28,
		DeliveryTerm:  models.DeliveryExWorks,
		TransportCost: 1234.56,
		PaymentTerms:  "Net 45 Days",
	}
	first := ApplyFinancials(77.77, q)
	second := ApplyFinancials(77.77, q)
	assert.Equal(t, first, second, "identical inputs must be bit-identical")
}

func TestCalculateStandardRate_TMTBarExample(t *testing.T) {
	q := models.Quote{
		RawPrice:         58,
		Unit:             "kg",
		ConversionFactor: 1,
		GSTIncluded:      false,
		GSTRate:          18,
		DeliveryTerm:     models.DeliveryFOR,
		PaymentTerms:     "Advance",
	}
	assert.Equal(t, 68.44, CalculateStandardRate(q))
}

func TestCalculateStandardRate_Idempotent(t *testing.T) {
	q := models.Quote{
		RawPrice:         7.8 * 50 * 1.08,
		Unit:             "bag",
		ConversionFactor: 50,
		GSTIncluded:      true,
		GSTRate:          28,
		DeliveryTerm:     models.DeliveryExWorks,
		TransportCost:    900,
		PaymentTerms:     "Advance",
	}
	assert.Equal(t, CalculateStandardRate(q), CalculateStandardRate(q))
}

func TestCalculateStandardRate_TwoDecimalPlaces(t *testing.T) {
	quotes := []models.Quote{
		{RawPrice: 58, ConversionFactor: 1, GSTRate: 18, PaymentTerms: "Net 30 Days"},
		{RawPrice: 99.999, ConversionFactor: 3, GSTRate: 12, PaymentTerms: "Advance"},
		{RawPrice: 5600, ConversionFactor: 0.0283, GSTIncluded: true, PaymentTerms: "Net 45 Days"},
	}
	for _, q := range quotes {
		rate := CalculateStandardRate(q)
		scaled := rate * 100
		assert.InDelta(t, math.Round(scaled), scaled, 1e-9, "rate %v has more than 2 decimals", rate)
	}
}

func TestCalculateStandardRate_ZeroFactorFallsBackToOne(t *testing.T) {
	broken := models.Quote{RawPrice: 100, ConversionFactor: 0, GSTIncluded: true, PaymentTerms: "Advance"}
	identity := models.Quote{RawPrice: 100, ConversionFactor: 1, GSTIncluded: true, PaymentTerms: "Advance"}
	assert.Equal(t, CalculateStandardRate(identity), CalculateStandardRate(broken))
}

func TestCalculateDynamicBill_BrowsingMode(t *testing.T) {
	q := models.Quote{
		RawPrice:                     180,
		Unit:                         "piece_6m",
		ConversionFactor:             6,
		GSTIncluded:                  true,
		MinOrderQuantity:             5,
		StandardizedPricePerBaseUnit: 30,
		PaymentTerms:                 "Advance",
	}

	for _, qty := range []float64{0, -1} {
		bill := CalculateDynamicBill(q, qty)
		assert.Equal(t, 30.0, bill.EffectivePrice)
		assert.Equal(t, 0.0, bill.TotalBill)
		assert.Nil(t, bill.PenaltyNote)
	}
}

func TestCalculateDynamicBill_MOQTrap(t *testing.T) {
	// PVC pipe sold as 6 meter pieces, 180 per piece, MOQ of 5 pieces.
	// A buyer who needs 12 meters is forced from 2 pieces up to 5.
	q := models.Quote{
		RawPrice:                     180,
		Unit:                         "piece_6m",
		ConversionFactor:             6,
		GSTIncluded:                  true,
		DeliveryTerm:                 models.DeliveryFOR,
		MinOrderQuantity:             5,
		PaymentTerms:                 "Advance",
		StandardizedPricePerBaseUnit: 30,
	}

	bill := CalculateDynamicBill(q, 12)

	assert.InDelta(t, 900, bill.TotalBill, 1e-9)
	assert.InDelta(t, 75, bill.EffectivePrice, 1e-9)
	require.NotNil(t, bill.PenaltyNote)
	assert.Contains(t, *bill.PenaltyNote, "5 piece_6m")

	// The trap: effective price is 2.5x the standardized rate.
	assert.Greater(t, bill.EffectivePrice, q.StandardizedPricePerBaseUnit)
	assert.InDelta(t, 2.5, bill.EffectivePrice/q.StandardizedPricePerBaseUnit, 1e-9)
}

func TestCalculateDynamicBill_PartialUnitsRoundUp(t *testing.T) {
	q := models.Quote{
		RawPrice:         390,
		Unit:             "bag",
		ConversionFactor: 50,
		GSTIncluded:      true,
		MinOrderQuantity: 1,
		PaymentTerms:     "Advance",
	}

	// 120 kg of cement in 50 kg bags means 3 bags, not 2.4.
	bill := CalculateDynamicBill(q, 120)
	assert.InDelta(t, 3*390, bill.TotalBill, 1e-9)
	assert.Nil(t, bill.PenaltyNote)
}

func TestCalculateDynamicBill_NoPenaltyMatchesStandardRate(t *testing.T) {
	q := models.Quote{
		RawPrice:         420,
		Unit:             "bag",
		ConversionFactor: 50,
		GSTIncluded:      false,
		GSTRate:          28,
		DeliveryTerm:     models.DeliveryFOR,
		MinOrderQuantity: 4,
		PaymentTerms:     "Net 30 Days",
	}
	q.StandardizedPricePerBaseUnit = CalculateStandardRate(q)

	// Exactly MOQ * factor base units: no penalty, no waste.
	qty := float64(q.MinOrderQuantity) * q.ConversionFactor
	bill := CalculateDynamicBill(q, qty)

	assert.Nil(t, bill.PenaltyNote)
	assert.InDelta(t, q.StandardizedPricePerBaseUnit, bill.EffectivePrice, 0.005)
}

func TestCalculateDynamicBill_EffectiveNeverBelowStandardOnPenalty(t *testing.T) {
	quotes := []models.Quote{
		{RawPrice: 180, Unit: "piece_6m", ConversionFactor: 6, GSTIncluded: true, MinOrderQuantity: 5, PaymentTerms: "Advance"},
		{RawPrice: 58, Unit: "kg", ConversionFactor: 1, GSTRate: 18, MinOrderQuantity: 100, PaymentTerms: "Net 30 Days"},
		{RawPrice: 8000, Unit: "thousand", ConversionFactor: 1000, GSTRate: 12, DeliveryTerm: models.DeliveryExWorks, TransportCost: 1200, MinOrderQuantity: 3, PaymentTerms: "COD"},
	}
	for i := range quotes {
		quotes[i].StandardizedPricePerBaseUnit = CalculateStandardRate(quotes[i])
	}

	for _, q := range quotes {
		for _, qty := range []float64{1, 7, 12, 250, 999} {
			bill := CalculateDynamicBill(q, qty)
			if bill.PenaltyNote != nil {
				assert.GreaterOrEqual(t, bill.EffectivePrice, q.StandardizedPricePerBaseUnit,
					"penalized effective price below standard rate for qty %v", qty)
			}
		}
	}
}

func TestCalculateDynamicBill_ZeroFactorSafe(t *testing.T) {
	q := models.Quote{RawPrice: 100, Unit: "kg", ConversionFactor: 0, GSTIncluded: true, MinOrderQuantity: 1, PaymentTerms: "Advance"}
	bill := CalculateDynamicBill(q, 10)
	assert.False(t, math.IsInf(bill.TotalBill, 0))
	assert.False(t, math.IsNaN(bill.EffectivePrice))
	assert.InDelta(t, 1000, bill.TotalBill, 1e-9)
}

func rankRows() []models.ComparisonRow {
	return []models.ComparisonRow{
		{Quote: models.Quote{SupplierName: "A", LeadTime: 7, MinOrderQuantity: 1}, EffectivePrice: 75},
		{Quote: models.Quote{SupplierName: "B", LeadTime: 2, MinOrderQuantity: 20}, EffectivePrice: 68.44},
		{Quote: models.Quote{SupplierName: "C", LeadTime: 4, MinOrderQuantity: 5}, EffectivePrice: 68.44},
		{Quote: models.Quote{SupplierName: "D", LeadTime: 3, MinOrderQuantity: 10}, EffectivePrice: 91.2},
	}
}

func TestRankQuotes_DefaultEffectivePrice(t *testing.T) {
	rows := rankRows()
	RankQuotes(rows, RankByEffectivePrice)

	got := []string{rows[0].SupplierName, rows[1].SupplierName, rows[2].SupplierName, rows[3].SupplierName}
	// B and C tie on price; the stable sort keeps B before C.
	assert.Equal(t, []string{"B", "C", "A", "D"}, got)
}

func TestRankQuotes_LeadTime(t *testing.T) {
	rows := rankRows()
	RankQuotes(rows, RankByLeadTime)
	assert.Equal(t, "B", rows[0].SupplierName)
	assert.Equal(t, "A", rows[3].SupplierName)
}

func TestRankQuotes_MOQ(t *testing.T) {
	rows := rankRows()
	RankQuotes(rows, RankByMOQ)
	assert.Equal(t, "A", rows[0].SupplierName)
	assert.Equal(t, "B", rows[3].SupplierName)
}

func TestRankQuotes_UnknownCriterionFallsBack(t *testing.T) {
	rows := rankRows()
	RankQuotes(rows, "supplier_vibes")
	assert.Equal(t, "B", rows[0].SupplierName)
}
