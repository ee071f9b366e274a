package utils

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"

	"backend/models"
)

// Pricing constants shared by the static and dynamic calculators.
const (
	// DefaultGSTRate is applied when a quote carries no usable GST rate.
	DefaultGSTRate = 18.0
	// CreditRatePerMonth is the time-value-of-money discount for deferred
	// payment, 1.5% per month of credit.
	CreditRatePerMonth = 0.015
	// DefaultLeadTimeDays is assumed when a supplier states no lead time.
	DefaultLeadTimeDays = 3
)

var creditDaysPattern = regexp.MustCompile(`\d+`)

// CreditMonths extracts the credit period from free-text payment terms like
// "Net 45 Days". The first integer token is read as days and converted to
// months. Terms without a number ("Advance", "COD") mean no credit.
func CreditMonths(paymentTerms string) float64 {
	match := creditDaysPattern.FindString(paymentTerms)
	if match == "" {
		return 0
	}
	days, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return float64(days) / 30.0
}

// SafeConversionFactor guards the supplier-declared conversion factor.
// Zero, negative and non-finite values collapse to 1 (sales unit == base
// unit) so the comparison never divides by zero. Supplier data entry is not
// trusted enough to hard-fail on.
func SafeConversionFactor(factor float64) float64 {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
		return 1
	}
	return factor
}

// ApplyFinancials turns a raw per-sales-unit price into the fully loaded
// cost per sales unit. The three adjustments are ordered and each operates
// on the previous result; regression tests compare outputs bit-for-bit, so
// the order of operations must not change.
func ApplyFinancials(basePrice float64, q models.Quote) float64 {
	cost := basePrice

	// Tax: only when the quoted price excludes GST.
	if !q.GSTIncluded {
		rate := q.GSTRate
		if rate <= 0 {
			rate = DefaultGSTRate
		}
		cost *= 1 + rate/100
	}

	// Transport: ex-works quotes push the freight onto the buyer.
	if q.DeliveryTerm == models.DeliveryExWorks {
		cost += q.TransportCost
	}

	// Credit: paying later is worth 1.5% per month against paying now.
	if months := CreditMonths(q.PaymentTerms); months > 0 {
		cost /= 1 + CreditRatePerMonth*months
	}

	return cost
}

// CalculateStandardRate computes the quantity-independent cost per base
// unit, rounded half-up to 2 decimals. It runs once at submission and the
// result is persisted with the quote.
func CalculateStandardRate(q models.Quote) float64 {
	costPerSalesUnit := ApplyFinancials(q.RawPrice, q)
	rate := costPerSalesUnit / SafeConversionFactor(q.ConversionFactor)
	return math.Round(rate*100) / 100
}

// DynamicBill is the runtime answer to "what would this quote actually cost
// me for the quantity I need".
type DynamicBill struct {
	EffectivePrice float64 `json:"effectivePrice"`
	TotalBill      float64 `json:"totalBill"`
	PenaltyNote    *string `json:"penaltyNote"`
}

// CalculateDynamicBill evaluates a quote against a required base-unit
// quantity. A missing or non-positive quantity is browsing mode: the stored
// standardized rate is echoed with a zero bill. Otherwise the requirement is
// converted to whole sales units (partial units cannot be bought), clamped
// up to the supplier's MOQ, and billed at the fully loaded unit cost. The
// effective price is the blended per-base-unit rate actually paid, which
// exceeds the standardized rate whenever the MOQ forces over-purchase.
func CalculateDynamicBill(q models.Quote, qtyNeeded float64) DynamicBill {
	if qtyNeeded <= 0 || math.IsNaN(qtyNeeded) {
		return DynamicBill{
			EffectivePrice: q.StandardizedPricePerBaseUnit,
			TotalBill:      0,
			PenaltyNote:    nil,
		}
	}

	factor := SafeConversionFactor(q.ConversionFactor)
	exactUnits := qtyNeeded / factor
	buyUnits := math.Ceil(exactUnits)

	var penalty *string
	if buyUnits < float64(q.MinOrderQuantity) {
		buyUnits = float64(q.MinOrderQuantity)
		note := fmt.Sprintf("High MOQ! Forced to buy %d %s", q.MinOrderQuantity, q.Unit)
		penalty = &note
	}

	costPerUnit := ApplyFinancials(q.RawPrice, q)
	totalBill := buyUnits * costPerUnit

	return DynamicBill{
		EffectivePrice: totalBill / qtyNeeded,
		TotalBill:      totalBill,
		PenaltyNote:    penalty,
	}
}

// Ranking criteria accepted by RankQuotes.
const (
	RankByEffectivePrice = "effective_price"
	RankByLeadTime       = "lead_time"
	RankByMOQ            = "moq"
)

// RankQuotes orders comparison rows ascending by the given criterion.
// Unknown criteria fall back to effective price. The sort is stable so ties
// keep their input order; stored fields are never touched.
func RankQuotes(rows []models.ComparisonRow, criterion string) {
	sort.SliceStable(rows, func(i, j int) bool {
		switch criterion {
		case RankByLeadTime:
			return rows[i].LeadTime < rows[j].LeadTime
		case RankByMOQ:
			return rows[i].MinOrderQuantity < rows[j].MinOrderQuantity
		default:
			return rows[i].EffectivePrice < rows[j].EffectivePrice
		}
	})
}
