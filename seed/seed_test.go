package seed

import (
	"math/rand"
	"testing"

	"backend/models"
	"backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateQuotesCoversFullMarket(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	quotes := GenerateQuotes(rng)

	require.Len(t, quotes, len(companies)*len(materials))

	seen := map[string]map[string]bool{}
	for _, q := range quotes {
		if seen[q.SupplierName] == nil {
			seen[q.SupplierName] = map[string]bool{}
		}
		seen[q.SupplierName][q.MaterialName] = true
	}
	require.Len(t, seen, len(companies))
	for supplier, mats := range seen {
		assert.Len(t, mats, len(materials), "supplier %s should quote every material", supplier)
	}
}

func TestGenerateQuotesNewSuppliersStartPending(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, q := range GenerateQuotes(rng) {
		switch q.SupplierName {
		case "Metro BuildMart", "Shree Trading Co":
			assert.Equal(t, models.StatusPending, q.Status)
		default:
			assert.Equal(t, models.StatusApproved, q.Status)
		}
	}
}

func TestGenerateQuotesStandardizedRateMatchesEngine(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, q := range GenerateQuotes(rng) {
		assert.Equal(t, utils.CalculateStandardRate(q), q.StandardizedPricePerBaseUnit)
	}
}

func TestGenerateQuotesFieldsAreSane(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for _, q := range GenerateQuotes(rng) {
		assert.Greater(t, q.RawPrice, 0.0)
		assert.Greater(t, q.ConversionFactor, 0.0)
		assert.GreaterOrEqual(t, q.MinOrderQuantity, 1)
		assert.GreaterOrEqual(t, q.LeadTime, 2)
		assert.Equal(t, "INR", q.Currency)
		if q.DeliveryTerm == models.DeliveryFOR {
			assert.Zero(t, q.TransportCost)
		} else {
			assert.GreaterOrEqual(t, q.TransportCost, 500.0)
		}
	}
}

func TestGenerateQuotesDeterministicForSeed(t *testing.T) {
	a := GenerateQuotes(rand.New(rand.NewSource(5)))
	b := GenerateQuotes(rand.New(rand.NewSource(5)))
	assert.Equal(t, a, b)
}
