package seed

import (
	"database/sql"
	"fmt"
	"log"
	"math/rand"

	"backend/models"
	"backend/storage"
	"backend/utils"
)

// unitOption is one way a material is packaged and priced on the market.
type unitOption struct {
	Unit   string
	Factor float64
}

// material is a catalog entry with its per-base-unit market price.
type material struct {
	Name      string
	BaseUnit  string
	BasePrice float64
	Options   []unitOption
	GSTRate   float64
}

// company is a supplier personality: how it prices, ships and bills.
type company struct {
	Name              string
	PriceMultiplier   float64
	TransportStyle    string // FOR or EX_WORKS
	PaymentPreference string
	GSTInclusive      bool
	IsNew             bool // new suppliers land in review
}

var materials = []material{
	{
		Name: "TMT Bar Fe500D", BaseUnit: "kg", BasePrice: 58, GSTRate: 18,
		Options: []unitOption{{"kg", 1}, {"MT", 1000}, {"quintal", 100}},
	},
	{
		Name: "Cement OPC 53 Grade", BaseUnit: "kg", BasePrice: 7.8, GSTRate: 28,
		Options: []unitOption{{"bag", 50}, {"kg", 1}, {"MT", 1000}},
	},
	{
		Name: "Coarse Sand", BaseUnit: "kg", BasePrice: 1.2, GSTRate: 18,
		Options: []unitOption{{"kg", 1}, {"brass", 4500}, {"MT", 1000}},
	},
	{
		Name: "PVC Pipe 4inch", BaseUnit: "meter", BasePrice: 180, GSTRate: 18,
		Options: []unitOption{{"meter", 1}, {"piece_6m", 6}, {"feet", 0.3048}},
	},
	{
		Name: "Ready Mix Concrete M25", BaseUnit: "meter", BasePrice: 5600, GSTRate: 18,
		Options: []unitOption{{"cum", 1}, {"cft", 0.0283}},
	},
	{
		Name: "Red Clay Bricks", BaseUnit: "piece", BasePrice: 8, GSTRate: 12,
		Options: []unitOption{{"piece", 1}, {"thousand", 1000}},
	},
	{
		Name: "Exterior Emulsion Premium", BaseUnit: "liter", BasePrice: 280, GSTRate: 18,
		Options: []unitOption{{"liter", 1}, {"drum_20l", 20}},
	},
}

var companies = []company{
	{Name: "Tata Steel", PriceMultiplier: 1.1, TransportStyle: models.DeliveryFOR, PaymentPreference: "Net 30 Days", GSTInclusive: false},
	{Name: "UltraTech Cement", PriceMultiplier: 1.08, TransportStyle: models.DeliveryExWorks, PaymentPreference: "Advance", GSTInclusive: true},
	{Name: "Asian Paints", PriceMultiplier: 1.12, TransportStyle: models.DeliveryFOR, PaymentPreference: "Net 45 Days", GSTInclusive: false},
	{Name: "Jindal Steel", PriceMultiplier: 1.05, TransportStyle: models.DeliveryFOR, PaymentPreference: "COD", GSTInclusive: true},
	{Name: "ACC Cement", PriceMultiplier: 1.06, TransportStyle: models.DeliveryExWorks, PaymentPreference: "Net 30 Days", GSTInclusive: false},
	{Name: "Prince Pipes", PriceMultiplier: 0.98, TransportStyle: models.DeliveryFOR, PaymentPreference: "Advance", GSTInclusive: true},
	{Name: "Ambuja Cement", PriceMultiplier: 1.04, TransportStyle: models.DeliveryExWorks, PaymentPreference: "Net 60 Days", GSTInclusive: false},
	{Name: "Berger Paints", PriceMultiplier: 1.09, TransportStyle: models.DeliveryFOR, PaymentPreference: "COD", GSTInclusive: true},
	// Cheaper local newcomers; their quotes start in review.
	{Name: "Metro BuildMart", PriceMultiplier: 0.88, TransportStyle: models.DeliveryExWorks, PaymentPreference: "Advance", GSTInclusive: false, IsNew: true},
	{Name: "Shree Trading Co", PriceMultiplier: 0.92, TransportStyle: models.DeliveryFOR, PaymentPreference: "Net 30 Days", GSTInclusive: true, IsNew: true},
}

// GenerateQuotes builds a full market of quotes: every company quotes every
// material in a randomly chosen sales unit with a small price fluctuation.
// The standardized rate is computed through the same engine submissions use.
func GenerateQuotes(rng *rand.Rand) []models.Quote {
	var quotes []models.Quote

	for _, comp := range companies {
		for _, mat := range materials {
			option := mat.Options[rng.Intn(len(mat.Options))]

			// ±4% market fluctuation on top of the company's multiplier.
			fluctuation := 1 + (rng.Float64()*0.08 - 0.04)
			exactPrice := mat.BasePrice * option.Factor * comp.PriceMultiplier * fluctuation
			rawPrice := float64(int(exactPrice*100+0.5)) / 100

			transportCost := 0.0
			if comp.TransportStyle == models.DeliveryExWorks {
				transportCost = float64(rng.Intn(1500) + 500)
			}

			moq := 1
			if rng.Float64() > 0.7 {
				moq = rng.Intn(20) + 5
			}

			status := models.InitialQuoteStatus(false, comp.IsNew, false)

			q := models.Quote{
				SupplierName:     comp.Name,
				MaterialName:     mat.Name,
				Status:           status,
				Unit:             option.Unit,
				BaseUnit:         mat.BaseUnit,
				ConversionFactor: option.Factor,
				RawPrice:         rawPrice,
				Currency:         "INR",
				GSTIncluded:      comp.GSTInclusive,
				GSTRate:          mat.GSTRate,
				DeliveryTerm:     comp.TransportStyle,
				TransportCost:    transportCost,
				PaymentTerms:     comp.PaymentPreference,
				MinOrderQuantity: moq,
				LeadTime:         rng.Intn(7) + 2,
			}
			q.StandardizedPricePerBaseUnit = utils.CalculateStandardRate(q)

			quotes = append(quotes, q)
		}
	}

	return quotes
}

// Run wipes the quotes table and loads a fresh market.
func Run(db *sql.DB, rng *rand.Rand) error {
	log.Println("Clearing old quotes...")
	if _, err := db.Exec(`DELETE FROM quotes`); err != nil {
		return fmt.Errorf("failed to clear quotes: %v", err)
	}

	log.Println("Generating market quotes...")
	quotes := GenerateQuotes(rng)

	for i := range quotes {
		if err := storage.InsertQuote(db, &quotes[i]); err != nil {
			return err
		}
	}

	log.Printf("Seeded %d quotes (%d suppliers x %d materials)", len(quotes), len(companies), len(materials))
	return nil
}
