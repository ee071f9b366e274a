package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialQuoteStatus(t *testing.T) {
	tests := []struct {
		name                                       string
		customMaterial, customSupplier, customUnit bool
		want                                       QuoteStatus
	}{
		{"known everything", false, false, false, StatusApproved},
		{"new material", true, false, false, StatusPending},
		{"new supplier", false, true, false, StatusPending},
		{"new unit", false, false, true, StatusPending},
		{"all new", true, true, true, StatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InitialQuoteStatus(tt.customMaterial, tt.customSupplier, tt.customUnit))
		})
	}
}

func TestDecide_FromPending(t *testing.T) {
	assert.NoError(t, StatusPending.Decide(StatusApproved))
	assert.NoError(t, StatusPending.Decide(StatusRejected))
}

func TestDecide_InvalidTarget(t *testing.T) {
	assert.ErrorIs(t, StatusPending.Decide(StatusPending), ErrInvalidStatus)
	assert.ErrorIs(t, StatusPending.Decide(QuoteStatus("cancelled")), ErrInvalidStatus)
	assert.ErrorIs(t, StatusPending.Decide(QuoteStatus("")), ErrInvalidStatus)
}

func TestDecide_TerminalStatesRejectEverything(t *testing.T) {
	for _, terminal := range []QuoteStatus{StatusApproved, StatusRejected} {
		assert.True(t, terminal.IsTerminal())
		assert.ErrorIs(t, terminal.Decide(StatusApproved), ErrAlreadyDecided)
		assert.ErrorIs(t, terminal.Decide(StatusRejected), ErrAlreadyDecided)
	}
}

func TestSubmitQuoteRequest_Defaults(t *testing.T) {
	req := SubmitQuoteRequest{
		SupplierName: "Tata Steel",
		MaterialName: "TMT Bar Fe500D",
		Unit:         "kg",
		RawPrice:     58,
	}
	q := req.ToQuote()

	assert.Equal(t, 1.0, q.ConversionFactor)
	assert.Equal(t, 18.0, q.GSTRate)
	assert.Equal(t, "kg", q.BaseUnit)
	assert.Equal(t, "INR", q.Currency)
	assert.Equal(t, DeliveryFOR, q.DeliveryTerm)
	assert.Equal(t, "Advance", q.PaymentTerms)
	assert.Equal(t, 1, q.MinOrderQuantity)
	assert.Equal(t, 3, q.LeadTime)
}

func TestSubmitQuoteRequest_ExplicitValuesKept(t *testing.T) {
	factor := 50.0
	gst := 28.0
	transport := 900.0
	moq := 10
	lead := 5

	req := SubmitQuoteRequest{
		SupplierName:     "UltraTech Cement",
		MaterialName:     "Cement OPC 53 Grade",
		Unit:             "bag",
		BaseUnit:         "kg",
		RawPrice:         420,
		ConversionFactor: &factor,
		GSTRate:          &gst,
		DeliveryTerm:     DeliveryExWorks,
		TransportCost:    &transport,
		PaymentTerms:     "Net 30 Days",
		MinOrderQuantity: &moq,
		LeadTime:         &lead,
	}
	q := req.ToQuote()

	assert.Equal(t, 50.0, q.ConversionFactor)
	assert.Equal(t, 28.0, q.GSTRate)
	assert.Equal(t, DeliveryExWorks, q.DeliveryTerm)
	assert.Equal(t, 900.0, q.TransportCost)
	assert.Equal(t, 10, q.MinOrderQuantity)
	assert.Equal(t, 5, q.LeadTime)
}

func TestSubmitQuoteRequest_Validate(t *testing.T) {
	valid := SubmitQuoteRequest{SupplierName: "s", MaterialName: "m", Unit: "kg", RawPrice: 10}
	assert.NoError(t, valid.Validate())

	badBase := valid
	badBase.BaseUnit = "tonne"
	assert.Error(t, badBase.Validate())

	badTerm := valid
	badTerm.DeliveryTerm = "CIF"
	assert.Error(t, badTerm.Validate())

	badPrice := valid
	badPrice.RawPrice = 0
	assert.Error(t, badPrice.Validate())
}
