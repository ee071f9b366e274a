package models

import (
	"errors"
	"time"
)

// QuoteStatus is the approval state of a quote. Transitions are only
// pending -> approved and pending -> rejected; both are terminal.
type QuoteStatus string

const (
	StatusPending  QuoteStatus = "pending"
	StatusApproved QuoteStatus = "approved"
	StatusRejected QuoteStatus = "rejected"
)

var (
	ErrInvalidStatus  = errors.New("invalid status")
	ErrAlreadyDecided = errors.New("quote already decided")
)

// IsValid reports whether s is one of the three known statuses.
func (s QuoteStatus) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// IsTerminal reports whether no further transition is allowed out of s.
func (s QuoteStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// InitialQuoteStatus decides the status of a freshly submitted quote.
// Anything the catalog has never seen before goes through review.
func InitialQuoteStatus(customMaterial, customSupplier, customUnit bool) QuoteStatus {
	if customMaterial || customSupplier || customUnit {
		return StatusPending
	}
	return StatusApproved
}

// Decide validates a review decision against the current status.
// Only approved/rejected are acceptable targets and only from pending.
func (s QuoteStatus) Decide(target QuoteStatus) error {
	if target != StatusApproved && target != StatusRejected {
		return ErrInvalidStatus
	}
	if s != StatusPending {
		return ErrAlreadyDecided
	}
	return nil
}

// Delivery terms
const (
	DeliveryFOR     = "FOR"      // supplier delivers free
	DeliveryExWorks = "EX_WORKS" // buyer pays transport
)

// Base units a material can be compared in.
var BaseUnits = []string{"kg", "meter", "liter", "piece"}

// IsValidBaseUnit reports whether u is one of the canonical physical units.
func IsValidBaseUnit(u string) bool {
	for _, b := range BaseUnits {
		if u == b {
			return true
		}
	}
	return false
}

// Quote represents a single supplier's offer for one material.
type Quote struct {
	ID           int         `json:"id" example:"1"`
	SupplierName string      `json:"supplierName" example:"Tata Steel"`
	MaterialName string      `json:"materialName" example:"TMT Bar Fe500D"`
	Status       QuoteStatus `json:"status" example:"approved"`

	// Physics: how the supplier packages the material.
	Unit             string  `json:"unit" example:"MT"`
	BaseUnit         string  `json:"baseUnit" example:"kg"`
	ConversionFactor float64 `json:"conversionFactor" example:"1000"`

	// Commercials.
	RawPrice      float64 `json:"rawPrice" example:"58000"`
	Currency      string  `json:"currency" example:"INR"`
	GSTIncluded   bool    `json:"gstIncluded" example:"false"`
	GSTRate       float64 `json:"gstRate" example:"18"`
	DeliveryTerm  string  `json:"deliveryTerm" example:"FOR"`
	TransportCost float64 `json:"transportCost" example:"0"`
	PaymentTerms  string  `json:"paymentTerms" example:"Net 30 Days"`

	// Logistics.
	MinOrderQuantity int `json:"minOrderQuantity" example:"1"`
	LeadTime         int `json:"leadTime" example:"3"`

	// Computed once at submission, never recomputed in place.
	StandardizedPricePerBaseUnit float64 `json:"standardizedPricePerBaseUnit" example:"68.44"`

	QuoteRef    string    `json:"quoteRef,omitempty" example:"QT-AB12345"`
	SubmittedBy *int      `json:"submittedBy,omitempty" example:"1"`
	CreatedAt   time.Time `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	UpdatedAt   time.Time `json:"updatedAt" example:"2024-01-15T10:30:00Z"`

	// Joined in for privileged listings, not stored on the quote row.
	SubmitterName  string `json:"submitterName,omitempty" example:"John Doe"`
	SubmitterEmail string `json:"submitterEmail,omitempty" example:"user@example.com"`
}

// SubmitQuoteRequest is the payload accepted by POST /api/quotes. Optional
// commercial fields are pointers so that "absent" can be told apart from zero
// and replaced by the documented defaults.
type SubmitQuoteRequest struct {
	SupplierName string `json:"supplierName" binding:"required"`
	MaterialName string `json:"materialName" binding:"required"`
	Unit         string `json:"unit" binding:"required"`
	BaseUnit     string `json:"baseUnit"`

	ConversionFactor *float64 `json:"conversionFactor"`
	RawPrice         float64  `json:"rawPrice" binding:"required"`
	Currency         string   `json:"currency"`
	GSTIncluded      bool     `json:"gstIncluded"`
	GSTRate          *float64 `json:"gstRate"`
	DeliveryTerm     string   `json:"deliveryTerm"`
	TransportCost    *float64 `json:"transportCost"`
	PaymentTerms     string   `json:"paymentTerms"`
	MinOrderQuantity *int     `json:"minOrderQuantity"`
	LeadTime         *int     `json:"leadTime"`

	// Novelty flags decided by the caller against the current catalog.
	IsCustomMaterial bool `json:"isCustomMaterial"`
	IsCustomSupplier bool `json:"isCustomSupplier"`
	IsCustomUnit     bool `json:"isCustomUnit"`
}

// ToQuote applies the documented defaults and returns a strictly typed Quote.
// Numeric sanity (positive conversion factor etc.) is handled downstream by
// the calculator, which degrades to safe defaults instead of failing.
func (r SubmitQuoteRequest) ToQuote() Quote {
	q := Quote{
		SupplierName:     r.SupplierName,
		MaterialName:     r.MaterialName,
		Unit:             r.Unit,
		BaseUnit:         r.BaseUnit,
		ConversionFactor: 1,
		RawPrice:         r.RawPrice,
		Currency:         r.Currency,
		GSTIncluded:      r.GSTIncluded,
		GSTRate:          18,
		DeliveryTerm:     r.DeliveryTerm,
		PaymentTerms:     r.PaymentTerms,
		MinOrderQuantity: 1,
		LeadTime:         3,
	}
	if q.BaseUnit == "" {
		q.BaseUnit = "kg"
	}
	if q.Currency == "" {
		q.Currency = "INR"
	}
	if q.DeliveryTerm == "" {
		q.DeliveryTerm = DeliveryFOR
	}
	if q.PaymentTerms == "" {
		q.PaymentTerms = "Advance"
	}
	if r.ConversionFactor != nil {
		q.ConversionFactor = *r.ConversionFactor
	}
	if r.GSTRate != nil {
		q.GSTRate = *r.GSTRate
	}
	if r.TransportCost != nil {
		q.TransportCost = *r.TransportCost
	}
	if r.MinOrderQuantity != nil && *r.MinOrderQuantity > 0 {
		q.MinOrderQuantity = *r.MinOrderQuantity
	}
	if r.LeadTime != nil && *r.LeadTime > 0 {
		q.LeadTime = *r.LeadTime
	}
	return q
}

// Validate checks the closed enums of the request.
func (r SubmitQuoteRequest) Validate() error {
	if r.BaseUnit != "" && !IsValidBaseUnit(r.BaseUnit) {
		return errors.New("baseUnit must be one of kg, meter, liter, piece")
	}
	if r.DeliveryTerm != "" && r.DeliveryTerm != DeliveryFOR && r.DeliveryTerm != DeliveryExWorks {
		return errors.New("deliveryTerm must be FOR or EX_WORKS")
	}
	if r.RawPrice <= 0 {
		return errors.New("rawPrice must be positive")
	}
	return nil
}

// ComparisonRow is a quote annotated with the runtime bill for the quantity
// the buyer asked about. It is never persisted.
type ComparisonRow struct {
	Quote
	EffectivePrice float64 `json:"effectivePrice" example:"75"`
	TotalBill      float64 `json:"totalBill" example:"900"`
	PenaltyNote    *string `json:"penaltyNote" example:"High MOQ! Forced to buy 5 piece_6m"`
}

// DecideQuoteRequest is the payload for PATCH /api/quotes/:id/status.
type DecideQuoteRequest struct {
	Status QuoteStatus `json:"status" binding:"required"`
}

// QuoteCatalog lists the names the market has already seen, so the client
// can flag novel suppliers/materials/units on submission.
type QuoteCatalog struct {
	Suppliers []string `json:"suppliers"`
	Materials []string `json:"materials"`
	Units     []string `json:"units"`
}
