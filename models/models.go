package models

import (
	"time"
)

// User is a buyer or admin account.
type User struct {
	ID          int       `json:"id" example:"1"`
	Name        string    `json:"name" example:"John Doe"`
	Email       string    `json:"email" example:"user@example.com"`
	Password    string    `json:"-"`
	IsAdmin     bool      `json:"is_admin" example:"false"`
	CreatedAt   time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt   time.Time `json:"updated_at" example:"2024-01-15T10:30:00Z"`
	LastAccess  time.Time `json:"last_access,omitempty" example:"2024-01-15T10:30:00Z"`
	Suspended   bool      `json:"suspended" example:"false"`
	CompanyName string    `json:"company_name,omitempty" example:"BuildWell Constructions"`
}

// Session is one logged-in device for a user.
type Session struct {
	UserID                int       `json:"user_id" example:"1"`
	SessionID             string    `json:"session_id" example:"uuid"`
	HostName              string    `json:"host_name" example:"user@example.com"`
	IPAddress             string    `json:"ip_address" example:"192.168.1.1"`
	Timestamp             time.Time `json:"timestamp" example:"2024-01-15T10:30:00Z"`
	ExpiresAt             time.Time `json:"expires_at" example:"2024-01-16T10:30:00Z"`
	RefreshToken          string    `json:"refresh_token,omitempty"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at,omitempty"`
}

// ActivityLog records quote submissions and review decisions.
type ActivityLog struct {
	ID           int       `json:"id" example:"1"`
	CreatedAt    time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UserName     string    `json:"user_name" example:"John Doe"`
	EventName    string    `json:"event_name" example:"quote_submitted"`
	Description  string    `json:"description" example:"Quote for TMT Bar Fe500D from Tata Steel"`
	QuoteID      int       `json:"quote_id" example:"1"`
	SupplierName string    `json:"supplier_name" example:"Tata Steel"`
	MaterialName string    `json:"material_name" example:"TMT Bar Fe500D"`
	IPAddress    string    `json:"ip_address,omitempty" example:"192.168.1.1"`
}

// Activity log event names.
const (
	EventQuoteSubmitted = "quote_submitted"
	EventQuoteApproved  = "quote_approved"
	EventQuoteRejected  = "quote_rejected"
)

// ErrorResponse is the generic error envelope (swagger).
type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid input"`
	Details string `json:"details,omitempty" example:""`
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Name        string `json:"name" binding:"required" example:"John Doe"`
	Email       string `json:"email" binding:"required" example:"user@example.com"`
	Password    string `json:"password" binding:"required" example:"password"`
	CompanyName string `json:"company_name" example:"BuildWell Constructions"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"user@example.com"`
	Password string `json:"password" binding:"required" example:"password"`
}

// LoginUser is the user object inside LoginResponse.
type LoginUser struct {
	ID      int    `json:"id" example:"1"`
	Name    string `json:"name" example:"John Doe"`
	Email   string `json:"email" example:"user@example.com"`
	IsAdmin bool   `json:"is_admin" example:"false"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Message      string    `json:"message" example:"User successfully logged in"`
	AccessToken  string    `json:"access_token" example:"eyJhbGc..."`
	RefreshToken string    `json:"refresh_token" example:"eyJhbGc..."`
	SessionID    string    `json:"session_id" example:"uuid"`
	User         LoginUser `json:"user"`
}

// ValidateSessionResponse is returned by session validation (swagger).
type ValidateSessionResponse struct {
	Valid bool   `json:"valid" example:"true"`
	Email string `json:"email,omitempty"`
}

// SubmitQuoteResponse pairs the stored quote with the review outcome message.
type SubmitQuoteResponse struct {
	Quote   Quote  `json:"quote"`
	Message string `json:"message" example:"Added ✅"`
}

// MaterialStat is one dashboard row: the best approved standardized rate
// currently on the market for a material.
type MaterialStat struct {
	MaterialName     string  `json:"material_name" example:"TMT Bar Fe500D"`
	BaseUnit         string  `json:"base_unit" example:"kg"`
	QuoteCount       int     `json:"quote_count" example:"8"`
	BestRate         float64 `json:"best_rate" example:"64.12"`
	BestRateSupplier string  `json:"best_rate_supplier" example:"Jindal Steel"`
}

// DashboardStats is the market overview returned to admins.
type DashboardStats struct {
	TotalQuotes    int            `json:"total_quotes" example:"70"`
	ApprovedQuotes int            `json:"approved_quotes" example:"56"`
	PendingQuotes  int            `json:"pending_quotes" example:"14"`
	RejectedQuotes int            `json:"rejected_quotes" example:"0"`
	Materials      []MaterialStat `json:"materials"`
}
