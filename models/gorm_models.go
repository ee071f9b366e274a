package models

import (
	"time"
)

// GORM-tagged mirrors of the storage models. They exist for schema creation
// (AutoMigrate); the request path reads and writes through raw SQL.

// QuoteGorm represents the quotes table with GORM tags.
type QuoteGorm struct {
	ID                           int       `gorm:"primaryKey;column:id" json:"id"`
	SupplierName                 string    `gorm:"column:supplier_name;not null;index" json:"supplier_name"`
	MaterialName                 string    `gorm:"column:material_name;not null;index" json:"material_name"`
	Status                       string    `gorm:"column:status;not null;default:'approved';index" json:"status"`
	Unit                         string    `gorm:"column:unit;not null" json:"unit"`
	BaseUnit                     string    `gorm:"column:base_unit;not null;default:'kg'" json:"base_unit"`
	ConversionFactor             float64   `gorm:"column:conversion_factor;type:numeric(14,4);default:1" json:"conversion_factor"`
	RawPrice                     float64   `gorm:"column:raw_price;type:numeric(14,2);not null" json:"raw_price"`
	Currency                     string    `gorm:"column:currency;default:'INR'" json:"currency"`
	GSTIncluded                  bool      `gorm:"column:gst_included;default:false" json:"gst_included"`
	GSTRate                      float64   `gorm:"column:gst_rate;type:numeric(5,2);default:18" json:"gst_rate"`
	DeliveryTerm                 string    `gorm:"column:delivery_term;default:'FOR'" json:"delivery_term"`
	TransportCost                float64   `gorm:"column:transport_cost;type:numeric(14,2);default:0" json:"transport_cost"`
	PaymentTerms                 string    `gorm:"column:payment_terms;default:'Advance'" json:"payment_terms"`
	MinOrderQuantity             int       `gorm:"column:min_order_quantity;default:1" json:"min_order_quantity"`
	LeadTime                     int       `gorm:"column:lead_time;default:3" json:"lead_time"`
	StandardizedPricePerBaseUnit float64   `gorm:"column:standardized_price_per_base_unit;type:numeric(14,2)" json:"standardized_price_per_base_unit"`
	QuoteRef                     string    `gorm:"column:quote_ref" json:"quote_ref"`
	SubmittedBy                  *int      `gorm:"column:submitted_by" json:"submitted_by"`
	CreatedAt                    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt                    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for QuoteGorm.
func (QuoteGorm) TableName() string {
	return "quotes"
}

// UserGorm represents the users table with GORM tags.
type UserGorm struct {
	ID               int        `gorm:"primaryKey;column:id" json:"id"`
	Name             string     `gorm:"column:name;not null" json:"name"`
	Email            string     `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Password         string     `gorm:"column:password;not null" json:"-"`
	IsAdmin          bool       `gorm:"column:is_admin;default:false" json:"is_admin"`
	Suspended        bool       `gorm:"column:suspended;default:false" json:"suspended"`
	CompanyName      string     `gorm:"column:company_name" json:"company_name"`
	ResetToken       *string    `gorm:"column:reset_token" json:"-"`
	ResetTokenExpiry *time.Time `gorm:"column:reset_token_expiry" json:"-"`
	LastAccess       time.Time  `gorm:"column:last_access" json:"last_access"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for UserGorm.
func (UserGorm) TableName() string {
	return "users"
}

// SessionGorm represents the session table with GORM tags.
type SessionGorm struct {
	ID                    int       `gorm:"primaryKey;column:id" json:"id"`
	UserID                int       `gorm:"column:user_id;not null;index" json:"user_id"`
	SessionID             string    `gorm:"column:session_id;not null;uniqueIndex" json:"session_id"`
	HostName              string    `gorm:"column:host_name" json:"host_name"`
	IPAddress             string    `gorm:"column:ip_address" json:"ip_address"`
	Timestp               time.Time `gorm:"column:timestp" json:"timestp"`
	ExpiresAt             time.Time `gorm:"column:expires_at;index" json:"expires_at"`
	RefreshToken          *string   `gorm:"column:refresh_token" json:"refresh_token,omitempty"`
	RefreshTokenExpiresAt *time.Time `gorm:"column:refresh_token_expires_at" json:"refresh_token_expires_at,omitempty"`
}

// TableName specifies the table name for SessionGorm.
func (SessionGorm) TableName() string {
	return "session"
}

// ActivityLogGorm represents the activity_logs table with GORM tags.
type ActivityLogGorm struct {
	ID           int       `gorm:"primaryKey;column:id" json:"id"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UserName     string    `gorm:"column:user_name" json:"user_name"`
	EventName    string    `gorm:"column:event_name;not null" json:"event_name"`
	Description  string    `gorm:"column:description" json:"description"`
	QuoteID      int       `gorm:"column:quote_id;index" json:"quote_id"`
	SupplierName string    `gorm:"column:supplier_name" json:"supplier_name"`
	MaterialName string    `gorm:"column:material_name" json:"material_name"`
	IPAddress    string    `gorm:"column:ip_address" json:"ip_address"`
}

// TableName specifies the table name for ActivityLogGorm.
func (ActivityLogGorm) TableName() string {
	return "activity_logs"
}
