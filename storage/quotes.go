package storage

import (
	"database/sql"
	"fmt"

	"backend/models"
)

const quoteColumns = `id, supplier_name, material_name, status, unit, base_unit,
	conversion_factor, raw_price, currency, gst_included, gst_rate,
	delivery_term, transport_cost, payment_terms, min_order_quantity,
	lead_time, standardized_price_per_base_unit, quote_ref, submitted_by,
	created_at, updated_at`

func scanQuote(row interface{ Scan(...interface{}) error }, q *models.Quote) error {
	var submittedBy sql.NullInt64
	var quoteRef sql.NullString
	err := row.Scan(
		&q.ID, &q.SupplierName, &q.MaterialName, &q.Status, &q.Unit, &q.BaseUnit,
		&q.ConversionFactor, &q.RawPrice, &q.Currency, &q.GSTIncluded, &q.GSTRate,
		&q.DeliveryTerm, &q.TransportCost, &q.PaymentTerms, &q.MinOrderQuantity,
		&q.LeadTime, &q.StandardizedPricePerBaseUnit, &quoteRef, &submittedBy,
		&q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if quoteRef.Valid {
		q.QuoteRef = quoteRef.String
	}
	if submittedBy.Valid {
		id := int(submittedBy.Int64)
		q.SubmittedBy = &id
	}
	return nil
}

// InsertQuote persists a freshly submitted quote and fills in its id and
// timestamps.
func InsertQuote(db *sql.DB, q *models.Quote) error {
	query := `INSERT INTO quotes (
		supplier_name, material_name, status, unit, base_unit,
		conversion_factor, raw_price, currency, gst_included, gst_rate,
		delivery_term, transport_cost, payment_terms, min_order_quantity,
		lead_time, standardized_price_per_base_unit, quote_ref, submitted_by,
		created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, NOW(), NOW())
	RETURNING id, created_at, updated_at`

	err := db.QueryRow(query,
		q.SupplierName, q.MaterialName, q.Status, q.Unit, q.BaseUnit,
		q.ConversionFactor, q.RawPrice, q.Currency, q.GSTIncluded, q.GSTRate,
		q.DeliveryTerm, q.TransportCost, q.PaymentTerms, q.MinOrderQuantity,
		q.LeadTime, q.StandardizedPricePerBaseUnit, q.QuoteRef, q.SubmittedBy,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert quote: %v", err)
	}
	return nil
}

// GetQuoteByID fetches one quote regardless of status.
func GetQuoteByID(db *sql.DB, id int) (*models.Quote, error) {
	var q models.Quote
	err := scanQuote(db.QueryRow(`SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id), &q)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote %d: %v", id, err)
	}
	return &q, nil
}

// ListApprovedQuotes returns the approved quotes visible to buyers,
// optionally filtered by material name (case-insensitive substring).
func ListApprovedQuotes(db *sql.DB, materialFilter string) ([]models.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE status = $1`
	args := []interface{}{models.StatusApproved}
	if materialFilter != "" {
		query += ` AND material_name ILIKE '%' || $2 || '%'`
		args = append(args, materialFilter)
	}
	query += ` ORDER BY material_name, id`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved quotes: %v", err)
	}
	defer rows.Close()

	var quotes []models.Quote
	for rows.Next() {
		var q models.Quote
		if err := scanQuote(rows, &q); err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

// ListPendingQuotes returns quotes awaiting review, newest first, with the
// submitter identity joined in (seeded quotes have none).
func ListPendingQuotes(db *sql.DB) ([]models.Quote, error) {
	query := `
		SELECT q.id, q.supplier_name, q.material_name, q.status, q.unit, q.base_unit,
			q.conversion_factor, q.raw_price, q.currency, q.gst_included, q.gst_rate,
			q.delivery_term, q.transport_cost, q.payment_terms, q.min_order_quantity,
			q.lead_time, q.standardized_price_per_base_unit, q.quote_ref, q.submitted_by,
			q.created_at, q.updated_at, u.name, u.email
		FROM quotes q
		LEFT JOIN users u ON q.submitted_by = u.id
		WHERE q.status = $1
		ORDER BY q.created_at DESC`

	rows, err := db.Query(query, models.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending quotes: %v", err)
	}
	defer rows.Close()

	var quotes []models.Quote
	for rows.Next() {
		var q models.Quote
		var submittedBy sql.NullInt64
		var quoteRef, name, email sql.NullString
		err := rows.Scan(
			&q.ID, &q.SupplierName, &q.MaterialName, &q.Status, &q.Unit, &q.BaseUnit,
			&q.ConversionFactor, &q.RawPrice, &q.Currency, &q.GSTIncluded, &q.GSTRate,
			&q.DeliveryTerm, &q.TransportCost, &q.PaymentTerms, &q.MinOrderQuantity,
			&q.LeadTime, &q.StandardizedPricePerBaseUnit, &quoteRef, &submittedBy,
			&q.CreatedAt, &q.UpdatedAt, &name, &email,
		)
		if err != nil {
			return nil, err
		}
		if quoteRef.Valid {
			q.QuoteRef = quoteRef.String
		}
		if submittedBy.Valid {
			id := int(submittedBy.Int64)
			q.SubmittedBy = &id
		}
		if name.Valid {
			q.SubmitterName = name.String
		}
		if email.Valid {
			q.SubmitterEmail = email.String
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

// DecideQuoteStatus applies a review decision. The update is conditioned on
// the quote still being pending, so two concurrent decisions on the same
// quote cannot both succeed and a terminal quote can never be re-decided.
// Returns false if the quote was not in pending state (or does not exist).
func DecideQuoteStatus(db *sql.DB, id int, target models.QuoteStatus) (bool, error) {
	result, err := db.Exec(
		`UPDATE quotes SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
		target, id, models.StatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update quote status: %v", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %v", err)
	}
	return rowsAffected == 1, nil
}

// DistinctCatalog lists every supplier, material and sales unit the market
// has seen, for novelty checks on the submission form.
func DistinctCatalog(db *sql.DB) (*models.QuoteCatalog, error) {
	catalog := &models.QuoteCatalog{}

	collect := func(column string, dest *[]string) error {
		rows, err := db.Query(`SELECT DISTINCT ` + column + ` FROM quotes ORDER BY ` + column)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				return err
			}
			*dest = append(*dest, v)
		}
		return rows.Err()
	}

	if err := collect("supplier_name", &catalog.Suppliers); err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %v", err)
	}
	if err := collect("material_name", &catalog.Materials); err != nil {
		return nil, fmt.Errorf("failed to list materials: %v", err)
	}
	if err := collect("unit", &catalog.Units); err != nil {
		return nil, fmt.Errorf("failed to list units: %v", err)
	}
	return catalog, nil
}

// CountQuotesByStatus returns total/approved/pending/rejected counts.
func CountQuotesByStatus(db *sql.DB) (total, approved, pending, rejected int, err error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'rejected')
		FROM quotes`
	err = db.QueryRow(query).Scan(&total, &approved, &pending, &rejected)
	return
}

// BestRatesByMaterial returns, per material, the lowest approved
// standardized rate and the supplier offering it.
func BestRatesByMaterial(db *sql.DB) ([]models.MaterialStat, error) {
	query := `
		SELECT DISTINCT ON (material_name)
			material_name, base_unit,
			COUNT(*) OVER (PARTITION BY material_name),
			standardized_price_per_base_unit, supplier_name
		FROM quotes
		WHERE status = 'approved'
		ORDER BY material_name, standardized_price_per_base_unit ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query best rates: %v", err)
	}
	defer rows.Close()

	var stats []models.MaterialStat
	for rows.Next() {
		var s models.MaterialStat
		if err := rows.Scan(&s.MaterialName, &s.BaseUnit, &s.QuoteCount, &s.BestRate, &s.BestRateSupplier); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
