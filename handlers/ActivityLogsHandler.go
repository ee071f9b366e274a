package handlers

import (
	"database/sql"
	"math"
	"net/http"
	"strconv"

	"backend/models"

	"github.com/gin-gonic/gin"
)

// GetActivityLogsHandler godoc
// @Summary      Get activity logs
// @Description  Quote submission and review events, newest first. Admins only.
// @Tags         activity-logs
// @Produce      json
// @Param        page   query  int     false  "Page"
// @Param        limit  query  int     false  "Limit"
// @Param        event  query  string  false  "Filter by event name"
// @Success      200    {object}  object
// @Failure      500    {object}  models.ErrorResponse
// @Router       /api/logs [get]
func GetActivityLogsHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if err != nil || limit < 1 {
			limit = 10
		}
		offset := (page - 1) * limit

		event := c.Query("event")

		var totalRecords int
		countQuery := `SELECT COUNT(*) FROM activity_logs WHERE ($1 = '' OR event_name = $1)`
		if err := db.QueryRow(countQuery, event).Scan(&totalRecords); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting logs"})
			return
		}

		totalPages := int(math.Ceil(float64(totalRecords) / float64(limit)))

		query := `
			SELECT id, created_at, user_name, event_name, description,
				   quote_id, supplier_name, material_name, ip_address
			FROM activity_logs
			WHERE ($1 = '' OR event_name = $1)
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3
		`
		rows, err := db.Query(query, event, limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error querying logs"})
			return
		}
		defer rows.Close()

		logs := []models.ActivityLog{}
		for rows.Next() {
			var (
				entry        models.ActivityLog
				quoteID      sql.NullInt64
				supplierName sql.NullString
				materialName sql.NullString
				ipAddress    sql.NullString
			)
			if err := rows.Scan(
				&entry.ID, &entry.CreatedAt, &entry.UserName, &entry.EventName, &entry.Description,
				&quoteID, &supplierName, &materialName, &ipAddress,
			); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error scanning logs"})
				return
			}
			entry.QuoteID = getIntOrZero(quoteID)
			entry.SupplierName = getStringOrEmpty(supplierName)
			entry.MaterialName = getStringOrEmpty(materialName)
			entry.IPAddress = getStringOrEmpty(ipAddress)
			logs = append(logs, entry)
		}
		if err := rows.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating logs"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"logs": logs,
			"pagination": gin.H{
				"current_page":  page,
				"page_size":     limit,
				"total_records": totalRecords,
				"total_pages":   totalPages,
				"has_next":      page < totalPages,
				"has_prev":      page > 1,
			},
		})
	}
}

func getStringOrEmpty(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func getIntOrZero(ni sql.NullInt64) int {
	if ni.Valid {
		return int(ni.Int64)
	}
	return 0
}
