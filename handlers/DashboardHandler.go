package handlers

import (
	"database/sql"
	"net/http"

	"backend/models"
	"backend/storage"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats godoc
// @Summary      Market overview
// @Description  Quote counts by status plus, per material, the best approved standardized rate and its supplier. Admins only.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  models.DashboardStats
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/dashboard [get]
func GetDashboardStats(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		total, approved, pending, rejected, err := storage.CountQuotesByStatus(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		materials, err := storage.BestRatesByMaterial(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if materials == nil {
			materials = []models.MaterialStat{}
		}

		c.JSON(http.StatusOK, models.DashboardStats{
			TotalQuotes:    total,
			ApprovedQuotes: approved,
			PendingQuotes:  pending,
			RejectedQuotes: rejected,
			Materials:      materials,
		})
	}
}
