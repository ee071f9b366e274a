package handlers

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"backend/models"
	"backend/repository"
	"backend/services"
	"backend/storage"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated user placed by RequireAuth.
func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get("currentUser"); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// GetQuotes godoc
// @Summary      List comparable quotes
// @Description  Approved quotes annotated with effective price, total bill and MOQ penalty for the requested quantity, sorted ascending.
// @Tags         quotes
// @Produce      json
// @Param        qty       query  number  false  "Required quantity in base units (0 = browsing)"
// @Param        material  query  string  false  "Material name filter"
// @Param        sort      query  string  false  "effective_price | lead_time | moq"
// @Success      200  {array}   models.ComparisonRow
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/quotes [get]
func GetQuotes(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// A missing or malformed qty means the buyer is just browsing.
		qtyNeeded, err := strconv.ParseFloat(c.DefaultQuery("qty", "0"), 64)
		if err != nil {
			qtyNeeded = 0
		}
		materialFilter := c.Query("material")
		criterion := c.DefaultQuery("sort", utils.RankByEffectivePrice)

		quotes, err := storage.ListApprovedQuotes(db, materialFilter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rows := make([]models.ComparisonRow, 0, len(quotes))
		for _, q := range quotes {
			bill := utils.CalculateDynamicBill(q, qtyNeeded)
			rows = append(rows, models.ComparisonRow{
				Quote:          q,
				EffectivePrice: bill.EffectivePrice,
				TotalBill:      bill.TotalBill,
				PenaltyNote:    bill.PenaltyNote,
			})
		}

		utils.RankQuotes(rows, criterion)
		c.JSON(http.StatusOK, rows)
	}
}

// CreateQuote godoc
// @Summary      Submit a quote
// @Description  Computes the standardized price per base unit, decides the initial status from the novelty flags and persists the quote.
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        body  body      models.SubmitQuoteRequest  true  "Quote"
// @Success      201   {object}  models.SubmitQuoteResponse
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/quotes [post]
func CreateQuote(db *sql.DB, emailService *services.EmailService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SubmitQuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := req.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		quote := req.ToQuote()
		quote.StandardizedPricePerBaseUnit = utils.CalculateStandardRate(quote)
		quote.Status = models.InitialQuoteStatus(req.IsCustomMaterial, req.IsCustomSupplier, req.IsCustomUnit)
		quote.QuoteRef = repository.GenerateQuoteRef()

		user := currentUser(c)
		if user != nil {
			quote.SubmittedBy = &user.ID
		}

		if err := storage.InsertQuote(db, &quote); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		userName := "System"
		if user != nil {
			userName = user.Name
		}
		if err := storage.SaveActivityLog(db, models.ActivityLog{
			CreatedAt:    time.Now(),
			UserName:     userName,
			EventName:    models.EventQuoteSubmitted,
			Description:  fmt.Sprintf("Quote %s for %s from %s", quote.QuoteRef, quote.MaterialName, quote.SupplierName),
			QuoteID:      quote.ID,
			SupplierName: quote.SupplierName,
			MaterialName: quote.MaterialName,
			IPAddress:    c.ClientIP(),
		}); err != nil {
			log.Printf("Failed to save activity log for quote %d: %v", quote.ID, err)
		}

		message := "Added ✅"
		if quote.Status == models.StatusPending {
			message = "Review Pending ⏳"
			if emailService != nil {
				go emailService.NotifyPendingQuote(quote, userName)
			}
		}

		c.JSON(http.StatusCreated, models.SubmitQuoteResponse{
			Quote:   quote,
			Message: message,
		})
	}
}

// GetPendingQuotes godoc
// @Summary      List pending quotes
// @Description  Quotes awaiting review, newest first, with submitter identity. Admins only.
// @Tags         quotes
// @Produce      json
// @Success      200  {array}   models.Quote
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/quotes/pending [get]
func GetPendingQuotes(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		quotes, err := storage.ListPendingQuotes(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, quotes)
	}
}

// UpdateQuoteStatus godoc
// @Summary      Approve or reject a quote
// @Description  Applies a review decision. Valid only while the quote is pending; approved and rejected are terminal.
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id    path      int  true  "Quote ID"
// @Param        body  body      models.DecideQuoteRequest  true  "Decision"
// @Success      200   {object}  models.Quote
// @Failure      400   {object}  models.ErrorResponse
// @Failure      404   {object}  models.ErrorResponse
// @Failure      409   {object}  models.ErrorResponse
// @Router       /api/quotes/{id}/status [patch]
func UpdateQuoteStatus(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quote ID"})
			return
		}

		var req models.DecideQuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		quote, err := storage.GetQuoteByID(db, id)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if err := quote.Status.Decide(req.Status); err != nil {
			switch err {
			case models.ErrInvalidStatus:
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			case models.ErrAlreadyDecided:
				c.JSON(http.StatusConflict, gin.H{"error": "Quote already decided"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		// Conditional update: only one decision can ever land.
		applied, err := storage.DecideQuoteStatus(db, id, req.Status)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !applied {
			c.JSON(http.StatusConflict, gin.H{"error": "Quote already decided"})
			return
		}

		quote.Status = req.Status

		eventName := models.EventQuoteApproved
		if req.Status == models.StatusRejected {
			eventName = models.EventQuoteRejected
		}
		userName := "System"
		if user := currentUser(c); user != nil {
			userName = user.Name
		}
		if err := storage.SaveActivityLog(db, models.ActivityLog{
			CreatedAt:    time.Now(),
			UserName:     userName,
			EventName:    eventName,
			Description:  fmt.Sprintf("Quote %s for %s from %s %s", quote.QuoteRef, quote.MaterialName, quote.SupplierName, req.Status),
			QuoteID:      quote.ID,
			SupplierName: quote.SupplierName,
			MaterialName: quote.MaterialName,
			IPAddress:    c.ClientIP(),
		}); err != nil {
			log.Printf("Failed to save activity log for quote %d: %v", quote.ID, err)
		}

		c.JSON(http.StatusOK, quote)
	}
}

// GetQuoteCatalog godoc
// @Summary      Catalog of known suppliers, materials and units
// @Description  Used by the submission form to flag novel suppliers, materials or units.
// @Tags         quotes
// @Produce      json
// @Success      200  {object}  models.QuoteCatalog
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/quotes/catalog [get]
func GetQuoteCatalog(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		catalog, err := storage.DistinctCatalog(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, catalog)
	}
}
