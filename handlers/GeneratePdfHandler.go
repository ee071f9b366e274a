package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// GenerateComparisonPDF godoc
// @Summary      Comparison report PDF
// @Description  A printable ranked comparison for the requested material and quantity.
// @Tags         export
// @Produce      application/pdf
// @Param        qty       query  number  false  "Required quantity in base units"
// @Param        material  query  string  false  "Material name filter"
// @Param        sort      query  string  false  "effective_price | lead_time | moq"
// @Success      200  "PDF file"
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/export/comparison.pdf [get]
func GenerateComparisonPDF(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		qtyNeeded, err := strconv.ParseFloat(c.DefaultQuery("qty", "0"), 64)
		if err != nil {
			qtyNeeded = 0
		}
		material := c.Query("material")
		rows, err := comparisonRows(db, material, qtyNeeded, c.DefaultQuery("sort", utils.RankByEffectivePrice))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		titleCaser := cases.Title(language.Und)

		pdf := gofpdf.New("L", "mm", "A4", "")
		pdf.SetAutoPageBreak(true, 15)
		pdf.AddPage()

		// --- Header ---
		pdf.SetFont("Arial", "B", 16)
		pdf.Cell(0, 10, "Quote Comparison Report")
		pdf.Ln(8)

		pdf.SetFont("Arial", "", 10)
		scope := "All Materials"
		if material != "" {
			scope = titleCaser.String(material)
		}
		pdf.Cell(0, 6, fmt.Sprintf("Material: %s", scope))
		pdf.Ln(5)
		if qtyNeeded > 0 {
			pdf.Cell(0, 6, fmt.Sprintf("Required Quantity: %.2f base units", qtyNeeded))
		} else {
			pdf.Cell(0, 6, "Mode: Browsing (price per base unit)")
		}
		pdf.Ln(5)
		pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", time.Now().Format("02 Jan 2006 15:04")))
		pdf.Ln(10)

		// --- Table header ---
		headers := []string{"Rank", "Supplier", "Material", "Std Rate", "Effective", "Total Bill", "MOQ", "Lead", "Terms", "Penalty"}
		widths := []float64{12, 40, 45, 22, 22, 26, 14, 14, 32, 50}

		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		// --- Rows ---
		pdf.SetFont("Arial", "", 8)
		for i, r := range rows {
			penalty := ""
			if r.PenaltyNote != nil {
				penalty = *r.PenaltyNote
			}
			cells := []string{
				strconv.Itoa(i + 1),
				r.SupplierName,
				titleCaser.String(r.MaterialName),
				fmt.Sprintf("%.2f/%s", r.StandardizedPricePerBaseUnit, r.BaseUnit),
				fmt.Sprintf("%.2f", r.EffectivePrice),
				fmt.Sprintf("%.2f %s", r.TotalBill, r.Currency),
				fmt.Sprintf("%d %s", r.MinOrderQuantity, r.Unit),
				fmt.Sprintf("%dd", r.LeadTime),
				fmt.Sprintf("%s / %s", r.DeliveryTerm, r.PaymentTerms),
				penalty,
			}
			for j, cell := range cells {
				align := "L"
				if j == 0 || j >= 3 && j <= 7 {
					align = "R"
				}
				pdf.CellFormat(widths[j], 7, cell, "1", 0, align, false, 0, "")
			}
			pdf.Ln(-1)
		}

		if len(rows) == 0 {
			pdf.SetFont("Arial", "I", 10)
			pdf.Cell(0, 10, "No approved quotes match this filter.")
			pdf.Ln(-1)
		} else {
			pdf.Ln(6)
			pdf.SetFont("Arial", "B", 10)
			pdf.Cell(0, 8, fmt.Sprintf("Best offer: %s at %.2f %s effective per %s",
				rows[0].SupplierName, rows[0].EffectivePrice, rows[0].Currency, rows[0].BaseUnit))
		}

		c.Header("Content-Type", "application/pdf")
		c.Header("Content-Disposition", "attachment;filename=quote_comparison.pdf")
		if err := pdf.Output(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing PDF"})
		}
	}
}
