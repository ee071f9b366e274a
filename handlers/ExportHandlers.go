package handlers

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"backend/models"
	"backend/storage"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// comparisonRows runs the costing engine over the approved quotes matching
// the filter and returns them ranked, same as the comparison endpoint.
func comparisonRows(db *sql.DB, material string, qtyNeeded float64, criterion string) ([]models.ComparisonRow, error) {
	quotes, err := storage.ListApprovedQuotes(db, material)
	if err != nil {
		return nil, err
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
	return rows, nil
}

var exportHeader = []string{
	"Quote Ref", "Material", "Supplier", "Unit", "Base Unit",
	"Raw Price", "Standardized Rate", "Effective Price", "Total Bill",
	"MOQ", "Lead Time (days)", "Delivery Term", "Payment Terms", "Penalty",
}

func exportRow(r models.ComparisonRow) []string {
	penalty := ""
	if r.PenaltyNote != nil {
		penalty = *r.PenaltyNote
	}
	return []string{
		r.QuoteRef,
		r.MaterialName,
		r.SupplierName,
		r.Unit,
		r.BaseUnit,
		strconv.FormatFloat(r.RawPrice, 'f', 2, 64),
		strconv.FormatFloat(r.StandardizedPricePerBaseUnit, 'f', 2, 64),
		strconv.FormatFloat(r.EffectivePrice, 'f', 2, 64),
		strconv.FormatFloat(r.TotalBill, 'f', 2, 64),
		strconv.Itoa(r.MinOrderQuantity),
		strconv.Itoa(r.LeadTime),
		r.DeliveryTerm,
		r.PaymentTerms,
		penalty,
	}
}

// ExportComparisonCSV godoc
// @Summary      Export comparison as CSV
// @Description  The ranked comparison for the requested material and quantity as a CSV download.
// @Tags         export
// @Produce      text/csv
// @Param        qty       query  number  false  "Required quantity in base units"
// @Param        material  query  string  false  "Material name filter"
// @Param        sort      query  string  false  "effective_price | lead_time | moq"
// @Success      200  {file}    file  "CSV file"
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/export/comparison.csv [get]
func ExportComparisonCSV(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		qtyNeeded, err := strconv.ParseFloat(c.DefaultQuery("qty", "0"), 64)
		if err != nil {
			qtyNeeded = 0
		}
		rows, err := comparisonRows(db, c.Query("material"), qtyNeeded, c.DefaultQuery("sort", utils.RankByEffectivePrice))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", "attachment;filename=quote_comparison.csv")

		writer := csv.NewWriter(c.Writer)
		defer writer.Flush()

		if err := writer.Write(exportHeader); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing CSV header"})
			return
		}
		for _, r := range rows {
			if err := writer.Write(exportRow(r)); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing CSV row"})
				return
			}
		}
	}
}

// ExportComparisonExcel godoc
// @Summary      Export comparison as Excel
// @Description  The ranked comparison for the requested material and quantity as an XLSX workbook with a summary sheet.
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        qty       query  number  false  "Required quantity in base units"
// @Param        material  query  string  false  "Material name filter"
// @Param        sort      query  string  false  "effective_price | lead_time | moq"
// @Success      200  {file}    file  "XLSX file"
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/export/comparison.xlsx [get]
func ExportComparisonExcel(db *sql.DB) gin.HandlerFunc {
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

		f := excelize.NewFile()
		defer f.Close()

		const sheet = "Comparison"
		f.SetSheetName("Sheet1", sheet)

		for i, title := range exportHeader {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, title)
		}
		headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		lastHeaderCell, _ := excelize.CoordinatesToCellName(len(exportHeader), 1)
		f.SetCellStyle(sheet, "A1", lastHeaderCell, headerStyle)

		for i, r := range rows {
			for col, value := range exportRow(r) {
				cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
				f.SetCellValue(sheet, cell, value)
			}
		}

		summarySheet := "Summary"
		f.NewSheet(summarySheet)
		f.SetCellValue(summarySheet, "A1", "Generated")
		f.SetCellValue(summarySheet, "B1", time.Now().Format("2006-01-02 15:04"))
		f.SetCellValue(summarySheet, "A2", "Material filter")
		if material == "" {
			f.SetCellValue(summarySheet, "B2", "All materials")
		} else {
			f.SetCellValue(summarySheet, "B2", material)
		}
		f.SetCellValue(summarySheet, "A3", "Quantity")
		if qtyNeeded > 0 {
			f.SetCellValue(summarySheet, "B3", qtyNeeded)
		} else {
			f.SetCellValue(summarySheet, "B3", "Browsing (per base unit)")
		}
		f.SetCellValue(summarySheet, "A4", "Quotes compared")
		f.SetCellValue(summarySheet, "B4", len(rows))
		if len(rows) > 0 {
			f.SetCellValue(summarySheet, "A5", "Best supplier")
			f.SetCellValue(summarySheet, "B5", fmt.Sprintf("%s (%.2f %s)", rows[0].SupplierName, rows[0].EffectivePrice, rows[0].Currency))
		}

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment;filename=quote_comparison.xlsx")
		if err := f.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing Excel file"})
		}
	}
}
