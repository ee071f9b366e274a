package handlers

import (
	"bytes"
	"database/sql"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

// addLabel draws one line of text onto the composed image.
func addLabel(img *image.RGBA, x, y int, label string, bold bool) {
	face := inconsolata.Regular8x16
	col := color.RGBA{0, 0, 0, 255}
	if bold {
		face = inconsolata.Bold8x16
		col = color.RGBA{30, 30, 30, 255}
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(x * 64),
			Y: fixed.Int26_6(y * 64),
		},
	}
	d.DrawString(label)
}

// comparisonURL builds the frontend deep link the QR code encodes.
func comparisonURL(materialName string) string {
	base := os.Getenv("FRONTEND_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	return fmt.Sprintf("%s/compare?material=%s", base, url.QueryEscape(materialName))
}

// GenerateQuoteQRCodeJPEG godoc
// @Summary      Quote QR label as JPEG
// @Description  A printable label: a QR code deep-linking to the live comparison for the quote's material, captioned with supplier and standardized rate.
// @Tags         qr
// @Produce      image/jpeg
// @Param        id   path      int  true  "Quote ID"
// @Success      200  {file}    file  "JPEG image"
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/quotes/{id}/qr [get]
func GenerateQuoteQRCodeJPEG(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quote ID"})
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

		const qrSize = 256
		qrPNG, err := qrcode.Encode(comparisonURL(quote.MaterialName), qrcode.Medium, qrSize)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
			return
		}
		qrImg, _, err := image.Decode(bytes.NewReader(qrPNG))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode QR code"})
			return
		}

		// QR on top, three caption lines below.
		const captionHeight = 70
		canvas := image.NewRGBA(image.Rect(0, 0, qrSize, qrSize+captionHeight))
		draw.Draw(canvas, canvas.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
		draw.Draw(canvas, image.Rect(0, 0, qrSize, qrSize), qrImg, image.Point{}, draw.Over)

		addLabel(canvas, 10, qrSize+18, quote.MaterialName, true)
		addLabel(canvas, 10, qrSize+38, fmt.Sprintf("%s  [%s]", quote.SupplierName, quote.QuoteRef), false)
		addLabel(canvas, 10, qrSize+58,
			fmt.Sprintf("%.2f %s/%s  Lead %dd", quote.StandardizedPricePerBaseUnit, quote.Currency, quote.BaseUnit, quote.LeadTime), false)

		c.Header("Content-Type", "image/jpeg")
		c.Header("Content-Disposition", fmt.Sprintf("inline;filename=quote_%s.jpg", quote.QuoteRef))
		if err := jpeg.Encode(c.Writer, canvas, &jpeg.Options{Quality: 90}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode image"})
		}
	}
}

// GenerateMaterialQRCodePNG godoc
// @Summary      Material comparison QR as PNG
// @Description  A bare QR code deep-linking to the live comparison for a material.
// @Tags         qr
// @Produce      image/png
// @Param        material  query  string  true  "Material name"
// @Success      200  {file}    file  "PNG image"
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/qr/material [get]
func GenerateMaterialQRCodePNG() gin.HandlerFunc {
	return func(c *gin.Context) {
		materialName := c.Query("material")
		if materialName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "material is required"})
			return
		}

		png, err := qrcode.Encode(comparisonURL(materialName), qrcode.Medium, 256)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	}
}
