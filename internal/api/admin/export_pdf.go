package admin

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

func ExportReportPDF(c *gin.Context) {
	summary, err := buildReportSummary(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Fitness report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Fitness report "+time.Now().Format("2006-01-02"))
	pdf.Ln(14)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, row := range reportRows(summary) {
		if len(row) > 1 && row[1] == "" {
			// section header row
			pdf.Ln(4)
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(0, 7, tr(row[0]), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			continue
		}
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(120, 6, tr(row[0]), "", 0, "L", false, 0, "")
		value := ""
		if len(row) > 1 {
			value = row[1]
		}
		pdf.CellFormat(0, 6, value, "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode PDF"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+exportFilename("pdf")+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
