package admin

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

func ExportReportXLSX(c *gin.Context) {
	summary, err := buildReportSummary(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Report"
	f.SetSheetName("Sheet1", sheet)

	for i, row := range reportRows(summary) {
		for j, cell := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write spreadsheet"})
				return
			}
			if err := f.SetCellValue(sheet, ref, cell); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write spreadsheet"})
				return
			}
		}
	}
	f.SetColWidth(sheet, "A", "A", 36)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to encode spreadsheet: %v", err)})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+exportFilename("xlsx")+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
