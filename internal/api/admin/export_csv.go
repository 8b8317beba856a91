package admin

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func ExportReportCSV(c *gin.Context) {
	summary, err := buildReportSummary(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(reportRows(summary)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write CSV"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+exportFilename("csv")+`"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
