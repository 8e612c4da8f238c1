package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/flouswise/finance/pkg/datetime"
)

// ExportHandler handles data export endpoints.
type ExportHandler struct {
	exportService ExportServiceInterface
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService ExportServiceInterface) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// AnalyticsReportPDF godoc
// @Summary Export the health report to PDF
// @Description Health score, components, ratios, spending breakdown and recommendations
// @Tags export
// @Produce application/pdf
// @Security BearerAuth
// @Success 200 {file} file "PDF file"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/report/pdf [get]
func (h *ExportHandler) AnalyticsReportPDF(w http.ResponseWriter, r *http.Request) {
	pdfData, err := h.exportService.AnalyticsReportPDF(r.Context(), GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	filename := fmt.Sprintf("flouswise_health_report_%s.pdf", datetime.FileStamp(time.Now()))
	writeAttachment(w, "application/pdf", filename, pdfData)
}

// NetWorthCSV godoc
// @Summary Export the net worth trend to CSV
// @Tags export
// @Produce text/csv
// @Security BearerAuth
// @Param months query int false "Months back (1-120, default 6)"
// @Success 200 {file} file "CSV file"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/net-worth/export/csv [get]
func (h *ExportHandler) NetWorthCSV(w http.ResponseWriter, r *http.Request) {
	months, err := parseMonths(r)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	csvData, err := h.exportService.NetWorthCSV(r.Context(), GetUserID(r.Context()), months)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	filename := fmt.Sprintf("net_worth_%s.csv", datetime.FileStamp(time.Now()))
	writeAttachment(w, "text/csv", filename, csvData)
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}
