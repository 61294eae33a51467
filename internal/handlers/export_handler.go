package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finledger/internal/errors"
	"finledger/internal/export"
	"finledger/internal/metrics"
	"finledger/internal/services"
)

// ExportHandler serves downloadable copies of the user's transactions.
type ExportHandler struct {
	transactionService services.TransactionServicer
	header             export.Header
	metrics            *metrics.Metrics
}

// NewExportHandler creates a new ExportHandler writing the given header row.
func NewExportHandler(transactionService services.TransactionServicer, header export.Header, m *metrics.Metrics) *ExportHandler {
	return &ExportHandler{transactionService: transactionService, header: header, metrics: m}
}

type exportFormat struct {
	name        string
	contentType string
	filename    string
	write       func(io.Writer, export.Header, []export.Row) error
}

var (
	csvFormat  = exportFormat{"csv", export.CSVContentType, export.CSVFilename, export.WriteCSV}
	xlsxFormat = exportFormat{"xlsx", export.XLSXContentType, export.XLSXFilename, export.WriteXLSX}
)

// ExportCSV handles the CSV export
// @Summary     Export transactions as CSV
// @Description Download all of the user's transactions, oldest first, as CSV with the columns date, category, amount and type
// @Tags        export
// @Produce     text/csv
// @Security    BearerAuth
// @Success     200 {file} file "CSV document"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	h.serve(c, csvFormat)
}

// ExportXLSX handles the spreadsheet export
// @Summary     Export transactions as XLSX
// @Description Download all of the user's transactions as a spreadsheet with the same columns as the CSV export
// @Tags        export
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Success     200 {file} file "XLSX workbook"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /export/xlsx [get]
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	h.serve(c, xlsxFormat)
}

func (h *ExportHandler) serve(c *gin.Context, format exportFormat) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.transactionService.ListForExport(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rows := export.RowsFromTransactions(transactions)
	var buf bytes.Buffer
	if err := format.write(&buf, h.header, rows); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.metrics.RecordExport(format.name, len(rows))

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, format.filename))
	c.Data(http.StatusOK, format.contentType, buf.Bytes())
}
