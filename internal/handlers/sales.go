package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"salestracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	errFileRequired = "a CSV file is required in the 'file' field"
	errOnlyCSV      = "Only CSV files are allowed"
	errProcessFile  = "error processing file"
)

// @Summary      Upload a sales CSV
// @Description  Bulk-ingests transactions. Required columns: customer_name, amount, date (YYYY-MM-DD). The upload is all-or-nothing: one invalid row rejects the whole file.
// @Tags         sales
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV file"
// @Success      200  {object}  map[string]string  "message"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /upload-sales [post]
// @Security     BearerAuth
func (h *Handler) uploadSales(c *gin.Context) {
	identity := currentIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errFileRequired})
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".csv") {
		c.JSON(http.StatusBadRequest, gin.H{"error": errOnlyCSV})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errProcessFile, "upload_open_failed", err,
			"filename", fileHeader.Filename)
		return
	}
	defer func() { _ = f.Close() }()

	raw, err := io.ReadAll(f)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errProcessFile, "upload_read_failed", err,
			"filename", fileHeader.Filename)
		return
	}

	// Correlates every log line of one upload attempt.
	uploadID := uuid.NewString()
	if h.log != nil {
		h.log.Infow("upload_received",
			"upload_id", uploadID,
			"filename", fileHeader.Filename,
			"size", fileHeader.Size,
			"uploaded_by", identity.Username,
		)
	}

	count, err := h.services.Ingest(c.Request.Context(), raw, identity.Username)
	if err != nil {
		var missingCols *service.MissingColumnsError
		var invalidRow *service.InvalidRowError
		switch {
		case errors.Is(err, service.ErrMalformedFile),
			errors.As(err, &missingCols),
			errors.As(err, &invalidRow):
			if h.log != nil {
				h.log.Infow("upload_rejected", "upload_id", uploadID, "reason", err.Error())
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, errProcessFile, "upload_failed", err,
				"upload_id", uploadID)
		}
		return
	}

	if h.log != nil {
		h.log.Infow("upload_processed", "upload_id", uploadID, "count", count, "uploaded_by", identity.Username)
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Successfully processed %d transactions", count),
	})
}
