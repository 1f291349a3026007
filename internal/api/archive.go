package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vsuet/accounting/internal/models"
)

// ArchiveHandler serves the archive trigger and archive log endpoints.
type ArchiveHandler struct {
	repo ArchiveRepository
	log  *logrus.Logger
}

// NewArchiveHandler creates an ArchiveHandler.
func NewArchiveHandler(repo ArchiveRepository, log *logrus.Logger) *ArchiveHandler {
	return &ArchiveHandler{repo: repo, log: log}
}

// ArchivePayrolls handles POST /api/v1/archive/payrolls.
func (h *ArchiveHandler) ArchivePayrolls(c *gin.Context) {
	var req models.ArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
		return
	}

	result, err := h.repo.ArchivePayrolls(c.Request.Context(), *req.CutoffDate)
	if err != nil {
		respondServiceError(c, h.log, err, "archiving payrolls")
		return
	}

	c.JSON(http.StatusOK, result)
}

// List handles GET /api/v1/archive.
func (h *ArchiveHandler) List(c *gin.Context) {
	opts := models.ArchiveQueryOpts{
		SourceTable: c.Query("source_table"),
		Limit:       parseLimit(c.Query("limit"), 50),
		Offset:      parseOffset(c.Query("offset")),
	}

	if opts.SourceTable != "" && opts.SourceTable != models.SourcePayrolls {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "unknown source_table")
		return
	}

	var err error

	if opts.Since, err = optionalTime(c, "since"); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	if opts.Until, err = optionalTime(c, "until"); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	entries, hasMore, err := h.repo.ListArchiveEntries(c.Request.Context(), opts)
	if err != nil {
		respondServiceError(c, h.log, err, "listing archive entries")
		return
	}

	if entries == nil {
		entries = []models.ArchiveEntry{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     entries,
		"has_more": hasMore,
	})
}
