package handlers

import (
	"log/slog"
	"net/http"

	"github.com/qaidhq/qaid_ledger/internal/core/domain"
	portssvc "github.com/qaidhq/qaid_ledger/internal/core/ports/services"
	"github.com/qaidhq/qaid_ledger/internal/dto"
	"github.com/qaidhq/qaid_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to the journal.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers routes related to the journal.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journal := rg.Group("/journal")
	{
		journal.POST("/entries", h.createManualEntry)
		journal.GET("/entries", h.listEntries)
		journal.GET("/entries/:id", h.getEntry)
		journal.DELETE("/entries/:id", h.deleteEntry)
		journal.GET("/references/:type/:refID", h.getEntriesByReference)
	}
}

// createManualEntry godoc
// @Summary Create a manual journal entry
// @Description Validates and posts a hand-written entry. Lines must balance.
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateEntryRequest true "Entry with lines"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Unbalanced or malformed entry"
// @Router /journal/entries [post]
func (h *journalHandler) createManualEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateManualEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	entry, err := h.journalService.CreateManualEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create journal entry")
		return
	}

	logger.Info("Manual journal entry created", slog.String("entry_id", entry.EntryID), slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry by ID
// @Tags journal
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /journal/entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	entry, err := h.journalService.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a manual journal entry
// @Description Removes a hand-written entry and its lines. Entries posted for a document must be removed by unposting the document.
// @Tags journal
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 204 "Entry deleted"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry belongs to a document"
// @Router /journal/entries/{id} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	if err := h.journalService.DeleteEntry(c.Request.Context(), entryID); err != nil {
		respondError(c, logger, err, "Failed to delete journal entry")
		return
	}

	c.Status(http.StatusNoContent)
}

// listEntries godoc
// @Summary List journal entries
// @Description Returns entries newest first with token-based pagination.
// @Tags journal
// @Produce  json
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListEntriesResponse
// @Router /journal/entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.journalService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list journal entries")
		return
	}

	c.JSON(http.StatusOK, page)
}

// getEntriesByReference godoc
// @Summary Get the journal entries posted for a document
// @Tags journal
// @Produce  json
// @Param   type path string true "Reference type"
// @Param   refID path string true "Reference ID"
// @Success 200 {array} dto.EntryResponse
// @Failure 400 {object} map[string]string "Unknown reference type"
// @Router /journal/references/{type}/{refID} [get]
func (h *journalHandler) getEntriesByReference(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	refType := domain.ReferenceType(c.Param("type"))
	if !refType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown reference type: " + string(refType)})
		return
	}

	entries, err := h.journalService.FindEntriesByReference(c.Request.Context(), refType, c.Param("refID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve journal entries")
		return
	}

	responses := make([]dto.EntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToEntryResponse(&entries[i])
	}
	c.JSON(http.StatusOK, responses)
}

// listAccountLines godoc
// @Summary List one account's journal lines
// @Description Returns the account's lines newest first with token-based pagination.
// @Tags journal
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListLinesResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{id}/lines [get]
func (h *journalHandler) listAccountLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var params dto.ListLinesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListAccountLines", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.journalService.ListLinesByAccount(c.Request.Context(), accountID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list account lines")
		return
	}

	c.JSON(http.StatusOK, page)
}
