package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/qaidhq/qaid_ledger/internal/core/ports/services"
	"github.com/qaidhq/qaid_ledger/internal/dto"
	"github.com/qaidhq/qaid_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// partnerHandler handles HTTP requests related to customers and suppliers.
type partnerHandler struct {
	partnerService portssvc.PartnerSvcFacade
}

func newPartnerHandler(ps portssvc.PartnerSvcFacade) *partnerHandler {
	return &partnerHandler{partnerService: ps}
}

// registerPartnerRoutes registers routes related to partners and their ledgers.
func registerPartnerRoutes(rg *gin.RouterGroup, partnerService portssvc.PartnerSvcFacade) {
	h := newPartnerHandler(partnerService)

	partners := rg.Group("/partners")
	{
		partners.POST("", h.createPartner)
		partners.GET("", h.listPartners)
		partners.GET("/:id", h.getPartner)
		partners.PUT("/:id", h.updatePartner)
		partners.DELETE("/:id", h.deactivatePartner)
		partners.POST("/:id/transactions", h.createTransaction)
		partners.GET("/:id/transactions", h.listTransactions)
		partners.POST("/:id/recalculate", h.recalculateBalance)
	}
}

// createPartner godoc
// @Summary Create a customer or supplier
// @Tags partners
// @Accept  json
// @Produce  json
// @Param   partner body dto.CreatePartnerRequest true "Partner details"
// @Success 201 {object} dto.PartnerResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Router /partners [post]
func (h *partnerHandler) createPartner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePartner", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	partner, err := h.partnerService.CreatePartner(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create partner")
		return
	}

	logger.Info("Partner created", slog.String("partner_id", partner.PartnerID), slog.String("kind", string(partner.Kind)))
	c.JSON(http.StatusCreated, dto.ToPartnerResponse(partner))
}

// getPartner godoc
// @Summary Get a partner by ID
// @Tags partners
// @Produce  json
// @Param   id path string true "Partner ID"
// @Success 200 {object} dto.PartnerResponse
// @Failure 404 {object} map[string]string "Partner not found"
// @Router /partners/{id} [get]
func (h *partnerHandler) getPartner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	partner, err := h.partnerService.GetPartnerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve partner")
		return
	}

	c.JSON(http.StatusOK, dto.ToPartnerResponse(partner))
}

// listPartners godoc
// @Summary List active partners
// @Tags partners
// @Produce  json
// @Param   kind query string false "Filter by kind (CUSTOMER, SUPPLIER, BOTH)"
// @Param   limit query int false "Page size"
// @Param   offset query int false "Page offset"
// @Success 200 {object} dto.ListPartnersResponse
// @Router /partners [get]
func (h *partnerHandler) listPartners(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListPartnersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListPartners", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	partners, err := h.partnerService.ListPartners(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list partners")
		return
	}

	c.JSON(http.StatusOK, dto.ListPartnersResponse{Partners: dto.ToListPartnerResponse(partners)})
}

// updatePartner godoc
// @Summary Update a partner
// @Tags partners
// @Accept  json
// @Produce  json
// @Param   id path string true "Partner ID"
// @Param   partner body dto.UpdatePartnerRequest true "Fields to update"
// @Success 200 {object} dto.PartnerResponse
// @Failure 404 {object} map[string]string "Partner not found"
// @Router /partners/{id} [put]
func (h *partnerHandler) updatePartner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePartner", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	partner, err := h.partnerService.UpdatePartner(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update partner")
		return
	}

	c.JSON(http.StatusOK, dto.ToPartnerResponse(partner))
}

// deactivatePartner godoc
// @Summary Deactivate a partner
// @Tags partners
// @Param   id path string true "Partner ID"
// @Success 204 "Partner deactivated"
// @Failure 404 {object} map[string]string "Partner not found"
// @Failure 409 {object} map[string]string "Partner already inactive"
// @Router /partners/{id} [delete]
func (h *partnerHandler) deactivatePartner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.partnerService.DeactivatePartner(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, logger, err, "Failed to deactivate partner")
		return
	}

	c.Status(http.StatusNoContent)
}

// createTransaction godoc
// @Summary Record a manual partner ledger adjustment
// @Description Appends a ledger row and atomically refreshes the partner's running balance.
// @Tags partners
// @Accept  json
// @Produce  json
// @Param   id path string true "Partner ID"
// @Param   transaction body dto.CreatePartnerTransactionRequest true "Transaction details"
// @Success 201 {object} dto.PartnerTransactionResponse
// @Failure 404 {object} map[string]string "Partner not found"
// @Router /partners/{id}/transactions [post]
func (h *partnerHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePartnerTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	txn, err := h.partnerService.CreateTransaction(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to record transaction")
		return
	}

	logger.Info("Partner transaction recorded", slog.String("transaction_id", txn.TransactionID),
		slog.String("partner_id", txn.PartnerID))
	c.JSON(http.StatusCreated, dto.ToPartnerTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List a partner's ledger
// @Description Returns ledger rows oldest first with token-based pagination.
// @Tags partners
// @Produce  json
// @Param   id path string true "Partner ID"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListPartnerTransactionsResponse
// @Failure 404 {object} map[string]string "Partner not found"
// @Router /partners/{id}/transactions [get]
func (h *partnerHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListPartnerTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.partnerService.ListTransactions(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, page)
}

// recalculateBalance godoc
// @Summary Recalculate a partner's balance
// @Description Replays the partner's full ledger, rewriting per-row snapshots and the cached balance.
// @Tags partners
// @Produce  json
// @Param   id path string true "Partner ID"
// @Success 200 {object} dto.PartnerResponse
// @Failure 404 {object} map[string]string "Partner not found"
// @Router /partners/{id}/recalculate [post]
func (h *partnerHandler) recalculateBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, _ := middleware.GetUserIDFromContext(c)

	partner, err := h.partnerService.RecalculateBalance(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to recalculate balance")
		return
	}

	logger.Info("Partner balance recalculated", slog.String("partner_id", partner.PartnerID))
	c.JSON(http.StatusOK, dto.ToPartnerResponse(partner))
}
