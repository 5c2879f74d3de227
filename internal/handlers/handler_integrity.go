package handlers

import (
	"net/http"

	portssvc "github.com/qaidhq/qaid_ledger/internal/core/ports/services"
	"github.com/qaidhq/qaid_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// integrityHandler exposes the consistency sweep and repair pass.
type integrityHandler struct {
	integrityService portssvc.IntegritySvcFacade
}

func newIntegrityHandler(is portssvc.IntegritySvcFacade) *integrityHandler {
	return &integrityHandler{integrityService: is}
}

// registerIntegrityRoutes registers the integrity routes.
func registerIntegrityRoutes(rg *gin.RouterGroup, integrityService portssvc.IntegritySvcFacade) {
	h := newIntegrityHandler(integrityService)

	integrity := rg.Group("/integrity")
	{
		integrity.GET("/check", h.runCheck)
		integrity.POST("/repair", h.repair)
	}
}

// runCheck godoc
// @Summary Run the bookkeeping consistency sweep
// @Description Scans for unbalanced entries, duplicate or missing reference pairs, and partner balance drift.
// @Tags integrity
// @Produce  json
// @Success 200 {object} dto.IntegrityReport
// @Router /integrity/check [get]
func (h *integrityHandler) runCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.integrityService.RunCheck(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to run integrity check")
		return
	}

	c.JSON(http.StatusOK, report)
}

// repair godoc
// @Summary Recompute cached balances from the journal
// @Description Refreshes account balances and replays drifted partner ledgers. Journal rows are never modified.
// @Tags integrity
// @Produce  json
// @Success 200 {object} dto.RepairResult
// @Router /integrity/repair [post]
func (h *integrityHandler) repair(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, _ := middleware.GetUserIDFromContext(c)

	result, err := h.integrityService.Repair(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to repair ledgers")
		return
	}

	c.JSON(http.StatusOK, result)
}
