package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/qaidhq/qaid_ledger/internal/core/domain"
	portssvc "github.com/qaidhq/qaid_ledger/internal/core/ports/services"
	"github.com/qaidhq/qaid_ledger/internal/dto"
	"github.com/qaidhq/qaid_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// documentHandler exposes the posting pipeline: one route per document kind,
// plus unposting by reference pair.
type documentHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newDocumentHandler(ps portssvc.PostingSvcFacade) *documentHandler {
	return &documentHandler{postingService: ps}
}

// registerDocumentRoutes registers the document posting routes.
func registerDocumentRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newDocumentHandler(postingService)

	documents := rg.Group("/documents")
	{
		documents.POST("/sales-invoices", h.postSalesInvoice)
		documents.POST("/purchase-invoices", h.postPurchaseInvoice)
		documents.POST("/sales-returns", h.postSalesReturn)
		documents.POST("/purchase-returns", h.postPurchaseReturn)
		documents.POST("/receipt-vouchers", h.postReceiptVoucher)
		documents.POST("/payment-vouchers", h.postPaymentVoucher)
		documents.POST("/bank-transfers", h.postBankTransfer)
		documents.POST("/check-bounces", h.postCheckBounced)
		documents.POST("/check-early-collections", h.postCheckEarlyCollection)
		documents.POST("/revenues", h.postRevenue)
		documents.POST("/expenses", h.postExpense)
		documents.POST("/debit-notes", h.postDebitNote)
		documents.POST("/credit-notes", h.postCreditNote)
		documents.POST("/opening-balances", h.postOpeningBalance)
		documents.DELETE("/:type/:refID", h.unpost)
	}
}

// postDocument binds the request body and runs the posting closure. Every
// document route shares this flow; only the payload type and service call
// differ.
func postDocument[R any](c *gin.Context, post func(ctx context.Context, req R, userID string) (*dto.PostingResult, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for document posting", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	result, err := post(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to post document")
		return
	}

	c.JSON(http.StatusCreated, result)
}

// postSalesInvoice godoc
// @Summary Post a sales invoice
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   invoice body dto.InvoiceRequest true "Invoice details"
// @Success 201 {object} dto.PostingResult
// @Failure 409 {object} map[string]string "Document already posted"
// @Router /documents/sales-invoices [post]
func (h *documentHandler) postSalesInvoice(c *gin.Context) {
	postDocument(c, func(ctx context.Context, req dto.InvoiceRequest, userID string) (*dto.PostingResult, error) {
		return h.postingService.PostSalesInvoice(ctx, req.ToSalesInvoice(), userID)
	})
}

// postPurchaseInvoice godoc
// @Summary Post a purchase invoice
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   invoice body dto.InvoiceRequest true "Invoice details"
// @Success 201 {object} dto.PostingResult
// @Router /documents/purchase-invoices [post]
func (h *documentHandler) postPurchaseInvoice(c *gin.Context) {
	postDocument(c, func(ctx context.Context, req dto.InvoiceRequest, userID string) (*dto.PostingResult, error) {
		return h.postingService.PostPurchaseInvoice(ctx, req.ToPurchaseInvoice(), userID)
	})
}

// postSalesReturn godoc
// @Summary Post a sales return
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   return body dto.InvoiceRequest true "Return details"
// @Success 201 {object} dto.PostingResult
// @Router /documents/sales-returns [post]
func (h *documentHandler) postSalesReturn(c *gin.Context) {
	postDocument(c, func(ctx context.Context, req dto.InvoiceRequest, userID string) (*dto.PostingResult, error) {
		return h.postingService.PostSalesReturn(ctx, req.ToSalesReturn(), userID)
	})
}

// postPurchaseReturn godoc
// @Summary Post a purchase return
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   return body dto.InvoiceRequest true "Return details"
// @Success 201 {object} dto.PostingResult
// @Router /documents/purchase-returns [post]
func (h *documentHandler) postPurchaseReturn(c *gin.Context) {
	postDocument(c, func(ctx context.Context, req dto.InvoiceRequest, userID string) (*dto.PostingResult, error) {
		return h.postingService.PostPurchaseReturn(ctx, req.ToPurchaseReturn(), userID)
	})
}

// postReceiptVoucher godoc
// @Summary Post a receipt voucher (money in from a customer)
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   voucher body dto.VoucherRequest true "Voucher details"
// @Success 201 {object} dto.PostingResult
// @Router /documents/receipt-vouchers [post]
func (h *documentHandler) postReceiptVoucher(c *gin.Context) {
	postDocument(c, func(ctx context.Context, req dto.VoucherRequest, userID string) (*dto.PostingResult, error) {
		return h.postingService.PostReceiptVoucher(ctx, req.ToVoucher(), userID)
	})
}

// postPaymentVoucher godoc
// @Summary Post a payment voucher (money out to a supplier)
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   voucher body dto.VoucherRequest true "Voucher details"
// @Success 201 {object} dto.PostingResult
// @Router /documents/payment-vouchers [post]
func (h *documentHandler) postPaymentVoucher(c *gin.Context) {
	postDocument(c, func(ctx context.Context, req dto.VoucherRequest, userID string) (*dto.PostingResult, error) {
		return h.postingService.PostPaymentVoucher(ctx, req.ToVoucher(), userID)
	})
}

// postBankTransfer godoc
// @Summary Post a transfer between bank accounts or the cash box
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   transfer body dto.BankTransferRequest true "Transfer details"
// @Success 201 {object} dto.PostingResult
// @Router /documents/bank-transfers [post]
func (h *documentHandler) postBankTransfer(c *gin.Context) {
	postDocument(c, func(ctx context.Context, req dto.BankTransferRequest, userID string) (*dto.PostingResult, error) {
		return h.postingService.PostBankTransfer(ctx, req.ToBankTransfer(), userID)
	})
}

// postCheckBounced godoc
// @Summary Post a bounced check
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   check body dto.CheckEventRequest true "Check details"
// @Success 201 {object} dto.PostingResult
// @Router /documents/check-bounces [post]
func (h *documentHandler) postCheckBounced(c *gin.Context) {
	postDocument(c, func(ctx context.Context, req dto.CheckEventRequest, userID string) (*dto.PostingResult, error) {
		return h.postingService.PostCheckBounced(ctx, req.ToCheckEvent(), userID)
	})
}

// postCheckEarlyCollection godoc
// @Summary Post an early check collection
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   check body dto.CheckEventRequest true "Check details"
// @Success 201 {object} dto.PostingResult
// @Router /documents/check-early-collections [post]
func (h *documentHandler) postCheckEarlyCollection(c *gin.Context) {
	postDocument(c, func(ctx context.Context, req dto.CheckEventRequest, userID string) (*dto.PostingResult, error) {
		return h.postingService.PostCheckEarlyCollection(ctx, req.ToCheckEvent(), userID)
	})
}

// postRevenue godoc
// @Summary Post a miscellaneous revenue entry
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   entry body dto.RevenueExpenseRequest true "Entry details"
// @Success 201 {object} dto.PostingResult
// @Router /documents/revenues [post]
func (h *documentHandler) postRevenue(c *gin.Context) {
	postDocument(c, func(ctx context.Context, req dto.RevenueExpenseRequest, userID string) (*dto.PostingResult, error) {
		return h.postingService.PostRevenueEntry(ctx, req.ToRevenueEntry(), userID)
	})
}

// postExpense godoc
// @Summary Post a miscellaneous expense entry
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   entry body dto.RevenueExpenseRequest true "Entry details"
// @Success 201 {object} dto.PostingResult
// @Router /documents/expenses [post]
func (h *documentHandler) postExpense(c *gin.Context) {
	postDocument(c, func(ctx context.Context, req dto.RevenueExpenseRequest, userID string) (*dto.PostingResult, error) {
		return h.postingService.PostExpenseEntry(ctx, req.ToExpenseEntry(), userID)
	})
}

// postDebitNote godoc
// @Summary Post a debit note against a partner
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   note body dto.NoteRequest true "Note details"
// @Success 201 {object} dto.PostingResult
// @Router /documents/debit-notes [post]
func (h *documentHandler) postDebitNote(c *gin.Context) {
	postDocument(c, func(ctx context.Context, req dto.NoteRequest, userID string) (*dto.PostingResult, error) {
		return h.postingService.PostDebitNote(ctx, req.ToNote(), userID)
	})
}

// postCreditNote godoc
// @Summary Post a credit note against a partner
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   note body dto.NoteRequest true "Note details"
// @Success 201 {object} dto.PostingResult
// @Router /documents/credit-notes [post]
func (h *documentHandler) postCreditNote(c *gin.Context) {
	postDocument(c, func(ctx context.Context, req dto.NoteRequest, userID string) (*dto.PostingResult, error) {
		return h.postingService.PostCreditNote(ctx, req.ToNote(), userID)
	})
}

// postOpeningBalance godoc
// @Summary Post an opening balance
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   balance body dto.OpeningBalanceRequest true "Opening balance details"
// @Success 201 {object} dto.PostingResult
// @Router /documents/opening-balances [post]
func (h *documentHandler) postOpeningBalance(c *gin.Context) {
	postDocument(c, func(ctx context.Context, req dto.OpeningBalanceRequest, userID string) (*dto.PostingResult, error) {
		return h.postingService.PostOpeningBalance(ctx, req.ToOpeningBalance(), userID)
	})
}

// unpost godoc
// @Summary Remove everything posted for a document
// @Description Deletes the journal entries, partner ledger rows and inventory movements of a reference pair. Idempotent.
// @Tags documents
// @Produce  json
// @Param   type path string true "Reference type"
// @Param   refID path string true "Reference ID"
// @Success 200 {object} dto.UnpostResult
// @Failure 400 {object} map[string]string "Unknown reference type"
// @Router /documents/{type}/{refID} [delete]
func (h *documentHandler) unpost(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	refType := domain.ReferenceType(c.Param("type"))
	if !refType.IsValid() || refType == domain.RefManual {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown reference type: " + string(refType)})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	result, err := h.postingService.Unpost(c.Request.Context(), refType, c.Param("refID"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to unpost document")
		return
	}

	c.JSON(http.StatusOK, result)
}
