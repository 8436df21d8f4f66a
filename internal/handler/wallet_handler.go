package handler

import (
	"net/http"

	"rentdesk/internal/middleware"
	"rentdesk/internal/service"
	"rentdesk/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// WalletHandler serves the caller's own wallet and transaction history.
type WalletHandler struct {
	svc *service.FinanceService
}

func NewWalletHandler(svc *service.FinanceService) *WalletHandler {
	return &WalletHandler{svc: svc}
}

func (h *WalletHandler) Get(c *gin.Context) {
	w, err := h.svc.GetWallet(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *WalletHandler) History(c *gin.Context) {
	limit, offset := pageParams(c)
	list, err := h.svc.GetAllTransactions(c.Request.Context(), middleware.GetUserID(c), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Fund opens a hosted top-up payment; the wallet is credited once the
// gateway confirms it through the webhook or Verify.
func (h *WalletHandler) Fund(c *gin.Context) {
	var q validation.FundWalletQuery
	if !bindForm(c, &q) {
		return
	}
	amount, err := decimal.NewFromString(q.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, `"amount" must be a number`)
		return
	}
	link, err := h.svc.FundWallet(c.Request.Context(), middleware.GetUserID(c), amount, q.Currency)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

func (h *WalletHandler) Verify(c *gin.Context) {
	settled, err := h.svc.VerifyPayment(c.Request.Context(), middleware.GetUserID(c), c.Param("reference"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reference": c.Param("reference"), "settled": settled})
}
