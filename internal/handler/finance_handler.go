package handler

import (
	"net/http"
	"strconv"
	"time"

	"rentdesk/internal/middleware"
	"rentdesk/internal/service"
	"rentdesk/internal/validation"

	"github.com/gin-gonic/gin"
)

type FinanceHandler struct {
	svc *service.FinanceService
}

func NewFinanceHandler(svc *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{svc: svc}
}

func (h *FinanceHandler) Income(c *gin.Context) {
	list, err := h.svc.GetIncome(c.Request.Context(), middleware.GetUserID(c), c.Query("propertyId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *FinanceHandler) Expenses(c *gin.Context) {
	list, err := h.svc.GetExpenses(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *FinanceHandler) Transactions(c *gin.Context) {
	limit, offset := pageParams(c)
	list, err := h.svc.GetAllTransactions(c.Request.Context(), middleware.GetUserID(c), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Analysis defaults month and year to the current ones.
func (h *FinanceHandler) Analysis(c *gin.Context) {
	now := time.Now()
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil {
		c.JSON(http.StatusBadRequest, `"month" must be a number`)
		return
	}
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		c.JSON(http.StatusBadRequest, `"year" must be a number`)
		return
	}
	out, err := h.svc.GetMonthlyAnalysis(c.Request.Context(), month, year, c.Query("propertyId"), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *FinanceHandler) Statistics(c *gin.Context) {
	out, err := h.svc.GetIncomeStatistics(c.Request.Context(), middleware.GetUserID(c), c.Query("propertyId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *FinanceHandler) PaymentLink(c *gin.Context) {
	var req validation.PaymentLinkRequest
	if !bind(c, &req) {
		return
	}
	link, err := h.svc.GeneratePaymentLink(c.Request.Context(), middleware.GetUserID(c), service.PaymentLinkInput{
		PayeeID:     req.PayeeID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		PropertyID:  req.PropertyID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

func (h *FinanceHandler) CreateBudget(c *gin.Context) {
	var req validation.BudgetRequest
	if !bind(c, &req) {
		return
	}
	b, err := h.svc.CreateBudget(c.Request.Context(), middleware.GetUserID(c), service.BudgetInput{
		PropertyID:      req.PropertyID,
		TransactionType: req.TransactionType,
		BudgetAmount:    req.BudgetAmount,
		Frequency:       req.Frequency,
		AlertThreshold:  req.AlertThreshold,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *FinanceHandler) ListBudgets(c *gin.Context) {
	propertyID := c.Query("propertyId")
	if propertyID == "" {
		c.JSON(http.StatusBadRequest, `"propertyId" is required`)
		return
	}
	list, err := h.svc.ListBudgets(c.Request.Context(), middleware.GetUserID(c), propertyID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// UpdateBudget adds the posted amount to the running total.
func (h *FinanceHandler) UpdateBudget(c *gin.Context) {
	var req validation.BudgetUpdateRequest
	if !bind(c, &req) {
		return
	}
	ctx := c.Request.Context()
	if err := h.svc.AuthorizeBudget(ctx, c.Param("id"), middleware.GetUserID(c)); err != nil {
		fail(c, err)
		return
	}
	b, alert, err := h.svc.UpdateBudget(ctx, c.Param("id"), req.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"budget": b, "alert": alert})
}
