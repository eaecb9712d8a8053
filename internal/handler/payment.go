package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Shaurya01836/Flux-Wallet/internal/service"
	"github.com/Shaurya01836/Flux-Wallet/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PaymentHandler 负责收支记录相关接口
type PaymentHandler struct {
	Payments *service.PaymentService
	PageSize int
}

func NewPaymentHandler(payments *service.PaymentService, pageSize int) *PaymentHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &PaymentHandler{
		Payments: payments,
		PageSize: pageSize,
	}
}

// ---------- 请求/响应结构 ----------

type createPaymentReq struct {
	Title       string          `json:"title" binding:"required,max=255"`
	Description string          `json:"description" binding:"max=1000"`
	Category    string          `json:"category" binding:"max=64"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=CREDIT DEBIT"`
	Date        string          `json:"date"`
	UserID      uint            `json:"user_id" binding:"required"`
}

// ---------- 新增一笔 ----------

func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req createPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	// 交易日期可选，默认为当前时间
	var date time.Time
	if req.Date != "" {
		layouts := []string{
			time.RFC3339,          // 2025-12-03T00:00:00+08:00
			"2006-01-02T15:04:05", // 2025-12-03T00:00:00
			"2006-01-02",          // 2025-12-03
		}
		parsed := false
		for _, layout := range layouts {
			if t, err := time.Parse(layout, req.Date); err == nil {
				date = t
				parsed = true
				break
			}
		}
		if !parsed {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date format")
			return
		}
	}

	payment, err := h.Payments.AddPayment(service.PaymentData{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		Type:        req.Type,
		Date:        date,
		UserID:      req.UserID,
	})
	if err != nil {
		writePaymentError(c, err)
		return
	}

	util.Success(c, util.Response{
		"payment": payment,
	})
}

// ---------- 查询列表 ----------

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(h.PageSize)))

	payments, err := h.Payments.GetPaymentsByUser(userID, page, size)
	if err != nil {
		writePaymentError(c, err)
		return
	}

	util.Success(c, util.Response{
		"items": payments,
		"page":  page,
	})
}

// ---------- 删除一笔 ----------

func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payment, err := h.Payments.DeletePayment(id)
	if err != nil {
		writePaymentError(c, err)
		return
	}

	util.Success(c, util.Response{
		"payment": payment,
	})
}

// ---------- 月度收支汇总 ----------

func (h *PaymentHandler) GetBalance(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	month := c.Query("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}

	balance, err := h.Payments.GetUserBalance(userID, month)
	if err != nil {
		writePaymentError(c, err)
		return
	}

	util.Success(c, util.Response{
		"month":   month,
		"balance": balance,
	})
}

// ---------- 工具函数 ----------

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func writePaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "user not found")
	case errors.Is(err, service.ErrPaymentNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "payment not found")
	case errors.Is(err, service.ErrInvalidMonth):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "month must be in YYYY-MM format")
	case errors.Is(err, service.ErrInvalidPayment):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "request failed")
	}
}
