package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/Shaurya01836/Flux-Wallet/internal/service"
	"github.com/Shaurya01836/Flux-Wallet/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// UserHandler 负责用户资料和预算接口
type UserHandler struct {
	Users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

type updateUserReq struct {
	Username    string `json:"username" binding:"max=64"`
	PhoneNumber string `json:"phone_number" binding:"max=32"`
}

// UpdateUserInfo 更新用户名 / 手机号
func (h *UserHandler) UpdateUserInfo(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	user, err := h.Users.UpdateUserInfo(id, req.Username, req.PhoneNumber)
	if err != nil {
		writeUserError(c, err)
		return
	}

	util.Success(c, util.Response{
		"user": user,
	})
}

type addBudgetReq struct {
	UserID uint            `json:"user_id" binding:"required"`
	Month  string          `json:"month" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// AddBudget 新建或覆盖某月预算
func (h *UserHandler) AddBudget(c *gin.Context) {
	var req addBudgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	budget, err := h.Users.AddBudget(req.UserID, req.Month, req.Amount)
	if err != nil {
		writeUserError(c, err)
		return
	}

	util.Success(c, util.Response{
		"budget": budget,
	})
}

// GetBudget 查询某月预算，未设置时返回 0
func (h *UserHandler) GetBudget(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	month := c.Query("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}

	budget, err := h.Users.GetBudget(userID, month)
	if err != nil {
		writeUserError(c, err)
		return
	}

	util.Success(c, util.Response{
		"budget": budget,
	})
}

func writeUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "user not found")
	case errors.Is(err, service.ErrUsernameTaken):
		util.Error(c, http.StatusConflict, util.CodeConflict, "username already taken")
	case errors.Is(err, service.ErrInvalidMonth):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "month must be in YYYY-MM format")
	case errors.Is(err, service.ErrInvalidPayment):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "request failed")
	}
}
