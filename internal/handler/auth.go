package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/Shaurya01836/Flux-Wallet/internal/service"
	"github.com/Shaurya01836/Flux-Wallet/internal/util"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/idtoken"
)

// AuthHandler 负责 Google 登录接口
type AuthHandler struct {
	Users          *service.UserService
	JWTSecret      string
	TokenTTL       time.Duration
	GoogleClientID string
}

func NewAuthHandler(users *service.UserService, jwtSecret, googleClientID string, ttlHours int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &AuthHandler{
		Users:          users,
		JWTSecret:      jwtSecret,
		TokenTTL:       time.Duration(ttlHours) * time.Hour,
		GoogleClientID: googleClientID,
	}
}

type googleLoginReq struct {
	IDToken string `json:"id_token"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleLogin upserts the user and issues an API token. When the request
// carries an id_token and a client id is configured, identity is taken
// from the verified token claims; otherwise the caller-supplied fields
// are trusted (the identity provider sits in front of this API).
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req googleLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	email, name, picture := req.Email, req.Name, req.Picture
	if req.IDToken != "" && h.GoogleClientID != "" {
		payload, err := idtoken.Validate(c.Request.Context(), req.IDToken, h.GoogleClientID)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid google id token")
			return
		}
		email = claimString(payload.Claims, "email")
		name = claimString(payload.Claims, "name")
		picture = claimString(payload.Claims, "picture")
	}

	user, err := h.Users.Login(email, name, picture)
	if err != nil {
		if errors.Is(err, service.ErrEmailRequired) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "email is required")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "login failed")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to issue token")
		return
	}

	util.Success(c, util.Response{
		"user":  user,
		"token": token,
	})
}

func claimString(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
