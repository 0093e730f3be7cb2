package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velora/crm/internal/crm/auth"
	"go.uber.org/zap"
)

// LoginHandler authenticates the single configured operator account and
// issues a bearer token. It is a demo-grade credential check; the limiter in
// front of it is the part that matters operationally.
type LoginHandler struct {
	user      string
	password  string
	jwtSecret string
	limiter   *auth.LoginLimiter
	logger    *zap.Logger
}

func NewLoginHandler(user, password, jwtSecret string, limiter *auth.LoginLimiter, logger *zap.Logger) *LoginHandler {
	return &LoginHandler{
		user:      user,
		password:  password,
		jwtSecret: jwtSecret,
		limiter:   limiter,
		logger:    logger.Named("login_handler"),
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *LoginHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed JSON body"})
		return
	}

	ok, err := h.limiter.Allow(c.Request.Context(), req.Username)
	if err != nil {
		h.logger.Warn("login limiter unavailable", zap.Error(err))
	}
	if !ok {
		c.JSON(http.StatusTooManyRequests, errorResponse{Error: "too many login attempts"})
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.user)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.password)) == 1
	if !userOK || !passOK {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
		return
	}

	if err := h.limiter.Reset(c.Request.Context(), req.Username); err != nil {
		h.logger.Warn("failed to reset login attempts", zap.Error(err))
	}

	token, err := auth.GenerateToken(req.Username, h.jwtSecret)
	if err != nil {
		h.logger.Error("failed to issue token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "operation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
