package v1handler

import (
	"net/http"

	"jobboard/internal/auth"
	"jobboard/pkg/domain"
	"jobboard/pkg/serrors"

	"github.com/gin-gonic/gin"
)

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Password    string `json:"password" binding:"required"`
	AccountType string `json:"accountType" binding:"required"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the account and its signed token.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Signup creates a new account.
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body"))

		return
	}

	user, token, err := h.deps.Auth.Signup(c.Request.Context(), auth.SignupParams{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Password:    req.Password,
		AccountType: domain.AccountType(req.AccountType),
	})
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: user})
}

// Login verifies credentials and returns a fresh token.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body"))

		return
	}

	user, token, err := h.deps.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}
