package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Ayesha-te/ims-backend/internal/auth"
	"github.com/Ayesha-te/ims-backend/internal/domain"
	apperrors "github.com/Ayesha-te/ims-backend/internal/platform/errors"
)

const minPasswordLength = 8

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	StoreName string `json:"store_name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type authResponse struct {
	Account *domain.Account `json:"account"`
	Tokens  *auth.TokenPair `json:"tokens"`
}

func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return apperrors.ValidationError("a valid email is required")
	}
	if len(req.Password) < minPasswordLength {
		return apperrors.ValidationError("password must be at least 8 characters")
	}

	account, tokens, err := s.app.Register(c.Request().Context(), req.Email, req.Password, req.StoreName, req.Address, req.Phone)
	if err != nil {
		return domainError(err)
	}

	return writeJSON(c, http.StatusCreated, authResponse{Account: account, Tokens: tokens})
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.ValidationError("email and password are required")
	}

	account, tokens, err := s.app.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return domainError(err)
	}

	return writeJSON(c, http.StatusOK, authResponse{Account: account, Tokens: tokens})
}

func (s *Server) handleRefresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Refresh == "" {
		return apperrors.ValidationError("refresh token is required")
	}

	tokens, err := s.app.Refresh(c.Request().Context(), req.Refresh)
	if err != nil {
		return domainError(err)
	}

	return writeJSON(c, http.StatusOK, map[string]*auth.TokenPair{"tokens": tokens})
}

func (s *Server) handleMe(c echo.Context) error {
	accountID, err := currentAccountID(c)
	if err != nil {
		return err
	}

	account, err := s.app.GetAccount(c.Request().Context(), accountID)
	if err != nil {
		return domainError(err)
	}

	return writeJSON(c, http.StatusOK, account)
}
