package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Ayesha-te/ims-backend/internal/adapter/metrics"
	"github.com/Ayesha-te/ims-backend/internal/auth"
	"github.com/Ayesha-te/ims-backend/internal/domain"
	"github.com/Ayesha-te/ims-backend/internal/platform/correlation"
	apperrors "github.com/Ayesha-te/ims-backend/internal/platform/errors"
)

const accountIDKey = "accountID"

func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := correlation.WithID(c.Request().Context(), correlation.NewID())
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// ErrorHandlingMiddleware renders structured errors as JSON responses and
// counts them by type when httpMetrics is non-nil.
func ErrorHandlingMiddleware(httpMetrics *metrics.HTTPMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				return err
			}

			structuredErr := apperrors.AsStructuredError(err)
			logError(c, structuredErr)
			if httpMetrics != nil {
				httpMetrics.ErrorsTotal.WithLabelValues(string(structuredErr.Type)).Inc()
			}

			if err := c.JSON(structuredErr.HTTPStatus(), structuredErr.ToResponse()); err != nil {
				return fmt.Errorf("failed to write error response: %w", err)
			}
			return nil
		}
	}
}

func logError(c echo.Context, err *apperrors.Error) {
	attrs := []any{
		"error_type", err.Type,
		"message", err.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"status", err.HTTPStatus(),
	}

	for k, v := range err.Context {
		attrs = append(attrs, k, v)
	}

	if accountID := c.Get(accountIDKey); accountID != nil {
		attrs = append(attrs, "account_id", accountID)
	}

	switch err.Type {
	case apperrors.TypeValidation:
		slog.Info("Validation error", attrs...)
	case apperrors.TypeUnauthorized, apperrors.TypeForbidden:
		slog.Info("Auth error", attrs...)
	case apperrors.TypeNotFound:
		slog.Info("Not found", attrs...)
	case apperrors.TypeConflict:
		slog.Warn("Conflict", attrs...)
	default:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.Error("Internal error", attrs...)
	}
}

// allowedHostsMiddleware rejects requests whose Host header is not in the
// configured allow list. Port suffixes are ignored.
func allowedHostsMiddleware(hosts []string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		allowed[strings.ToLower(h)] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			host := strings.ToLower(c.Request().Host)
			if i := strings.LastIndex(host, ":"); i != -1 {
				host = host[:i]
			}
			if !allowed[host] {
				return apperrors.ValidationError("host not allowed").WithField("host", host)
			}
			return next(c)
		}
	}
}

// requireAuth extracts and verifies the Bearer access token and stores the
// account ID in the echo context.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return apperrors.UnauthorizedError("missing bearer token")
		}

		accountID, err := s.issuer.VerifyAccess(token)
		if err != nil {
			return apperrors.UnauthorizedError("invalid access token")
		}

		c.Set(accountIDKey, accountID)
		return next(c)
	}
}

func currentAccountID(c echo.Context) (uuid.UUID, error) {
	id, ok := c.Get(accountIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, apperrors.UnauthorizedError("missing bearer token")
	}
	return id, nil
}

// domainError translates domain and auth sentinels into structured errors so
// handlers can return service errors unmodified.
func domainError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrSupplierNotFound),
		errors.Is(err, domain.ErrAlertNotFound),
		errors.Is(err, domain.ErrTicketNotFound),
		errors.Is(err, domain.ErrAccountNotFound):
		return apperrors.NotFoundError(err.Error())
	case errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrDuplicateSKU),
		errors.Is(err, domain.ErrDuplicateCategory),
		errors.Is(err, domain.ErrDuplicateSupplier),
		errors.Is(err, domain.ErrCategoryInUse),
		errors.Is(err, domain.ErrSupplierInUse):
		return apperrors.ConflictError(err.Error())
	case errors.Is(err, domain.ErrInsufficientStock):
		return apperrors.ValidationError(err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return apperrors.UnauthorizedError(err.Error())
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrWrongTokenUse):
		return apperrors.UnauthorizedError("invalid token")
	default:
		return err
	}
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	var id int64
	if err := echo.PathParamsBinder(c).Int64(name, &id).BindError(); err != nil || id < 1 {
		return 0, apperrors.ValidationError("invalid " + name + " parameter")
	}
	return id, nil
}

func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperrors.ValidationError("invalid " + name + " parameter")
	}
	return id, nil
}

func writeJSON(c echo.Context, status int, body any) error {
	if err := c.JSON(status, body); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}
