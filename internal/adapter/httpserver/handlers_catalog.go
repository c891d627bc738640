package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Ayesha-te/ims-backend/internal/domain"
	apperrors "github.com/Ayesha-te/ims-backend/internal/platform/errors"
)

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleListCategories(c echo.Context) error {
	categories, err := s.app.ListCategories(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusOK, categories)
}

func (s *Server) handleCreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return apperrors.ValidationError("category name is required")
	}

	category, err := s.app.CreateCategory(c.Request().Context(), &domain.Category{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusCreated, category)
}

func (s *Server) handleGetCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	category, err := s.app.GetCategory(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusOK, category)
}

func (s *Server) handleUpdateCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return apperrors.ValidationError("category name is required")
	}

	category, err := s.app.UpdateCategory(c.Request().Context(), &domain.Category{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusOK, category)
}

func (s *Server) handleDeleteCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.app.DeleteCategory(c.Request().Context(), id); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type supplierRequest struct {
	Name                string `json:"name"`
	ContactPerson       string `json:"contact_person"`
	Phone               string `json:"phone"`
	Email               string `json:"email"`
	Address             string `json:"address"`
	HalalCertified      bool   `json:"halal_certified"`
	CertificationNumber string `json:"certification_number"`
}

func (r *supplierRequest) toDomain(id int64) *domain.Supplier {
	return &domain.Supplier{
		ID:                  id,
		Name:                r.Name,
		ContactPerson:       r.ContactPerson,
		Phone:               r.Phone,
		Email:               r.Email,
		Address:             r.Address,
		HalalCertified:      r.HalalCertified,
		CertificationNumber: r.CertificationNumber,
	}
}

func (s *Server) handleListSuppliers(c echo.Context) error {
	suppliers, err := s.app.ListSuppliers(c.Request().Context(), false)
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusOK, suppliers)
}

func (s *Server) handleListHalalSuppliers(c echo.Context) error {
	suppliers, err := s.app.ListSuppliers(c.Request().Context(), true)
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusOK, suppliers)
}

func (s *Server) handleCreateSupplier(c echo.Context) error {
	var req supplierRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return apperrors.ValidationError("supplier name is required")
	}

	supplier, err := s.app.CreateSupplier(c.Request().Context(), req.toDomain(0))
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusCreated, supplier)
}

func (s *Server) handleGetSupplier(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	supplier, err := s.app.GetSupplier(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusOK, supplier)
}

func (s *Server) handleUpdateSupplier(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req supplierRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return apperrors.ValidationError("supplier name is required")
	}

	supplier, err := s.app.UpdateSupplier(c.Request().Context(), req.toDomain(id))
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusOK, supplier)
}

func (s *Server) handleDeleteSupplier(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.app.DeleteSupplier(c.Request().Context(), id); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
