package handler

import (
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/video-rental-store/internal/model"
    "github.com/iliyamo/video-rental-store/internal/repository"
)

// CustomerHandler exposes CRUD endpoints for store customers.
type CustomerHandler struct {
	Customers *repository.CustomerRepo
}

func NewCustomerHandler(cr *repository.CustomerRepo) *CustomerHandler {
	return &CustomerHandler{Customers: cr}
}

type customerReq struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	IsGold bool   `json:"is_gold"`
}

// validate trims the fields and reports the first problem found.
func (r *customerReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	if r.Name == "" {
		return "name is required"
	}
	if r.Phone == "" {
		return "phone is required"
	}
	return ""
}

// CreateCustomer handles POST /v1/customers.
func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	var body customerReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	cust := &model.Customer{Name: body.Name, Phone: body.Phone, IsGold: body.IsGold}
	if err := h.Customers.Create(c.Request().Context(), cust); err != nil {
		return serverError(c, "customers", "could not create customer", err)
	}
	return c.JSON(http.StatusCreated, cust)
}

// GetCustomer handles GET /v1/customers/:id.
func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cust, err := h.Customers.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		return serverError(c, "customers", "db error", err)
	}
	return c.JSON(http.StatusOK, cust)
}

// ListCustomers handles GET /v1/customers.
func (h *CustomerHandler) ListCustomers(c echo.Context) error {
	items, err := h.Customers.List(c.Request().Context())
	if err != nil {
		return serverError(c, "customers", "db error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateCustomer handles PUT /v1/customers/:id.  Existing rentals keep
// their snapshot of the old name and phone.
func (h *CustomerHandler) UpdateCustomer(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body customerReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	cust := &model.Customer{ID: id, Name: body.Name, Phone: body.Phone, IsGold: body.IsGold}
	if err := h.Customers.Update(c.Request().Context(), cust); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		return serverError(c, "customers", "update failed", err)
	}
	updated, err := h.Customers.GetByID(c.Request().Context(), id)
	if err != nil {
		return serverError(c, "customers", "db error", err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteCustomer handles DELETE /v1/customers/:id.
func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Customers.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		return serverError(c, "customers", "delete failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}
