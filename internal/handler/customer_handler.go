package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/parthhpatil200/inventory-manager/internal/events"
	"github.com/parthhpatil200/inventory-manager/internal/middleware"
	"github.com/parthhpatil200/inventory-manager/internal/store"
	"github.com/parthhpatil200/inventory-manager/pkg/logger"
	"github.com/parthhpatil200/inventory-manager/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CustomerHandler serves the customer master registry.
type CustomerHandler struct {
	Store *store.Store
	Bus   *events.Bus
}

func NewCustomerHandler(s *store.Store, bus *events.Bus) *CustomerHandler {
	return &CustomerHandler{Store: s, Bus: bus}
}

func (h *CustomerHandler) ListCustomers(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	customers, err := h.Store.ListCustomers(userID)
	if err != nil {
		log.Error("Failed to list customers", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve customers"})
	}

	prometheus.RecordRegistryOperation("customer", "list")
	return c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req store.PartnerInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	customer, err := h.Store.SaveCustomer(userID, req)
	if err != nil {
		var verr *store.ValidationError
		switch {
		case errors.As(err, &verr):
			log.Warn("Invalid customer data", zap.String("field", verr.Field))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error()})
		case errors.Is(err, store.ErrDuplicateKey):
			log.Warn("Customer name already exists", zap.String("name", req.Name))
			return c.JSON(http.StatusConflict, echo.Map{"error": "customer name already exists"})
		default:
			log.Error("Failed to create customer", zap.String("name", req.Name), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create customer"})
		}
	}

	prometheus.RecordRegistryOperation("customer", "create")
	h.Bus.Publish(events.Event{Name: events.CustomerRegistered, UserID: userID, Payload: customer.Name})

	log.Info("Customer created", zap.Uint("customer_id", customer.ID), zap.String("name", customer.Name))
	return c.JSON(http.StatusCreated, customer)
}
