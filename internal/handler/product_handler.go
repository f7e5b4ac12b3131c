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

// ProductHandler serves the product master registry.
type ProductHandler struct {
	Store *store.Store
	Bus   *events.Bus
}

func NewProductHandler(s *store.Store, bus *events.Bus) *ProductHandler {
	return &ProductHandler{Store: s, Bus: bus}
}

// ListProducts returns the account's products ordered by name. The payload
// carries SKU, tax rate and price for entry-form pre-fill.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	products, err := h.Store.ListProducts(userID)
	if err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve products"})
	}

	prometheus.RecordRegistryOperation("product", "list")
	return c.JSON(http.StatusOK, products)
}

// ListCategories returns the distinct categories of the account's products.
func (h *ProductHandler) ListCategories(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	categories, err := h.Store.ListCategories(userID)
	if err != nil {
		log.Error("Failed to list categories", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve categories"})
	}

	return c.JSON(http.StatusOK, categories)
}

// CreateProduct saves a new product and announces it on the event bus.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req store.ProductInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	product, err := h.Store.SaveProduct(userID, req)
	if err != nil {
		var verr *store.ValidationError
		switch {
		case errors.As(err, &verr):
			log.Warn("Invalid product data", zap.String("field", verr.Field))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error()})
		case errors.Is(err, store.ErrDuplicateKey):
			log.Warn("Product with this SKU already exists", zap.String("sku", req.SKU))
			return c.JSON(http.StatusConflict, echo.Map{"error": "product with this SKU already exists"})
		default:
			log.Error("Failed to create product", zap.String("sku", req.SKU), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create product"})
		}
	}

	prometheus.RecordRegistryOperation("product", "create")
	h.Bus.Publish(events.Event{Name: events.ProductRegistered, UserID: userID, Payload: product.SKU})

	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("sku", product.SKU),
		zap.String("name", product.Name))
	return c.JSON(http.StatusCreated, product)
}
