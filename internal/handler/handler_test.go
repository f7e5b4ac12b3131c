package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/parthhpatil200/inventory-manager/internal/events"
	mid "github.com/parthhpatil200/inventory-manager/internal/middleware"
	"github.com/parthhpatil200/inventory-manager/internal/store"
	"github.com/parthhpatil200/inventory-manager/pkg/config"
	"github.com/parthhpatil200/inventory-manager/pkg/database"
	"github.com/parthhpatil200/inventory-manager/pkg/jwtutil"
	"github.com/parthhpatil200/inventory-manager/prometheus"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	// Metrics and JWT state are package globals; initialize them once for
	// every test in this package.
	cfg := &config.Config{
		JWT:     config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1},
		Metrics: config.MetricsConfig{Prefix: "test"},
	}
	jwtutil.Initialize(&cfg.JWT)
	prometheus.InitMetrics(cfg)
	os.Exit(m.Run())
}

// newTestServer wires an echo instance the same way cmd/main.go does, on
// top of a fresh in-memory database.
func newTestServer(t *testing.T) (*echo.Echo, *store.Store) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	st := store.New(db, t.TempDir())
	bus := events.NewBus()

	authHandler := NewAuthHandler(st)
	productHandler := NewProductHandler(st, bus)
	supplierHandler := NewSupplierHandler(st, bus)
	customerHandler := NewCustomerHandler(st, bus)
	receivingHandler := NewReceivingHandler(st)
	saleHandler := NewSaleHandler(st)

	e := echo.New()
	e.GET("/health", HealthCheck)

	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)

	productAPI := e.Group("/api/products", mid.AuthMiddleware)
	productAPI.GET("", productHandler.ListProducts)
	productAPI.GET("/categories", productHandler.ListCategories)
	productAPI.POST("", productHandler.CreateProduct)

	supplierAPI := e.Group("/api/suppliers", mid.AuthMiddleware)
	supplierAPI.GET("", supplierHandler.ListSuppliers)
	supplierAPI.POST("", supplierHandler.CreateSupplier)

	customerAPI := e.Group("/api/customers", mid.AuthMiddleware)
	customerAPI.GET("", customerHandler.ListCustomers)
	customerAPI.POST("", customerHandler.CreateCustomer)

	receivingAPI := e.Group("/api/receivings", mid.AuthMiddleware)
	receivingAPI.GET("", receivingHandler.ListReceivings)
	receivingAPI.POST("", receivingHandler.CreateReceiving)

	saleAPI := e.Group("/api/sales", mid.AuthMiddleware)
	saleAPI.GET("", saleHandler.ListSales)
	saleAPI.POST("", saleHandler.CreateSale)

	return e, st
}

func doJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, e *echo.Echo, username string) string {
	t.Helper()

	body := `{"username":"` + username + `","email":"` + username + `@example.com",` +
		`"name":"Test User","password":"secret1","confirm_password":"secret1"}`
	if rec := doJSON(e, http.MethodPost, "/api/auth/register", "", body); rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body)
	}

	rec := doJSON(e, http.MethodPost, "/api/auth/login", "",
		`{"username":"`+username+`","password":"secret1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body)
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login returned empty token")
	}
	return resp.Token
}

func TestRegisterEndpoint_Validation(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/auth/register", "",
		`{"username":"u1","email":"u1@example.com","name":"U","password":"secret1","confirm_password":"other1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("mismatched passwords status = %d, want 400", rec.Code)
	}
}

func TestRegisterEndpoint_Duplicate(t *testing.T) {
	e, _ := newTestServer(t)
	registerAndLogin(t, e, "dup")

	rec := doJSON(e, http.MethodPost, "/api/auth/register", "",
		`{"username":"dup","email":"fresh@example.com","name":"U","password":"secret1","confirm_password":"secret1"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate username status = %d, want 409", rec.Code)
	}
}

func TestLoginEndpoint_GenericFailure(t *testing.T) {
	e, _ := newTestServer(t)
	registerAndLogin(t, e, "known")

	wrongPass := doJSON(e, http.MethodPost, "/api/auth/login", "",
		`{"username":"known","password":"wrong!"}`)
	unknownUser := doJSON(e, http.MethodPost, "/api/auth/login", "",
		`{"username":"nobody","password":"secret1"}`)

	if wrongPass.Code != http.StatusUnauthorized || unknownUser.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d, %d, want 401, 401", wrongPass.Code, unknownUser.Code)
	}
	// The response must not reveal whether the username exists.
	if wrongPass.Body.String() != unknownUser.Body.String() {
		t.Errorf("failure bodies differ: %s vs %s", wrongPass.Body, unknownUser.Body)
	}
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	e, _ := newTestServer(t)

	for _, path := range []string{"/api/products", "/api/suppliers", "/api/customers", "/api/receivings", "/api/sales"} {
		if rec := doJSON(e, http.MethodGet, path, "", ""); rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token status = %d, want 401", path, rec.Code)
		}
	}
}

func TestProductEndpoint_CreateAndConflict(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerAndLogin(t, e, "owner")

	body := `{"sku":"SKU-9","category":"Beverages","name":"Green Tea","tax_rate":"18","price":"120.50","unit":"box"}`
	if rec := doJSON(e, http.MethodPost, "/api/products", token, body); rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}
	if rec := doJSON(e, http.MethodPost, "/api/products", token, body); rec.Code != http.StatusConflict {
		t.Errorf("duplicate SKU status = %d, want 409", rec.Code)
	}

	rec := doJSON(e, http.MethodGet, "/api/products", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var products []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &products); err != nil {
		t.Fatalf("decode products: %v", err)
	}
	if len(products) != 1 {
		t.Errorf("got %d products, want 1", len(products))
	}
}

func TestSaleEndpoint_ComputesTotals(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerAndLogin(t, e, "seller")

	rec := doJSON(e, http.MethodPost, "/api/sales", token,
		`{"counterparty":"Globex Retail","product_sku":"SKU-9","quantity":3,"rate":"100.00","tax_rate":"18"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create sale status = %d, body %s", rec.Code, rec.Body)
	}

	var line struct {
		TotalRate   string `json:"total_rate"`
		TaxAmount   string `json:"tax_amount"`
		TotalAmount string `json:"total_amount"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &line); err != nil {
		t.Fatalf("decode sale line: %v", err)
	}
	if line.TotalRate != "300" || line.TaxAmount != "54" || line.TotalAmount != "354" {
		t.Errorf("totals = (%s, %s, %s), want (300, 54, 354)",
			line.TotalRate, line.TaxAmount, line.TotalAmount)
	}
}

func TestSaleEndpoint_RejectsMissingCounterparty(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerAndLogin(t, e, "seller")

	rec := doJSON(e, http.MethodPost, "/api/sales", token,
		`{"counterparty":"","product_sku":"SKU-9","quantity":1,"rate":"10","tax_rate":"0"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing counterparty status = %d, want 400", rec.Code)
	}
}

func TestListEndpoints_EmptyAccountReturnsEmptyArray(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerAndLogin(t, e, "emptylists")

	paths := []string{
		"/api/products",
		"/api/products/categories",
		"/api/suppliers",
		"/api/customers",
		"/api/receivings",
		"/api/sales",
	}
	for _, path := range paths {
		rec := doJSON(e, http.MethodGet, path, token, "")
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want %d", path, rec.Code, http.StatusOK)
			continue
		}
		if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
			t.Errorf("GET %s body = %s, want []", path, got)
		}
	}
}
