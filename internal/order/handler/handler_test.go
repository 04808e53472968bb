package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-poultry-service/internal/auth"
	"github.com/fekuna/omnipos-poultry-service/internal/broker"
	"github.com/fekuna/omnipos-poultry-service/internal/cache"
	"github.com/fekuna/omnipos-poultry-service/internal/cart"
	carthandler "github.com/fekuna/omnipos-poultry-service/internal/cart/handler"
	"github.com/fekuna/omnipos-poultry-service/internal/database/dbtest"
	"github.com/fekuna/omnipos-poultry-service/internal/logger"
	"github.com/fekuna/omnipos-poultry-service/internal/metrics"
	"github.com/fekuna/omnipos-poultry-service/internal/model"
	"github.com/fekuna/omnipos-poultry-service/internal/order/handler"
	"github.com/fekuna/omnipos-poultry-service/internal/order/repository"
	"github.com/fekuna/omnipos-poultry-service/internal/order/usecase"
	productrepo "github.com/fekuna/omnipos-poultry-service/internal/product/repository"
	productuc "github.com/fekuna/omnipos-poultry-service/internal/product/usecase"
	"github.com/fekuna/omnipos-poultry-service/internal/response"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	e     *echo.Echo
	db    *sqlx.DB
	carts *cart.Registry
}

func newEnv(t *testing.T) *env {
	t.Helper()
	log := logger.NewNop()
	db := dbtest.NewSQLite(t)

	prepo := productrepo.NewSQLRepository(db)
	seed(t, prepo, "A", "Whole Chicken", 20, "5.00")
	seed(t, prepo, "B", "Duck Eggs", 5, "7.50")

	taxRate := decimal.RequireFromString("0.10")
	products := productuc.NewProductUseCase(prepo, cache.Noop{}, log)
	orders := usecase.NewOrderUseCase(
		repository.NewSQLRepository(db),
		products,
		broker.NopPublisher{},
		metrics.New("test", prometheus.NewRegistry()),
		usecase.Config{TaxRate: taxRate},
		log,
	)

	carts := cart.NewRegistry()
	ch := carthandler.NewCartHandler(carts, products, taxRate, log)
	oh := handler.NewOrderHandler(orders, carts, log)

	e := echo.New()
	e.Validator = response.NewValidator()
	api := e.Group("/api", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth.SetClaims(c, &auth.Claims{UserID: "u-staff", Role: model.RoleStaff})
			return next(c)
		}
	})
	api.GET("/cart", ch.GetCart)
	api.POST("/cart/items", ch.AddItem)
	api.POST("/orders", oh.Checkout)
	api.GET("/orders", oh.ListOrders)
	api.GET("/orders/:id", oh.GetReceipt)

	return &env{e: e, db: db, carts: carts}
}

func seed(t *testing.T, repo *productrepo.SQLRepository, id, name string, stock int, price string) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, repo.Create(context.Background(), &model.Product{
		BaseModel: model.BaseModel{ID: id, CreatedAt: now, UpdatedAt: now},
		Name:      name,
		Category:  "Poultry",
		Stock:     stock,
		Price:     decimal.RequireFromString(price),
	}))
}

func (v *env) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	v.e.ServeHTTP(rec, req)
	return rec
}

func TestCheckout_ClearsCartOnSuccess(t *testing.T) {
	v := newEnv(t)

	require.Equal(t, http.StatusOK, v.do(http.MethodPost, "/api/cart/items", `{"product_id":"A","quantity":10}`).Code)
	require.Equal(t, http.StatusOK, v.do(http.MethodPost, "/api/cart/items", `{"product_id":"B","quantity":2}`).Code)

	rec := v.do(http.MethodPost, "/api/checkout", `{"customer_name":"Maria"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var receipt struct {
		OrderID string `json:"order_id"`
		Total   string `json:"total"`
		Tax     string `json:"tax"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &receipt))
	assert.Equal(t, "71.5", receipt.Total)
	assert.Equal(t, "6.5", receipt.Tax)
	assert.True(t, v.carts.Get("u-staff").IsEmpty())

	rec = v.do(http.MethodGet, "/api/orders/"+receipt.OrderID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"product_name":"Duck Eggs"`)

	rec = v.do(http.MethodGet, "/api/orders?search=mar", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)
}

func TestCheckout_KeepsCartOnFailure(t *testing.T) {
	v := newEnv(t)

	require.Equal(t, http.StatusOK, v.do(http.MethodPost, "/api/cart/items", `{"product_id":"B","quantity":4}`).Code)

	rec := v.do(http.MethodPost, "/api/checkout", `{"customer_name":"  "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"MISSING_CUSTOMER"`)
	assert.False(t, v.carts.Get("u-staff").IsEmpty())

	v.db.MustExec(`UPDATE products SET stock = 3 WHERE id = 'B'`)
	rec = v.do(http.MethodPost, "/api/checkout", `{"customer_name":"Maria"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"CHECKOUT_FAILED"`)
	assert.Len(t, v.carts.Get("u-staff").Lines(), 1)
}

func TestCheckout_EmptyCart(t *testing.T) {
	v := newEnv(t)

	rec := v.do(http.MethodPost, "/api/checkout", `{"customer_name":"Maria"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"EMPTY_CART"`)
}

func TestCheckout_DoubleSubmitPlacesOneOrder(t *testing.T) {
	v := newEnv(t)
	require.Equal(t, http.StatusOK, v.do(http.MethodPost, "/api/cart/items", `{"product_id":"A","quantity":2}`).Code)

	codes := make([]int, 2)
	var wg sync.WaitGroup
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = v.do(http.MethodPost, "/api/checkout", `{"customer_name":"Maria"}`).Code
		}(i)
	}
	wg.Wait()

	assert.ElementsMatch(t, []int{http.StatusCreated, http.StatusUnprocessableEntity}, codes)

	var orders, stock int
	require.NoError(t, v.db.Get(&orders, `SELECT count(*) FROM orders`))
	require.NoError(t, v.db.Get(&stock, `SELECT stock FROM products WHERE id = 'A'`))
	assert.Equal(t, 1, orders)
	assert.Equal(t, 18, stock)
	assert.True(t, v.carts.Get("u-staff").IsEmpty())
}

func TestCheckout_AddDuringCheckoutIsKept(t *testing.T) {
	v := newEnv(t)
	require.Equal(t, http.StatusOK, v.do(http.MethodPost, "/api/cart/items", `{"product_id":"A","quantity":2}`).Code)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		v.do(http.MethodPost, "/api/checkout", `{"customer_name":"Maria"}`)
	}()
	go func() {
		defer wg.Done()
		v.do(http.MethodPost, "/api/cart/items", `{"product_id":"B","quantity":1}`)
	}()
	wg.Wait()

	var sold int
	require.NoError(t, v.db.Get(&sold, `SELECT COALESCE(SUM(quantity), 0) FROM order_items WHERE product_id = 'B'`))
	assert.Equal(t, 1, sold+v.carts.Get("u-staff").Reserved("B"), "the added eggs are either sold or still in the cart")
}
