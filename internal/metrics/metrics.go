package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	CheckoutsTotal      *prometheus.CounterVec
	RevenueTotal        prometheus.Counter
	ItemsSoldTotal      prometheus.Counter
	StockAdjustments    *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the collectors under prefix on reg. Passing a fresh
// prometheus.NewRegistry() keeps tests isolated from the default registry.
func New(prefix string, reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		CheckoutsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_checkouts_total",
			Help: "Checkout attempts by result",
		}, []string{"result"}),
		RevenueTotal: f.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_revenue_total",
			Help: "Sum of committed order totals",
		}),
		ItemsSoldTotal: f.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_items_sold_total",
			Help: "Units sold through checkout",
		}),
		StockAdjustments: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_stock_adjustments_total",
			Help: "Stock adjustments by item type and movement type",
		}, []string{"item_type", "movement_type"}),
		gatherer: reg,
	}
}

func (m *Metrics) CheckoutSucceeded(total decimal.Decimal, units int) {
	m.CheckoutsTotal.WithLabelValues("success").Inc()
	m.RevenueTotal.Add(total.InexactFloat64())
	m.ItemsSoldTotal.Add(float64(units))
}

func (m *Metrics) CheckoutRejected(reason string) {
	m.CheckoutsTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) StockAdjusted(itemType, movementType string) {
	m.StockAdjustments.WithLabelValues(itemType, movementType).Inc()
}

func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			labels := []string{c.Request().Method, c.Path(), strconv.Itoa(status)}
			m.HTTPRequestsTotal.WithLabelValues(labels...).Inc()
			m.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
