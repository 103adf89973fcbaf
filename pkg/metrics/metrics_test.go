package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordTransaction_CompletedAddsRevenue(t *testing.T) {
	// Arrange
	revenueBefore := testutil.ToFloat64(RevenueTotal)
	unitsBefore := testutil.ToFloat64(UnitsSold.WithLabelValues("9001"))

	// Act
	RecordTransaction("completed", 9001, 3, 60, time.Millisecond)
	RecordTransaction("insufficient_stock", 9001, 100, 0, time.Millisecond)

	// Assert
	assert.InDelta(t, revenueBefore+60, testutil.ToFloat64(RevenueTotal), 1e-9)
	assert.Equal(t, unitsBefore+3, testutil.ToFloat64(UnitsSold.WithLabelValues("9001")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(TransactionsTotal.WithLabelValues("insufficient_stock")), 1.0)
}

func TestSetStockLevel(t *testing.T) {
	SetStockLevel(9002, 47)

	assert.Equal(t, 47.0, testutil.ToFloat64(StockLevel.WithLabelValues("9002")))
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/products/:id", normalizePath("/products/:id", "/products/101"))
	assert.Equal(t, "unmatched", normalizePath("", "/nope"))
	assert.Equal(t, "unknown", normalizePath("", ""))
}

func TestGinPrometheusMiddleware_UsesRouteTemplate(t *testing.T) {
	// Arrange
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinPrometheusMiddleware("metrics-test"))
	router.GET("/products/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	// Act
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/101", nil))

	// Assert
	counter := HttpRequestsTotal.WithLabelValues("metrics-test", http.MethodGet, "/products/:id", "200")
	assert.Equal(t, 1.0, testutil.ToFloat64(counter))
}
