package adminapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/govindalabs/dairypos/config"
	"github.com/govindalabs/dairypos/internal/app"
	"github.com/govindalabs/dairypos/internal/domain"
)

func newTestApp(t *testing.T) *app.Application {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))

	appCtx := app.NewApplication(config.DefaultAppConfig)
	appCtx.OverrideDB(db)
	return appCtx
}

func newTestContext(t *testing.T, appCtx *app.Application, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("appctx", appCtx)
	return c, rec
}

func TestListProductsLowStockFilterPaginates(t *testing.T) {
	appCtx := newTestApp(t)
	db := appCtx.DB()

	healthy := []domain.Product{
		{ID: 1, Name: "Fresh Milk", Price: 60, Qty: 100, LowAt: 5},
		{ID: 2, Name: "Pure Desi Ghee", Price: 900, Qty: 50, LowAt: 5},
		{ID: 3, Name: "Fresh Paneer", Price: 450, Qty: 40, LowAt: 5},
		{ID: 4, Name: "Butter", Price: 120, Qty: 30, LowAt: 5},
	}
	low := []domain.Product{
		// low_at zero falls back to the default threshold of 5
		{ID: 5, Name: "Rasgulla (tin)", Price: 180, Qty: 4, LowAt: 0},
		{ID: 6, Name: "Milk Packet (500ml)", Price: 30, Qty: 10, LowAt: 10},
		{ID: 7, Name: "Lassi", Price: 40, Qty: 1, LowAt: 2},
	}
	for _, p := range append(healthy, low...) {
		require.NoError(t, db.Create(&p).Error)
	}

	// the filter applies before count and pagination, so the total counts
	// every low product even when they span pages
	c, rec := newTestContext(t, appCtx, "/api/pos/products?low=true&perPage=2")
	require.NoError(t, listProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data  []domain.Product `json:"data"`
		Total int64            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.EqualValues(t, 3, resp.Total)
	require.Len(t, resp.Data, 2)
	for _, p := range resp.Data {
		assert.True(t, p.LowStock(), "product %q is not low on stock", p.Name)
	}

	// second page carries the remaining low product
	c2, rec2 := newTestContext(t, appCtx, "/api/pos/products?low=true&perPage=2&page=2")
	require.NoError(t, listProducts(c2))
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &resp))
	assert.EqualValues(t, 3, resp.Total)
	assert.Len(t, resp.Data, 1)
}
