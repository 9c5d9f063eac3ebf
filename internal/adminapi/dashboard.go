package adminapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/govindalabs/dairypos/internal/domain"
	"github.com/govindalabs/dairypos/internal/webserver"
)

func registerDashboardRoutes() {
	webserver.ApiGET("/pos/dashboard", getDashboard)
}

type dailySales struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
	Bills int64   `json:"bills"`
}

// getDashboard aggregates the home-screen numbers: sales totals, pending
// dues, counts, the low-stock list and the last-7-day sales series.
func getDashboard(c echo.Context) error {
	owner := currentOwnerID(c)
	db := GetDB(c)
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var totalSales, todaySales, pendingAmount float64
	var billCount, pendingCount, customerCount, productCount int64

	db.Model(&domain.Bill{}).Where("owner_id = ?", owner).
		Select("COALESCE(SUM(total),0)").Scan(&totalSales)
	db.Model(&domain.Bill{}).Where("owner_id = ? AND created_at >= ?", owner, startOfDay).
		Select("COALESCE(SUM(total),0)").Scan(&todaySales)
	db.Model(&domain.Bill{}).Where("owner_id = ?", owner).Count(&billCount)
	db.Model(&domain.Bill{}).Where("owner_id = ? AND status = ?", owner, domain.BillStatusPending).
		Count(&pendingCount)
	db.Model(&domain.Bill{}).Where("owner_id = ? AND status = ?", owner, domain.BillStatusPending).
		Select("COALESCE(SUM(total),0)").Scan(&pendingAmount)
	db.Model(&domain.Customer{}).Where("owner_id = ?", owner).Count(&customerCount)
	db.Model(&domain.Product{}).Where("owner_id = ?", owner).Count(&productCount)

	var allProducts []domain.Product
	if err := db.Where("owner_id = ?", owner).Find(&allProducts).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	lowStock := make([]domain.Product, 0)
	for _, p := range allProducts {
		if p.LowStock() {
			lowStock = append(lowStock, p)
		}
	}

	// 7-day series, oldest first; days without sales appear as zeros.
	weekStart := startOfDay.AddDate(0, 0, -6)
	var recent []domain.Bill
	db.Where("owner_id = ? AND created_at >= ?", owner, weekStart).Find(&recent)

	series := make([]dailySales, 7)
	for i := 0; i < 7; i++ {
		series[i].Date = weekStart.AddDate(0, 0, i).Format("2006-01-02")
	}
	for _, b := range recent {
		i := int(b.CreatedAt.Sub(weekStart).Hours() / 24)
		if i < 0 || i > 6 {
			continue
		}
		series[i].Total += b.Total
		series[i].Bills++
	}

	return ok(c, map[string]interface{}{
		"today_sales":    todaySales,
		"total_sales":    totalSales,
		"bill_count":     billCount,
		"pending_count":  pendingCount,
		"pending_amount": pendingAmount,
		"customer_count": customerCount,
		"product_count":  productCount,
		"low_stock":      lowStock,
		"week_series":    series,
	})
}
