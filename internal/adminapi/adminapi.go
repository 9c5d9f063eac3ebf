// Package adminapi implements the HTTP API of the point-of-sale backend.
package adminapi

import (
	"github.com/govindalabs/dairypos/internal/app"
	"github.com/govindalabs/dairypos/internal/pdfgen"
	"github.com/govindalabs/dairypos/internal/pos"
)

var (
	products  pos.ProductRepository
	customers pos.CustomerRepository
	bills     pos.BillRepository
	shops     pos.ShopRepository
	carts     *pos.CartStore
	checkout  *pos.CheckoutService
	backup    *pos.BackupService
)

// InitRouter wires the repositories and services and registers every route.
// It must run after webserver.Init.
func InitRouter(appCtx *app.Application) {
	db := appCtx.DB()
	products = pos.NewGormProductRepository(db)
	customers = pos.NewGormCustomerRepository(db)
	bills = pos.NewGormBillRepository(db)
	shops = pos.NewGormShopRepository(db)
	carts = pos.NewCartStore()
	checkout = pos.NewCheckoutService(
		products, customers, bills, shops, carts,
		pdfgen.GenPDF, appCtx.Bus(), appCtx.Config().Web.BaseURL)
	backup = pos.NewBackupService(db, products, customers, bills, shops)

	registerAuthRoutes()
	registerProductRoutes()
	registerCustomerRoutes()
	registerCartRoutes()
	registerBillRoutes()
	registerDashboardRoutes()
	registerMarketingRoutes()
	registerShopRoutes()
	registerBackupRoutes()
	registerNotificationRoutes()
	registerSettingsRoutes()
}
