package adminapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/govindalabs/dairypos/internal/pos"
	"github.com/govindalabs/dairypos/internal/webserver"
)

func registerBackupRoutes() {
	webserver.ApiGET("/pos/backup", exportBackup)
	webserver.ApiPOST("/pos/restore", restoreBackup)
	webserver.ApiGET("/pos/backup/bills.csv", exportBillsCsv)
	webserver.ApiPOST("/pos/migrate", migrateState)
	webserver.ApiGET("/pos/migrate/status", migrationStatus)
}

// exportBackup downloads the owner's whole state as one JSON document.
func exportBackup(c echo.Context) error {
	snap, err := backup.Export(c.Request().Context(), currentOwnerID(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to export state", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="dairypos-backup-%s.json"`, time.Now().Format("20060102")))
	return c.JSON(http.StatusOK, snap)
}

// restoreBackup validates an uploaded snapshot and replaces the owner's
// state wholesale inside one transaction.
func restoreBackup(c echo.Context) error {
	var snap pos.StateSnapshot
	if err := c.Bind(&snap); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse snapshot", err.Error())
	}
	if err := backup.Import(c.Request().Context(), currentOwnerID(c), &snap); err != nil {
		return fail(c, http.StatusBadRequest, "IMPORT_ERROR", "Snapshot rejected", err.Error())
	}
	return ok(c, map[string]interface{}{"restored": true})
}

type billCsvRow struct {
	InvoiceNo string  `csv:"invoice_no"`
	Date      string  `csv:"date"`
	Customer  string  `csv:"customer"`
	Phone     string  `csv:"phone"`
	Status    string  `csv:"status"`
	Subtotal  float64 `csv:"subtotal"`
	Discount  float64 `csv:"discount"`
	Total     float64 `csv:"total"`
}

// exportBillsCsv flattens the bill history into a spreadsheet-friendly CSV.
func exportBillsCsv(c echo.Context) error {
	all, err := bills.List(c.Request().Context(), currentOwnerID(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query bills", err.Error())
	}
	rows := make([]billCsvRow, 0, len(all))
	for _, b := range all {
		rows = append(rows, billCsvRow{
			InvoiceNo: b.InvoiceNo,
			Date:      b.CreatedAt.Format("2006-01-02 15:04"),
			Customer:  b.CustomerName,
			Phone:     b.CustomerPhone,
			Status:    b.Status,
			Subtotal:  b.Subtotal,
			Discount:  b.Discount,
			Total:     b.Total,
		})
	}
	data, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CSV_ERROR", "Failed to build CSV", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="bills-%s.csv"`, time.Now().Format("20060102")))
	return c.Blob(http.StatusOK, "text/csv", data)
}

// migrateState is the one-time import path from a browser-local install.
// It behaves like restore but also flips the completion flag so clients
// stop offering migration.
func migrateState(c echo.Context) error {
	owner := currentOwnerID(c)
	appCtx := getApp(c)

	if cast.ToBool(appCtx.GetSettingsStringValue("pos", "MigrationCompleted")) {
		return fail(c, http.StatusConflict, "ALREADY_MIGRATED", "Migration has already been completed", nil)
	}

	var snap pos.StateSnapshot
	if err := c.Bind(&snap); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse snapshot", err.Error())
	}
	if err := backup.Import(c.Request().Context(), owner, &snap); err != nil {
		return fail(c, http.StatusBadRequest, "IMPORT_ERROR", "Snapshot rejected", err.Error())
	}
	if err := appCtx.SetSettingsValue("pos", "MigrationCompleted", "true"); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to record migration", err.Error())
	}
	return ok(c, map[string]interface{}{"migrated": true})
}

func migrationStatus(c echo.Context) error {
	completed := cast.ToBool(getApp(c).GetSettingsStringValue("pos", "MigrationCompleted"))
	return ok(c, map[string]interface{}{"completed": completed})
}
