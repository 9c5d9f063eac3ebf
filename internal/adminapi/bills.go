package adminapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/govindalabs/dairypos/internal/domain"
	"github.com/govindalabs/dairypos/internal/pdfgen"
	"github.com/govindalabs/dairypos/internal/pos"
	"github.com/govindalabs/dairypos/internal/webserver"
)

func registerBillRoutes() {
	webserver.ApiGET("/pos/bills", listBills)
	webserver.ApiGET("/pos/bills/:id", getBill)
	webserver.ApiGET("/pos/bills/:id/pdf", downloadBillPdf)
	webserver.ApiGET("/pos/bills/:id/share", shareBill)
	webserver.ApiGET("/pos/bills/:id/reminder", remindBill)
	webserver.PubGET("/invoice/:invoice_no", publicInvoice)
}

func listBills(c echo.Context) error {
	owner := currentOwnerID(c)
	page, pageSize := parsePagination(c)
	status := strings.TrimSpace(c.QueryParam("status"))
	q := strings.TrimSpace(c.QueryParam("q"))

	db := GetDB(c).Model(&domain.Bill{}).Where("owner_id = ?", owner)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if q != "" {
		db = db.Where("invoice_no LIKE ? OR LOWER(customer_name) LIKE ?",
			"%"+q+"%", "%"+strings.ToLower(q)+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query bills", err.Error())
	}

	var rows []domain.Bill
	if err := db.Preload("Items").Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query bills", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getBill(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid bill ID", nil)
	}
	bill, err := bills.GetByID(c.Request().Context(), currentOwnerID(c), id)
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Bill not found", nil)
	}
	return ok(c, bill)
}

// downloadBillPdf renders the invoice on demand. PDFs are never stored;
// regenerating from the bill snapshot always yields the same document.
func downloadBillPdf(c echo.Context) error {
	owner := currentOwnerID(c)
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid bill ID", nil)
	}
	bill, err := bills.GetByID(c.Request().Context(), owner, id)
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Bill not found", nil)
	}
	shop, err := shops.Get(c.Request().Context(), owner)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load shop profile", err.Error())
	}
	data, err := pdfgen.GenPDF(bill, shop)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "PDF_ERROR", "Failed to render invoice", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="invoice-%s.pdf"`, bill.InvoiceNo))
	return c.Blob(http.StatusOK, "application/pdf", data)
}

// shareBill returns the wa.me deep link with the invoice message prefilled.
func shareBill(c echo.Context) error {
	owner := currentOwnerID(c)
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid bill ID", nil)
	}
	bill, err := bills.GetByID(c.Request().Context(), owner, id)
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Bill not found", nil)
	}
	baseURL := getApp(c).Config().Web.BaseURL
	message := pos.InvoiceMessage(bill, baseURL)
	return ok(c, map[string]interface{}{
		"invoice_no": bill.InvoiceNo,
		"message":    message,
		"wa_link":    pos.WaLink(bill.CustomerPhone, message),
	})
}

// remindBill returns the payment-reminder link for a pending bill.
func remindBill(c echo.Context) error {
	owner := currentOwnerID(c)
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid bill ID", nil)
	}
	bill, err := bills.GetByID(c.Request().Context(), owner, id)
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Bill not found", nil)
	}
	if bill.Status != domain.BillStatusPending {
		return fail(c, http.StatusBadRequest, "NOT_PENDING", "Bill is not pending payment", nil)
	}
	baseURL := getApp(c).Config().Web.BaseURL
	message := pos.ReminderMessage(bill, baseURL)
	return ok(c, map[string]interface{}{
		"invoice_no": bill.InvoiceNo,
		"message":    message,
		"wa_link":    pos.WaLink(bill.CustomerPhone, message),
	})
}

// publicInvoice serves the invoice PDF inline by invoice number. This is the
// page behind the link shared over WhatsApp, so it takes no auth. Invoice
// numbers are unique per owner only; the unqualified link assumes a
// single-shop deployment.
func publicInvoice(c echo.Context) error {
	invoiceNo := c.Param("invoice_no")
	var bill domain.Bill
	if err := GetDB(c).Preload("Items").
		Where("invoice_no = ?", invoiceNo).First(&bill).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Invoice not found", nil)
	}
	var shop domain.ShopProfile
	if err := GetDB(c).Where("owner_id = ?", bill.OwnerID).First(&shop).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Invoice not found", nil)
	}
	data, err := pdfgen.GenPDF(&bill, &shop)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "PDF_ERROR", "Failed to render invoice", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`inline; filename="invoice-%s.pdf"`, bill.InvoiceNo))
	return c.Blob(http.StatusOK, "application/pdf", data)
}
