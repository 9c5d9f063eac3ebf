package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/govindalabs/dairypos/internal/domain"
	"github.com/govindalabs/dairypos/internal/webserver"
	"github.com/govindalabs/dairypos/pkg/common"
)

type productPayload struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	UnitType    string  `json:"unit_type"`
	UnitPrice   float64 `json:"unit_price"`
	Qty         float64 `json:"qty"`
	LowAt       float64 `json:"low_at"`
}

func registerProductRoutes() {
	webserver.ApiGET("/pos/products", listProducts)
	webserver.ApiGET("/pos/products/:id", getProduct)
	webserver.ApiPOST("/pos/products", createProduct)
	webserver.ApiPUT("/pos/products/:id", updateProduct)
	webserver.ApiDELETE("/pos/products/:id", deleteProduct)
	webserver.ApiPOST("/pos/products/:id/stock", setProductStock)
}

// validateProductPayload enforces the single-pricing-mode rule: fixed
// products need a positive price, unit-based ones a known unit type and a
// positive per-unit price.
func validateProductPayload(p *productPayload) string {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return "Name is required"
	}
	switch p.UnitType {
	case "":
		if p.Price <= 0 {
			return "Price must be positive"
		}
		p.UnitPrice = 0
	case domain.UnitTypeKg, domain.UnitTypeLitre:
		if p.UnitPrice <= 0 {
			return "Unit price must be positive"
		}
		p.Price = 0
	default:
		return "Unit type must be empty, 'Kg' or 'Litre'"
	}
	if p.Qty < 0 {
		return "Stock quantity cannot be negative"
	}
	return ""
}

func listProducts(c echo.Context) error {
	owner := currentOwnerID(c)
	page, pageSize := parsePagination(c)
	q := strings.TrimSpace(c.QueryParam("q"))
	category := strings.TrimSpace(c.QueryParam("category"))
	lowOnly := cast.ToBool(c.QueryParam("low"))

	db := GetDB(c).Model(&domain.Product{}).Where("owner_id = ?", owner)
	if q != "" {
		db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if category != "" {
		db = db.Where("category = ?", category)
	}
	if lowOnly {
		// threshold defaults to 5 when low_at is unset, matching LowStock
		db = db.Where("qty <= COALESCE(NULLIF(low_at, 0), 5)")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	var rows []domain.Product
	if err := db.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	return paged(c, rows, total, page, pageSize)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("owner_id = ? AND id = ?", currentOwnerID(c), id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}

func createProduct(c echo.Context) error {
	owner := currentOwnerID(c)
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if msg := validateProductPayload(&payload); msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	var count int64
	GetDB(c).Model(&domain.Product{}).
		Where("owner_id = ? AND name = ?", owner, payload.Name).Count(&count)
	if count > 0 {
		return fail(c, http.StatusConflict, "DUPLICATE_NAME", "A product with this name already exists", nil)
	}

	now := time.Now()
	p := domain.Product{
		ID:          common.UUIDint64(),
		OwnerID:     owner,
		Name:        payload.Name,
		Category:    strings.TrimSpace(payload.Category),
		Description: strings.TrimSpace(payload.Description),
		Price:       payload.Price,
		UnitType:    payload.UnitType,
		UnitPrice:   payload.UnitPrice,
		Qty:         payload.Qty,
		LowAt:       payload.LowAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := GetDB(c).Create(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	owner := currentOwnerID(c)
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("owner_id = ? AND id = ?", owner, id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if msg := validateProductPayload(&payload); msg != "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	var count int64
	GetDB(c).Model(&domain.Product{}).
		Where("owner_id = ? AND name = ? AND id <> ?", owner, payload.Name, id).Count(&count)
	if count > 0 {
		return fail(c, http.StatusConflict, "DUPLICATE_NAME", "A product with this name already exists", nil)
	}

	p.Name = payload.Name
	p.Category = strings.TrimSpace(payload.Category)
	p.Description = strings.TrimSpace(payload.Description)
	p.Price = payload.Price
	p.UnitType = payload.UnitType
	p.UnitPrice = payload.UnitPrice
	p.Qty = payload.Qty
	p.LowAt = payload.LowAt
	p.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := GetDB(c).Where("owner_id = ? AND id = ?", currentOwnerID(c), id).
		Delete(&domain.Product{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}

type stockPayload struct {
	Qty float64 `json:"qty" form:"qty"`
}

// setProductStock sets the absolute stock level, floored at zero.
func setProductStock(c echo.Context) error {
	owner := currentOwnerID(c)
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var payload stockPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse stock payload", err.Error())
	}
	if payload.Qty < 0 {
		payload.Qty = 0
	}
	if _, err := products.GetByID(c.Request().Context(), owner, id); err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	if err := products.UpdateStock(c.Request().Context(), owner, id, payload.Qty); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update stock", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id, "qty": payload.Qty})
}
