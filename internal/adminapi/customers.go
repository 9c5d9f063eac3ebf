package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/govindalabs/dairypos/internal/domain"
	"github.com/govindalabs/dairypos/internal/webserver"
	"github.com/govindalabs/dairypos/pkg/common"
)

type customerPayload struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Religion string `json:"religion"`
	General  bool   `json:"general"`
}

func registerCustomerRoutes() {
	webserver.ApiGET("/pos/customers", listCustomers)
	webserver.ApiGET("/pos/customers/:id", getCustomer)
	webserver.ApiPOST("/pos/customers", createCustomer)
	webserver.ApiPUT("/pos/customers/:id", updateCustomer)
	webserver.ApiDELETE("/pos/customers/:id", deleteCustomer)
}

func listCustomers(c echo.Context) error {
	owner := currentOwnerID(c)
	page, pageSize := parsePagination(c)
	q := strings.TrimSpace(c.QueryParam("q"))

	db := GetDB(c).Model(&domain.Customer{}).Where("owner_id = ?", owner)
	if q != "" {
		db = db.Where("LOWER(name) LIKE ? OR phone LIKE ?",
			"%"+strings.ToLower(q)+"%", "%"+q+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query customers", err.Error())
	}

	var rows []domain.Customer
	if err := db.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query customers", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getCustomer(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid customer ID", nil)
	}
	var cust domain.Customer
	if err := GetDB(c).Where("owner_id = ? AND id = ?", currentOwnerID(c), id).First(&cust).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Customer not found", nil)
	}
	return ok(c, cust)
}

func createCustomer(c echo.Context) error {
	owner := currentOwnerID(c)
	var payload customerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse customer", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Phone = strings.TrimSpace(payload.Phone)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}

	if payload.Phone != "" {
		var count int64
		GetDB(c).Model(&domain.Customer{}).
			Where("owner_id = ? AND phone = ?", owner, payload.Phone).Count(&count)
		if count > 0 {
			return fail(c, http.StatusConflict, "DUPLICATE_PHONE", "A customer with this phone already exists", nil)
		}
	}

	now := time.Now()
	cust := domain.Customer{
		ID:        common.UUIDint64(),
		OwnerID:   owner,
		Name:      payload.Name,
		Phone:     payload.Phone,
		Religion:  strings.TrimSpace(payload.Religion),
		General:   payload.General,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := GetDB(c).Create(&cust).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create customer", err.Error())
	}
	return ok(c, cust)
}

func updateCustomer(c echo.Context) error {
	owner := currentOwnerID(c)
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid customer ID", nil)
	}
	var cust domain.Customer
	if err := GetDB(c).Where("owner_id = ? AND id = ?", owner, id).First(&cust).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Customer not found", nil)
	}

	var payload customerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse customer", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Phone = strings.TrimSpace(payload.Phone)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}

	if payload.Phone != "" {
		var count int64
		GetDB(c).Model(&domain.Customer{}).
			Where("owner_id = ? AND phone = ? AND id <> ?", owner, payload.Phone, id).Count(&count)
		if count > 0 {
			return fail(c, http.StatusConflict, "DUPLICATE_PHONE", "A customer with this phone already exists", nil)
		}
	}

	cust.Name = payload.Name
	cust.Phone = payload.Phone
	cust.Religion = strings.TrimSpace(payload.Religion)
	cust.General = payload.General
	cust.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&cust).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update customer", err.Error())
	}
	return ok(c, cust)
}

func deleteCustomer(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid customer ID", nil)
	}
	if err := GetDB(c).Where("owner_id = ? AND id = ?", currentOwnerID(c), id).
		Delete(&domain.Customer{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete customer", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}
