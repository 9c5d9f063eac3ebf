package app

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/govindalabs/dairypos/internal/domain"
	"github.com/govindalabs/dairypos/pkg/common"
)

func (a *Application) checkSuper() {
	const superUsername = "admin"
	const defaultPassword = "dairypos"

	hashedPassword := common.Sha256HashWithSalt(defaultPassword, common.GetSecretSalt())

	var operator domain.SysOpr
	err := a.gormDB.Where("username = ?", superUsername).First(&operator).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		operator = domain.SysOpr{
			ID:        common.UUIDint64(),
			Realname:  "administrator",
			Mobile:    "0000",
			Email:     "N/A",
			Username:  superUsername,
			Password:  hashedPassword,
			Level:     "super",
			Status:    common.ENABLED,
			Remark:    "super",
			LastLogin: time.Now(),
		}
		if err := a.gormDB.Create(&operator).Error; err != nil {
			zap.L().Error("failed to create default super admin", zap.Error(err))
			return
		}
		zap.L().Info("initialized default super admin account", zap.String("username", superUsername))
		a.checkCatalog(operator.ID)
		return
	case err != nil:
		zap.L().Error("failed to query super admin", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(operator.Password) == ""
	resetLevel := !strings.EqualFold(operator.Level, "super")
	resetStatus := !strings.EqualFold(operator.Status, common.ENABLED)

	a.checkCatalog(operator.ID)

	if !resetPassword && !resetLevel && !resetStatus {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetPassword {
		updates["password"] = hashedPassword
	}
	if resetLevel {
		updates["level"] = "super"
	}
	if resetStatus {
		updates["status"] = common.ENABLED
	}

	if err := a.gormDB.Model(&domain.SysOpr{}).Where("id = ?", operator.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair super admin account", zap.Error(err))
		return
	}

	zap.L().Warn("repaired default super admin account",
		zap.String("username", superUsername),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("levelReset", resetLevel),
		zap.Bool("statusEnabled", resetStatus))
}

type configSchema struct {
	Key         string
	Default     string
	Description string
}

var configSchemas = []configSchema{
	{Key: "pos.LowStockDefault", Default: "5", Description: "Default low-stock threshold for new products"},
	{Key: "pos.ReminderEnabled", Default: "true", Description: "Enable the daily overdue bill reminder job"},
	{Key: "system.OprLogRetentionDays", Default: "365", Description: "Days to keep operator logs"},
}

func (a *Application) checkSettings() {
	for sortid, schema := range configSchemas {
		parts := strings.SplitN(schema.Key, ".", 2)
		if len(parts) != 2 {
			zap.L().Warn("invalid config key format", zap.String("key", schema.Key))
			continue
		}
		category := parts[0]
		name := parts[1]

		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", category, name).
			Count(&count)

		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				ID:     common.UUIDint64(),
				Sort:   sortid,
				Type:   category,
				Name:   name,
				Value:  schema.Default,
				Remark: schema.Description,
			})
			zap.L().Info("initialized config",
				zap.String("key", schema.Key),
				zap.String("default", schema.Default))
		}
	}
}

// checkCatalog seeds the default dairy catalog for an owner with no products.
func (a *Application) checkCatalog(owner int64) {
	defaultProducts := []domain.Product{
		{Name: "Fresh Milk", Category: "Milk", Description: "Fresh cow milk",
			Price: 60, UnitType: domain.UnitTypeLitre, UnitPrice: 60, Qty: 80, LowAt: 10},
		{Name: "Pure Desi Ghee", Category: "Ghee", Description: "Pure desi ghee",
			Price: 900, UnitType: domain.UnitTypeKg, UnitPrice: 900, Qty: 20, LowAt: 5},
		{Name: "Fresh Paneer", Category: "Paneer", Description: "Fresh paneer",
			Price: 450, UnitType: domain.UnitTypeKg, UnitPrice: 450, Qty: 30, LowAt: 6},
		{Name: "Rasgulla (tin)", Category: "Sweets", Description: "Rasgulla tin",
			Price: 180, Qty: 15, LowAt: 4},
		{Name: "Milk Packet (500ml)", Category: "Milk", Description: "Packaged cow milk",
			Price: 30, Qty: 100, LowAt: 10},
	}

	var count int64
	a.gormDB.Model(&domain.Product{}).Where("owner_id = ?", owner).Count(&count)
	if count > 0 {
		return
	}

	for _, p := range defaultProducts {
		p.ID = common.UUIDint64()
		p.OwnerID = owner
		p.CreatedAt = time.Now()
		p.UpdatedAt = time.Now()
		if err := a.gormDB.Create(&p).Error; err != nil {
			zap.L().Error("failed to create default product", zap.String("name", p.Name), zap.Error(err))
		} else {
			zap.L().Info("initialized default product", zap.String("name", p.Name))
		}
	}
}
