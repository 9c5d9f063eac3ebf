package app

import (
	"sync"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/govindalabs/dairypos/internal/domain"
	"github.com/govindalabs/dairypos/pkg/common"
)

// ConfigManager reads and writes sys_config rows with a small read cache.
type ConfigManager struct {
	app   DBProvider
	mu    sync.RWMutex
	cache map[string]string
}

func NewConfigManager(app DBProvider) *ConfigManager {
	return &ConfigManager{app: app, cache: make(map[string]string)}
}

func (m *ConfigManager) getValue(category, key string) string {
	cacheKey := category + "." + key
	m.mu.RLock()
	if v, ok := m.cache[cacheKey]; ok {
		m.mu.RUnlock()
		return v
	}
	m.mu.RUnlock()

	var cfg domain.SysConfig
	err := m.app.DB().Where("type = ? and name = ?", category, key).First(&cfg).Error
	if err != nil {
		return ""
	}
	m.mu.Lock()
	m.cache[cacheKey] = cfg.Value
	m.mu.Unlock()
	return cfg.Value
}

func (m *ConfigManager) GetString(category, key string) string {
	return m.getValue(category, key)
}

func (m *ConfigManager) GetInt64(category, key string) int64 {
	return cast.ToInt64(m.getValue(category, key))
}

func (m *ConfigManager) GetInt(category, key string) int {
	return cast.ToInt(m.getValue(category, key))
}

func (m *ConfigManager) GetBool(category, key string) bool {
	return cast.ToBool(m.getValue(category, key))
}

// Set stores a value, creating the row when missing, and refreshes the cache.
func (m *ConfigManager) Set(category, key, value string) error {
	db := m.app.DB()
	var count int64
	db.Model(&domain.SysConfig{}).
		Where("type = ? and name = ?", category, key).
		Count(&count)

	var err error
	if count == 0 {
		err = db.Create(&domain.SysConfig{
			ID:    common.UUIDint64(),
			Type:  category,
			Name:  key,
			Value: value,
		}).Error
	} else {
		err = db.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", category, key).
			Updates(map[string]interface{}{"value": value, "updated_at": time.Now()}).Error
	}
	if err != nil {
		zap.L().Error("failed to save setting",
			zap.String("category", category), zap.String("key", key), zap.Error(err))
		return err
	}

	m.mu.Lock()
	m.cache[category+"."+key] = value
	m.mu.Unlock()
	return nil
}
