package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host    string `yaml:"host" json:"host"`
	Port    int    `yaml:"port" json:"port"`
	Secret  string `yaml:"secret" json:"secret"`
	BaseURL string `yaml:"base_url" json:"base_url"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system" json:"system"`
	Web      WebConfig `yaml:"web" json:"web"`
	Database DBConfig  `yaml:"database" json:"database"`
	Logger   LogConfig `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "dairypos",
		Location: "Asia/Kolkata",
		Workdir:  "/var/dairypos",
		Debug:    true,
	},
	Web: WebConfig{
		Host:    "0.0.0.0",
		Port:    1880,
		Secret:  "9b6de5cc-dairypos-b712-1aad-cc31efca2d6b",
		BaseURL: "http://localhost:1880",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "dairypos",
		User:     "postgres",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/dairypos/dairypos.log",
	},
}

func setEnvValue(name string, val *string) {
	if v := os.Getenv(name); v != "" {
		*val = v
	}
}

func setEnvBoolValue(name string, val *bool) {
	if v := os.Getenv(name); v != "" {
		*val = v == "true" || v == "1" || v == "on"
	}
}

// LoadConfig reads the YAML config file and applies environment overrides.
// A missing file yields the default configuration rather than an error so the
// service can come up in offline mode with zero setup.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig
	if cfile != "" {
		if _, err := os.Stat(cfile); err == nil {
			data, err := os.ReadFile(cfile)
			if err == nil {
				nc := new(AppConfig)
				if yaml.Unmarshal(data, nc) == nil {
					cfg = nc
				}
			}
		}
	}

	setEnvValue("DAIRYPOS_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("DAIRYPOS_SYSTEM_DEBUG", &cfg.System.Debug)
	setEnvValue("DAIRYPOS_WEB_SECRET", &cfg.Web.Secret)
	setEnvValue("DAIRYPOS_WEB_BASEURL", &cfg.Web.BaseURL)
	setEnvValue("DAIRYPOS_DB_TYPE", &cfg.Database.Type)
	setEnvValue("DAIRYPOS_DB_HOST", &cfg.Database.Host)
	setEnvValue("DAIRYPOS_DB_NAME", &cfg.Database.Name)
	setEnvValue("DAIRYPOS_DB_USER", &cfg.Database.User)
	setEnvValue("DAIRYPOS_DB_PWD", &cfg.Database.Passwd)

	return cfg
}

// InitDirs ensures the working directory tree exists.
func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "logs"), 0o755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "data"), 0o755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "backup"), 0o755)
}
