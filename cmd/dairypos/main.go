package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/govindalabs/dairypos/config"
	"github.com/govindalabs/dairypos/internal/adminapi"
	"github.com/govindalabs/dairypos/internal/app"
	"github.com/govindalabs/dairypos/internal/webserver"
)

var (
	showHelp bool
	initDb   bool
	conffile string
)

func init() {
	flag.BoolVar(&showHelp, "h", false, "show help")
	flag.BoolVar(&initDb, "initdb", false, "drop and recreate all tables, then exit")
	flag.StringVar(&conffile, "c", "/etc/dairypos.yml", "config file path")
}

func main() {
	flag.Parse()
	if showHelp {
		fmt.Fprintf(os.Stderr, "Usage: dairypos [options]\n")
		flag.PrintDefaults()
		return
	}

	cfg := config.LoadConfig(conffile)
	cfg.InitDirs()

	appCtx := app.NewApplication(cfg)
	appCtx.Init(cfg)
	defer appCtx.Release()

	if initDb {
		appCtx.InitDb()
		zap.S().Info("database initialized")
		return
	}

	webserver.Init(appCtx)
	adminapi.InitRouter(appCtx)

	if err := webserver.Listen(); err != nil {
		zap.S().Fatal(err)
	}
}
