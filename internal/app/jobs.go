package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/govindalabs/dairypos/internal/domain"
	"github.com/govindalabs/dairypos/internal/pos"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedClearOprLogs()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedOverdueBillReminders()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedClearOprLogs removes operator logs past the retention window.
func (a *Application) SchedClearOprLogs() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	days := a.ConfigMgr().GetInt("system", "OprLogRetentionDays")
	if days == 0 {
		days = 365
	}
	a.gormDB.
		Where("opt_time < ? ", time.Now().
			Add(-time.Hour*24*time.Duration(days))).Delete(domain.SysOprLog{})
}

// SchedOverdueBillReminders scans for pending bills past their due date and
// logs a prefilled reminder link per bill. Sending stays a manual step; the
// link lands in the log and the latest-notification surface.
func (a *Application) SchedOverdueBillReminders() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	if !a.ConfigMgr().GetBool("pos", "ReminderEnabled") {
		return
	}

	var operators []domain.SysOpr
	if err := a.gormDB.Find(&operators).Error; err != nil {
		zap.L().Error("overdue reminder scan failed", zap.Error(err))
		return
	}

	repo := pos.NewGormBillRepository(a.gormDB)
	baseURL := a.appConfig.Web.BaseURL
	ctx := context.Background()
	overdue := 0

	for _, opr := range operators {
		bills, err := repo.ListPendingDue(ctx, opr.ID, time.Now())
		if err != nil {
			zap.L().Error("overdue reminder scan failed",
				zap.Int64("owner", opr.ID), zap.Error(err))
			continue
		}
		for i := range bills {
			b := &bills[i]
			if b.CustomerPhone == "" {
				continue
			}
			overdue++
			link := pos.WaLink(b.CustomerPhone, pos.ReminderMessage(b, baseURL))
			zap.L().Info("overdue bill reminder",
				zap.String("invoice_no", b.InvoiceNo),
				zap.String("customer", b.CustomerName),
				zap.Float64("total", b.Total),
				zap.String("wa_link", link))
		}
	}
	if overdue > 0 && a.notifier != nil {
		a.notifier.Set("Overdue pending bills: " + time.Now().Format("02/01/2006"))
	}
}
