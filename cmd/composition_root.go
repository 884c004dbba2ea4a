package cmd

import (
	"log/slog"
	"strconv"

	"restring/internal/adapters/out/notifier"
	"restring/internal/adapters/out/postgres"
	"restring/internal/adapters/out/postgres/deliverylogrepo"
	"restring/internal/adapters/out/pricing"
	"restring/internal/core/application/usecases/commands"
	"restring/internal/core/application/usecases/queries"
	"restring/internal/core/domain/services"
	"restring/internal/core/ports"
	"restring/internal/jobs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB        *gorm.DB
	uowFactory    postgres.GormUnitOfWorkFactory
	dispatcher    services.NotificationDispatcher
	analytics     services.Analytics
	advisor       services.SchedulingAdvisor
	schedulingCfg services.SchedulingConfig
	logger        *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	schedulingCfg := services.DefaultSchedulingConfig()
	if maxPerDay, err := strconv.Atoi(config.MaxOrdersPerDay); err == nil && maxPerDay > 0 {
		schedulingCfg.MaxPerDay = maxPerDay
	}

	analyticsCfg := services.DefaultAnalyticsConfig()
	if fee, err := decimal.NewFromString(config.MembershipFee); err == nil && fee.IsPositive() {
		analyticsCfg.MonthlyMembershipFee = fee
	}

	dispatcher := services.NewNotificationDispatcher(
		notifier.NewLogSender(logger),
		deliverylogrepo.NewGormDeliveryLog(gormDB),
		logger,
	)

	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		dispatcher:    dispatcher,
		analytics:     services.NewAnalytics(analyticsCfg),
		advisor:       services.NewSchedulingAdvisor(schedulingCfg),
		schedulingCfg: schedulingCfg,
		logger:        logger,
	}
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmOrderCommandHandler(f, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(
		f, c.dispatcher, c.CreateRecomputeProfileCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateRestockCommandHandler() commands.RestockCommandHandler {
	var f commands.InventoryUoWFactory = FuncInventoryUoWFactory(func() commands.InventoryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRestockCommandHandler(f)
}

func (c *CompositionRoot) CreateRecomputeProfileCommandHandler() commands.RecomputeProfileCommandHandler {
	var f commands.ProfileUoWFactory = FuncProfileUoWFactory(func() commands.ProfileUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecomputeProfileCommandHandler(f, c.analytics)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateInventoryReportQueryHandler() queries.InventoryReportQueryHandler {
	return queries.NewInventoryReportQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCustomerSummaryQueryHandler() queries.CustomerSummaryQueryHandler {
	return queries.NewCustomerSummaryQueryHandler(c.gormDB, c.analytics)
}

func (c *CompositionRoot) CreateChurnReportQueryHandler() queries.ChurnReportQueryHandler {
	return queries.NewChurnReportQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateScheduleOutlookQueryHandler() queries.ScheduleOutlookQueryHandler {
	return queries.NewScheduleOutlookQueryHandler(c.gormDB, c.advisor, c.schedulingCfg)
}

func (c *CompositionRoot) CreateRevenueForecastQueryHandler() queries.RevenueForecastQueryHandler {
	return queries.NewRevenueForecastQueryHandler(c.gormDB, c.analytics)
}

func (c *CompositionRoot) CreatePriceQuoter() ports.PriceQuoter {
	return pricing.NewStaticQuoter()
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateChurnReportQueryHandler(),
		c.CreateScheduleOutlookQueryHandler(),
		c.CreateRevenueForecastQueryHandler(),
		c.CreateInventoryReportQueryHandler(),
		c.dispatcher,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncInventoryUoWFactory func() commands.InventoryUoW

func (f FuncInventoryUoWFactory) Create() commands.InventoryUoW {
	return f()
}

type FuncProfileUoWFactory func() commands.ProfileUoW

func (f FuncProfileUoWFactory) Create() commands.ProfileUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
