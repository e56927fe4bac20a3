package cmd

import (
	"log/slog"

	adapterhttp "routeplan/internal/adapters/in/http"
	"routeplan/internal/adapters/out/cache"
	"routeplan/internal/adapters/out/postgres"
	"routeplan/internal/core/application/usecases/commands"
	"routeplan/internal/core/application/usecases/queries"
	"routeplan/internal/core/ports"
	"routeplan/internal/jobs"
	"routeplan/internal/pkg/keymutex"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters, use cases, and jobs together.
// One instance is built at startup and owns the shared infrastructure
// objects (lock registries, cache, retry queue).
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	optimizerClient ports.OptimizerClient
	proofStore      ports.ProofStore
	notifier        ports.DriverNotifier
	viewCache       ports.RouteViewCache

	planLocks  *keymutex.KeyMutex
	routeLocks *keymutex.KeyMutex

	jobManager *jobs.JobManager
	logger     *slog.Logger
}

// NewCompositionRoot assembles the application graph from the externally
// constructed infrastructure clients.
func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	optimizerClient ports.OptimizerClient,
	proofStore ports.ProofStore,
	notifier ports.DriverNotifier,
	logger *slog.Logger,
) CompositionRoot {
	root := CompositionRoot{
		gormDB:          gormDB,
		uowFactory:      *postgres.NewGormUnitOfWorkFactory(gormDB),
		optimizerClient: optimizerClient,
		proofStore:      proofStore,
		notifier:        notifier,
		viewCache:       cache.NewRedisRouteViewCache(redisClient),
		planLocks:       keymutex.New(),
		routeLocks:      keymutex.New(),
		logger:          logger,
	}

	root.jobManager = jobs.NewJobManager(root.CreateReconcileStopCommandHandler(), logger)
	return root
}

// JobManager returns the background job coordinator.
func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return c.jobManager
}

func (c *CompositionRoot) CreateAdmitOrderCommandHandler() commands.AdmitOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdmitOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateImportOrdersCommandHandler() commands.ImportOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewImportOrdersCommandHandler(f)
}

func (c *CompositionRoot) CreatePlanRoutesCommandHandler() commands.PlanRoutesCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlanRoutesCommandHandler(
		f, c.optimizerClient, c.notifier, c.planLocks, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateOpenRouteCommandHandler() commands.OpenRouteCommandHandler {
	var f commands.RouteUoWFactory = FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewOpenRouteCommandHandler(f, c.viewCache, c.logger)
}

func (c *CompositionRoot) CreateActivateStopCommandHandler() commands.ActivateStopCommandHandler {
	var f commands.RouteUoWFactory = FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewActivateStopCommandHandler(f, c.viewCache, c.routeLocks, c.logger)
}

func (c *CompositionRoot) CreateAttachProofCommandHandler() commands.AttachProofCommandHandler {
	var f commands.RouteUoWFactory = FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAttachProofCommandHandler(
		f, c.proofStore, c.viewCache, c.routeLocks, c.logger)
}

func (c *CompositionRoot) CreateCompleteStopCommandHandler() commands.CompleteStopCommandHandler {
	var f commands.RouteUoWFactory = FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteStopCommandHandler(
		f,
		c.CreateReconcileStopCommandHandler(),
		c.jobManager,
		c.viewCache,
		c.routeLocks,
		c.logger,
	)
}

func (c *CompositionRoot) CreateReconcileStopCommandHandler() commands.ReconcileStopCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcileStopCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateGetRouteByTokenQueryHandler() queries.GetRouteByTokenQueryHandler {
	return queries.NewGetRouteByTokenQueryHandler(c.gormDB, c.viewCache, c.logger)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCompanyStatsQueryHandler() queries.GetCompanyStatsQueryHandler {
	return queries.NewGetCompanyStatsQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the REST adapter with all handlers.
func (c *CompositionRoot) CreateHTTPServer() *adapterhttp.Server {
	return adapterhttp.NewServer(
		c.CreateAdmitOrderCommandHandler(),
		c.CreateImportOrdersCommandHandler(),
		c.CreatePlanRoutesCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateOpenRouteCommandHandler(),
		c.CreateActivateStopCommandHandler(),
		c.CreateAttachProofCommandHandler(),
		c.CreateCompleteStopCommandHandler(),
		c.CreateGetRouteByTokenQueryHandler(),
		c.CreateGetOrdersQueryHandler(),
		c.CreateGetCompanyStatsQueryHandler(),
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncRouteUoWFactory func() commands.RouteUoW

func (f FuncRouteUoWFactory) Create() commands.RouteUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
