package app

import (
	"context"
	"net/http"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	accountAPI "github.com/develophasan/SlotyPi/internal/api/account"
	authAPI "github.com/develophasan/SlotyPi/internal/api/auth"
	cascadeAPI "github.com/develophasan/SlotyPi/internal/api/cascade"
	"github.com/develophasan/SlotyPi/internal/api/health"
	paymentAPI "github.com/develophasan/SlotyPi/internal/api/payment"
	"github.com/develophasan/SlotyPi/internal/client/pi"
	"github.com/develophasan/SlotyPi/internal/config"
	"github.com/develophasan/SlotyPi/internal/config/env"
	"github.com/develophasan/SlotyPi/internal/database"
	"github.com/develophasan/SlotyPi/internal/game"
	"github.com/develophasan/SlotyPi/internal/metrics"
	"github.com/develophasan/SlotyPi/internal/middleware"
	"github.com/develophasan/SlotyPi/internal/repository"
	"github.com/develophasan/SlotyPi/internal/repository/ledger_repo"
	"github.com/develophasan/SlotyPi/internal/repository/memory_repo"
	"github.com/develophasan/SlotyPi/internal/repository/payment_repo"
	"github.com/develophasan/SlotyPi/internal/repository/user_repo"
	"github.com/develophasan/SlotyPi/internal/service"
	"github.com/develophasan/SlotyPi/internal/service/auth"
	"github.com/develophasan/SlotyPi/internal/service/cascade"
	"github.com/develophasan/SlotyPi/internal/service/ledger"
	"github.com/develophasan/SlotyPi/internal/service/payment"
)

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database. Без PG_DSN все репозитории живут в memoryStore
	pgConfig    config.PGConfig
	dbClient    *pgxpool.Pool
	memoryStore *memory_repo.Store

	// Repositories
	ledgerRepo  repository.LedgerRepository
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository

	// Configs
	logCfg  config.LogConfig
	jwtCfg  config.JWTConfig
	gameCfg config.GameConfig
	piCfg   config.PiConfig

	// Pi Platform
	piClient *pi.Client

	// Services
	engine      *game.Engine
	ledgerServ  service.LedgerService
	cascadeServ service.CascadeService
	paymentServ service.PaymentService
	authServ    service.AuthService

	// Handlers
	authHand    *authAPI.Handler
	accountHand *accountAPI.Handler
	cascadeHand *cascadeAPI.Handler
	paymentHand *paymentAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		cfg, err := env.NewLogConfig()
		if err != nil {
			panic("failed to get log config: " + err.Error())
		}
		sp.logCfg = cfg
	}
	return sp.logCfg
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) usePostgres() bool {
	return sp.PgConfig().DSN() != ""
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := database.NewPool(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to connect db: " + err.Error())
		}
		if err := database.Migrate(ctx, dbc); err != nil {
			panic("failed to migrate db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) MemoryStore() *memory_repo.Store {
	if sp.memoryStore == nil {
		log.Warn().Msg("PG_DSN is empty, using in-memory store")
		sp.memoryStore = memory_repo.New()
	}
	return sp.memoryStore
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		if !sp.usePostgres() {
			sp.txManager = memory_repo.NewTxManager(sp.MemoryStore())
			return sp.txManager
		}

		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}
		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) LedgerRepo(ctx context.Context) repository.LedgerRepository {
	if sp.ledgerRepo == nil {
		if sp.usePostgres() {
			sp.ledgerRepo = ledger_repo.NewLedgerRepository(sp.DBClient(ctx))
		} else {
			sp.ledgerRepo = memory_repo.NewLedgerRepository(sp.MemoryStore())
		}
	}
	return sp.ledgerRepo
}

func (sp *ServiceProvider) PaymentRepo(ctx context.Context) repository.PaymentRepository {
	if sp.paymentRepo == nil {
		if sp.usePostgres() {
			sp.paymentRepo = payment_repo.NewPaymentRepository(sp.DBClient(ctx))
		} else {
			sp.paymentRepo = memory_repo.NewPaymentRepository(sp.MemoryStore())
		}
	}
	return sp.paymentRepo
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		if sp.usePostgres() {
			sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx))
		} else {
			sp.userRepo = memory_repo.NewUserRepository(sp.MemoryStore())
		}
	}
	return sp.userRepo
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) GameCfg() config.GameConfig {
	if sp.gameCfg == nil {
		cfg, err := env.NewGameConfig()
		if err != nil {
			panic("failed to get game config: " + err.Error())
		}
		sp.gameCfg = cfg
	}
	return sp.gameCfg
}

func (sp *ServiceProvider) PiCfg() config.PiConfig {
	if sp.piCfg == nil {
		cfg, err := env.NewPiConfig()
		if err != nil {
			panic("failed to get pi config: " + err.Error())
		}
		sp.piCfg = cfg
	}
	return sp.piCfg
}

func (sp *ServiceProvider) PiClient() *pi.Client {
	if sp.piClient == nil {
		sp.piClient = pi.NewClient(sp.PiCfg())
	}
	return sp.piClient
}

func (sp *ServiceProvider) Engine() *game.Engine {
	if sp.engine == nil {
		sp.engine = game.NewEngine(sp.GameCfg().Catalog(), game.NewRandomSource())
	}
	return sp.engine
}

func (sp *ServiceProvider) LedgerService(ctx context.Context) service.LedgerService {
	if sp.ledgerServ == nil {
		sp.ledgerServ = ledger.NewLedgerService(sp.GameCfg(), sp.LedgerRepo(ctx), sp.TXManager(ctx))
	}
	return sp.ledgerServ
}

func (sp *ServiceProvider) CascadeService(ctx context.Context) service.CascadeService {
	if sp.cascadeServ == nil {
		sp.cascadeServ = cascade.NewCascadeService(sp.Engine(), sp.LedgerService(ctx), sp.TXManager(ctx))
	}
	return sp.cascadeServ
}

func (sp *ServiceProvider) PaymentService(ctx context.Context) service.PaymentService {
	if sp.paymentServ == nil {
		sp.paymentServ = payment.NewPaymentService(
			sp.PiClient(),
			sp.PiCfg(),
			sp.PaymentRepo(ctx),
			sp.UserRepo(ctx),
			sp.LedgerService(ctx),
			sp.TXManager(ctx),
		)
	}
	return sp.paymentServ
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewAuthService(sp.PiClient(), sp.UserRepo(ctx), sp.LedgerService(ctx), sp.JWTCfg(), sp.PiCfg())
	}
	return sp.authServ
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{Serv: sp.AuthService(ctx)})
	}
	return sp.authHand
}

func (sp *ServiceProvider) AccountHandler(ctx context.Context) *accountAPI.Handler {
	if sp.accountHand == nil {
		sp.accountHand = accountAPI.NewHandler(accountAPI.HandlerDeps{
			Ledger:       sp.LedgerService(ctx),
			CreditsPerPi: sp.PiCfg().CreditsPerPi(),
		})
	}
	return sp.accountHand
}

func (sp *ServiceProvider) CascadeHandler(ctx context.Context) *cascadeAPI.Handler {
	if sp.cascadeHand == nil {
		sp.cascadeHand = cascadeAPI.NewHandler(cascadeAPI.HandlerDeps{Serv: sp.CascadeService(ctx)})
	}
	return sp.cascadeHand
}

func (sp *ServiceProvider) PaymentHandler(ctx context.Context) *paymentAPI.Handler {
	if sp.paymentHand == nil {
		sp.paymentHand = paymentAPI.NewHandler(paymentAPI.HandlerDeps{
			Serv:         sp.PaymentService(ctx),
			Ledger:       sp.LedgerService(ctx),
			CreditsPerPi: sp.PiCfg().CreditsPerPi(),
		})
	}
	return sp.paymentHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		r.Use(chimw.RequestID)
		r.Use(chimw.RealIP)
		r.Use(chimw.Recoverer)
		r.Use(metrics.Middleware)

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   sp.HTTPCfg().CORSOrigins(),
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		r.Get("/health", health.Health)
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())

		authHandler := sp.AuthHandler(ctx)
		accountHandler := sp.AccountHandler(ctx)
		cascadeHandler := sp.CascadeHandler(ctx)
		paymentHandler := sp.PaymentHandler(ctx)

		r.Route("/api", func(rr chi.Router) {
			rr.Use(middleware.RequestLogger())

			rr.Post("/auth/verify", authHandler.Verify)

			// Остальное только с JWT из /auth/verify
			rr.Group(func(pr chi.Router) {
				pr.Use(middleware.Auth(sp.JWTCfg()))

				pr.Get("/balance", accountHandler.Balance)
				pr.Get("/ledger", accountHandler.Ledger)

				pr.Post("/spin", cascadeHandler.Spin)
				pr.Post("/bonus/pick", cascadeHandler.BonusPick)

				pr.Post("/payments/{paymentId}/approve", paymentHandler.Approve)
				pr.Post("/payments/{paymentId}/complete", paymentHandler.Complete)
			})
		})

		sp.router = r
	}

	return sp.router
}

// Close освобождает пул соединений, если он был открыт
func (sp *ServiceProvider) Close() {
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
}
