package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/football-manager/internal/config"
	"github.com/riskibarqy/football-manager/internal/domain/inventory"
	"github.com/riskibarqy/football-manager/internal/domain/player"
	"github.com/riskibarqy/football-manager/internal/domain/squad"
	"github.com/riskibarqy/football-manager/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/football-manager/internal/infrastructure/account/jwtauth"
	repocache "github.com/riskibarqy/football-manager/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/football-manager/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-manager/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/football-manager/internal/interfaces/httpapi"
	"github.com/riskibarqy/football-manager/internal/platform/cache"
	"github.com/riskibarqy/football-manager/internal/platform/dburl"
	idgen "github.com/riskibarqy/football-manager/internal/platform/id"
	"github.com/riskibarqy/football-manager/internal/platform/logging"
	"github.com/riskibarqy/football-manager/internal/usecase"
)

// App is the wired API process. Close releases the storage handle.
type App struct {
	Server *http.Server
	db     *sqlx.DB
}

type repositories struct {
	squads    squad.Repository
	players   player.Repository
	inventory inventory.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{}
	repos, err := a.buildRepositories(ctx, cfg, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	if cfg.CacheEnabled {
		repos.players = repocache.NewPlayerRepository(repos.players, cache.NewStore[repocache.PlayerEntry](cfg.CacheTTL))
	}

	verifier, err := buildVerifier(cfg, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	squadSvc := usecase.NewSquadService(repos.squads, repos.players, idgen.NewUUIDGenerator(), cfg.LineupCheckWorkers, logger)
	inventorySvc := usecase.NewInventoryService(repos.inventory, repos.players)
	playerSvc := usecase.NewPlayerService(repos.players)

	handler := httpapi.NewHandler(squadSvc, inventorySvc, playerSvc, logger)
	router := httpapi.NewRouter(handler, verifier, logger, httpapi.RouterConfig{
		ServiceName:        cfg.ServiceName,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	a.Server = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}

	logger.Info("app wired",
		"storage_driver", cfg.StorageDriver,
		"auth_provider", cfg.AuthProvider,
		"cache_enabled", cfg.CacheEnabled,
	)
	return a, nil
}

func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("using in-memory storage", "seed_user_id", memory.DemoUserID)
		return repositories{
			squads:    memory.NewSquadRepository(),
			players:   memory.NewPlayerRepository(memory.SeedPlayers()),
			inventory: memory.NewInventoryRepository(memory.SeedInventory(memory.DemoUserID, time.Now().UTC())),
		}, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return repositories{}, err
	}
	a.db = db

	if cfg.DBSeedOnStart {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			return repositories{}, fmt.Errorf("seed database: %w", err)
		}
		logger.Info("database seed checked", "seed_user_id", memory.DemoUserID)
	}

	return repositories{
		squads:    postgres.NewSquadRepository(db),
		players:   postgres.NewPlayerRepository(db),
		inventory: postgres.NewInventoryRepository(db),
	}, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := dburl.Normalize(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dburl.Name(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func buildVerifier(cfg config.Config, logger *logging.Logger) (httpapi.TokenVerifier, error) {
	switch cfg.AuthProvider {
	case config.AuthProviderJWT:
		verifier, err := jwtauth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer)
		if err != nil {
			return nil, fmt.Errorf("build jwt verifier: %w", err)
		}
		return verifier, nil
	case config.AuthProviderAnubis:
		httpClient := &http.Client{
			Timeout:   cfg.AnubisTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
		return anubis.NewClient(httpClient, anubis.Config{
			BaseURL:        cfg.AnubisBaseURL,
			IntrospectPath: cfg.AnubisIntrospectURL,
			AdminKey:       cfg.AnubisAdminKey,
			TokenCacheTTL:  cfg.AnubisTokenCacheTTL,
			CircuitBreaker: cfg.AnubisCircuit,
		}, logger), nil
	default:
		return nil, fmt.Errorf("unsupported auth provider %q", cfg.AuthProvider)
	}
}
