package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"HospitalHub/cache"
	"HospitalHub/config"
	"HospitalHub/db"
	"HospitalHub/metrics"
	"HospitalHub/middleware"
	"HospitalHub/password"
	"HospitalHub/services"
	"HospitalHub/token"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

type Options struct {
	Config *config.Config

	CacheEnabled     bool
	MongoEnabled     bool
	WebServerEnabled bool
	WebServerPort    string

	JobsEnabled bool
	JobsHandler func(rt *Runtime)

	MigrationEnabled bool
	MigrationHandler func(ctx context.Context, rt *Runtime) error

	WebServerPreHandler func(r *gin.Engine, rt *Runtime)
}

// Runtime is everything built from Options that handlers need.
type Runtime struct {
	Config   *config.Config
	Store    db.Store
	Service  *services.Service
	Throttle *middleware.Throttle
	Mongo    *mongo.Database
	Redis    *redis.Client

	closers []func(context.Context) error
}

func GetDefaultOptions(cfg *config.Config) Options {
	return Options{
		Config:           cfg,
		CacheEnabled:     cfg.RedisAddr != "",
		MongoEnabled:     cfg.StoreDriver == config.StoreDriverMongo,
		WebServerEnabled: true,
		WebServerPort:    cfg.Port,
		JobsEnabled:      cfg.JobsEnabled,
		MigrationEnabled: cfg.MigrationsEnabled && cfg.StoreDriver == config.StoreDriverMongo,
	}
}

/*
* Connect mongo when enabled, otherwise keep accounts in memory
* Connect redis when enabled for the identity cache and login limiter
* Build the token manager and the service
 */
func Build(ctx context.Context, opts Options) (*Runtime, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New("server options require a config")
	}
	rt := &Runtime{
		Config:   cfg,
		Throttle: middleware.NewThrottle(cfg.Login.RatePerSecond, cfg.Login.RateBurst),
	}
	hasher := password.NewHasher(cfg.BcryptCost)

	if opts.MongoEnabled {
		client, database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		rt.Mongo = database
		rt.Store = db.NewMongoStore(database, hasher)
		rt.closers = append(rt.closers, client.Disconnect)
	} else {
		log.Warn("MongoDB disabled, accounts are kept in memory")
		rt.Store = db.NewMemoryStore(hasher)
	}

	deps := services.Deps{
		Store:     rt.Store,
		Hasher:    hasher,
		Bootstrap: cfg.Bootstrap,
	}
	if opts.CacheEnabled {
		client, err := cache.Connect(ctx, cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err != nil {
			rt.Close(ctx)
			return nil, err
		}
		rt.Redis = client
		rt.closers = append(rt.closers, func(context.Context) error { return client.Close() })
		deps.Cache = cache.NewRedisIdentityCache(client, cfg.IdentityCacheTTL)
		deps.Limiter = cache.NewRedisLoginLimiter(client, cfg.Login.MaxFailures, cfg.Login.FailureWindow)
	}

	tokens, err := token.NewManager(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer)
	if err != nil {
		rt.Close(ctx)
		return nil, err
	}
	deps.Tokens = tokens
	rt.Service = services.New(deps)
	if cfg.Bootstrap.Enabled() {
		log.WithField("email", cfg.Bootstrap.Email).Warn("Bootstrap super admin is enabled")
	}
	return rt, nil
}

func (rt *Runtime) Close(ctx context.Context) {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](ctx); err != nil {
			log.WithError(err).Warn("Error while closing connection")
		}
	}
	rt.closers = nil
}

// NewEngine builds the gin engine with the common middleware and lets the
// pre-handler register routes.
func NewEngine(opts Options, rt *Runtime) *gin.Engine {
	if opts.Config.GinMode != "" {
		gin.SetMode(opts.Config.GinMode)
	}
	metrics.Register()
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(), metrics.Instrument())
	if opts.WebServerPreHandler != nil {
		opts.WebServerPreHandler(r, rt)
	}
	return r
}

/*
* Build the runtime, run migrations and jobs when enabled
* Serve until SIGINT or SIGTERM, then shut down gracefully
 */
func Start(opts Options) {
	ctx := context.Background()
	rt, err := Build(ctx, opts)
	if err != nil {
		log.Fatal("Error while building server: ", err)
	}
	defer rt.Close(context.Background())

	if opts.MigrationEnabled && opts.MigrationHandler != nil {
		if err := opts.MigrationHandler(ctx, rt); err != nil {
			log.Fatal("Migration failed: ", err)
		}
	}
	if opts.JobsEnabled && opts.JobsHandler != nil {
		opts.JobsHandler(rt)
	}
	if !opts.WebServerEnabled {
		return
	}

	srv := &http.Server{
		Addr:              ":" + opts.WebServerPort,
		Handler:           NewEngine(opts, rt),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Println("Server listening on", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(fmt.Errorf("server stopped: %w", err))
		}
	case sig := <-stop:
		log.Println("Shutting down on", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Graceful shutdown failed")
		}
	}
}
