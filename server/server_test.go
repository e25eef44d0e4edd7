package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"HospitalHub/config"
	"HospitalHub/db"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:        "0",
		GinMode:     gin.TestMode,
		StoreDriver: config.StoreDriverMemory,
		JWT:         config.JWTConfig{Secret: "server-secret", TTL: time.Hour, Issuer: "hospitalhub-test"},
		Login:       config.LoginConfig{MaxFailures: 3, FailureWindow: time.Minute, RatePerSecond: 10, RateBurst: 10},
		BcryptCost:  4,
	}
}

func TestGetDefaultOptions(t *testing.T) {
	cfg := testConfig()
	opts := GetDefaultOptions(cfg)
	assert.False(t, opts.MongoEnabled)
	assert.False(t, opts.CacheEnabled)
	assert.False(t, opts.MigrationEnabled)
	assert.True(t, opts.WebServerEnabled)

	cfg.StoreDriver = config.StoreDriverMongo
	cfg.RedisAddr = "localhost:6379"
	cfg.MigrationsEnabled = true
	opts = GetDefaultOptions(cfg)
	assert.True(t, opts.MongoEnabled)
	assert.True(t, opts.CacheEnabled)
	assert.True(t, opts.MigrationEnabled)
}

func TestBuildWithMemoryStore(t *testing.T) {
	rt, err := Build(context.Background(), GetDefaultOptions(testConfig()))
	require.NoError(t, err)
	defer rt.Close(context.Background())

	assert.IsType(t, &db.MemoryStore{}, rt.Store)
	assert.NotNil(t, rt.Service)
	assert.Nil(t, rt.Redis)
}

func TestBuildWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.RedisAddr = mr.Addr()

	rt, err := Build(context.Background(), GetDefaultOptions(cfg))
	require.NoError(t, err)
	require.NotNil(t, rt.Redis)
	assert.NoError(t, rt.Redis.Ping(context.Background()).Err())
	rt.Close(context.Background())
}

func TestBuildFailsOnUnreachableRedis(t *testing.T) {
	cfg := testConfig()
	cfg.RedisAddr = "127.0.0.1:1"
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := Build(ctx, GetDefaultOptions(cfg))
	assert.Error(t, err)
}

func TestBuildRequiresConfig(t *testing.T) {
	_, err := Build(context.Background(), Options{})
	assert.Error(t, err)
}

func TestNewEngineRunsPreHandler(t *testing.T) {
	opts := GetDefaultOptions(testConfig())
	rt, err := Build(context.Background(), opts)
	require.NoError(t, err)

	called := false
	opts.WebServerPreHandler = func(r *gin.Engine, got *Runtime) {
		called = true
		assert.Same(t, rt, got)
		r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	}
	r := NewEngine(opts, rt)
	assert.True(t, called)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
