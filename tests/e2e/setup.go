//go:build e2e

// Package e2e runs the full fx graph against a throwaway PostgreSQL. One container serves
// the whole test binary; every test process gets its own database inside it.
package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bruceg7333/water-shop-api/cmd/bootstrap"
	"github.com/bruceg7333/water-shop-api/cmd/bootstrap/components"
	"github.com/bruceg7333/water-shop-api/internal/infra/db"
	"github.com/bruceg7333/water-shop-api/internal/infra/payment"
	"github.com/bruceg7333/water-shop-api/internal/pkg/config"
	"github.com/bruceg7333/water-shop-api/internal/pkg/errs"
	"github.com/bruceg7333/water-shop-api/migrations"
	"github.com/bruceg7333/water-shop-api/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"
	pgPort     = nat.Port("5432/tcp")
	pgImage    = "postgres:17"
)

var (
	pgOnce      sync.Once
	pgContainer testcontainers.Container
	pgErr       error
)

// server is the address the container publishes on the host.
type server struct {
	host string
	port string
}

func (s server) dsn(database string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", pgUser, pgPassword, s.host, s.port, database)
}

// Tuned for throughput over durability; the data lives on tmpfs and dies with the container.
func postgresRequest() testcontainers.ContainerRequest {
	return testcontainers.ContainerRequest{
		Image:        pgImage,
		ExposedPorts: []string{string(pgPort)},
		Env: map[string]string{
			"POSTGRES_USER":     pgUser,
			"POSTGRES_PASSWORD": pgPassword,
			"POSTGRES_DB":       "postgres",
			"TZ":                "Asia/Shanghai",
		},
		Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
		Cmd: []string{
			"postgres",
			"-c", "fsync=off",
			"-c", "full_page_writes=off",
			"-c", "synchronous_commit=off",
			"-c", "shared_buffers=256MB",
			"-c", "max_connections=200",
			"-c", "log_statement=none",
		},
		WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
			return server{host: host, port: port.Port()}.dsn("postgres")
		}).WithStartupTimeout(time.Minute),
		Labels: map[string]string{"app": "water-shop-api", "purpose": "e2e"},
	}
}

// startPostgres is idempotent; ryuk reaps the container when the test binary exits.
func startPostgres(t *testing.T) server {
	t.Helper()

	pgOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()
		pgContainer, pgErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: postgresRequest(),
			Started:          true,
		})
	})
	require.NoError(t, pgErr, "start postgres container")

	ctx := context.Background()
	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, pgPort)
	require.NoError(t, err)
	return server{host: host, port: port.Port()}
}

// createDatabase retries CREATE DATABASE, which fails while another process holds the
// template database.
func createDatabase(t *testing.T, srv server) config.DBConfig {
	t.Helper()

	name := "shop_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, srv.dsn("postgres"))
	require.NoError(t, err, "connect as admin")
	defer admin.Close()

	backoff := 250 * time.Millisecond
	for attempt := 1; ; attempt++ {
		_, err = admin.Exec(ctx, "CREATE DATABASE "+name)
		if err == nil || attempt == 5 {
			break
		}
		slog.Warn("create database failed, retrying", "attempt", attempt, "error", err.Error())
		time.Sleep(backoff)
		backoff = min(backoff*2, 2*time.Second)
	}
	require.NoError(t, err, "create test database")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, srv.dsn("postgres"))
		if err != nil {
			return
		}
		defer admin.Close()
		if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("drop test database", "database", name, "error", err.Error())
		}
	})

	return config.DBConfig{
		Host:     srv.host,
		Port:     srv.port,
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "Asia/Shanghai",
		MaxConns: 20,
	}
}

// migrate applies the embedded migrations in version order, the same files cmd/migrate
// hands to Atlas.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	files, err := migrations.Versioned()
	if err != nil {
		return err
	}
	for _, name := range files {
		sql, err := migrations.FS.ReadFile(name)
		if err != nil {
			return err
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return errs.Wrapf(err, "apply %s", name)
		}
	}
	return nil
}

type application struct {
	Router  *gin.Engine
	Config  config.Config
	Gateway *payment.SandboxGateway
}

// startApp assembles the production modules around the test pool and config.
func startApp(t *testing.T, pool *pgxpool.Pool, dbCfg config.DBConfig) application {
	t.Helper()

	cfg := config.NewTestConfig()
	cfg.DB = dbCfg

	var out application
	app := fx.New(
		fx.Supply(cfg, pool),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		components.RepositoryModule,
		components.PaymentModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&out.Router, &out.Config, &out.Gateway),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "start fx app")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("stop fx app", "error", err.Error())
		}
	})
	return out
}

// SharedSuite gives each e2e suite a migrated database, the wired router and the sandbox
// payment provider, which tests use to settle trades the way the real gateway would.
type SharedSuite struct {
	suite.Suite
	Router  *gin.Engine
	DB      *pgxpool.Pool
	Config  config.Config
	Gateway *payment.SandboxGateway
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	dbCfg := createDatabase(t, startPostgres(t))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	pool, cleanup, err := db.Connect(ctx, dbCfg)
	require.NoError(t, err, "connect test database")
	t.Cleanup(cleanup)

	require.NoError(t, migrate(ctx, pool), "migrate test database")
	require.NoError(t, dbtest.SeedReferenceData(pool), "seed reference data")

	app := startApp(t, pool, dbCfg)
	s.DB = pool
	s.Router = app.Router
	s.Config = app.Config
	s.Gateway = app.Gateway
}

// SetupSubTest truncates every table and reseeds the catalog.
func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "reset database")
}
