package di

import (
	"context"
	"log"
	"path/filepath"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoportal "github.com/AhmedMostafa129/Mahd/apps/portal/echo"
	"github.com/AhmedMostafa129/Mahd/core"
	"github.com/AhmedMostafa129/Mahd/core/api"
	"github.com/AhmedMostafa129/Mahd/core/auth"
	"github.com/AhmedMostafa129/Mahd/core/lms"
	"github.com/AhmedMostafa129/Mahd/core/session"
	logsvc "github.com/AhmedMostafa129/Mahd/services/logger"
	"github.com/AhmedMostafa129/Mahd/storage/database"
	filestore "github.com/AhmedMostafa129/Mahd/storage/sessionstore/file"
	redisstore "github.com/AhmedMostafa129/Mahd/storage/sessionstore/redis"
	sqlxstore "github.com/AhmedMostafa129/Mahd/storage/sessionstore/sqlx"
)

const (
	connectTimeout = 30 * time.Second
	pruneInterval  = time.Hour
)

// SessionBackend is the storage shared by every browser session, along with what it holds open.
type SessionBackend struct {
	Storage session.Storage

	sqlStore *sqlxstore.Storage
	closers  []func() error
}

func newSessionBackend(conf *core.Config, logger core.Logger) (*SessionBackend, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	switch conf.Session.Backend {
	case core.SessionBackendMemory, "":
		return &SessionBackend{Storage: session.NewMemoryStorage()}, nil

	case core.SessionBackendFile:
		return &SessionBackend{Storage: filestore.New(filepath.Join(conf.Session.FileDir, "sessions.json"))}, nil

	case core.SessionBackendRedis:
		client, err := redisstore.Connect(ctx, conf.Redis)
		if err != nil {
			return nil, err
		}
		return &SessionBackend{
			Storage: redisstore.New(client, conf.Session.CookieTTL),
			closers: []func() error{client.Close},
		}, nil

	case core.SessionBackendPostgres:
		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		store := sqlxstore.New(db)
		return &SessionBackend{Storage: store, sqlStore: store, closers: []func() error{db.Close}}, nil

	default:
		return nil, errors.Errorf("unknown session backend %q", conf.Session.Backend)
	}
}

// RunPruner deletes expired session rows every hour until ctx is done. Only the postgres backend
// needs it: redis keys expire on their own and the other backends are not shared.
func (b *SessionBackend) RunPruner(ctx context.Context, maxAge time.Duration, logger core.Logger) {
	if b.sqlStore == nil {
		return
	}
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := b.sqlStore.Prune(ctx, maxAge)
			if err != nil {
				logger.Error("pruning sessions", err)
				continue
			}
			logger.Debug("pruned sessions", "rows", n)
		}
	}
}

func (b *SessionBackend) Close() error {
	var firstErr error
	for _, fn := range b.closers {
		if err := fn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func newTransport(conf *core.Config, logger core.Logger, metrics *echoportal.Metrics) *api.Transport {
	return &api.Transport{
		DeviceID:   conf.DeviceID,
		Logger:     logger,
		Production: conf.IsProduction(),
		Observe:    metrics.ObserveUpstream,
	}
}

func newAPIClient(conf *core.Config, transport *api.Transport) *api.Client {
	return api.NewClient(conf.API.BaseURL, api.NewHTTPClient(transport, conf.API.Timeout))
}

func newLMSServices(client *api.Client) *lms.Services {
	return lms.NewServices(client)
}

type ServerParams struct {
	dig.In

	Conf       *core.Config
	Logger     core.Logger
	Backend    *SessionBackend
	Auth       *auth.Service
	LMS        *lms.Services
	Validate   *validator.Validate
	Translator ut.Translator
	Metrics    *echoportal.Metrics
}

func newServerOptions(p ServerParams) *echoportal.Options {
	return &echoportal.Options{
		Address:        p.Conf.Server.Address,
		Debug:          p.Conf.Debug,
		TestMode:       p.Conf.TestMode,
		DisableReqLogs: p.Conf.Server.DisableReqLogs,
		CookieName:     p.Conf.Session.CookieName,
		CookieTTL:      p.Conf.Session.CookieTTL,
		SecureCookie:   p.Conf.IsProduction(),
		Storage:        p.Backend.Storage,
		Auth:           p.Auth,
		LMS:            p.LMS,
		Validate:       p.Validate,
		Translator:     p.Translator,
		Logger:         p.Logger,
		Metrics:        p.Metrics,
	}
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(logsvc.New))
	must(c.Provide(core.NewValidator))
	must(c.Provide(echoportal.NewMetrics))
	must(c.Provide(newTransport))
	must(c.Provide(newAPIClient))
	must(c.Provide(auth.NewService))
	must(c.Provide(newLMSServices))
	must(c.Provide(newSessionBackend))
	must(c.Provide(newServerOptions))
	must(c.Provide(echoportal.NewServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
