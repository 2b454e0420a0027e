package dig_container

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/masomo/apps/api/echo"
	"github.com/trezcool/masomo/core"
	"github.com/trezcool/masomo/core/catalog"
	"github.com/trezcool/masomo/core/coursework"
	"github.com/trezcool/masomo/core/school"
	"github.com/trezcool/masomo/core/user"
	logsvc "github.com/trezcool/masomo/services/logger"
	"github.com/trezcool/masomo/storage/inmem"
)

// Shutdown receives the signals the API process stops on.
type Shutdown chan os.Signal

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

// newCatalog compiles the embedded schema catalog, or the one at conf.Catalog.Path.
func newCatalog(conf *core.Config) (*catalog.Catalog, error) {
	return catalog.Open(conf.Catalog.Path)
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func newShutdown() Shutdown {
	shutdown := make(Shutdown, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	return shutdown
}

func newClassGetter(svc *school.Service) coursework.ClassGetter {
	return svc
}

type serverParams struct {
	dig.In

	Conf          *core.Config
	Logger        core.Logger
	Catalog       *catalog.Catalog
	UserSvc       *user.Service
	SchoolSvc     *school.Service
	CourseworkSvc *coursework.Service
	Registry      *prometheus.Registry
	Shutdown      Shutdown
}

func newServerOptions(p serverParams) *echoapi.Options {
	return &echoapi.Options{
		Address:        p.Conf.Server.Address,
		Debug:          p.Conf.Debug,
		TestMode:       p.Conf.TestMode,
		DisableReqLogs: p.Conf.Server.DisableReqLogs,
		ReadTimeout:    p.Conf.Server.ReadTimeout,
		WriteTimeout:   p.Conf.Server.WriteTimeout,
		Catalog:        p.Catalog,
		UserSvc:        p.UserSvc,
		SchoolSvc:      p.SchoolSvc,
		CourseworkSvc:  p.CourseworkSvc,
		Logger:         p.Logger,
		Registry:       p.Registry,
		Shutdown: func() {
			select {
			case p.Shutdown <- syscall.SIGTERM:
			default: // already shutting down
			}
		},
	}
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newCatalog))
	must(c.Provide(newRegistry))
	must(c.Provide(newShutdown))
	must(c.Provide(inmemdb.Open))
	must(c.Provide(inmemdb.NewUserRepository))
	must(c.Provide(inmemdb.NewSchoolRepository))
	must(c.Provide(inmemdb.NewCourseworkRepository))
	must(c.Provide(user.NewService))
	must(c.Provide(school.NewService))
	must(c.Provide(newClassGetter))
	must(c.Provide(coursework.NewService))
	must(c.Provide(newServerOptions))
	must(c.Provide(echoapi.NewServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
