package cmd

import (
	"github.com/crmvibe/crmdash/internal/api"
	"github.com/crmvibe/crmdash/internal/config"
	"github.com/crmvibe/crmdash/internal/errors"
	"github.com/crmvibe/crmdash/internal/guard"
	"github.com/crmvibe/crmdash/internal/log"
	"github.com/crmvibe/crmdash/internal/session"
)

// app wires the config, logger, session manager, and API client together
// for one command invocation. The session manager is an injected instance
// handed to every collaborator, never ambient global state.
type app struct {
	cfg      *config.Config
	logger   *log.Logger
	sessions *session.Manager
	client   *api.Client
}

// newApp builds the application stack and resolves the one-shot session
// load, so commands can rely on the manager being past its loading state.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logCfg := log.Config{
		Level:  log.ParseLevel(cfg.Logging.Level),
		Format: log.ParseFormat(cfg.Logging.Format),
		Output: log.OutputStderr(),
	}
	if verboseLogging {
		logCfg.Level = log.LevelDebug
	}
	logger := log.New(logCfg)
	log.SetDefaultLogger(logger)

	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}

	store := session.NewFileStore(dir)
	client := api.NewClient(cfg.APIBase(), logger)
	sessions := session.NewManager(store, client, logger)
	client.BindSession(sessions)

	sessions.Start()

	return &app{
		cfg:      cfg,
		logger:   logger,
		sessions: sessions,
		client:   client,
	}, nil
}

// customersRoute is the guarded route declaration for the customer views
func (a *app) customersRoute() guard.Route {
	return guard.Route{Name: "customers", AllowEmail: a.cfg.Access.CustomersEmail}
}

// requireRoute is the CLI analog of the dashboard's route guard: a
// redirect to login becomes a not-logged-in error, a redirect home
// becomes a forbidden error.
func (a *app) requireRoute(route guard.Route) error {
	sess, _ := a.sessions.Current()

	switch guard.Evaluate(a.sessions.State(), sess, route).Decision {
	case guard.DecisionRender:
		return nil
	case guard.DecisionRedirectLogin:
		return errors.NewNotLoggedInError()
	case guard.DecisionRedirectHome:
		return errors.New(errors.ErrCodeAuthForbidden,
			"your account is not authorized to view "+route.Name)
	default:
		// The manager resolves its load in newApp, so the guard can
		// never still be pending here.
		return errors.NewNotLoggedInError()
	}
}
