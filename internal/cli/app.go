package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/domain"
	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/infra/config"
	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/infra/exporthttp"
	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/infra/filesaver"
	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/infra/historystore"
	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/infra/httpclient"
	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/infra/logger"
	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/infra/workspacefinder"
	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/ports"
	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/usecase"
)

// stdoutTarget sends the document to stdout instead of a directory.
const stdoutTarget = "-"

type appCtx struct {
	root    string
	cfgPath string
	cfg     domain.Config

	client  *exporthttp.Client
	history *historystore.JSONLStore
	log     *slog.Logger

	cleanup func() error
}

func loadApp(g *globalFlags, diag io.Writer) (*appCtx, error) {
	root, cfgPath, cfg, err := resolveConfig(g.configPath)
	if err != nil {
		return nil, err
	}

	cfg = config.ApplyEnv(cfg, os.Getenv)
	if s := strings.TrimSpace(g.server); s != "" {
		cfg.Server.BaseURL = s
	}

	cleanup, _ := logger.Setup(logger.Config{
		Dir:   stateDir(root, cfg),
		Debug: g.debug,
	})
	if g.debug {
		if err := logger.IsReady(); err != nil {
			fmt.Fprintf(diag, "debug: file logging unavailable: %v\n", err)
		} else {
			fmt.Fprintf(diag, "debug: logging to %s\n", logger.Path())
		}
	}
	log := logger.L()
	log.Debug("config.resolved",
		"root", root,
		"config", cfgPath,
		"server", cfg.Server.BaseURL,
		"timeout", cfg.HTTP.Timeout.String(),
	)

	exec := httpclient.NewExecutor(httpclient.WithTimeout(cfg.HTTP.Timeout))
	app := &appCtx{
		root:    root,
		cfgPath: cfgPath,
		cfg:     cfg,
		client:  exporthttp.New(cfg.Server.BaseURL, exporthttp.WithExecutor(exec), exporthttp.WithLogger(log)),
		log:     log,
		cleanup: cleanup,
	}
	if cfg.History.Enabled {
		app.history = historystore.NewJSONLStore(root, cfg)
	}
	return app, nil
}

// resolveConfig honours --config, then the nearest gs1dm config upward from
// the working directory, then the built-in defaults rooted at the working
// directory.
func resolveConfig(configFlag string) (string, string, domain.Config, error) {
	if p := strings.TrimSpace(configFlag); p != "" {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", "", domain.Config{}, fmt.Errorf("invalid config path: %w", err)
		}
		cfg, err := config.Load(abs)
		if err != nil {
			return "", "", domain.Config{}, err
		}
		return filepath.Dir(abs), abs, cfg, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", "", domain.Config{}, fmt.Errorf("get working directory: %w", err)
	}

	root, err := workspacefinder.NewFinder().FindRoot(wd)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return wd, "", domain.DefaultConfig(), nil
		}
		return "", "", domain.Config{}, err
	}

	cfg, path, err := config.LoadDir(root)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", "", domain.Config{}, err
	}
	return root, path, cfg, nil
}

func stateDir(root string, cfg domain.Config) string {
	if filepath.IsAbs(cfg.StateDir) {
		return cfg.StateDir
	}
	return filepath.Join(root, cfg.StateDir)
}

// saver picks where exported documents go. Relative output dirs resolve
// against the working directory, like any other CLI path.
func (a *appCtx) saver(out string, open, overwrite bool, stdout io.Writer) ports.FileSaver {
	if strings.TrimSpace(out) == stdoutTarget {
		return filesaver.NewWriterSaver(stdout)
	}

	var s ports.FileSaver = filesaver.NewDirSaver(out, filesaver.WithOverwrite(overwrite))
	if open {
		s = filesaver.NewBrowserSaver(s, a.log)
	}
	return s
}

func (a *appCtx) historyStore() ports.HistoryStore {
	if a.history == nil {
		return nil
	}
	return a.history
}

func (a *appCtx) requestExport(saver ports.FileSaver) *usecase.RequestExport {
	return usecase.NewRequestExport(a.client, saver,
		usecase.WithHistory(a.historyStore()),
		usecase.WithLogger(a.log),
	)
}

func (a *appCtx) close() {
	if a.cleanup != nil {
		_ = a.cleanup()
	}
}

// formatOrDefault parses a --format flag, falling back to the configured default.
func formatOrDefault(flag string, def domain.Format) (domain.Format, error) {
	if strings.TrimSpace(flag) == "" {
		return def.Normalize(), nil
	}
	return domain.ParseFormat(flag)
}
