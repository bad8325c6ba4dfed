// cmd/userenum/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"golang.org/x/term"

	"userenum/internal/adapters/output"
	"userenum/internal/adapters/wordlist"
	"userenum/internal/core/ports"
	"userenum/internal/core/usecases"
	"userenum/internal/platform/config"
	"userenum/internal/platform/errors"
	"userenum/internal/platform/httpclient"
	"userenum/internal/platform/logx"
	"userenum/internal/platform/ui"
	"userenum/internal/sources/gitlab"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Códigos de salida
const (
	exitOK          = 0
	exitFailure     = 1
	exitConfig      = 2
	exitInterrupted = 130
)

// plainProgressEvery es la frecuencia de la línea de progreso en modo plano.
const plainProgressEvery = 500

func main() {
	ctx, cancel := rootContextWithSignals()
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// 1. Config (flags > env > profile > defaults)
	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintln(stderr, "Try: userenum -h for help")
		return exitConfig
	}
	if cfg.PrintHelp {
		config.PrintHelp(stdout)
		return exitOK
	}
	if cfg.PrintVersion {
		config.PrintVersion(stdout, version, commit, date)
		return exitOK
	}

	// 2. Shared logger (stderr, separado de las líneas de resultado)
	logger := logx.NewWithWriter(stderr, cfg.Level())

	logger.Info("userenum starting",
		"version", version,
		"commit", commit,
		"url", cfg.BaseURL,
		"threads", cfg.Workers,
		"window", cfg.Window(),
		"profile", cfg.ConfigPath,
	)

	// 3. Presenter
	if cfg.NoColor {
		pterm.DisableColor()
	}
	presenter := newPresenter(cfg, stdout)
	defer presenter.Close()

	presenter.Start(ui.RunInfo{
		BaseURL:  cfg.BaseURL,
		Wordlist: cfg.Wordlist,
		Workers:  cfg.Workers,
		Window:   cfg.Window(),
		Timeout:  cfg.Timeout(),
		Verbose:  cfg.Verbose,
		Proxy:    cfg.ProxyURL,
		Output:   cfg.Output,
	})

	// 4. Wordlist: si no se puede abrir no se envía ningún probe
	source, err := wordlist.Open(cfg.Wordlist)
	if err != nil {
		presenter.Error(fmt.Sprintf("Failed to open wordlist: %v", err))
		logger.Err(err, "phase", "wordlist")
		return exitFailure
	}
	defer source.Close()

	// 5. Session compartida por todos los workers
	session, err := buildSession(cfg, logger)
	if err != nil {
		presenter.Error(err.Error())
		logger.Err(err, "phase", "session")
		return exitConfig
	}
	defer session.CloseIdle()

	prober := gitlab.New(session, gitlab.Options{
		BaseURL:    cfg.BaseURL,
		StrictBody: cfg.StrictBody,
		Logger:     logger,
	})

	// 6. Reporters: presenter + archivo opcional
	reporters := []ports.Reporter{presenter}
	var writer *output.ResultWriter
	if cfg.Output != "" {
		writer, err = buildWriter(cfg, logger)
		if err != nil {
			presenter.Error(err.Error())
			logger.Err(err, "phase", "output")
			return exitFailure
		}
		reporters = append(reporters, writer)
	}

	// 7. Dispatch
	dispatcher := usecases.NewDispatcher(usecases.DispatcherOptions{
		Prober:  prober,
		Workers: cfg.Workers,
		Backlog: cfg.Backlog,
		Logger:  logger,
	})

	summary, runErr := dispatcher.Run(ctx, source, usecases.FanOut(reporters...))

	presenter.Finish(summary)

	code := exitOK
	if writer != nil {
		if err := writer.Close(); err != nil {
			presenter.Error(fmt.Sprintf("Failed to write %s: %v", cfg.Output, err))
			logger.Err(err, "phase", "output")
			code = exitFailure
		} else {
			logger.Info("results written", "file", cfg.Output, "records", writer.Written())
		}
	}

	// 8. Errores de la ejecución
	switch {
	case runErr == nil:
	case errors.IsInterrupted(runErr):
		presenter.Warning("Interrupted, partial results shown above")
		code = exitInterrupted
	case errors.IsSourceUnreadable(runErr):
		presenter.Error(fmt.Sprintf("Failed to read wordlist: %v", runErr))
		logger.Err(runErr, "phase", "run")
		code = exitFailure
	default:
		logger.Err(runErr, "phase", "run")
		code = exitFailure
	}

	logger.Info("userenum finished",
		"elapsed_ms", summary.Duration.Milliseconds(),
		"submitted", summary.Submitted,
		"found", summary.Found,
		"errors", summary.Errored,
		"exit_code", code,
	)
	return code
}

// newPresenter elige la salida en vivo o la plana. Fuera de una terminal
// (pipe, archivo) siempre se usa la plana.
func newPresenter(cfg config.Config, stdout io.Writer) ui.Presenter {
	if cfg.NoProgress || !isTerminal(stdout) {
		return ui.NewRawPresenter(stdout, cfg.Verbose, plainProgressEvery)
	}
	return ui.NewPTermPresenter(stdout, cfg.Verbose)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// buildSession traduce la configuración al cliente HTTP compartido.
func buildSession(cfg config.Config, logger logx.Logger) (*httpclient.Session, error) {
	headers, err := cfg.HTTPHeaders()
	if err != nil {
		return nil, err
	}

	return httpclient.New(httpclient.Config{
		Timeout:   cfg.Timeout(),
		UserAgent: cfg.UserAgent,
		Headers:   headers,
		MaxConns:  cfg.Workers,
		ProxyURL:  cfg.ProxyURL,
		Insecure:  cfg.Insecure,
		RateLimit: cfg.Rate,
	}, logger)
}

// buildWriter abre el archivo de resultados.
func buildWriter(cfg config.Config, logger logx.Logger) (*output.ResultWriter, error) {
	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	return output.Create(cfg.Output, format, cfg.Verbose, logger)
}

// rootContextWithSignals crea el contexto raíz cancelado por SIGINT/SIGTERM.
// La función devuelta libera el handler de señales.
func rootContextWithSignals() (context.Context, context.CancelFunc) {
	base, baseCancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-ch:
			baseCancel()
		case <-base.Done():
		}
	}()

	cleanupCancel := func() {
		signal.Stop(ch)
		baseCancel()
	}

	return base, cleanupCancel
}
