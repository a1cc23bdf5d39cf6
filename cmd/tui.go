package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Laisky/errors/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"hubgrip/internal/config"
	"hubgrip/internal/eventbus"
	"hubgrip/internal/history"
	"hubgrip/internal/install"
	"hubgrip/internal/query"
	"hubgrip/internal/ui"
)

// e2eEnv makes the TUI announce when its first frame is up
const e2eEnv = "HUBGRIP_E2E_TEST"

// TUICommand creates the interactive browser command
func TUICommand() *cli.Command {
	return &cli.Command{
		Name:      "tui",
		Usage:     "Browse packages interactively",
		ArgsUsage: "[text | query string | hub URL]",
		Flags:     TUIFlags(),
		Action:    RunTUI,
	}
}

// TUIFlags are accepted both by the tui command and the bare program
func TUIFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "purl",
			Usage: "Open the package page for a package URL (pkg:helm/bitnami/redis)",
		},
	}
}

// RunTUI starts the interactive browser
func RunTUI(ctx context.Context, c *cli.Command) error {
	start, err := startLocation(c.Args().First(), c.String("purl"))
	if err != nil {
		return err
	}

	closeLog := openLog()
	defer closeLog()

	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	prefs := config.NewPreferences(s.bus, s.configSvc, s.cfg)
	unsubscribe := prefs.Subscribe()
	defer unsubscribe()

	watcher := config.NewWatcher(s.configSvc, s.bus)
	go func() {
		if err := watcher.Run(ctx); err != nil {
			logger.Warnf("config watcher stopped: %v", err)
		}
	}()

	model := ui.NewModel(s.bus, s.cfg, s.searcher, s.client, start)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			logger.Warnf("Event channel full, dropping %s event", e.Type())
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventConfigLoaded,
		eventbus.EventConfigChanged,
		eventbus.EventSearchFailed,
		eventbus.EventError,
	} {
		defer s.bus.Subscribe(t, forward)()
	}
	if os.Getenv(e2eEnv) == "1" {
		defer s.bus.Subscribe(eventbus.EventAppReady, func(eventbus.DomainEvent) {
			fmt.Fprint(os.Stdout, "__READY__")
		})()
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case e := <-eventChan:
				p.Send(ui.EventMsg{Event: e})
			case <-done:
				return
			}
		}
	}()

	logger.Infof("starting UI at %s", start)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "run program")
	}
	logger.Infof("UI exited normally")
	return nil
}

// startLocation picks the first route. arg may be free text, a raw query
// string, a route such as /packages/search?kind=0 or a full hub URL.
func startLocation(arg, purl string) (history.Location, error) {
	if purl != "" {
		ref, err := install.ParsePURL(purl)
		if err != nil {
			return history.Location{}, err
		}
		return history.Location{Path: ref.Path()}, nil
	}

	arg = strings.TrimSpace(arg)
	switch {
	case arg == "":
		return history.Location{}, nil
	case strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://"):
		u, err := url.Parse(arg)
		if err != nil {
			return history.Location{}, errors.Wrapf(err, "parse url `%s`", arg)
		}
		return history.Location{Path: u.Path, RawQuery: u.RawQuery}, nil
	case strings.HasPrefix(arg, "/"):
		return history.ParseLocation(arg), nil
	case strings.Contains(arg, "="):
		return history.ParseLocation(query.SearchURL(query.Decode(arg))), nil
	default:
		return history.ParseLocation(query.SearchURL(query.BrowseAll().WithTextQuery(arg))), nil
	}
}
