package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"scamshield/internal/config"
	"scamshield/internal/domain/services"
	"scamshield/internal/i18n"
	"scamshield/internal/infrastructure/backend"
	"scamshield/internal/infrastructure/database"
	"scamshield/internal/infrastructure/database/repository"
	"scamshield/pkg/logger"
)

type globalFlags struct {
	configPath string
	backendURL string
	lang       string
	token      string
	json       bool
	offline    bool
	verbose    bool
}

// app is built once per invocation from the global flags
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	lang      i18n.Lang
	client    *backend.Client
	scans     *services.ScanService
	chat      *services.ChatService
	community *services.CommunityService
	relay     *services.RelayService
	out       printer
	closeFn   func()
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}
	a := &app{}

	root := &cobra.Command{
		Use:           "scamscan",
		Short:         "Check links, messages, screenshots and calls for scams",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context(), flags, stdout, stderr)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.close()
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default: ./config.yaml)")
	pf.StringVar(&flags.backendURL, "backend", "", "backend base URL (overrides config)")
	pf.StringVar(&flags.lang, "lang", "", "language: en, hi or mr")
	pf.StringVar(&flags.token, "token", "", "bearer token for authenticated calls")
	pf.BoolVar(&flags.json, "json", false, "print JSON instead of text")
	pf.BoolVar(&flags.offline, "offline", false, "skip the backend and analyze locally")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log backend calls to stderr")

	root.AddCommand(
		newScanCmd(a),
		newChatCmd(a),
		newTipsCmd(a),
		newCommunityCmd(a),
		newReportCmd(a),
		newFeedbackCmd(a),
		newSignupCmd(a),
		newLoginCmd(a),
		newMeCmd(a),
		newHealthCmd(a),
	)

	root.SetContext(context.Background())
	return root
}

func (a *app) init(ctx context.Context, flags *globalFlags, stdout, stderr io.Writer) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	if flags.backendURL != "" {
		cfg.Backend.BaseURL = flags.backendURL
	}
	if flags.token != "" {
		cfg.Backend.APIToken = flags.token
	}
	if flags.offline {
		cfg.Backend.Offline = true
	}

	a.log = logger.NewCLI(stderr, flags.verbose)
	a.cfg = cfg
	a.lang = i18n.Negotiate(flags.lang)
	a.out = newPrinter(stdout, flags.json, a.lang)

	var outboxStore services.OutboxStore = repository.NewMemoryOutbox()
	if cfg.Database.Enabled {
		db, err := database.NewPostgres(ctx, cfg.Database, a.log)
		if err != nil {
			a.log.Warn().Err(err).Msg("database unavailable, queued submissions will not survive this run")
		} else {
			outboxStore = repository.NewOutboxRepository(db.Pool())
			a.closeFn = db.Close
		}
	}

	a.client = backend.NewClient(cfg.Backend, a.log)
	outbox := services.NewOutbox(outboxStore, a.client, cfg.Outbox, nil, a.log)
	a.scans = services.NewScanService(a.client, nil, nil, a.log)
	a.chat = services.NewChatService(a.client, a.log)
	a.community = services.NewCommunityService(a.client, outbox, a.scans.URLAnalyzer(), a.log)
	a.relay = services.NewRelayService(a.client, outbox, a.log)
	return nil
}

func (a *app) close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

// signalContext cancels on Ctrl-C so long uploads can be abandoned
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// exactArgs is cobra.ExactArgs with a usage hint naming the argument
func exactArgs(n int, name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("%s requires %s", cmd.CommandPath(), name)
		}
		return nil
	}
}
