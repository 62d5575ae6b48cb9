package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/mock-interview-client/internal/app"
	"github.com/samvad-hq/mock-interview-client/internal/config"
	"github.com/samvad-hq/mock-interview-client/internal/logger"
	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "interviewctl: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

// execute runs one CLI invocation and releases the coach and logger afterwards.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	c := &cli{}
	defer c.close()

	root := c.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// cli holds the state shared by every subcommand of one invocation.
type cli struct {
	baseURL string

	cfg   *config.Config
	log   *logger.ZapLogger
	coach *app.Coach
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "interviewctl",
		Short:             "Practice job interviews against the mock-interview backend",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	root.PersistentFlags().StringVar(&c.baseURL, "base-url", "", "Backend base URL (overrides BASE_URL)")

	root.AddCommand(c.newLoginCmd())
	root.AddCommand(c.newRegisterCmd())
	root.AddCommand(c.newQuestionCmd())
	root.AddCommand(c.newFeedbackCmd())
	root.AddCommand(c.newChatCmd())
	root.AddCommand(c.newInterviewsCmd())
	root.AddCommand(c.newSessionCmd())
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	c.cfg = cfg

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	c.log = log

	coach, err := app.NewCoach(cfg, log)
	if err != nil {
		log.ErrorObj("failed to initialize coach", "error", err)
		return err
	}
	c.coach = coach

	log.DebugObj("command starting", "command", cmd.CommandPath())
	return nil
}

func (c *cli) close() {
	if c.coach != nil {
		_ = c.coach.Close()
	}
	if c.log != nil {
		_ = c.log.Close()
	}
}
