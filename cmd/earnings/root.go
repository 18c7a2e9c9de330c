package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/earnings-analyst/internal/analysis"
	"github.com/bryanwahyu/earnings-analyst/internal/config"
	"github.com/bryanwahyu/earnings-analyst/internal/infra/dataset"
	"github.com/bryanwahyu/earnings-analyst/internal/shell"
)

type rootOptions struct {
	configPath string
	offline    bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	// path config.yaml
	defaultPath := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}

	root := &cobra.Command{
		Use:          "earnings",
		Short:        "Answer questions about freelancer earnings",
		Long:         "Routes natural-language questions about the freelancer earnings dataset to one of eight fixed analyses.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", defaultPath, "path to config.yaml (env CONFIG_PATH)")
	root.PersistentFlags().BoolVar(&opts.offline, "offline", false, "skip the language model and use keyword rules only")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at the configured level in interactive commands")

	root.AddCommand(
		newShellCmd(opts),
		newAskCmd(opts),
		newServeCmd(opts),
		newCommandsCmd(),
		newDatasetCmd(opts),
	)
	return root
}

// interactiveLogger keeps shell and ask output readable: warnings only
// unless --verbose.
func interactiveLogger(cfg *config.Config, verbose bool) *slog.Logger {
	level := cfg.Log.Level
	if !verbose {
		level = "warn"
	}
	return newLogger(os.Stderr, level, cfg.Log.Format)
}

func newShellCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive question loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			a, err := newApp(ctx, cfg, interactiveLogger(cfg, opts.verbose), opts.offline, nil)
			if err != nil {
				return err
			}
			defer a.Close()
			return shell.New(a.router, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
		},
	}
}

func newAskCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a single question and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg, interactiveLogger(cfg, opts.verbose), opts.offline, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			query := strings.ToLower(strings.TrimSpace(strings.Join(args, " ")))
			ans, err := a.router.Route(cmd.Context(), query)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(ans)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), ans.Text)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the routing details as JSON")
	return cmd
}

func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the analyses a question can be routed to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, e := range analysis.NewLibrary().Entries() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-32s %s\n", e.Command, e.Description); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newDatasetCmd(opts *rootOptions) *cobra.Command {
	ds := &cobra.Command{
		Use:   "dataset",
		Short: "Manage the earnings dataset",
	}

	var key string
	push := &cobra.Command{
		Use:   "push <file.csv>",
		Short: "Check a CSV against every analysis and upload it to MinIO",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if key == "" {
				key = cfg.Dataset.Key
			}
			return pushDataset(cmd.Context(), cfg, args[0], key, cmd.OutOrStdout())
		},
	}
	push.Flags().StringVar(&key, "key", "", "object key (default dataset.key from config)")

	ds.AddCommand(push)
	return ds
}

func pushDataset(ctx context.Context, cfg *config.Config, path, key string, out io.Writer) error {
	data, err := dataset.File{Path: path}.Load(ctx)
	if err != nil {
		return err
	}
	if err := analysis.NewLibrary().Validate(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	// init minio
	store, err := newStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("minio init: %w", err)
	}
	url, err := store.Upload(ctx, path, key)
	if err != nil {
		return fmt.Errorf("upload %s: %w", path, err)
	}
	_, err = fmt.Fprintf(out, "uploaded %d rows to %s\n", data.Len(), url)
	return err
}
