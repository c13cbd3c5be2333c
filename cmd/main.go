package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/Akashdeep-Patra/diffpane/internal/app"
	"github.com/Akashdeep-Patra/diffpane/internal/common"
	"github.com/Akashdeep-Patra/diffpane/internal/config"
	"github.com/Akashdeep-Patra/diffpane/internal/git"
	"github.com/Akashdeep-Patra/diffpane/internal/ui"
	"github.com/Akashdeep-Patra/diffpane/internal/watcher"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags by GoReleaser / Taskfile.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	// A TUI waits on git subprocesses, fsnotify and the terminal; two OS
	// threads cover render and dispatch. An explicit GOMAXPROCS wins.
	if os.Getenv("GOMAXPROCS") == "" {
		runtime.GOMAXPROCS(min(2, runtime.NumCPU()))
	}

	debug.SetMemoryLimit(50 * 1024 * 1024) // 50 MiB
}

func main() {
	rootCmd := buildRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "diffpane:", err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "diffpane",
		Short: "Live, scrollable diff of your working tree",
		Long: `diffpane lists the changed files of a git repository and shows the
diff of the selected one in a scrollable pane.

The diff is refreshed continuously while you work; your scroll position
is kept for as long as the diff itself does not change.`,
		RunE:          runApp,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"diffpane %s\n  commit:  %s\n  built:   %s\n  go:      %s\n  os/arch: %s/%s\n",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	))

	rootCmd.AddCommand(buildVersionCmd())
	rootCmd.AddCommand(buildCompletionCmd())

	rootCmd.Flags().StringP("path", "p", ".", "Path to the git repository")
	rootCmd.Flags().String("config", "", "Config file (default ~/.config/diffpane/config.yaml)")
	rootCmd.Flags().String("log-file", "", "Write logs to this file (overrides log_file)")

	return rootCmd
}

// buildVersionCmd creates the `diffpane version` subcommand supporting --json.
func buildVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printVersion(cmd.OutOrStdout(), jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	return cmd
}

func printVersion(w io.Writer, asJSON bool) error {
	info := map[string]string{
		"version": version,
		"commit":  commit,
		"date":    date,
		"go":      runtime.Version(),
		"os":      runtime.GOOS,
		"arch":    runtime.GOARCH,
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	_, err := fmt.Fprintf(w, "diffpane %s\n  commit:  %s\n  built:   %s\n  go:      %s\n  os/arch: %s/%s\n",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return err
}

// buildCompletionCmd creates the `diffpane completion` subcommand for shell completions.
func buildCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for diffpane.

Examples:
  # Bash (add to ~/.bashrc)
  diffpane completion bash > /etc/bash_completion.d/diffpane

  # Zsh (add to ~/.zshrc before compinit)
  diffpane completion zsh > "${fpath[1]}/_diffpane"

  # Fish
  diffpane completion fish > ~/.config/fish/completions/diffpane.fish

  # PowerShell
  diffpane completion powershell > diffpane.ps1`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}

	return cmd
}

// newLogger opens path for appending and returns a JSON logger writing to
// it. An empty path discards all records.
func newLogger(path, level string) (*slog.Logger, func() error, error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() error { return nil }, nil
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, nil, fmt.Errorf("parsing log level %q: %w", level, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: lvl}))
	return logger, f.Close, nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	repoPath, _ := cmd.Flags().GetString("path")
	cfgFile, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile, _ = cmd.Flags().GetString("log-file")
	}

	logger, closeLog, err := newLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	cliSvc, err := git.NewCLIService(repoPath, logger)
	if err != nil {
		return fmt.Errorf("opening repository: %w", err)
	}

	// The TTL cache deduplicates git calls within one refresh cycle.
	gitSvc := git.NewCachedService(cliSvc, cfg.CacheTTL)

	theme, _ := ui.ThemeByName(cfg.Theme)
	styles := ui.NewStyles(theme)

	logger.Info("starting",
		"version", version,
		"repo", cliSvc.RepoRoot(),
		"theme", cfg.Theme,
		"refresh", cfg.RefreshInterval)

	model := app.New(gitSvc, cfg, styles, logger)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Only .git internals are watched; working tree edits are picked up by polling.
	if cfg.Watch {
		w, watchErr := watcher.New(cliSvc.GitDir(), cfg.WatchDebounce, logger)
		if watchErr != nil {
			logger.Warn("watcher disabled", "err", watchErr)
		} else {
			defer func() { _ = w.Close() }()
			go func() {
				for range w.Events() {
					p.Send(common.RefreshMsg{})
				}
			}()
		}
	}

	_, err = p.Run()
	return err
}
