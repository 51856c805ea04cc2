package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/example/sanename/internal/config"
	"github.com/example/sanename/internal/rename"
	"github.com/example/sanename/internal/sanitize"
	localUI "github.com/example/sanename/internal/ui"
	"github.com/example/sanename/pkg/ui"
	"github.com/mattn/go-isatty"
	"github.com/mitchellh/go-homedir"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

type options struct {
	yes         bool
	plain       bool
	keepGoing   bool
	writeConfig bool
	collision   string
	separator   string
	allow       string
	stripPrefix string
	stripSuffix string
	configPath  string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "sanename <directory>",
		Short: "sanename gives every file in a directory a sane name",
		Long: `sanename renames every regular file in a directory to lowercase ASCII
letters, digits and "-", "_" or ".". Accented letters are transliterated,
whitespace between words becomes the separator and everything else is dropped.
The extension is only lowercased. Nothing is renamed until you confirm.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.writeConfig {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.yes, "yes", "y", false, "rename without asking for confirmation")
	flags.BoolVar(&opts.plain, "plain", false, "ask on a single line instead of the full-screen list")
	flags.BoolVar(&opts.keepGoing, "keep-going", false, "continue with the next file when a rename fails")
	flags.BoolVar(&opts.writeConfig, "write-config", false, "write the effective settings to the config file and exit")
	flags.StringVar(&opts.collision, "collision", "", "what to do when two files get the same name: fail, skip, suffix, hash or overwrite")
	flags.StringVar(&opts.separator, "separator", sanitize.DefaultSeparator, "string placed between words")
	flags.StringVar(&opts.allow, "allow", string(sanitize.DefaultAllowList), "punctuation kept besides a-z and 0-9")
	flags.StringVar(&opts.stripPrefix, "strip-prefix", "", "remove this from the start of every new name")
	flags.StringVar(&opts.stripSuffix, "strip-suffix", "", "remove this from the end of every new name, before the extension")
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/sanename/config.json)")

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, newRootCmd())
	stop()
	if code != 0 {
		os.Exit(code)
	}
}

// execute runs cmd and returns the exit code. Errors are printed to the
// command's error stream.
func execute(ctx context.Context, cmd *cobra.Command) int {
	if err := cmd.ExecuteContext(ctx); err != nil {
		ui.SetOutput(cmd.ErrOrStderr())
		ui.Error("%v", err)
		return 1
	}
	return 0
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	ui.SetOutput(cmd.OutOrStdout())

	settings, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("separator") {
		settings.Separator = opts.separator
	}
	if flags.Changed("allow") {
		settings.Allow = opts.allow
	}
	if flags.Changed("collision") {
		settings.Collision = opts.collision
	}

	if opts.writeConfig {
		return writeConfig(opts.configPath, settings)
	}

	sanitizerCfg, err := settings.SanitizerConfig()
	if err != nil {
		return err
	}
	sanitizer, err := sanitize.New(sanitizerCfg)
	if err != nil {
		return err
	}
	policy, err := settings.CollisionPolicy()
	if err != nil {
		return err
	}

	dir, err := homedir.Expand(args[0])
	if err != nil {
		return fmt.Errorf("failed to expand path: %w", err)
	}
	if dir, err = filepath.Abs(dir); err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	ui.PrintBanner()

	plan, err := rename.NewPlan(dir, rename.Options{
		Sanitizer:  sanitizer,
		Collision:  policy,
		TrimPrefix: opts.stripPrefix,
		TrimSuffix: opts.stripSuffix,
	})
	if err != nil {
		var collErr *rename.CollisionError
		if errors.As(err, &collErr) {
			for _, c := range collErr.Conflicts {
				ui.Warn("%q would become %q, which is taken by %q", c.Source, c.Target, c.Holder)
			}
			return fmt.Errorf("%w: %d conflicts, nothing renamed (see --collision)", rename.ErrCollision, len(collErr.Conflicts))
		}
		return err
	}

	ui.Info("Found %d files in %s", len(plan.Entries), dir)
	localUI.PrintPlan(plan)

	pending := plan.Pending()
	if pending == 0 {
		ui.Success("Nothing to rename.")
		return nil
	}

	if !opts.yes {
		ok, err := confirm(cmd, opts, plan)
		if err != nil {
			return err
		}
		if !ok {
			ui.Info("Aborting")
			return nil
		}
	}

	bar := progressbar.NewOptions(pending,
		progressbar.OptionSetWriter(ui.Output()),
		progressbar.OptionSetDescription("renaming"),
		progressbar.OptionShowCount(),
	)

	applyOpts := rename.ApplyOptions{
		KeepGoing: opts.keepGoing,
		OnProgress: func(rename.Entry) {
			bar.Add(1)
		},
	}
	if opts.keepGoing {
		applyOpts.OnError = func(e rename.Entry, err error) {
			ui.Error("Could not rename %q: %v", e.From, err)
		}
	}

	res, err := rename.Apply(cmd.Context(), plan, applyOpts)
	fmt.Fprintln(ui.Output()) // Newline after progress bar
	if err != nil {
		return fmt.Errorf("stopped after renaming %d of %d files: %w", res.Renamed, pending, err)
	}
	if len(res.Failures) > 0 {
		return fmt.Errorf("renamed %d of %d files, %d failed", res.Renamed, pending, len(res.Failures))
	}

	ui.Success("Done, renamed %d files.", res.Renamed)
	return nil
}

func confirm(cmd *cobra.Command, opts *options, plan *rename.Plan) (bool, error) {
	in, out := cmd.InOrStdin(), cmd.OutOrStdout()
	if !opts.plain && isTerminal(in) && isTerminal(out) {
		return localUI.RunConfirm(plan, in, out)
	}
	return localUI.PromptConfirm(plan.Pending(), in), nil
}

func isTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func writeConfig(path string, settings config.Settings) error {
	resolved, err := config.ResolvePath(path)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}
	if _, err := settings.SanitizerConfig(); err != nil {
		return err
	}
	if _, err := settings.CollisionPolicy(); err != nil {
		return err
	}

	if err := config.Save(resolved, settings); err != nil {
		return err
	}
	ui.Success("Wrote settings to %s", resolved)
	return nil
}
