package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/roach88/fbxport/internal/journal"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Journal string
	Limit   int
	Path    string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded exports",
		Long: `List exports recorded in the SQLite journal, newest first.

The journal path comes from --journal or the config file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Journal, "journal", "", "SQLite journal to read")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "maximum number of entries (0 for all)")
	cmd.Flags().StringVar(&opts.Path, "path", "", "only list exports to this destination")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	formatter := opts.formatter(cmd)

	cfg, err := opts.loadConfig()
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeConfig, err.Error(), err)
	}
	path := cfg.Journal
	if opts.Journal != "" {
		path = opts.Journal
	}
	if path == "" {
		return formatter.fail(ExitCommandError, ErrCodeJournal, "no journal: pass --journal or set journal in the config file", nil)
	}

	// SQLite needs a real file, so the journal is always on the OS filesystem.
	exists, err := afero.Exists(afero.NewOsFs(), path)
	if err != nil || !exists {
		return formatter.fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("journal not found: %s", path), err)
	}

	store, err := journal.Open(path)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeJournal, fmt.Sprintf("open journal %s", path), err)
	}
	defer store.Close()

	var entries []journal.Entry
	if opts.Path != "" {
		entries, err = store.ForPath(cmd.Context(), opts.Path)
		if err == nil && opts.Limit > 0 && len(entries) > opts.Limit {
			entries = entries[:opts.Limit]
		}
	} else {
		entries, err = store.List(cmd.Context(), opts.Limit)
	}
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeJournal, "read journal", err)
	}

	if formatter.Format == "json" {
		if entries == nil {
			entries = []journal.Entry{}
		}
		return formatter.Success(entries)
	}

	if len(entries) == 0 {
		return formatter.Success("no exports recorded")
	}
	tw := tabwriter.NewWriter(formatter.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tSIZE\tXXH64\tPATH")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", e.ID, e.CreatedAt.Format(time.RFC3339), e.Size, e.Checksum, e.Path)
	}
	return tw.Flush()
}
