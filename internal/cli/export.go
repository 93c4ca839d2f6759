package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/fbxport/internal/document"
	"github.com/roach88/fbxport/internal/export"
	"github.com/roach88/fbxport/internal/journal"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Overwrite bool
	Journal   string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <output.fbx>",
		Short: "Write an empty FBX 7.4 scene",
		Long: `Write a binary FBX 7.4 file holding the standard document skeleton:
header extension, file id, global settings, definitions and empty
object and connection sections.

An existing file is left untouched unless --overwrite is given.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.Overwrite, "overwrite", false, "replace an existing file")
	cmd.Flags().StringVar(&opts.Journal, "journal", "", "record the export in this SQLite journal")

	return cmd
}

func runExport(cmd *cobra.Command, opts *ExportOptions, path string) error {
	formatter := opts.formatter(cmd)
	logger := opts.logger(cmd.ErrOrStderr())

	cfg, err := opts.loadConfig()
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeConfig, err.Error(), err)
	}
	// Explicit flags win over the config file.
	if cmd.Flags().Changed("overwrite") {
		cfg.Output.Overwrite = opts.Overwrite
	}
	if cmd.Flags().Changed("journal") {
		cfg.Journal = opts.Journal
	}

	exportOpts := []export.Option{
		export.WithOverwrite(cfg.Output.Overwrite),
		export.WithLogger(logger),
	}
	if cfg.Journal != "" {
		store, err := journal.Open(cfg.Journal)
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeJournal, fmt.Sprintf("open journal %s", cfg.Journal), err)
		}
		defer store.Close()
		exportOpts = append(exportOpts, export.WithRecorder(store))
	}

	doc := document.Build(document.Options{
		App:         cfg.AppInfo(),
		DocumentURL: path,
		Now:         opts.now,
		FileIDs:     opts.fileIDs,
	})

	res, err := export.New(opts.filesystem(), exportOpts...).Export(cmd.Context(), path, doc)
	if err != nil {
		return formatter.fail(ExitFailure, ErrCodeWriteFailed, err.Error(), err)
	}

	if formatter.Format == "json" {
		return formatter.Success(res)
	}
	if res.Skipped {
		return formatter.Success(fmt.Sprintf("skipped %s: file exists (use --overwrite to replace)", res.Path))
	}
	return formatter.Success(fmt.Sprintf("exported %s (%d bytes, xxh64 %s)", res.Path, res.Size, res.Checksum))
}
