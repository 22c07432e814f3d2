package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fjglira/go-supportcode/internal/config"
	"github.com/fjglira/go-supportcode/internal/idgen"
	"github.com/fjglira/go-supportcode/internal/report"
	"github.com/fjglira/go-supportcode/pkg/domain"
	"github.com/fjglira/go-supportcode/pkg/supportcode"
)

func newDescribeCmd(a *app) *cobra.Command {
	var (
		projectPath string
		format      string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Build the support code library and print a summary",
		Long: `Resets a library for the project, runs every registered support code loader,
finalizes the library and prints its steps, hooks and parameter types.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.close()

			cfg, err := config.LoadOrDefault(a.cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := a.configure(cfg); err != nil {
				return fmt.Errorf("config validation failed: %w", err)
			}

			if projectPath != "" {
				cfg.Library.ProjectPath = projectPath
			}
			if format != "" {
				cfg.Report.Format = format
			}
			if output != "" {
				cfg.Report.Output = output
			}

			lib, err := a.build(cfg)
			if err != nil {
				return err
			}
			return a.writeReport(cmd.OutOrStdout(), lib, cfg.Report)
		},
	}

	cmd.Flags().StringVarP(&projectPath, "project", "p", "", "project root (overrides library.project_path)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: markdown, html or yaml (overrides report.format)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")
	return cmd
}

// build runs one reset, load, finalize cycle.
func (a *app) build(cfg *config.Config) (*supportcode.Library, error) {
	root, err := filepath.Abs(cfg.Library.ProjectPath)
	if err != nil {
		return nil, domain.NewError("config", cfg.Library.ProjectPath, 0, "failed to resolve project path", err)
	}

	builder := supportcode.New(a.log,
		supportcode.WithDefaultTimeout(cfg.Timeout()),
		supportcode.WithStrictTags(cfg.Library.StrictTags),
	)
	builder.Reset(root, idgen.NewRunID())

	a.log.Infof("Loading support code from %d loader(s)", len(a.loaders))
	for i, load := range a.loaders {
		if err := load(builder); err != nil {
			return nil, fmt.Errorf("support code loader %d failed: %w", i+1, err)
		}
	}

	return builder.Finalize(), nil
}

func (a *app) writeReport(stdout io.Writer, lib *supportcode.Library, rc config.ReportConfig) error {
	renderer, err := report.NewRenderer()
	if err != nil {
		return err
	}
	out, err := renderer.Render(lib, rc.Format)
	if err != nil {
		return err
	}

	if rc.Output == "" {
		_, err = io.WriteString(stdout, out)
		return err
	}

	a.log.Infof("Writing: %s", rc.Output)
	if err := os.WriteFile(rc.Output, []byte(out), 0644); err != nil {
		return domain.NewErrorWithSuggestion("write", rc.Output, 0,
			"failed to write report",
			"check disk space and write permissions for the output path",
			err)
	}
	return nil
}
