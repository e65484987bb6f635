// Package cli wires the viewer's cobra commands. The bare command opens
// the interactive viewer; subcommands cover scripted workflows like
// inspecting, rendering and assembling documents without a terminal UI.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dgallion1/freebird/internal/config"
	"github.com/dgallion1/freebird/internal/docset"
	"github.com/dgallion1/freebird/internal/engine/pdfcpueng"
	"github.com/dgallion1/freebird/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "freebird [file...]",
	Short: "A PDF viewer with page surgery and assemblies",
	Long: `Freebird opens one or more PDF files in a tabbed terminal viewer.

Pages can be deleted, reordered, and collected into assembly documents
that are built up from pages of the open files and saved as new PDFs.

Controls:
  ←/→      Change page
  /        Search, n/N to step through matches
  d        Delete page
  K/J      Move page up / down
  a        New assembly, t/T move page(s) into it
  s        Save
  q        Quit`,
	Args: cobra.ArbitraryArgs,
	RunE: runView,
}

var viewCmd = &cobra.Command{
	Use:   "view <file...>",
	Short: "Open files in the interactive viewer",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the engine-backed controller
// shared by every command.
func setup() (config.Config, *slog.Logger, *docset.Controller, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return cfg, nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	} else {
		handler = slog.NewTextHandler(os.Stderr, nil)
	}
	log := slog.New(handler)

	eng := pdfcpueng.New(cfg.WorkDir, log)
	set := docset.New(eng, log, cfg.CacheSize)
	return cfg, log, set, nil
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, log, set, err := setup()
	if err != nil {
		return err
	}
	defer set.CloseAll()

	_, errs := set.OpenAll(args)
	for _, e := range errs {
		log.Warn("skipping file", "error", e)
	}
	if len(args) > 0 && len(set.Documents()) == 0 {
		return fmt.Errorf("none of the %d files could be opened", len(args))
	}
	for _, d := range set.Documents() {
		d.SetZoom(cfg.DefaultZoom)
	}

	program := tea.NewProgram(ui.New(set, log), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}
