package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"sld/analysis"
	"sld/config"
	"sld/connect"
	"sld/editor"
	"sld/export"
	"sld/importer"
	"sld/schematic"
	"sld/store"
	"sld/tui"
	"sld/validate"
)

func main() {
	var (
		interactive = flag.Bool("i", false, "Interactive TUI mode")
		configPath  = flag.String("config", defaultConfigPath(), "Configuration file")
		dbPath      = flag.String("db", "", "Snapshot database (overrides config)")
		runValidate = flag.Bool("validate", false, "Validate a project backup and exit")
		analyze     = flag.Bool("analyze", false, "Send the first page to the analysis service and exit")
		format      = flag.String("format", "ascii", "Export format: json, csv, ascii, svg, png")
		outputFile  = flag.String("o", "", "Output file (default: stdout)")
		importFile  = flag.String("import", "", "Import a JSON backup into the snapshot database")
		pageIndex   = flag.Int("page", 0, "Page to export (0-based)")
		verbose     = flag.Bool("v", false, "Debug logging")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [project.json]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "A single-line diagram editor for electrical distribution schematics.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                          # Open the stored projects in the TUI\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s project.json             # Render a backup to stdout\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -format svg -o out.svg project.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -validate project.json   # Check a backup for defects\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -import project.json     # Add a backup to the database\n", os.Args[0])
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("loading config: %v", err)
	}
	if *dbPath != "" {
		cfg.Storage.Path = *dbPath
	}

	filename := ""
	if args := flag.Args(); len(args) > 0 {
		filename = args[0]
	}

	switch {
	case *runValidate:
		if filename == "" {
			fatal("-validate requires a project file")
		}
		project := mustImport(filename)
		errors := validate.NewValidator().ValidateProject(project)
		fmt.Print(validate.Report(errors))
		if len(errors) > 0 {
			os.Exit(1)
		}
	case *importFile != "":
		importIntoStore(cfg, *importFile, logger)
	case *analyze:
		if filename == "" {
			fatal("-analyze requires a project file")
		}
		project := mustImport(filename)
		client := analysis.NewClient(cfg.Analysis.URL, cfg.AnalysisTimeout(), logger)
		report := client.Analyze(context.Background(), project.Pages[0])
		fmt.Printf("%s: %s\n", report.Status, report.Summary)
		for _, issue := range report.Issues {
			fmt.Printf("  issue: %s\n", issue)
		}
		for _, rec := range report.Recommendations {
			fmt.Printf("  recommend: %s\n", rec)
		}
	case filename != "" && !*interactive:
		exportProject(filename, *format, *outputFile, *pageIndex)
	default:
		runTUI(cfg, filename, logger)
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "sld.yaml"
	}
	return filepath.Join(home, ".sld", "config.yaml")
}

func mustImport(filename string) *schematic.Project {
	data, err := os.ReadFile(filename)
	if err != nil {
		fatal("reading %s: %v", filename, err)
	}
	project, err := importer.Project(data)
	if err != nil {
		fatal("importing %s: %v", filename, err)
	}
	return project
}

func exportProject(filename, formatName, outputFile string, pageIndex int) {
	project := mustImport(filename)
	format, err := export.ParseFormat(formatName)
	if err != nil {
		fatal("%v (available: %v)", err, export.AvailableFormats())
	}
	exporter, err := export.NewExporter(format)
	if err != nil {
		fatal("%v", err)
	}
	if pageIndex < 0 || pageIndex >= len(project.Pages) {
		fatal("page %d out of range, project has %d page(s)", pageIndex, len(project.Pages))
	}
	data, err := exporter.Export(project, project.Pages[pageIndex])
	if err != nil {
		fatal("exporting: %v", err)
	}
	if outputFile == "" {
		if format == export.FormatPNG {
			fatal("png export requires -o")
		}
		fmt.Print(string(data))
		return
	}
	if err := os.WriteFile(outputFile, data, 0o644); err != nil {
		fatal("writing %s: %v", outputFile, err)
	}
	fmt.Printf("Exported %s to %s\n", exporter.FormatName(), outputFile)
}

func importIntoStore(cfg *config.Config, filename string, logger *slog.Logger) {
	project := mustImport(filename)
	st, err := store.Open(cfg.Storage.Path, logger)
	if err != nil {
		fatal("opening store: %v", err)
	}
	defer st.Close()
	projects, err := st.Load()
	if err != nil {
		fatal("loading projects: %v", err)
	}
	projects = importer.Merge(projects, project)
	if err := st.Save(projects); err != nil {
		fatal("saving projects: %v", err)
	}
	fmt.Printf("Imported %q (%d page(s))\n", project.Name, len(project.Pages))
}

func runTUI(cfg *config.Config, filename string, logger *slog.Logger) {
	var st *store.Store
	var projects []*schematic.Project
	var err error

	if filename != "" {
		// Ephemeral session over a backup file, nothing persisted.
		projects = []*schematic.Project{mustImport(filename)}
	} else {
		st, err = store.Open(cfg.Storage.Path, logger)
		if err != nil {
			fatal("opening store: %v", err)
		}
		defer st.Close()
		projects, err = st.Load()
		if err != nil {
			fatal("loading projects: %v", err)
		}
	}

	ed := editor.New(projects, cfg.History.Capacity, connect.Guard{})
	var client *analysis.Client
	if cfg.Analysis.URL != "" {
		client = analysis.NewClient(cfg.Analysis.URL, cfg.AnalysisTimeout(), logger)
	}
	app := tui.NewApp(ed, cfg, st, client, logger)
	if err := app.Run(); err != nil {
		fatal("%v", err)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
