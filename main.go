package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/kumar0311chandan/company-org-analyzer/internal/audit"
	"github.com/kumar0311chandan/company-org-analyzer/internal/config"
	"github.com/kumar0311chandan/company-org-analyzer/internal/model"
	"github.com/kumar0311chandan/company-org-analyzer/internal/tui"
	"github.com/kumar0311chandan/company-org-analyzer/internal/web"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultInput = "employees.csv"

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "kumar0311chandan",
		Repository: "company-org-analyzer",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Println("👉 Download it from https://github.com/kumar0311chandan/company-org-analyzer/releases")
	} else {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: orgaudit [options] [employees.csv]\n\n")
		fmt.Fprintf(os.Stderr, "orgaudit audits an employee CSV as an organization chart.\n")
		fmt.Fprintf(os.Stderr, "It reports managers paid outside their compensation band, reporting lines\n")
		fmt.Fprintf(os.Stderr, "that are too long, and broken, duplicate or circular manager references.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  orgaudit staff.csv              # Print the report to stdout\n")
		fmt.Fprintf(os.Stderr, "  orgaudit -o r.txt staff.csv     # Save report to file\n")
		fmt.Fprintf(os.Stderr, "  orgaudit --json staff.csv       # Output analysis as JSON\n")
		fmt.Fprintf(os.Stderr, "  orgaudit --tui staff.csv        # Browse findings interactively\n")
		fmt.Fprintf(os.Stderr, "  orgaudit --max-depth 6 staff.csv\n")
	}

	jsonFlag := pflag.BoolP("json", "j", false, "Output raw analysis data as JSON")
	reportFlag := pflag.BoolP("report", "r", false, "Print the text report (default mode)")
	tuiFlag := pflag.BoolP("tui", "t", false, "Browse findings in an interactive terminal UI")
	outputFlag := pflag.StringP("output", "o", "", "Save report to the specified file")
	verboseFlag := pflag.BoolP("verbose", "v", false, "Debug logging and internal data in the report")
	webFlag := pflag.BoolP("web", "w", false, "Start Web Mode")
	addrFlag := pflag.String("addr", ":8080", "Listen address for Web Mode")
	configFlag := pflag.StringP("config", "c", "", "Policy file (YAML)")
	maxDepthFlag := pflag.Int("max-depth", config.DefaultMaxDepth, "Maximum reporting line depth below the CEO")
	minMultFlag := pflag.Float64("min-multiplier", config.DefaultMinMultiplier, "Lower band multiplier of the direct reports' average salary")
	maxMultFlag := pflag.Float64("max-multiplier", config.DefaultMaxMultiplier, "Upper band multiplier of the direct reports' average salary")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("orgaudit version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	logger, err := newLogger(*verboseFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	policy, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	// Flags given explicitly win over file and environment.
	if pflag.Lookup("max-depth").Changed {
		policy.MaxDepth = *maxDepthFlag
	}
	if pflag.Lookup("min-multiplier").Changed {
		policy.MinMultiplier = *minMultFlag
	}
	if pflag.Lookup("max-multiplier").Changed {
		policy.MaxMultiplier = *maxMultFlag
	}
	if err := policy.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	input := defaultInput
	if pflag.NArg() > 0 {
		input = pflag.Arg(0)
	}
	if _, err := os.Stat(input); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "%s not found.\n", input)
		} else {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", input, err)
		}
		os.Exit(1)
	}

	if *webFlag {
		if err := web.StartServer(*addrFlag, web.NewServer(input, policy, logger)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *tuiFlag && !*reportFlag {
		runTuiMode(input, policy, logger)
		return
	}

	if *jsonFlag && !*reportFlag {
		runJsonMode(input, policy, logger)
		return
	}

	// Default (and --report): text report
	runReportMode(input, policy, logger, *outputFlag, *verboseFlag)
}

func runAudit(input string, policy config.Policy, logger *zap.Logger) *model.AnalysisReport {
	parsed, err := audit.NewParser(audit.WithParserLogger(logger)).ParseFile(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", input, err)
		os.Exit(1)
	}
	return audit.Run(parsed, policy, logger)
}

func runReportMode(input string, policy config.Policy, logger *zap.Logger, outputFile string, verbose bool) {
	report := runAudit(input, policy, logger)

	if outputFile != "" {
		err := os.WriteFile(outputFile, []byte(audit.GenerateReport(report, verbose)), 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report to %s: %v\n", outputFile, err)
			os.Exit(1)
		}
		fmt.Printf("Report saved to %s\n", outputFile)
		return
	}

	if err := audit.WriteReport(os.Stdout, report, verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}
}

func runJsonMode(input string, policy config.Policy, logger *zap.Logger) {
	report := runAudit(input, policy, logger)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
		os.Exit(1)
	}
}

func runTuiMode(input string, policy config.Policy, logger *zap.Logger) {
	m := tui.InitialModel(input, policy, logger)
	p := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
