package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/optimach/optimach/internal/breakeven"
	"github.com/optimach/optimach/internal/calculation"
	"github.com/optimach/optimach/internal/config"
	"github.com/optimach/optimach/internal/domain"
	"github.com/optimach/optimach/internal/output"
	"github.com/optimach/optimach/internal/tui"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "optimach",
	Short: "Machine replacement analyzer",
	Long:  "Present-worth analysis of keeping an aging machine versus replacing it with a new one",
}

// loadInputs reads the optional input file argument, falling back to the
// stock defaults when no file is given.
func loadInputs(args []string) (*domain.MachineInputs, error) {
	if len(args) == 0 {
		return config.DefaultInputs(), nil
	}
	return config.NewInputParser().LoadFromFile(args[0])
}

// newEngine builds the engine, wiring the CLI logger behind --debug.
func newEngine(cmd *cobra.Command) *calculation.Engine {
	engine := calculation.NewEngine()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
		engine.Debug = true
	}
	return engine
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [input-file]",
	Short: "Evaluate keep-vs-replace strategies and recommend the cheapest",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputs, err := loadInputs(args)
		if err != nil {
			log.Fatal(err)
		}

		engine := newEngine(cmd)
		result, err := engine.Analyze(inputs)
		if err != nil {
			log.Fatal(err)
		}

		format, _ := cmd.Flags().GetString("format")
		if all, _ := cmd.Flags().GetBool("all-strategies"); all && format == "console" {
			format = "console-all"
		}
		f := output.GetFormatterByName(format)
		if f == nil {
			log.Fatalf("unsupported format: %s", format)
		}
		data, err := f.Format(result)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(string(data))
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate an input file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := config.NewInputParser().LoadFromFile(args[0]); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Input file %s is valid\n", args[0])
	},
}

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity [input-file]",
	Short: "Sweep the interest rate and show where the recommendation flips",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputs, err := loadInputs(args)
		if err != nil {
			log.Fatal(err)
		}

		minRate, _ := cmd.Flags().GetFloat64("min")
		maxRate, _ := cmd.Flags().GetFloat64("max")
		steps, _ := cmd.Flags().GetInt("steps")

		sweep := domain.RateSweep{
			MinRate: decimal.NewFromFloat(minRate),
			MaxRate: decimal.NewFromFloat(maxRate),
			Steps:   steps,
		}

		engine := newEngine(cmd)
		result, err := engine.SweepRates(inputs, sweep)
		if err != nil {
			log.Fatal(err)
		}

		text, err := output.SweepConsoleFormatter{}.FormatRateSweep(result)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(text)
	},
}

var breakEvenCmd = &cobra.Command{
	Use:   "break-even [input-file]",
	Short: "Find the interest rate at which two strategies cost the same",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputs, err := loadInputs(args)
		if err != nil {
			log.Fatal(err)
		}

		k1, _ := cmd.Flags().GetInt("k1")
		k2, _ := cmd.Flags().GetInt("k2")

		solver := breakeven.NewDefaultSolver(newEngine(cmd))
		result, err := solver.Solve(cmd.Context(), inputs, breakeven.Request{
			KeepYearsA: k1,
			KeepYearsB: k2,
		})
		if err != nil {
			log.Fatal(err)
		}

		fmt.Print(breakeven.FormatConsole(result))
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui [input-file]",
	Short: "Interactive parameter form and results view",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputs, err := loadInputs(args)
		if err != nil {
			log.Fatal(err)
		}

		p := tea.NewProgram(tui.NewModel(inputs), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			log.Fatal(err)
		}
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "optimach %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

func init() {
	analyzeCmd.Flags().String("format", "console", "Output format: console, console-lite, csv, json")
	analyzeCmd.Flags().Bool("all-strategies", false, "Show detailed cash flows for every strategy")
	analyzeCmd.Flags().Bool("debug", false, "Enable debug logging")

	sensitivityCmd.Flags().Float64("min", 0.0, "Lowest interest rate to sweep")
	sensitivityCmd.Flags().Float64("max", 0.25, "Highest interest rate to sweep")
	sensitivityCmd.Flags().Int("steps", 11, "Number of rates to evaluate")
	sensitivityCmd.Flags().Bool("debug", false, "Enable debug logging")

	breakEvenCmd.Flags().Int("k1", 0, "First strategy (keep old this many years)")
	breakEvenCmd.Flags().Int("k2", 3, "Second strategy (keep old this many years)")
	breakEvenCmd.Flags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(sensitivityCmd)
	rootCmd.AddCommand(breakEvenCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
