// Package cmd implements the skpaint CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (inspect, config).
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-drift/skpaint/cmd/skpaint/internal/config"
	"github.com/go-drift/skpaint/pkg/errors"
	"github.com/go-drift/skpaint/pkg/graphics"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Output streams, replaced by tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "skpaint",
	Short: "skpaint - paint, filter and shader bindings for Skia",
	Long: `skpaint works with the shader assets and project settings used by the
skpaint graphics bindings. It validates fragment shader assets, prints
their uniform layout and can instantiate them against the recording
engine to show the native calls they produce.

Use "skpaint <command> --help" for more information about a command.`,
	Usage: "skpaint <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return run(os.Args[1:])
}

func run(args []string) error {
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Handle global flags and extract --log-level
	var (
		filteredArgs []string
		logLevel     string
	)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Fprintf(stdout, "skpaint version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--log-level":
			if i+1 < len(args) {
				logLevel = args[i+1]
				i++
			} else {
				return fmt.Errorf("--log-level requires a level (debug, info, warn, error)")
			}
		default:
			if strings.HasPrefix(arg, "--log-level=") {
				logLevel = strings.TrimPrefix(arg, "--log-level=")
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Find and execute the command
	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	// Check for help flag on subcommand
	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	if err := setupLogging(logLevel); err != nil {
		return err
	}
	return cmd.Run(cmdArgs)
}

// loadConfig resolves the configuration of the enclosing Go module, or the
// defaults when the working directory is not inside one.
func loadConfig() (*config.Resolved, error) {
	root, err := config.FindProjectRoot()
	if err != nil {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return nil, wdErr
		}
		return config.Default(wd), nil
	}
	return config.Resolve(root)
}

// setupLogging routes graphics logs and reported errors to stderr. An
// explicit level overrides logging.level from skpaint.yaml.
func setupLogging(override string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	level := cfg.LogLevel
	if override != "" {
		if err := level.UnmarshalText([]byte(override)); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
	}
	graphics.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	errors.SetHandler(&errors.LogHandler{Verbose: cfg.Verbose, Out: stderr})
	return nil
}

func printHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(stdout, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Flags:")
	fmt.Fprintln(stdout, "  -h, --help           Show help for a command")
	fmt.Fprintln(stdout, "  -v, --version        Show version information")
	fmt.Fprintln(stdout, "  --log-level LEVEL    Override logging.level (debug, info, warn, error)")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Examples:")
	fmt.Fprintln(stdout, "  skpaint inspect ripple.json                      Print the uniform layout")
	fmt.Fprintln(stdout, "  skpaint inspect --instantiate --set time=1 ripple.json")
	fmt.Fprintln(stdout, "  skpaint config                                   Show resolved configuration")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
}
