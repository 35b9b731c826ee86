// Package cli provides a generic command-line interface framework for the
// backward-graph construction subsystem.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/aooxin/backward/backward"
	"github.com/aooxin/backward/gradrules"
	"github.com/aooxin/backward/serialize"
	"github.com/aooxin/backward/trace"
)

// Command represents a generic CLI command with pluggable functionality.
type Command interface {
	// Name returns the command name
	Name() string

	// Description returns the command description
	Description() string

	// Run executes the command with the given arguments
	Run(ctx context.Context, args []string) error

	// Usage returns usage information
	Usage() string

	// Examples returns usage examples
	Examples() []string
}

// CommandRegistry manages available CLI commands.
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry.
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[string]Command),
	}
}

// Register adds a command to the registry.
func (r *CommandRegistry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

// Get retrieves a command by name.
func (r *CommandRegistry) Get(name string) (Command, bool) {
	cmd, exists := r.commands[name]
	return cmd, exists
}

// List returns all registered command names.
func (r *CommandRegistry) List() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	return names
}

// BackwardCommand loads a forward graph and synthesizes its backward graph.
type BackwardCommand struct {
	defaultConfig *BackwardCommandConfig
}

// BackwardCommandConfig configures a backward-graph synthesis run.
type BackwardCommandConfig struct {
	ForwardPath string   `json:"forward_path"`
	OutputPath  string   `json:"output_path"`
	TracePath   string   `json:"trace_path"`
	NoGradVars  []string `json:"no_grad_vars"`
	Verbose     bool     `json:"verbose"`
}

var registerBuiltinsOnce sync.Once

// NewBackwardCommand creates a new backward command, registering the
// built-in gradient recipes on first use.
func NewBackwardCommand() *BackwardCommand {
	registerBuiltinsOnce.Do(gradrules.RegisterAll)

	return &BackwardCommand{
		defaultConfig: &BackwardCommandConfig{},
	}
}

// Name implements Command.
func (c *BackwardCommand) Name() string {
	return "backward"
}

// Description implements Command.
func (c *BackwardCommand) Description() string {
	return "Synthesize a gradient computation graph from a forward operator graph"
}

// Run implements Command.
func (c *BackwardCommand) Run(ctx context.Context, args []string) error {
	config, err := c.parseArgs(args)
	if err != nil {
		return fmt.Errorf("failed to parse arguments: %w", err)
	}

	data, err := os.ReadFile(config.ForwardPath)
	if err != nil {
		return fmt.Errorf("failed to read forward graph from %s: %w", config.ForwardPath, err)
	}

	root, err := serialize.UnmarshalJSON(data)
	if err != nil {
		return fmt.Errorf("failed to decode forward graph: %w", err)
	}

	var opts []backward.Option

	var tw *trace.Writer

	if config.TracePath != "" {
		f, err := os.Create(config.TracePath)
		if err != nil {
			return fmt.Errorf("failed to create trace file %s: %w", config.TracePath, err)
		}
		defer f.Close()

		tw = trace.NewWriter(f)
		opts = append(opts, backward.WithTracer(tw))
	}

	result, err := backward.Backward(root, config.NoGradVars, opts...)
	if err != nil {
		return fmt.Errorf("backward synthesis failed: %w", err)
	}

	if tw != nil {
		if err := tw.Close(); err != nil {
			return fmt.Errorf("failed to close trace file: %w", err)
		}
	}

	out, err := serialize.MarshalJSON(result)
	if err != nil {
		return fmt.Errorf("failed to encode backward graph: %w", err)
	}

	if err := os.WriteFile(config.OutputPath, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", config.OutputPath, err)
	}

	if config.Verbose {
		fmt.Printf("Wrote backward graph to %s\n", config.OutputPath)
	}

	return nil
}

// Usage implements Command.
func (c *BackwardCommand) Usage() string {
	return `backward [OPTIONS]

Synthesize a gradient computation graph from a forward operator graph.

OPTIONS:
  --forward <path>      Path to the forward graph JSON file (required)
  --output <path>       Path to write the backward graph JSON file (required)
  --no-grad <var>       Variable name to exclude from gradient computation (repeatable)
  --trace <path>        Write a parquet trace of every gradient operator emitted (accumulate operators are not traced)
  --verbose             Verbose output
  --config <path>       Load configuration from a JSON file`
}

// Examples implements Command.
func (c *BackwardCommand) Examples() []string {
	return []string{
		"backward --forward forward.json --output backward.json",
		"backward --forward forward.json --output backward.json --no-grad a --trace trace.parquet",
		"backward --config backward_config.json --verbose",
	}
}

func (c *BackwardCommand) parseArgs(args []string) (*BackwardCommandConfig, error) {
	config := *c.defaultConfig

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--forward":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--forward requires a value")
			}
			config.ForwardPath = args[i+1]
			i++
		case "--output":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--output requires a value")
			}
			config.OutputPath = args[i+1]
			i++
		case "--trace":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--trace requires a value")
			}
			config.TracePath = args[i+1]
			i++
		case "--no-grad":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--no-grad requires a value")
			}
			config.NoGradVars = append(config.NoGradVars, args[i+1])
			i++
		case "--verbose":
			config.Verbose = true
		case "--config":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--config requires a value")
			}
			if err := c.loadConfig(args[i+1], &config); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
			i++
		}
	}

	if config.ForwardPath == "" {
		return nil, fmt.Errorf("--forward is required")
	}

	if config.OutputPath == "" {
		return nil, fmt.Errorf("--output is required")
	}

	return &config, nil
}

func (c *BackwardCommand) loadConfig(path string, config *BackwardCommandConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, config)
}

// CLI provides the main command-line interface.
type CLI struct {
	registry *CommandRegistry
}

// NewCLI creates a new CLI instance.
func NewCLI() *CLI {
	return &CLI{
		registry: NewCommandRegistry(),
	}
}

// RegisterCommand adds a command to the CLI.
func (c *CLI) RegisterCommand(cmd Command) {
	c.registry.Register(cmd)
}

// Run executes a command based on arguments.
func (c *CLI) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	cmdName := args[0]
	if cmdName == "help" {
		return c.printUsage()
	}

	cmd, exists := c.registry.Get(cmdName)
	if !exists {
		return fmt.Errorf("unknown command: %s\n\nUse 'help' to see available commands", cmdName)
	}

	if len(args) > 1 && args[1] == "--help" {
		fmt.Println(cmd.Usage())
		return nil
	}

	return cmd.Run(ctx, args[1:])
}

func (c *CLI) printUsage() error {
	fmt.Printf("backward CLI - gradient graph construction\n\n")
	fmt.Printf("USAGE:\n")
	fmt.Printf("  backward <command> [options]\n\n")
	fmt.Printf("AVAILABLE COMMANDS:\n")

	for _, name := range c.registry.List() {
		cmd, _ := c.registry.Get(name)
		fmt.Printf("  %-12s %s\n", name, cmd.Description())
	}

	fmt.Printf("\nUse 'backward <command> --help' for more information about a command.\n")
	return nil
}
