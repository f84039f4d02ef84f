// main.go - Admin control tool for bundle manifests
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bundlemanifest/internal"
	"bundlemanifest/internal/bundles"
	"bundlemanifest/internal/config"
	"bundlemanifest/internal/docs"
	"bundlemanifest/internal/manifest"
)

// Command defines the interface for all command implementations
type Command interface {
	// Name returns the command name
	Name() string
	// Description returns the command description
	Description() string
	// Execute runs the command with the given app and args
	Execute(ctx context.Context, app *internal.Application, args []string) error
}

// The set of available commands
var commands = []Command{
	&ResolveCommand{},
	&HTMLCommand{},
	&PushCommand{},
	&BuildDocsCommand{},
	&HelpCommand{},
}

// stdout receives command output
var stdout io.Writer = os.Stdout

var (
	manifestFlag   = flag.String("manifest", "", "manifest file (overrides BUNDLEMANIFEST_MANIFEST)")
	serverRootFlag = flag.String("server-root", "", "server root prefix (overrides BUNDLEMANIFEST_SERVER_ROOT)")
	rootFlag       = flag.String("root", "", "project root (overrides BUNDLEMANIFEST_ROOT)")
)

func main() {
	_ = godotenv.Load()

	// Parse global flags
	flag.Parse()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v, initiating cleanup...", sig)
		cancel()
	}()

	cmdName, args := parseArgs(flag.Args())

	cmd := findCommand(cmdName)
	if cmd == nil {
		showUsageAndExit()
	}

	app, err := newApp()
	if err != nil {
		log.Printf("Warning: Failed to initialize app: %v", err)
		log.Println("Proceeding with limited functionality...")
	}
	if app != nil {
		defer app.Close()
	}

	if err := cmd.Execute(ctx, app, args); err != nil {
		log.Fatalf("Command failed: %v", err)
	}
}

// newApp builds the application from the environment and global flags,
// logging warnings only so command output stays clean.
func newApp() (*internal.Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if *manifestFlag != "" {
		cfg.ManifestPath = *manifestFlag
	}
	if *serverRootFlag != "" {
		cfg.ServerRoot = *serverRootFlag
	}
	if *rootFlag != "" {
		cfg.ProjectRoot = *rootFlag
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return internal.NewAppWithConfig(cfg, internal.WithLogger(logger))
}

func resolveArg(app *internal.Application, name string, args []string) (*manifest.Route, error) {
	if app == nil {
		return nil, fmt.Errorf("app initialization failed, cannot read the manifest")
	}
	if len(args) < 1 {
		return nil, fmt.Errorf("usage: bmctl %s <route>", name)
	}
	return app.Store.Resolve(args[0])
}

// ResolveCommand lists the ordered assets of a route
type ResolveCommand struct{}

func (c *ResolveCommand) Name() string        { return "resolve" }
func (c *ResolveCommand) Description() string { return "Lists the ordered assets of a route" }

func (c *ResolveCommand) Execute(ctx context.Context, app *internal.Application, args []string) error {
	route, err := resolveArg(app, c.Name(), args)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Route: %s\n", route.Identifier())

	title := cases.Title(language.English)
	var order []bundles.Kind
	groups := make(map[bundles.Kind][]bundles.Asset)
	for _, asset := range route.Assets() {
		if _, ok := groups[asset.Kind]; !ok {
			order = append(order, asset.Kind)
		}
		groups[asset.Kind] = append(groups[asset.Kind], asset)
	}

	for _, kind := range order {
		heading := title.String(string(kind)) + "s"
		if kind == "" {
			heading = "Untyped"
		}
		if !kind.Supported() {
			heading += " (no render rule)"
		}
		fmt.Fprintf(stdout, "%s:\n", heading)
		for _, asset := range groups[kind] {
			fmt.Fprintf(stdout, "  %s (weight %g)\n", route.PublicPath(asset), asset.Weight)
		}
	}
	return nil
}

// HTMLCommand prints the markup of a route
type HTMLCommand struct{}

func (c *HTMLCommand) Name() string        { return "html" }
func (c *HTMLCommand) Description() string { return "Prints the tags of a route: html <route> [style|script]" }

func (c *HTMLCommand) Execute(ctx context.Context, app *internal.Application, args []string) error {
	route, err := resolveArg(app, c.Name(), args)
	if err != nil {
		return err
	}

	assets := route.Assets()
	if len(args) > 1 {
		kind := bundles.Kind(args[1])
		if !kind.Supported() {
			return fmt.Errorf("unknown asset kind: %s", kind)
		}
		assets = route.Filter(kind)
	}

	out, err := route.HTML(assets)
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, out)
	if isTerminal() {
		fmt.Fprintln(stdout)
	}
	return nil
}

// PushCommand prints the preload Link header of a route
type PushCommand struct{}

func (c *PushCommand) Name() string        { return "push" }
func (c *PushCommand) Description() string { return "Prints the preload Link header of a route" }

func (c *PushCommand) Execute(ctx context.Context, app *internal.Application, args []string) error {
	route, err := resolveArg(app, c.Name(), args)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, route.Push().Header())
	return nil
}

// BuildDocsCommand writes the docs page generated from the readme
type BuildDocsCommand struct{}

func (c *BuildDocsCommand) Name() string        { return "build-docs" }
func (c *BuildDocsCommand) Description() string { return "Generates the docs page from the readme" }

func (c *BuildDocsCommand) Execute(ctx context.Context, app *internal.Application, args []string) error {
	fs := flag.NewFlagSet("build-docs", flag.ContinueOnError)
	readme := fs.String("readme", docs.DefaultReadme, "readme to read")
	out := fs.String("out", docs.DefaultOut, "docs page to write")
	page := fs.String("page", docs.DefaultPage, "@page name")
	parent := fs.String("parent", docs.DefaultParent, "@parent name")
	heading := fs.String("heading", docs.DefaultHeading, "readme heading to strip")
	if err := fs.Parse(args); err != nil {
		return err
	}

	written, err := docs.Build(docs.Options{
		Readme:  *readme,
		Out:     *out,
		Page:    *page,
		Parent:  *parent,
		Heading: *heading,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s\n", written)
	return nil
}

// HelpCommand implements a command to show usage information
type HelpCommand struct{}

// Name returns the command name
func (c *HelpCommand) Name() string {
	return "help"
}

// Description returns the command description
func (c *HelpCommand) Description() string {
	return "Shows usage information"
}

// Execute implements the help command
func (c *HelpCommand) Execute(ctx context.Context, app *internal.Application, args []string) error {
	printUsage(stdout)
	return nil
}

// Helper functions

// parseArgs splits the command name from its arguments
func parseArgs(args []string) (string, []string) {
	if len(args) == 0 {
		return "help", []string{}
	}
	return args[0], args[1:]
}

// findCommand finds a command by name
func findCommand(name string) Command {
	for _, cmd := range commands {
		if cmd.Name() == name {
			return cmd
		}
	}
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bmctl [flags] [command] [args...]")
	fmt.Fprintln(w, "Available commands:")

	for _, cmd := range commands {
		fmt.Fprintf(w, "  %s: %s\n", cmd.Name(), cmd.Description())
	}
}

// showUsageAndExit shows usage information and exits
func showUsageAndExit() {
	printUsage(os.Stdout)
	os.Exit(1)
}

func isTerminal() bool {
	f, ok := stdout.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
