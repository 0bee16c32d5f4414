package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgomes/lineage/lineage"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "tree":
		return treeCommand(args[2:])
	case "check":
		return checkCommand(args[2:])
	case "send":
		return sendCommand(args[2:])
	case "repl":
		return replCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func treeCommand(args []string) error {
	fs := newFlagSet("tree")
	verbose := fs.Bool("v", false, "log debug output to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	configureLogging(*verbose)
	if fs.NArg() == 0 {
		return errors.New("lineage tree: blueprint path required")
	}
	h, err := loadBlueprint(fs.Arg(0))
	if err != nil {
		return err
	}
	return h.WriteTree(os.Stdout)
}

func checkCommand(args []string) error {
	fs := newFlagSet("check")
	verbose := fs.Bool("v", false, "log debug output to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	configureLogging(*verbose)
	if fs.NArg() == 0 {
		return errors.New("lineage check: blueprint path required")
	}
	h, err := loadBlueprint(fs.Arg(0))
	if err != nil {
		return err
	}
	// Object is always present and not part of the blueprint.
	fmt.Printf("ok: %d classes, %d mixins\n", len(h.Classes())-1, len(h.Mixins()))
	return nil
}

func sendCommand(args []string) error {
	fs := newFlagSet("send")
	verbose := fs.Bool("v", false, "log debug output to stderr")
	var initArgs argList
	fs.Var(&initArgs, "init", "argument passed to initialize (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	configureLogging(*verbose)
	remaining := fs.Args()
	if len(remaining) < 3 {
		return errors.New("lineage send: blueprint path, class and method required")
	}
	h, err := loadBlueprint(remaining[0])
	if err != nil {
		return err
	}
	className, method := remaining[1], remaining[2]
	cls, ok := h.Class(className)
	if !ok {
		return fmt.Errorf("lineage send: unknown class %s", className)
	}
	inst, err := cls.New(literals(initArgs)...)
	if err != nil {
		return fmt.Errorf("construct %s: %w", className, err)
	}
	slog.Debug("instance constructed", "class", className, "args", len(initArgs))
	result, err := inst.Send(method, literals(remaining[3:])...)
	if err != nil {
		return fmt.Errorf("send %s#%s: %w", className, method, err)
	}
	fmt.Println(result.String())
	return nil
}

func replCommand(args []string) error {
	fs := newFlagSet("repl")
	verbose := fs.Bool("v", false, "log debug output to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	configureLogging(*verbose)
	var blueprint []byte
	if fs.NArg() > 0 {
		data, err := readBlueprint(fs.Arg(0))
		if err != nil {
			return err
		}
		blueprint = data
	}
	return runREPL(blueprint)
}

func loadBlueprint(path string) (*lineage.Hierarchy, error) {
	data, err := readBlueprint(path)
	if err != nil {
		return nil, err
	}
	h, err := lineage.LoadHierarchy(data)
	if err != nil {
		return nil, fmt.Errorf("load blueprint %s: %w", path, err)
	}
	slog.Info("blueprint loaded", "path", path, "classes", len(h.Classes())-1, "mixins", len(h.Mixins()))
	return h, nil
}

func readBlueprint(path string) ([]byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve blueprint path: %w", err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read blueprint: %w", err)
	}
	return data, nil
}

func configureLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func literals(raw []string) []lineage.Value {
	vals := make([]lineage.Value, len(raw))
	for i, r := range raw {
		vals[i] = parseLiteral(word{text: r})
	}
	return vals
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	return fs
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] ...\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  tree <blueprint>")
	fmt.Fprintln(os.Stderr, "    print the class tree of a YAML blueprint")
	fmt.Fprintln(os.Stderr, "  check <blueprint>")
	fmt.Fprintln(os.Stderr, "    validate a blueprint")
	fmt.Fprintln(os.Stderr, "  send [-init arg]... <blueprint> <class> <method> [args...]")
	fmt.Fprintln(os.Stderr, "    construct an instance and send it a message")
	fmt.Fprintln(os.Stderr, "  repl [blueprint]")
	fmt.Fprintln(os.Stderr, "    start the interactive shell")
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprintln(os.Stderr, "  -v")
	fmt.Fprintln(os.Stderr, "    log debug output to stderr")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}

type argList []string

func (l *argList) String() string {
	return strings.Join(*l, ",")
}

func (l *argList) Set(value string) error {
	*l = append(*l, value)
	return nil
}
