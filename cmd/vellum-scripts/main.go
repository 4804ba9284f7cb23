// Package main is the entry point for the vellum script runner, a
// command-line host around the script subsystem. It lists the script
// menu, runs a single script against an optional file-backed document,
// and can watch the script directory for changes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vellum-editor/vellum/internal/config"
	"github.com/vellum-editor/vellum/internal/encoding"
	"github.com/vellum-editor/vellum/internal/host"
	"github.com/vellum-editor/vellum/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

type options struct {
	ConfigPath string
	Dir        string
	List       bool
	RunName    string
	DocPath    string
	Watch      bool
	Wait       time.Duration
	LogLevel   string
}

func run() int {
	opts := parseFlags()
	logger := newLogger(opts.LogLevel)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		logger.Error("failed to load configuration", "err", err)
		return 1
	}

	dir := opts.Dir
	if dir == "" {
		dir = cfg.ScriptsDir
	}
	if dir == "" {
		logger.Error("no script directory configured")
		return 1
	}

	encodings, err := encodingProvider(cfg)
	if err != nil {
		logger.Error("invalid encoding configuration", "err", err)
		return 1
	}

	scanner := script.NewScanner(dir, script.WithUnsupported())
	descriptors, err := scanner.Scan()
	if err != nil {
		logger.Error("failed to scan script directory", "dir", dir, "err", err)
		return 1
	}

	if opts.List || (opts.RunName == "" && !opts.Watch) {
		printMenu(descriptors)
		return 0
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	loop := host.NewRunLoop(64)
	go loop.Run(ctx)
	defer loop.Close()

	provider := &docProvider{}
	if opts.DocPath != "" {
		doc, err := openFileDocument(opts.DocPath)
		if err != nil {
			logger.Error("failed to open document", "path", opts.DocPath, "err", err)
			return 1
		}
		provider.doc = doc
	}

	services := &script.Services{
		Documents:  provider,
		Console:    &logConsole{logger: logger},
		Clipboard:  host.SystemClipboard{},
		Workspace:  host.SystemWorkspace{},
		Beeper:     host.TerminalBeeper{},
		Encodings:  encodings,
		Dispatcher: loop,
		EditorApp:  cfg.EditorApp,
	}

	if provider.doc != nil {
		dispatchEvent(ctx, logger, descriptors, services, script.EventDocumentOpened, opts.DocPath)
	}

	if opts.RunName != "" {
		if code := runScript(ctx, logger, descriptors, services, provider.doc, opts); code != 0 {
			return code
		}
	}

	if opts.Watch {
		return watch(ctx, logger, scanner)
	}
	return 0
}

// dispatchEvent fires every script bound to the event.
func dispatchEvent(ctx context.Context, logger *log.Logger, descriptors []*script.Descriptor, services *script.Services, ev script.EventType, docPath string) {
	payload := map[string]any{"path": docPath}
	for _, desc := range descriptors {
		if !desc.HandlesEvent(ev) {
			continue
		}
		variant, err := script.NewVariant(desc, services)
		if err != nil {
			continue
		}
		if err := variant.RunWithEvent(ctx, host.NewEvent(ev.Name(), payload)); err != nil {
			logger.Warn("event script failed", "name", desc.DisplayName, "event", ev.Name(), "err", err)
		}
	}
}

// runScript resolves the named script, runs it, waits for completion, and
// flushes the document back to disk.
func runScript(ctx context.Context, logger *log.Logger, descriptors []*script.Descriptor, services *script.Services, doc *fileDocument, opts options) int {
	desc := findScript(descriptors, opts.RunName)
	if desc == nil {
		logger.Error("no such script", "name", opts.RunName)
		return 1
	}

	variant, err := script.NewVariant(desc, services)
	if err != nil {
		logger.Error("script is not runnable", "name", desc.DisplayName, "err", err)
		return 1
	}

	if err := variant.Run(ctx); err != nil {
		var se *script.Error
		if errors.As(err, &se) {
			logger.Error(se.Error(), "hint", se.RecoverySuggestion())
		} else {
			logger.Error("script failed", "name", desc.DisplayName, "err", err)
		}
		return 1
	}

	awaitCompletion(ctx, variant, opts.Wait)

	if doc != nil {
		if err := doc.Flush(); err != nil {
			logger.Error("failed to write document", "path", doc.path, "err", err)
			return 1
		}
	}
	return 0
}

// awaitCompletion blocks until the script's asynchronous work settles.
// Subprocess scripts expose their in-flight runs; event scripts get the
// full grace period.
func awaitCompletion(ctx context.Context, variant script.Variant, wait time.Duration) {
	deadline := time.After(wait)
	sub, ok := variant.(*script.SubprocessScript)
	for {
		if ok && len(sub.ActiveRuns()) == 0 {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-deadline:
			return
		case <-time.After(25 * time.Millisecond):
		}
	}
}

// watch rescans on directory changes until interrupted.
func watch(ctx context.Context, logger *log.Logger, scanner *script.Scanner) int {
	watcher, err := script.NewWatcher(scanner.Dir(), func() {
		descriptors, err := scanner.Scan()
		if err != nil {
			logger.Error("rescan failed", "err", err)
			return
		}
		names := make([]string, 0, len(descriptors))
		for _, d := range descriptors {
			names = append(names, d.DisplayName)
		}
		logger.Info("script menu changed", "scripts", strings.Join(names, ", "))
	})
	if err != nil {
		logger.Error("failed to watch script directory", "dir", scanner.Dir(), "err", err)
		return 1
	}
	defer watcher.Close()

	logger.Info("watching script directory", "dir", scanner.Dir())
	<-ctx.Done()
	return 0
}

func findScript(descriptors []*script.Descriptor, name string) *script.Descriptor {
	for _, d := range descriptors {
		if d.DisplayName == name {
			return d
		}
	}
	return nil
}

func printMenu(descriptors []*script.Descriptor) {
	if len(descriptors) == 0 {
		fmt.Println("no scripts found")
		return
	}
	for _, d := range descriptors {
		order := "  "
		if d.Ordering != nil {
			order = fmt.Sprintf("%2d", *d.Ordering)
		}
		shortcut := ""
		if !d.Shortcut.IsNone() {
			shortcut = d.Shortcut.String()
		}
		bindings := make([]string, 0, len(d.Bindings))
		for _, b := range d.Bindings {
			bindings = append(bindings, b.Name())
		}
		fmt.Printf("%s  %-30s %-12s %-14s %s\n",
			order, d.DisplayName, d.Kind, shortcut, strings.Join(bindings, ", "))
	}
}

func encodingProvider(cfg config.Config) (encoding.Provider, error) {
	if len(cfg.Encodings) == 0 {
		return encoding.DefaultProvider{}, nil
	}
	encs, err := encoding.ByNames(cfg.Encodings)
	if err != nil {
		return nil, err
	}
	return encoding.NewListProvider(encs), nil
}

func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if parsed, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(parsed)
	}
	return logger
}

// logConsole routes script console output through the structured logger.
type logConsole struct {
	logger *log.Logger
}

func (c *logConsole) Append(message, source string) {
	c.logger.Info(message, "script", source)
}

// docProvider serves the single optional command-line document.
type docProvider struct {
	doc *fileDocument
}

func (p *docProvider) ActiveDocument() host.Document {
	if p.doc == nil {
		return nil
	}
	return p.doc
}

// fileDocument is a file-backed document. Lacking an interactive cursor,
// the whole content stands in for the selection, so selection-oriented
// operations act on the full text.
type fileDocument struct {
	mu    sync.Mutex
	path  string
	text  string
	dirty bool
}

func openFileDocument(path string) (*fileDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &fileDocument{path: path, text: string(data)}, nil
}

func (d *fileDocument) SelectedText() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text
}

func (d *fileDocument) FullText() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text
}

func (d *fileDocument) Insert(s string) {
	d.setText(s)
}

func (d *fileDocument) InsertAfterSelection(s string) {
	d.appendText(s)
}

func (d *fileDocument) ReplaceAll(s string) {
	d.setText(s)
}

func (d *fileDocument) Append(s string) {
	d.appendText(s)
}

func (d *fileDocument) Path() (string, bool) {
	return d.path, true
}

func (d *fileDocument) setText(s string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.text = s
	d.dirty = true
}

func (d *fileDocument) appendText(s string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.text += s
	d.dirty = true
}

// Flush writes the document back to its file when modified.
func (d *fileDocument) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.dirty {
		return nil
	}
	if err := os.WriteFile(d.path, []byte(d.text), 0o644); err != nil {
		return err
	}
	d.dirty = false
	return nil
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", defaultConfigPath(), "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", defaultConfigPath(), "Path to configuration file (shorthand)")
	flag.StringVar(&opts.Dir, "dir", "", "Script directory (overrides configuration)")
	flag.BoolVar(&opts.List, "list", false, "List discovered scripts")
	flag.BoolVar(&opts.List, "l", false, "List discovered scripts (shorthand)")
	flag.StringVar(&opts.RunName, "run", "", "Run the script with this display name")
	flag.StringVar(&opts.DocPath, "doc", "", "File to serve as the active document")
	flag.BoolVar(&opts.Watch, "watch", false, "Watch the script directory for changes")
	flag.BoolVar(&opts.Watch, "w", false, "Watch the script directory for changes (shorthand)")
	flag.DurationVar(&opts.Wait, "wait", 10*time.Second, "Maximum time to wait for script completion")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "vellum-scripts - user script runner\n\n")
		fmt.Fprintf(os.Stderr, "Usage: vellum-scripts [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  vellum-scripts -list                     Show the script menu\n")
		fmt.Fprintf(os.Stderr, "  vellum-scripts -run Upcase -doc a.md     Run a script against a file\n")
		fmt.Fprintf(os.Stderr, "  vellum-scripts -watch                    Rescan on directory changes\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("vellum-scripts %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return opts
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "vellum", "config.toml")
}
