package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/Mavwarf/iconset/internal/config"
	"github.com/Mavwarf/iconset/internal/generate"
	"github.com/Mavwarf/iconset/internal/manifest"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options are the global flags, accepted anywhere on the command line.
type options struct {
	configPath string
	outDir     string
	log        bool
}

// run executes one invocation and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	var o options

	// Parse flags
	var filtered []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config", "-c":
			if i+1 >= len(args) {
				fmt.Fprintf(stderr, "Error: --config requires a file path\n")
				return 1
			}
			o.configPath = args[i+1]
			i++
		case "--out", "-o":
			if i+1 >= len(args) {
				fmt.Fprintf(stderr, "Error: --out requires a directory\n")
				return 1
			}
			o.outDir = args[i+1]
			i++
		case "--log":
			o.log = true
		default:
			if strings.HasPrefix(args[i], "-") && !isCommand(args[i]) {
				fmt.Fprintf(stderr, "Error: unknown option %s\n", args[i])
				fmt.Fprintf(stderr, "Run 'iconset help' for usage.\n")
				return 1
			}
			filtered = append(filtered, args[i])
		}
	}

	if len(filtered) == 0 {
		return generateCmd(o, stdout, stderr)
	}

	switch filtered[0] {
	case "help", "-h", "--help":
		printUsage(stdout)
	case "version", "-V", "--version":
		printVersion(stdout)
	case "verify":
		return verifyCmd(filtered[1:], o, stdout, stderr)
	case "history":
		return historyCmd(filtered[1:], o, stdout, stderr)
	case "sizes":
		printSizes(stdout)
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n", filtered[0])
		fmt.Fprintf(stderr, "Run 'iconset help' for usage.\n")
		return 1
	}
	return 0
}

func isCommand(a string) bool {
	switch a {
	case "-h", "--help", "-V", "--version":
		return true
	}
	return false
}

// loadConfig loads and validates the config and applies --out.
func loadConfig(o options) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, err
	}
	if o.outDir != "" {
		cfg.OutputDir = o.outDir
	}
	if err := config.Validate(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func generateCmd(o options, stdout, stderr io.Writer) int {
	cfg, err := loadConfig(o)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	st, _ := cfg.IconStyle() // checked by Validate

	tty := isTerminal(stdout)
	res, err := generate.Run(generate.Options{
		OutputDir: cfg.OutputDir,
		Style:     st,
		Progress: func(f generate.File, done, total int) {
			if tty {
				fmt.Fprintf(stdout, "%s Generated %s %s\n",
					dim(fmt.Sprintf("[%2d/%d]", done, total)), f.Name,
					dim("("+humanize.Bytes(uint64(f.Bytes))+")"))
				return
			}
			fmt.Fprintf(stdout, "Generated %s\n", f.Name)
		},
	})

	if cfg.Log || o.log {
		recordRun(cfg, res, err, stderr)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Updated %s\n", filepath.Base(res.Manifest))
	count := fmt.Sprint(len(res.Files))
	if tty {
		count = green(count)
	}
	fmt.Fprintf(stdout, "%s icons written to %s in %s\n", count, res.OutputDir, formatDuration(res.Elapsed))

	publishRun(cfg, res, stderr)
	return 0
}

func verifyCmd(args []string, o options, stdout, stderr io.Writer) int {
	var dir string
	switch len(args) {
	case 0:
		cfg, err := loadConfig(o)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		dir = cfg.OutputDir
	case 1:
		dir = args[0]
	default:
		fmt.Fprintf(stderr, "Error: expected verify [dir]\n")
		return 1
	}

	r, err := generate.Verify(dir)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if !r.OK() {
		fmt.Fprintf(stdout, "%s: %d problem(s)\n", dir, len(r.Problems))
		for _, p := range r.Problems {
			fmt.Fprintf(stdout, "  %s\n", p)
		}
		return 1
	}
	fmt.Fprintf(stdout, "%s: OK (%d entries, %d files)\n", dir, r.Entries, r.Files)
	return 0
}

func printSizes(w io.Writer) {
	sizes, _ := manifest.Sizes(manifest.Default())
	strs := make([]string, len(sizes))
	for i, px := range sizes {
		strs[i] = fmt.Sprint(px)
	}
	fmt.Fprintf(w, "Render sizes: %s\n\n", strings.Join(strs, " "))
	for _, s := range manifest.Slots() {
		fmt.Fprintf(w, "  %-22s %s\n", s, manifest.Filename(s.Pixels()))
	}
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "iconset %s (%s) %s/%s\n", version, buildDate, runtime.GOOS, runtime.GOARCH)
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "iconset %s - Generate an iOS app icon set\n", version)
	fmt.Fprintln(w, `
Usage:
  iconset [options]                Render all icons and Contents.json
  iconset [options] <command>

Options:
  --config, -c <path>    Path to iconset-config.json
  --out, -o <dir>        Output directory (default: AppIcon.appiconset)
  --log                  Record this run in history

Commands:
  verify [dir]           Check an icon set against its Contents.json
  history [N]            Show the last N recorded runs (default 10)
  history clear          Delete all recorded runs
  sizes                  List render sizes and catalog slots
  version, -V            Show version and build date
  help, -h, --help       Show this help message

Config resolution:
  1. --config <path>                      (explicit)
  2. iconset-config.json next to binary   (portable)
  3. iconset-config.json in the current directory
  4. built-in defaults

Examples:
  iconset                          Write AppIcon.appiconset/ here
  iconset -o Assets.xcassets/AppIcon.appiconset
  iconset verify                   Re-check the written set
  iconset history 5                Show the five most recent runs`)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
