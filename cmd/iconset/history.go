package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Mavwarf/iconset/internal/config"
	"github.com/Mavwarf/iconset/internal/generate"
	"github.com/Mavwarf/iconset/internal/history"
)

// recordRun appends the run to history. Best-effort: failures are warnings.
func recordRun(cfg config.Config, res *generate.Result, runErr error, stderr io.Writer) {
	s, err := history.Open(cfg.Storage, cfg.HistoryFile())
	if err != nil {
		fmt.Fprintf(stderr, "warning: history: %v\n", err)
		return
	}
	defer s.Close()

	if err := s.Log(toHistory(res, runErr)); err != nil {
		fmt.Fprintf(stderr, "warning: history: %v\n", err)
	}
}

func toHistory(res *generate.Result, runErr error) history.Run {
	r := history.Run{
		Time:      res.Started,
		OutputDir: res.OutputDir,
		Elapsed:   res.Elapsed,
	}
	for _, f := range res.Files {
		r.Files = append(r.Files, history.FileRecord{
			Name:   f.Name,
			Size:   f.Size,
			Bytes:  f.Bytes,
			SHA256: f.SHA256,
		})
	}
	if runErr != nil {
		r.Err = runErr.Error()
	}
	return r
}

func historyCmd(args []string, o options, stdout, stderr io.Writer) int {
	clearAll := len(args) > 0 && args[0] == "clear"
	count := 10
	if len(args) > 0 && !clearAll {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fmt.Fprintf(stderr, "Error: count must be a positive integer\n")
			return 1
		}
		count = n
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// Opening a SQLite store creates the database; don't do that just to
	// report that nothing was recorded.
	path := cfg.HistoryFile()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if clearAll {
			fmt.Fprintln(stdout, "History cleared.")
		} else {
			fmt.Fprintln(stdout, "No history yet. Enable it with --log or \"log\": true in config.")
		}
		return 0
	}

	s, err := history.Open(cfg.Storage, path)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer s.Close()

	if clearAll {
		if err := s.Clear(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, "History cleared.")
		return 0
	}

	runs, err := s.Runs(count)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if len(runs) == 0 {
		fmt.Fprintln(stdout, "History is empty.")
		return 0
	}
	tty := isTerminal(stdout)
	now := time.Now()
	for _, r := range runs {
		writeRun(stdout, r, now, tty)
	}
	return 0
}

// writeRun prints one run as a summary line, plus the error for a failed run.
func writeRun(w io.Writer, r history.Run, now time.Time, tty bool) {
	status := r.Status()
	when := humanize.RelTime(r.Time, now, "ago", "from now")
	if tty {
		if r.OK() {
			status = green(status)
		} else {
			status = yellow(status)
		}
		when = dim(when)
	}
	fmt.Fprintf(w, "%s  %-6s  %2d files  %8s  %s  %s  (%s)\n",
		r.Time.Local().Format("2006-01-02 15:04:05"), status, len(r.Files),
		humanize.Bytes(uint64(r.Bytes())), formatDuration(r.Elapsed), r.OutputDir, when)
	if !r.OK() {
		fmt.Fprintf(w, "    %s\n", r.Err)
	}
}

var noColor = os.Getenv("NO_COLOR") != ""

func ansi(code, s string) string {
	if noColor {
		return s
	}
	return code + s + "\033[0m"
}

func dim(s string) string    { return ansi("\033[2m", s) }
func green(s string) string  { return ansi("\033[32m", s) }
func yellow(s string) string { return ansi("\033[33m", s) }
