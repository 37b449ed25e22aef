package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/Mavwarf/iconset/internal/config"
	"github.com/Mavwarf/iconset/internal/generate"
	"github.com/Mavwarf/iconset/internal/mqtt"
	"github.com/Mavwarf/iconset/internal/tmpl"
	"github.com/Mavwarf/iconset/internal/webhook"
)

// runSummary is the JSON document published after a successful run.
type runSummary struct {
	RunID     string        `json:"run_id"`
	Status    string        `json:"status"`
	Time      time.Time     `json:"time"`
	OutputDir string        `json:"output_dir"`
	Manifest  string        `json:"manifest"`
	ElapsedMS int64         `json:"elapsed_ms"`
	Files     []fileSummary `json:"files"`
}

type fileSummary struct {
	Name   string `json:"name"`
	Size   int    `json:"size"`
	Bytes  int    `json:"bytes"`
	SHA256 string `json:"sha256"`
}

func newSummary(res *generate.Result) runSummary {
	s := runSummary{
		RunID:     uuid.NewString(),
		Status:    "ok",
		Time:      res.Started.UTC(),
		OutputDir: res.OutputDir,
		Manifest:  res.Manifest,
		ElapsedMS: res.Elapsed.Milliseconds(),
		Files:     make([]fileSummary, len(res.Files)),
	}
	for i, f := range res.Files {
		s.Files[i] = fileSummary{Name: f.Name, Size: f.Size, Bytes: f.Bytes, SHA256: f.SHA256}
	}
	return s
}

// publishRun sends the run to every configured target. Failures are
// warnings: the icons are already on disk.
func publishRun(cfg config.Config, res *generate.Result, stderr io.Writer) {
	p := cfg.Publish
	if p.MQTT == nil && len(p.Webhooks) == 0 {
		return
	}

	payload, err := json.Marshal(newSummary(res))
	if err != nil {
		fmt.Fprintf(stderr, "warning: publish: %v\n", err)
		return
	}
	message := tmpl.Expand(p.Message, tmpl.Vars{
		Dir:      res.OutputDir,
		Count:    len(res.Files),
		Duration: formatDuration(res.Elapsed),
		Status:   "ok",
	})

	if m := p.MQTT; m != nil {
		err := mqtt.Publish(mqtt.Options{
			Broker:   m.Broker,
			ClientID: m.ClientID,
			Topic:    m.Topic,
			QoS:      byte(m.QoS),
			Retain:   m.Retain,
			Username: m.Username,
			Password: m.Password,
		}, payload)
		if err != nil {
			fmt.Fprintf(stderr, "warning: %v\n", err)
		}
	}
	for _, w := range p.Webhooks {
		h := webhook.Hook{URL: w.URL, Format: w.Format, Headers: w.Headers}
		if err := webhook.Send(h, message, payload); err != nil {
			fmt.Fprintf(stderr, "warning: %v\n", err)
		}
	}
}

// formatDuration returns a compact duration string (e.g. "840ms", "2m15s").
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return d.Round(100 * time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}
