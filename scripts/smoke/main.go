// Command smoke probes a running portal instance and reports which
// endpoints answer as expected. Intended for post-deploy verification.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Body     string `json:"body,omitempty"`
	Expect   int    `json:"expect"`
	Critical bool   `json:"critical"`
}

type result struct {
	Target   target
	Status   int
	Match    bool
	Err      error
	Duration time.Duration
}

func defaultTargets() []target {
	return []target{
		{Method: http.MethodGet, Path: "/health", Expect: http.StatusOK, Critical: true},
		{Method: http.MethodGet, Path: "/ready", Expect: http.StatusOK, Critical: true},
		{Method: http.MethodGet, Path: "/api/v1/settings/branding", Expect: http.StatusOK, Critical: true},
		{Method: http.MethodGet, Path: "/api/v1/settings/instructor", Expect: http.StatusOK},
		{Method: http.MethodPost, Path: "/api/v1/analytics/track", Body: `{"type":"visit"}`, Expect: http.StatusAccepted},
		{Method: http.MethodGet, Path: "/api/v1/contents", Expect: http.StatusUnauthorized},
		{Method: http.MethodGet, Path: "/api/v1/admin/analytics", Expect: http.StatusUnauthorized},
	}
}

func main() {
	baseURL := flag.String("base-url", "http://localhost:8080", "portal base URL")
	configPath := flag.String("config", "", "optional JSON file with probe targets")
	token := flag.String("token", "", "optional bearer token sent with every request")
	timeout := flag.Duration("timeout", 10*time.Second, "per-request timeout")
	flag.Parse()

	targets := defaultTargets()
	if *configPath != "" {
		loaded, err := loadTargets(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		targets = loaded
	}

	client := &http.Client{Timeout: *timeout}
	results := make([]result, 0, len(targets))
	for _, tgt := range targets {
		results = append(results, probe(client, *baseURL, *token, tgt))
	}

	criticalFailures := 0
	for _, res := range results {
		mark := "ok"
		if res.Err != nil {
			mark = fmt.Sprintf("error: %v", res.Err)
		} else if !res.Match {
			mark = fmt.Sprintf("status %d, want %d", res.Status, res.Target.Expect)
		}
		if (res.Err != nil || !res.Match) && res.Target.Critical {
			criticalFailures++
			mark += " [critical]"
		}
		fmt.Printf("%-6s %-40s %8s  %s\n", res.Target.Method, res.Target.Path, res.Duration.Round(time.Millisecond), mark)
	}

	if criticalFailures > 0 {
		fmt.Printf("\n%d critical probe(s) failed\n", criticalFailures)
		os.Exit(1)
	}
	fmt.Println("\nall critical probes passed")
}

func loadTargets(path string) ([]target, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg struct {
		Targets []target `json:"targets"`
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no targets in %s", path)
	}
	return cfg.Targets, nil
}

func probe(client *http.Client, baseURL, token string, tgt target) result {
	var body io.Reader
	if tgt.Body != "" {
		body = bytes.NewBufferString(tgt.Body)
	}
	req, err := http.NewRequest(tgt.Method, baseURL+tgt.Path, body)
	if err != nil {
		return result{Target: tgt, Err: err}
	}
	if tgt.Body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := client.Do(req)
	duration := time.Since(start)
	if err != nil {
		return result{Target: tgt, Err: err, Duration: duration}
	}
	defer resp.Body.Close() //nolint:errcheck
	_, _ = io.Copy(io.Discard, resp.Body)

	return result{
		Target:   tgt,
		Status:   resp.StatusCode,
		Match:    resp.StatusCode == tgt.Expect,
		Duration: duration,
	}
}
