// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const demoSchema = `prog: demo
groups:
  - name: default
    args:
      - name: test
        help: this is test
        default: 10
      - name: mode
        default: fast
        type: symbol
      - name: hogehoge
        help: this is test
        positional: true
        default: "30.0"
`

func writeDemoSchema(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demo.yaml")
	if err := os.WriteFile(path, []byte(demoSchema), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	return path
}

func runTool(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunJSON(t *testing.T) {
	path := writeDemoSchema(t)
	code, stdout, stderr := runTool(t, "--schema", path, "--", "value", "-t", "3", "-m", "slow")
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	var got map[string]map[string]any
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	want := map[string]map[string]any{
		"default": {"test": float64(3), "mode": "slow", "hogehoge": "value"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRunFormats(t *testing.T) {
	path := writeDemoSchema(t)
	tests := []struct {
		format string
		want   string
	}{
		{format: "yaml", want: "\n  test: 3\n"},
		{format: "toml", want: "test = 3"},
		{format: "env", want: "HOGEHOGE='x'\nMODE='fast'\nTEST='3'\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			code, stdout, stderr := runTool(t, "-s", path, "-f", tt.format, "--line", "x -t 3")
			if code != exitOK {
				t.Fatalf("exit code = %d, stderr = %q", code, stderr)
			}
			if !strings.Contains(stdout, tt.want) {
				t.Errorf("stdout = %q, want it to contain %q", stdout, tt.want)
			}
		})
	}
}

func TestRunSchemaFromEnv(t *testing.T) {
	old := defaultSchema
	defaultSchema = writeDemoSchema(t)
	t.Cleanup(func() { defaultSchema = old })

	if code, _, stderr := runTool(t, "--", "x"); code != exitOK {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
}

func TestRunHelp(t *testing.T) {
	path := writeDemoSchema(t)
	code, stdout, _ := runTool(t, "-s", path, "--prog", "other", "--", "--help")
	if code != exitOK {
		t.Fatalf("exit code = %d, want %d", code, exitOK)
	}
	if !strings.HasPrefix(stdout, "usage: other HOGEHOGE\n\n positionals:\n") {
		t.Errorf("stdout = %q", stdout)
	}

	code, stdout, _ = runTool(t, "--help")
	if code != exitOK || !strings.Contains(stdout, "USAGE:") {
		t.Errorf("tool help: code = %d, stdout = %q", code, stdout)
	}
}

func TestRunErrors(t *testing.T) {
	path := writeDemoSchema(t)
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	old := defaultSchema
	defaultSchema = ""
	t.Cleanup(func() { defaultSchema = old })

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{name: "unknown option", args: []string{"-s", path, "--", "x", "--bogus"}, wantCode: exitParse, wantStderr: "error: unknown option --bogus\n\nusage: demo HOGEHOGE\n"},
		{name: "bad value", args: []string{"-s", path, "--", "x", "-t", "ten"}, wantCode: exitParse, wantStderr: `error on parsing opt "--test"`},
		{name: "missing positional", args: []string{"-s", path, "--"}, wantCode: exitParse, wantStderr: "positional HOGEHOGE required"},
		{name: "no schema", args: []string{"--", "x"}, wantCode: exitUsage, wantStderr: "no declaration file"},
		{name: "missing schema", args: []string{"-s", missing, "--", "x"}, wantCode: exitUsage, wantStderr: "missing.yaml"},
		{name: "bad tool flag", args: []string{"--bogus"}, wantCode: exitUsage, wantStderr: "unknown flag: --bogus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runTool(t, tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if stdout != "" {
				t.Errorf("stdout = %q, want empty", stdout)
			}
			if !strings.Contains(stderr, tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.wantStderr)
			}
		})
	}
}

func TestRunIgnoreUnknown(t *testing.T) {
	path := writeDemoSchema(t)
	code, stdout, stderr := runTool(t, "-s", path, "--ignore-unknown", "-v", "--", "x", "--bogus", "extra")
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	if !strings.Contains(stdout, `"hogehoge": "x"`) {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, `argspec: skipped ["--bogus" "extra"]`) {
		t.Errorf("stderr = %q, want skipped tokens logged", stderr)
	}
}
