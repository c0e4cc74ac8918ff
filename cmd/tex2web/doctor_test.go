package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestRunDoctorCmd_JSON(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv()
	runDoctorCmd([]string{"--json"}, env)

	var result doctorResult
	if err := json.NewDecoder(bytes.NewReader(stdout.Bytes())).Decode(&result); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, stdout.String())
	}

	if result.Status == "" {
		t.Error("status is empty")
	}
	if len(result.Tools) != len(checkedTools) {
		t.Errorf("got %d tool entries, want %d", len(result.Tools), len(checkedTools))
	}
	names := map[string]bool{}
	for _, tool := range result.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"pandoc", "quarto", "pdflatex", "pdftoppm"} {
		if !names[want] {
			t.Errorf("tool %s missing from report", want)
		}
	}
}

func TestRunDoctorCmd_Human(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv()
	runDoctorCmd(nil, env)

	out := stdout.String()
	for _, part := range []string{"tex2web doctor", "External tools", "Status:"} {
		if !strings.Contains(out, part) {
			t.Errorf("output missing %q:\n%s", part, out)
		}
	}
}

func TestToolVersion_UnknownTool(t *testing.T) {
	t.Parallel()

	if got := toolVersion("tool-that-does-not-exist-xyz", []string{"--version"}); got != "" {
		t.Errorf("toolVersion() = %q, want empty for missing tool", got)
	}
}
