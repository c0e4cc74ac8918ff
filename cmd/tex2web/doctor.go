package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Tools    []toolInfo `json:"tools"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// toolInfo holds detection results for one external tool.
type toolInfo struct {
	Name    string `json:"name"`
	Purpose string `json:"purpose"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// checkedTool describes one tool the doctor probes.
type checkedTool struct {
	name        string
	purpose     string
	versionArgs []string
	required    bool
	missingHint string
}

// checkedTools lists the external programs the pipeline shells out to.
// Only pandoc is a hard requirement; the rest degrade specific features.
var checkedTools = []checkedTool{
	{
		name:        "pandoc",
		purpose:     "LaTeX to HTML conversion",
		versionArgs: []string{"--version"},
		required:    true,
		missingHint: "pandoc not found; install it from https://pandoc.org",
	},
	{
		name:        "quarto",
		purpose:     "multi-page site generation",
		versionArgs: []string{"--version"},
		missingHint: "quarto not found; structured documents fall back to single pages",
	},
	{
		name:        "pdflatex",
		purpose:     "TikZ diagram compilation",
		versionArgs: []string{"--version"},
		missingHint: "pdflatex not found; TikZ diagrams are skipped",
	},
	{
		name:        "pdftoppm",
		purpose:     "TikZ diagram rasterization",
		versionArgs: []string{"-v"},
		missingHint: "pdftoppm not found; TikZ diagrams are skipped",
	},
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor()

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor() *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	for _, tool := range checkedTools {
		checkTool(result, tool)
	}
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}
	return result
}

// checkTool probes one external tool and records the outcome.
func checkTool(result *doctorResult, tool checkedTool) {
	info := toolInfo{Name: tool.name, Purpose: tool.purpose}

	path, err := exec.LookPath(tool.name)
	if err != nil {
		if tool.required {
			result.Errors = append(result.Errors, tool.missingHint)
		} else {
			result.Warnings = append(result.Warnings, tool.missingHint)
		}
		result.Tools = append(result.Tools, info)
		return
	}

	info.Found = true
	info.Path = path
	info.Version = toolVersion(tool.name, tool.versionArgs)
	result.Tools = append(result.Tools, info)
}

// toolVersion runs the tool's version command and returns the first output
// line. Some tools (pdftoppm) print version information to stderr.
func toolVersion(name string, args []string) string {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	_ = cmd.Run()

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		out = strings.TrimSpace(stderr.String())
	}
	if out == "" {
		return ""
	}
	line, _, _ := strings.Cut(out, "\n")
	return strings.TrimSpace(line)
}

// checkSystem verifies system requirements.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "tex2web-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "tex2web doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "External tools")
	for _, tool := range r.Tools {
		if tool.Found {
			fmt.Fprintf(w, "  [OK] %s (%s): %s\n", tool.Name, tool.Purpose, tool.Path)
			if tool.Version != "" {
				fmt.Fprintf(w, "       %s\n", tool.Version)
			}
		} else {
			fmt.Fprintf(w, "  [MISSING] %s (%s)\n", tool.Name, tool.Purpose)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with reduced features")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
