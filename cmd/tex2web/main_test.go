package main

import (
	"strings"
	"testing"
)

func TestRun_NoArgs(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv()
	if got := run(nil, env); got != ExitUsage {
		t.Errorf("run() = %d, want %d", got, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "Usage:") {
		t.Errorf("usage not printed:\n%s", stderr.String())
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv()
	if got := run([]string{"frobnicate"}, env); got != ExitUsage {
		t.Errorf("run() = %d, want %d", got, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "Unknown command: frobnicate") {
		t.Errorf("error not reported:\n%s", stderr.String())
	}
}

func TestRun_Version(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv()
	if got := run([]string{"version"}, env); got != ExitSuccess {
		t.Errorf("run() = %d, want %d", got, ExitSuccess)
	}
	if got := stdout.String(); got != "tex2web dev\n" {
		t.Errorf("version output = %q", got)
	}
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "bare help", args: []string{"help"}, want: "Commands:"},
		{name: "long flag", args: []string{"--help"}, want: "Commands:"},
		{name: "help convert", args: []string{"help", "convert"}, want: "tex2web convert"},
		{name: "help serve", args: []string{"help", "serve"}, want: "tex2web serve"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, _ := testEnv()
			if got := run(tt.args, env); got != ExitSuccess {
				t.Errorf("run(%v) = %d, want %d", tt.args, got, ExitSuccess)
			}
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, stdout.String())
			}
		})
	}
}

func TestRun_ConvertBadFlags(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv()
	if got := run([]string{"convert", "--no-such-flag"}, env); got != ExitUsage {
		t.Errorf("run() = %d, want %d", got, ExitUsage)
	}
}
