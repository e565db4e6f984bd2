package main

import "testing"

func TestParseSteps(t *testing.T) {
	tests := []struct {
		args    []string
		want    int
		wantErr bool
	}{
		{args: nil, want: 1},
		{args: []string{" 3 "}, want: 3},
		{args: []string{"0"}, wantErr: true},
		{args: []string{"two"}, wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseSteps(tt.args)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseSteps(%v) err=%v wantErr=%v", tt.args, err, tt.wantErr)
		}
		if err == nil && got != tt.want {
			t.Fatalf("parseSteps(%v)=%d want=%d", tt.args, got, tt.want)
		}
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if v, err := parseVersion("1"); err != nil || v != 1 {
		t.Fatalf("parseVersion(1)=%d err=%v", v, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected negative version to fail")
	}
	if _, err := parseTarget("abc"); err == nil {
		t.Fatalf("expected non-numeric target to fail")
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := rootCmd()
	for _, name := range []string{"up", "down", "version", "force", "goto"} {
		if sub, _, err := cmd.Find([]string{name}); err != nil || sub.Name() != name {
			t.Fatalf("missing %s subcommand: %v", name, err)
		}
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("DB_BINARY_PARAMETERS", "")
	if v, err := envBool("DB_BINARY_PARAMETERS", true); err != nil || !v {
		t.Fatalf("expected fallback true, got %v err=%v", v, err)
	}
	t.Setenv("DB_BINARY_PARAMETERS", "nope")
	if _, err := envBool("DB_BINARY_PARAMETERS", true); err == nil {
		t.Fatalf("expected parse error")
	}
}
