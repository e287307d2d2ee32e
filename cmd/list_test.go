package cmd

import (
	"strings"
	"testing"
	"time"
)

func TestShortenID(t *testing.T) {
	if got := shortenID("abcdefghijklmnop"); got != "abcdefgh" {
		t.Errorf("shortenID() = %q", got)
	}
	if got := shortenID("short"); got != "short" {
		t.Errorf("shortenID() = %q, want unchanged", got)
	}
}

func TestFormatRelativeDate(t *testing.T) {
	now := time.Now()

	today := formatRelativeDate(now.Add(-2 * time.Hour))
	if !strings.HasPrefix(today, "Today") {
		t.Errorf("recent date = %q, want Today prefix", today)
	}

	old := formatRelativeDate(now.AddDate(-2, 0, 0))
	if len(old) != len("2006-01-02") {
		t.Errorf("old date = %q, want full date", old)
	}
}

func TestRootCommandWiring(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"projects", "list", "show", "workspaces", "export", "serve"} {
		if !names[want] {
			t.Errorf("subcommand %q not registered", want)
		}
	}
}
