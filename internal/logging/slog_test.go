package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()

	tests := []struct {
		level string
		msg   string
		attr  string
	}{
		{"DEBUG", "dbg", "a=1"},
		{"INFO", "inf", "b=2"},
		{"WARN", "wrn", "c=3"},
		{"ERROR", "err", "d=4"},
	}
	for _, tc := range tests {
		for _, want := range []string{"level=" + tc.level, "msg=" + tc.msg, tc.attr} {
			if !strings.Contains(out, want) {
				t.Fatalf("expected %q in output:\n%s", want, out)
			}
		}
	}
}

func TestSlogLogger_With(t *testing.T) {
	log, buf := newTestLogger(t)

	log.With("component", "directory", "tenant_id", "2").Info(context.Background(), "payment recorded", "month", "2024-06")

	out := buf.String()
	for _, s := range []string{"level=INFO", `msg="payment recorded"`, "component=directory", "tenant_id=2", "month=2024-06"} {
		if !strings.Contains(out, s) {
			t.Fatalf("expected %q in output, got:\n%s", s, out)
		}
	}
}

func TestSlogLogger_RedactsSecrets(t *testing.T) {
	log, buf := newTestLogger(t)

	args := []any{"email", "tenant1@building.com", "password", "tenant123", "Code", "123456"}
	log.With("token", "eyJ.abc").Warn(context.Background(), "login attempt", args...)

	out := buf.String()
	for _, leaked := range []string{"tenant123", "123456", "eyJ.abc"} {
		if strings.Contains(out, leaked) {
			t.Fatalf("secret %q leaked:\n%s", leaked, out)
		}
	}
	if !strings.Contains(out, "email=tenant1@building.com") || !strings.Contains(out, redacted) {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if args[3] != "tenant123" {
		t.Fatalf("caller args modified: %v", args)
	}
}

func TestRedact_OddAndNonStringKeys(t *testing.T) {
	args := []any{1, "password", "secret", "x", "password"}
	got := redact(args)
	if got[3] != redacted {
		t.Fatalf("expected value after \"secret\" key to be redacted, got %v", got)
	}
	if got[1] != "password" || got[4] != "password" {
		t.Fatalf("keys or trailing element changed: %v", got)
	}
}
