package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"clubfin/internal/core"
)

func TestLoggerComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Handler: slog.NewTextHandler(&buf, nil), Component: ComponentReports})
	l.WithFields(NewFields().WithWarning(core.RowWarning{Sheet: "Revenues", Row: 3, Reason: "bad amount"})).
		Warn("row excluded")

	out := buf.String()
	for _, want := range []string{"component=reports", "sheet=Revenues", "row=3", `reason="bad amount"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
	if l.Component() != ComponentReports {
		t.Fatalf("component=%q", l.Component())
	}
}

func TestWithAccountOmitsPassword(t *testing.T) {
	f := NewFields().WithAccount(core.Account{Username: "ada", Password: "secret", Permissions: core.PermissionTreasurer})
	for _, v := range f {
		if v == "secret" {
			t.Fatalf("password leaked into fields: %v", f)
		}
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q)=%v want %v", in, got, want)
		}
	}
}

func TestContextRoundTrip(t *testing.T) {
	l := Discard().WithComponent(ComponentShell)
	ctx := NewContext(context.Background(), l)
	if FromContext(ctx) != l {
		t.Fatalf("expected stored logger")
	}
	if FromContext(context.Background()) == nil {
		t.Fatalf("expected fallback logger")
	}
}
