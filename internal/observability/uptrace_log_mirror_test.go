package observability

import (
	"errors"
	"testing"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap/zapcore"
)

func TestBuildOTelLogAttributes(t *testing.T) {
	attrs := buildOTelLogAttributes([]any{"source", "totals", "rows", 1200, "columns"})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "source" || attrs[0].Value.AsString() != "totals" {
		t.Fatalf("unexpected source attribute")
	}
	if attrs[1].Key != "rows" || attrs[1].Value.AsInt64() != 1200 {
		t.Fatalf("unexpected rows attribute")
	}
	if attrs[2].Key != "columns" || attrs[2].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected columns attribute")
	}
}

func TestBuildOTelLogAttributes_NonStringKey(t *testing.T) {
	attrs := buildOTelLogAttributes([]any{42, "value"})
	if len(attrs) != 1 || attrs[0].Key != "arg_0" {
		t.Fatalf("unexpected attributes: %+v", attrs)
	}
}

func TestToOTelLogValue(t *testing.T) {
	if v := toOTelLogValue([]string{"player", "season"}); v.Kind() != otellog.KindSlice || len(v.AsSlice()) != 2 {
		t.Fatalf("expected slice value, got %s", v.Kind())
	}
	if v := toOTelLogValue(1500 * time.Millisecond); v.AsString() != "1.5s" {
		t.Fatalf("unexpected duration value: %s", v.AsString())
	}
	if v := toOTelLogValue(errors.New("boom")); v.AsString() != "boom" {
		t.Fatalf("unexpected error value: %s", v.AsString())
	}
	if v := toOTelLogValue(0.5); v.Kind() != otellog.KindFloat64 {
		t.Fatalf("expected float value, got %s", v.Kind())
	}
}

func TestToOTelSeverity(t *testing.T) {
	cases := map[zapcore.Level]otellog.Severity{
		zapcore.DebugLevel: otellog.SeverityDebug,
		zapcore.InfoLevel:  otellog.SeverityInfo,
		zapcore.WarnLevel:  otellog.SeverityWarn,
		zapcore.ErrorLevel: otellog.SeverityError,
		zapcore.FatalLevel: otellog.SeverityFatal,
	}
	for level, want := range cases {
		if got := toOTelSeverity(level); got != want {
			t.Fatalf("level %s: got %v want %v", level, got, want)
		}
	}
}
