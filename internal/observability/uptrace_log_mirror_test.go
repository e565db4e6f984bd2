package observability

import (
	"errors"
	"testing"

	"github.com/riskibarqy/esports-hub/internal/platform/logging"
	otellog "go.opentelemetry.io/otel/log"
)

func TestIsProbeRequestLog(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		args []any
		want bool
	}{
		{name: "health probe", msg: "http request", args: []any{"method", "GET", "path", "/healthz"}, want: true},
		{name: "metrics scrape", msg: "http request", args: []any{"path", "/metrics"}, want: true},
		{name: "content request", msg: "http request", args: []any{"path", "/v1/news"}},
		{name: "other event", msg: "admin request rejected", args: []any{"path", "/healthz"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isProbeRequestLog(tt.msg, tt.args); got != tt.want {
				t.Fatalf("isProbeRequestLog()=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestMirrorAttributes(t *testing.T) {
	attrs := mirrorAttributes([]any{"team_id", "t1", 42, "orphan-key-value", "error", errors.New("boom"), "dangling"})
	if len(attrs) != 4 {
		t.Fatalf("expected 4 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "team_id" || attrs[0].Value.AsString() != "t1" {
		t.Fatalf("unexpected team_id attribute: %+v", attrs[0])
	}
	if attrs[1].Key != "arg_1" {
		t.Fatalf("expected positional key for non-string key, got %q", attrs[1].Key)
	}
	if attrs[2].Value.AsString() != "boom" {
		t.Fatalf("unexpected error attribute: %+v", attrs[2])
	}
	if attrs[3].Key != "dangling" || attrs[3].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected dangling attribute: %+v", attrs[3])
	}
}

func TestMirrorValue_FieldErrors(t *testing.T) {
	type fieldErrors map[string][]string
	v := mirrorValue(fieldErrors{"title": {"is required"}, "roster": {"must contain at least 1 item(s)"}}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	items := v.AsMap()
	if len(items) != 2 || items[0].Key != "roster" {
		t.Fatalf("expected sorted keys, got %+v", items)
	}
	if items[1].Value.Kind() != otellog.KindSlice {
		t.Fatalf("expected slice value for title, got %s", items[1].Value.Kind())
	}
}

func TestSeverityOf(t *testing.T) {
	cases := map[logging.Level]otellog.Severity{
		logging.LevelDebug: otellog.SeverityDebug,
		logging.LevelInfo:  otellog.SeverityInfo,
		logging.LevelWarn:  otellog.SeverityWarn,
		logging.LevelError: otellog.SeverityError,
	}
	for level, want := range cases {
		if got := severityOf(level); got != want {
			t.Fatalf("severityOf(%s)=%v want=%v", level, got, want)
		}
	}
}
