package observability_test

import (
	"testing"

	"github.com/rs/zerolog"

	"yoyo_hotels/internal/adapters/observability"
)

func TestNewLogger_Level(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":      zerolog.InfoLevel,
		"debug": zerolog.DebugLevel,
		"warn":  zerolog.WarnLevel,
		"bogus": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := observability.NewLogger("prod", in).GetLevel(); got != want {
			t.Fatalf("level %q: got %v want %v", in, got, want)
		}
	}
}
