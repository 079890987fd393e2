package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetupLogging(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())
	defer func(l zerolog.Logger) { log.Logger = l }(log.Logger)

	var buf bytes.Buffer
	if err := SetupLogging("warn", &buf, false); err != nil {
		t.Fatalf("setup: %v", err)
	}
	log.Info().Msg("hidden")
	log.Warn().Int("game", 3).Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line written at warn level: %s", out)
	}
	if !strings.Contains(out, `"message":"shown"`) || !strings.Contains(out, `"game":3`) {
		t.Fatalf("unexpected output: %s", out)
	}

	if err := SetupLogging("loud", &buf, false); err == nil {
		t.Fatalf("expected error for bad level")
	}
}
