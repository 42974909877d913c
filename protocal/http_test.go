package protocal

import (
	"testing"

	"album-uploader/configs"

	"github.com/sirupsen/logrus"
)

// TestSetupLogging tests level and formatter selection
func TestSetupLogging(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)
	defer logrus.SetFormatter(&logrus.TextFormatter{})

	tests := []struct {
		name      string
		cfg       configs.App
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{name: "defaults", cfg: configs.App{}, wantLevel: logrus.InfoLevel},
		{name: "json warn", cfg: configs.App{LogLevel: "warn", LogFormat: "json"}, wantLevel: logrus.WarnLevel, wantJSON: true},
		{name: "debug flag raises level", cfg: configs.App{LogLevel: "error", Debug: true}, wantLevel: logrus.DebugLevel},
		{name: "trace stays trace", cfg: configs.App{LogLevel: "trace", Debug: true}, wantLevel: logrus.TraceLevel},
		{name: "unknown level", cfg: configs.App{LogLevel: "loud"}, wantLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogging(tt.cfg)

			if logrus.GetLevel() != tt.wantLevel {
				t.Errorf("expected level %v, got %v", tt.wantLevel, logrus.GetLevel())
			}
			_, isJSON := logrus.StandardLogger().Formatter.(*logrus.JSONFormatter)
			if isJSON != tt.wantJSON {
				t.Errorf("expected json formatter %v, got %v", tt.wantJSON, isJSON)
			}
		})
	}
}
