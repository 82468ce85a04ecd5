package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/tabular/config"
	"github.com/sirupsen/logrus"
)

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	log, closer, err := New(config.LoggingConfig{Level: "debug",
		Format: "json", Output: path})
	if err != nil {
		t.Fatal(err)
	}

	if log.GetLevel() != logrus.DebugLevel {
		t.Errorf("new: got level %v, want debug", log.GetLevel())
	}
	log.WithField("episode", 3).Info("progress")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entry map[string]interface{}
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("new: log is not JSON: %v", err)
	}
	if entry["msg"] != "progress" || entry["episode"] != 3.0 {
		t.Errorf("new: unexpected entry %v", entry)
	}
}

func TestNewErrors(t *testing.T) {
	tests := []config.LoggingConfig{
		{Level: "loud", Format: "text"},
		{Level: "info", Format: "xml"},
		{Level: "info", Format: "text",
			Output: filepath.Join(t.TempDir(), "missing", "run.log")},
	}

	for _, c := range tests {
		if _, _, err := New(c); err == nil {
			t.Errorf("new: expected error for %+v", c)
		}
	}
}
