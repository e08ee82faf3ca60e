package operatorconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.FieldManager != "rustfs-operator" {
		t.Errorf("FieldManager = %q, want rustfs-operator", cfg.FieldManager)
	}
	if cfg.FallbackImage == "" {
		t.Errorf("FallbackImage must not be empty")
	}
	if cfg.LeaderElection {
		t.Errorf("LeaderElection must default to false")
	}
}

func TestLoadNoFileUsesViperOverrides(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("field-manager", "custom-manager")
	viper.Set("leader-election", true)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.FieldManager != "custom-manager" {
		t.Errorf("FieldManager = %q, want custom-manager", cfg.FieldManager)
	}
	if !cfg.LeaderElection {
		t.Errorf("LeaderElection must reflect the viper override")
	}
	if cfg.FallbackImage != Default().FallbackImage {
		t.Errorf("unset keys must keep their default, got FallbackImage=%q", cfg.FallbackImage)
	}
}

func TestLoadFileOverlayWinsOverDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("fallbackImage: custom/image:v9\n"), 0o644); err != nil {
		t.Fatalf("writing test config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.FallbackImage != "custom/image:v9" {
		t.Errorf("FallbackImage = %q, want custom/image:v9", cfg.FallbackImage)
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	t.Cleanup(viper.Reset)
	if _, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
