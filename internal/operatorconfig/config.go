// Package operatorconfig loads the small set of operator-wide tunables
// (§10.2): the field-manager name, the default fallback image, the
// leader-election toggle and the manager's listener addresses. Flags are bound into viper by cmd/ the same way
// kubernetes-mcp-server's root command binds its pflag set
// (`viper.BindPFlags(rootCmd.Flags())`); this package only reads the
// resolved values back out into a plain struct so the reconciler never
// imports viper or cobra directly.
package operatorconfig

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"sigs.k8s.io/yaml"
)

// Config is the fully-resolved operator configuration. The reconciler
// receives this struct, never a viper instance.
type Config struct {
	// FieldManager is the identity used on every server-side apply write
	// (spec GLOSSARY "Field manager").
	FieldManager string `json:"fieldManager"`

	// FallbackImage is used for a pool's container when Tenant.spec.image
	// is empty.
	FallbackImage string `json:"fallbackImage"`

	// LeaderElection toggles controller-runtime manager leader election.
	LeaderElection bool `json:"leaderElection"`

	// MetricsBindAddress is the manager's metrics listener address.
	MetricsBindAddress string `json:"metricsBindAddress"`

	// HealthProbeBindAddress is the manager's healthz/readyz listener address.
	HealthProbeBindAddress string `json:"healthProbeBindAddress"`
}

// Default returns the baseline configuration used when no flags or config
// file override it.
func Default() Config {
	return Config{
		FieldManager:            "rustfs-operator",
		FallbackImage:           "rustfs/rustfs:latest",
		LeaderElection:          false,
		MetricsBindAddress:      ":8080",
		HealthProbeBindAddress:  ":8081",
	}
}

// Load resolves a Config from the already-bound viper keys and, if
// configFile is non-empty, overlays values from a YAML file on top of the
// flag-derived values (file values win, matching the common "flags set
// defaults, file narrows them" convention). There is no fsnotify-based
// hot-reload: the operator is meant to restart on config change, the same
// way the teacher's manager binaries do (see DESIGN.md).
func Load(configFile string) (Config, error) {
	cfg := Default()

	if v := viper.GetString("field-manager"); v != "" {
		cfg.FieldManager = v
	}
	if v := viper.GetString("fallback-image"); v != "" {
		cfg.FallbackImage = v
	}
	if viper.IsSet("leader-election") {
		cfg.LeaderElection = viper.GetBool("leader-election")
	}
	if v := viper.GetString("metrics-bind-address"); v != "" {
		cfg.MetricsBindAddress = v
	}
	if v := viper.GetString("health-probe-bind-address"); v != "" {
		cfg.HealthProbeBindAddress = v
	}

	if configFile == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(configFile)
	if err != nil {
		return cfg, fmt.Errorf("reading config file %q: %w", configFile, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %q: %w", configFile, err)
	}
	return cfg, nil
}
