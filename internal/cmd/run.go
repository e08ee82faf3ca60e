package cmd

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/controller-runtime/pkg/webhook"

	rustfsv1alpha1 "github.com/rustfs/rustfs-operator/api/rustfs/v1alpha1"
	"github.com/rustfs/rustfs-operator/internal/controller"
	"github.com/rustfs/rustfs-operator/internal/operatorconfig"
)

func newRunCmd() *cobra.Command {
	var (
		metricsAddr string
		probeAddr   string
		configPath  string
		logDev      bool
		logLevel    int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the Tenant reconciler",
		RunE: func(c *cobra.Command, args []string) error {
			_ = viper.BindPFlags(c.Flags())
			return runOperator(c.Context(), configPath, logDev, logLevel)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-bind-address", ":8080", "The address the metric endpoint binds to.")
	cmd.Flags().StringVar(&probeAddr, "health-probe-bind-address", ":8081", "The address the probe endpoint binds to.")
	cmd.Flags().String("field-manager", "rustfs-operator", "Field manager identity used on every server-side apply write.")
	cmd.Flags().String("fallback-image", "", "Default image used when a Tenant does not set spec.image.")
	cmd.Flags().Bool("leader-election", false, "Enable leader election for the manager.")
	cmd.Flags().StringVar(&configPath, "config", "", "Optional path to a YAML config file overlaying the flag defaults.")
	cmd.Flags().BoolVar(&logDev, "log-dev", false, "Enable development logging (human-friendly).")
	cmd.Flags().IntVar(&logLevel, "log-level", 0, "Log verbosity level (0=info only, 1=verbose, 2=debug).")

	return cmd
}

func runOperator(ctx context.Context, configPath string, dev bool, logLevel int) error {
	logger := zap.New(zap.UseDevMode(dev), zap.Level(zapcore.Level(-1*logLevel)))
	ctrl.SetLogger(logger)

	cfg, err := operatorconfig.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading operator config: %w", err)
	}

	scheme := clientgoscheme.Scheme
	if err := rustfsv1alpha1.AddToScheme(scheme); err != nil {
		return fmt.Errorf("registering rustfs.com/v1alpha1 scheme: %w", err)
	}

	mgr, err := ctrl.NewManager(ctrl.GetConfigOrDie(), ctrl.Options{
		Scheme:                 scheme,
		Metrics:                metricsserver.Options{BindAddress: cfg.MetricsBindAddress},
		HealthProbeBindAddress: cfg.HealthProbeBindAddress,
		LeaderElection:         cfg.LeaderElection,
		LeaderElectionID:       "rustfs-operator-leader",
		WebhookServer: webhook.NewServer(webhook.Options{
			TLSOpts: []func(*tls.Config){
				func(tc *tls.Config) { tc.MinVersion = tls.VersionTLS12 },
			},
		}),
	})
	if err != nil {
		return fmt.Errorf("unable to start manager: %w", err)
	}

	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		return fmt.Errorf("unable to set up health check: %w", err)
	}
	if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		return fmt.Errorf("unable to set up ready check: %w", err)
	}

	recorder := mgr.GetEventRecorderFor("rustfs-operator")
	reconciler := controller.NewTenantReconciler(mgr.GetClient(), recorder, cfg)
	if err := reconciler.SetupWithManager(mgr); err != nil {
		return fmt.Errorf("unable to set up tenant controller: %w", err)
	}

	return mgr.Start(ctx)
}
