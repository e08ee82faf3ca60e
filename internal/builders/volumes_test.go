package builders

import (
	"testing"

	rustfsv1alpha1 "github.com/rustfs/rustfs-operator/api/rustfs/v1alpha1"
)

func TestRustfsVolumesEnv(t *testing.T) {
	tests := map[string]struct {
		tenant    string
		namespace string
		pools     []rustfsv1alpha1.Pool
		expected  string
	}{
		"single pool, minimal create scenario from spec §8 #1": {
			tenant:    "dev",
			namespace: "default",
			pools: []rustfsv1alpha1.Pool{
				{Name: "p0", Servers: 1, Persistence: rustfsv1alpha1.PoolPersistence{VolumesPerServer: 4}},
			},
			expected: "http://dev-p0-{0...0}.dev-hl.default.svc.cluster.local:9000/data/rustfs{0...3}",
		},
		"multi-pool unified volumes, spec §8 #4": {
			tenant:    "T",
			namespace: "NS",
			pools: []rustfsv1alpha1.Pool{
				{Name: "a", Servers: 4, Persistence: rustfsv1alpha1.PoolPersistence{VolumesPerServer: 2}},
				{Name: "b", Servers: 2, Persistence: rustfsv1alpha1.PoolPersistence{VolumesPerServer: 4}},
			},
			expected: "http://T-a-{0...3}.T-hl.NS.svc.cluster.local:9000/data/rustfs{0...1} " +
				"http://T-b-{0...1}.T-hl.NS.svc.cluster.local:9000/data/rustfs{0...3}",
		},
		"custom path overrides /data default": {
			tenant:    "dev",
			namespace: "default",
			pools: []rustfsv1alpha1.Pool{
				{Name: "p0", Servers: 1, Persistence: rustfsv1alpha1.PoolPersistence{VolumesPerServer: 4, Path: "/mnt"}},
			},
			expected: "http://dev-p0-{0...0}.dev-hl.default.svc.cluster.local:9000/mnt/rustfs{0...3}",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := RustfsVolumesEnv(tc.tenant, tc.namespace, tc.pools)
			if got != tc.expected {
				t.Errorf("RustfsVolumesEnv() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestRustfsVolumesEnvIdenticalAcrossPools(t *testing.T) {
	tenant := &rustfsv1alpha1.Tenant{}
	tenant.Name = "T"
	tenant.Namespace = "NS"
	tenant.Spec.Pools = []rustfsv1alpha1.Pool{
		{Name: "a", Servers: 4, Persistence: rustfsv1alpha1.PoolPersistence{VolumesPerServer: 2}},
		{Name: "b", Servers: 2, Persistence: rustfsv1alpha1.PoolPersistence{VolumesPerServer: 4}},
	}

	desired := Build(tenant, "fallback:latest")
	if len(desired.Workloads) != 2 {
		t.Fatalf("expected 2 workloads, got %d", len(desired.Workloads))
	}

	var volumesEnvs []string
	for _, w := range desired.Workloads {
		for _, ev := range w.Spec.Template.Spec.Containers[0].Env {
			if ev.Name == "RUSTFS_VOLUMES" {
				volumesEnvs = append(volumesEnvs, ev.Value)
			}
		}
	}
	if len(volumesEnvs) != 2 || volumesEnvs[0] != volumesEnvs[1] {
		t.Errorf("RUSTFS_VOLUMES must be identical across every pool of one tenant: got %v", volumesEnvs)
	}
}
