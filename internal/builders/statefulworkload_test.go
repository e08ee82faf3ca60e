package builders

import (
	"testing"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"

	rustfsv1alpha1 "github.com/rustfs/rustfs-operator/api/rustfs/v1alpha1"
)

func samplePool(name string, servers, volumesPerServer int32) rustfsv1alpha1.Pool {
	return rustfsv1alpha1.Pool{
		Name:    name,
		Servers: servers,
		Persistence: rustfsv1alpha1.PoolPersistence{
			VolumesPerServer: volumesPerServer,
		},
	}
}

func TestBuildStatefulWorkloadBasics(t *testing.T) {
	tenant := newTenant("dev", "default")
	pool := samplePool("p0", 3, 2)

	sts := BuildStatefulWorkload(tenant, pool, "volumes-env", "fallback:latest")

	if sts.Name != "dev-p0" {
		t.Errorf("name = %q, want dev-p0", sts.Name)
	}
	if sts.Spec.ServiceName != "dev-hl" {
		t.Errorf("serviceName = %q, want dev-hl", sts.Spec.ServiceName)
	}
	if sts.Spec.Replicas == nil || *sts.Spec.Replicas != 3 {
		t.Errorf("replicas = %v, want 3", sts.Spec.Replicas)
	}
	if sts.Spec.PodManagementPolicy != appsv1.ParallelPodManagement {
		t.Errorf("default podManagementPolicy = %v, want Parallel", sts.Spec.PodManagementPolicy)
	}
	if len(sts.Spec.VolumeClaimTemplates) != 2 {
		t.Fatalf("expected 2 volume claim templates, got %d", len(sts.Spec.VolumeClaimTemplates))
	}
	if sts.Spec.VolumeClaimTemplates[0].Name != "vol-0" || sts.Spec.VolumeClaimTemplates[1].Name != "vol-1" {
		t.Errorf("unexpected volume claim template names: %q, %q",
			sts.Spec.VolumeClaimTemplates[0].Name, sts.Spec.VolumeClaimTemplates[1].Name)
	}

	container := sts.Spec.Template.Spec.Containers[0]
	if container.Image != "fallback:latest" {
		t.Errorf("image = %q, want fallback:latest (tenant.Spec.Image unset)", container.Image)
	}
	if len(container.VolumeMounts) != 2 {
		t.Fatalf("expected 2 volume mounts, got %d", len(container.VolumeMounts))
	}
	if container.VolumeMounts[0].MountPath != "/data/rustfs0" || container.VolumeMounts[1].MountPath != "/data/rustfs1" {
		t.Errorf("unexpected mount paths: %q, %q", container.VolumeMounts[0].MountPath, container.VolumeMounts[1].MountPath)
	}
}

func TestBuildStatefulWorkloadExplicitOrderedReady(t *testing.T) {
	tenant := newTenant("dev", "default")
	tenant.Spec.PodManagementPolicy = rustfsv1alpha1.OrderedReadyPodManagement
	pool := samplePool("p0", 1, 1)

	sts := BuildStatefulWorkload(tenant, pool, "v", "img")
	if sts.Spec.PodManagementPolicy != appsv1.OrderedReadyPodManagement {
		t.Errorf("podManagementPolicy = %v, want OrderedReady", sts.Spec.PodManagementPolicy)
	}
}

func TestBuildStatefulWorkloadEnvOrderAndOverride(t *testing.T) {
	tenant := newTenant("dev", "default")
	tenant.Spec.CredsSecret = &corev1.LocalObjectReference{Name: "dev-creds"}
	tenant.Spec.Env = []corev1.EnvVar{
		{Name: "RUSTFS_CONSOLE_ENABLE", Value: "false"},
		{Name: "EXTRA", Value: "1"},
	}
	pool := samplePool("p0", 1, 1)

	sts := BuildStatefulWorkload(tenant, pool, "volumes-env", "img")
	container := sts.Spec.Template.Spec.Containers[0]

	byName := map[string]corev1.EnvVar{}
	for _, ev := range container.Env {
		byName[ev.Name] = ev
	}

	if byName["RUSTFS_CONSOLE_ENABLE"].Value != "false" {
		t.Errorf("tenant env must override derived env by name, got %q", byName["RUSTFS_CONSOLE_ENABLE"].Value)
	}
	if _, ok := byName["EXTRA"]; !ok {
		t.Errorf("tenant-supplied env var EXTRA must be present")
	}
	if byName["RUSTFS_ACCESS_KEY"].ValueFrom == nil || byName["RUSTFS_ACCESS_KEY"].ValueFrom.SecretKeyRef == nil {
		t.Errorf("RUSTFS_ACCESS_KEY must reference the creds secret, got %+v", byName["RUSTFS_ACCESS_KEY"])
	}
	if byName["RUSTFS_ACCESS_KEY"].ValueFrom.SecretKeyRef.Name != "dev-creds" {
		t.Errorf("RUSTFS_ACCESS_KEY secret name = %q, want dev-creds", byName["RUSTFS_ACCESS_KEY"].ValueFrom.SecretKeyRef.Name)
	}
}

func TestBuildStatefulWorkloadDefaultProbes(t *testing.T) {
	tenant := newTenant("dev", "default")
	pool := samplePool("p0", 1, 1)

	sts := BuildStatefulWorkload(tenant, pool, "v", "img")
	container := sts.Spec.Template.Spec.Containers[0]

	if container.LivenessProbe == nil || container.LivenessProbe.HTTPGet.Path != "/rustfs/health/live" {
		t.Errorf("unexpected default liveness probe: %+v", container.LivenessProbe)
	}
	if container.ReadinessProbe == nil || container.ReadinessProbe.HTTPGet.Path != "/rustfs/health/ready" {
		t.Errorf("unexpected default readiness probe: %+v", container.ReadinessProbe)
	}
}

func TestBuildStatefulWorkloadCustomProbeReplacesWholesale(t *testing.T) {
	tenant := newTenant("dev", "default")
	tenant.Spec.LivenessProbe = &corev1.Probe{InitialDelaySeconds: 5}
	pool := samplePool("p0", 1, 1)

	sts := BuildStatefulWorkload(tenant, pool, "v", "img")
	container := sts.Spec.Template.Spec.Containers[0]

	if container.LivenessProbe.InitialDelaySeconds != 5 {
		t.Errorf("custom probe not applied: %+v", container.LivenessProbe)
	}
	if container.LivenessProbe.HTTPGet != nil {
		t.Errorf("custom probe must replace the default wholesale, not merge: %+v", container.LivenessProbe)
	}
}

func TestBuildStatefulWorkloadDeterministic(t *testing.T) {
	tenant := newTenant("dev", "default")
	tenant.Spec.Pools = []rustfsv1alpha1.Pool{samplePool("p0", 2, 2)}
	pool := tenant.Spec.Pools[0]

	a := BuildStatefulWorkload(tenant, pool, "v", "img")
	b := BuildStatefulWorkload(tenant, pool, "v", "img")

	if a.Name != b.Name || *a.Spec.Replicas != *b.Spec.Replicas || len(a.Spec.Template.Spec.Containers[0].Env) != len(b.Spec.Template.Spec.Containers[0].Env) {
		t.Errorf("BuildStatefulWorkload must be a pure function of its inputs")
	}
}
