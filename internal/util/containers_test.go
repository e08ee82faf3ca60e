package util

import (
	"testing"

	corev1 "k8s.io/api/core/v1"
)

func TestUpsertEnvVarAppendsNew(t *testing.T) {
	c := &corev1.Container{}
	UpsertEnvVar(c, corev1.EnvVar{Name: "A", Value: "1"})
	if len(c.Env) != 1 || c.Env[0].Value != "1" {
		t.Errorf("expected one env var A=1, got %v", c.Env)
	}
}

func TestUpsertEnvVarReplacesByName(t *testing.T) {
	c := &corev1.Container{Env: []corev1.EnvVar{{Name: "A", Value: "1"}}}
	UpsertEnvVar(c, corev1.EnvVar{Name: "A", Value: "2"})
	if len(c.Env) != 1 || c.Env[0].Value != "2" {
		t.Errorf("expected A to be replaced in place, got %v", c.Env)
	}
}

func TestUpsertEnvVarsPreservesCallerOrderForNewEntries(t *testing.T) {
	c := &corev1.Container{}
	UpsertEnvVars(c, []corev1.EnvVar{
		{Name: "A", Value: "1"},
		{Name: "B", Value: "2"},
	})
	if len(c.Env) != 2 || c.Env[0].Name != "A" || c.Env[1].Name != "B" {
		t.Errorf("unexpected env order: %v", c.Env)
	}
}

func TestUpsertVolumeMountReplacesByPath(t *testing.T) {
	c := &corev1.Container{VolumeMounts: []corev1.VolumeMount{{Name: "vol-0", MountPath: "/data/rustfs0"}}}
	UpsertVolumeMount(c, corev1.VolumeMount{Name: "vol-0-renamed", MountPath: "/data/rustfs0"})
	if len(c.VolumeMounts) != 1 || c.VolumeMounts[0].Name != "vol-0-renamed" {
		t.Errorf("expected mount at /data/rustfs0 to be replaced, got %v", c.VolumeMounts)
	}
}
