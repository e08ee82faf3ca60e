// Package util collects small, pure helpers shared by the resource builders.
// Grounded on the teacher's support/util package (container/env-var mutation
// helpers used throughout control-plane-operator's builders), rebuilt here
// against the rustfs domain types rather than copied, since the teacher's
// pack extraction kept only that package's tests.
package util

import corev1 "k8s.io/api/core/v1"

// UpsertEnvVar sets ev on c, replacing any existing entry with the same
// name. Later callers always win, matching the "later entries override
// earlier ones by name" rule in spec §4.3.
func UpsertEnvVar(c *corev1.Container, ev corev1.EnvVar) {
	for i := range c.Env {
		if c.Env[i].Name == ev.Name {
			c.Env[i] = ev
			return
		}
	}
	c.Env = append(c.Env, ev)
}

// UpsertEnvVars applies UpsertEnvVar for each entry in order.
func UpsertEnvVars(c *corev1.Container, evs []corev1.EnvVar) {
	for _, ev := range evs {
		UpsertEnvVar(c, ev)
	}
}

// UpsertVolumeMount sets vm on c, replacing any existing mount at the same
// path.
func UpsertVolumeMount(c *corev1.Container, vm corev1.VolumeMount) {
	for i := range c.VolumeMounts {
		if c.VolumeMounts[i].MountPath == vm.MountPath {
			c.VolumeMounts[i] = vm
			return
		}
	}
	c.VolumeMounts = append(c.VolumeMounts, vm)
}
