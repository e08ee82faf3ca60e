// Package diff implements the §4.4 semantic-equality check and the §4.5
// immutable-field guard for the stateful workload.
package diff

import (
	"fmt"

	"github.com/mitchellh/hashstructure/v2"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	rbacv1 "k8s.io/api/rbac/v1"
	apiequality "k8s.io/apimachinery/pkg/api/equality"
)

// workloadProjection is the subset of a StatefulSet that participates in
// semantic equality (§4.4): replicas, container image/env/resources/probes,
// scheduling fields, podManagementPolicy and priorityClassName. Server-set
// fields (status, revision hashes, generated labels) are deliberately
// excluded.
type workloadProjection struct {
	Replicas                  int32
	PodManagementPolicy       appsv1.PodManagementPolicyType
	PriorityClassName         string
	NodeSelector              map[string]string
	Affinity                  *corev1.Affinity
	Tolerations               []corev1.Toleration
	TopologySpreadConstraints []corev1.TopologySpreadConstraint
	Image                     string
	Env                       map[string]string
	Resources                 corev1.ResourceRequirements
	LivenessProbe             *corev1.Probe
	ReadinessProbe            *corev1.Probe
	StartupProbe              *corev1.Probe
}

func projectWorkload(sts *appsv1.StatefulSet) workloadProjection {
	p := workloadProjection{
		PodManagementPolicy:       sts.Spec.PodManagementPolicy,
		PriorityClassName:         sts.Spec.Template.Spec.PriorityClassName,
		NodeSelector:              sts.Spec.Template.Spec.NodeSelector,
		Affinity:                  sts.Spec.Template.Spec.Affinity,
		Tolerations:               sts.Spec.Template.Spec.Tolerations,
		TopologySpreadConstraints: sts.Spec.Template.Spec.TopologySpreadConstraints,
	}
	if sts.Spec.Replicas != nil {
		p.Replicas = *sts.Spec.Replicas
	}
	if len(sts.Spec.Template.Spec.Containers) > 0 {
		c := sts.Spec.Template.Spec.Containers[0]
		p.Image = c.Image
		p.Resources = c.Resources
		p.LivenessProbe = c.LivenessProbe
		p.ReadinessProbe = c.ReadinessProbe
		p.StartupProbe = c.StartupProbe
		p.Env = make(map[string]string, len(c.Env))
		for _, ev := range c.Env {
			// ValueFrom-backed entries (the credential envs) compare by
			// reference shape, not a resolved value the operator never reads.
			if ev.ValueFrom != nil && ev.ValueFrom.SecretKeyRef != nil {
				p.Env[ev.Name] = "secretKeyRef:" + ev.ValueFrom.SecretKeyRef.Name + "/" + ev.ValueFrom.SecretKeyRef.Key
				continue
			}
			p.Env[ev.Name] = ev.Value
		}
	}
	return p
}

// WorkloadsEqual reports whether live and desired are semantically equal
// per §4.4's projection. A fast hashstructure pre-check short-circuits the
// common steady-state case (no reconcile action) without walking the full
// apiequality.Semantic comparison on every pass.
func WorkloadsEqual(live, desired *appsv1.StatefulSet) (bool, error) {
	lp, dp := projectWorkload(live), projectWorkload(desired)

	lh, err := hashstructure.Hash(lp, hashstructure.FormatV2, nil)
	if err != nil {
		return false, fmt.Errorf("hashing live workload projection: %w", err)
	}
	dh, err := hashstructure.Hash(dp, hashstructure.FormatV2, nil)
	if err != nil {
		return false, fmt.Errorf("hashing desired workload projection: %w", err)
	}
	if lh == dh {
		return true, nil
	}
	// A hash match is taken as equal without further comparison. Hashes
	// can differ for semantically equal values (e.g. resource quantities
	// written in different units), so a hash mismatch falls back to
	// apiequality.Semantic before reporting a diff.
	return apiequality.Semantic.DeepEqual(lp, dp), nil
}

// ServiceEqual compares the declarative Spec fields of two services (§4.4).
func ServiceEqual(live, desired *corev1.Service) bool {
	return apiequality.Semantic.DeepEqual(live.Spec.Selector, desired.Spec.Selector) &&
		apiequality.Semantic.DeepEqual(live.Spec.Ports, desired.Spec.Ports) &&
		live.Spec.Type == desired.Spec.Type &&
		live.Spec.ClusterIP == desired.Spec.ClusterIP
}

// RoleEqual compares Role rules.
func RoleEqual(live, desired *rbacv1.Role) bool {
	return apiequality.Semantic.DeepEqual(live.Rules, desired.Rules)
}

// RoleBindingEqual compares RoleBinding subjects and roleRef.
func RoleBindingEqual(live, desired *rbacv1.RoleBinding) bool {
	return apiequality.Semantic.DeepEqual(live.Subjects, desired.Subjects) &&
		apiequality.Semantic.DeepEqual(live.RoleRef, desired.RoleRef)
}
