package v1alpha1

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// PodManagementPolicyType mirrors appsv1.PodManagementPolicyType without importing apps/v1
// into the CRD schema boundary; the statefulset builder converts it at construction time.
// +kubebuilder:validation:Enum=OrderedReady;Parallel
type PodManagementPolicyType string

const (
	OrderedReadyPodManagement PodManagementPolicyType = "OrderedReady"
	ParallelPodManagement     PodManagementPolicyType = "Parallel"
)

// LoggingConfig selects how the storage process's own logs are persisted.
// When nil, the storage process logs to stdout/stderr only and no logging
// volume is attached to the pool's pods.
type LoggingConfig struct {
	// VolumeClaimTemplate is the claim used for the logging volume, following
	// the same shape as a pool's data volume claims.
	// +kubebuilder:validation:Required
	VolumeClaimTemplate corev1.PersistentVolumeClaimSpec `json:"volumeClaimTemplate"`

	// MountPath is where the logging volume is mounted in the container.
	// +kubebuilder:default="/logs"
	MountPath string `json:"mountPath,omitempty"`
}

// TenantSpec defines the desired state of a Tenant: a single unified,
// erasure-coded RustFS storage cluster assembled from one or more Pools.
type TenantSpec struct {
	// Image is the container image reference for the rustfs process. When
	// empty, the reconciler falls back to a static default image.
	Image string `json:"image,omitempty"`

	// ImagePullPolicy applies to every pool's container.
	// +kubebuilder:validation:Enum=Always;IfNotPresent;Never
	// +kubebuilder:default=IfNotPresent
	ImagePullPolicy corev1.PullPolicy `json:"imagePullPolicy,omitempty"`

	// Pools is the ordered set of server pools that together form the
	// unified cluster. Order is stable and affects the derived
	// RUSTFS_VOLUMES string.
	// +kubebuilder:validation:MinItems=1
	Pools []Pool `json:"pools"`

	// Env is merged into every pool's container environment, applied after
	// the reconciler's own derived entries so later entries (by name) win.
	Env []corev1.EnvVar `json:"env,omitempty"`

	// Scheduler, when set, is applied as schedulerName on every pool's pods.
	Scheduler string `json:"scheduler,omitempty"`

	// PodManagementPolicy controls rollout ordering for every pool's
	// stateful workload.
	// +kubebuilder:validation:Enum=OrderedReady;Parallel
	// +kubebuilder:default=Parallel
	PodManagementPolicy PodManagementPolicyType `json:"podManagementPolicy,omitempty"`

	// CredsSecret references, by name, a Secret in the Tenant's namespace
	// holding the accesskey/secretkey credential pair. The reconciler never
	// reads the values; it only validates structure (§4.6) and references
	// the secret from pod env.
	CredsSecret *corev1.LocalObjectReference `json:"credsSecret,omitempty"`

	// ServiceAccountName, when set, is an externally-managed identity the
	// reconciler will not create RBAC for unless CreateServiceAccountRBAC
	// is also true (see the decision table in the RBAC builder).
	ServiceAccountName string `json:"serviceAccountName,omitempty"`

	// CreateServiceAccountRBAC controls whether a Role/RoleBinding is
	// created to bind an externally-managed ServiceAccountName. Ignored
	// when ServiceAccountName is empty (a ServiceAccount is always created
	// in that case).
	CreateServiceAccountRBAC bool `json:"createServiceAccountRbac,omitempty"`

	// PriorityClassName is the default pod priority class, overridable per
	// pool.
	PriorityClassName string `json:"priorityClassName,omitempty"`

	// LivenessProbe, ReadinessProbe and StartupProbe replace the builder's
	// default probes wholesale when set (see DESIGN.md for the
	// merge-vs-replace decision).
	LivenessProbe  *corev1.Probe `json:"livenessProbe,omitempty"`
	ReadinessProbe *corev1.Probe `json:"readinessProbe,omitempty"`
	StartupProbe   *corev1.Probe `json:"startupProbe,omitempty"`

	// LoggingConfig, when set, attaches a dedicated logging volume to every
	// pool's pods.
	LoggingConfig *LoggingConfig `json:"loggingConfig,omitempty"`
}

// Pool is a homogeneous group of rustfs server processes. Scheduling fields
// are intentionally flat here (the user-facing schema) — PoolScheduling
// below is the nested view builders consume internally.
type Pool struct {
	// Name must be unique among the Tenant's pools and is used to derive
	// the stateful workload and pod names.
	// +kubebuilder:validation:MinLength=1
	Name string `json:"name"`

	// Servers is the number of rustfs server replicas in this pool.
	// +kubebuilder:validation:Minimum=1
	Servers int32 `json:"servers"`

	// Persistence describes the per-server volume claims for this pool.
	Persistence PoolPersistence `json:"persistence"`

	// --- flattened scheduling fields (see PoolScheduling) ---

	NodeSelector              map[string]string                 `json:"nodeSelector,omitempty"`
	Affinity                  *corev1.Affinity                  `json:"affinity,omitempty"`
	Tolerations               []corev1.Toleration               `json:"tolerations,omitempty"`
	TopologySpreadConstraints []corev1.TopologySpreadConstraint `json:"topologySpreadConstraints,omitempty"`
	Resources                 corev1.ResourceRequirements       `json:"resources,omitempty"`
	PriorityClassName         string                            `json:"priorityClassName,omitempty"`
}

// PoolScheduling is the nested, nameless view of a Pool's scheduling fields
// used internally by the stateful-workload builder. Flattening happens only
// at the CRD serialization boundary (Pool, above).
type PoolScheduling struct {
	NodeSelector              map[string]string
	Affinity                  *corev1.Affinity
	Tolerations               []corev1.Toleration
	TopologySpreadConstraints []corev1.TopologySpreadConstraint
	Resources                 corev1.ResourceRequirements
	PriorityClassName         string
}

// Scheduling returns the nested scheduling view of this pool.
func (p *Pool) Scheduling() PoolScheduling {
	return PoolScheduling{
		NodeSelector:              p.NodeSelector,
		Affinity:                  p.Affinity,
		Tolerations:               p.Tolerations,
		TopologySpreadConstraints: p.TopologySpreadConstraints,
		Resources:                 p.Resources,
		PriorityClassName:         p.PriorityClassName,
	}
}

// PoolPersistence describes the per-server volume layout for a pool.
type PoolPersistence struct {
	// VolumesPerServer is the number of volume claims (and mount paths)
	// created per server replica.
	// +kubebuilder:validation:Minimum=1
	VolumesPerServer int32 `json:"volumesPerServer"`

	// VolumeClaimTemplate is the template used for every volume claim in
	// this pool; its shape (storage class, access modes, size) is
	// immutable once the pool's stateful workload exists.
	// +kubebuilder:validation:Required
	VolumeClaimTemplate corev1.PersistentVolumeClaimSpec `json:"volumeClaimTemplate"`

	// Path is the mount path prefix for this pool's volumes. Defaults to
	// "/data".
	// +kubebuilder:default="/data"
	Path string `json:"path,omitempty"`

	// Labels and Annotations are applied to every volume claim in this
	// pool.
	Labels      map[string]string `json:"labels,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty"`
}

// PathOrDefault returns Path, defaulting to "/data".
func (p PoolPersistence) PathOrDefault() string {
	if p.Path == "" {
		return "/data"
	}
	return p.Path
}

// Tenant is the Schema for the tenants API.
// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:shortName=rft;scope=Namespaced
// +kubebuilder:printcolumn:name="State",type=string,JSONPath=`.status.currentState`
// +kubebuilder:printcolumn:name="Pools",type=integer,JSONPath=`.spec.pools.length`
// +kubebuilder:printcolumn:name="Age",type="date",JSONPath=".metadata.creationTimestamp"
type Tenant struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   TenantSpec   `json:"spec,omitempty"`
	Status TenantStatus `json:"status,omitempty"`
}

// TenantList contains a list of Tenant objects.
// +kubebuilder:object:root=true
type TenantList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Tenant `json:"items"`
}
