package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// TenantState is the aggregate, cluster-wide state of a Tenant.
// +kubebuilder:validation:Enum=Initialized;Provisioning;Ready;Degraded;Failed
type TenantState string

const (
	TenantInitialized  TenantState = "Initialized"
	TenantProvisioning TenantState = "Provisioning"
	TenantReady        TenantState = "Ready"
	TenantDegraded     TenantState = "Degraded"
	TenantFailed       TenantState = "Failed"
)

// PoolState is the observed rollout state of a single pool's stateful
// workload, computed per the state machine in §4.8.
// +kubebuilder:validation:Enum=NotCreated;Created;Initialized;Updating;RolloutComplete;RolloutFailed;Degraded
type PoolState string

const (
	PoolNotCreated      PoolState = "NotCreated"
	PoolCreated         PoolState = "Created"
	PoolInitialized     PoolState = "Initialized"
	PoolUpdating        PoolState = "Updating"
	PoolRolloutComplete PoolState = "RolloutComplete"
	PoolRolloutFailed   PoolState = "RolloutFailed"
	PoolDegraded        PoolState = "Degraded"
)

// PoolStatus is the observed state of a single pool's stateful workload.
type PoolStatus struct {
	// Name is the pool name this status applies to.
	Name string `json:"name"`

	// WorkloadName is the derived name of the owned stateful workload.
	WorkloadName string `json:"workloadName"`

	// State is this pool's rollout state per the §4.8 state machine.
	State PoolState `json:"state"`

	Replicas        int32 `json:"replicas"`
	ReadyReplicas   int32 `json:"readyReplicas"`
	CurrentReplicas int32 `json:"currentReplicas"`
	UpdatedReplicas int32 `json:"updatedReplicas"`

	CurrentRevision string `json:"currentRevision,omitempty"`
	UpdateRevision  string `json:"updateRevision,omitempty"`

	LastUpdateTime *metav1.Time `json:"lastUpdateTime,omitempty"`
}

// TenantStatus is written by the reconciler only.
type TenantStatus struct {
	// CurrentState is the aggregate cluster state derived from every
	// pool's PoolState (§4.8).
	CurrentState TenantState `json:"currentState,omitempty"`

	// Pools carries one PoolStatus per spec.pools entry, in spec order.
	Pools []PoolStatus `json:"pools,omitempty"`

	// AvailableReplicas is the sum of ReadyReplicas across every pool.
	AvailableReplicas int32 `json:"availableReplicas,omitempty"`

	// Conditions holds the Ready/Progressing/Degraded condition set.
	Conditions []metav1.Condition `json:"conditions,omitempty"`

	// ObservedGeneration is the Tenant generation last reconciled.
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`
}
