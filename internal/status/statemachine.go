// Package status implements the §4.8 per-pool and Tenant aggregate state
// machines and the condition-writing rules in §3.3.
package status

import (
	appsv1 "k8s.io/api/apps/v1"

	rustfsv1alpha1 "github.com/rustfs/rustfs-operator/api/rustfs/v1alpha1"
)

// PoolState computes a single pool's rollout state from its live stateful
// workload, per the §4.8 decision table. A nil workload means the pool's
// StatefulSet has not been created yet.
func PoolState(workload *appsv1.StatefulSet, desiredReplicas int32) rustfsv1alpha1.PoolState {
	if workload == nil || desiredReplicas == 0 {
		return rustfsv1alpha1.PoolNotCreated
	}

	d := desiredReplicas
	r := workload.Status.ReadyReplicas
	c := workload.Status.CurrentReplicas
	u := workload.Status.UpdatedReplicas
	curRev := workload.Status.CurrentRevision
	updRev := workload.Status.UpdateRevision

	updating := u < d || c < d
	switch {
	case updating:
		return rustfsv1alpha1.PoolUpdating
	case r < d:
		return rustfsv1alpha1.PoolDegraded
	case r == d && u == d && curRev == updRev:
		return rustfsv1alpha1.PoolRolloutComplete
	default:
		return rustfsv1alpha1.PoolInitialized
	}
}

// BuildPoolStatus projects a live StatefulSet (possibly nil) into the
// PoolStatus record written to Tenant.status.pools[i].
func BuildPoolStatus(name, workloadName string, workload *appsv1.StatefulSet, desiredReplicas int32) rustfsv1alpha1.PoolStatus {
	ps := rustfsv1alpha1.PoolStatus{
		Name:         name,
		WorkloadName: workloadName,
		State:        PoolState(workload, desiredReplicas),
		Replicas:     desiredReplicas,
	}
	if workload != nil {
		ps.ReadyReplicas = workload.Status.ReadyReplicas
		ps.CurrentReplicas = workload.Status.CurrentReplicas
		ps.UpdatedReplicas = workload.Status.UpdatedReplicas
		ps.CurrentRevision = workload.Status.CurrentRevision
		ps.UpdateRevision = workload.Status.UpdateRevision
	}
	return ps
}

// AggregateState computes the Tenant-level currentState from its pools'
// states (§4.8). validationFailed short-circuits to Failed regardless of
// pool states, matching "Failed only for terminal validation failures".
func AggregateState(pools []rustfsv1alpha1.PoolStatus, validationFailed bool) rustfsv1alpha1.TenantState {
	if validationFailed {
		return rustfsv1alpha1.TenantFailed
	}

	allComplete := len(pools) > 0
	anyDegraded := false
	anyProgressing := false
	for _, p := range pools {
		switch p.State {
		case rustfsv1alpha1.PoolRolloutComplete:
			// contributes to allComplete remaining true
		case rustfsv1alpha1.PoolDegraded, rustfsv1alpha1.PoolRolloutFailed:
			anyDegraded = true
			allComplete = false
		case rustfsv1alpha1.PoolUpdating, rustfsv1alpha1.PoolInitialized:
			anyProgressing = true
			allComplete = false
		default:
			allComplete = false
		}
	}

	switch {
	case allComplete:
		return rustfsv1alpha1.TenantReady
	case anyDegraded:
		return rustfsv1alpha1.TenantDegraded
	case anyProgressing:
		return rustfsv1alpha1.TenantProvisioning
	default:
		return rustfsv1alpha1.TenantInitialized
	}
}

// AvailableReplicas sums ReadyReplicas across every pool.
func AvailableReplicas(pools []rustfsv1alpha1.PoolStatus) int32 {
	var total int32
	for _, p := range pools {
		total += p.ReadyReplicas
	}
	return total
}
