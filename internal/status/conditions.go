package status

import (
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	rustfsv1alpha1 "github.com/rustfs/rustfs-operator/api/rustfs/v1alpha1"
)

// SetConditions derives and writes the Ready/Progressing/Degraded
// conditions (§3.3) from the Tenant's aggregate state, reason and message.
// meta.SetStatusCondition only stamps a fresh LastTransitionTime when the
// condition's Status actually changes, matching the teacher's
// updateStatus's manual before/after comparison (hostedcontrolplane_controller.go)
// without reimplementing it.
func SetConditions(tenantStatus *rustfsv1alpha1.TenantStatus, state rustfsv1alpha1.TenantState, reason, message string) {
	ready := metav1.ConditionFalse
	progressing := metav1.ConditionFalse
	degraded := metav1.ConditionFalse

	switch state {
	case rustfsv1alpha1.TenantReady:
		ready = metav1.ConditionTrue
	case rustfsv1alpha1.TenantProvisioning, rustfsv1alpha1.TenantInitialized:
		progressing = metav1.ConditionTrue
	case rustfsv1alpha1.TenantDegraded, rustfsv1alpha1.TenantFailed:
		degraded = metav1.ConditionTrue
	}

	meta.SetStatusCondition(&tenantStatus.Conditions, metav1.Condition{
		Type:    rustfsv1alpha1.TenantReadyCondition,
		Status:  ready,
		Reason:  reason,
		Message: message,
	})
	meta.SetStatusCondition(&tenantStatus.Conditions, metav1.Condition{
		Type:    rustfsv1alpha1.TenantProgressingCondition,
		Status:  progressing,
		Reason:  reason,
		Message: message,
	})
	meta.SetStatusCondition(&tenantStatus.Conditions, metav1.Condition{
		Type:    rustfsv1alpha1.TenantDegradedCondition,
		Status:  degraded,
		Reason:  reason,
		Message: message,
	})
}
