package status

import (
	"testing"

	"k8s.io/apimachinery/pkg/api/meta"

	rustfsv1alpha1 "github.com/rustfs/rustfs-operator/api/rustfs/v1alpha1"
)

func TestSetConditionsReady(t *testing.T) {
	ts := &rustfsv1alpha1.TenantStatus{}
	SetConditions(ts, rustfsv1alpha1.TenantReady, "RolloutComplete", "all pools ready")

	if !meta.IsStatusConditionTrue(ts.Conditions, rustfsv1alpha1.TenantReadyCondition) {
		t.Errorf("Ready condition must be True for TenantReady state")
	}
	if meta.IsStatusConditionTrue(ts.Conditions, rustfsv1alpha1.TenantDegradedCondition) {
		t.Errorf("Degraded condition must be False for TenantReady state")
	}
}

func TestSetConditionsDegraded(t *testing.T) {
	ts := &rustfsv1alpha1.TenantStatus{}
	SetConditions(ts, rustfsv1alpha1.TenantDegraded, "PoolDegraded", "pool p0 degraded")

	if !meta.IsStatusConditionTrue(ts.Conditions, rustfsv1alpha1.TenantDegradedCondition) {
		t.Errorf("Degraded condition must be True for TenantDegraded state")
	}
	if meta.IsStatusConditionTrue(ts.Conditions, rustfsv1alpha1.TenantReadyCondition) {
		t.Errorf("Ready condition must be False for TenantDegraded state")
	}
}

func TestSetConditionsDoesNotStampTransitionTimeOnNoChange(t *testing.T) {
	ts := &rustfsv1alpha1.TenantStatus{}
	SetConditions(ts, rustfsv1alpha1.TenantProvisioning, "RolloutInProgress", "first pass")

	before := meta.FindStatusCondition(ts.Conditions, rustfsv1alpha1.TenantProgressingCondition)
	if before == nil {
		t.Fatal("expected a Progressing condition to be set")
	}
	firstTransition := before.LastTransitionTime

	SetConditions(ts, rustfsv1alpha1.TenantProvisioning, "RolloutInProgress", "second pass, same status")

	after := meta.FindStatusCondition(ts.Conditions, rustfsv1alpha1.TenantProgressingCondition)
	if after.LastTransitionTime != firstTransition {
		t.Errorf("LastTransitionTime must not change when Status is unchanged, got %v want %v", after.LastTransitionTime, firstTransition)
	}
	if after.Message != "second pass, same status" {
		t.Errorf("Message must still update even when Status is unchanged, got %q", after.Message)
	}
}
