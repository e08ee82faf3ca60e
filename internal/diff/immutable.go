package diff

import (
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	apiequality "k8s.io/apimachinery/pkg/api/equality"
)

// ImmutableFieldError is returned by CheckImmutableFields when an update
// would change a platform-immutable field (§4.5). The reconciler maps this
// to the ImmutableFieldModified error kind (§7): Degraded=True, long
// requeue, no write.
type ImmutableFieldError struct {
	Field string
}

func (e *ImmutableFieldError) Error() string {
	return fmt.Sprintf("immutable field %q would be modified by this update", e.Field)
}

// CheckImmutableFields validates that none of selector, serviceName, or
// volumeClaimTemplates shape has changed between live and desired. Claim
// size increases are permitted (§9 Open Question 1: the builder does not
// look up the StorageClass to confirm expansion support; it defers that
// decision to the API server / CSI driver). Any other volumeClaimTemplates
// change — count, names, storage class, access modes, or a size decrease —
// is rejected.
func CheckImmutableFields(live, desired *appsv1.StatefulSet) error {
	if !apiequality.Semantic.DeepEqual(live.Spec.Selector, desired.Spec.Selector) {
		return &ImmutableFieldError{Field: "selector"}
	}
	if live.Spec.ServiceName != desired.Spec.ServiceName {
		return &ImmutableFieldError{Field: "serviceName"}
	}

	liveClaims, desiredClaims := live.Spec.VolumeClaimTemplates, desired.Spec.VolumeClaimTemplates
	if len(liveClaims) != len(desiredClaims) {
		return &ImmutableFieldError{Field: "volumeClaimTemplates[].count"}
	}
	for i := range liveClaims {
		lc, dc := liveClaims[i], desiredClaims[i]
		if lc.Name != dc.Name {
			return &ImmutableFieldError{Field: "volumeClaimTemplates[].name"}
		}
		if !apiequality.Semantic.DeepEqual(lc.Spec.StorageClassName, dc.Spec.StorageClassName) {
			return &ImmutableFieldError{Field: "volumeClaimTemplates[].storageClassName"}
		}
		if !apiequality.Semantic.DeepEqual(lc.Spec.AccessModes, dc.Spec.AccessModes) {
			return &ImmutableFieldError{Field: "volumeClaimTemplates[].accessModes"}
		}
		liveSize := lc.Spec.Resources.Requests.Storage()
		desiredSize := dc.Spec.Resources.Requests.Storage()
		if desiredSize.Cmp(*liveSize) < 0 {
			return &ImmutableFieldError{Field: "volumeClaimTemplates[].size (decrease not permitted)"}
		}
	}

	return nil
}
