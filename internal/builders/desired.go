package builders

import (
	appsv1 "k8s.io/api/apps/v1"

	rustfsv1alpha1 "github.com/rustfs/rustfs-operator/api/rustfs/v1alpha1"
)

// DesiredSet is the complete output of building a Tenant's owned resources
// (spec §4.1-§4.3): RBAC, the three services, and one stateful workload per
// pool, in spec order.
type DesiredSet struct {
	RBAC       RBACSet
	Services   ServiceSet
	Workloads  []*appsv1.StatefulSet
}

// Build produces the desired resource set for a Tenant. It is a pure
// function of the Tenant spec: calling it twice with the same Tenant
// produces byte-for-byte equal objects (spec §8, "determinism of
// builders"), since none of the constructors consult wall-clock time or
// random state.
func Build(tenant *rustfsv1alpha1.Tenant, fallbackImage string) DesiredSet {
	volumesEnv := RustfsVolumesEnv(tenant.Name, tenant.Namespace, tenant.Spec.Pools)

	workloads := make([]*appsv1.StatefulSet, 0, len(tenant.Spec.Pools))
	for _, pool := range tenant.Spec.Pools {
		workloads = append(workloads, BuildStatefulWorkload(tenant, pool, volumesEnv, fallbackImage))
	}

	return DesiredSet{
		RBAC:      BuildRBAC(tenant),
		Services:  BuildServices(tenant),
		Workloads: workloads,
	}
}
