package builders

import rustfsv1alpha1 "github.com/rustfs/rustfs-operator/api/rustfs/v1alpha1"

// labelsFor returns the full label set applied to every Tenant-scoped owned
// object: the Tenant selector plus the non-selecting identity labels
// (spec §6 "Labels").
func labelsFor(tenant string) map[string]string {
	labels := rustfsv1alpha1.TenantSelectorLabels(tenant)
	for k, v := range rustfsv1alpha1.IdentityLabels(tenant) {
		labels[k] = v
	}
	return labels
}

// poolLabelsFor returns the full label set applied to a single pool's
// stateful workload and its pods: the pool selector plus identity labels.
func poolLabelsFor(tenant, pool string) map[string]string {
	labels := rustfsv1alpha1.PoolSelectorLabels(tenant, pool)
	for k, v := range rustfsv1alpha1.IdentityLabels(tenant) {
		labels[k] = v
	}
	return labels
}
