package v1alpha1

import "fmt"

// Deterministic derived names (§6 "Owned resources"). Every owned object's
// name is a pure function of the Tenant name (and, for pool-scoped objects,
// the pool name), so reconciliation never needs an indirection table to find
// a previously-created object.

// IOServiceName is always "rustfs" — the S3-protocol endpoint is shared
// across every Tenant's pools but namespaced per-Tenant by the namespace
// the Service lives in.
const IOServiceName = "rustfs"

// ConsoleServiceName returns the name of the tenant's console Service.
func ConsoleServiceName(tenant string) string { return tenant + "-console" }

// HeadlessServiceName returns the name of the tenant's headless Service.
func HeadlessServiceName(tenant string) string { return tenant + "-hl" }

// RoleName, RoleBindingName and ServiceAccountName all derive from the
// Tenant name alone (§4.1).
func RoleName(tenant string) string           { return tenant }
func RoleBindingName(tenant string) string    { return tenant }
func ServiceAccountName(tenant string) string { return tenant }

// StatefulWorkloadName returns the name of the pool's owned stateful
// workload (§4.3, §6).
func StatefulWorkloadName(tenant, pool string) string {
	return fmt.Sprintf("%s-%s", tenant, pool)
}

// VolumeClaimName returns the name of the i-th volume claim template for a
// pool's stateful workload (§4.3).
func VolumeClaimName(i int) string {
	return fmt.Sprintf("vol-%d", i)
}

// TenantSelectorLabels returns the minimal, immutable selector shared by
// every Service in a Tenant (§6 "Labels").
func TenantSelectorLabels(tenant string) map[string]string {
	return map[string]string{"rustfs.tenant": tenant}
}

// PoolSelectorLabels returns the minimal, immutable selector for a single
// pool's stateful workload (§6 "Labels").
func PoolSelectorLabels(tenant, pool string) map[string]string {
	return map[string]string{
		"rustfs.tenant": tenant,
		"rustfs.pool":   pool,
	}
}

// IdentityLabels returns the additional, non-selecting identity labels
// applied to every owned object (§6 "Labels").
func IdentityLabels(tenant string) map[string]string {
	return map[string]string{
		"app.kubernetes.io/name":       "rustfs",
		"app.kubernetes.io/instance":   tenant,
		"app.kubernetes.io/managed-by": "rustfs-operator",
		"app.kubernetes.io/component":  "storage",
	}
}
