package builders

import (
	corev1 "k8s.io/api/core/v1"
	rbacv1 "k8s.io/api/rbac/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	rustfsv1alpha1 "github.com/rustfs/rustfs-operator/api/rustfs/v1alpha1"
)

// RBACSet is the up-to-three objects the RBAC builder may produce, per the
// decision table in spec §4.1. A nil field means "do not create this
// object" — the reconciler's apply loop skips nil entries rather than
// deleting anything that might already exist from an earlier spec.
type RBACSet struct {
	Role               *rbacv1.Role
	ServiceAccount     *corev1.ServiceAccount
	RoleBinding        *rbacv1.RoleBinding
}

// BuildRBAC implements the §4.1 decision table:
//
//	serviceAccountName unset                -> create Role, ServiceAccount, RoleBinding (binds created SA)
//	serviceAccountName set, createRBAC=true  -> create Role, RoleBinding (binds external SA); no ServiceAccount
//	serviceAccountName set, createRBAC=false -> create nothing
func BuildRBAC(tenant *rustfsv1alpha1.Tenant) RBACSet {
	spec := tenant.Spec
	externalSA := spec.ServiceAccountName != ""

	if externalSA && !spec.CreateServiceAccountRBAC {
		return RBACSet{}
	}

	labels := labelsFor(tenant.Name)
	saName := spec.ServiceAccountName
	if !externalSA {
		saName = rustfsv1alpha1.ServiceAccountName(tenant.Name)
	}

	role := &rbacv1.Role{
		ObjectMeta: metav1.ObjectMeta{
			Name:      rustfsv1alpha1.RoleName(tenant.Name),
			Namespace: tenant.Namespace,
			Labels:    labels,
		},
		Rules: peerDiscoveryRules(),
	}

	roleBinding := &rbacv1.RoleBinding{
		ObjectMeta: metav1.ObjectMeta{
			Name:      rustfsv1alpha1.RoleBindingName(tenant.Name),
			Namespace: tenant.Namespace,
			Labels:    labels,
		},
		RoleRef: rbacv1.RoleRef{
			APIGroup: rbacv1.GroupName,
			Kind:     "Role",
			Name:     role.Name,
		},
		Subjects: []rbacv1.Subject{
			{
				Kind:      rbacv1.ServiceAccountKind,
				Name:      saName,
				Namespace: tenant.Namespace,
			},
		},
	}

	set := RBACSet{Role: role, RoleBinding: roleBinding}

	if !externalSA {
		set.ServiceAccount = &corev1.ServiceAccount{
			ObjectMeta: metav1.ObjectMeta{
				Name:      saName,
				Namespace: tenant.Namespace,
				Labels:    labels,
			},
		}
	}

	return set
}

// peerDiscoveryRules grants the minimum rights the storage process needs to
// discover its peers within the Tenant's namespace (spec §4.1). The set is
// intentionally small; §9 Open Question 2 notes it may need small additions
// once the process's own peer-discovery protocol is pinned down.
func peerDiscoveryRules() []rbacv1.PolicyRule {
	return []rbacv1.PolicyRule{
		{
			APIGroups: []string{""},
			Resources: []string{"pods", "endpoints", "services"},
			Verbs:     []string{"get", "list", "watch"},
		},
	}
}
