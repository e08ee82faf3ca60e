package builders

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	rustfsv1alpha1 "github.com/rustfs/rustfs-operator/api/rustfs/v1alpha1"
)

// ServiceSet is the three services every Tenant always owns (spec §4.2).
type ServiceSet struct {
	IO       *corev1.Service
	Console  *corev1.Service
	Headless *corev1.Service
}

// BuildServices constructs the IO, console and headless services for a
// Tenant. All three share the same selector (every pool's pods), matching
// the teacher's pattern in etcd/services.go of mutating only Spec.Selector
// and leaving the rest of the object to the manifest constructor / caller.
func BuildServices(tenant *rustfsv1alpha1.Tenant) ServiceSet {
	selector := rustfsv1alpha1.TenantSelectorLabels(tenant.Name)
	labels := labelsFor(tenant.Name)

	io := &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:      rustfsv1alpha1.IOServiceName,
			Namespace: tenant.Namespace,
			Labels:    labels,
		},
		Spec: corev1.ServiceSpec{
			Type:     corev1.ServiceTypeClusterIP,
			Selector: selector,
			Ports: []corev1.ServicePort{
				{Name: "io", Port: 9000, TargetPort: intstr.FromInt32(9000)},
			},
		},
	}

	console := &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:      rustfsv1alpha1.ConsoleServiceName(tenant.Name),
			Namespace: tenant.Namespace,
			Labels:    labels,
		},
		Spec: corev1.ServiceSpec{
			Type:     corev1.ServiceTypeClusterIP,
			Selector: selector,
			Ports: []corev1.ServicePort{
				{Name: "console", Port: 9001, TargetPort: intstr.FromInt32(9001)},
			},
		},
	}

	headless := &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:      rustfsv1alpha1.HeadlessServiceName(tenant.Name),
			Namespace: tenant.Namespace,
			Labels:    labels,
		},
		Spec: corev1.ServiceSpec{
			ClusterIP: corev1.ClusterIPNone,
			Selector:  selector,
			Ports: []corev1.ServicePort{
				{Name: "io", Port: 9000, TargetPort: intstr.FromInt32(9000)},
				{Name: "console", Port: 9001, TargetPort: intstr.FromInt32(9001)},
			},
		},
	}

	return ServiceSet{IO: io, Console: console, Headless: headless}
}
