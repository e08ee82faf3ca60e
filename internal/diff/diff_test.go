package diff

import (
	"testing"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
)

func sampleWorkload(replicas int32, image string) *appsv1.StatefulSet {
	r := replicas
	return &appsv1.StatefulSet{
		Spec: appsv1.StatefulSetSpec{
			Replicas:            &r,
			PodManagementPolicy: appsv1.ParallelPodManagement,
			Template: corev1.PodTemplateSpec{
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{
						{
							Name:  "rustfs",
							Image: image,
							Env: []corev1.EnvVar{
								{Name: "RUSTFS_VOLUMES", Value: "http://..."},
							},
						},
					},
				},
			},
		},
	}
}

func TestWorkloadsEqualSteadyState(t *testing.T) {
	a := sampleWorkload(3, "rustfs/rustfs:v1")
	b := sampleWorkload(3, "rustfs/rustfs:v1")

	equal, err := WorkloadsEqual(a, b)
	if err != nil {
		t.Fatalf("WorkloadsEqual() error = %v", err)
	}
	if !equal {
		t.Errorf("identical workloads must compare equal, so a steady-state reconcile performs no write")
	}
}

func TestWorkloadsEqualDetectsImageChange(t *testing.T) {
	a := sampleWorkload(3, "rustfs/rustfs:v1")
	b := sampleWorkload(3, "rustfs/rustfs:v2")

	equal, err := WorkloadsEqual(a, b)
	if err != nil {
		t.Fatalf("WorkloadsEqual() error = %v", err)
	}
	if equal {
		t.Errorf("workloads differing by image must not compare equal")
	}
}

func TestWorkloadsEqualDetectsReplicaChange(t *testing.T) {
	a := sampleWorkload(3, "rustfs/rustfs:v1")
	b := sampleWorkload(5, "rustfs/rustfs:v1")

	equal, err := WorkloadsEqual(a, b)
	if err != nil {
		t.Fatalf("WorkloadsEqual() error = %v", err)
	}
	if equal {
		t.Errorf("workloads differing by replica count must not compare equal")
	}
}

func TestWorkloadsEqualIgnoresServerSetFields(t *testing.T) {
	a := sampleWorkload(3, "rustfs/rustfs:v1")
	b := sampleWorkload(3, "rustfs/rustfs:v1")
	b.Status.ReadyReplicas = 3
	b.ObjectMeta.ResourceVersion = "12345"

	equal, err := WorkloadsEqual(a, b)
	if err != nil {
		t.Fatalf("WorkloadsEqual() error = %v", err)
	}
	if !equal {
		t.Errorf("server-set status/metadata fields must not participate in the equality check")
	}
}

func TestServiceEqual(t *testing.T) {
	a := &corev1.Service{Spec: corev1.ServiceSpec{Selector: map[string]string{"x": "y"}, Ports: []corev1.ServicePort{{Port: 9000}}}}
	b := &corev1.Service{Spec: corev1.ServiceSpec{Selector: map[string]string{"x": "y"}, Ports: []corev1.ServicePort{{Port: 9000}}}}
	if !ServiceEqual(a, b) {
		t.Errorf("identical service specs must compare equal")
	}

	c := &corev1.Service{Spec: corev1.ServiceSpec{Selector: map[string]string{"x": "z"}, Ports: []corev1.ServicePort{{Port: 9000}}}}
	if ServiceEqual(a, c) {
		t.Errorf("differing selectors must not compare equal")
	}
}
