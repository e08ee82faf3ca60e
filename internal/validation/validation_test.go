package validation

import (
	"testing"

	corev1 "k8s.io/api/core/v1"

	rustfsv1alpha1 "github.com/rustfs/rustfs-operator/api/rustfs/v1alpha1"
)

func poolWith(name string, servers, volumesPerServer int32) rustfsv1alpha1.Pool {
	return rustfsv1alpha1.Pool{
		Name:    name,
		Servers: servers,
		Persistence: rustfsv1alpha1.PoolPersistence{
			VolumesPerServer: volumesPerServer,
		},
	}
}

func TestValidateBoundaryCases(t *testing.T) {
	tests := map[string]struct {
		pools   []rustfsv1alpha1.Pool
		wantErr bool
	}{
		"servers=1 volumesPerServer=4 accepted (product == 4)": {
			pools:   []rustfsv1alpha1.Pool{poolWith("p0", 1, 4)},
			wantErr: false,
		},
		"servers=1 volumesPerServer=3 rejected (product < 4)": {
			pools:   []rustfsv1alpha1.Pool{poolWith("p0", 1, 3)},
			wantErr: true,
		},
		"servers=2 volumesPerServer=2 accepted": {
			pools:   []rustfsv1alpha1.Pool{poolWith("p0", 2, 2)},
			wantErr: false,
		},
		"no pools rejected": {
			pools:   nil,
			wantErr: true,
		},
		"duplicate pool names rejected": {
			pools:   []rustfsv1alpha1.Pool{poolWith("p0", 2, 2), poolWith("p0", 2, 2)},
			wantErr: true,
		},
		"zero servers rejected": {
			pools:   []rustfsv1alpha1.Pool{poolWith("p0", 0, 4)},
			wantErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			tenant := &rustfsv1alpha1.Tenant{}
			tenant.Spec.Pools = tc.pools

			err := Validate(tenant)
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidateImageReference(t *testing.T) {
	tests := map[string]struct {
		image   string
		wantErr bool
	}{
		"empty image accepted (falls back to operator default)": {image: "", wantErr: false},
		"valid image reference accepted":                         {image: "rustfs/rustfs:v1.2.3", wantErr: false},
		"malformed image reference rejected":                     {image: "this is not an image!!", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			tenant := &rustfsv1alpha1.Tenant{}
			tenant.Spec.Image = tc.image
			tenant.Spec.Pools = []rustfsv1alpha1.Pool{poolWith("p0", 2, 2)}

			err := Validate(tenant)
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidatePullPolicyIgnored(t *testing.T) {
	tenant := &rustfsv1alpha1.Tenant{}
	tenant.Spec.Pools = []rustfsv1alpha1.Pool{poolWith("p0", 2, 2)}
	tenant.Spec.ImagePullPolicy = corev1.PullIfNotPresent

	if err := Validate(tenant); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}
