// Package validation implements the §3.1 Tenant invariants: a layer of
// struct-tag validation (github.com/go-playground/validator/v10) for the
// parts that reduce to per-field bounds, underneath hand-written checks for
// the cross-field invariants tags cannot express (product thresholds,
// uniqueness).
package validation

import (
	"fmt"

	"github.com/google/go-containerregistry/pkg/name"
	"github.com/go-playground/validator/v10"

	rustfsv1alpha1 "github.com/rustfs/rustfs-operator/api/rustfs/v1alpha1"
)

// tenantValidatable mirrors the structural parts of TenantSpec/Pool that
// validator/v10 can check directly; it is populated from the real spec
// before validation and discarded afterward; no JSON/CRD schema is affected
// by it.
type tenantValidatable struct {
	Pools []poolValidatable `validate:"required,min=1,dive"`
}

type poolValidatable struct {
	Name             string `validate:"required"`
	Servers          int32  `validate:"min=1"`
	VolumesPerServer int32  `validate:"min=1"`
}

var structValidator = validator.New()

// Validate enforces every invariant in spec §3.1. It returns the first
// violation found, wrapped so the reconciler can surface it unmodified as
// the ValidationFailed error kind (§7).
func Validate(tenant *rustfsv1alpha1.Tenant) error {
	if err := validateStructural(tenant); err != nil {
		return err
	}
	if err := validateCrossField(tenant); err != nil {
		return err
	}
	if err := validateImage(tenant); err != nil {
		return err
	}
	return nil
}

func validateStructural(tenant *rustfsv1alpha1.Tenant) error {
	v := tenantValidatable{Pools: make([]poolValidatable, len(tenant.Spec.Pools))}
	for i, p := range tenant.Spec.Pools {
		v.Pools[i] = poolValidatable{
			Name:             p.Name,
			Servers:          p.Servers,
			VolumesPerServer: p.Persistence.VolumesPerServer,
		}
	}
	if err := structValidator.Struct(v); err != nil {
		return fmt.Errorf("tenant spec failed structural validation: %w", err)
	}
	return nil
}

// validateCrossField checks the invariants a struct tag cannot express:
// pool name uniqueness and servers*volumesPerServer >= 4.
func validateCrossField(tenant *rustfsv1alpha1.Tenant) error {
	seen := make(map[string]struct{}, len(tenant.Spec.Pools))
	for _, p := range tenant.Spec.Pools {
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("duplicate pool name %q", p.Name)
		}
		seen[p.Name] = struct{}{}

		if p.Servers*p.Persistence.VolumesPerServer < 4 {
			return fmt.Errorf("pool %q: servers(%d) * volumesPerServer(%d) must be >= 4", p.Name, p.Servers, p.Persistence.VolumesPerServer)
		}
	}
	return nil
}

// validateImage rejects a malformed image reference at validation time
// rather than letting it surface as a pod-scheduling failure later. The
// reference is parsed, never resolved over the network.
func validateImage(tenant *rustfsv1alpha1.Tenant) error {
	if tenant.Spec.Image == "" {
		return nil
	}
	if _, err := name.ParseReference(tenant.Spec.Image); err != nil {
		return fmt.Errorf("spec.image %q is not a valid image reference: %w", tenant.Spec.Image, err)
	}
	return nil
}
