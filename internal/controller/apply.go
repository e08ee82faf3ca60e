package controller

import (
	"context"
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	rbacv1 "k8s.io/api/rbac/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	rustfsv1alpha1 "github.com/rustfs/rustfs-operator/api/rustfs/v1alpha1"
	"github.com/rustfs/rustfs-operator/internal/builders"
	"github.com/rustfs/rustfs-operator/internal/diff"
	"github.com/rustfs/rustfs-operator/internal/rfserrors"
)

// applyRBAC applies the up-to-three RBAC objects from §4.1. A nil field in
// the set means "nothing to create," per BuildRBAC's contract.
func (r *TenantReconciler) applyRBAC(ctx context.Context, tenant *rustfsv1alpha1.Tenant, set builders.RBACSet) *rfserrors.Error {
	var errs []error

	if set.ServiceAccount != nil {
		if err := r.applyOwned(ctx, tenant, set.ServiceAccount, func() bool { return true }); err != nil {
			errs = append(errs, err)
		}
	}
	if set.Role != nil {
		live := &rbacv1.Role{}
		changed := true
		if err := r.Get(ctx, objKey(set.Role), live); err == nil {
			changed = !diff.RoleEqual(live, set.Role)
		} else if !apierrors.IsNotFound(err) {
			errs = append(errs, err)
		}
		if err := r.applyOwned(ctx, tenant, set.Role, func() bool { return changed }); err != nil {
			errs = append(errs, err)
		}
	}
	if set.RoleBinding != nil {
		live := &rbacv1.RoleBinding{}
		changed := true
		if err := r.Get(ctx, objKey(set.RoleBinding), live); err == nil {
			changed = !diff.RoleBindingEqual(live, set.RoleBinding)
		} else if !apierrors.IsNotFound(err) {
			errs = append(errs, err)
		}
		if err := r.applyOwned(ctx, tenant, set.RoleBinding, func() bool { return changed }); err != nil {
			errs = append(errs, err)
		}
	}

	if agg := utilerrors.NewAggregate(errs); agg != nil {
		return rfserrors.New(rfserrors.TransientAPI, agg)
	}
	return nil
}

// applyServices applies the three always-present services (§4.2).
func (r *TenantReconciler) applyServices(ctx context.Context, tenant *rustfsv1alpha1.Tenant, set builders.ServiceSet) *rfserrors.Error {
	var errs []error
	for _, svc := range []*corev1.Service{set.IO, set.Console, set.Headless} {
		live := &corev1.Service{}
		changed := true
		if err := r.Get(ctx, objKey(svc), live); err == nil {
			// ClusterIP is server-assigned and BuildServices never sets it;
			// carry it forward before comparing so a steady-state service
			// isn't seen as changed on every pass.
			if svc.Spec.ClusterIP != corev1.ClusterIPNone {
				svc.Spec.ClusterIP = live.Spec.ClusterIP
			}
			changed = !diff.ServiceEqual(live, svc)
		} else if !apierrors.IsNotFound(err) {
			errs = append(errs, err)
		}
		if err := r.applyOwned(ctx, tenant, svc, func() bool { return changed }); err != nil {
			errs = append(errs, err)
		}
	}
	if agg := utilerrors.NewAggregate(errs); agg != nil {
		return rfserrors.New(rfserrors.TransientAPI, agg)
	}
	return nil
}

// applyWorkloads applies one stateful workload per pool (§4.3), running the
// §4.5 immutable-field guard before any update to an existing workload.
func (r *TenantReconciler) applyWorkloads(ctx context.Context, tenant *rustfsv1alpha1.Tenant, workloads []*appsv1.StatefulSet) *rfserrors.Error {
	for _, desired := range workloads {
		live := &appsv1.StatefulSet{}
		err := r.Get(ctx, objKey(desired), live)
		switch {
		case apierrors.IsNotFound(err):
			if err := controllerutil.SetControllerReference(tenant, desired, r.Scheme()); err != nil {
				return rfserrors.New(rfserrors.InternalError, err)
			}
			if err := r.apply(ctx, desired); err != nil {
				return rfserrors.New(rfserrors.TransientAPI, err)
			}
			if r.Recorder != nil {
				r.Recorder.Eventf(tenant, corev1.EventTypeNormal, "Created", "created stateful workload %s", desired.Name)
			}
			continue
		case err != nil:
			return rfserrors.New(rfserrors.TransientAPI, err)
		}

		if guardErr := diff.CheckImmutableFields(live, desired); guardErr != nil {
			if r.Recorder != nil {
				r.Recorder.Event(tenant, corev1.EventTypeWarning, "UpdateValidationFailed", guardErr.Error())
			}
			return rfserrors.New(rfserrors.ImmutableFieldModified, guardErr)
		}

		equal, err := diff.WorkloadsEqual(live, desired)
		if err != nil {
			return rfserrors.New(rfserrors.InternalError, err)
		}
		if equal {
			continue
		}

		if err := controllerutil.SetControllerReference(tenant, desired, r.Scheme()); err != nil {
			return rfserrors.New(rfserrors.InternalError, err)
		}
		if err := r.apply(ctx, desired); err != nil {
			return rfserrors.New(rfserrors.TransientAPI, err)
		}
		if r.Recorder != nil {
			r.Recorder.Eventf(tenant, corev1.EventTypeNormal, "Updated", "updated stateful workload %s", desired.Name)
		}
	}
	return nil
}

// applyOwned sets the controller owner reference on obj and, if shouldApply
// returns true, applies it via field-owned server-side apply.
func (r *TenantReconciler) applyOwned(ctx context.Context, tenant *rustfsv1alpha1.Tenant, obj client.Object, shouldApply func() bool) error {
	if !shouldApply() {
		return nil
	}
	if err := controllerutil.SetControllerReference(tenant, obj, r.Scheme()); err != nil {
		return fmt.Errorf("setting owner reference on %T %s: %w", obj, obj.GetName(), err)
	}
	return r.apply(ctx, obj)
}

func objKey(obj client.Object) types.NamespacedName {
	return types.NamespacedName{Namespace: obj.GetNamespace(), Name: obj.GetName()}
}
