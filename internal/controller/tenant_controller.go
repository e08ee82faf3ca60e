// Package controller implements the Tenant reconciler (spec §4.7, §5): the
// orchestration of validate -> RBAC -> services -> per-pool workloads ->
// status, in that fixed order, with one in-flight reconciliation per Tenant
// key courtesy of the workqueue (controller-runtime), matching the
// teacher's HostedControlPlaneReconciler in
// hostedcontrolplane_controller.go.
package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	rbacv1 "k8s.io/api/rbac/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	rustfsv1alpha1 "github.com/rustfs/rustfs-operator/api/rustfs/v1alpha1"
	"github.com/rustfs/rustfs-operator/internal/builders"
	"github.com/rustfs/rustfs-operator/internal/credentials"
	"github.com/rustfs/rustfs-operator/internal/operatorconfig"
	"github.com/rustfs/rustfs-operator/internal/rfserrors"
	"github.com/rustfs/rustfs-operator/internal/status"
	"github.com/rustfs/rustfs-operator/internal/validation"
)

// TenantReconciler reconciles a Tenant object.
type TenantReconciler struct {
	client.Client
	Recorder record.EventRecorder
	Config   operatorconfig.Config

	// breaker wraps every server-side apply call so a persistent API
	// outage trips open rather than re-hammering the API server on every
	// requeue (complements the §5 retry taxonomy). Status writes go to the
	// client directly and are not wrapped.
	breaker *gobreaker.CircuitBreaker
}

// NewTenantReconciler constructs a TenantReconciler with its circuit
// breaker initialized.
func NewTenantReconciler(c client.Client, recorder record.EventRecorder, cfg operatorconfig.Config) *TenantReconciler {
	return &TenantReconciler{
		Client:   c,
		Recorder: recorder,
		Config:   cfg,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "rustfs-operator-apply",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 5
			},
		}),
	}
}

// SetupWithManager wires the controller to watch Tenants and every kind of
// owned object, mirroring HostedControlPlaneReconciler.SetupWithManager's
// use of ctrl.NewControllerManagedBy + Owns for cascading reconciles on
// owned-resource changes.
func (r *TenantReconciler) SetupWithManager(mgr ctrl.Manager) error {
	err := ctrl.NewControllerManagedBy(mgr).
		For(&rustfsv1alpha1.Tenant{}).
		Owns(&appsv1.StatefulSet{}).
		Owns(&corev1.Service{}).
		Owns(&corev1.ServiceAccount{}).
		Owns(&rbacv1.Role{}).
		Owns(&rbacv1.RoleBinding{}).
		Complete(r)
	if err != nil {
		return fmt.Errorf("failed setting up tenant controller with manager: %w", err)
	}
	return nil
}

// Reconcile implements the §4.7 orchestration.
func (r *TenantReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	log := ctrl.LoggerFrom(ctx).WithValues("reconcileID", uuid.NewString())
	ctx = ctrl.LoggerInto(ctx, log)

	tenant := &rustfsv1alpha1.Tenant{}
	if err := r.Get(ctx, req.NamespacedName, tenant); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, fmt.Errorf("fetching tenant: %w", err)
	}

	if !tenant.DeletionTimestamp.IsZero() {
		// §3.4: no explicit deletes, the garbage collector owns cascade
		// deletion. SUPPLEMENTED: log+event if GC appears stuck (see
		// checkDeletionLag), without taking on finalizer lifecycle.
		r.checkDeletionLag(ctx, tenant)
		return ctrl.Result{}, nil
	}

	if err := validation.Validate(tenant); err != nil {
		return r.fail(ctx, tenant, rfserrors.New(rfserrors.ValidationFailed, err))
	}

	if err := credentials.Validate(ctx, r.Client, tenant); err != nil {
		kind, ok := credentialErrorKind(err)
		if !ok {
			return r.fail(ctx, tenant, rfserrors.New(rfserrors.TransientAPI, err))
		}
		return r.fail(ctx, tenant, rfserrors.New(kind, err))
	}

	desired := builders.Build(tenant, r.Config.FallbackImage)

	if err := r.applyRBAC(ctx, tenant, desired.RBAC); err != nil {
		return r.fail(ctx, tenant, err)
	}
	if err := r.applyServices(ctx, tenant, desired.Services); err != nil {
		return r.fail(ctx, tenant, err)
	}
	if err := r.applyWorkloads(ctx, tenant, desired.Workloads); err != nil {
		return r.fail(ctx, tenant, err)
	}

	return r.updateStatus(ctx, tenant, desired.Workloads)
}

// fail maps a classified error to the §7 condition/event/requeue outcome
// and writes the resulting status, per §4.7 steps 2,3,5.
func (r *TenantReconciler) fail(ctx context.Context, tenant *rustfsv1alpha1.Tenant, err *rfserrors.Error) (ctrl.Result, error) {
	outcome := rfserrors.OutcomeFor(err.Kind)
	log := ctrl.LoggerFrom(ctx)
	log.Error(err, "reconciliation failed", "kind", err.Kind)

	if r.Recorder != nil {
		r.Recorder.Event(tenant, corev1.EventTypeWarning, outcome.EventReason, err.Error())
	}

	state := rustfsv1alpha1.TenantDegraded
	if outcome.ConditionType == rustfsv1alpha1.TenantReadyCondition {
		state = rustfsv1alpha1.TenantFailed
	}
	status.SetConditions(&tenant.Status, state, outcome.ConditionReason, err.Error())
	tenant.Status.CurrentState = state
	tenant.Status.ObservedGeneration = tenant.Generation

	if updateErr := r.Status().Update(ctx, tenant); updateErr != nil {
		log.Error(updateErr, "failed writing tenant status after classified error")
	}

	return ctrl.Result{RequeueAfter: outcome.RequeueAfter}, nil
}

// credentialErrorKind maps a credentials.Error to the matching rfserrors
// Kind, or reports false for an unclassified (transient) error.
func credentialErrorKind(err error) (rfserrors.Kind, bool) {
	var credErr *credentials.Error
	if e, ok := asCredentialsError(err, &credErr); ok {
		switch e.Kind {
		case credentials.NotFound:
			return rfserrors.CredentialSecretNotFound, true
		case credentials.MissingKey:
			return rfserrors.CredentialSecretMissingKey, true
		case credentials.InvalidEncoding:
			return rfserrors.CredentialSecretInvalidEncoding, true
		case credentials.TooShort:
			return rfserrors.CredentialSecretTooShort, true
		}
	}
	return "", false
}

// asCredentialsError reports whether err is itself a *credentials.Error. It
// is a direct type assertion: an error that wraps a *credentials.Error is
// not unwrapped and reports false.
func asCredentialsError(err error, target **credentials.Error) (*credentials.Error, bool) {
	if ce, ok := err.(*credentials.Error); ok {
		*target = ce
		return ce, true
	}
	return nil, false
}

// checkDeletionLag is the SUPPLEMENTED finalizer-free deletion check
// (SPEC_FULL §12): it never blocks deletion, it only surfaces a broken GC
// setup.
func (r *TenantReconciler) checkDeletionLag(ctx context.Context, tenant *rustfsv1alpha1.Tenant) {
	log := ctrl.LoggerFrom(ctx)
	if time.Since(tenant.DeletionTimestamp.Time) < 2*time.Minute {
		return
	}
	for _, pool := range tenant.Spec.Pools {
		sts := &appsv1.StatefulSet{}
		name := types.NamespacedName{Namespace: tenant.Namespace, Name: rustfsv1alpha1.StatefulWorkloadName(tenant.Name, pool.Name)}
		if err := r.Get(ctx, name, sts); err == nil {
			log.Info("owned stateful workload outlived tenant deletion timestamp", "workload", name.Name)
			if r.Recorder != nil {
				r.Recorder.Eventf(tenant, corev1.EventTypeNormal, "DeletionLagging", "stateful workload %s still present after deletion", name.Name)
			}
		}
	}
}

func (r *TenantReconciler) apply(ctx context.Context, obj client.Object) error {
	_, err := r.breaker.Execute(func() (any, error) {
		return nil, r.Patch(ctx, obj, client.Apply, client.ForceOwnership, client.FieldOwner(r.Config.FieldManager))
	})
	return err
}

func (r *TenantReconciler) updateStatus(ctx context.Context, tenant *rustfsv1alpha1.Tenant, workloads []*appsv1.StatefulSet) (ctrl.Result, error) {
	pools := make([]rustfsv1alpha1.PoolStatus, 0, len(tenant.Spec.Pools))
	for i, pool := range tenant.Spec.Pools {
		live := &appsv1.StatefulSet{}
		name := types.NamespacedName{Namespace: tenant.Namespace, Name: rustfsv1alpha1.StatefulWorkloadName(tenant.Name, pool.Name)}
		var livePtr *appsv1.StatefulSet
		if err := r.Get(ctx, name, live); err == nil {
			livePtr = live
		} else if !apierrors.IsNotFound(err) {
			return r.fail(ctx, tenant, rfserrors.New(rfserrors.TransientAPI, err))
		}
		pools = append(pools, status.BuildPoolStatus(pool.Name, name.Name, livePtr, *workloads[i].Spec.Replicas))
	}

	aggregate := status.AggregateState(pools, false)
	tenant.Status.Pools = pools
	tenant.Status.CurrentState = aggregate
	tenant.Status.AvailableReplicas = status.AvailableReplicas(pools)
	tenant.Status.ObservedGeneration = tenant.Generation

	reason := rustfsv1alpha1.ReasonRolloutInProgress
	if aggregate == rustfsv1alpha1.TenantReady {
		reason = rustfsv1alpha1.ReasonRolloutComplete
	}
	status.SetConditions(&tenant.Status, aggregate, reason, fmt.Sprintf("tenant is %s", aggregate))

	if err := r.Status().Update(ctx, tenant); err != nil {
		if apierrors.IsConflict(err) {
			return ctrl.Result{RequeueAfter: 5 * time.Second}, nil
		}
		ctrl.LoggerFrom(ctx).Error(err, "failed writing tenant status")
		return ctrl.Result{}, nil
	}

	if aggregate == rustfsv1alpha1.TenantReady {
		return ctrl.Result{}, nil
	}
	return ctrl.Result{RequeueAfter: 15 * time.Second}, nil
}

// fail1 adapts fail's two-return signature for call sites nested inside a
// single-result function.
func (r *TenantReconciler) fail1(ctx context.Context, tenant *rustfsv1alpha1.Tenant, err *rfserrors.Error) error {
	_, updateErr := r.fail(ctx, tenant, err)
	return updateErr
}
