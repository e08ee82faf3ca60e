// Package rfserrors carries the §7 error-kind taxonomy end to end, from the
// builder/validator call sites that detect a failure through to the
// reconciler's single condition/event/requeue-delay mapping, instead of
// string-matching error messages at the top of the reconcile loop.
package rfserrors

import (
	"errors"
	"fmt"
	"time"

	rustfsv1alpha1 "github.com/rustfs/rustfs-operator/api/rustfs/v1alpha1"
)

// Kind is one row of the §7 table.
type Kind string

const (
	ValidationFailed                Kind = "ValidationFailed"
	CredentialSecretNotFound        Kind = "CredentialSecretNotFound"
	CredentialSecretMissingKey      Kind = "CredentialSecretMissingKey"
	CredentialSecretInvalidEncoding Kind = "CredentialSecretInvalidEncoding"
	CredentialSecretTooShort        Kind = "CredentialSecretTooShort"
	ImmutableFieldModified          Kind = "ImmutableFieldModified"
	TransientAPI                    Kind = "TransientApi"
	InternalError                   Kind = "InternalError"
)

// Error pairs a §7 Kind with its underlying cause.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New wraps cause under kind.
func New(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Cause: cause}
}

// As is a convenience wrapper over errors.As for call sites that only need
// the Kind.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Outcome is everything the reconciler needs to act on a classified error:
// the condition reason, the event reason (spec §6 event list), and the
// requeue delay (§5 retry taxonomy).
type Outcome struct {
	ConditionReason string
	EventReason     string
	RequeueAfter    time.Duration
	ConditionType   string
}

// OutcomeFor maps a Kind to its Outcome per §7 and the §5 retry taxonomy
// table.
func OutcomeFor(kind Kind) Outcome {
	switch kind {
	case ValidationFailed:
		return Outcome{
			ConditionReason: rustfsv1alpha1.ReasonValidationFailed,
			EventReason:     "ValidationFailed",
			RequeueAfter:    15 * time.Second,
			ConditionType:   rustfsv1alpha1.TenantReadyCondition,
		}
	case CredentialSecretNotFound:
		return Outcome{
			ConditionReason: rustfsv1alpha1.ReasonCredentialSecretNotFound,
			EventReason:     "CredentialSecretNotFound",
			RequeueAfter:    60 * time.Second,
			ConditionType:   rustfsv1alpha1.TenantReadyCondition,
		}
	case CredentialSecretMissingKey:
		return Outcome{
			ConditionReason: rustfsv1alpha1.ReasonCredentialSecretMissingKey,
			EventReason:     "CredentialSecretMissingKey",
			RequeueAfter:    60 * time.Second,
			ConditionType:   rustfsv1alpha1.TenantReadyCondition,
		}
	case CredentialSecretInvalidEncoding:
		return Outcome{
			ConditionReason: rustfsv1alpha1.ReasonCredentialSecretInvalidEncoding,
			EventReason:     "CredentialSecretInvalidEncoding",
			RequeueAfter:    60 * time.Second,
			ConditionType:   rustfsv1alpha1.TenantReadyCondition,
		}
	case CredentialSecretTooShort:
		return Outcome{
			ConditionReason: rustfsv1alpha1.ReasonCredentialSecretTooShort,
			EventReason:     "CredentialSecretTooShort",
			RequeueAfter:    60 * time.Second,
			ConditionType:   rustfsv1alpha1.TenantReadyCondition,
		}
	case ImmutableFieldModified:
		return Outcome{
			ConditionReason: rustfsv1alpha1.ReasonImmutableFieldModified,
			EventReason:     "UpdateValidationFailed",
			RequeueAfter:    60 * time.Second,
			ConditionType:   rustfsv1alpha1.TenantDegradedCondition,
		}
	case TransientAPI:
		return Outcome{
			ConditionReason: rustfsv1alpha1.ReasonTransientAPIError,
			EventReason:     "TransientApiError",
			RequeueAfter:    5 * time.Second,
			ConditionType:   rustfsv1alpha1.TenantReadyCondition,
		}
	default: // InternalError
		return Outcome{
			ConditionReason: rustfsv1alpha1.ReasonInternalError,
			EventReason:     "InternalError",
			RequeueAfter:    5 * time.Second,
			ConditionType:   rustfsv1alpha1.TenantDegradedCondition,
		}
	}
}
