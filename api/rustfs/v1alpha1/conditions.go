package v1alpha1

// Condition types for Tenant.status.conditions. Mirrors the pattern in
// hostedcluster_conditions.go: a dedicated const block per concern
// (types, reasons), reused verbatim by the status reporter and the
// reconciler's error-to-condition mapping.
const (
	// TenantReadyCondition is True only when every pool has reached
	// RolloutComplete.
	TenantReadyCondition = "Ready"

	// TenantProgressingCondition is True while any pool is Updating or
	// Initialized.
	TenantProgressingCondition = "Progressing"

	// TenantDegradedCondition is True when the Tenant state is Degraded or
	// Failed: any pool is Degraded/RolloutFailed, or the reconciler stopped
	// a pass on a classified error (an immutable-field rejection, a
	// validation or credential failure, an API or internal error).
	TenantDegradedCondition = "Degraded"
)

// Condition reasons, one per §7 error kind plus the steady-state reasons.
const (
	ReasonAsExpected                       = "AsExpected"
	ReasonValidationFailed                 = "ValidationFailed"
	ReasonCredentialSecretNotFound         = "CredentialSecretNotFound"
	ReasonCredentialSecretMissingKey       = "CredentialSecretMissingKey"
	ReasonCredentialSecretInvalidEncoding  = "CredentialSecretInvalidEncoding"
	ReasonCredentialSecretTooShort         = "CredentialSecretTooShort"
	ReasonImmutableFieldModified           = "ImmutableFieldModified"
	ReasonTransientAPIError                = "TransientApiError"
	ReasonInternalError                    = "InternalError"
	ReasonRolloutInProgress                = "RolloutInProgress"
	ReasonRolloutComplete                  = "RolloutComplete"
)
