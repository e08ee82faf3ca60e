// Package credentials implements the structural credential-secret
// validation protocol from spec §4.6. No function here returns the secret's
// byte values; callers receive only a pass/fail plus an error classifying
// the failure kind.
package credentials

import (
	"context"
	"fmt"
	"unicode/utf8"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	rustfsv1alpha1 "github.com/rustfs/rustfs-operator/api/rustfs/v1alpha1"
)

const (
	accessKeyField = "accesskey"
	secretKeyField = "secretkey"
	minKeyLength   = 8
)

// Kind classifies a credential validation failure onto the §7 error-kind
// taxonomy.
type Kind string

const (
	NotFound         Kind = rustfsv1alpha1.ReasonCredentialSecretNotFound
	MissingKey       Kind = rustfsv1alpha1.ReasonCredentialSecretMissingKey
	InvalidEncoding  Kind = rustfsv1alpha1.ReasonCredentialSecretInvalidEncoding
	TooShort         Kind = rustfsv1alpha1.ReasonCredentialSecretTooShort
)

// Error is a credential validation failure. The secret's contents are never
// attached to it.
type Error struct {
	Kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Validate fetches the secret referenced by tenant.Spec.CredsSecret and
// checks its structure per §4.6. It returns nil only when both keys are
// present, valid UTF-8, and at least minKeyLength bytes long. The secret
// object fetched from the client is local to this call and is never
// returned or copied into the caller's state.
func Validate(ctx context.Context, c client.Client, tenant *rustfsv1alpha1.Tenant) error {
	ref := tenant.Spec.CredsSecret
	if ref == nil {
		return nil
	}

	secret := &corev1.Secret{}
	key := types.NamespacedName{Namespace: tenant.Namespace, Name: ref.Name}
	if err := c.Get(ctx, key, secret); err != nil {
		if apierrors.IsNotFound(err) {
			return newError(NotFound, "credential secret %q not found", ref.Name)
		}
		return fmt.Errorf("fetching credential secret %q: %w", ref.Name, err)
	}

	accessKey, ok := secret.Data[accessKeyField]
	if !ok {
		return newError(MissingKey, "credential secret %q missing key %q", ref.Name, accessKeyField)
	}
	secretKey, ok := secret.Data[secretKeyField]
	if !ok {
		return newError(MissingKey, "credential secret %q missing key %q", ref.Name, secretKeyField)
	}

	if err := checkKey(ref.Name, accessKeyField, accessKey); err != nil {
		return err
	}
	if err := checkKey(ref.Name, secretKeyField, secretKey); err != nil {
		return err
	}

	return nil
}

// checkKey validates encoding and length without returning or logging value.
func checkKey(secretName, field string, value []byte) error {
	if !utf8.Valid(value) {
		return newError(InvalidEncoding, "credential secret %q key %q is not valid UTF-8", secretName, field)
	}
	if len(value) < minKeyLength {
		return newError(TooShort, "credential secret %q key %q is shorter than %d bytes", secretName, field, minKeyLength)
	}
	return nil
}
