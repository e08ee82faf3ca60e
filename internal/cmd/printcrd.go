package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"

	rustfsv1alpha1 "github.com/rustfs/rustfs-operator/api/rustfs/v1alpha1"
)

func newPrintCRDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print-crd",
		Short: "Print the Tenant CustomResourceDefinition as YAML",
		RunE: func(c *cobra.Command, args []string) error {
			out, err := yaml.Marshal(tenantCRD())
			if err != nil {
				return fmt.Errorf("marshaling tenant CRD: %w", err)
			}
			_, err = c.OutOrStdout().Write(out)
			return err
		},
	}
}

// tenantCRD constructs the CustomResourceDefinition for the rustfs.com
// Tenant kind (spec §6 "Custom resource"). Field-level OpenAPI validation
// here mirrors the `+kubebuilder` markers on the Go types in
// api/rustfs/v1alpha1; this hand-written construction stands in for the
// controller-gen-generated manifest since the code generator never runs in
// this repo.
func tenantCRD() *apiextensionsv1.CustomResourceDefinition {
	preserveUnknownFields := true

	return &apiextensionsv1.CustomResourceDefinition{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "apiextensions.k8s.io/v1",
			Kind:       "CustomResourceDefinition",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name: "tenants." + rustfsv1alpha1.GroupVersion.Group,
		},
		Spec: apiextensionsv1.CustomResourceDefinitionSpec{
			Group: rustfsv1alpha1.GroupVersion.Group,
			Names: apiextensionsv1.CustomResourceDefinitionNames{
				Plural:     "tenants",
				Singular:   "tenant",
				Kind:       "Tenant",
				ListKind:   "TenantList",
				ShortNames: []string{"rft"},
			},
			Scope: apiextensionsv1.NamespaceScoped,
			Versions: []apiextensionsv1.CustomResourceDefinitionVersion{
				{
					Name:    rustfsv1alpha1.GroupVersion.Version,
					Served:  true,
					Storage: true,
					Subresources: &apiextensionsv1.CustomResourceSubresources{
						Status: &apiextensionsv1.CustomResourceSubresourceStatus{},
					},
					AdditionalPrinterColumns: []apiextensionsv1.CustomResourceColumnDefinition{
						{Name: "State", Type: "string", JSONPath: ".status.currentState"},
						{Name: "Age", Type: "date", JSONPath: ".metadata.creationTimestamp"},
					},
					Schema: &apiextensionsv1.CustomResourceValidation{
						OpenAPIV3Schema: &apiextensionsv1.JSONSchemaProps{
							Type:                   "object",
							XPreserveUnknownFields: &preserveUnknownFields,
							Properties: map[string]apiextensionsv1.JSONSchemaProps{
								"spec":   tenantSpecSchema(),
								"status": {Type: "object", XPreserveUnknownFields: &preserveUnknownFields},
							},
						},
					},
				},
			},
		},
	}
}

func tenantSpecSchema() apiextensionsv1.JSONSchemaProps {
	minOne := float64(1)
	return apiextensionsv1.JSONSchemaProps{
		Type:                   "object",
		XPreserveUnknownFields: boolPtr(true),
		Required:               []string{"pools"},
		Properties: map[string]apiextensionsv1.JSONSchemaProps{
			"image":           {Type: "string"},
			"imagePullPolicy": {Type: "string", Enum: enumJSON("Always", "IfNotPresent", "Never")},
			"pools": {
				Type:     "array",
				MinItems: int64Ptr(1),
				Items: &apiextensionsv1.JSONSchemaPropsOrArray{
					Schema: &apiextensionsv1.JSONSchemaProps{
						Type:                   "object",
						XPreserveUnknownFields: boolPtr(true),
						Required:               []string{"name", "servers", "persistence"},
						Properties: map[string]apiextensionsv1.JSONSchemaProps{
							"name":    {Type: "string", MinLength: int64Ptr(1)},
							"servers": {Type: "integer", Minimum: &minOne},
							"persistence": {
								Type:                   "object",
								XPreserveUnknownFields: boolPtr(true),
								Required:               []string{"volumesPerServer", "volumeClaimTemplate"},
								Properties: map[string]apiextensionsv1.JSONSchemaProps{
									"volumesPerServer":    {Type: "integer", Minimum: &minOne},
									"volumeClaimTemplate": {Type: "object", XPreserveUnknownFields: boolPtr(true)},
									"path":                {Type: "string"},
								},
							},
						},
					},
				},
			},
			"credsSecret":              {Type: "object", XPreserveUnknownFields: boolPtr(true)},
			"serviceAccountName":       {Type: "string"},
			"createServiceAccountRbac": {Type: "boolean"},
			"priorityClassName":        {Type: "string"},
			"podManagementPolicy":      {Type: "string", Enum: enumJSON("OrderedReady", "Parallel")},
		},
	}
}

func enumJSON(values ...string) []apiextensionsv1.JSON {
	out := make([]apiextensionsv1.JSON, len(values))
	for i, v := range values {
		out[i] = apiextensionsv1.JSON{Raw: []byte(`"` + v + `"`)}
	}
	return out
}

func int64Ptr(i int64) *int64 { return &i }
func boolPtr(b bool) *bool    { return &b }
