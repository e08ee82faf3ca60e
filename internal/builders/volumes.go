package builders

import (
	"fmt"
	"strings"

	rustfsv1alpha1 "github.com/rustfs/rustfs-operator/api/rustfs/v1alpha1"
)

// RustfsVolumesEnv computes the RUSTFS_VOLUMES string (spec §4.2) — the
// single most important piece of builder behaviour, since an identical
// value must appear in every pool's container for the cluster to be
// "unified" (spec §3, GLOSSARY).
//
// For pools P1..Pn, the i-th fragment is:
//
//	http://<tenant>-<Pi.name>-{0...Si-1}.<tenant>-hl.<ns>.svc.cluster.local:9000<path>/rustfs{0...Vi-1}
//
// The braced ranges are an engine-side expansion syntax, never expanded
// here — this function performs no per-replica looping.
func RustfsVolumesEnv(tenant, namespace string, pools []rustfsv1alpha1.Pool) string {
	headless := rustfsv1alpha1.HeadlessServiceName(tenant)
	fragments := make([]string, 0, len(pools))
	for _, p := range pools {
		fragments = append(fragments, fmt.Sprintf(
			"http://%s-%s-{0...%d}.%s.%s.svc.cluster.local:9000%s/rustfs{0...%d}",
			tenant, p.Name, p.Servers-1,
			headless, namespace, p.Persistence.PathOrDefault(), p.Persistence.VolumesPerServer-1,
		))
	}
	return strings.Join(fragments, " ")
}
