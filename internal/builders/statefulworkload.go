package builders

import (
	"strconv"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	rustfsv1alpha1 "github.com/rustfs/rustfs-operator/api/rustfs/v1alpha1"
	"github.com/rustfs/rustfs-operator/internal/util"
)

const containerName = "rustfs"

// BuildStatefulWorkload constructs the owned appsv1.StatefulSet for a single
// pool (spec §4.3). volumesEnv is the already-computed, tenant-wide
// RUSTFS_VOLUMES value (see RustfsVolumesEnv) — identical across every pool
// of one Tenant, so it is computed once by the caller and threaded through
// rather than recomputed per pool.
func BuildStatefulWorkload(tenant *rustfsv1alpha1.Tenant, pool rustfsv1alpha1.Pool, volumesEnv, fallbackImage string) *appsv1.StatefulSet {
	replicas := pool.Servers
	// The CRD default is Parallel (kubebuilder:default on TenantSpec); an
	// empty value reaching the builder directly (e.g. in unit tests that
	// skip API-server defaulting) is treated the same way.
	podManagement := appsv1.ParallelPodManagement
	if tenant.Spec.PodManagementPolicy == rustfsv1alpha1.OrderedReadyPodManagement {
		podManagement = appsv1.OrderedReadyPodManagement
	}

	selector := rustfsv1alpha1.PoolSelectorLabels(tenant.Name, pool.Name)
	labels := poolLabelsFor(tenant.Name, pool.Name)

	container := buildContainer(tenant, pool, volumesEnv, fallbackImage)

	claims := buildVolumeClaimTemplates(pool)
	if logging := tenant.Spec.LoggingConfig; logging != nil {
		claims = append(claims, corev1.PersistentVolumeClaim{
			ObjectMeta: metav1.ObjectMeta{Name: "logs"},
			Spec:       logging.VolumeClaimTemplate,
		})
	}

	sts := &appsv1.StatefulSet{
		ObjectMeta: metav1.ObjectMeta{
			Name:      rustfsv1alpha1.StatefulWorkloadName(tenant.Name, pool.Name),
			Namespace: tenant.Namespace,
			Labels:    labels,
		},
		Spec: appsv1.StatefulSetSpec{
			Replicas:            &replicas,
			ServiceName:         rustfsv1alpha1.HeadlessServiceName(tenant.Name),
			PodManagementPolicy: podManagement,
			Selector: &metav1.LabelSelector{
				MatchLabels: selector,
			},
			VolumeClaimTemplates: claims,
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: labels},
				Spec: corev1.PodSpec{
					SchedulerName:             tenant.Spec.Scheduler,
					Containers:                []corev1.Container{container},
					NodeSelector:              pool.Scheduling().NodeSelector,
					Affinity:                  pool.Scheduling().Affinity,
					Tolerations:               pool.Scheduling().Tolerations,
					TopologySpreadConstraints: pool.Scheduling().TopologySpreadConstraints,
					PriorityClassName:         priorityClassFor(tenant, pool),
				},
			},
		},
	}

	return sts
}

func buildContainer(tenant *rustfsv1alpha1.Tenant, pool rustfsv1alpha1.Pool, volumesEnv, fallbackImage string) corev1.Container {
	image := tenant.Spec.Image
	if image == "" {
		image = fallbackImage
	}

	c := corev1.Container{
		Name:            containerName,
		Image:           image,
		ImagePullPolicy: tenant.Spec.ImagePullPolicy,
		Resources:       pool.Scheduling().Resources,
	}

	util.UpsertEnvVars(&c, []corev1.EnvVar{
		{Name: "RUSTFS_VOLUMES", Value: volumesEnv},
		{Name: "RUSTFS_ADDRESS", Value: "0.0.0.0:9000"},
		{Name: "RUSTFS_CONSOLE_ADDRESS", Value: "0.0.0.0:9001"},
		{Name: "RUSTFS_CONSOLE_ENABLE", Value: "true"},
	})

	if tenant.Spec.CredsSecret != nil {
		util.UpsertEnvVars(&c, []corev1.EnvVar{
			{Name: "RUSTFS_ACCESS_KEY", ValueFrom: secretKeyRefEnv(tenant.Spec.CredsSecret.Name, "accesskey")},
			{Name: "RUSTFS_SECRET_KEY", ValueFrom: secretKeyRefEnv(tenant.Spec.CredsSecret.Name, "secretkey")},
		})
	}

	// Tenant env entries are applied last so they override the derived
	// entries above by name (spec §4.3 point 6).
	util.UpsertEnvVars(&c, tenant.Spec.Env)

	path := pool.Persistence.PathOrDefault()
	for i := int32(0); i < pool.Persistence.VolumesPerServer; i++ {
		util.UpsertVolumeMount(&c, corev1.VolumeMount{
			Name:      rustfsv1alpha1.VolumeClaimName(int(i)),
			MountPath: mountPathFor(path, i),
		})
	}

	c.LivenessProbe = probeOrDefault(tenant.Spec.LivenessProbe, defaultLivenessProbe())
	c.ReadinessProbe = probeOrDefault(tenant.Spec.ReadinessProbe, defaultReadinessProbe())
	c.StartupProbe = probeOrDefault(tenant.Spec.StartupProbe, defaultStartupProbe())

	if logging := tenant.Spec.LoggingConfig; logging != nil {
		mountPath := logging.MountPath
		if mountPath == "" {
			mountPath = "/logs"
		}
		util.UpsertVolumeMount(&c, corev1.VolumeMount{Name: "logs", MountPath: mountPath})
	}

	return c
}

func mountPathFor(path string, i int32) string {
	return path + "/rustfs" + strconv.FormatInt(int64(i), 10)
}

func secretKeyRefEnv(secretName, key string) *corev1.EnvVarSource {
	return &corev1.EnvVarSource{
		SecretKeyRef: &corev1.SecretKeySelector{
			LocalObjectReference: corev1.LocalObjectReference{Name: secretName},
			Key:                  key,
		},
	}
}

// probeOrDefault implements the §9 Open Question 3 decision: a user-supplied
// probe replaces the default wholesale, it never merges field-by-field.
func probeOrDefault(override *corev1.Probe, def *corev1.Probe) *corev1.Probe {
	if override != nil {
		return override
	}
	return def
}

func defaultLivenessProbe() *corev1.Probe {
	return &corev1.Probe{
		ProbeHandler: corev1.ProbeHandler{
			HTTPGet: &corev1.HTTPGetAction{Path: "/rustfs/health/live", Port: intstr.FromInt32(9000)},
		},
		InitialDelaySeconds: 120,
		PeriodSeconds:       15,
	}
}

func defaultReadinessProbe() *corev1.Probe {
	return &corev1.Probe{
		ProbeHandler: corev1.ProbeHandler{
			HTTPGet: &corev1.HTTPGetAction{Path: "/rustfs/health/ready", Port: intstr.FromInt32(9000)},
		},
		InitialDelaySeconds: 30,
		PeriodSeconds:       10,
	}
}

func defaultStartupProbe() *corev1.Probe {
	return &corev1.Probe{
		ProbeHandler: corev1.ProbeHandler{
			HTTPGet: &corev1.HTTPGetAction{Path: "/rustfs/health/startup", Port: intstr.FromInt32(9000)},
		},
		FailureThreshold: 30,
	}
}

// priorityClassFor resolves P.scheduling.priorityClassName ?? Tenant.priorityClassName.
func priorityClassFor(tenant *rustfsv1alpha1.Tenant, pool rustfsv1alpha1.Pool) string {
	if pool.PriorityClassName != "" {
		return pool.PriorityClassName
	}
	return tenant.Spec.PriorityClassName
}

func buildVolumeClaimTemplates(pool rustfsv1alpha1.Pool) []corev1.PersistentVolumeClaim {
	templates := make([]corev1.PersistentVolumeClaim, 0, pool.Persistence.VolumesPerServer)
	for i := int32(0); i < pool.Persistence.VolumesPerServer; i++ {
		templates = append(templates, corev1.PersistentVolumeClaim{
			ObjectMeta: metav1.ObjectMeta{
				Name:        rustfsv1alpha1.VolumeClaimName(int(i)),
				Labels:      pool.Persistence.Labels,
				Annotations: pool.Persistence.Annotations,
			},
			Spec: pool.Persistence.VolumeClaimTemplate,
		})
	}
	return templates
}
