// Package cluster talks to the Kubernetes control plane on behalf of the
// orchestrator: scaling service Deployments up and down, waiting for them
// to become available, and reporting pod status.
package cluster

import (
	"context"
	"fmt"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	autoscalingv1 "k8s.io/api/autoscaling/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	_ "k8s.io/client-go/plugin/pkg/client/auth" // Important for various auth providers
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"stackctl/pkg/logging"
)

// availablePollInterval is how often WaitUntilAvailable re-reads the
// Deployment status.
const availablePollInterval = 2 * time.Second

// NewK8sClientsetFromConfig is a package-level variable for creating a
// clientset from rest.Config. Exported to allow overriding in tests.
var NewK8sClientsetFromConfig = func(c *rest.Config) (kubernetes.Interface, error) {
	return kubernetes.NewForConfig(c)
}

// manager implements Manager against a live cluster.
type manager struct {
	client    kubernetes.Interface
	namespace string
}

// NewManager creates a Manager for the given namespace using the default
// kubeconfig loading rules (honors KUBECONFIG and the current context).
func NewManager(namespace string) (Manager, error) {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	kubeConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, &clientcmd.ConfigOverrides{})

	restConfig, err := kubeConfig.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get REST config: %w", err)
	}
	restConfig.Timeout = 15 * time.Second

	client, err := NewK8sClientsetFromConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes clientset: %w", err)
	}

	return NewManagerWithClient(client, namespace), nil
}

// NewManagerWithClient creates a Manager around an existing clientset.
// Used by tests with the fake clientset.
func NewManagerWithClient(client kubernetes.Interface, namespace string) Manager {
	return &manager{
		client:    client,
		namespace: namespace,
	}
}

func (m *manager) Exists(ctx context.Context, serviceName string) (bool, error) {
	_, err := m.client.AppsV1().Deployments(m.namespace).Get(ctx, serviceName, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get deployment %s/%s: %w", m.namespace, serviceName, err)
	}
	return true, nil
}

func (m *manager) GetReplicaCount(ctx context.Context, serviceName string) (int32, error) {
	scale, err := m.client.AppsV1().Deployments(m.namespace).GetScale(ctx, serviceName, metav1.GetOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to get scale of deployment %s/%s: %w", m.namespace, serviceName, err)
	}
	return scale.Spec.Replicas, nil
}

func (m *manager) SetReplicaCount(ctx context.Context, serviceName string, n int32) error {
	subsystem := fmt.Sprintf("Scale-%s", serviceName)
	logging.Debug(subsystem, "Scaling deployment %s/%s to %d replicas", m.namespace, serviceName, n)

	scale := &autoscalingv1.Scale{
		ObjectMeta: metav1.ObjectMeta{
			Name:      serviceName,
			Namespace: m.namespace,
		},
		Spec: autoscalingv1.ScaleSpec{
			Replicas: n,
		},
	}
	_, err := m.client.AppsV1().Deployments(m.namespace).UpdateScale(ctx, serviceName, scale, metav1.UpdateOptions{})
	if err != nil {
		return fmt.Errorf("failed to scale deployment %s/%s to %d: %w", m.namespace, serviceName, n, err)
	}
	return nil
}

func (m *manager) WaitUntilAvailable(ctx context.Context, serviceName string, timeout time.Duration) (bool, error) {
	subsystem := fmt.Sprintf("WaitAvailable-%s", serviceName)

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(availablePollInterval)
	defer ticker.Stop()

	for {
		deployment, err := m.client.AppsV1().Deployments(m.namespace).Get(waitCtx, serviceName, metav1.GetOptions{})
		if err == nil && deploymentAvailable(deployment) {
			logging.Debug(subsystem, "Deployment %s/%s is available", m.namespace, serviceName)
			return true, nil
		}
		if err != nil && !apierrors.IsNotFound(err) {
			logging.Debug(subsystem, "Transient error while waiting: %v", err)
		}

		select {
		case <-waitCtx.Done():
			if err != nil {
				return false, fmt.Errorf("deployment %s/%s did not become available: %w", m.namespace, serviceName, err)
			}
			return false, nil
		case <-ticker.C:
		}
	}
}

// deploymentAvailable reports whether all desired replicas are ready and the
// Available condition holds.
func deploymentAvailable(deployment *appsv1.Deployment) bool {
	desired := int32(1)
	if deployment.Spec.Replicas != nil {
		desired = *deployment.Spec.Replicas
	}
	if desired == 0 {
		return false
	}
	if deployment.Status.ReadyReplicas < desired {
		return false
	}
	for _, cond := range deployment.Status.Conditions {
		if cond.Type == appsv1.DeploymentAvailable {
			return cond.Status == corev1.ConditionTrue
		}
	}
	// No Available condition yet; ready replicas alone is good enough.
	return true
}

func (m *manager) GetPodStatus(ctx context.Context, serviceName string) (PodStatus, error) {
	deployment, err := m.client.AppsV1().Deployments(m.namespace).Get(ctx, serviceName, metav1.GetOptions{})
	if err != nil {
		return PodStatus{}, fmt.Errorf("failed to get deployment %s/%s: %w", m.namespace, serviceName, err)
	}

	selector, err := metav1.LabelSelectorAsSelector(deployment.Spec.Selector)
	if err != nil {
		return PodStatus{}, fmt.Errorf("invalid selector on deployment %s/%s: %w", m.namespace, serviceName, err)
	}

	podList, err := m.client.CoreV1().Pods(m.namespace).List(ctx, metav1.ListOptions{
		LabelSelector: selector.String(),
	})
	if err != nil {
		return PodStatus{}, fmt.Errorf("failed to list pods for %s/%s: %w", m.namespace, serviceName, err)
	}
	if len(podList.Items) == 0 {
		return PodStatus{}, nil
	}

	pod := pickRepresentativePod(podList.Items)
	status := PodStatus{
		Phase:           string(pod.Status.Phase),
		TotalContainers: len(pod.Spec.Containers),
	}
	for _, cs := range pod.Status.ContainerStatuses {
		if cs.Ready {
			status.ReadyContainers++
		}
	}
	return status, nil
}

// pickRepresentativePod prefers a running pod; during rollouts a terminating
// pod and its replacement can coexist briefly.
func pickRepresentativePod(pods []corev1.Pod) *corev1.Pod {
	for i := range pods {
		if pods[i].Status.Phase == corev1.PodRunning {
			return &pods[i]
		}
	}
	return &pods[0]
}
