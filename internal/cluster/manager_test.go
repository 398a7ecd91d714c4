package cluster

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	autoscalingv1 "k8s.io/api/autoscaling/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
)

const testNamespace = "dev"

func int32Ptr(n int32) *int32 { return &n }

func newDeployment(name string, replicas int32, readyReplicas int32, available bool) *appsv1.Deployment {
	condStatus := corev1.ConditionFalse
	if available {
		condStatus = corev1.ConditionTrue
	}
	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: testNamespace,
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: int32Ptr(replicas),
			Selector: &metav1.LabelSelector{
				MatchLabels: map[string]string{"app": name},
			},
		},
		Status: appsv1.DeploymentStatus{
			ReadyReplicas: readyReplicas,
			Conditions: []appsv1.DeploymentCondition{
				{Type: appsv1.DeploymentAvailable, Status: condStatus},
			},
		},
	}
}

func newPod(name, owner string, phase corev1.PodPhase, ready bool) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: testNamespace,
			Labels:    map[string]string{"app": owner},
		},
		Spec: corev1.PodSpec{
			Containers: []corev1.Container{{Name: "main"}},
		},
		Status: corev1.PodStatus{
			Phase: phase,
			ContainerStatuses: []corev1.ContainerStatus{
				{Name: "main", Ready: ready},
			},
		},
	}
}

// withScaleReactors wires explicit reactors for the scale subresource so the
// tests do not depend on the fake tracker's subresource handling.
func withScaleReactors(client *fake.Clientset, deployment *appsv1.Deployment) *autoscalingv1.Scale {
	scale := &autoscalingv1.Scale{
		ObjectMeta: metav1.ObjectMeta{Name: deployment.Name, Namespace: deployment.Namespace},
		Spec:       autoscalingv1.ScaleSpec{Replicas: *deployment.Spec.Replicas},
	}

	client.PrependReactor("get", "deployments", func(action k8stesting.Action) (bool, runtime.Object, error) {
		if action.GetSubresource() != "scale" {
			return false, nil, nil
		}
		return true, scale.DeepCopy(), nil
	})
	client.PrependReactor("update", "deployments", func(action k8stesting.Action) (bool, runtime.Object, error) {
		if action.GetSubresource() != "scale" {
			return false, nil, nil
		}
		updated := action.(k8stesting.UpdateAction).GetObject().(*autoscalingv1.Scale)
		scale.Spec.Replicas = updated.Spec.Replicas
		return true, scale.DeepCopy(), nil
	})

	return scale
}

func TestManager_Exists(t *testing.T) {
	client := fake.NewSimpleClientset(newDeployment("db", 1, 1, true))
	mgr := NewManagerWithClient(client, testNamespace)

	exists, err := mgr.Exists(context.Background(), "db")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = mgr.Exists(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestManager_ReplicaCountRoundTrip(t *testing.T) {
	deployment := newDeployment("db", 0, 0, false)
	client := fake.NewSimpleClientset(deployment)
	scale := withScaleReactors(client, deployment)
	mgr := NewManagerWithClient(client, testNamespace)

	count, err := mgr.GetReplicaCount(context.Background(), "db")
	require.NoError(t, err)
	assert.Equal(t, int32(0), count)

	require.NoError(t, mgr.SetReplicaCount(context.Background(), "db", 1))
	assert.Equal(t, int32(1), scale.Spec.Replicas)

	count, err = mgr.GetReplicaCount(context.Background(), "db")
	require.NoError(t, err)
	assert.Equal(t, int32(1), count)
}

func TestManager_WaitUntilAvailable_AlreadyAvailable(t *testing.T) {
	client := fake.NewSimpleClientset(newDeployment("db", 1, 1, true))
	mgr := NewManagerWithClient(client, testNamespace)

	available, err := mgr.WaitUntilAvailable(context.Background(), "db", 5*time.Second)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestManager_WaitUntilAvailable_Timeout(t *testing.T) {
	client := fake.NewSimpleClientset(newDeployment("db", 1, 0, false))
	mgr := NewManagerWithClient(client, testNamespace)

	available, err := mgr.WaitUntilAvailable(context.Background(), "db", 50*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, available)
}

func TestDeploymentAvailable_ScaledToZero(t *testing.T) {
	// A deployment scaled to zero is never "available" for our purposes.
	assert.False(t, deploymentAvailable(newDeployment("db", 0, 0, true)))
}

func TestManager_GetPodStatus(t *testing.T) {
	client := fake.NewSimpleClientset(
		newDeployment("db", 1, 1, true),
		newPod("db-7c4f9", "db", corev1.PodRunning, true),
	)
	mgr := NewManagerWithClient(client, testNamespace)

	status, err := mgr.GetPodStatus(context.Background(), "db")
	require.NoError(t, err)
	assert.Equal(t, "Running", status.Phase)
	assert.Equal(t, 1, status.ReadyContainers)
	assert.Equal(t, 1, status.TotalContainers)
}

func TestManager_GetPodStatus_PrefersRunningPod(t *testing.T) {
	client := fake.NewSimpleClientset(
		newDeployment("db", 1, 1, true),
		newPod("db-old", "db", corev1.PodPending, false),
		newPod("db-new", "db", corev1.PodRunning, true),
	)
	mgr := NewManagerWithClient(client, testNamespace)

	status, err := mgr.GetPodStatus(context.Background(), "db")
	require.NoError(t, err)
	assert.Equal(t, "Running", status.Phase)
}

func TestManager_GetPodStatus_NoPods(t *testing.T) {
	client := fake.NewSimpleClientset(newDeployment("db", 0, 0, false))
	mgr := NewManagerWithClient(client, testNamespace)

	status, err := mgr.GetPodStatus(context.Background(), "db")
	require.NoError(t, err)
	assert.Equal(t, PodStatus{}, status)
}
