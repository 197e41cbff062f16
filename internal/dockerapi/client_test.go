package dockerapi

import (
	"context"
	"testing"
)

func TestRealClient_SatisfiesClient(t *testing.T) {
	var _ Client = (*RealClient)(nil)
}

func TestFakeClient_SatisfiesClient(t *testing.T) {
	var _ Client = (*FakeClient)(nil)
}

func TestFakeClient_PullImage_Error(t *testing.T) {
	fake := &FakeClient{PullImageErr: context.DeadlineExceeded}
	err := fake.PullImage(context.Background(), "redis:7.2")
	if err != context.DeadlineExceeded {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
}

func TestFakeClient_CreateContainer(t *testing.T) {
	fake := &FakeClient{CreateContainerID: "abc123"}
	id, err := fake.CreateContainer(context.Background(), CreateSpec{Image: "redis:7.2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "abc123" {
		t.Errorf("expected id %q, got %q", "abc123", id)
	}
}

func TestFakeClient_StopContainer_KillsBeforeDeletes(t *testing.T) {
	fake := &FakeClient{}
	if err := fake.StopContainer(context.Background(), "abc123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.Calls) != 2 || fake.Calls[0] != "kill_container" || fake.Calls[1] != "remove_container" {
		t.Errorf("expected [kill_container, remove_container], got %v", fake.Calls)
	}
}

func TestFakeClient_StopContainer_RemoveSkippedOnKillError(t *testing.T) {
	fake := &FakeClient{KillContainerErr: context.DeadlineExceeded}
	err := fake.StopContainer(context.Background(), "abc123")
	if err != context.DeadlineExceeded {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
	if len(fake.Calls) != 1 || fake.Calls[0] != "kill_container" {
		t.Errorf("expected remove_container not to run after kill failure, got %v", fake.Calls)
	}
}

func TestFakeClient_InspectContainer_DefaultsToID(t *testing.T) {
	fake := &FakeClient{}
	result, err := fake.InspectContainer(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ContainerID != "abc123" {
		t.Errorf("expected container id to default to the requested id, got %q", result.ContainerID)
	}
}

func TestHTTPError_Message(t *testing.T) {
	err := &HTTPError{Status: 404}
	if err.Error() != "http_error: status 404" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestFailedToError_Unwrap(t *testing.T) {
	cause := context.DeadlineExceeded
	err := &FailedToError{Op: "pull_image", Cause: cause}
	if err.Unwrap() != cause {
		t.Errorf("expected Unwrap to return cause")
	}
}
