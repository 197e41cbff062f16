package containerspec

import "testing"

func TestSetEnv_PreservesInsertionOrder(t *testing.T) {
	d := &ContainerDescriptor{}
	d.SetEnv("POSTGRES_DB", "test")
	d.SetEnv("POSTGRES_USER", "test")
	d.SetEnv("POSTGRES_DB", "overwritten")

	if len(d.EnvOrder) != 2 {
		t.Fatalf("expected 2 tracked keys, got %d: %v", len(d.EnvOrder), d.EnvOrder)
	}
	if d.EnvOrder[0] != "POSTGRES_DB" || d.EnvOrder[1] != "POSTGRES_USER" {
		t.Errorf("expected order [POSTGRES_DB, POSTGRES_USER], got %v", d.EnvOrder)
	}
	if d.Environment["POSTGRES_DB"] != "overwritten" {
		t.Errorf("expected overwrite to update value in place")
	}
}

func TestMappedPort_ReturnsZeroWhenAbsent(t *testing.T) {
	h := &ContainerHandle{ExposedPorts: []ExposedPort{{ContainerPort: 5432, HostPort: 54321}}}
	if got := h.MappedPort(9999); got != 0 {
		t.Errorf("expected 0 for unmapped port, got %d", got)
	}
	if got := h.MappedPort(5432); got != 54321 {
		t.Errorf("expected 54321, got %d", got)
	}
}

func TestExposedPort_Fixed(t *testing.T) {
	if !(ExposedPort{ContainerPort: 5432, HostPort: 5433}).Fixed() {
		t.Error("expected fixed port mapping to report Fixed() == true")
	}
	if (ExposedPort{ContainerPort: 5432}).Fixed() {
		t.Error("expected ephemeral port mapping to report Fixed() == false")
	}
}

func TestInvalidImageError_Message(t *testing.T) {
	err := &InvalidImageError{ExpectedPrefix: "postgres", Actual: "redis:7.2"}
	want := `invalid image "redis:7.2": expected prefix "postgres"`
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}
