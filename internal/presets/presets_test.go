package presets

import (
	"errors"
	"io/fs"
	"testing"
)

type fakeFS struct {
	data map[string][]byte
}

func (f *fakeFS) ReadFile(name string) ([]byte, error) {
	if d, ok := f.data[name]; ok {
		return d, nil
	}
	return nil, fs.ErrNotExist
}

func (f *fakeFS) Stat(name string) (fs.FileInfo, error) { return nil, fs.ErrNotExist }

func (f *fakeFS) IsNotExist(err error) bool { return errors.Is(err, fs.ErrNotExist) }

func TestLoad_ParsesCommandAndLogStrategies(t *testing.T) {
	doc := `
version: 1
modules:
  - name: cache
    image: redis:7.2
    port: 6379
    wait:
      strategy: command
      command: ["redis-cli", "PING"]
      timeout: 30s
  - name: db
    image: postgres:16
    port: 5432
    env:
      POSTGRES_DB: test
    wait:
      strategy: log
      pattern: "ready to accept connections"
`
	fsys := &fakeFS{data: map[string][]byte{"presets.yaml": []byte(doc)}}
	f, err := NewLoader(fsys).Load("presets.yaml")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(f.Modules) != 2 {
		t.Fatalf("got %d modules, want 2", len(f.Modules))
	}
	if f.Modules[0].Wait.Strategy != StrategyCommand {
		t.Errorf("got strategy %q, want command", f.Modules[0].Wait.Strategy)
	}

	builder, err := f.Modules[0].Builder()
	if err != nil {
		t.Fatalf("Builder returned error: %v", err)
	}
	d, err := builder.Build()
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if d.Image != "redis:7.2" {
		t.Errorf("got image %q, want redis:7.2", d.Image)
	}
	if len(d.WaitStrategies) != 1 || d.WaitStrategies[0].Name() != "command" {
		t.Errorf("got wait strategies %v, want one command strategy", d.WaitStrategies)
	}
}

func TestLoad_MissingFileReturnsErrFileNotFound(t *testing.T) {
	fsys := &fakeFS{data: map[string][]byte{}}
	_, err := NewLoader(fsys).Load("missing.yaml")
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("got error %v, want ErrFileNotFound", err)
	}
}

func TestLoad_RejectsModuleMissingRequiredFields(t *testing.T) {
	doc := `
version: 1
modules:
  - name: broken
`
	fsys := &fakeFS{data: map[string][]byte{"presets.yaml": []byte(doc)}}
	_, err := NewLoader(fsys).Load("presets.yaml")
	if err == nil {
		t.Fatal("expected a validation error, got nil")
	}
}

func TestWaitBlock_UnknownStrategyErrors(t *testing.T) {
	m := Module{Name: "x", Image: "img", Port: 80, Wait: WaitBlock{Strategy: "bogus"}}
	if _, err := m.Builder(); err == nil {
		t.Error("expected an error for an unknown wait strategy")
	}
}
