package resolve

import (
	"errors"
	"testing"

	"navkit/internal/view"
)

type fakeModel struct{}

func (*fakeModel) Dispose() {}

func TestRegistry_Resolve(t *testing.T) {
	r := NewRegistry()
	want := &fakeModel{}
	r.Add("panel", func() (view.Model, error) { return want, nil })

	got, err := r.Resolve("panel")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != want {
		t.Error("expected the registered model back")
	}
}

func TestRegistry_NotRegistered(t *testing.T) {
	r := NewRegistry()
	_, err := r.Resolve("ghost")
	if !errors.Is(err, ErrModelNotRegistered) {
		t.Errorf("expected ErrModelNotRegistered, got %v", err)
	}
}
