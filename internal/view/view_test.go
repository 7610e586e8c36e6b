package view

import (
	"errors"
	"testing"
)

type fakeModel struct{ disposed int }

func (m *fakeModel) Dispose() { m.disposed++ }

func TestBase_BindOnce(t *testing.T) {
	b := NewBase("panel")
	m := &fakeModel{}
	if err := b.Bind(m); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if b.Model() != m {
		t.Error("expected bound model to be returned by Model()")
	}
	if err := b.Bind(&fakeModel{}); !errors.Is(err, ErrAlreadyBound) {
		t.Errorf("second Bind: expected ErrAlreadyBound, got %v", err)
	}
}

func TestBase_BindNil(t *testing.T) {
	b := NewBase("panel")
	if err := b.Bind(nil); !errors.Is(err, ErrNilModel) {
		t.Errorf("Bind(nil): expected ErrNilModel, got %v", err)
	}
}

func TestBase_UnbindAllowsRebind(t *testing.T) {
	b := NewBase("panel")
	m := &fakeModel{}
	if err := b.Bind(m); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if got := b.Unbind(); got != m {
		t.Error("Unbind: expected the bound model back")
	}
	if b.Model() != nil {
		t.Error("expected no model after Unbind")
	}
	if err := b.Bind(&fakeModel{}); err != nil {
		t.Errorf("rebind after Unbind: %v", err)
	}
}

func TestBase_UnbindEmpty(t *testing.T) {
	b := NewBase("panel")
	if got := b.Unbind(); got != nil {
		t.Errorf("Unbind on unbound: expected nil, got %v", got)
	}
}

func TestNewBase_UniqueIDs(t *testing.T) {
	a, b := NewBase("panel"), NewBase("panel")
	if a.ID() == b.ID() {
		t.Error("expected distinct instance IDs")
	}
	if a.Kind() != "panel" {
		t.Errorf("expected kind 'panel', got %q", a.Kind())
	}
}

func TestBase_VisibilityFlags(t *testing.T) {
	b := NewBase("panel")
	if b.Visible() || b.Interactive() {
		t.Error("new instance should start hidden and non-interactive")
	}
	b.SetVisible(true)
	b.SetInteractive(true)
	if !b.Visible() || !b.Interactive() {
		t.Error("expected flags set")
	}
}

func TestTemplateFunc(t *testing.T) {
	tmpl := TemplateFunc("panel", func() (Instance, error) {
		v := &struct{ Base }{Base: NewBase("panel")}
		return v, nil
	})
	if tmpl.Kind() != "panel" {
		t.Errorf("expected kind 'panel', got %q", tmpl.Kind())
	}
	inst, err := tmpl.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if inst.Kind() != "panel" {
		t.Errorf("instance kind: expected 'panel', got %q", inst.Kind())
	}
}
