package loader

import (
	"context"
	"errors"
	"testing"

	"navkit/internal/view"
)

func TestRegistry_LoadTemplate(t *testing.T) {
	r := NewRegistry()
	r.AddTemplate("panel", view.TemplateFunc("panel", func() (view.Instance, error) {
		v := &struct{ view.Base }{Base: view.NewBase("panel")}
		return v, nil
	}))

	tmpl, err := r.LoadTemplate(context.Background(), "panel")
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	if tmpl.Kind() != "panel" {
		t.Errorf("expected kind 'panel', got %q", tmpl.Kind())
	}
}

func TestRegistry_NotFound(t *testing.T) {
	r := NewRegistry()
	_, err := r.LoadTemplate(context.Background(), "ghost")
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestRegistry_HonorsCancellation(t *testing.T) {
	r := NewRegistry()
	r.AddTemplate("panel", view.TemplateFunc("panel", nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.LoadTemplate(ctx, "panel")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
