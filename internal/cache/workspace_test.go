package cache

import (
	"context"
	"errors"
	"testing"

	"appforge/internal/domain/models"
)

func TestResolveLoadsOnce(t *testing.T) {
	c := NewWorkspaceCache()
	calls := 0
	load := func(context.Context) (models.ID, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		id, err := c.Resolve(context.Background(), 7, load)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if id != 42 {
			t.Errorf("Resolve() = %s, want 42", id)
		}
	}
	if calls != 1 {
		t.Errorf("loader ran %d times, want 1", calls)
	}
}

func TestResolveNeverCachesZero(t *testing.T) {
	c := NewWorkspaceCache()
	calls := 0
	load := func(context.Context) (models.ID, error) {
		calls++
		return 0, nil
	}

	for i := 0; i < 2; i++ {
		if id, err := c.Resolve(context.Background(), 7, load); err != nil || !id.IsZero() {
			t.Fatalf("Resolve() = %s, %v", id, err)
		}
	}
	if calls != 2 {
		t.Errorf("loader ran %d times, want 2 (zero results are not cached)", calls)
	}
}

func TestResolvePropagatesLoadError(t *testing.T) {
	c := NewWorkspaceCache()
	boom := errors.New("db down")

	_, err := c.Resolve(context.Background(), 7, func(context.Context) (models.ID, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("Resolve() error = %v, want %v", err, boom)
	}

	// A later successful load still goes through.
	id, err := c.Resolve(context.Background(), 7, func(context.Context) (models.ID, error) {
		return 9, nil
	})
	if err != nil || id != 9 {
		t.Errorf("Resolve() after failure = %s, %v", id, err)
	}
}

func TestSwitchAndForget(t *testing.T) {
	c := NewWorkspaceCache()

	c.Switch(7, 11)
	if id, ok := c.Get(7); !ok || id != 11 {
		t.Errorf("Get() after Switch = %s, %v", id, ok)
	}

	c.Switch(7, 12)
	if id, _ := c.Get(7); id != 12 {
		t.Errorf("Get() after second Switch = %s, want 12", id)
	}

	c.Forget(7)
	if _, ok := c.Get(7); ok {
		t.Error("Get() after Forget still hits")
	}

	// Per-user isolation.
	c.Switch(8, 13)
	if _, ok := c.Get(7); ok {
		t.Error("user 7 inherited user 8's selection")
	}
}
