package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStateOperations(t *testing.T) {
	root := t.TempDir()

	t.Run("Load empty state", func(t *testing.T) {
		state, err := Load(root)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if state == nil {
			t.Fatal("Load() returned nil state")
		}
		if len(state) != 0 {
			t.Errorf("Load() returned non-empty state: %v", state)
		}
	})

	t.Run("Set and Get", func(t *testing.T) {
		if err := Set(root, "active_layout", "slides.html"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		val, ok, err := Get(root, "active_layout")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if !ok {
			t.Fatal("Get() did not find key")
		}
		if val != "slides.html" {
			t.Errorf("Get() = %v, want slides.html", val)
		}
	})

	t.Run("GetString", func(t *testing.T) {
		got, err := GetString(root, "active_layout")
		if err != nil {
			t.Fatalf("GetString() error = %v", err)
		}
		if got != "slides.html" {
			t.Errorf("GetString() = %q, want %q", got, "slides.html")
		}

		missing, err := GetString(root, "no_such_key")
		if err != nil {
			t.Fatalf("GetString() error = %v", err)
		}
		if missing != "" {
			t.Errorf("GetString(missing) = %q, want empty", missing)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := Delete(root, "active_layout"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		_, ok, err := Get(root, "active_layout")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if ok {
			t.Error("key still present after Delete()")
		}
	})

	t.Run("State file location", func(t *testing.T) {
		if err := Set(root, "k", "v"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		if _, err := os.Stat(filepath.Join(root, ".lectern", "state.yml")); err != nil {
			t.Errorf("state file not at .lectern/state.yml: %v", err)
		}
	})
}

func TestBuildRecordRoundTrip(t *testing.T) {
	root := t.TempDir()

	record := BuildRecord{
		ID:         "b8f3e9c2",
		StartedAt:  time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC),
		Duration:   1200 * time.Millisecond,
		Pages:      42,
		Warnings:   []string{"page 'scratch.md' is not listed in any section"},
		OutputDir:  "public",
		Successful: true,
	}
	if err := SaveBuildRecord(root, record); err != nil {
		t.Fatalf("SaveBuildRecord() error = %v", err)
	}

	got, err := LastBuild(root)
	if err != nil {
		t.Fatalf("LastBuild() error = %v", err)
	}
	if got == nil {
		t.Fatal("LastBuild() = nil, want record")
	}
	if got.ID != record.ID || got.Pages != record.Pages || !got.Successful {
		t.Errorf("LastBuild() = %+v, want %+v", got, record)
	}
	if len(got.Warnings) != 1 {
		t.Errorf("warnings = %v, want 1 entry", got.Warnings)
	}
}

func TestLastBuildMissing(t *testing.T) {
	got, err := LastBuild(t.TempDir())
	if err != nil {
		t.Fatalf("LastBuild() error = %v", err)
	}
	if got != nil {
		t.Errorf("LastBuild() = %+v, want nil", got)
	}
}
