package expert

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/agbru/expertpanel/internal/errors"
)

func TestDescriptor_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		desc    Descriptor
		wantErr bool
	}{
		{"valid", Descriptor{Name: "A", Instructions: "be A"}, false},
		{"empty name", Descriptor{Name: "", Instructions: "be A"}, true},
		{"empty instructions", Descriptor{Name: "A", Instructions: ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.desc.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var valErr apperrors.ValidationError
				if !errors.As(err, &valErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
			}
		})
	}
}

func TestDefaultPanel(t *testing.T) {
	t.Parallel()

	panel := DefaultPanel()
	if len(panel) != 2 {
		t.Fatalf("DefaultPanel() returned %d experts, want 2", len(panel))
	}
	for _, d := range panel {
		if err := d.Validate(); err != nil {
			t.Errorf("default descriptor %q invalid: %v", d.Name, err)
		}
	}
	if panel[0].Name != "Physics Expert" || panel[1].Name != "Chemistry Expert" {
		t.Errorf("unexpected default names: %q, %q", panel[0].Name, panel[1].Name)
	}
}

func TestLoadPanel(t *testing.T) {
	t.Parallel()

	writePanel := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "panel.yaml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("valid panel preserves order", func(t *testing.T) {
		path := writePanel(t, `
experts:
  - name: Historian
    instructions: Answer as a historian.
  - name: Economist
    instructions: Answer as an economist.
  - name: Historian
    instructions: A second historian with the same name.
`)
		panel, err := LoadPanel(path)
		if err != nil {
			t.Fatalf("LoadPanel() error = %v", err)
		}
		want := []Descriptor{
			{Name: "Historian", Instructions: "Answer as a historian."},
			{Name: "Economist", Instructions: "Answer as an economist."},
			{Name: "Historian", Instructions: "A second historian with the same name."},
		}
		if diff := cmp.Diff(want, panel); diff != "" {
			t.Errorf("panel mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty panel rejected", func(t *testing.T) {
		path := writePanel(t, "experts: []\n")
		if _, err := LoadPanel(path); err == nil {
			t.Error("expected error for empty panel")
		}
	})

	t.Run("descriptor without instructions rejected", func(t *testing.T) {
		path := writePanel(t, "experts:\n  - name: Broken\n")
		if _, err := LoadPanel(path); err == nil {
			t.Error("expected error for missing instructions")
		}
	})

	t.Run("missing file yields config error", func(t *testing.T) {
		_, err := LoadPanel(filepath.Join(t.TempDir(), "nope.yaml"))
		var cfgErr apperrors.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("expected ConfigError, got %v", err)
		}
	})

	t.Run("malformed yaml yields config error", func(t *testing.T) {
		path := writePanel(t, "experts: [::")
		_, err := LoadPanel(path)
		var cfgErr apperrors.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("expected ConfigError, got %v", err)
		}
	})
}
