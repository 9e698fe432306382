package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-hex-sculptor/pkg/hexmap"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "editor.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultSettingsValid(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if s.HexSize != DefaultHexSize {
		t.Errorf("HexSize = %f", s.HexSize)
	}
}

func TestLoadSettingsOverrides(t *testing.T) {
	path := writeFile(t, `{
		"hex_size": 2.5,
		"coord_format": "offset-odd-q",
		"default_material": "lava",
		"materials": [{"id": "lava", "name": "Lava", "color": {"R": 255, "G": 60, "B": 0, "A": 255}}]
	}`)
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.HexSize != 2.5 {
		t.Errorf("HexSize = %f", s.HexSize)
	}
	if s.Format() != hexmap.FormatOffsetOddQ {
		t.Errorf("Format = %v", s.Format())
	}
	m, ok := s.Material("lava")
	if !ok || m.Color.R != 255 || m.Color.G != 60 {
		t.Errorf("Material(lava) = %+v, %v", m, ok)
	}
	// untouched fields keep their defaults
	if s.WindowWidth != ScreenWidth || s.Camera.FovY != CameraFovY {
		t.Errorf("defaults lost: %+v", s)
	}
}

func TestLoadSettingsErrors(t *testing.T) {
	tests := []struct {
		name, body, want string
	}{
		{"syntax", `{"hex_size": `, "unmarshal"},
		{"hex size", `{"hex_size": 100}`, "hex_size"},
		{"unknown default", `{"default_material": "plasma"}`, "default_material"},
		{"duplicate", `{"default_material": "a", "materials": [{"id": "a"}, {"id": "a"}]}`, "duplicate"},
		{"format", `{"coord_format": "cube"}`, "coordinate format"},
		{"empty palette", `{"materials": []}`, "palette"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadSettings(writeFile(t, tc.body))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestMaterialIDs(t *testing.T) {
	ids := DefaultSettings().MaterialIDs()
	if len(ids) != 5 || ids[0] != "grass" {
		t.Errorf("MaterialIDs = %v", ids)
	}
}
