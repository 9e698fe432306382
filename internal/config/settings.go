package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"

	"go-hex-sculptor/pkg/hexmap"
)

// MaterialDef is one entry of the material palette.
type MaterialDef struct {
	ID    hexmap.MaterialID `json:"id"`
	Name  string            `json:"name"`
	Color color.RGBA        `json:"color"`
}

// CameraDef holds the initial orbit camera.
type CameraDef struct {
	Distance float64 `json:"distance"`
	Pitch    float64 `json:"pitch"`
	Yaw      float64 `json:"yaw"`
	FovY     float64 `json:"fovy"`
}

// GenerateDef configures the starter map generated for an empty database.
type GenerateDef struct {
	Seed      int64   `json:"seed"`
	Radius    int     `json:"radius"`
	MaxHeight float64 `json:"max_height"`
	Step      float64 `json:"step"`
	Scale     float64 `json:"scale"`
}

// Settings is the editor configuration file.
type Settings struct {
	WindowWidth     int               `json:"window_width"`
	WindowHeight    int               `json:"window_height"`
	DBPath          string            `json:"db_path"`
	HexSize         float64           `json:"hex_size"`
	DefaultMaterial hexmap.MaterialID `json:"default_material"`
	CoordFormat     string            `json:"coord_format"`
	Materials       []MaterialDef     `json:"materials"`
	Camera          CameraDef         `json:"camera"`
	Generate        GenerateDef       `json:"generate"`
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() *Settings {
	return &Settings{
		WindowWidth:     ScreenWidth,
		WindowHeight:    ScreenHeight,
		DBPath:          DefaultDBPath,
		HexSize:         DefaultHexSize,
		DefaultMaterial: "grass",
		CoordFormat:     hexmap.FormatAxial.String(),
		Materials: []MaterialDef{
			{ID: "grass", Name: "Grass", Color: color.RGBA{100, 140, 110, 255}},
			{ID: "sand", Name: "Sand", Color: color.RGBA{194, 178, 128, 255}},
			{ID: "rock", Name: "Rock", Color: color.RGBA{128, 128, 128, 255}},
			{ID: "water", Name: "Water", Color: color.RGBA{70, 100, 160, 255}},
			{ID: "snow", Name: "Snow", Color: color.RGBA{235, 240, 245, 255}},
		},
		Camera: CameraDef{
			Distance: CameraDistance,
			Pitch:    CameraPitch,
			Yaw:      CameraYaw,
			FovY:     CameraFovY,
		},
		Generate: GenerateDef{
			Seed:      42,
			Radius:    8,
			MaxHeight: 4,
			Step:      0.5,
			Scale:     0.12,
		},
	}
}

// LoadSettings reads a settings file on top of the defaults.
// A missing file is not an error: the defaults are returned as is.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()
	file, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := json.Unmarshal(file, s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings %s: %w", path, err)
	}
	return s, nil
}

// Validate checks ranges and palette consistency.
func (s *Settings) Validate() error {
	if s.WindowWidth <= 0 || s.WindowHeight <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", s.WindowWidth, s.WindowHeight)
	}
	if s.HexSize < MinHexSize || s.HexSize > MaxHexSize {
		return fmt.Errorf("hex_size %.2f outside [%.2f, %.2f]", s.HexSize, MinHexSize, MaxHexSize)
	}
	if len(s.Materials) == 0 {
		return errors.New("material palette is empty")
	}
	seen := make(map[hexmap.MaterialID]bool, len(s.Materials))
	for _, m := range s.Materials {
		if m.ID == "" {
			return errors.New("material with empty id")
		}
		if seen[m.ID] {
			return fmt.Errorf("duplicate material %q", m.ID)
		}
		seen[m.ID] = true
	}
	if !seen[s.DefaultMaterial] {
		return fmt.Errorf("default_material %q is not in the palette", s.DefaultMaterial)
	}
	if _, err := hexmap.ParseCoordFormat(s.CoordFormat); err != nil {
		return err
	}
	if s.Generate.Radius < 0 {
		return fmt.Errorf("generate.radius %d is negative", s.Generate.Radius)
	}
	return nil
}

// Material looks up a palette entry.
func (s *Settings) Material(id hexmap.MaterialID) (MaterialDef, bool) {
	for _, m := range s.Materials {
		if m.ID == id {
			return m, true
		}
	}
	return MaterialDef{}, false
}

// MaterialIDs returns the palette order, used to cycle materials.
func (s *Settings) MaterialIDs() []hexmap.MaterialID {
	ids := make([]hexmap.MaterialID, len(s.Materials))
	for i, m := range s.Materials {
		ids[i] = m.ID
	}
	return ids
}

// Format returns the parsed coordinate format; Validate guarantees it parses.
func (s *Settings) Format() hexmap.CoordFormat {
	f, _ := hexmap.ParseCoordFormat(s.CoordFormat)
	return f
}
