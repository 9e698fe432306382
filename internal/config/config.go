// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
	MaxDeltaTime = 0.06

	DefaultHexSize = 1.0
	MinHexSize     = 0.25
	MaxHexSize     = 10.0
	HexSizeStep    = 0.25

	DefaultBrushSize = 1
	PaintHeightStep  = 0.5
	MinPaintHeight   = -50.0
	MaxPaintHeight   = 50.0

	// Seconds between the first unsaved change and the autosave.
	AutosaveInterval = 5.0

	DefaultDBPath       = "data/hexmap.db"
	DefaultSettingsPath = "config/editor.json"

	CameraDistance  = 28.0
	CameraPitch     = 55.0 // degrees above the horizon
	CameraYaw       = 30.0
	CameraFovY      = 45.0
	CameraOrbitStep = 1.5 // degrees per frame while a rotate key is held
	CameraZoomStep  = 1.0

	StrokeWidth     = 1.5
	TextOffsetY     = 4
	OverlayFontSize = 11
	HUDLineHeight   = 16
)

var (
	BackgroundColor = color.RGBA{20, 20, 30, 255}
	SideColor       = color.RGBA{45, 45, 60, 255}
	OutlineColor    = color.RGBA{15, 15, 20, 255}
	HighlightColor  = color.RGBA{255, 255, 255, 90}
	NextTileColor   = color.RGBA{255, 215, 0, 140}
	SelectedColor   = color.RGBA{255, 80, 80, 255}
	TextLightColor  = color.RGBA{240, 240, 240, 255}
	TextDarkColor   = color.RGBA{20, 20, 30, 255}
	MissingMaterial = color.RGBA{255, 0, 255, 255}

	// ToolColors tints the HUD tool indicator, in tool order Select..Settings.
	ToolColors = []color.RGBA{
		{70, 130, 180, 220},
		{50, 205, 50, 220},
		{180, 50, 230, 220},
		{220, 60, 60, 220},
		{194, 178, 128, 255},
	}
)
