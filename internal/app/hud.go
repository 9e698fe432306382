package app

import (
	"fmt"
	"time"

	"go-hex-sculptor/internal/tool"
	"go-hex-sculptor/pkg/brush"

	"github.com/dustin/go-humanize"
)

// StatusLines returns the HUD text for the current frame.
func (s *Session) StatusLines() []string {
	ed := s.Editor
	lines := []string{
		fmt.Sprintf("Tool: %s   Brush: %d (%d hexes)   Material: %s",
			ed.ActiveTool(), ed.BrushSize(), brush.Area(ed.BrushSize()), s.Map.Material),
	}

	switch ed.ActiveTool() {
	case tool.Paint:
		h, off := ed.PaintLayer()
		lines = append(lines, fmt.Sprintf("Height: %.2f   Offset: %+.2f   -> %.2f", h, off, h+off))
	case tool.Settings:
		size, dirty := ed.SettingsDraft()
		mark := ""
		if dirty {
			mark = " (not applied)"
		}
		lines = append(lines, fmt.Sprintf("Hex size: %.2f%s   Coordinates: %v %s",
			size, mark, s.Map.ShowCoordinates, s.Map.CoordFormat))
	}

	if sel, ok := s.Map.Selected(); ok {
		lines = append(lines, "Selected: "+s.Map.CoordFormat.Format(sel))
	}
	lines = append(lines, fmt.Sprintf("Tiles: %s   Edits: %d   %s",
		humanize.Comma(int64(s.Map.Tiles.Len())), s.Marker.Count(), s.saveStatus()))
	return lines
}

func (s *Session) saveStatus() string {
	switch {
	case s.DB == nil:
		return "in-memory map"
	case s.lastError != nil:
		return "save failed: " + s.lastError.Error()
	case s.Dirty():
		return "unsaved changes"
	case s.lastSaved.IsZero():
		return "no changes"
	}
	return "saved " + humanize.RelTime(s.lastSaved, time.Now(), "ago", "from now")
}
