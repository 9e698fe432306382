package app

import (
	"fmt"
	"slices"

	"go-hex-sculptor/internal/config"
	"go-hex-sculptor/internal/tool"
)

// Command is a host-independent editor action bound to a key or widget.
type Command int

const (
	CmdBrushGrow Command = iota
	CmdBrushShrink
	CmdHeightUp
	CmdHeightDown
	CmdOffsetUp
	CmdOffsetDown
	CmdHexSizeUp
	CmdHexSizeDown
	CmdApplySettings
	CmdRevertSettings
	CmdClearTiles
	CmdToggleCoordinates
	CmdCycleCoordFormat
	CmdCycleMaterial
	CmdSave
)

var commandNames = map[Command]string{
	CmdBrushGrow:         "brush-grow",
	CmdBrushShrink:       "brush-shrink",
	CmdHeightUp:          "height-up",
	CmdHeightDown:        "height-down",
	CmdOffsetUp:          "offset-up",
	CmdOffsetDown:        "offset-down",
	CmdHexSizeUp:         "hex-size-up",
	CmdHexSizeDown:       "hex-size-down",
	CmdApplySettings:     "apply-settings",
	CmdRevertSettings:    "revert-settings",
	CmdClearTiles:        "clear-tiles",
	CmdToggleCoordinates: "toggle-coordinates",
	CmdCycleCoordFormat:  "cycle-coord-format",
	CmdCycleMaterial:     "cycle-material",
	CmdSave:              "save",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// UseTool switches to the i-th tool in toolbar order.
func (s *Session) UseTool(i int) error {
	if i < 0 || i >= len(tool.Order) {
		return fmt.Errorf("tool index %d out of range", i)
	}
	return s.Editor.SelectTool(tool.Order[i])
}

// Do runs cmd against the editor. Tool events the active tool does not handle are ignored.
func (s *Session) Do(cmd Command) error {
	ed := s.Editor
	switch cmd {
	case CmdBrushGrow:
		ed.SetBrushSize(ed.BrushSize() + 1)
	case CmdBrushShrink:
		ed.SetBrushSize(ed.BrushSize() - 1)
	case CmdHeightUp:
		return ed.Trigger(tool.AdjustPaintHeight, config.PaintHeightStep)
	case CmdHeightDown:
		return ed.Trigger(tool.AdjustPaintHeight, -config.PaintHeightStep)
	case CmdOffsetUp:
		return ed.Trigger(tool.AdjustPaintOffset, config.PaintHeightStep)
	case CmdOffsetDown:
		return ed.Trigger(tool.AdjustPaintOffset, -config.PaintHeightStep)
	case CmdHexSizeUp:
		return ed.Trigger(tool.AdjustHexSize, config.HexSizeStep)
	case CmdHexSizeDown:
		return ed.Trigger(tool.AdjustHexSize, -config.HexSizeStep)
	case CmdApplySettings:
		return ed.Trigger(tool.ApplySettings, nil)
	case CmdRevertSettings:
		return ed.Trigger(tool.RevertSettings, nil)
	case CmdClearTiles:
		return ed.Trigger(tool.ClearTiles, nil)
	case CmdToggleCoordinates:
		return ed.Trigger(tool.ToggleCoordinates, nil)
	case CmdCycleCoordFormat:
		return ed.Trigger(tool.SetCoordFormat, s.Map.CoordFormat.Next())
	case CmdCycleMaterial:
		ids := s.Settings.MaterialIDs()
		i := slices.Index(ids, s.Map.Material)
		ed.SetMaterial(ids[(i+1)%len(ids)])
	case CmdSave:
		return s.Save()
	default:
		return fmt.Errorf("unknown command %v", cmd)
	}
	return nil
}
