package tool

import (
	"go-hex-sculptor/internal/state"

	"github.com/go-gl/mathgl/mgl64"
)

// Tool names, in toolbar order.
const (
	Select        state.Name = "select"
	Paint         state.Name = "paint"
	MaterialPaint state.Name = "material-paint"
	Erase         state.Name = "erase"
	Settings      state.Name = "settings"
)

// Order lists every tool in toolbar order.
var Order = []state.Name{Select, Paint, MaterialPaint, Erase, Settings}

// Events the tools understand. Pointer events come from the host's input source;
// the rest are raised by key bindings or toolbar widgets.
const (
	PointerMoved   state.EventName = "PointerMoved"   // no payload, read Editor.Pointer
	PointerClicked state.EventName = "PointerClicked" // Click

	AdjustPaintHeight state.EventName = "AdjustPaintHeight" // float64 delta
	AdjustPaintOffset state.EventName = "AdjustPaintOffset" // float64 delta

	AdjustHexSize     state.EventName = "AdjustHexSize" // float64 delta
	ApplySettings     state.EventName = "ApplySettings"
	RevertSettings    state.EventName = "RevertSettings"
	ClearTiles        state.EventName = "ClearTiles"
	ToggleCoordinates state.EventName = "ToggleCoordinates"
	SetCoordFormat    state.EventName = "SetCoordFormat" // hexmap.CoordFormat
)

// Button is a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// Click is the PointerClicked payload.
type Click struct {
	Button   Button
	Position mgl64.Vec2
}
