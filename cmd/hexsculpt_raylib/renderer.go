package main

import (
	"image/color"

	"go-hex-sculptor/internal/app"
	"go-hex-sculptor/internal/config"
	"go-hex-sculptor/pkg/hexmap"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const prismBaseDepth = 0.5

type prism struct {
	coord    hexmap.Hex
	material hexmap.MaterialID
	center   rl.Vector3
	top      [6]rl.Vector3
	bottom   [6]rl.Vector3
}

// prismRenderer keeps one hex prism per tile and draws them in 3D mode.
type prismRenderer struct {
	colors  map[hexmap.MaterialID]rl.Color
	hexSize float64
	prisms  map[hexmap.VisualID]*prism
	nextID  hexmap.VisualID
}

func newPrismRenderer(s *config.Settings, hexSize float64) *prismRenderer {
	colors := make(map[hexmap.MaterialID]rl.Color, len(s.Materials))
	for _, m := range s.Materials {
		colors[m.ID] = rlColor(m.Color)
	}
	return &prismRenderer{
		colors:  colors,
		hexSize: hexSize,
		prisms:  make(map[hexmap.VisualID]*prism),
	}
}

func (r *prismRenderer) CreateTile(tile *hexmap.Tile) hexmap.VisualID {
	r.nextID++
	p := &prism{}
	r.build(p, tile)
	r.prisms[r.nextID] = p
	return r.nextID
}

func (r *prismRenderer) DestroyTile(id hexmap.VisualID) { delete(r.prisms, id) }

func (r *prismRenderer) SetMaterial(id hexmap.VisualID, material hexmap.MaterialID) {
	if p, ok := r.prisms[id]; ok {
		p.material = material
	}
}

func (r *prismRenderer) RegenerateAll(m *hexmap.TileMap) {
	r.hexSize = m.HexSize
	live := make(map[hexmap.VisualID]struct{}, m.Tiles.Len())
	for tile := range m.Tiles.All() {
		if p, ok := r.prisms[tile.Visual]; ok && tile.Visual != 0 {
			r.build(p, tile)
		} else {
			tile.Visual = r.CreateTile(tile)
		}
		live[tile.Visual] = struct{}{}
	}
	for id := range r.prisms {
		if _, ok := live[id]; !ok {
			delete(r.prisms, id)
		}
	}
}

func (r *prismRenderer) build(p *prism, tile *hexmap.Tile) {
	p.coord = tile.Coord()
	p.material = tile.Material
	p.center = toRL(hexmap.HexToWorld(p.coord, r.hexSize, tile.Elevation))
	top := hexmap.Corners(p.coord, r.hexSize, tile.Elevation)
	bottom := hexmap.Corners(p.coord, r.hexSize, min(tile.Elevation, 0)-prismBaseDepth)
	for i := range 6 {
		p.top[i] = toRL(top[i])
		p.bottom[i] = toRL(bottom[i])
	}
}

func (r *prismRenderer) color(id hexmap.MaterialID) rl.Color {
	if c, ok := r.colors[id]; ok {
		return c
	}
	return rlColor(config.MissingMaterial)
}

func rlColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// draw must run between BeginMode3D and EndMode3D.
func (r *prismRenderer) draw(s *app.Session) {
	rl.DisableBackfaceCulling()
	defer rl.EnableBackfaceCulling()

	side := rlColor(config.SideColor)
	outline := rlColor(config.OutlineColor)
	for _, p := range r.prisms {
		top := r.color(p.material)
		wall := rl.ColorBrightness(top, -0.35)
		for i := 1; i < 5; i++ {
			rl.DrawTriangle3D(p.top[0], p.top[i], p.top[i+1], top)
		}
		for i := range 6 {
			j := (i + 1) % 6
			rl.DrawTriangle3D(p.top[i], p.bottom[i], p.bottom[j], wall)
			rl.DrawTriangle3D(p.top[i], p.bottom[j], p.top[j], wall)
			rl.DrawLine3D(p.top[i], p.top[j], outline)
			rl.DrawLine3D(p.top[i], p.bottom[i], side)
		}
	}

	preview := s.Editor.Preview()
	next := rlColor(config.NextTileColor)
	for _, pos := range preview.Next {
		c := r.corners(pos)
		for i := 1; i < 5; i++ {
			rl.DrawTriangle3D(c[0], c[i], c[i+1], next)
		}
	}
	for _, pos := range preview.Highlighted {
		r.ring(pos, rlColor(config.HighlightColor))
	}
	if sel, ok := s.Map.Selected(); ok {
		pos := hexmap.HexPosition{Hex: sel}
		if tile, ok := s.Map.Tiles.TryGet(sel); ok {
			pos = tile.Position()
		}
		r.ring(pos, rlColor(config.SelectedColor))
	}
}

func (r *prismRenderer) corners(pos hexmap.HexPosition) [6]rl.Vector3 {
	// чуть выше грани, чтобы не мерцало
	corners := hexmap.Corners(pos.Hex, r.hexSize, pos.Elevation+0.01)
	var out [6]rl.Vector3
	for i, c := range corners {
		out[i] = toRL(c)
	}
	return out
}

func (r *prismRenderer) ring(pos hexmap.HexPosition, c rl.Color) {
	corners := r.corners(pos)
	for i := range 6 {
		rl.DrawLine3D(corners[i], corners[(i+1)%6], c)
	}
}

// drawCoordinates must run after EndMode3D.
func (r *prismRenderer) drawCoordinates(cam rl.Camera3D, format hexmap.CoordFormat) {
	for _, p := range r.prisms {
		pos := rl.GetWorldToScreen(p.center, cam)
		label := format.Format(p.coord)
		width := rl.MeasureText(label, config.OverlayFontSize)
		rl.DrawText(label, int32(pos.X)-width/2, int32(pos.Y)-config.TextOffsetY, config.OverlayFontSize, rl.RayWhite)
	}
}
