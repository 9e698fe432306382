package render

import (
	"fmt"
	"image/color"
	"math"
	"slices"

	"go-hex-sculptor/internal/config"
	"go-hex-sculptor/pkg/hexmap"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// baseDepth is how far below min(elevation, 0) a prism's sides reach.
const baseDepth = 0.5

// Projector maps world points to the screen. *viewport.Camera is the usual one.
type Projector interface {
	Project(world mgl64.Vec3) (mgl64.Vec2, bool)
	Depth(world mgl64.Vec3) float64
	Eye() mgl64.Vec3
}

// DrawOptions carries the per-frame overlays drawn on top of the tiles.
type DrawOptions struct {
	Highlighted     []hexmap.HexPosition
	Next            []hexmap.HexPosition
	Selected        *hexmap.HexPosition
	ShowCoordinates bool
	CoordFormat     hexmap.CoordFormat
}

// visual is the cached geometry of one tile prism.
type visual struct {
	coord     hexmap.Hex
	elevation float64
	material  hexmap.MaterialID
	center    mgl64.Vec3
	top       [6]mgl64.Vec3
	bottom    [6]mgl64.Vec3
}

type face struct {
	depth float64
	pts   []mgl64.Vec3
	fill  color.RGBA
}

// HexRenderer draws tile prisms with ebiten and implements interfaces.TileRenderer.
type HexRenderer struct {
	camera  Projector
	palette Palette
	hexSize float64

	visuals map[hexmap.VisualID]*visual
	nextID  hexmap.VisualID

	fillImg  *ebiten.Image
	fillVs   []ebiten.Vertex
	fillIs   []uint16
	strokeVs []ebiten.Vertex
	strokeIs []uint16
	faces    []face
	screenPt []mgl64.Vec2
	fontFace font.Face
}

// NewHexRenderer creates a renderer. The overlay font is the bundled Go Regular.
func NewHexRenderer(camera Projector, palette Palette, hexSize float64) (*HexRenderer, error) {
	tt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse overlay font: %w", err)
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    config.OverlayFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("overlay font face: %w", err)
	}

	return &HexRenderer{
		camera:   camera,
		palette:  palette,
		hexSize:  hexSize,
		visuals:  make(map[hexmap.VisualID]*visual),
		fillVs:   make([]ebiten.Vertex, 0, 18),
		fillIs:   make([]uint16, 0, 18),
		strokeVs: make([]ebiten.Vertex, 0, 36),
		strokeIs: make([]uint16, 0, 36),
		fontFace: face,
	}, nil
}

// CreateTile builds the tile's prism and returns its handle.
func (r *HexRenderer) CreateTile(tile *hexmap.Tile) hexmap.VisualID {
	r.nextID++
	v := &visual{}
	r.build(v, tile)
	r.visuals[r.nextID] = v
	return r.nextID
}

// DestroyTile drops a prism. Unknown ids are ignored.
func (r *HexRenderer) DestroyTile(id hexmap.VisualID) {
	delete(r.visuals, id)
}

// SetMaterial recolors a prism.
func (r *HexRenderer) SetMaterial(id hexmap.VisualID, material hexmap.MaterialID) {
	if v, ok := r.visuals[id]; ok {
		v.material = material
	}
}

// RegenerateAll rebuilds every prism at m's hex size. Tiles without a visual get one;
// visuals no tile refers to are dropped.
func (r *HexRenderer) RegenerateAll(m *hexmap.TileMap) {
	r.hexSize = m.HexSize
	live := make(map[hexmap.VisualID]struct{}, m.Tiles.Len())
	for tile := range m.Tiles.All() {
		v, ok := r.visuals[tile.Visual]
		if tile.Visual == 0 || !ok {
			tile.Visual = r.CreateTile(tile)
		} else {
			r.build(v, tile)
		}
		live[tile.Visual] = struct{}{}
	}
	for id := range r.visuals {
		if _, ok := live[id]; !ok {
			delete(r.visuals, id)
		}
	}
}

func (r *HexRenderer) build(v *visual, tile *hexmap.Tile) {
	v.coord = tile.Coord()
	v.elevation = tile.Elevation
	v.material = tile.Material
	v.center = hexmap.HexToWorld(v.coord, r.hexSize, v.elevation)
	v.top = hexmap.Corners(v.coord, r.hexSize, v.elevation)
	v.bottom = hexmap.Corners(v.coord, r.hexSize, min(v.elevation, 0)-baseDepth)
}

// collectFaces returns every visible face sorted far to near.
func (r *HexRenderer) collectFaces() []face {
	r.faces = r.faces[:0]
	eye := r.camera.Eye()
	for _, v := range r.visuals {
		top := r.palette.Color(v.material)
		for i := range 6 {
			j := (i + 1) % 6
			mid := v.top[i].Add(v.top[j]).Add(v.bottom[i]).Add(v.bottom[j]).Mul(0.25)
			// боковая грань видна, только если смотрит на камеру
			normal := mid.Sub(mgl64.Vec3{v.center.X(), mid.Y(), v.center.Z()})
			if normal.Dot(eye.Sub(mid)) <= 0 {
				continue
			}
			r.faces = append(r.faces, face{
				depth: r.camera.Depth(mid),
				pts:   []mgl64.Vec3{v.top[i], v.top[j], v.bottom[j], v.bottom[i]},
				fill:  DarkenColor(top, sideShade(i)),
			})
		}
		r.faces = append(r.faces, face{
			depth: r.camera.Depth(v.center),
			pts:   v.top[:],
			fill:  top,
		})
	}
	slices.SortFunc(r.faces, func(a, b face) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		}
		return 0
	})
	return r.faces
}

// sideShade darkens faces turned away from a light in the north-east.
func sideShade(i int) float64 {
	angle := math.Pi/6 + math.Pi/3*float64(i)
	return 0.6 + 0.2*math.Cos(angle-math.Pi/4)
}

// Draw renders the tiles and overlays to screen.
func (r *HexRenderer) Draw(screen *ebiten.Image, opts DrawOptions) {
	if r.fillImg == nil {
		r.fillImg = ebiten.NewImage(1, 1)
		r.fillImg.Fill(color.White)
	}
	screen.Fill(config.BackgroundColor)

	for _, f := range r.collectFaces() {
		if !r.project(f.pts) {
			continue
		}
		r.fillPolygon(screen, r.screenPt, f.fill)
		r.strokePolygon(screen, r.screenPt, config.OutlineColor, config.StrokeWidth)
	}

	for _, p := range opts.Next {
		top := hexmap.Corners(p.Hex, r.hexSize, p.Elevation)
		if r.project(top[:]) {
			r.fillPolygon(screen, r.screenPt, config.NextTileColor)
			r.strokePolygon(screen, r.screenPt, config.NextTileColor, config.StrokeWidth)
		}
	}
	for _, p := range opts.Highlighted {
		r.outline(screen, p, config.HighlightColor, config.StrokeWidth*2)
	}
	if opts.Selected != nil {
		r.outline(screen, *opts.Selected, config.SelectedColor, config.StrokeWidth*2)
	}

	if opts.ShowCoordinates {
		r.drawCoordinates(screen, opts.CoordFormat)
	}
}

func (r *HexRenderer) outline(screen *ebiten.Image, p hexmap.HexPosition, c color.RGBA, width float64) {
	top := hexmap.Corners(p.Hex, r.hexSize, p.Elevation)
	if r.project(top[:]) {
		r.strokePolygon(screen, r.screenPt, c, width)
	}
}

func (r *HexRenderer) drawCoordinates(screen *ebiten.Image, format hexmap.CoordFormat) {
	for _, v := range r.visuals {
		pos, ok := r.camera.Project(v.center)
		if !ok {
			continue
		}
		label := format.Format(v.coord)
		bounds := text.BoundString(r.fontFace, label)
		x := int(pos.X()) - bounds.Dx()/2
		y := int(pos.Y()) + bounds.Dy()/2 - config.TextOffsetY
		text.Draw(screen, label, r.fontFace, x, y, TextColorFor(r.palette.Color(v.material)))
	}
}

// project fills r.screenPt with pts in screen space. It fails if any point is behind the camera.
func (r *HexRenderer) project(pts []mgl64.Vec3) bool {
	r.screenPt = r.screenPt[:0]
	for _, p := range pts {
		s, ok := r.camera.Project(p)
		if !ok {
			return false
		}
		r.screenPt = append(r.screenPt, s)
	}
	return true
}

func polygonPath(pts []mgl64.Vec2) *vector.Path {
	path := &vector.Path{}
	for i, p := range pts {
		if i == 0 {
			path.MoveTo(float32(p.X()), float32(p.Y()))
		} else {
			path.LineTo(float32(p.X()), float32(p.Y()))
		}
	}
	path.Close()
	return path
}

func (r *HexRenderer) fillPolygon(target *ebiten.Image, pts []mgl64.Vec2, c color.RGBA) {
	path := polygonPath(pts)
	r.fillVs, r.fillIs = path.AppendVerticesAndIndicesForFilling(r.fillVs[:0], r.fillIs[:0])
	paintVertices(r.fillVs, c)
	target.DrawTriangles(r.fillVs, r.fillIs, r.fillImg, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

func (r *HexRenderer) strokePolygon(target *ebiten.Image, pts []mgl64.Vec2, c color.RGBA, width float64) {
	path := polygonPath(pts)
	r.strokeVs, r.strokeIs = path.AppendVerticesAndIndicesForStroke(r.strokeVs[:0], r.strokeIs[:0], &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
	})
	paintVertices(r.strokeVs, c)
	target.DrawTriangles(r.strokeVs, r.strokeIs, r.fillImg, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

// paintVertices sets a straight-alpha color on vs; ebiten expects it premultiplied.
func paintVertices(vs []ebiten.Vertex, c color.RGBA) {
	a := float32(c.A) / 255
	for i := range vs {
		vs[i].ColorR = float32(c.R) / 255 * a
		vs[i].ColorG = float32(c.G) / 255 * a
		vs[i].ColorB = float32(c.B) / 255 * a
		vs[i].ColorA = a
	}
}
