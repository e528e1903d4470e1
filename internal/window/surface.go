package window

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/alieninvasion/internal/object"
	"github.com/tomz197/alieninvasion/internal/physics"
)

// imageSurface draws onto the ebiten image set as dst for the current frame.
type imageSurface struct {
	dst   *ebiten.Image
	font  *text.GoTextFaceSource
	faces map[object.TextKind]*text.GoTextFace

	white    *ebiten.Image // 1x1 white source for triangle fills
	vertices []ebiten.Vertex
	indices  []uint16
}

var _ object.Surface = (*imageSurface)(nil)

func newImageSurface(font *text.GoTextFaceSource) *imageSurface {
	base := ebiten.NewImage(3, 3)
	base.Fill(color.White)

	return &imageSurface{
		font: font,
		faces: map[object.TextKind]*text.GoTextFace{
			object.TextHUD:    {Source: font, Size: hudFontSize},
			object.TextButton: {Source: font, Size: buttonFontSize},
			object.TextHint:   {Source: font, Size: hintFontSize},
		},
		white: base.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

func (s *imageSurface) FillRect(r physics.Rect, c color.Color) {
	vector.DrawFilledRect(s.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

func (s *imageSurface) FillPolygon(points []physics.Point, c color.Color) {
	if len(points) < 3 {
		return
	}

	var path vector.Path
	path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	s.vertices, s.indices = path.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
	r, g, b, a := scaleColor(c)
	for i := range s.vertices {
		s.vertices[i].SrcX = 1
		s.vertices[i].SrcY = 1
		s.vertices[i].ColorR = r
		s.vertices[i].ColorG = g
		s.vertices[i].ColorB = b
		s.vertices[i].ColorA = a
	}
	s.dst.DrawTriangles(s.vertices, s.indices, s.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (s *imageSurface) DrawLabel(l object.Label) {
	face, ok := s.faces[l.Kind]
	if !ok {
		face = s.faces[object.TextHUD]
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(l.X, l.Y)
	op.PrimaryAlign = textAlign(l.Align)
	op.SecondaryAlign = text.AlignCenter
	if l.Color != nil {
		op.ColorScale.ScaleWithColor(l.Color)
	}
	text.Draw(s.dst, l.Value, face, op)
}

// textAlign maps a label anchor to ebiten's text alignment.
func textAlign(a object.Align) text.Align {
	switch a {
	case object.AlignCenter:
		return text.AlignCenter
	case object.AlignRight:
		return text.AlignEnd
	default:
		return text.AlignStart
	}
}
