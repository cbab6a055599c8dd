package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/spren9er/cactuz-sub000/pkg/errors"
	"github.com/spren9er/cactuz-sub000/pkg/graph"
	"github.com/spren9er/cactuz-sub000/pkg/render/styles"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	style     styles.Style
	showLinks bool
	scale     float64
}

// WithPNGStyle sets the visual style (default: simple).
func WithPNGStyle(s styles.Style) PNGOption { return func(r *pngRenderer) { r.style = s } }

// WithPNGLinks draws the bundled cross-link paths.
func WithPNGLinks() PNGOption { return func(r *pngRenderer) { r.showLinks = true } }

// WithScale sets the raster scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// RenderPNG rasterizes the layout directly, without an intermediate SVG
// step, so PNG output needs no external converter.
func RenderPNG(l graph.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{style: mustSimple(), scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}

	w := int(math.Ceil(l.FrameWidth * r.scale))
	h := int(math.Ceil(l.FrameHeight * r.scale))
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidOptions,
			"cannot rasterize %vx%v frame", l.FrameWidth, l.FrameHeight)
	}

	dc := gg.NewContext(w, h)
	dc.Scale(r.scale, r.scale)

	bg, err := styles.ParseHexColor(r.style.Background)
	if err != nil {
		return nil, err
	}
	dc.SetColor(bg)
	dc.Clear()

	if err := r.drawCircles(dc, l); err != nil {
		return nil, err
	}
	if r.showLinks {
		if err := r.drawLinks(dc, l); err != nil {
			return nil, err
		}
	}
	if err := r.drawLabels(dc, l); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) drawCircles(dc *gg.Context, l graph.Layout) error {
	stroke, err := styles.ParseHexColor(r.style.Stroke)
	if err != nil {
		return err
	}
	for _, n := range l.Nodes {
		fill, err := styles.ParseHexColor(r.style.FillForDepth(n.Depth))
		if err != nil {
			return err
		}
		fill.A = uint8(r.style.FillOpacity * 255)

		dc.DrawCircle(n.X, n.Y, n.Radius)
		dc.SetColor(fill)
		dc.FillPreserve()
		dc.SetColor(stroke)
		dc.SetLineWidth(r.style.StrokeWidth)
		dc.Stroke()
	}
	return nil
}

func (r *pngRenderer) drawLinks(dc *gg.Context, l graph.Layout) error {
	c, err := styles.ParseHexColor(r.style.EdgeColor)
	if err != nil {
		return err
	}
	c.A = uint8(r.style.EdgeOpacity * 255)
	dc.SetColor(c)
	dc.SetLineWidth(r.style.EdgeWidth)

	for _, p := range l.Paths {
		pts := p.Points
		if len(pts) < 2 {
			continue
		}
		dc.MoveTo(pts[0].X, pts[0].Y)
		if len(pts) == 2 {
			dc.LineTo(pts[1].X, pts[1].Y)
		} else {
			for i := 1; i < len(pts)-1; i++ {
				mx := (pts[i].X + pts[i+1].X) / 2
				my := (pts[i].Y + pts[i+1].Y) / 2
				dc.QuadraticTo(pts[i].X, pts[i].Y, mx, my)
			}
			dc.LineTo(pts[len(pts)-1].X, pts[len(pts)-1].Y)
		}
		dc.Stroke()
	}
	return nil
}

func (r *pngRenderer) drawLabels(dc *gg.Context, l graph.Layout) error {
	leader, err := styles.ParseHexColor(r.style.LeaderColor)
	if err != nil {
		return err
	}
	dc.SetColor(leader)
	dc.SetLineWidth(r.style.LeaderWidth)
	for _, line := range l.Links {
		dc.DrawLine(line.X1, line.Y1, line.X2, line.Y2)
		dc.Stroke()
	}

	face, err := labelFace(r.style.FontSize)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)

	text, err := styles.ParseHexColor(r.style.LabelColor)
	if err != nil {
		return err
	}
	dc.SetColor(text)
	for _, lb := range l.Labels {
		if lb.Inside {
			dc.DrawStringAnchored(lb.Text, lb.X+lb.Width/2, lb.Y+lb.Height/2, 0.5, 0.4)
		} else {
			dc.DrawStringAnchored(lb.Text, lb.X, lb.Y+lb.Height/2, 0, 0.4)
		}
	}
	return nil
}

func labelFace(size float64) (font.Face, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse embedded font")
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build font face")
	}
	return face, nil
}
