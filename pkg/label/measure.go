package label

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultFontSize is the point size labels are measured and drawn at.
const DefaultFontSize = 12.0

// Measurer resolves the pixel dimensions of a label text.
type Measurer interface {
	Measure(text string) (width, height float64)
}

// FaceMeasurer measures text against a parsed font face.
type FaceMeasurer struct {
	mu     sync.Mutex
	face   font.Face
	ascent float64
	height float64
}

var _ Measurer = (*FaceMeasurer)(nil)

var (
	defaultMeasurer     *FaceMeasurer
	defaultMeasurerOnce sync.Once
)

// DefaultMeasurer returns the shared measurer backed by the embedded Go
// Regular face at DefaultFontSize. Parsing happens once per process.
func DefaultMeasurer() *FaceMeasurer {
	defaultMeasurerOnce.Do(func() {
		m, err := NewFaceMeasurer(goregular.TTF, DefaultFontSize)
		if err != nil {
			// goregular is embedded and known-good; a parse failure here
			// means a corrupted toolchain, not bad input.
			panic("label: parse embedded font: " + err.Error())
		}
		defaultMeasurer = m
	})
	return defaultMeasurer
}

// NewFaceMeasurer parses TTF bytes and prepares a face at the given size.
func NewFaceMeasurer(ttf []byte, size float64) (*FaceMeasurer, error) {
	fnt, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	metrics := face.Metrics()
	return &FaceMeasurer{
		face:   face,
		ascent: float64(metrics.Ascent) / 64,
		height: float64(metrics.Ascent+metrics.Descent) / 64,
	}, nil
}

// Measure returns the advance width and line height of the text.
// font.Face is not safe for concurrent use, hence the lock.
func (m *FaceMeasurer) Measure(text string) (float64, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w := float64(font.MeasureString(m.face, text)) / 64
	return w, m.height
}

// Ascent returns the baseline offset from the top of the line box, which
// renderers need to convert a top-left label corner into a text origin.
func (m *FaceMeasurer) Ascent() float64 { return m.ascent }

// FixedMeasurer measures with constant per-character width and line height.
// It exists for tests that need predictable rectangle sizes.
type FixedMeasurer struct {
	CharWidth  float64
	LineHeight float64
}

var _ Measurer = FixedMeasurer{}

// Measure returns len(text)×CharWidth by LineHeight.
func (m FixedMeasurer) Measure(text string) (float64, float64) {
	return float64(len(text)) * m.CharWidth, m.LineHeight
}
