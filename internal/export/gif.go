package export

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"

	"github.com/juju/errors"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/mathgallery/internal/render"
)

// ErrNoFrames is returned when encoding an empty recording.
var ErrNoFrames = errors.New("no frames recorded")

const (
	charW = 8
	charH = 16
)

// Recorder accumulates frames for an animated GIF. Braille canvases are
// drawn as blocks of 4x4 pixels per dot; raster images are dithered onto
// the same palette.
type Recorder struct {
	frames []*image.Paletted
	delay  int
}

// NewRecorder records frames shown for delay hundredths of a second.
func NewRecorder(delay int) *Recorder {
	if delay <= 0 {
		delay = 2
	}
	return &Recorder{delay: delay}
}

func (r *Recorder) Len() int { return len(r.frames) }

// CaptureCanvas adds a frame from a braille canvas.
func (r *Recorder) CaptureCanvas(c *render.Canvas, background colorful.Color) {
	imgW, imgH := c.Width*charW, c.Height*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), palette.Plan9)
	bg := uint8(img.Palette.Index(toNRGBA(background)))
	for i := range img.Pix {
		img.Pix[i] = bg
	}

	dotW, dotH := charW/2, charH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			ch := c.Grid[row][col]
			if ch <= 0x2800 {
				continue
			}
			pattern := int(ch - 0x2800)
			idx := uint8(img.Palette.Index(toNRGBA(cellColor(c.Colors[row][col]))))
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, idx)
						}
					}
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

// CaptureImage adds a frame from a full-colour image.
func (r *Recorder) CaptureImage(src image.Image) {
	img := image.NewPaletted(src.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(img, img.Bounds(), src, src.Bounds().Min)
	r.frames = append(r.frames, img)
}

// Encode writes the recording as a looping GIF.
func (r *Recorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delay)
	}
	return errors.Trace(gif.EncodeAll(w, &anim))
}

// Save encodes the recording to path.
func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Annotatef(err, "creating %s", path)
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return errors.Annotatef(err, "encoding %s", path)
	}
	return errors.Trace(f.Close())
}

func cellColor(c colorful.Color) colorful.Color {
	if c == (colorful.Color{}) {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return c
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
