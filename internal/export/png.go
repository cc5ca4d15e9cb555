package export

import (
	"image"
	"image/png"
	"os"

	"github.com/juju/errors"
)

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Annotatef(err, "creating %s", path)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Annotatef(err, "encoding %s", path)
	}
	return errors.Trace(f.Close())
}
