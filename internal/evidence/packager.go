package evidence

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png"
	"log"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	// Longest side after downscaling.
	maxDimension = 1280

	// Target encoded size.
	maxBytes = 700 * 1024

	initialQuality = 90
	minQuality     = 40
	qualityStep    = 10

	stampMargin = 12
)

// Process burns a human-readable local timestamp into the bottom-right
// corner of the image, downscales it so the longest side is at most
// 1280 px and re-encodes it as JPEG under the size target. On any
// failure the original bytes come back unchanged; a bad photo must
// never block a submission.
func Process(data []byte, now time.Time) []byte {
	out, err := process(data, now)
	if err != nil {
		log.Printf("evidence processing failed, keeping original file: %v", err)
		return data
	}
	return out
}

func process(data []byte, now time.Time) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	img := downscale(src)
	stamped := stamp(img, now.Format("02/01/2006 15:04"))

	return encode(stamped)
}

// downscale resizes the image so its longest side is at most
// maxDimension, preserving aspect ratio. Smaller images pass through.
func downscale(src image.Image) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	longest := w
	if h > longest {
		longest = h
	}
	if longest > maxDimension {
		scale := float64(maxDimension) / float64(longest)
		w = int(float64(w) * scale)
		h = int(float64(h) * scale)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

// stamp draws the timestamp text in the bottom-right corner with a
// black outline and white fill for legibility on any background.
func stamp(img *image.RGBA, text string) *image.RGBA {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()

	b := img.Bounds()
	x := b.Max.X - width - stampMargin
	y := b.Max.Y - stampMargin
	if x < b.Min.X {
		x = b.Min.X
	}

	// Outline: the glyphs redrawn at the eight neighbouring offsets.
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(img, face, text, x+dx, y+dy, color.Black)
		}
	}
	drawString(img, face, text, x, y, color.White)
	return img
}

func drawString(img *image.RGBA, face font.Face, text string, x, y int, c color.Color) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// encode re-encodes as JPEG, stepping the quality down until the
// result fits the size target or the quality floor is reached.
func encode(img image.Image) ([]byte, error) {
	for q := initialQuality; q >= minQuality; q -= qualityStep {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
			return nil, fmt.Errorf("jpeg encode at quality %d: %w", q, err)
		}
		if buf.Len() <= maxBytes || q == minQuality {
			return buf.Bytes(), nil
		}
	}
	// Unreachable: the loop always returns at the quality floor.
	return nil, fmt.Errorf("jpeg encode produced no output")
}

// Filename builds the canonical evidence filename
// {category}_{index}_{HHmm}_{DDMMYY}.jpg using the Gregorian two-digit
// year.
func Filename(category string, index int, t time.Time) string {
	return fmt.Sprintf("%s_%d_%s_%s.jpg", category, index, t.Format("1504"), t.Format("020106"))
}

// DailyFolderName builds the per-day folder name
// {substation}_{DDMMYY} for one substation and calendar day.
func DailyFolderName(substation string, t time.Time) string {
	return fmt.Sprintf("%s_%s", substation, t.Format("020106"))
}
