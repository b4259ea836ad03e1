// Package imaging generates responsive image variants for uploaded guide
// screenshots. It decodes the source once and produces JPEG renditions at
// standard breakpoints, skipping widths larger than the original to avoid
// upscaling.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// Variant describes a single responsive image size.
type Variant struct {
	Name    string // e.g., "thumb", "sm", "md", "lg"
	Width   int    // Target width in pixels
	Quality int    // JPEG quality 1-100
}

// DefaultVariants defines the standard breakpoints for guide images.
var DefaultVariants = []Variant{
	{Name: "thumb", Width: 320, Quality: 75},
	{Name: "sm", Width: 640, Quality: 80},
	{Name: "md", Width: 1024, Quality: 80},
	{Name: "lg", Width: 1920, Quality: 80},
}

// ProcessedImage holds one generated variant ready for upload.
type ProcessedImage struct {
	Name        string
	Width       int
	Height      int
	Data        []byte
	ContentType string // always "image/jpeg"
}

// GenerateVariants creates JPEG renditions of the source for each
// configured breakpoint. Variants wider than the original are skipped;
// when every breakpoint is wider, the original width is used once so at
// least one variant comes back.
func GenerateVariants(original []byte, variants []Variant) ([]ProcessedImage, error) {
	if len(variants) == 0 {
		variants = DefaultVariants
	}

	src, _, err := image.Decode(bytes.NewReader(original))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}
	bounds := src.Bounds()
	origWidth := bounds.Dx()
	origHeight := bounds.Dy()
	if origWidth == 0 || origHeight == 0 {
		return nil, fmt.Errorf("imaging: empty image")
	}

	var results []ProcessedImage
	for _, v := range variants {
		targetWidth := v.Width
		if targetWidth > origWidth {
			if len(results) > 0 {
				continue
			}
			targetWidth = origWidth
		}
		targetHeight := origHeight * targetWidth / origWidth
		if targetHeight < 1 {
			targetHeight = 1
		}

		out, err := scale(src, targetWidth, targetHeight, v.Quality)
		if err != nil {
			return nil, fmt.Errorf("imaging: variant %s: %w", v.Name, err)
		}
		results = append(results, ProcessedImage{
			Name:        v.Name,
			Width:       targetWidth,
			Height:      targetHeight,
			Data:        out,
			ContentType: "image/jpeg",
		})
	}
	return results, nil
}

func scale(src image.Image, width, height, quality int) ([]byte, error) {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
