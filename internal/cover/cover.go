// Package cover derives the two display images of a group from an
// uploaded picture: a width-bounded cover and a fixed-size thumbnail.
// Both derivatives are deterministic for a given input and are stored
// under a group-scoped path, replacing any previous pair. Unlike
// geocoding, a failure here is a real error the caller must handle.
package cover

import (
	"bytes"
	"image"
	"image/jpeg"

	// register decoders for the accepted upload formats
	_ "image/gif"
	_ "image/png"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

const (
	// MaxCoverWidth bounds the cover derivative. Smaller sources are
	// kept at their own width, never upscaled.
	MaxCoverWidth = 800

	// ThumbWidth and ThumbHeight are the fixed thumbnail dimensions.
	// Sources with a different aspect are cropped to fit, not
	// letterboxed.
	ThumbWidth  = 300
	ThumbHeight = 200

	jpegQuality = 85
)

// Derive decodes the uploaded image and produces the cover and
// thumbnail derivatives as JPEG bytes. A corrupt or unsupported upload
// surfaces as an error.
func Derive(raw []byte) (coverImg, thumb []byte, err error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to decode uploaded image")
	}

	coverImg, err = encode(widen(src, MaxCoverWidth))
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to encode cover")
	}

	thumb, err = encode(fit(src, ThumbWidth, ThumbHeight))
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to encode thumbnail")
	}

	return coverImg, thumb, nil
}

// widen resizes src proportionally to at most maxWidth. Narrower
// sources pass through untouched.
func widen(src image.Image, maxWidth int) image.Image {
	bounds := src.Bounds()
	if bounds.Dx() <= maxWidth {
		return src
	}

	height := bounds.Dy() * maxWidth / bounds.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)

	return dst
}

// fit scales and center-crops src to exactly w by h.
func fit(src image.Image, w, h int) image.Image {
	bounds := src.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()

	// crop the source to the target aspect ratio around its center,
	// then scale the crop to the target size
	cropW := srcW
	cropH := srcH

	if srcW*h > srcH*w { // source is wider than the target aspect
		cropW = srcH * w / h
	} else {
		cropH = srcW * h / w
	}

	x0 := bounds.Min.X + (srcW-cropW)/2
	y0 := bounds.Min.Y + (srcH-cropH)/2
	crop := image.Rect(x0, y0, x0+cropW, y0+cropH)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)

	return dst
}

func encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err //nolint: wrapcheck
	}

	return buf.Bytes(), nil
}
