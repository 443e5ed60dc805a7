package ingest

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/disintegration/imaging"
)

const (
	thumbnailMaxWidth    = 800
	thumbnailJPEGQuality = 85

	videoThumbWidth  = 800
	videoThumbHeight = 450
)

// videoThumbBackground is the flat fill used instead of frame extraction.
var videoThumbBackground = color.NRGBA{R: 64, G: 64, B: 64, A: 255}

// imageThumbnail resamples payload down to at most thumbnailMaxWidth wide,
// preserving aspect ratio and never upscaling, re-encoded as JPEG.
func imageThumbnail(payload []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(payload), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > thumbnailMaxWidth {
		img = imaging.Resize(img, thumbnailMaxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(thumbnailJPEGQuality)); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// videoThumbnail synthesizes a fixed-size placeholder. Frame extraction is
// deliberately out of scope; callers get a uniform card instead.
func videoThumbnail() ([]byte, error) {
	img := imaging.New(videoThumbWidth, videoThumbHeight, videoThumbBackground)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(thumbnailJPEGQuality)); err != nil {
		return nil, fmt.Errorf("encode placeholder: %w", err)
	}
	return buf.Bytes(), nil
}
