package ingest

import (
	"bytes"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageThumbnail_NoUpscale(t *testing.T) {
	payload := pngPayload(t, 300, 200)

	out, err := imageThumbnail(payload)
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestImageThumbnail_PreservesAspectRatio(t *testing.T) {
	payload := pngPayload(t, 1600, 1000)

	out, err := imageThumbnail(payload)
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 500, img.Bounds().Dy())
}

func TestImageThumbnail_BadPayload(t *testing.T) {
	_, err := imageThumbnail([]byte("not an image"))
	assert.Error(t, err)
}

func TestVideoThumbnail_Placeholder(t *testing.T) {
	out, err := videoThumbnail()
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, videoThumbWidth, img.Bounds().Dx())
	assert.Equal(t, videoThumbHeight, img.Bounds().Dy())
}
