package imageload

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func writeImage(t *testing.T, name string, w, h int, encode func(*os.File, image.Image) error) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xFF})
		}
	}

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, encode(f, img))
	return path
}

func encodePNG(f *os.File, img image.Image) error { return png.Encode(f, img) }
func encodeBMP(f *os.File, img image.Image) error { return bmp.Encode(f, img) }

func TestDecode(t *testing.T) {
	res, err := Decode(writeImage(t, "bg.png", 65, 30, encodePNG))
	require.NoError(t, err)
	assert.Equal(t, "png", res.Format)
	assert.Equal(t, 65, res.Width)
	assert.Equal(t, 30, res.Height)

	res, err = Decode(writeImage(t, "bg.bmp", 12, 7, encodeBMP))
	require.NoError(t, err)
	assert.Equal(t, "bmp", res.Format)
	assert.Equal(t, 12, res.Width)
	assert.Equal(t, 7, res.Height)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	junk := filepath.Join(t.TempDir(), "junk.png")
	require.NoError(t, os.WriteFile(junk, []byte("not an image"), 0o644))
	_, err = Decode(junk)
	assert.ErrorIs(t, err, image.ErrFormat)
}

func TestLoad(t *testing.T) {
	path := writeImage(t, "bg.png", 40, 20, encodePNG)

	got := make(chan Result, 1)
	Load(context.Background(), path, func(r Result) { got <- r })

	select {
	case r := <-got:
		require.NoError(t, r.Err)
		assert.Equal(t, path, r.Path)
		assert.Equal(t, 40, r.Width)
		assert.Equal(t, 20, r.Height)
		assert.NotNil(t, r.Image)
	case <-time.After(5 * time.Second):
		t.Fatal("load did not finish")
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := make(chan Result, 1)
	Load(ctx, filepath.Join(t.TempDir(), "missing.png"), func(r Result) { got <- r })

	select {
	case r := <-got:
		// Either branch may win the race; both must report an error.
		assert.Error(t, r.Err)
	case <-time.After(5 * time.Second):
		t.Fatal("load did not finish")
	}
}
