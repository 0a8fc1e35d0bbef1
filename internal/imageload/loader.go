// Package imageload decodes the background image on a worker goroutine and
// reports its natural size, which the editor uses as the canvas bounds.
package imageload

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrEmptyImage is returned for images with a zero width or height.
var ErrEmptyImage = errors.New("image has no pixels")

// Result is the outcome of a load.
type Result struct {
	Path   string
	Image  image.Image
	Format string
	Width  int
	Height int
	Err    error
}

// Decode reads an image from path.
func Decode(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{Path: path}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return Result{Path: path}, fmt.Errorf("decode %s: %w", path, err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return Result{Path: path, Format: format}, fmt.Errorf("decode %s: %w", path, ErrEmptyImage)
	}
	return Result{
		Path:   path,
		Image:  img,
		Format: format,
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

// Load decodes path in the background and calls done exactly once with the
// result. If ctx is cancelled first, done receives ctx.Err(). done runs on
// the loader goroutine; UI code must hop back to its own thread.
func Load(ctx context.Context, path string, done func(Result)) {
	log := slog.With("component", "imageload", "path", path)
	go func() {
		ch := make(chan Result, 1)
		go func() {
			res, err := Decode(path)
			res.Err = err
			ch <- res
		}()

		select {
		case <-ctx.Done():
			log.Info("image load cancelled")
			done(Result{Path: path, Err: ctx.Err()})
		case res := <-ch:
			if res.Err != nil {
				log.Error("image load failed", "err", res.Err)
			} else {
				log.Info("image loaded", "format", res.Format, "width", res.Width, "height", res.Height)
			}
			done(res)
		}
	}()
}
