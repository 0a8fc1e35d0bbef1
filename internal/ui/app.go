package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"

	"AnnotationBoard/internal/config"
	"AnnotationBoard/internal/imageload"
	"AnnotationBoard/internal/state"
)

const appID = "io.annotationboard.editor"

// RunApp opens the editor window. With an empty imagePath the user is asked
// to pick a background image.
func RunApp(imagePath string) {
	myApp := app.NewWithID(appID)
	prefs := myApp.Preferences()
	cfg := config.Load(prefs)

	myWindow := myApp.NewWindow("Annotation Board")
	myWindow.Resize(fyne.NewSize(1024, 768))

	opts := append(cfg.SessionOptions(), state.WithLogger(slog.Default()))
	board := NewAnnotationBoard(state.NewSession(opts...), cfg)
	board.OnStyleChange = func(c config.Config) { c.Save(prefs) }

	toolbar := NewToolbar(board)
	content := container.NewBorder(toolbar, board.StatusBar(), nil, nil, container.NewScroll(board))
	myWindow.SetContent(content)

	ctx, cancel := context.WithCancel(context.Background())
	myWindow.SetOnClosed(cancel)

	load := func(path string) {
		board.SetStatus("Loading " + path)
		imageload.Load(ctx, path, func(r imageload.Result) {
			fyne.Do(func() {
				board.applyLoad(r, func(err error) { dialog.ShowError(err, myWindow) })
			})
		})
	}

	if imagePath != "" {
		load(imagePath)
	} else {
		myWindow.Show()
		dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil {
				dialog.ShowError(err, myWindow)
				return
			}
			if rc == nil {
				board.SetStatus("No image selected")
				return
			}
			path := rc.URI().Path()
			rc.Close()
			load(path)
		}, myWindow)
	}

	myWindow.ShowAndRun()
}

// applyLoad installs a loaded background or reports the failure. A load
// cancelled by closing the window is only noted; its window is gone.
func (b *AnnotationBoard) applyLoad(r imageload.Result, showErr func(error)) {
	switch {
	case errors.Is(r.Err, context.Canceled):
		b.SetStatus("Load cancelled")
	case r.Err != nil:
		b.SetStatus(fmt.Sprintf("Load failed: %v", r.Err))
		showErr(r.Err)
	default:
		b.SetBackground(r.Image)
	}
}
