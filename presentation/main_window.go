package presentation

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"axiv-go/domain/history"
	"axiv-go/domain/meta"
	"axiv-go/domain/picture"
	"axiv-go/infrastructure/config"
)

// MainWindow is the main application window. It shows one viewer at a time;
// opening a new path replaces the current one.
type MainWindow struct {
	window fyne.Window
	bridge *UIEventBridge
	cfg    *config.Config
	hist   *history.Service
	logger *slog.Logger

	// UI components
	pictureCanvas *PictureCanvas
	infoPanel     *InfoPanel
	statusLabel   *widget.Label
	content       *fyne.Container
	placeholder   fyne.CanvasObject
	recentMenu    *fyne.Menu

	// Viewer tracking
	viewerID      string
	viewerMu      sync.RWMutex
	slideshowOn   bool
	infoVisible   bool
	positionLabel string

	cleanupOnce sync.Once
}

// MainWindowConfig holds configuration for MainWindow.
type MainWindowConfig struct {
	App     fyne.App
	Bridge  *UIEventBridge
	Config  *config.Config
	History *history.Service
	Logger  *slog.Logger
}

// NewMainWindow creates a new main window.
func NewMainWindow(cfg *MainWindowConfig) *MainWindow {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Config == nil {
		cfg.Config = config.Default()
	}

	w := &MainWindow{
		window: cfg.App.NewWindow("Axiv"),
		bridge: cfg.Bridge,
		cfg:    cfg.Config,
		hist:   cfg.History,
		logger: cfg.Logger,
	}

	w.init()
	w.setupEventCallbacks()
	w.setupKeyboard()
	w.setupDragAndDrop()
	w.refreshRecentMenu()

	w.window.SetOnClosed(func() {
		w.Cleanup()
		cfg.App.Quit()
	})

	return w
}

func (w *MainWindow) init() {
	size := fyne.NewSize(float32(w.cfg.WindowWidth), float32(w.cfg.WindowHeight))

	w.pictureCanvas = NewPictureCanvas(size)
	w.pictureCanvas.SetOnTapped(func() {
		w.navigate(1)
	})
	w.pictureCanvas.SetOnResized(func(width, height int) {
		id := w.currentViewer()
		if id == "" {
			return
		}
		if err := w.bridge.Rescale(id, width, height); err != nil {
			w.logger.Debug("Rescale failed", "error", err)
		}
	})

	w.infoPanel = NewInfoPanel()
	w.statusLabel = widget.NewLabel("Open a directory to start")
	w.placeholder = container.NewCenter(widget.NewLabel("No images to show"))

	w.content = container.NewStack(w.pictureCanvas)
	body := container.NewBorder(nil, w.statusLabel, nil, nil, w.content)

	w.window.SetMainMenu(w.createMainMenu())
	w.window.SetContent(body)
	w.window.Resize(size)
}

func (w *MainWindow) createMainMenu() *fyne.MainMenu {
	w.recentMenu = fyne.NewMenu("Open Recent")

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Directory...", w.showOpenDirectoryDialog),
		fyne.NewMenuItem("Open File...", w.showOpenFileDialog),
		&fyne.MenuItem{Label: "Open Recent", ChildMenu: w.recentMenu},
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reload", func() { w.withViewer(w.bridge.Reload) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Delete Picture", w.confirmDelete),
	)

	scaleItem := func(label string, mode picture.ScaleMode) *fyne.MenuItem {
		return fyne.NewMenuItem(label, func() {
			w.withViewer(func(id string) error {
				return w.bridge.SetScaleMode(id, mode)
			})
		})
	}
	viewMenu := fyne.NewMenu("View",
		scaleItem("Fit to Window", picture.ScaleFit),
		scaleItem("Original Size", picture.ScaleOriginal),
		scaleItem("Stretch", picture.ScaleStretch),
		scaleItem("Fit Height", picture.ScaleFitHeight),
		scaleItem("Fit Width", picture.ScaleFitWidth),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Toggle Info Panel", w.toggleInfoPanel),
	)

	goMenu := fyne.NewMenu("Go",
		fyne.NewMenuItem("Next", func() { w.navigate(1) }),
		fyne.NewMenuItem("Previous", func() { w.navigate(-1) }),
		fyne.NewMenuItem("First", func() { w.withViewer(w.bridge.GoFirst) }),
		fyne.NewMenuItem("Last", func() { w.withViewer(w.bridge.GoLast) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Toggle Slideshow", w.toggleSlideshow),
	)

	return fyne.NewMainMenu(fileMenu, viewMenu, goMenu)
}

func (w *MainWindow) setupEventCallbacks() {
	if w.bridge == nil {
		return
	}

	w.bridge.SetCallbacks(&UICallbacks{
		OnDirectoryOpened: func(viewerID, path string, count int) {
			if !w.isCurrent(viewerID) {
				return
			}
			w.logger.Info("Directory opened", "path", path, "count", count)
			fyne.Do(func() {
				w.window.SetTitle(fmt.Sprintf("Axiv - %s", filepath.Base(path)))
				if count == 0 {
					w.showPlaceholder()
					w.statusLabel.SetText(fmt.Sprintf("%s: no images", path))
				}
				w.refreshRecentMenu()
			})
		},
		OnPictureChanged: func(viewerID string, index, total int, path string) {
			if !w.isCurrent(viewerID) {
				return
			}
			fyne.Do(func() {
				w.positionLabel = fmt.Sprintf("%d / %d", index+1, total)
				w.statusLabel.SetText(fmt.Sprintf("%s  %s", w.positionLabel, filepath.Base(path)))
			})
		},
		OnPictureRendered: func(viewerID, path string, img image.Image) {
			if !w.isCurrent(viewerID) || img == nil {
				return
			}
			fyne.Do(func() {
				w.showCanvas()
				w.pictureCanvas.SetImage(img)
			})
		},
		OnPictureLoadFailed: func(viewerID, path string, err error) {
			if !w.isCurrent(viewerID) {
				return
			}
			w.logger.Warn("Picture failed to load", "path", path, "error", err)
			fyne.Do(func() {
				w.statusLabel.SetText(fmt.Sprintf("Cannot load %s", filepath.Base(path)))
			})
		},
		OnPictureDeleted: func(viewerID, path string, remaining int) {
			if !w.isCurrent(viewerID) {
				return
			}
			fyne.Do(func() {
				if remaining == 0 {
					w.showPlaceholder()
					w.statusLabel.SetText("All images deleted")
				}
			})
		},
		OnMetadataLoaded: func(viewerID, path string, md *meta.Metadata) {
			if !w.isCurrent(viewerID) {
				return
			}
			fyne.Do(func() {
				w.infoPanel.Update(md)
			})
		},
		OnSlideshowStarted: func(viewerID string, intervalMS int) {
			if !w.isCurrent(viewerID) {
				return
			}
			fyne.Do(func() {
				w.slideshowOn = true
				w.statusLabel.SetText(fmt.Sprintf("%s  slideshow", w.positionLabel))
			})
		},
		OnSlideshowStopped: func(viewerID string) {
			if !w.isCurrent(viewerID) {
				return
			}
			fyne.Do(func() {
				w.slideshowOn = false
			})
		},
		OnOperationFailed: func(viewerID, operation string, err error) {
			if !w.isCurrent(viewerID) {
				return
			}
			w.logger.Error("Operation failed", "operation", operation, "error", err)
			fyne.Do(func() {
				dialog.ShowError(err, w.window)
			})
		},
		OnViewerClosed: func(viewerID string, err error) {
			if !w.isCurrent(viewerID) {
				return
			}
			fyne.Do(func() {
				w.setCurrentViewer("")
				w.slideshowOn = false
			})
		},
	})
}

func (w *MainWindow) setupKeyboard() {
	w.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyRight, fyne.KeyDown, fyne.KeyPageDown:
			w.navigate(1)
		case fyne.KeyLeft, fyne.KeyUp, fyne.KeyPageUp:
			w.navigate(-1)
		case fyne.KeyHome:
			w.withViewer(w.bridge.GoFirst)
		case fyne.KeyEnd:
			w.withViewer(w.bridge.GoLast)
		case fyne.KeySpace:
			w.toggleSlideshow()
		case fyne.KeyDelete:
			w.confirmDelete()
		case fyne.KeyF5:
			w.withViewer(w.bridge.Reload)
		case fyne.KeyI:
			w.toggleInfoPanel()
		}
	})
}

func (w *MainWindow) setupDragAndDrop() {
	w.window.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		if len(uris) == 0 {
			return
		}
		path := uris[0].Path()
		w.logger.Info("Path dropped", "path", path)
		w.OpenPath(path)
	})
}

// OpenPath opens a directory or file, replacing the current viewer.
func (w *MainWindow) OpenPath(path string) {
	if prev := w.currentViewer(); prev != "" {
		if err := w.bridge.CloseViewer(prev); err != nil {
			w.logger.Warn("Failed to close previous viewer", "error", err)
		}
	}

	id, err := w.bridge.OpenDirectory(path)
	if err != nil {
		w.logger.Error("Failed to open path", "path", path, "error", err)
		dialog.ShowError(err, w.window)
		return
	}
	w.setCurrentViewer(id)
}

func (w *MainWindow) showOpenDirectoryDialog() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, w.window)
			return
		}
		if uri == nil {
			return
		}
		w.OpenPath(uri.Path())
	}, w.window)
}

func (w *MainWindow) showOpenFileDialog() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w.window)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()
		w.OpenPath(path)
	}, w.window)
	fd.SetFilter(storage.NewExtensionFileFilter(w.cfg.Extensions))
	fd.Show()
}

func (w *MainWindow) refreshRecentMenu() {
	if w.hist == nil || w.recentMenu == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	entries, err := w.hist.Recent(ctx, 10)
	cancel()
	if err != nil {
		w.logger.Debug("Failed to load recent paths", "error", err)
		return
	}

	items := make([]*fyne.MenuItem, 0, len(entries))
	for _, entry := range entries {
		path := entry.Path
		items = append(items, fyne.NewMenuItem(path, func() {
			if _, err := os.Stat(path); err != nil {
				dialog.ShowError(fmt.Errorf("path no longer exists: %s", path), w.window)
				return
			}
			w.OpenPath(path)
		}))
	}
	w.recentMenu.Items = items
	w.recentMenu.Refresh()
}

func (w *MainWindow) confirmDelete() {
	id := w.currentViewer()
	if id == "" {
		return
	}

	dialog.ShowConfirm("Delete Picture",
		"Delete the current picture from disk? This cannot be undone.",
		func(confirmed bool) {
			if !confirmed {
				return
			}
			if err := w.bridge.DeleteCurrent(id); err != nil {
				dialog.ShowError(err, w.window)
			}
		}, w.window)
}

func (w *MainWindow) toggleSlideshow() {
	id := w.currentViewer()
	if id == "" {
		return
	}

	var err error
	if w.slideshowOn {
		err = w.bridge.StopSlideshow(id)
	} else {
		err = w.bridge.StartSlideshow(id, w.cfg.SlideshowIntervalMS)
	}
	if err != nil {
		w.logger.Warn("Slideshow toggle failed", "error", err)
	}
}

func (w *MainWindow) toggleInfoPanel() {
	w.infoVisible = !w.infoVisible

	if w.infoVisible {
		split := container.NewHSplit(w.pictureCanvas, w.infoPanel.Container())
		split.SetOffset(0.78)
		w.content.Objects = []fyne.CanvasObject{split}
	} else {
		w.content.Objects = []fyne.CanvasObject{w.pictureCanvas}
	}
	w.content.Refresh()
}

func (w *MainWindow) navigate(offset int) {
	w.withViewer(func(id string) error {
		return w.bridge.Navigate(id, offset)
	})
}

// withViewer runs fn against the current viewer, if any.
func (w *MainWindow) withViewer(fn func(viewerID string) error) {
	id := w.currentViewer()
	if id == "" {
		return
	}
	if err := fn(id); err != nil {
		w.logger.Warn("Viewer command failed", "error", err)
	}
}

func (w *MainWindow) currentViewer() string {
	w.viewerMu.RLock()
	defer w.viewerMu.RUnlock()
	return w.viewerID
}

func (w *MainWindow) setCurrentViewer(id string) {
	w.viewerMu.Lock()
	w.viewerID = id
	w.viewerMu.Unlock()
}

func (w *MainWindow) isCurrent(viewerID string) bool {
	return viewerID != "" && viewerID == w.currentViewer()
}

func (w *MainWindow) showPlaceholder() {
	w.pictureCanvas.Clear()
	w.infoPanel.Clear()
	objects := []fyne.CanvasObject{w.placeholder}
	w.content.Objects = objects
	w.content.Refresh()
}

func (w *MainWindow) showCanvas() {
	if len(w.content.Objects) == 1 && w.content.Objects[0] == w.placeholder {
		w.content.Objects = []fyne.CanvasObject{w.pictureCanvas}
		if w.infoVisible {
			w.infoVisible = false
			w.toggleInfoPanel()
		}
		w.content.Refresh()
	}
}

// Public methods

// Show displays the main window.
func (w *MainWindow) Show() {
	w.window.Show()
}

// Cleanup releases resources.
func (w *MainWindow) Cleanup() {
	w.cleanupOnce.Do(func() {
		w.logger.Info("Starting cleanup...")

		if w.bridge != nil {
			if err := w.bridge.CloseAllViewers(); err != nil {
				w.logger.Warn("Failed to close viewers", "error", err)
			}
		}

		w.logger.Info("Cleanup completed")
	})
}
