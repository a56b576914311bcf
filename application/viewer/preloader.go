package viewer

import (
	"log/slog"

	"golang.org/x/sync/errgroup"

	"axiv-go/domain/album"
)

// Preloader keeps the pictures around the current position decoded and
// releases the ones the user has navigated away from. Scores drive the
// picture lifecycle: a score of 1 or more loads, a score decayed to 0
// unloads.
type Preloader struct {
	window  int
	workers int
	decay   float64
	logger  *slog.Logger
}

// NewPreloader creates a preloader covering window pictures on each side of
// the current one, loading with at most workers concurrent decodes.
func NewPreloader(window, workers int, logger *slog.Logger) *Preloader {
	if logger == nil {
		logger = slog.Default()
	}
	if window < 0 {
		window = 0
	}
	if workers <= 0 {
		workers = 1
	}
	return &Preloader{
		window:  window,
		workers: workers,
		decay:   0.5,
		logger:  logger,
	}
}

// Window returns the preload window size.
func (p *Preloader) Window() int {
	return p.window
}

// Apply rescores the album around its current position. Pictures inside the
// window are loaded concurrently, pictures outside it decay and eventually
// unload. The first load error is returned after all loads finish.
func (p *Preloader) Apply(alb *album.Album) error {
	n := alb.Len()
	if n == 0 {
		return nil
	}

	cur := alb.Index()
	pics := alb.Pictures()

	var g errgroup.Group
	g.SetLimit(p.workers)

	for i, pic := range pics {
		if distance(i, cur, n) <= p.window {
			pic := pic
			g.Go(func() error {
				pic.ScoreSet(1)
				return pic.LoadError()
			})
		} else {
			pic.ScoreAdd(-p.decay)
		}
	}

	if err := g.Wait(); err != nil {
		p.logger.Debug("Preload finished with error", "error", err)
		return err
	}
	return nil
}

// distance is the wrap-around distance between two album indices.
func distance(i, j, n int) int {
	d := i - j
	if d < 0 {
		d = -d
	}
	if wrapped := n - d; wrapped < d {
		return wrapped
	}
	return d
}
