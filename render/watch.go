package render

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"falsecolor/config"
	"falsecolor/parallel"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"
)

type WatchCmd struct {
	Dirs []string `arg:"" optional:"" help:"Folders to watch. Defaults to the [watch] dirs of the config file."`
	Params
}

func (c *WatchCmd) Validate(kctx *kong.Context) error {
	if !filepath.IsAbs(c.Dest) {
		dest, err := filepath.Abs(c.Dest)
		if err != nil {
			return fmt.Errorf("invalid destination %q: %w", c.Dest, err)
		}
		c.Dest = dest
	}
	return c.validate()
}

func (c *WatchCmd) Run(cfg *config.Config, pool *parallel.Pool) error {
	opts, err := c.options(cfg)
	if err != nil {
		return err
	}

	dirs := c.Dirs
	if len(dirs) == 0 {
		dirs = cfg.Watch.Dirs
	}
	if len(dirs) == 0 {
		return fmt.Errorf("no folders to watch")
	}
	w := &watcher{
		params: &c.Params,
		opts:   opts,
		pool:   pool,
		dest:   c.Dest,
		locks:  newOutputLocks(),
		mtimes: make(map[string]time.Time),
	}
	for _, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("invalid watch folder %q: %w", dir, err)
		}
		w.dirs = append(w.dirs, abs)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return w.run(ctx, cfg.Watch.DebounceDuration(), cfg.Watch.PollDuration())
}

// outputLocks serializes writers of the same output file. Entries live
// only while some job holds or waits for them.
type outputLocks struct {
	mu   sync.Mutex
	held map[string]*outputLock
}

type outputLock struct {
	sync.Mutex
	refs int
}

func newOutputLocks() *outputLocks {
	return &outputLocks{held: make(map[string]*outputLock)}
}

// acquire blocks until out is free and returns its release function.
func (l *outputLocks) acquire(out string) (release func()) {
	l.mu.Lock()
	ol := l.held[out]
	if ol == nil {
		ol = new(outputLock)
		l.held[out] = ol
	}
	ol.refs++
	l.mu.Unlock()

	ol.Lock()
	return func() {
		ol.Unlock()
		l.mu.Lock()
		if ol.refs--; ol.refs == 0 {
			delete(l.held, out)
		}
		l.mu.Unlock()
	}
}

// active counts the outputs currently held or waited for.
func (l *outputLocks) active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.held)
}

// settler hands a path to submit once no event touched it for delay.
// Each new event pushes the deadline back. Submissions happen on the settler's own goroutine and
// never after stop returns.
type settler struct {
	delay  time.Duration
	submit func(path string)

	mu      sync.Mutex
	due     map[string]time.Time
	stopped bool

	wake chan struct{}
	quit chan struct{}
	done chan struct{}
}

func newSettler(delay time.Duration, submit func(path string)) *settler {
	s := &settler{
		delay:  delay,
		submit: submit,
		due:    make(map[string]time.Time),
		wake:   make(chan struct{}, 1),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go s.loop()
	return s
}

// add (re)starts the quiet period of path. It is a no-op once stopped.
func (s *settler) add(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.due[path] = time.Now().Add(s.delay)
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *settler) loop() {
	defer close(s.done)
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	for {
		ready, wait, pending := s.take(time.Now())
		for _, path := range ready {
			s.submit(path)
		}
		if pending {
			timer.Reset(wait)
		} else {
			timer.Stop()
		}

		select {
		case <-s.quit:
			return
		case <-s.wake:
		case <-timer.C:
		}
	}
}

// take removes the paths due at now and reports how long until the next
// one is due.
func (s *settler) take(now time.Time) (ready []string, wait time.Duration, pending bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil, 0, false
	}
	for path, at := range s.due {
		if !at.After(now) {
			ready = append(ready, path)
			delete(s.due, path)
			continue
		}
		if d := at.Sub(now); !pending || d < wait {
			wait, pending = d, true
		}
	}
	return ready, wait, pending
}

// stop drops pending paths and waits for a running submission to
// return. It is safe to call more than once.
func (s *settler) stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	clear(s.due)
	s.mu.Unlock()

	close(s.quit)
	<-s.done
}

type watcher struct {
	params *Params
	opts   *Options
	pool   *parallel.Pool
	dirs   []string
	dest   string
	locks  *outputLocks

	// mtimes is only touched by the poll loop.
	mtimes map[string]time.Time
}

func (w *watcher) run(ctx context.Context, debounce, poll time.Duration) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	for _, dir := range w.dirs {
		if err := w.watchRecursive(fw, dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		slog.Info("watching", "dir", dir)
	}

	settle := newSettler(debounce, func(path string) {
		w.pool.Go(func() { w.render(path) })
	})
	defer settle.stop()

	w.initialScan()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var polling sync.WaitGroup
	if poll > 0 {
		polling.Go(func() { w.pollLoop(ctx, poll, settle.add) })
	}

	w.eventLoop(ctx, fw, settle)

	slog.Info("waiting for in-flight renders")
	cancel()
	polling.Wait()
	settle.stop()
	w.pool.Wait()
	return nil
}

func (w *watcher) watchRecursive(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path == w.dest {
				return filepath.SkipDir
			}
			return fw.Add(path)
		}
		return nil
	})
}

// sourceDir returns the watched folder containing path.
func (w *watcher) sourceDir(path string) string {
	for _, dir := range w.dirs {
		if strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return dir
		}
	}
	return ""
}

// output returns the destination of path, mirroring its position below
// the watched folder.
func (w *watcher) output(path string) string {
	dir := w.sourceDir(path)
	if dir == "" || strings.HasPrefix(path, w.dest+string(filepath.Separator)) {
		return ""
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return ""
	}
	outType := outputType(w.opts.Format, typeFromExt(path))
	return filepath.Join(w.dest, destName(rel, outType))
}

func (w *watcher) wanted(path string) bool {
	if w.opts.RawWidth > 0 {
		return true
	}
	return typeFromExt(path) != ""
}

func upToDate(src, out string) bool {
	si, err := os.Stat(src)
	if err != nil {
		return false
	}
	oi, err := os.Stat(out)
	if err != nil {
		return false
	}
	return !oi.ModTime().Before(si.ModTime())
}

// render renders one source, unless it vanished or its output is newer.
func (w *watcher) render(path string) {
	out := w.output(path)
	if out == "" || !w.wanted(path) {
		return
	}
	if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
		return
	}
	if upToDate(path, out) {
		return
	}

	defer w.locks.acquire(out)()

	logger := slog.Default().With("file", path)
	start := time.Now()
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		logger.Error("could not create destination folder", "error", err)
		return
	}
	if err := w.params.job(w.opts, logger, path, filepath.Dir(out)); err == nil {
		logger.Debug("render time", "elapsed", time.Since(start))
	}
}

// initialScan renders every source whose output is missing or stale.
func (w *watcher) initialScan() {
	for _, dir := range w.dirs {
		filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if path == w.dest {
					return filepath.SkipDir
				}
				return nil
			}
			w.pool.Go(func() { w.render(path) })
			return nil
		})
	}
	w.pool.Wait()
}

func (w *watcher) eventLoop(ctx context.Context, fw *fsnotify.Watcher, settle *settler) {
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Remove) {
				w.remove(ev.Name)
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					w.watchRecursive(fw, ev.Name)
					continue
				}
			}
			if ev.Has(fsnotify.Rename) {
				if _, err := os.Stat(ev.Name); err != nil {
					w.remove(ev.Name)
					continue
				}
			}
			settle.add(ev.Name)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

// remove deletes the output of a deleted source.
func (w *watcher) remove(path string) {
	out := w.output(path)
	if out == "" {
		return
	}
	defer w.locks.acquire(out)()
	if err := os.Remove(out); err == nil {
		slog.Info("removed output", "file", out, "reason", "source deleted")
	}
}

// pollLoop walks the watched folders at a fixed interval to catch changes
// on filesystems that do not deliver events.
func (w *watcher) pollLoop(ctx context.Context, interval time.Duration, onChanged func(path string)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		seen := make(map[string]bool)
		for _, dir := range w.dirs {
			filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					return nil
				}
				if d.IsDir() {
					if path == w.dest {
						return filepath.SkipDir
					}
					return nil
				}
				info, err := d.Info()
				if err != nil {
					return nil
				}
				seen[path] = true
				if prev, ok := w.mtimes[path]; !ok || !info.ModTime().Equal(prev) {
					w.mtimes[path] = info.ModTime()
					onChanged(path)
				}
				return nil
			})
		}

		for path := range w.mtimes {
			if !seen[path] {
				delete(w.mtimes, path)
				w.remove(path)
			}
		}
	}
}
