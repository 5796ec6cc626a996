package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchSettle is how long a file must stay quiet before its change is reported.
const watchSettle = 100 * time.Millisecond

type ChangeKind int

const (
	ChangeSpec ChangeKind = iota
	ChangeScript
)

// Change is one settled edit of a prefab or script file.
type Change struct {
	Path string
	Kind ChangeKind
}

// Watcher reports edited prefab and script files. Bursts of writes to the
// same file are coalesced into a single Change.
type Watcher struct {
	fs      *fsnotify.Watcher
	Changes chan Change
	Errors  chan error

	mu      sync.Mutex
	pending map[string]time.Time

	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fw,
		Changes: make(chan Change, 16),
		Errors:  make(chan error, 1),
		pending: make(map[string]time.Time),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
	})
	return err
}

// Pending drains settled changes without blocking.
func (w *Watcher) Pending() []Change {
	var out []Change
	for {
		select {
		case c := <-w.Changes:
			out = append(out, c)
		default:
			return out
		}
	}
}

func (w *Watcher) run() {
	tick := time.NewTicker(watchSettle / 2)
	defer tick.Stop()
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if _, ok := changeKind(event.Name); !ok {
				continue
			}
			w.mu.Lock()
			w.pending[event.Name] = time.Now()
			w.mu.Unlock()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case now := <-tick.C:
			for _, c := range w.settled(now) {
				select {
				case w.Changes <- c:
				case <-w.closeCh:
					return
				}
			}
		case <-w.closeCh:
			return
		}
	}
}

// settled removes and returns every file quiet for at least watchSettle.
func (w *Watcher) settled(now time.Time) []Change {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []Change
	for path, at := range w.pending {
		if now.Sub(at) < watchSettle {
			continue
		}
		delete(w.pending, path)
		kind, _ := changeKind(path)
		out = append(out, Change{Path: path, Kind: kind})
	}
	return out
}

func changeKind(path string) (ChangeKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ChangeSpec, true
	case ".tengo":
		return ChangeScript, true
	}
	return 0, false
}
