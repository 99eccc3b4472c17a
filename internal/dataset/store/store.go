// Package store holds the process-wide memoized dataset snapshot.
package store

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/smallbiznis/menara/internal/config"
	datasetcsv "github.com/smallbiznis/menara/internal/dataset/csv"
	"github.com/smallbiznis/menara/internal/dataset/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Cfg       config.Config
	Dashboard *config.DashboardConfigHolder
	Log       *zap.Logger
}

// Store caches the four dataset tables in memory. Reload replaces the
// snapshot atomically; readers always see a complete, consistent bundle.
type Store struct {
	dir       string
	watchData bool
	dashboard *config.DashboardConfigHolder
	log       *zap.Logger

	reloadMu sync.Mutex
	current  atomic.Value // holds snapshot

	watcher *fsnotify.Watcher
	done    chan struct{}
}

type snapshot struct {
	tables   domain.Tables
	loadedAt time.Time
}

func New(p Params) *Store {
	return &Store{
		dir:       p.Cfg.DataDir,
		watchData: p.Cfg.WatchData,
		dashboard: p.Dashboard,
		log:       p.Log.Named("dataset.store"),
		done:      make(chan struct{}),
	}
}

// Tables returns the cached snapshot, loading it on first use.
func (s *Store) Tables(ctx context.Context) (domain.Tables, error) {
	if v := s.current.Load(); v != nil {
		return v.(snapshot).tables, nil
	}
	if err := s.Reload(); err != nil {
		return domain.Tables{}, err
	}
	if v := s.current.Load(); v != nil {
		return v.(snapshot).tables, nil
	}
	return domain.Tables{}, domain.ErrNotLoaded
}

// LoadedAt reports when the current snapshot was read from disk.
func (s *Store) LoadedAt() time.Time {
	if v := s.current.Load(); v != nil {
		return v.(snapshot).loadedAt
	}
	return time.Time{}
}

// Reload re-reads the four dataset files and swaps the snapshot. A failed
// reload leaves the previous snapshot in place.
func (s *Store) Reload() error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	files := s.dashboard.Current().Files

	subscribers, err := datasetcsv.ReadSubscribers(filepath.Join(s.dir, files.Subscribers))
	if err != nil {
		return err
	}
	bills, err := datasetcsv.ReadBills(filepath.Join(s.dir, files.Bills))
	if err != nil {
		return err
	}
	tickets, err := datasetcsv.ReadTickets(filepath.Join(s.dir, files.Tickets))
	if err != nil {
		return err
	}
	usage, err := datasetcsv.ReadUsageRecords(filepath.Join(s.dir, files.UsageRecords))
	if err != nil {
		return err
	}

	s.current.Store(snapshot{
		tables: domain.Tables{
			Subscribers:  subscribers,
			Bills:        bills,
			Tickets:      tickets,
			UsageRecords: usage,
		},
		loadedAt: time.Now().UTC(),
	})

	s.log.Info("dataset snapshot loaded",
		zap.Int("subscribers", len(subscribers)),
		zap.Int("bills", len(bills)),
		zap.Int("tickets", len(tickets)),
		zap.Int("usage_records", len(usage)),
	)
	return nil
}

func (s *Store) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return err
	}
	s.watcher = watcher

	go func() {
		for {
			select {
			case <-s.done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
					continue
				}
				if !s.isDatasetFile(event.Name) {
					continue
				}
				s.log.Info("dataset file changed, reloading", zap.String("file", event.Name))
				if err := s.Reload(); err != nil {
					s.log.Warn("dataset reload failed, keeping previous snapshot", zap.Error(err))
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn("dataset watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}

func (s *Store) isDatasetFile(name string) bool {
	base := filepath.Base(name)
	files := s.dashboard.Current().Files
	switch base {
	case files.Subscribers, files.Bills, files.Tickets, files.UsageRecords:
		return true
	default:
		return false
	}
}

func (s *Store) stopWatcher() {
	close(s.done)
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
}

// RegisterHooks loads the snapshot on startup and stops the watcher on
// shutdown.
func RegisterHooks(lc fx.Lifecycle, s *Store) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := s.Reload(); err != nil {
				return err
			}
			if s.watchData {
				return s.startWatcher()
			}
			return nil
		},
		OnStop: func(context.Context) error {
			s.stopWatcher()
			return nil
		},
	})
}
