// Package ledger stores grocery entries in memory, optionally mirrored to a
// YAML file, and exports them as CSV.
package ledger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// ErrNoEntries is returned by ExportCSV when the ledger is empty.
var ErrNoEntries = errors.New("ledger has no entries")

// Entry is one grocery line.
type Entry struct {
	ID        string    `yaml:"id"`
	Quantity  float64   `yaml:"quantity"`
	Unit      string    `yaml:"unit"`
	Item      string    `yaml:"item"`
	Date      string    `yaml:"date"`
	CreatedAt time.Time `yaml:"created_at"`
}

type document struct {
	Entries []Entry `yaml:"entries"`
}

type ledgerImpl struct {
	mu      sync.Mutex
	fileSys afero.Fs
	path    string
	now     func() time.Time
	logger  *slog.Logger
	entries []Entry
}

type Config struct {
	FileSys afero.Fs
	// Path is the YAML file the ledger is kept in. Empty keeps the ledger in memory only.
	Path   string
	Now    func() time.Time
	Logger *slog.Logger
}

func New(cfg *Config) (Interface, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	if cfg.FileSys == nil {
		return nil, fmt.Errorf("fileSys is nil")
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	l := &ledgerImpl{
		fileSys: cfg.FileSys,
		path:    cfg.Path,
		now:     now,
		logger:  logger,
	}

	if err := l.load(); err != nil {
		return nil, err
	}

	return l, nil
}

func (l *ledgerImpl) load() error {
	if l.path == "" {
		return nil
	}

	data, err := afero.ReadFile(l.fileSys, l.path)
	if errors.Is(err, os.ErrNotExist) {
		l.logger.Debug("Ledger file not found, starting empty", slog.String("path", l.path))

		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to read ledger file: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse ledger file: %w", err)
	}

	l.entries = doc.Entries

	l.logger.Debug("Loaded ledger", slog.String("path", l.path), slog.Int("entries", len(l.entries)))

	return nil
}

// commit persists next and only then makes it the live ledger, so a failed
// save leaves the ledger as it was. It must be called with mu held.
func (l *ledgerImpl) commit(next []Entry) error {
	if err := l.save(next); err != nil {
		return err
	}

	l.entries = next

	return nil
}

func (l *ledgerImpl) save(entries []Entry) error {
	if l.path == "" {
		return nil
	}

	data, err := yaml.Marshal(document{Entries: entries})
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}

	if err := l.fileSys.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}

	if err := afero.WriteFile(l.fileSys, l.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write ledger file: %w", err)
	}

	return nil
}

// snapshot returns a copy of the entries that can be changed freely.
func (l *ledgerImpl) snapshot() []Entry {
	return append([]Entry(nil), l.entries...)
}

func (l *ledgerImpl) Add(quantity float64, unit, item string) (Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	entry := Entry{
		ID:        uuid.NewString(),
		Quantity:  quantity,
		Unit:      unit,
		Item:      item,
		Date:      now.Format(dateLayout),
		CreatedAt: now,
	}

	if err := l.commit(append(l.snapshot(), entry)); err != nil {
		return Entry{}, err
	}

	return entry, nil
}

func (l *ledgerImpl) DeleteLast() (Entry, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) == 0 {
		return Entry{}, false, nil
	}

	next := l.snapshot()
	last := next[len(next)-1]

	if err := l.commit(next[:len(next)-1]); err != nil {
		return Entry{}, false, err
	}

	return last, true, nil
}

func (l *ledgerImpl) DeleteByName(substring string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	needle := normalizeName(substring)
	if needle == "" {
		return 0, nil
	}

	kept := make([]Entry, 0, len(l.entries))
	deleted := 0

	for _, e := range l.entries {
		if matches(e.Item, needle) {
			deleted++

			continue
		}

		kept = append(kept, e)
	}

	if deleted == 0 {
		return 0, nil
	}

	if err := l.commit(kept); err != nil {
		return 0, err
	}

	return deleted, nil
}

func (l *ledgerImpl) DeleteAll() (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	deleted := len(l.entries)

	if err := l.commit(nil); err != nil {
		return 0, err
	}

	return deleted, nil
}

func (l *ledgerImpl) UpdateLast(quantity float64, unit, item string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) == 0 {
		return 0, nil
	}

	next := l.snapshot()

	last := &next[len(next)-1]
	last.Quantity = quantity
	last.Unit = unit
	last.Item = item

	if err := l.commit(next); err != nil {
		return 0, err
	}

	return 1, nil
}

func (l *ledgerImpl) UpdateByName(substring string, quantity float64, unit, item string) (int, error) {
	return l.updateMatching(substring, func(e *Entry) {
		e.Quantity = quantity
		e.Unit = unit
		e.Item = item
	})
}

func (l *ledgerImpl) RenameByName(substring, newName string) (int, error) {
	return l.updateMatching(substring, func(e *Entry) {
		e.Item = newName
	})
}

func (l *ledgerImpl) updateMatching(substring string, apply func(e *Entry)) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	needle := normalizeName(substring)
	if needle == "" {
		return 0, nil
	}

	next := l.snapshot()
	updated := 0

	for i := range next {
		if matches(next[i].Item, needle) {
			apply(&next[i])
			updated++
		}
	}

	if updated == 0 {
		return 0, nil
	}

	if err := l.commit(next); err != nil {
		return 0, err
	}

	return updated, nil
}

func (l *ledgerImpl) Entries() ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]Entry(nil), l.entries...), nil
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func matches(item, needle string) bool {
	return strings.Contains(strings.ToLower(item), needle)
}
