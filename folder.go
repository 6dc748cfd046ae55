package cashflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Files of a Folder.
const (
	EntriesFile  = "entries.jsonl"
	HoldingsFile = "holdings.jsonl"
	GoalsFile    = "goals.jsonl"
	BudgetsFile  = "budgets.jsonl"
)

// Folder is a Provider reading JSONL files from a directory.
//
// A missing file holds no record.
type Folder struct {
	dir string
	log logrus.FieldLogger
}

// NewFolder returns the Folder of directory 'dir'. 'log' may be nil.
func NewFolder(dir string, log logrus.FieldLogger) *Folder {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Folder{dir: dir, log: log.WithField("dir", dir)}
}

// Dir returns the directory of the folder.
func (f *Folder) Dir() string { return f.dir }

// load opens file 'name' and decodes it with 'decode'.
func load[T any](ctx context.Context, f *Folder, name string, decode func(io.Reader) ([]T, error)) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(f.dir, name)
	r, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		f.log.WithField("file", name).Debug("file not found, no records")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", path, err)
	}
	defer r.Close()

	list, err := decode(r)
	if err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", path, err)
	}
	f.log.WithField("file", name).Debugf("%d records loaded", len(list))
	return list, nil
}

func (f *Folder) Entries(ctx context.Context) ([]Entry, error) {
	return load(ctx, f, EntriesFile, DecodeEntries)
}

func (f *Folder) Holdings(ctx context.Context) ([]Holding, error) {
	return load(ctx, f, HoldingsFile, DecodeHoldings)
}

func (f *Folder) Goals(ctx context.Context) ([]Goal, error) {
	return load(ctx, f, GoalsFile, DecodeGoals)
}

func (f *Folder) Budgets(ctx context.Context) ([]Budget, error) {
	return load(ctx, f, BudgetsFile, DecodeBudgets)
}

// appendTo appends one record to file 'name', creating the folder and the file if needed.
func (f *Folder) appendTo(name string, encode func(io.Writer) error) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("could not create folder %q: %w", f.dir, err)
	}
	path := filepath.Join(f.dir, name)
	w, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("could not open %q for writing: %w", path, err)
	}
	if err := encode(w); err != nil {
		w.Close()
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	return w.Close()
}

// AppendEntry validates and appends an entry to the ledger.
func (f *Folder) AppendEntry(e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := f.appendTo(EntriesFile, func(w io.Writer) error { return EncodeEntry(w, e) }); err != nil {
		return err
	}
	f.log.WithFields(logrus.Fields{"date": e.Date, "type": e.Kind, "amount": e.Amount}).Info("entry recorded")
	return nil
}

// AppendGoal validates and appends a goal, after the existing ones.
func (f *Folder) AppendGoal(g Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if err := f.appendTo(GoalsFile, func(w io.Writer) error { return EncodeGoal(w, g) }); err != nil {
		return err
	}
	f.log.WithField("goal", g.Name).Info("goal recorded")
	return nil
}

// AppendBudget appends a budget.
func (f *Folder) AppendBudget(b Budget) error {
	if b.Amount.IsNegative() {
		return fmt.Errorf("budget %q for %s: negative amount", b.Category, b.Month)
	}
	if err := f.appendTo(BudgetsFile, func(w io.Writer) error { return EncodeBudget(w, b) }); err != nil {
		return err
	}
	f.log.WithFields(logrus.Fields{"month": b.Month, "category": b.Category}).Info("budget recorded")
	return nil
}

// WriteHoldings replaces all holdings of the folder.
func (f *Folder) WriteHoldings(holdings []Holding) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("could not create folder %q: %w", f.dir, err)
	}
	path := filepath.Join(f.dir, HoldingsFile)
	tmp := path + ".tmp"
	w, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", tmp, err)
	}
	if err := EncodeHoldings(w, holdings); err != nil {
		w.Close()
		os.Remove(tmp)
		return fmt.Errorf("could not write %q: %w", tmp, err)
	}
	if err := w.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("could not replace %q: %w", path, err)
	}
	f.log.WithField("count", len(holdings)).Info("holdings written")
	return nil
}

var _ Provider = (*Folder)(nil)
