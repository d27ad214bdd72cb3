package reportstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aalvaropc/skein/internal/domain"
	"github.com/aalvaropc/skein/internal/ports"
)

const defaultReportsDir = "reports"

type JSONStore struct {
	rootDir        string
	reportsDirName string
	writeIndex     bool
	now            func() time.Time
	newID          func() string
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: reports/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

// WithIDGenerator overrides report id generation (useful for tests).
func WithIDGenerator(gen func() string) Option {
	return func(s *JSONStore) { s.newID = gen }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	reportsDir := cfg.Paths.ReportsDir
	if strings.TrimSpace(reportsDir) == "" {
		reportsDir = defaultReportsDir
	}

	s := &JSONStore{
		rootDir:        root,
		reportsDirName: reportsDir,
		now:            time.Now,
		newID:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ReportStore = (*JSONStore)(nil)

// SaveReport writes the report as <timestamp>_<slug>.json and returns the
// file stem. A numeric suffix keeps same-second saves apart.
func (s *JSONStore) SaveReport(report domain.Report) (string, error) {
	dir := filepath.Join(s.rootDir, s.reportsDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "reportstore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	toSave := report
	if toSave.CreatedAt.IsZero() {
		toSave.CreatedAt = s.now()
	}
	toSave.CreatedAt = toSave.CreatedAt.UTC()
	if strings.TrimSpace(toSave.ID) == "" {
		toSave.ID = s.newID()
	}

	namePart := report.ProjectName
	if strings.TrimSpace(namePart) == "" && report.ProjectPath != "" {
		namePart = strings.TrimSuffix(filepath.Base(report.ProjectPath), filepath.Ext(report.ProjectPath))
	}
	slug := slugify(namePart)
	if slug == "" {
		slug = "report"
	}

	base := fmt.Sprintf("%s_%s", toSave.CreatedAt.Format("20060102T150405Z"), slug)
	id := uniqueStem(dir, base)
	filename := id + ".json"
	path := filepath.Join(dir, filename)

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "reportstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return "", &domain.OpError{
			Op:   "reportstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "reportstore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, id, filename, toSave)
	}

	return id, nil
}

func uniqueStem(dir, base string) string {
	stem := base
	for n := 2; ; n++ {
		if _, err := os.Stat(filepath.Join(dir, stem+".json")); os.IsNotExist(err) {
			return stem
		}
		stem = fmt.Sprintf("%s_%d", base, n)
	}
}

func (s *JSONStore) appendIndex(dir, id, filename string, report domain.Report) error {
	type idx struct {
		ID        string    `json:"id"`
		ReportID  string    `json:"report_id"`
		File      string    `json:"file"`
		Project   string    `json:"project"`
		Valid     bool      `json:"valid"`
		Combined  *float64  `json:"combined,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}

	entry := idx{
		ID:        id,
		ReportID:  report.ID,
		File:      filename,
		Project:   report.ProjectName,
		Valid:     report.Valid(),
		CreatedAt: report.CreatedAt,
	}
	if report.Result != nil {
		c := report.Result.Combined
		entry.Combined = &c
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	indexPath := filepath.Join(dir, "index.jsonl")
	f, err := os.OpenFile(indexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
