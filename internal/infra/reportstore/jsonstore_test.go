package reportstore

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aalvaropc/skein/internal/domain"
)

func sampleReport(created time.Time) domain.Report {
	return domain.Report{
		ProjectName: "Mohair + Silk",
		ProjectPath: "projects/mohair.yaml",
		CreatedAt:   created,
		Evaluation:  domain.Evaluate(domain.SeedEntries()),
	}
}

func TestSaveReport_CreatesJSONFile(t *testing.T) {
	tmp := t.TempDir()

	cfg := domain.DefaultConfig()
	store := NewJSONStore(tmp, cfg, WithIDGenerator(func() string { return "fixed-id" }))

	created := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	id, err := store.SaveReport(sampleReport(created))
	if err != nil {
		t.Fatalf("SaveReport error: %v", err)
	}
	if id != "20260203T101112Z_mohair-silk" {
		t.Fatalf("unexpected id %q", id)
	}

	b, err := os.ReadFile(filepath.Join(tmp, "reports", id+".json"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	var decoded domain.Report
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded.ID != "fixed-id" {
		t.Fatalf("expected generated report id, got %q", decoded.ID)
	}
	if decoded.ProjectName != "Mohair + Silk" {
		t.Fatalf("expected project name, got=%q", decoded.ProjectName)
	}
	if len(decoded.Entries) != 2 {
		t.Fatalf("expected 2 entries, got=%d", len(decoded.Entries))
	}
	if decoded.Result == nil || decoded.Result.TotalStrands != 3 {
		t.Fatalf("expected result with 3 strands, got %+v", decoded.Result)
	}
}

func TestSaveReport_InvalidFormKeepsErrors(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig())

	rep := domain.Report{
		ProjectName: "broken",
		CreatedAt:   time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC),
		Evaluation:  domain.Evaluate([]domain.YarnEntry{{ID: 1, Mass: "0", Length: "1", Strands: "1"}}),
	}

	id, err := store.SaveReport(rep)
	if err != nil {
		t.Fatalf("SaveReport error: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(tmp, "reports", id+".json"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	var decoded domain.Report
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Result != nil {
		t.Fatalf("expected no result")
	}
	if decoded.Errors.Message(1, domain.FieldMass) != domain.MsgMassNotPositive {
		t.Fatalf("expected mass error persisted, got %v", decoded.Errors)
	}
	if decoded.ID == "" {
		t.Fatalf("expected a uuid to be assigned")
	}
}

func TestSaveReport_UsesUniqueFilenameOnCollision(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig())

	rep := sampleReport(time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC))

	id1, err := store.SaveReport(rep)
	if err != nil {
		t.Fatalf("SaveReport #1 error: %v", err)
	}
	id2, err := store.SaveReport(rep)
	if err != nil {
		t.Fatalf("SaveReport #2 error: %v", err)
	}
	if id2 != id1+"_2" {
		t.Fatalf("expected second id %q, got %q", id1+"_2", id2)
	}

	for _, id := range []string{id1, id2} {
		p := filepath.Join(tmp, "reports", id+".json")
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected file at %s, stat err=%v", p, err)
		}
	}
}

func TestSaveReport_WritesIndex(t *testing.T) {
	tmp := t.TempDir()
	cfg := domain.DefaultConfig()
	cfg.Paths.ReportsDir = "out"

	store := NewJSONStore(tmp, cfg, WithIndex(true), WithNow(func() time.Time {
		return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	}))

	rep := sampleReport(time.Time{})
	if _, err := store.SaveReport(rep); err != nil {
		t.Fatalf("SaveReport error: %v", err)
	}

	f, err := os.Open(filepath.Join(tmp, "out", "index.jsonl"))
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		t.Fatalf("expected one index line")
	}
	var line struct {
		ID       string   `json:"id"`
		File     string   `json:"file"`
		Valid    bool     `json:"valid"`
		Combined *float64 `json:"combined"`
	}
	if err := json.Unmarshal(sc.Bytes(), &line); err != nil {
		t.Fatalf("unmarshal index: %v", err)
	}
	if line.ID != "20260101T000000Z_mohair-silk" || line.File != line.ID+".json" {
		t.Fatalf("unexpected index line %+v", line)
	}
	if !line.Valid || line.Combined == nil {
		t.Fatalf("expected a valid report with combined figure, got %+v", line)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Mohair + Silk":  "mohair-silk",
		"  ":             "",
		"Alpaca_2 ply!!": "alpaca-2-ply",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
