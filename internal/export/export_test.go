package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/mholloway/cadence/internal/models"
	"github.com/mholloway/cadence/internal/schedule"
	"github.com/mholloway/cadence/internal/storage/sqlite"
)

func intp(v int) *int { return &v }

func setupService(t *testing.T) *Service {
	t.Helper()

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "cadence.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	if err := store.SaveCategory(models.RoutineCategory{ID: "cat-1", Name: "Routine", Active: true, CreatedAt: now}); err != nil {
		t.Fatal(err)
	}
	taskID := uuid.New().String()
	if err := store.SaveTask(models.RoutineTask{
		ID: taskID, CategoryID: "cat-1", Name: "Writing",
		Days: schedule.EveryDay(), Active: true, CreatedAt: now,
	}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		date := now.AddDate(0, 0, i).Format("2006-01-02")
		if err := store.SaveCompletion(models.TaskCompletion{
			ID: uuid.New().String(), TaskID: taskID, Date: date,
			Status: models.StatusCompleted, Completed: true, QualityScore: intp(8),
			CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			t.Fatal(err)
		}
		if err := store.SaveDailyLog(models.DailyLog{
			ID: uuid.New().String(), Date: date,
			EnergyMorning: intp(6), CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			t.Fatal(err)
		}
	}

	return New(store)
}

func TestParseFormat(t *testing.T) {
	for _, ok := range []string{"json", "csv", "xlsx"} {
		if _, err := ParseFormat(ok); err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", ok, err)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("ParseFormat(\"pdf\") should fail")
	}
}

func TestFilename(t *testing.T) {
	got := Filename(FormatCSV, "2026-03-02", "2026-03-08")
	if got != "routine_2026-03-02_to_2026-03-08.csv" {
		t.Errorf("Filename() = %q", got)
	}
}

func TestExportJSON(t *testing.T) {
	svc := setupService(t)

	var buf bytes.Buffer
	if err := svc.Export(&buf, FormatJSON, "2026-03-02", "2026-03-04"); err != nil {
		t.Fatalf("Export() failed: %v", err)
	}

	var bundle Bundle
	if err := json.Unmarshal(buf.Bytes(), &bundle); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(bundle.Completions) != 3 || len(bundle.DailyLogs) != 3 {
		t.Errorf("bundle rows: %d completions, %d logs", len(bundle.Completions), len(bundle.DailyLogs))
	}
	if bundle.Report.Overview.DaysAnalyzed != 3 {
		t.Errorf("report days = %d, want 3", bundle.Report.Overview.DaysAnalyzed)
	}
}

func TestExportCSV(t *testing.T) {
	svc := setupService(t)

	var buf bytes.Buffer
	if err := svc.Export(&buf, FormatCSV, "2026-03-02", "2026-03-04"); err != nil {
		t.Fatalf("Export() failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid CSV: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d", len(records))
	}
	if records[0][0] != "date" || records[1][2] != "completed" {
		t.Errorf("unexpected CSV content: %v", records[:2])
	}
}

func TestExportXLSX(t *testing.T) {
	svc := setupService(t)

	var buf bytes.Buffer
	if err := svc.Export(&buf, FormatXLSX, "2026-03-02", "2026-03-04"); err != nil {
		t.Fatalf("Export() failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("export is not a valid workbook: %v", err)
	}
	defer f.Close()

	want := map[string]bool{"Summary": true, "Completions": true, "Daily Logs": true, "Reading": true}
	for _, sheet := range f.GetSheetList() {
		delete(want, sheet)
	}
	if len(want) != 0 {
		t.Errorf("missing sheets: %v", want)
	}

	rows, err := f.GetRows("Completions")
	if err != nil {
		t.Fatalf("GetRows() failed: %v", err)
	}
	if len(rows) != 4 {
		t.Errorf("Completions sheet has %d rows, want 4", len(rows))
	}
}

func TestExportRejectsBadRange(t *testing.T) {
	svc := setupService(t)

	var buf bytes.Buffer
	if err := svc.Export(&buf, FormatJSON, "2026-03-04", "2026-03-02"); err == nil {
		t.Error("Export() with inverted range should fail")
	}
}
