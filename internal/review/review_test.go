package review

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mholloway/cadence/internal/errors"
	"github.com/mholloway/cadence/internal/models"
	"github.com/mholloway/cadence/internal/schedule"
	"github.com/mholloway/cadence/internal/storage/sqlite"
)

func intp(v int) *int { return &v }

func TestCompositeScore(t *testing.T) {
	// 0.25*90 + 0.20*90 + 0.15*100 + 0.15*100 + 0.10*90 + 0.10*100 + 0.05*100
	r := models.WeeklyReview{
		AvgCompletionRate:   90,
		AvgQualityScore:     9,
		ReadingConsistency:  true,
		ExerciseConsistency: true,
		AvgSatisfaction:     9,
		AvgEnergyLevel:      7.5,
		SleepConsistency:    true,
	}
	if got := compositeScore(r); got != 94.5 {
		t.Errorf("compositeScore() = %v, want 94.5", got)
	}

	if got := compositeScore(models.WeeklyReview{}); got != 0 {
		t.Errorf("compositeScore() on empty week = %v, want 0", got)
	}
}

func TestCompositeScoreEnergyCap(t *testing.T) {
	// At or above 7 the energy component maxes out; below it scales.
	high := models.WeeklyReview{AvgEnergyLevel: 7}
	low := models.WeeklyReview{AvgEnergyLevel: 5}
	if got := compositeScore(high); got != 10 {
		t.Errorf("energy 7 component = %v, want 10", got)
	}
	if got := compositeScore(low); got != 5 {
		t.Errorf("energy 5 component = %v, want 5", got)
	}
}

func TestGradeFor(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{94.5, "A+"}, {90, "A+"}, {89.9, "A"}, {85, "A"},
		{80, "A-"}, {75, "B+"}, {70, "B"}, {65, "B-"},
		{60, "C+"}, {55, "C"}, {50, "C-"}, {49.9, "D"}, {0, "D"},
	}
	for _, tt := range tests {
		if got := gradeFor(tt.score); got != tt.want {
			t.Errorf("gradeFor(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func setupService(t *testing.T) *Service {
	t.Helper()

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "cadence.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	svc := New(store)
	svc.Now = func() time.Time { return time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC) }
	return svc
}

// seedWeek fills 2026 ISO week 10 (Mar 2-8) with a consistent week of data.
func seedWeek(t *testing.T, svc *Service) {
	t.Helper()

	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	if err := svc.store.SaveCategory(models.RoutineCategory{ID: "cat-1", Name: "Routine", Active: true, CreatedAt: now}); err != nil {
		t.Fatal(err)
	}
	taskID := uuid.New().String()
	if err := svc.store.SaveTask(models.RoutineTask{
		ID: taskID, CategoryID: "cat-1", Name: "Writing",
		Days: schedule.EveryDay(), Active: true, CreatedAt: now,
	}); err != nil {
		t.Fatal(err)
	}
	bookID := uuid.New().String()
	if err := svc.store.SaveBook(models.Book{
		ID: bookID, Title: "Piranesi", Status: models.BookReading, TotalPages: 272,
		CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 7; i++ {
		date := now.AddDate(0, 0, i).Format("2006-01-02")
		if err := svc.store.SaveCompletion(models.TaskCompletion{
			ID: uuid.New().String(), TaskID: taskID, Date: date,
			Status: models.StatusCompleted, Completed: true, QualityScore: intp(9),
			CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			t.Fatal(err)
		}
		if err := svc.store.SaveDailyLog(models.DailyLog{
			ID: uuid.New().String(), Date: date,
			SleepQuality:      intp(8),
			EnergyMorning:     intp(7),
			EnergyEvening:     intp(8),
			ExerciseCompleted: true,
			Satisfaction:      intp(9),
			CreatedAt:         now, UpdatedAt: now,
		}); err != nil {
			t.Fatal(err)
		}
		if err := svc.store.SaveSession(models.ReadingSession{
			ID: uuid.New().String(), BookID: bookID, Date: date,
			DurationMin: 35, StartPage: i * 20, EndPage: (i + 1) * 20, PagesRead: 20,
			CreatedAt: now,
		}); err != nil {
			t.Fatal(err)
		}
	}
}

func TestGenerate(t *testing.T) {
	svc := setupService(t)
	seedWeek(t, svc)

	review, err := svc.Generate(2026, 10)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if review.WeekStart != "2026-03-02" || review.WeekEnd != "2026-03-08" {
		t.Errorf("week bounds = %s..%s", review.WeekStart, review.WeekEnd)
	}
	if review.AvgCompletionRate != 100 {
		t.Errorf("avg completion = %v, want 100", review.AvgCompletionRate)
	}
	if review.AvgQualityScore != 9 {
		t.Errorf("avg quality = %v, want 9", review.AvgQualityScore)
	}
	if review.TotalReadingMinutes != 245 {
		t.Errorf("reading minutes = %d, want 245", review.TotalReadingMinutes)
	}
	if review.ReadingDays != 7 || review.ExerciseDays != 7 || review.GoodSleepDays != 7 {
		t.Errorf("day counts: %+v", review)
	}
	if !review.ExerciseConsistency || !review.ReadingConsistency || !review.SleepConsistency {
		t.Errorf("consistency flags: %+v", review)
	}
	// 25 + 18 + 15 + 15 + 9 + 10 + 5
	if review.OverallScore != 97 {
		t.Errorf("overall score = %v, want 97", review.OverallScore)
	}
	if review.Grade != "A+" {
		t.Errorf("grade = %s, want A+", review.Grade)
	}
	if len(review.Highlights) == 0 {
		t.Error("a perfect week should have highlights")
	}
	if len(review.Suggestions) != 0 {
		t.Errorf("a perfect week should need no suggestions, got %v", review.Suggestions)
	}
}

func TestGenerateIdempotent(t *testing.T) {
	svc := setupService(t)
	seedWeek(t, svc)

	first, err := svc.Generate(2026, 10)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if _, err := svc.SetNotes(2026, 10, "felt great"); err != nil {
		t.Fatalf("SetNotes() failed: %v", err)
	}

	second, err := svc.Generate(2026, 10)
	if err != nil {
		t.Fatalf("second Generate() failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("regeneration changed the review id: %s vs %s", second.ID, first.ID)
	}
	if second.Notes != "felt great" {
		t.Errorf("regeneration dropped the notes: %q", second.Notes)
	}

	all, err := svc.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected a single review for the week, got %d", len(all))
	}
}

func TestGenerateEmptyWeek(t *testing.T) {
	svc := setupService(t)

	review, err := svc.Generate(2026, 10)
	if err != nil {
		t.Fatalf("Generate() on empty week failed: %v", err)
	}
	if review.OverallScore != 0 || review.Grade != "D" {
		t.Errorf("empty week = %v %s", review.OverallScore, review.Grade)
	}
}

func TestGenerateValidatesWeek(t *testing.T) {
	svc := setupService(t)

	if _, err := svc.Generate(2026, 0); !errors.IsValidation(err) {
		t.Errorf("week 0 should fail validation, got %v", err)
	}
	if _, err := svc.Generate(2026, 54); !errors.IsValidation(err) {
		t.Errorf("week 54 should fail validation, got %v", err)
	}
}

func TestGenerateForDate(t *testing.T) {
	svc := setupService(t)
	seedWeek(t, svc)

	review, err := svc.GenerateForDate("2026-03-04")
	if err != nil {
		t.Fatalf("GenerateForDate() failed: %v", err)
	}
	if review.Year != 2026 || review.WeekNumber != 10 {
		t.Errorf("GenerateForDate() = %d-W%d, want 2026-W10", review.Year, review.WeekNumber)
	}
}
