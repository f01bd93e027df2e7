// Package export writes a date range of tracker data to JSON, CSV, or XLSX.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/mholloway/cadence/internal/errors"
	"github.com/mholloway/cadence/internal/metrics"
	"github.com/mholloway/cadence/internal/models"
	"github.com/mholloway/cadence/internal/storage"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a format string.
func ParseFormat(v string) (Format, error) {
	switch Format(v) {
	case FormatJSON, FormatCSV, FormatXLSX:
		return Format(v), nil
	default:
		return "", errors.Validation("format", fmt.Sprintf("unknown format %q, expected json, csv, or xlsx", v))
	}
}

// Filename suggests an output file name for a range export.
func Filename(format Format, start, end string) string {
	return fmt.Sprintf("routine_%s_to_%s.%s", start, end, format)
}

type Service struct {
	store   storage.Provider
	metrics *metrics.Service
}

func New(store storage.Provider) *Service {
	return &Service{
		store:   store,
		metrics: metrics.New(store),
	}
}

// Bundle is the JSON export payload: the computed report plus the raw rows
// it was computed from.
type Bundle struct {
	Report      metrics.Report          `json:"report"`
	Completions []models.TaskCompletion `json:"completions"`
	DailyLogs   []models.DailyLog       `json:"daily_logs"`
	Sessions    []models.ReadingSession `json:"reading_sessions"`
}

// Export writes the range in the requested format.
func (s *Service) Export(w io.Writer, format Format, start, end string) error {
	bundle, err := s.collect(start, end)
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(bundle)
	case FormatCSV:
		return writeCSV(w, bundle)
	case FormatXLSX:
		return writeXLSX(w, bundle)
	default:
		return errors.Validation("format", fmt.Sprintf("unknown format %q", format))
	}
}

func (s *Service) collect(start, end string) (Bundle, error) {
	report, err := s.metrics.Analyze(start, end)
	if err != nil {
		return Bundle{}, err
	}
	completions, err := s.store.GetCompletionsInRange(start, end)
	if err != nil {
		return Bundle{}, err
	}
	logs, err := s.store.GetDailyLogsInRange(start, end)
	if err != nil {
		return Bundle{}, err
	}
	sessions, err := s.store.GetSessionsInRange(start, end)
	if err != nil {
		return Bundle{}, err
	}

	return Bundle{
		Report:      report,
		Completions: completions,
		DailyLogs:   logs,
		Sessions:    sessions,
	}, nil
}

var completionHeader = []string{
	"date", "task_id", "status", "completed", "duration_min",
	"quality_score", "energy_before", "energy_after", "notes",
}

func completionRow(c models.TaskCompletion) []string {
	return []string{
		c.Date, c.TaskID, string(c.Status), strconv.FormatBool(c.Completed),
		intField(c.DurationMin), intField(c.QualityScore),
		intField(c.EnergyBefore), intField(c.EnergyAfter), c.Notes,
	}
}

// writeCSV emits the completion ledger, the most tabular slice of the data.
func writeCSV(w io.Writer, bundle Bundle) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(completionHeader); err != nil {
		return err
	}
	for _, c := range bundle.Completions {
		if err := cw.Write(completionRow(c)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSX(w io.Writer, bundle Bundle) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, bundle); err != nil {
		return err
	}
	if err := writeCompletionsSheet(f, bundle.Completions); err != nil {
		return err
	}
	if err := writeDailyLogsSheet(f, bundle.DailyLogs); err != nil {
		return err
	}
	if err := writeReadingSheet(f, bundle.Sessions); err != nil {
		return err
	}

	// Drop the default sheet created by NewFile.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	return f.Write(w)
}

func writeSummarySheet(f *excelize.File, bundle Bundle) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	o := bundle.Report.Overview
	rows := [][]any{
		{"Range", bundle.Report.Start + " to " + bundle.Report.End},
		{"Days analyzed", o.DaysAnalyzed},
		{"Active days", o.ActiveDays},
		{"Avg completion rate", o.AvgCompletionRate},
		{"Avg quality", o.AvgQuality},
		{"Total reading minutes", o.TotalReadingMin},
		{"Avg energy", o.AvgEnergy},
		{"Avg satisfaction", o.AvgSatisfaction},
		{"Exercise days", o.ExerciseDays},
		{"Excellent days", o.ExcellentDays},
		{"Avg stress", o.AvgStress},
		{"Energy stability", bundle.Report.Energy.Stability},
		{"Goal score", bundle.Report.Goals.OverallScore},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeCompletionsSheet(f *excelize.File, completions []models.TaskCompletion) error {
	const sheet = "Completions"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := make([]any, len(completionHeader))
	for i, h := range completionHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, c := range completions {
		row := []any{
			c.Date, c.TaskID, string(c.Status), c.Completed,
			intField(c.DurationMin), intField(c.QualityScore),
			intField(c.EnergyBefore), intField(c.EnergyAfter), c.Notes,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeDailyLogsSheet(f *excelize.File, logs []models.DailyLog) error {
	const sheet = "Daily Logs"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []any{
		"date", "sleep_time", "wake_time", "sleep_quality",
		"energy_morning", "energy_afternoon", "energy_evening",
		"exercise", "exercise_type", "focus", "satisfaction", "stress", "reflection",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, l := range logs {
		row := []any{
			l.Date, l.SleepTime, l.WakeTime, intField(l.SleepQuality),
			intField(l.EnergyMorning), intField(l.EnergyAfternoon), intField(l.EnergyEvening),
			l.ExerciseCompleted, l.ExerciseType, intField(l.FocusQuality),
			intField(l.Satisfaction), intField(l.Stress), l.Reflection,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeReadingSheet(f *excelize.File, sessions []models.ReadingSession) error {
	const sheet = "Reading"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []any{
		"date", "book_id", "duration_min", "start_page", "end_page",
		"pages_read", "focus", "comprehension", "enjoyment", "notes",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, sess := range sessions {
		row := []any{
			sess.Date, sess.BookID, sess.DurationMin, sess.StartPage, sess.EndPage,
			sess.PagesRead, intField(sess.Focus), intField(sess.Comprehension),
			intField(sess.Enjoyment), sess.Notes,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func intField(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
