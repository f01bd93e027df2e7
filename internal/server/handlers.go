package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mholloway/cadence/internal/constants"
	"github.com/mholloway/cadence/internal/errors"
	"github.com/mholloway/cadence/internal/export"
	"github.com/mholloway/cadence/internal/ledger"
	"github.com/mholloway/cadence/internal/metrics"
	"github.com/mholloway/cadence/internal/models"
	"github.com/mholloway/cadence/internal/reading"
	"github.com/mholloway/cadence/internal/utils"
)

func (s *Server) handleHealth(c *gin.Context) {
	s.respond(c, http.StatusOK, map[string]string{"status": "ok", "version": constants.Version})
}

// --- day ledger ---

func (s *Server) handleDay(c *gin.Context) {
	view, err := s.ledger.EnsureForDate(c.Param("date"))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, view)
}

func (s *Server) handleStart(c *gin.Context) {
	completion, err := s.ledger.Start(c.Param("taskID"), c.Param("date"))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, completion)
}

func (s *Server) handleComplete(c *gin.Context) {
	var input ledger.CompleteInput
	if !s.decode(c, &input) {
		return
	}
	completion, err := s.ledger.Complete(c.Param("taskID"), c.Param("date"), input)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, completion)
}

func (s *Server) handleSkip(c *gin.Context) {
	s.handleClose(c, s.ledger.Skip)
}

func (s *Server) handlePostpone(c *gin.Context) {
	s.handleClose(c, s.ledger.Postpone)
}

func (s *Server) handleClose(c *gin.Context, fn func(taskID, date, reason string) (models.TaskCompletion, error)) {
	var body struct {
		Reason string `json:"reason"`
	}
	if c.Request.ContentLength > 0 && !s.decode(c, &body) {
		return
	}
	completion, err := fn(c.Param("taskID"), c.Param("date"), body.Reason)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, completion)
}

func (s *Server) handleUpdateCompletion(c *gin.Context) {
	var input ledger.UpdateInput
	if !s.decode(c, &input) {
		return
	}
	completion, err := s.ledger.Update(c.Param("taskID"), c.Param("date"), input)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, completion)
}

func (s *Server) handleBulkUpdate(c *gin.Context) {
	var body struct {
		Items []ledger.BulkItem `json:"items"`
	}
	if !s.decode(c, &body) {
		return
	}
	if len(body.Items) == 0 {
		s.fail(c, errors.Validation("items", "at least one item is required"))
		return
	}
	updated, err := s.ledger.BulkUpdate(c.Param("date"), body.Items)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, map[string]int{"updated": updated})
}

func (s *Server) handleGetLog(c *gin.Context) {
	log, err := s.ledger.EnsureDailyLog(c.Param("date"))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, log)
}

func (s *Server) handlePatchLog(c *gin.Context) {
	var input ledger.DailyLogInput
	if !s.decode(c, &input) {
		return
	}
	log, err := s.ledger.UpdateDailyLog(c.Param("date"), input)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, log)
}

// --- catalog ---

func (s *Server) handleListCategories(c *gin.Context) {
	categories, err := s.catalog.ListCategories(c.Query("all") == "true")
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, categories)
}

func (s *Server) handleCreateCategory(c *gin.Context) {
	var category models.RoutineCategory
	if !s.decode(c, &category) {
		return
	}
	created, err := s.catalog.CreateCategory(category)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusCreated, created)
}

func (s *Server) handleListTasks(c *gin.Context) {
	if categoryID := c.Query("category"); categoryID != "" {
		tasks, err := s.catalog.ListTasksByCategory(categoryID)
		if err != nil {
			s.fail(c, err)
			return
		}
		s.respond(c, http.StatusOK, tasks)
		return
	}
	tasks, err := s.catalog.ListTasks(c.Query("all") == "true")
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var task models.RoutineTask
	if !s.decode(c, &task) {
		return
	}
	created, err := s.catalog.CreateTask(task)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusCreated, created)
}

func (s *Server) handleGetTask(c *gin.Context) {
	task, err := s.catalog.GetTask(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, task)
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var task models.RoutineTask
	if !s.decode(c, &task) {
		return
	}
	task.ID = c.Param("id")
	updated, err := s.catalog.UpdateTask(task)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, updated)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.catalog.DeleteTask(c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, map[string]string{"id": c.Param("id")})
}

func (s *Server) handleRestoreTask(c *gin.Context) {
	task, err := s.catalog.RestoreTask(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, task)
}

// --- reading ---

func (s *Server) handleListBooks(c *gin.Context) {
	books, err := s.store.GetAllBooks(c.Query("status"))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, books)
}

func (s *Server) handleCreateBook(c *gin.Context) {
	var book models.Book
	if !s.decode(c, &book) {
		return
	}
	created, err := s.reading.AddBook(book)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusCreated, created)
}

func (s *Server) handleGetBook(c *gin.Context) {
	book, err := s.store.GetBook(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, book)
}

func (s *Server) handleUpdateBook(c *gin.Context) {
	var book models.Book
	if !s.decode(c, &book) {
		return
	}
	book.ID = c.Param("id")
	updated, err := s.reading.UpdateBook(book)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, updated)
}

func (s *Server) handleBookProgress(c *gin.Context) {
	var body struct {
		Page int `json:"page"`
	}
	if !s.decode(c, &body) {
		return
	}
	book, err := s.reading.UpdateProgress(c.Param("id"), body.Page)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, book)
}

func (s *Server) handleStartBook(c *gin.Context) {
	book, err := s.reading.StartBook(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, book)
}

func (s *Server) handleCompleteBook(c *gin.Context) {
	book, err := s.reading.CompleteBook(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, book)
}

// sessionResult pairs a logged session with the book state it produced.
type sessionResult struct {
	Session models.ReadingSession `json:"session"`
	Book    models.Book           `json:"book"`
}

func (s *Server) handleLogSession(c *gin.Context) {
	var input reading.SessionInput
	if !s.decode(c, &input) {
		return
	}
	input.BookID = c.Param("id")
	session, book, err := s.reading.LogSession(input)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusCreated, sessionResult{Session: session, Book: book})
}

func (s *Server) handleQuickLog(c *gin.Context) {
	var body struct {
		BookID  string `json:"book_id"`
		Date    string `json:"date"`
		Minutes int    `json:"minutes"`
		Pages   int    `json:"pages"`
	}
	if !s.decode(c, &body) {
		return
	}
	session, book, err := s.reading.QuickLog(body.BookID, body.Date, body.Minutes, body.Pages)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusCreated, sessionResult{Session: session, Book: book})
}

func (s *Server) handleBookPace(c *gin.Context) {
	asOf := c.Query("as_of")
	if asOf == "" {
		asOf = utils.FormatDate(s.reading.Now())
	}
	pace, err := s.reading.BookPace(c.Param("id"), asOf)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, pace)
}

func (s *Server) handleBookStreak(c *gin.Context) {
	asOf := c.Query("as_of")
	if asOf == "" {
		asOf = utils.FormatDate(s.reading.Now())
	}
	streak, err := s.reading.BookStreak(c.Param("id"), asOf)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, map[string]any{"book_id": c.Param("id"), "as_of": asOf, "streak": streak})
}

func (s *Server) handleReadingStreak(c *gin.Context) {
	asOf := c.Query("as_of")
	if asOf == "" {
		asOf = utils.FormatDate(s.reading.Now())
	}
	streak, err := s.reading.Streak(asOf)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, map[string]any{"as_of": asOf, "streak": streak})
}

// --- analytics ---

func (s *Server) handleDailyAnalytics(c *gin.Context) {
	summary, err := s.metrics.Summarize(c.Param("date"))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, summary)
}

func (s *Server) handleRangeAnalytics(c *gin.Context) {
	report, err := s.metrics.Analyze(c.Query("start"), c.Query("end"))
	if err != nil {
		s.fail(c, err)
		return
	}

	section := c.Query("section")
	if section == "" {
		s.respond(c, http.StatusOK, report)
		return
	}
	part, err := reportSection(report, section)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, part)
}

// reportSection carves one named piece out of a full report, so clients can
// fetch a single panel without the rest of the payload.
func reportSection(report metrics.Report, name string) (any, error) {
	switch name {
	case "overview":
		return report.Overview, nil
	case "daily":
		return report.Daily, nil
	case "trends":
		return map[string]metrics.MovingAverage{
			"completion":   report.CompletionTrend,
			"quality":      report.QualityTrend,
			"satisfaction": report.SatisfactionTrend,
			"excellence":   report.ExcellenceTrend,
		}, nil
	case "categories":
		return report.Categories, nil
	case "tasks":
		return map[string][]metrics.TaskInsight{
			"top_performers":    report.TopPerformers,
			"needs_improvement": report.NeedsImprovement,
		}, nil
	case "streaks":
		return report.Streaks, nil
	case "goals":
		return report.Goals, nil
	case "energy":
		return report.Energy, nil
	case "productivity":
		return report.Productivity, nil
	case "weekdays":
		return report.Weekdays, nil
	case "reading":
		return report.Reading, nil
	default:
		return nil, errors.Validation("section", fmt.Sprintf("unknown report section %q", name))
	}
}

// dashboardPayload is the aggregate view a front end renders in one request:
// today's ledger and summary, a trailing week of trend data, and the active
// bookshelf.
type dashboardPayload struct {
	Date            string                `json:"date"`
	Day             ledger.DayView        `json:"day"`
	Summary         metrics.DaySummary    `json:"summary"`
	Week            metrics.Overview      `json:"week"`
	CompletionTrend metrics.MovingAverage `json:"completion_trend"`
	Reading         []models.Book         `json:"currently_reading"`
	ReadingStreak   int                   `json:"reading_streak"`
}

func (s *Server) handleDashboard(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = utils.FormatDate(s.ledger.Now())
	}
	day, err := utils.ParseDate(date)
	if err != nil {
		s.fail(c, errors.Validation("date", fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date)))
		return
	}

	view, err := s.ledger.EnsureForDate(date)
	if err != nil {
		s.fail(c, err)
		return
	}
	summary, err := s.metrics.Summarize(date)
	if err != nil {
		s.fail(c, err)
		return
	}
	report, err := s.metrics.Analyze(utils.FormatDate(day.AddDate(0, 0, -6)), date)
	if err != nil {
		s.fail(c, err)
		return
	}
	books, err := s.store.GetAllBooks(string(models.BookReading))
	if err != nil {
		s.fail(c, err)
		return
	}
	streak, err := s.reading.Streak(date)
	if err != nil {
		s.fail(c, err)
		return
	}

	s.respond(c, http.StatusOK, dashboardPayload{
		Date:            date,
		Day:             view,
		Summary:         summary,
		Week:            report.Overview,
		CompletionTrend: report.CompletionTrend,
		Reading:         books,
		ReadingStreak:   streak,
	})
}

// --- reviews ---

func (s *Server) handleListReviews(c *gin.Context) {
	reviews, err := s.review.List()
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, reviews)
}

func (s *Server) handleGenerateReview(c *gin.Context) {
	var body struct {
		Year int    `json:"year"`
		Week int    `json:"week"`
		Date string `json:"date"`
	}
	if !s.decode(c, &body) {
		return
	}

	var (
		result models.WeeklyReview
		err    error
	)
	if body.Date != "" {
		result, err = s.review.GenerateForDate(body.Date)
	} else {
		result, err = s.review.Generate(body.Year, body.Week)
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusCreated, result)
}

func (s *Server) reviewKey(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		s.fail(c, errors.Validation("year", "must be a number"))
		return 0, 0, false
	}
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil {
		s.fail(c, errors.Validation("week", "must be a number"))
		return 0, 0, false
	}
	return year, week, true
}

func (s *Server) handleGetReview(c *gin.Context) {
	year, week, ok := s.reviewKey(c)
	if !ok {
		return
	}
	result, err := s.review.Get(year, week)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, result)
}

func (s *Server) handleReviewNotes(c *gin.Context) {
	year, week, ok := s.reviewKey(c)
	if !ok {
		return
	}
	var body struct {
		Notes string `json:"notes"`
	}
	if !s.decode(c, &body) {
		return
	}
	result, err := s.review.SetNotes(year, week, body.Notes)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, result)
}

// --- export ---

var exportContentTypes = map[export.Format]string{
	export.FormatJSON: "application/json",
	export.FormatCSV:  "text/csv",
	export.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

func (s *Server) handleExport(c *gin.Context) {
	formatParam := c.Query("format")
	if formatParam == "" {
		formatParam = "json"
	}
	format, err := export.ParseFormat(formatParam)
	if err != nil {
		s.fail(c, err)
		return
	}
	start, end := c.Query("start"), c.Query("end")

	// Buffer so a failed export still produces a clean error response.
	var buf bytes.Buffer
	if err := s.export.Export(&buf, format, start, end); err != nil {
		s.fail(c, err)
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(format, start, end)))
	c.Data(http.StatusOK, exportContentTypes[format], buf.Bytes())
}
