package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/mholloway/cadence/internal/ledger"
	"github.com/mholloway/cadence/internal/utils"
)

type LogCmd struct {
	Show LogShowCmd `cmd:"" default:"withargs" help:"Show the daily log."`
	Edit LogEditCmd `cmd:"" help:"Edit the daily log interactively."`
}

type LogShowCmd struct {
	Date string `arg:"" optional:"" help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *LogShowCmd) Run(ctx *Context) error {
	date, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}
	log, err := ctx.Ledger.EnsureDailyLog(date)
	if err != nil {
		return err
	}

	fmt.Printf("Daily log for %s:\n", log.Date)
	if log.SleepTime != "" || log.WakeTime != "" {
		fmt.Printf("  Sleep: %s – %s", log.SleepTime, log.WakeTime)
		if log.SleepQuality != nil {
			fmt.Printf(" (quality %d/10)", *log.SleepQuality)
		}
		fmt.Println()
	}
	printScore := func(label string, v *int) {
		if v != nil {
			fmt.Printf("  %s: %d/10\n", label, *v)
		}
	}
	printScore("Energy (morning)", log.EnergyMorning)
	printScore("Energy (afternoon)", log.EnergyAfternoon)
	printScore("Energy (evening)", log.EnergyEvening)
	if log.ExerciseCompleted {
		line := "  Exercise: done"
		if log.ExerciseType != "" {
			line += " (" + log.ExerciseType
			if log.ExerciseDurationMin != nil {
				line += fmt.Sprintf(", %dm", *log.ExerciseDurationMin)
			}
			line += ")"
		}
		fmt.Println(line)
	}
	printScore("Focus", log.FocusQuality)
	printScore("Satisfaction", log.Satisfaction)
	printScore("Stress", log.Stress)
	if log.Reflection != "" {
		fmt.Printf("  Reflection: %s\n", log.Reflection)
	}
	if log.TomorrowPriorities != "" {
		fmt.Printf("  Tomorrow: %s\n", log.TomorrowPriorities)
	}

	return nil
}

type LogEditCmd struct {
	Date string `arg:"" optional:"" help:"Date in YYYY-MM-DD format (default: today)."`
}

// logFormModel holds the string-typed form state before conversion.
type logFormModel struct {
	SleepTime     string
	WakeTime      string
	SleepQuality  string
	EnergyMorning string
	EnergyEvening string
	Exercise      bool
	ExerciseType  string
	Satisfaction  string
	Stress        string
	Reflection    string
}

func (c *LogEditCmd) Run(ctx *Context) error {
	date, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}
	log, err := ctx.Ledger.EnsureDailyLog(date)
	if err != nil {
		return err
	}

	fm := logFormModel{
		SleepTime:     log.SleepTime,
		WakeTime:      log.WakeTime,
		SleepQuality:  scoreString(log.SleepQuality),
		EnergyMorning: scoreString(log.EnergyMorning),
		EnergyEvening: scoreString(log.EnergyEvening),
		Exercise:      log.ExerciseCompleted,
		ExerciseType:  log.ExerciseType,
		Satisfaction:  scoreString(log.Satisfaction),
		Stress:        scoreString(log.Stress),
		Reflection:    log.Reflection,
	}

	if err := newLogForm(&fm, date).Run(); err != nil {
		return err
	}

	input := ledger.DailyLogInput{
		SleepTime:         &fm.SleepTime,
		WakeTime:          &fm.WakeTime,
		SleepQuality:      parseScore(fm.SleepQuality),
		EnergyMorning:     parseScore(fm.EnergyMorning),
		EnergyEvening:     parseScore(fm.EnergyEvening),
		ExerciseCompleted: &fm.Exercise,
		ExerciseType:      &fm.ExerciseType,
		Satisfaction:      parseScore(fm.Satisfaction),
		Stress:            parseScore(fm.Stress),
		Reflection:        &fm.Reflection,
	}
	if _, err := ctx.Ledger.UpdateDailyLog(date, input); err != nil {
		return err
	}

	fmt.Printf("Saved daily log for %s\n", date)
	return nil
}

func newLogForm(fm *logFormModel, date string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Sleep time (HH:MM)").
				Value(&fm.SleepTime).
				Validate(validateOptionalTime),
			huh.NewInput().
				Title("Wake time (HH:MM)").
				Value(&fm.WakeTime).
				Validate(validateOptionalTime),
			huh.NewInput().
				Title("Sleep quality (1-10)").
				Value(&fm.SleepQuality).
				Validate(validateOptionalScore),
			huh.NewInput().
				Title("Morning energy (1-10)").
				Value(&fm.EnergyMorning).
				Validate(validateOptionalScore),
			huh.NewInput().
				Title("Evening energy (1-10)").
				Value(&fm.EnergyEvening).
				Validate(validateOptionalScore),
			huh.NewConfirm().
				Title("Exercised today?").
				Value(&fm.Exercise),
			huh.NewInput().
				Title("Exercise type").
				Value(&fm.ExerciseType),
			huh.NewInput().
				Title("Satisfaction (1-10)").
				Value(&fm.Satisfaction).
				Validate(validateOptionalScore),
			huh.NewInput().
				Title("Stress (1-10)").
				Value(&fm.Stress).
				Validate(validateOptionalScore),
			huh.NewText().
				Title("Reflection on "+date).
				Value(&fm.Reflection),
		),
	).WithTheme(huh.ThemeDracula())
}

func validateOptionalTime(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := utils.ParseTime(s); err != nil {
		return fmt.Errorf("expected HH:MM")
	}
	return nil
}

func validateOptionalScore(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if i < 1 || i > 10 {
		return fmt.Errorf("score must be 1-10")
	}
	return nil
}

func scoreString(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func parseScore(s string) *int {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &i
}
