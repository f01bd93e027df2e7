package constants

const (
	AppName            = "cadence"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/cadence/cadence.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// EnvConnectionString is checked for a PostgreSQL connection string before
	// falling back to the OS keyring.
	EnvConnectionString = "CADENCE_DB_CONNECTION"
)

// Excellence checklist thresholds. A day counts a target as met when the
// corresponding daily metric clears its threshold.
const (
	TargetCompletionRate  = 85.0
	TargetQualityScore    = 8.0
	TargetReadingMinutes  = 30
	TargetEnergyChangeMin = -1
	TargetSatisfaction    = 8
	TargetCount           = 6
)

// Weekly review composite weights. They sum to 1.0.
const (
	WeightCompletion   = 0.25
	WeightQuality      = 0.20
	WeightReading      = 0.15
	WeightExercise     = 0.15
	WeightSatisfaction = 0.10
	WeightEnergy       = 0.10
	WeightSleep        = 0.05
)

// Weekly consistency thresholds (days out of 7).
const (
	ConsistentExerciseDays = 5
	ConsistentReadingDays  = 6
	ConsistentSleepDays    = 5
	ConsistentSleepQuality = 7
	ConsistentReadingMin   = 30
)
