package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/nba-stats-preprocess/internal/platform/logging"
)

// Config stores runtime configuration for the preprocessor.
type Config struct {
	AppEnv         string `validate:"oneof=dev stage prod"`
	ServiceName    string `validate:"required"`
	ServiceVersion string
	LogLevel       logging.Level

	Pipeline Pipeline

	UptraceEnabled             bool
	UptraceDSN                 string `validate:"required_if=UptraceEnabled true"`
	UptraceLogsEnabled         bool
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string `validate:"required_if=PyroscopeEnabled true"`
	PyroscopeAppName           string `validate:"required_if=PyroscopeEnabled true"`
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration `validate:"gt=0"`
}

// Pipeline is handed to every preprocessing stage.
type Pipeline struct {
	OutputDir      string `validate:"required"`
	ArchivePath    string `validate:"required"`
	Inputs         InputFiles
	Outputs        OutputFiles
	Seasons        SeasonRange
	JoinKeys       []string `validate:"required,min=1,unique,dive,required"`
	DroppedColumns []string `validate:"dive,required"`
}

type InputFiles struct {
	Totals   string `validate:"required,nefield=Shooting"`
	Shooting string `validate:"required"`
}

type OutputFiles struct {
	Players    string `validate:"required"`
	Career     string `validate:"required"`
	Seasonal   string `validate:"required"`
	Alltime    string `validate:"required"`
	Positional string `validate:"required"`
}

// Names lists the output files in export order.
func (o OutputFiles) Names() []string {
	return []string{o.Players, o.Career, o.Seasonal, o.Alltime, o.Positional}
}

// SeasonRange is inclusive on both ends.
type SeasonRange struct {
	Min int `validate:"gt=0"`
	Max int `validate:"gtefield=Min"`
}

func (r SeasonRange) Contains(season int) bool {
	return season >= r.Min && season <= r.Max
}

func DefaultPipeline() Pipeline {
	return Pipeline{
		OutputDir:   "output",
		ArchivePath: "nba-aba-baa-stats.zip",
		Inputs: InputFiles{
			Totals:   "Player Totals.csv",
			Shooting: "Player Shooting.csv",
		},
		Outputs: OutputFiles{
			Players:    "players.json",
			Career:     "alltime.json",
			Seasonal:   "averages_season.json",
			Alltime:    "averages_alltime.json",
			Positional: "averages_position.json",
		},
		Seasons:        SeasonRange{Min: 2013, Max: 2024},
		JoinKeys:       []string{"player", "player_id", "season", "tm"},
		DroppedColumns: []string{"lg", "experience", "birth_year"},
	}
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	pipeline, err := loadPipeline()
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}

	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                strings.TrimSpace(getEnv("APP_SERVICE_NAME", "nba-stats-preprocess")),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		LogLevel:                   logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		Pipeline:                   pipeline,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		UptraceLogsEnabled:         uptraceLogsEnabled,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadPipeline() (Pipeline, error) {
	p := DefaultPipeline()

	p.OutputDir = strings.TrimSpace(getEnv("PREPROCESS_OUTPUT_DIR", p.OutputDir))
	p.ArchivePath = strings.TrimSpace(getEnv("PREPROCESS_ARCHIVE_PATH", p.ArchivePath))
	p.Inputs.Totals = getEnv("PREPROCESS_TOTALS_FILE", p.Inputs.Totals)
	p.Inputs.Shooting = getEnv("PREPROCESS_SHOOTING_FILE", p.Inputs.Shooting)
	p.Outputs.Players = getEnv("PREPROCESS_PLAYERS_JSON", p.Outputs.Players)
	p.Outputs.Career = getEnv("PREPROCESS_CAREER_JSON", p.Outputs.Career)
	p.Outputs.Seasonal = getEnv("PREPROCESS_SEASONAL_JSON", p.Outputs.Seasonal)
	p.Outputs.Alltime = getEnv("PREPROCESS_ALLTIME_JSON", p.Outputs.Alltime)
	p.Outputs.Positional = getEnv("PREPROCESS_POSITIONAL_JSON", p.Outputs.Positional)

	seasonMin, err := getEnvAsInt("PREPROCESS_SEASON_MIN", p.Seasons.Min)
	if err != nil {
		return Pipeline{}, fmt.Errorf("parse PREPROCESS_SEASON_MIN: %w", err)
	}
	seasonMax, err := getEnvAsInt("PREPROCESS_SEASON_MAX", p.Seasons.Max)
	if err != nil {
		return Pipeline{}, fmt.Errorf("parse PREPROCESS_SEASON_MAX: %w", err)
	}
	p.Seasons = SeasonRange{Min: seasonMin, Max: seasonMax}

	if raw, ok := os.LookupEnv("PREPROCESS_JOIN_KEYS"); ok && strings.TrimSpace(raw) != "" {
		p.JoinKeys = splitCSV(raw)
	}
	if raw, ok := os.LookupEnv("PREPROCESS_DROP_COLUMNS"); ok {
		p.DroppedColumns = splitCSV(raw)
	}

	return p, nil
}

// Validate checks struct constraints plus rules the tags cannot express.
func Validate(cfg Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return checkFileNames(cfg.Pipeline)
}

func ValidatePipeline(p Pipeline) error {
	if err := validator.New().Struct(p); err != nil {
		return fmt.Errorf("invalid pipeline config: %w", err)
	}
	return checkFileNames(p)
}

func checkFileNames(p Pipeline) error {
	seen := make(map[string]struct{}, 5)
	for _, name := range p.Outputs.Names() {
		if _, dup := seen[name]; dup {
			return fmt.Errorf("invalid pipeline config: output file %q is used more than once", name)
		}
		if name == p.Inputs.Totals || name == p.Inputs.Shooting {
			return fmt.Errorf("invalid pipeline config: output file %q collides with an input file", name)
		}
		seen[name] = struct{}{}
	}

	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
