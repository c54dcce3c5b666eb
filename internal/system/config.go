package system

import (
	"encoding/json"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-research/internal/dates"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/internal/version"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DataSourceType selects the DataSource adapter a pipeline reads from.
type DataSourceType string

const (
	DataSourceCSV    DataSourceType = "csv"
	DataSourceDuckDB DataSourceType = "duckdb"
)

// Config is the immutable configuration of a pipeline run. It is built once, before
// the System, and never changed afterwards.
type Config struct {
	Version           string                     `yaml:"version" json:"version,omitempty" jsonschema:"title=Version,description=Toolkit version the configuration was written for"`
	FloorDateDiffDays int                        `yaml:"floor_date_diff_days" json:"floor_date_diff_days" jsonschema:"title=Floor Date Difference,description=Smallest absolute distance in calendar days between the price and carry contract expiries,minimum=0,default=20" validate:"gte=0"`
	RollYears         int                        `yaml:"roll_years" json:"roll_years" jsonschema:"title=Roll Years,description=Number of yearly boundaries a rolling fit looks back over,minimum=1,default=20" validate:"gte=1"`
	DateMethod        dates.DateMethod           `yaml:"date_method" json:"date_method" jsonschema:"title=Date Method,description=How fit windows relate to the periods they are applied in" validate:"oneof=in_sample expanding rolling"`
	DataPath          string                     `yaml:"data_path" json:"data_path" jsonschema:"title=Data Path,description=Folder holding the instrument files"`
	DataSourceType    DataSourceType             `yaml:"data_source" json:"data_source" jsonschema:"title=Data Source,description=Adapter used to read the instrument files" validate:"oneof=csv duckdb"`
	Instruments       []types.InstrumentKey      `yaml:"instruments" json:"instruments" jsonschema:"title=Instruments,description=Instruments to process. Empty means every instrument in the data source" validate:"dive,required"`
	LogLevel          string                     `yaml:"log_level" json:"log_level" jsonschema:"title=Log Level,enum=debug,enum=info,enum=warn,enum=error" validate:"omitempty,oneof=debug info warn error"`
	StartDate         optional.Option[time.Time] `yaml:"start_date" json:"start_date" jsonschema:"title=Start Date,description=Optional first date of history used for fitting"`
	EndDate           optional.Option[time.Time] `yaml:"end_date" json:"end_date" jsonschema:"title=End Date,description=Optional last date of history used for fitting"`
}

// DefaultConfig returns the configuration used when a field is not set.
func DefaultConfig() Config {
	return Config{
		Version:           "",
		FloorDateDiffDays: dates.DefaultFloorDateDiffDays,
		RollYears:         dates.DefaultRollYears,
		DateMethod:        dates.DateMethodExpanding,
		DataPath:          "",
		DataSourceType:    DataSourceCSV,
		Instruments:       nil,
		LogLevel:          "info",
		StartDate:         optional.None[time.Time](),
		EndDate:           optional.None[time.Time](),
	}
}

// UnmarshalYAML implements custom unmarshaling for Config. Fields that are absent keep
// their default values.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type rawConfig struct {
		Version           string                `yaml:"version"`
		FloorDateDiffDays *int                  `yaml:"floor_date_diff_days"`
		RollYears         *int                  `yaml:"roll_years"`
		DateMethod        *string               `yaml:"date_method"`
		DataPath          string                `yaml:"data_path"`
		DataSourceType    *string               `yaml:"data_source"`
		Instruments       []types.InstrumentKey `yaml:"instruments"`
		LogLevel          *string               `yaml:"log_level"`
		StartDate         *time.Time            `yaml:"start_date"`
		EndDate           *time.Time            `yaml:"end_date"`
	}

	var raw rawConfig
	if err := value.Decode(&raw); err != nil {
		return err
	}

	config := DefaultConfig()
	if raw.FloorDateDiffDays != nil {
		config.FloorDateDiffDays = *raw.FloorDateDiffDays
	}

	if raw.RollYears != nil {
		config.RollYears = *raw.RollYears
	}

	if raw.DateMethod != nil {
		config.DateMethod = dates.DateMethod(*raw.DateMethod)
	}

	if raw.DataSourceType != nil {
		config.DataSourceType = DataSourceType(*raw.DataSourceType)
	}

	if raw.LogLevel != nil {
		config.LogLevel = *raw.LogLevel
	}

	if raw.StartDate != nil {
		config.StartDate = optional.Some(*raw.StartDate)
	}

	if raw.EndDate != nil {
		config.EndDate = optional.Some(*raw.EndDate)
	}

	config.Version = raw.Version
	config.DataPath = raw.DataPath
	config.Instruments = raw.Instruments

	*c = config

	return nil
}

// Validate checks the configuration. Every failure is a configuration error.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if err := version.CheckConfigCompatibility(version.GetVersion(), c.Version); err != nil {
		return err
	}

	if c.StartDate.IsSome() && c.EndDate.IsSome() && !c.StartDate.Unwrap().Before(c.EndDate.Unwrap()) {
		return errors.Newf(errors.ErrCodeInvalidConfiguration,
			"start_date %s must be before end_date %s", c.StartDate.Unwrap(), c.EndDate.Unwrap())
	}

	return nil
}

// HistoryFilter trims a series to the configured start and end dates.
func (c Config) HistoryFilter(s types.Series) types.Series {
	if s.IsEmpty() || (c.StartDate.IsNone() && c.EndDate.IsNone()) {
		return s
	}

	start := s.Start()
	if c.StartDate.IsSome() {
		start = c.StartDate.Unwrap()
	}

	end := s.End()
	if c.EndDate.IsSome() {
		end = c.EndDate.Unwrap()
	}

	return s.Between(start, end)
}

// ParseConfig parses and validates a YAML configuration.
func ParseConfig(content []byte) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(content, &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// LoadConfig reads, parses and validates a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	return ParseConfig(content)
}

// GenerateSchema generates a JSON schema for the Config
func (c *Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}

			if strings.HasSuffix(t.String(), "dates.DateMethod") {
				enum := make([]any, 0, len(dates.AllDateMethods))
				for _, m := range dates.AllDateMethods {
					enum = append(enum, string(m))
				}

				return &jsonschema.Schema{Type: "string", Enum: enum}
			}

			if strings.HasSuffix(t.String(), "system.DataSourceType") {
				return &jsonschema.Schema{Type: "string", Enum: []any{string(DataSourceCSV), string(DataSourceDuckDB)}}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)

	schema.Title = "research-config"
	schema.Description = "Configuration schema for a futures research pipeline run"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the Config
func (c *Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
