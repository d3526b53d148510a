package journal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tailscale/hujson"
)

// Config holds all engine configuration.
type Config struct {
	// From config files (serialized)
	Vault      string            `json:"vault"`
	Calendar   string            `json:"calendar,omitempty"`
	Categories string            `json:"categories,omitempty"`
	Indent     int               `json:"indent,omitempty"`
	Months     []string          `json:"months,omitempty"`
	Weekdays   map[string]string `json:"weekdays,omitempty"`

	// Resolved paths (computed, not serialized)
	EffectiveCwd  string `json:"-"` // Absolute working directory (from -C flag or os.Getwd)
	VaultAbs      string `json:"-"` // Absolute path to the vault directory
	CalendarAbs   string `json:"-"` // Absolute path to the work calendar file
	CategoriesAbs string `json:"-"` // Absolute path to the categories file

	// Sources tracks which config files were loaded (for diagnostics)
	Sources ConfigSources `json:"-"`
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Vault:      ".",
		Calendar:   "work_calendar.yaml",
		Categories: "categories.yaml",
		Indent:     2,
	}
}

// ConfigFileName is the default config file name.
const ConfigFileName = ".brackets.json"

// getGlobalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/brackets/config.json if set, otherwise
// ~/.config/brackets/config.json. Returns empty string if the home
// directory cannot be determined.
func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "brackets", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "brackets", "config.json")
	}

	return ""
}

// LoadConfigInput holds the inputs for LoadConfig.
type LoadConfigInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	VaultOverride   string            // --vault flag value; empty means no override
	Env             map[string]string // environment variables
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/brackets/config.json or $XDG_CONFIG_HOME/brackets/config.json)
// 3. Project config file at default location (.brackets.json, if exists)
// 4. Explicit config file via configPath (if non-empty)
// 5. CLI overrides.
//
// All paths in the returned Config are resolved to absolute paths.
func LoadConfig(input LoadConfigInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := DefaultConfig()

	globalCfg, globalPath, err := loadGlobalConfig(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalPath
	cfg = mergeConfig(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = mergeConfig(cfg, projectCfg)

	if input.VaultOverride != "" {
		cfg.Vault = input.VaultOverride
	}

	validateErr := validateConfig(cfg)
	if validateErr != nil {
		return Config{}, validateErr
	}

	cfg.EffectiveCwd = workDir

	if filepath.IsAbs(cfg.Vault) {
		cfg.VaultAbs = cfg.Vault
	} else {
		cfg.VaultAbs = filepath.Join(workDir, cfg.Vault)
	}

	cfg.CalendarAbs = filepath.Join(cfg.VaultAbs, cfg.Calendar)
	if filepath.IsAbs(cfg.Calendar) {
		cfg.CalendarAbs = cfg.Calendar
	}

	cfg.CategoriesAbs = filepath.Join(cfg.VaultAbs, cfg.Categories)
	if filepath.IsAbs(cfg.Categories) {
		cfg.CategoriesAbs = cfg.Categories
	}

	return cfg, nil
}

// loadGlobalConfig loads the global user config file if it exists.
// Returns the config, the path if loaded, and any error.
func loadGlobalConfig(env map[string]string) (Config, string, error) {
	globalCfgPath := getGlobalConfigPath(env)
	if globalCfgPath == "" {
		return Config{}, "", nil
	}

	globalCfg, explicitEmpty, loaded, err := loadConfigFile(globalCfgPath, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	if explicitEmpty["vault"] {
		return Config{}, "", fmt.Errorf("%w %s: %w", ErrConfigInvalid, globalCfgPath, ErrVaultEmpty)
	}

	return globalCfg, globalCfgPath, nil
}

// loadProjectConfig loads the project config file (.brackets.json) or an
// explicit config file. Returns the config, the path if loaded, and any error.
func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	var cfgFile string

	var mustExist bool

	if configPath != "" {
		// Explicit config file - must exist
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true

		// Check existence first to provide a clear "not found" error
		_, statErr := os.Stat(cfgFile)
		if statErr != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	} else {
		// Default project config file - optional
		cfgFile = filepath.Join(workDir, ConfigFileName)
		mustExist = false
	}

	fileCfg, explicitEmpty, loaded, err := loadConfigFile(cfgFile, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	if explicitEmpty["vault"] {
		return Config{}, "", fmt.Errorf("%w %s: %w", ErrConfigInvalid, cfgFile, ErrVaultEmpty)
	}

	return fileCfg, cfgFile, nil
}

// loadConfigFile loads a config file. If mustExist is false, missing files
// return zero config. Returns the config, a map of explicitly empty fields,
// whether the file was loaded, and any error.
func loadConfigFile(path string, mustExist bool) (Config, map[string]bool, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, nil, false, nil
		}

		if mustExist {
			return Config{}, nil, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, nil, false, nil
	}

	cfg, explicitEmpty, parseErr := parseConfig(data)
	if parseErr != nil {
		return Config{}, nil, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return cfg, explicitEmpty, true, nil
}

func parseConfig(data []byte) (Config, map[string]bool, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, nil, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	// Unknown keys are rejected so typos fail at load time instead of
	// silently falling back to defaults.
	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()

	unmarshalErr := dec.Decode(&cfg)
	if unmarshalErr != nil {
		return Config{}, nil, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	// Check which fields were explicitly set to empty
	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	explicitEmpty := make(map[string]bool)

	if val, exists := raw["vault"]; exists {
		if str, ok := val.(string); ok && str == "" {
			explicitEmpty["vault"] = true
		}
	}

	return cfg, explicitEmpty, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.Vault != "" {
		base.Vault = overlay.Vault
	}

	if overlay.Calendar != "" {
		base.Calendar = overlay.Calendar
	}

	if overlay.Categories != "" {
		base.Categories = overlay.Categories
	}

	if overlay.Indent != 0 {
		base.Indent = overlay.Indent
	}

	if overlay.Months != nil {
		base.Months = overlay.Months
	}

	if overlay.Weekdays != nil {
		base.Weekdays = overlay.Weekdays
	}

	return base
}

var weekdayKeys = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

func validateConfig(cfg Config) error {
	if cfg.Vault == "" {
		return ErrVaultEmpty
	}

	if cfg.Indent < 1 || cfg.Indent > 8 {
		return fmt.Errorf("%w: %d", ErrBadIndent, cfg.Indent)
	}

	if cfg.Months != nil && len(cfg.Months) != 12 {
		return fmt.Errorf("%w: got %d entries", ErrBadMonths, len(cfg.Months))
	}

	for i, name := range cfg.Months {
		if name == "" {
			return fmt.Errorf("%w: entry %d is empty", ErrBadMonths, i+1)
		}
	}

	for key, name := range cfg.Weekdays {
		if _, ok := weekdayKeys[key]; !ok {
			return fmt.Errorf("%w: unknown weekday %q", ErrBadWeekdays, key)
		}

		if name == "" {
			return fmt.Errorf("%w: %s is empty", ErrBadWeekdays, key)
		}

		// Day headings put the weekday name before the day number, so a
		// space inside the name would be unparseable.
		if strings.Contains(name, " ") {
			return fmt.Errorf("%w: %s contains a space", ErrBadWeekdays, key)
		}
	}

	return nil
}

// FormatConfig renders the serialized config fields as indented JSON.
func FormatConfig(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format config: %w", err)
	}

	return string(data), nil
}

// MonthName returns the display name for a month, honoring the config
// override table.
func (c *Config) MonthName(m time.Month) string {
	if len(c.Months) == 12 {
		return c.Months[m-1]
	}

	return defaultMonthNames[m-1]
}

// WeekdayName returns the display name for a weekday, honoring the config
// override table.
func (c *Config) WeekdayName(d time.Weekday) string {
	if name, ok := c.Weekdays[strings.ToLower(d.String())]; ok && name != "" {
		return name
	}

	return defaultWeekdayNames[d]
}

// MonthTitleLine returns the exact title line shared by month-topics
// documents and monthly rollups, e.g. "# July Topics ☀️".
func (c *Config) MonthTitleLine(m time.Month) string {
	return fmt.Sprintf("# %s Topics %s", c.MonthName(m), SeasonEmoji(m))
}

// indentUnit returns the effective indent width, defaulting to 2 so a
// zero-value Config is usable in pure transformations.
func (c *Config) indentUnit() int {
	if c.Indent > 0 {
		return c.Indent
	}

	return 2
}
