// =============================================================================
// Express Reconcile - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing all configuration files.
// It handles both the main application configuration and customer-specific
// dialect configurations.
//
// CONFIGURATION FILES:
//   1. Main Config (config.yaml): Global application settings
//   2. Dialect Configs (configs/*.yaml): Per-customer export dialect rules
//
// A dialect captures everything that varies between the business customers
// whose exports this tool reconciles: the terminal marker spelling, where the
// grand total sits on the terminal row, how strictly quantity tokens are
// enforced, which stock-export columns matter, and the recognised unit
// suffix vocabulary. New customers are added by dropping a YAML file into
// the configs directory; no code changes are required.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
// This is loaded from the main config.yaml file.
type MainConfig struct {
	// InputDir is the directory scanned for export pairs in batch mode.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory where summary workbooks are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir is where processed exports are moved after a
	// successful run.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// ConfigsDir is the directory containing dialect configurations.
	// Default: "./configs"
	ConfigsDir string `yaml:"configs_dir"`

	// LogFile is the path to the application log file.
	// Default: "./logs/reconcile.log"
	LogFile string `yaml:"log_file"`

	// LogLevel controls logging verbosity: "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// OutputNameFormat defines the output workbook file name.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {dialect}   - Dialect code
	//   {name}      - Base name of the sales export
	// Default: "{name}_{timestamp}.xlsx"
	OutputNameFormat string `yaml:"output_name_format"`

	// DefaultDialect is the dialect used when none is named on the command
	// line. Default: "ranyoi"
	DefaultDialect string `yaml:"default_dialect"`

	// MaxConcurrency is the maximum number of export pairs processed
	// concurrently in batch mode. Set to 1 for sequential processing.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// ContinueOnError determines whether batch processing continues when one
	// pair fails.
	// Default: true
	ContinueOnError bool `yaml:"continue_on_error"`
}

// =============================================================================
// DIALECT CONFIGURATION STRUCTURE
// =============================================================================

// SeparatorPolicy selects the behaviour when an export does not contain the
// two horizontal-rule rows that bound its header block.
type SeparatorPolicy string

const (
	// SeparatorFail aborts the run with a format error.
	SeparatorFail SeparatorPolicy = "fail"

	// SeparatorEmpty treats the export as containing no data rows.
	SeparatorEmpty SeparatorPolicy = "empty"
)

// StockColumns identifies which 1-based columns of the stock export hold the
// fields the matcher needs. Different customers export different layouts
// (e.g. columns 2/3/6 versus 2/3/4/5).
type StockColumns struct {
	// Barcode is the column holding the product barcode.
	Barcode int `yaml:"barcode"`

	// Description is the column holding the product description.
	Description int `yaml:"description"`

	// Quantity is the column holding the stock-on-hand figure.
	Quantity int `yaml:"quantity"`

	// Extra lists any further columns carried through to the report,
	// in order.
	Extra []int `yaml:"extra,omitempty"`
}

// ReportDefaults supplies the summary-workbook metadata that the operator can
// override per run with flags.
type ReportDefaults struct {
	// Title is the merged title-row text.
	Title string `yaml:"title"`

	// Branch is the branch number shown in the meta block.
	Branch string `yaml:"branch"`

	// Version is the document version shown in the meta block.
	Version string `yaml:"version"`

	// Timezone is the IANA zone used for the generated date and time cells.
	// Default: "Asia/Bangkok"
	Timezone string `yaml:"timezone"`
}

// DialectConfig holds the export-format rules for one business customer.
type DialectConfig struct {
	// DialectName is the human-readable customer name, used in logs.
	DialectName string `yaml:"dialect_name"`

	// DialectCode is the short code used on the command line and in output
	// file names.
	DialectCode string `yaml:"dialect_code"`

	// TerminalMarker is the literal first token of the grand-total row.
	// Default: "รวมทั้งสิ้น"
	TerminalMarker string `yaml:"terminal_marker"`

	// TotalOffset is the 1-based position of the grand total counted from
	// the END of the terminal row. Export dialects that append trailing
	// annotation columns push the total away from the last position.
	// Default: 1 (last token)
	TotalOffset int `yaml:"total_offset"`

	// StrictQuantities makes a data row with zero recognisable quantity
	// tokens a fatal format error. When false such a row contributes zero.
	// Default: false
	StrictQuantities bool `yaml:"strict_quantities"`

	// MissingSeparatorPolicy selects the behaviour when fewer than two
	// horizontal-rule rows are present: "fail" or "empty".
	// Default: "fail"
	MissingSeparatorPolicy SeparatorPolicy `yaml:"missing_separator_policy"`

	// DropNumericOnlyRows removes extracted rows consisting solely of
	// numeric tokens. These are page-footer artifacts in the stricter
	// export dialects.
	// Default: false
	DropNumericOnlyRows bool `yaml:"drop_numeric_only_rows"`

	// SkipThaiNoiseRows removes rows whose first token contains Thai-script
	// characters during segmentation. Header annotations repeated on every
	// export page start with Thai text; bill identifiers never do.
	// Default: false
	SkipThaiNoiseRows bool `yaml:"skip_thai_noise_rows"`

	// DropFirstBill removes the first collected bill identifier before the
	// list is returned. Some exports emit a header-noise artifact that is
	// collected as a bill boundary ahead of the first real bill.
	// Default: false
	DropFirstBill bool `yaml:"drop_first_bill"`

	// StockColumns maps the stock export layout.
	StockColumns StockColumns `yaml:"stock_columns"`

	// UnitSuffixes overrides the recognised quantity unit vocabulary.
	// When empty the default vocabulary is used.
	UnitSuffixes []string `yaml:"unit_suffixes,omitempty"`

	// Report supplies summary-workbook metadata defaults.
	Report ReportDefaults `yaml:"report"`
}

// =============================================================================
// UNIT SUFFIX VOCABULARY
// =============================================================================

// DefaultUnitSuffixes returns the closed vocabulary of Thai unit words that
// tag quantity tokens in the express export. A token contributes to a row's
// quantity only when it has the shape "<number>.<suffix>" with the suffix
// taken from this list.
func DefaultUnitSuffixes() []string {
	return []string{
		"แพ็ค",    // pack
		"ชิ้น",    // piece
		"กล่อง",   // box
		"ขวด",     // bottle
		"ม้วน",    // roll
		"คู่",     // pair
		"เมตร",    // meter
		"โหล",     // dozen
		"อัน",     // unit
		"ถุง",     // bag
		"ลัง",     // crate
		"แผง",     // strip
		"ใบ",      // sheet
		"ห่อ",     // wrap
		"ซอง",     // sachet
		"กระป๋อง", // can
		"กระปุก",  // jar
		"หลอด",    // tube
		"ตัว",     // item
		"ลูก",     // ball
		"เส้น",    // strand
	}
}

// EffectiveUnitSuffixes returns the dialect's unit vocabulary, falling back
// to the default list when the dialect does not override it.
func (d *DialectConfig) EffectiveUnitSuffixes() []string {
	if len(d.UnitSuffixes) > 0 {
		return d.UnitSuffixes
	}
	return DefaultUnitSuffixes()
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the main configuration from a YAML file, applies
// defaults and validates it.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.ConfigsDir == "" {
		config.ConfigsDir = "./configs"
	}
	if config.LogFile == "" {
		config.LogFile = "./logs/reconcile.log"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{name}_{timestamp}.xlsx"
	}
	if config.DefaultDialect == "" {
		config.DefaultDialect = "ranyoi"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
}

// Validate checks the main configuration and creates any missing working
// directories.
func (c *MainConfig) Validate() error {
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", c.MaxConcurrency)
	}

	dirs := []string{c.InputDir, c.OutputDir, c.ConfigsDir}
	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	return nil
}

// LoadDialects loads all dialect configurations from a directory.
// The returned map is keyed by dialect code.
func LoadDialects(configsDir string) (map[string]*DialectConfig, error) {
	dialects := make(map[string]*DialectConfig)

	files, err := filepath.Glob(filepath.Join(configsDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list dialect files: %w", err)
	}
	ymlFiles, err := filepath.Glob(filepath.Join(configsDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list dialect files: %w", err)
	}
	files = append(files, ymlFiles...)

	for _, file := range files {
		dialect, err := LoadDialect(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}

		key := dialect.DialectCode
		if key == "" {
			key = filepath.Base(file)
		}
		dialects[key] = dialect
	}

	return dialects, nil
}

// LoadDialect loads a single dialect configuration file, applies defaults
// and validates it.
func LoadDialect(filePath string) (*DialectConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var dialect DialectConfig
	if err := yaml.Unmarshal(data, &dialect); err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}

	applyDialectDefaults(&dialect)

	if err := dialect.Validate(); err != nil {
		return nil, err
	}

	return &dialect, nil
}

// applyDialectDefaults sets default values for dialect configuration.
func applyDialectDefaults(dialect *DialectConfig) {
	if dialect.TerminalMarker == "" {
		dialect.TerminalMarker = "รวมทั้งสิ้น"
	}
	if dialect.TotalOffset == 0 {
		dialect.TotalOffset = 1
	}
	if dialect.MissingSeparatorPolicy == "" {
		dialect.MissingSeparatorPolicy = SeparatorFail
	}
	if dialect.StockColumns.Barcode == 0 {
		dialect.StockColumns.Barcode = 2
	}
	if dialect.StockColumns.Description == 0 {
		dialect.StockColumns.Description = 3
	}
	if dialect.StockColumns.Quantity == 0 {
		dialect.StockColumns.Quantity = 6
	}
	if dialect.Report.Timezone == "" {
		dialect.Report.Timezone = "Asia/Bangkok"
	}
}

// Validate checks a dialect configuration for structural mistakes.
func (d *DialectConfig) Validate() error {
	if d.TotalOffset < 1 {
		return fmt.Errorf("dialect %q: total_offset must be at least 1, got %d", d.DialectCode, d.TotalOffset)
	}

	switch d.MissingSeparatorPolicy {
	case SeparatorFail, SeparatorEmpty:
	default:
		return fmt.Errorf("dialect %q: missing_separator_policy must be %q or %q, got %q",
			d.DialectCode, SeparatorFail, SeparatorEmpty, d.MissingSeparatorPolicy)
	}

	cols := []int{d.StockColumns.Barcode, d.StockColumns.Description, d.StockColumns.Quantity}
	cols = append(cols, d.StockColumns.Extra...)
	seen := make(map[int]bool)
	for _, col := range cols {
		if col < 1 {
			return fmt.Errorf("dialect %q: stock columns are 1-based, got %d", d.DialectCode, col)
		}
		if seen[col] {
			return fmt.Errorf("dialect %q: stock column %d configured twice", d.DialectCode, col)
		}
		seen[col] = true
	}

	for _, suffix := range d.UnitSuffixes {
		if suffix == "" {
			return fmt.Errorf("dialect %q: empty unit suffix", d.DialectCode)
		}
	}

	return nil
}
