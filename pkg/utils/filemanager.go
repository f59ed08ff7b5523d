// =============================================================================
// Express Reconcile - File Manager
// =============================================================================
//
// This module handles all file-system operations around the pipeline:
//   - Discovering sales/stock export pairs in the input directory
//   - Generating output file names from the configured format
//   - Archiving processed exports
//   - Writing the batch summary log
//
// The pipeline itself performs no I/O; everything that touches disk outside
// a single run lives here.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// exportExtensions are the input formats accepted for either export.
var exportExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xls":  true,
	".csv":  true,
}

// =============================================================================
// EXPORT PAIR DISCOVERY
// =============================================================================

// Pair is a matched sales/stock export pair found in the input directory.
type Pair struct {
	// Name is the shared base name of the pair.
	Name string

	// SalesPath is the express accounting export.
	SalesPath string

	// StockPath is the stock export.
	StockPath string
}

// DiscoverPairs scans the input directory for files named
// "<name>_express.<ext>" and "<name>_stock.<ext>" and pairs them by name.
// Pairs are returned sorted by name; incomplete pairs are reported so the
// caller can warn about them.
func DiscoverPairs(inputDir string) (pairs []Pair, incomplete []string, err error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	sales := make(map[string]string)
	stock := make(map[string]string)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !exportExtensions[ext] {
			continue
		}

		base := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		path := filepath.Join(inputDir, entry.Name())

		switch {
		case strings.HasSuffix(base, "_express"):
			sales[strings.TrimSuffix(base, "_express")] = path
		case strings.HasSuffix(base, "_stock"):
			stock[strings.TrimSuffix(base, "_stock")] = path
		}
	}

	for name, salesPath := range sales {
		stockPath, ok := stock[name]
		if !ok {
			incomplete = append(incomplete, salesPath)
			continue
		}
		pairs = append(pairs, Pair{Name: name, SalesPath: salesPath, StockPath: stockPath})
		delete(stock, name)
	}
	for _, stockPath := range stock {
		incomplete = append(incomplete, stockPath)
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Name < pairs[j].Name })
	sort.Strings(incomplete)

	return pairs, incomplete, nil
}

// =============================================================================
// OUTPUT NAMING
// =============================================================================

// OutputFileName expands the configured output name format.
// Placeholders:
//   - {uuid}      : a random UUID
//   - {timestamp} : YYYYMMDD_HHMMSS
//   - {dialect}   : the dialect code
//   - {name}      : the base name of the sales export
func OutputFileName(format, dialect, salesPath string) string {
	base := strings.TrimSuffix(filepath.Base(salesPath), filepath.Ext(salesPath))
	base = strings.TrimSuffix(base, "_express")

	name := format
	name = strings.ReplaceAll(name, "{uuid}", uuid.New().String())
	name = strings.ReplaceAll(name, "{timestamp}", time.Now().Format("20060102_150405"))
	name = strings.ReplaceAll(name, "{dialect}", dialect)
	name = strings.ReplaceAll(name, "{name}", base)

	if filepath.Ext(name) == "" {
		name += ".xlsx"
	}
	return name
}

// =============================================================================
// ARCHIVAL
// =============================================================================

// ArchiveFile moves a processed file into the archive directory. When a file
// of the same name already exists there, a timestamp suffix keeps the old
// copy.
func ArchiveFile(path, archiveDir string) (string, error) {
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	target := filepath.Join(archiveDir, filepath.Base(path))
	if FileExists(target) {
		ext := filepath.Ext(target)
		stem := strings.TrimSuffix(target, ext)
		target = fmt.Sprintf("%s_%s%s", stem, time.Now().Format("20060102_150405"), ext)
	}

	if err := os.Rename(path, target); err == nil {
		return target, nil
	}

	// Rename fails across file systems; fall back to copy and delete.
	if err := copyFile(path, target); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", path, err)
	}
	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("failed to remove original after archiving: %w", err)
	}
	return target, nil
}

// =============================================================================
// SUMMARY LOG
// =============================================================================

// SummaryEntry is one line of the batch summary log.
type SummaryEntry struct {
	// Name is the export pair name.
	Name string

	// OutputFile is the written workbook, empty on failure.
	OutputFile string

	// Err is the failure, nil on success.
	Err error
}

// WriteSummaryLog writes the batch outcome next to the output files and
// returns the log path.
func WriteSummaryLog(entries []SummaryEntry, outputDir string) (string, error) {
	path := filepath.Join(outputDir, fmt.Sprintf("summary_%s.log", time.Now().Format("20060102_150405")))

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Reconciliation summary %s\n\n", time.Now().Format(time.RFC3339)))
	for _, e := range entries {
		if e.Err != nil {
			b.WriteString(fmt.Sprintf("FAIL %s: %v\n", e.Name, e.Err))
			continue
		}
		b.WriteString(fmt.Sprintf("OK   %s -> %s\n", e.Name, e.OutputFile))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write summary log: %w", err)
	}
	return path, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// FileExists checks whether a path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// copyFile copies src to dst, creating dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
