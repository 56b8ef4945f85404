package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	// Writer receives text output and JSON written without an output directory.
	// Defaults to os.Stdout.
	Writer io.Writer
}

// Report is a command result that can be rendered in every output format
type Report interface {
	// Name is the file stem used for JSON and CSV files
	Name() string
	writeText(w io.Writer)
	tables() []table
}

// table is one CSV file of a report
type table struct {
	file  string
	write func(io.Writer) error
}

// Generate creates output in the specified format
func Generate(report Report, config Config) error {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}

	switch config.Format {
	case "", "text":
		return generateTextOutput(report, config)
	case "json":
		return generateJSONOutput(report, config)
	case "csv":
		return generateCSVOutput(report, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(report Report, config Config) error {
	report.writeText(config.Writer)
	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(report Report, config Config) error {
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.Writer, string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, report.Name()+".json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.Writer, "💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput creates CSV output
func generateCSVOutput(report Report, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	tables := report.tables()
	if len(tables) == 0 {
		return fmt.Errorf("CSV format not supported for %s report", report.Name())
	}

	var written []string
	for _, t := range tables {
		filename, err := writer.WriteFile(config.OutputDir, t.file, t.write)
		if err != nil {
			return err
		}
		written = append(written, filename)
	}

	if config.Verbose {
		fmt.Fprintf(config.Writer, "💾 CSV results saved to:\n")
		for _, filename := range written {
			fmt.Fprintf(config.Writer, "  %s\n", filename)
		}
	}
	return nil
}
