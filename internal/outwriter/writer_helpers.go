package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/huangsam/gridcache/internal/contract"
)

// writeWithFile opens the configured destination, runs writer against it and
// reports where the output went when it is not stdout.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON encodes data as indented JSON.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader writes header, lets writeRows fill in the records and flushes.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writeRows(cw); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// formatStat renders a box-score or EPA value with statPrecision decimals.
func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', statPrecision, 64)
}

// formatInt renders a season, week, round or count.
func formatInt[T ~int | ~int32 | ~int64](v T) string {
	return strconv.FormatInt(int64(v), 10)
}

// freshnessLabel picks the colored or plain label depending on cfg.
func freshnessLabel(fresh bool, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(fresh)
	}
	return contract.GetPlainLabel(fresh)
}
