package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yannn/strictdata"
	"github.com/yannn/strictdata/internal/presentation/tui"
	"github.com/yannn/strictdata/internal/values"
	"github.com/yannn/strictdata/pkg/domain"
	"gopkg.in/yaml.v3"
)

var checkCmd = &cobra.Command{
	Use:   "check CLASS FILE",
	Short: "Validate records against a class schema",
	Long: `Reads a YAML or JSON file holding one record or a list of records and checks every
record against the schema of CLASS. Exits with status 1 when any record is rejected.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		eng, err := newEngine(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing strictdata: %v\n", err)
			os.Exit(1)
		}

		records, err := loadRecords(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading records: %v\n", err)
			os.Exit(1)
		}

		out := cmd.OutOrStdout()
		printer := tui.NewPlainPrinter(out)
		if isTerminal(out) {
			printer = tui.NewPrinter(out)
		}

		failed, err := runCheck(printer, eng, args[0], records)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Check failed: %v\n", err)
			os.Exit(1)
		}
		if failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// loadRecords reads a single record or a list of records.
func loadRecords(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc any
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		dec := json.NewDecoder(strings.NewReader(string(data)))
		dec.UseNumber()
		err = dec.Decode(&doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	switch d := doc.(type) {
	case map[string]any:
		return []map[string]any{values.Normalize(d).(map[string]any)}, nil
	case []any:
		records := make([]map[string]any, 0, len(d))
		for i, item := range d {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("record %d is %T, not a mapping", i+1, item)
			}
			records = append(records, values.Normalize(m).(map[string]any))
		}
		return records, nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("expected a record or a list of records, got %T", doc)
}

// runCheck validates every record and returns how many were rejected.
// A schema definition error aborts the run.
func runCheck(p *tui.Printer, eng *strictdata.Engine, class string, records []map[string]any) (int, error) {
	failed := 0
	for i, rec := range records {
		obj, err := eng.Object(class)
		if err != nil {
			return failed, err
		}

		err = obj.Assign(rec)
		if err == nil {
			p.Pass("record %d", i+1)
			continue
		}
		if errors.Is(err, domain.ErrSchemaDefinition) {
			return failed, err
		}

		failed++
		p.Fail("record %d", i+1)
		for _, e := range domain.ValidationErrors(err) {
			p.Detail("%s", e)
		}
	}
	return failed, nil
}
