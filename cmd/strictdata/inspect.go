package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yannn/strictdata"
	"github.com/yannn/strictdata/internal/presentation/markdown"
	"github.com/yannn/strictdata/internal/presentation/tui"
	"github.com/yannn/strictdata/pkg/schema"
	"gopkg.in/yaml.v3"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect CLASS...",
	Short: "Describe class schemas",
	Long:  `Parses the schema of each class and prints its options, properties, types and enums.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		resolve, _ := cmd.Flags().GetBool("resolve")

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

		out := cmd.OutOrStdout()
		if err := runInspect(out, eng, args, format, resolve, isTerminal(out)); err != nil {
			fmt.Fprintf(os.Stderr, "Inspect failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringP("format", "f", "markdown", "Output format: markdown, json, jsonschema or yaml")
	inspectCmd.Flags().Bool("resolve", false, "Resolve enum providers before printing")
}

// runInspect writes the description of classes to w. Markdown is rendered
// with glamour when pretty is set.
func runInspect(w io.Writer, eng *strictdata.Engine, classes []string, format string, resolve, pretty bool) error {
	compiled := make([]*schema.Class, 0, len(classes))
	views := make([]schema.ClassView, 0, len(classes))
	for _, name := range classes {
		c, err := eng.Schema(name)
		if err != nil {
			return err
		}
		if resolve {
			// Errors are reported inside the view.
			_ = c.ResolveEnums()
		}
		compiled = append(compiled, c)
		views = append(views, c.View())
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	case "jsonschema":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		for _, c := range compiled {
			if err := enc.Encode(c.JSONSchema()); err != nil {
				return err
			}
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return err
		}
		return enc.Close()
	case "markdown", "md":
		docs := make([]string, len(views))
		for i, v := range views {
			docs[i] = markdown.Class(v)
		}
		doc := strings.Join(docs, "\n")
		if pretty {
			render, err := tui.NewRenderer(0)
			if err != nil {
				return err
			}
			if doc, err = render(doc); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, doc)
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}
