// slipgen processes marketplace order exports into packing slip data from
// the command line, without the HTTP server or a database.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/slipdesk/backend/internal/application/slips"
	"github.com/slipdesk/backend/internal/domain/slip"
	"github.com/slipdesk/backend/internal/infrastructure/ingest"
	"github.com/slipdesk/backend/internal/infrastructure/printing"
)

// Version is set at build time using ldflags
var Version = "dev"

var (
	outputPath string
	format     string
	charset    string
	delimiter  string
	mapping    map[string]string
)

var rootCmd = &cobra.Command{
	Use:   "slipgen",
	Short: "Turn marketplace order exports into packing slip data",
	Long: `slipgen reads a CSV or XLSX order export, groups rows into one packing
slip per order and customer, and writes the result as JSON, a flat CSV, or
a PDF rendered through the built-in packing slip template.

Column headers are matched automatically; use --mapping to pin a field to a
specific header when automatic matching gets it wrong.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Process one order export into packing slips",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(args[0])
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("slipgen %s (%s)\n", Version, runtime.Version())
	},
}

func init() {
	processCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")
	processCmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, csv or pdf")
	processCmd.Flags().StringVar(&charset, "charset", "", "input charset when not UTF-8 (e.g. latin1, gbk)")
	processCmd.Flags().StringVar(&delimiter, "delimiter", "", "CSV field delimiter (default: comma)")
	processCmd.Flags().StringToStringVar(&mapping, "mapping", nil, "explicit column mapping, e.g. --mapping orderId='Order ID'")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(versionCmd)
}

func runProcess(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer file.Close()

	parser, err := newParser(path, file)
	if err != nil {
		return err
	}
	if err := parser.ParseHeader(); err != nil {
		return err
	}
	rows, err := parser.ReadAllRows()
	if err != nil {
		return err
	}

	resolved := slips.ResolveColumnMapping(parser.Headers(), slips.MappingFromRequest(mapping))
	docs, stats, err := slips.Aggregate(rows, resolved, nil)
	if err != nil {
		return err
	}

	out := os.Stdout
	if outputPath != "" {
		out, err = os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer out.Close()
	}

	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(docs); err != nil {
			return err
		}
	case "csv":
		if err := slips.ExportCSV(out, docs); err != nil {
			return err
		}
	case "pdf":
		if err := writePDF(out, docs); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q, expected json, csv or pdf", format)
	}

	fmt.Fprintf(os.Stderr, "%d rows -> %d packing slips (%d skipped)\n",
		stats.TotalRows, stats.DocumentCount, stats.SkippedRows)
	return nil
}

// writePDF renders the documents through the built-in default template,
// one page per document
func writePDF(out *os.File, docs []*slip.Document) error {
	defs := printing.GetDefaultTemplates()
	def := defs[0]
	for _, d := range defs {
		if d.IsDefault {
			def = d
			break
		}
	}
	tmpl, err := printing.BuildDefaultTemplate(def)
	if err != nil {
		return err
	}

	ctx := context.Background()
	engine := printing.NewTemplateEngine()
	pages := make([]string, 0, len(docs))
	for _, doc := range docs {
		result, err := engine.Render(ctx, &printing.RenderTemplateRequest{
			Template: tmpl,
			Data:     doc,
		})
		if err != nil {
			return err
		}
		pages = append(pages, result.HTML)
	}

	renderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
		Headless:  true,
		NoSandbox: os.Geteuid() == 0,
	})
	if err != nil {
		return err
	}
	defer func() { _ = renderer.Close() }()

	rendered, err := renderer.Render(ctx, &printing.RenderRequest{
		HTML:        strings.Join(pages, `<div style="page-break-before: always;"></div>`),
		PaperSize:   tmpl.PaperSize,
		Orientation: tmpl.Orientation,
		Margins:     tmpl.Margins,
		Title:       "Packing Slips",
	})
	if err != nil {
		return err
	}

	_, err = out.Write(rendered.PDFData)
	return err
}

type rowSource interface {
	ParseHeader() error
	Headers() []string
	ReadAllRows() ([]*ingest.Row, error)
}

func newParser(path string, file *os.File) (rowSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ingest.NewXLSXParser(file)
	default:
		var opts []ingest.ParserOption
		if charset != "" {
			opts = append(opts, ingest.WithCharset(charset))
		}
		if delimiter != "" {
			r, size := utf8.DecodeRuneInString(delimiter)
			if r == utf8.RuneError || size != len(delimiter) {
				return nil, fmt.Errorf("delimiter must be a single character")
			}
			opts = append(opts, ingest.WithDelimiter(r))
		}
		return ingest.NewCSVParser(file, opts...)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
