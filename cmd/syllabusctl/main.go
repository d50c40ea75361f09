// syllabusctl runs the ingest pipeline from the command line, without the
// server or a database. Useful for checking what a listing resolves to and
// what the extractors make of a department before wiring it into a
// deployment.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/unitrack-labs/syllabus-core/internal/adapters/driven/firecrawl"
	"github.com/unitrack-labs/syllabus-core/internal/adapters/driven/memory"
	"github.com/unitrack-labs/syllabus-core/internal/adapters/driven/webfetch"
	"github.com/unitrack-labs/syllabus-core/internal/core/ports/driven"
	"github.com/unitrack-labs/syllabus-core/internal/core/ports/driving"
	"github.com/unitrack-labs/syllabus-core/internal/core/services"
)

// Flag variables.
var (
	flagInstitution string
	flagDepartment  string
	flagGrade       int
	flagYear        int
	flagProvider    string
	flagChunkSize   int
	flagDelayMS     int
)

var rootCmd = &cobra.Command{
	Use:   "syllabusctl",
	Short: "syllabusctl — resolve and ingest syllabus catalogs from the command line",
	Long: `syllabusctl runs the syllabus ingest pipeline one-off: resolve a department
listing into detail URLs, or run the full fetch-extract-validate pipeline
and print the assembled course records as JSON.

Examples:
  syllabusctl resolve --institution kosen-tokyo --department 11 --grade 3 --year 2026
  syllabusctl ingest --institution kosen-tokyo --department 11 --grade 3 --year 2026 --provider direct`,
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a department listing into detail document URLs",
	RunE:  runResolve,
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Run the full ingest pipeline and print the report",
	RunE:  runIngest,
}

func init() {
	for _, c := range []*cobra.Command{resolveCmd, ingestCmd} {
		c.Flags().StringVar(&flagInstitution, "institution", "", "Institution identifier (required)")
		c.Flags().StringVar(&flagDepartment, "department", "", "Department identifier (required)")
		c.Flags().IntVar(&flagGrade, "grade", 0, "Grade level")
		c.Flags().IntVar(&flagYear, "year", time.Now().Year(), "Academic year")
		c.Flags().StringVar(&flagProvider, "provider", "firecrawl", "Scrape provider: firecrawl or direct")
		c.MarkFlagRequired("institution")
		c.MarkFlagRequired("department")
	}
	ingestCmd.Flags().IntVar(&flagChunkSize, "chunk_size", 2, "Concurrent fetches per chunk")
	ingestCmd.Flags().IntVar(&flagDelayMS, "delay_ms", 500, "Pause between chunks in milliseconds")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(ingestCmd)
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildScraper() (driven.PageScraper, error) {
	switch flagProvider {
	case "firecrawl":
		return firecrawl.NewClient(os.Getenv("SCRAPER_API_KEY"), os.Getenv("SCRAPER_BASE_URL")), nil
	case "direct":
		return webfetch.NewFetcher(), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (use: firecrawl or direct)", flagProvider)
	}
}

func buildIngestor() (*services.Ingestor, error) {
	scraper, err := buildScraper()
	if err != nil {
		return nil, err
	}
	return services.NewIngestor(services.IngestorConfig{
		Scraper:    scraper,
		Store:      memory.NewCourseStore(),
		Cache:      memory.NewCache(),
		Bus:        memory.NewEventBus(nil),
		Catalog:    services.DefaultCatalog(),
		ChunkSize:  flagChunkSize,
		ChunkDelay: time.Duration(flagDelayMS) * time.Millisecond,
	}), nil
}

func request() driving.IngestRequest {
	return driving.IngestRequest{
		InstitutionID: flagInstitution,
		DepartmentID:  flagDepartment,
		GradeLevel:    flagGrade,
		AcademicYear:  flagYear,
	}
}

func runResolve(cmd *cobra.Command, _ []string) error {
	ingestor, err := buildIngestor()
	if err != nil {
		return err
	}

	resolution, err := ingestor.ResolveListing(cmd.Context(), request())
	if err != nil {
		return err
	}
	return printJSON(resolution)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	ingestor, err := buildIngestor()
	if err != nil {
		return err
	}

	report, err := ingestor.Ingest(cmd.Context(), request())
	if err != nil {
		return err
	}
	return printJSON(report)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
