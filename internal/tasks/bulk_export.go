package tasks

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/desertthunder/woodshed/internal/formatter"
	"github.com/desertthunder/woodshed/internal/models"
	"github.com/desertthunder/woodshed/internal/shared"
)

// BulkExportOpts contains configuration for multi-format library exports.
type BulkExportOpts struct {
	Formats       []string     // Export formats (default: all of formatter.Formats)
	OutputDir     string       // Output directory (default: woodshed_export_{epoch})
	NumWorkers    int          // Concurrent workers (default: 2, max: 4)
	Title         string       // Markdown heading
	FetchArtwork  bool         // Download artwork for the Markdown sheet
	ArtworkClient *http.Client // HTTP client for artwork downloads
}

// FormatExportResult is the outcome for a single format.
type FormatExportResult struct {
	Format  string
	Success bool
	Files   []string
	Error   error
}

// BulkExportResult summarizes a library export run.
type BulkExportResult struct {
	TotalSongs        int
	SuccessfulExports int
	FailedExports     int
	Results           []FormatExportResult
	OutputDirectory   string
	ManifestPath      string
}

// Exporter writes snapshots of the collection to disk.
type Exporter struct {
	now func() time.Time
}

// NewExporter creates an Exporter using the wall clock.
func NewExporter() *Exporter {
	return &Exporter{now: time.Now}
}

// Export writes songs in every requested format concurrently and records a manifest.
//
// Individual format failures are reported in the result; only setup and manifest errors are returned.
func (e *Exporter) Export(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	songs []models.Song,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if len(opts.Formats) == 0 {
		opts.Formats = slices.Clone(formatter.Formats)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("woodshed_export_%d", e.now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 2
	}
	if opts.NumWorkers > 4 {
		opts.NumWorkers = 4
	}

	for _, f := range opts.Formats {
		if !slices.Contains(formatter.Formats, f) {
			return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, f)
		}
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalSongs:      len(songs),
		OutputDirectory: opts.OutputDir,
		Results:         make([]FormatExportResult, 0, len(opts.Formats)),
	}

	sendProgress(prog, prepareExportUpdate(len(songs), len(opts.Formats), opts.OutputDir))

	jobs := make(chan string, len(opts.Formats))
	results := make(chan FormatExportResult, len(opts.Formats))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, songs, opts)
	}

	for _, f := range opts.Formats {
		jobs <- f
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)
		if res.Success {
			result.SuccessfulExports++
			sendProgress(prog, exportCompletedUpdate(completed, len(opts.Formats), res.Format, len(res.Files)))
		} else {
			result.FailedExports++
			sendProgress(prog, exportFailedUpdate(completed, len(opts.Formats), res.Format, res.Error))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("export cancelled: %w", err)
	}

	slices.SortFunc(result.Results, func(a, b FormatExportResult) int {
		return slices.Index(opts.Formats, a.Format) - slices.Index(opts.Formats, b.Format)
	})

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := formatter.WriteExportManifest(e.manifest(result), manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	sendProgress(prog, manifestUpdate(manifestPath))

	return result, nil
}

// exportWorker is a worker goroutine that writes formats from the jobs channel.
func (e *Exporter) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan string,
	results chan<- FormatExportResult,
	songs []models.Song,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for format := range jobs {
		select {
		case <-ctx.Done():
			results <- FormatExportResult{Format: format, Error: ctx.Err()}
			continue
		default:
		}

		res := FormatExportResult{Format: format, Files: []string{}}
		out, err := formatter.WriteLibraryExport(songs, opts.OutputDir, format, formatter.ExportOpts{
			Title:         opts.Title,
			FetchArtwork:  opts.FetchArtwork,
			ArtworkClient: opts.ArtworkClient,
		})
		if err != nil {
			res.Error = err
		} else {
			res.Success = true
			res.Files = out.Files
		}
		results <- res
	}
}

func (e *Exporter) manifest(r *BulkExportResult) formatter.Manifest {
	m := formatter.Manifest{
		GeneratedAt: e.now(),
		TotalSongs:  r.TotalSongs,
		Successful:  r.SuccessfulExports,
		Failed:      r.FailedExports,
		Exports:     make([]formatter.ManifestEntry, 0, len(r.Results)),
	}
	for _, res := range r.Results {
		entry := formatter.ManifestEntry{Format: res.Format, Status: "success", Files: res.Files}
		if !res.Success {
			entry.Status = "failed"
			if res.Error != nil {
				entry.Error = res.Error.Error()
			}
		}
		m.Exports = append(m.Exports, entry)
	}
	return m
}
