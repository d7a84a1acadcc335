// package formatter provides functions to export the song library to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/woodshed/internal/collection"
	"github.com/desertthunder/woodshed/internal/models"
	"github.com/desertthunder/woodshed/internal/shared"
)

// Export formats accepted by [WriteLibraryExport].
const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
	FormatJSON     = "json"
)

// Formats lists the supported export formats.
var Formats = []string{FormatCSV, FormatMarkdown, FormatText, FormatJSON}

const dateLayout = "2006-01-02"

// ExportToCSV converts songs to CSV with columns: ID, Title, Artist, Album, Genre, Status, Difficulty, Progress, Completed, Date Added, Notes
func ExportToCSV(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "Genre", "Status", "Difficulty", "Progress", "Completed", "Date Added", "Notes"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range songs {
		record := []string{
			song.ID,
			song.Title,
			song.Artist,
			song.Album,
			song.Genre,
			song.Status.String(),
			song.Difficulty.String(),
			strconv.Itoa(int(collection.Progress(song)*100)) + "%",
			strings.Join(song.Sections, "; "),
			song.DateAdded.Format(dateLayout),
			song.Notes,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders a practice sheet with a checkbox per structure section.
//
// artwork maps song IDs to local image filenames; songs missing from it fall back to the remote artwork URL.
func ExportToMarkdown(songs []models.Song, title string, artwork map[string]string) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Practice Sheet"
	}
	fmt.Fprintf(&buf, "# %s\n\n", title)

	sum := collection.Stats(songs)
	fmt.Fprintf(&buf, "**Songs**: %d\n", sum.Total)
	fmt.Fprintf(&buf, "**Mastered**: %d\n", sum.ByStatus[models.Mastered])
	fmt.Fprintf(&buf, "**Sections complete**: %d/%d\n\n", sum.CompletedSections, sum.Sections)

	for _, song := range songs {
		fmt.Fprintf(&buf, "## %s - %s\n\n", song.Title, song.Artist)

		if img := artwork[song.ID]; img != "" {
			fmt.Fprintf(&buf, "![Artwork](%s)\n\n", img)
		} else if song.Artwork != "" {
			fmt.Fprintf(&buf, "![Artwork](%s)\n\n", song.Artwork)
		}

		if song.Album != "" {
			fmt.Fprintf(&buf, "**Album**: %s\n", song.Album)
		}
		if song.Genre != "" {
			fmt.Fprintf(&buf, "**Genre**: %s\n", song.Genre)
		}
		fmt.Fprintf(&buf, "**Status**: %s\n", song.Status)
		fmt.Fprintf(&buf, "**Difficulty**: %s\n", song.Difficulty)
		fmt.Fprintf(&buf, "**Added**: %s\n\n", song.DateAdded.Format(dateLayout))

		if len(song.Structure) > 0 {
			buf.WriteString("### Sections\n\n")
			for _, section := range song.Structure {
				mark := " "
				if song.IsComplete(section) {
					mark = "x"
				}
				fmt.Fprintf(&buf, "- [%s] %s\n", mark, section)
			}
			buf.WriteString("\n")
		}

		if song.Notes != "" {
			buf.WriteString("### Notes\n\n")
			for _, line := range strings.Split(song.Notes, "\n") {
				fmt.Fprintf(&buf, "> %s\n", line)
			}
			buf.WriteString("\n")
		}

		for _, link := range song.Links.All() {
			fmt.Fprintf(&buf, "[%s](%s) ", link[0], link[1])
		}
		buf.WriteString("\n\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts songs to a plain text list
func ExportToText(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Songs: %d\n\n", len(songs))

	for i, song := range songs {
		fmt.Fprintf(&buf, "%d. %s - %s [%s, %s]\n", i+1, song.Artist, song.Title, song.Status, song.Difficulty)
	}

	return buf.Bytes(), nil
}

type songLinks struct {
	Title  string       `json:"title"`
	Artist string       `json:"artist"`
	Links  models.Links `json:"links"`
}

// ToLinksJSON generates a JSON array of each song's external search links
func ToLinksJSON(songs []models.Song) ([]byte, error) {
	out := make([]songLinks, 0, len(songs))
	for _, s := range songs {
		out = append(out, songLinks{s.Title, s.Artist, s.Links})
	}
	return shared.MarshalJSON(out, true)
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(client *http.Client, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// ExportResult contains the paths of files created by [WriteLibraryExport]
type ExportResult struct {
	Format   string
	Files    []string
	Warnings []string
}

// ExportOpts configures [WriteLibraryExport].
type ExportOpts struct {
	Title         string       // Markdown heading
	FetchArtwork  bool         // download artwork next to the Markdown sheet
	ArtworkClient *http.Client // client used when FetchArtwork is set
}

// WriteLibraryExport writes songs to dir in the given format.
//
// Creates library.csv, practice_sheet.md (plus artwork/{id}.jpg when requested), library.txt, or
// library.json with links.json alongside.
func WriteLibraryExport(songs []models.Song, dir, format string, opts ExportOpts) (*ExportResult, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &ExportResult{Format: format, Files: []string{}}

	var (
		data []byte
		name string
		err  error
	)

	switch format {
	case FormatCSV:
		name = "library.csv"
		data, err = ExportToCSV(songs)
	case FormatMarkdown:
		var artwork map[string]string
		if opts.FetchArtwork {
			artwork = writeArtwork(songs, dir, opts.ArtworkClient, result)
		}
		name = "practice_sheet.md"
		data, err = ExportToMarkdown(songs, opts.Title, artwork)
	case FormatText:
		name = "library.txt"
		data, err = ExportToText(songs)
	case FormatJSON:
		name = "library.json"
		data, err = shared.MarshalJSON(songs, true)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s export: %w", format, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", name, err)
	}
	result.Files = append(result.Files, path)

	if format == FormatJSON {
		if err := writeLinks(songs, dir, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// writeArtwork saves each song's artwork under dir/artwork. Failures become warnings.
func writeArtwork(songs []models.Song, dir string, client *http.Client, result *ExportResult) map[string]string {
	artDir := filepath.Join(dir, "artwork")
	if err := os.MkdirAll(artDir, 0755); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("failed to create artwork directory: %v", err))
		return nil
	}

	local := map[string]string{}
	for _, song := range songs {
		if song.Artwork == "" {
			continue
		}
		data, err := DownloadImage(client, song.Artwork)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", song.Title, err))
			continue
		}
		rel := filepath.Join("artwork", song.ID+".jpg")
		if err := os.WriteFile(filepath.Join(dir, rel), data, 0644); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", song.Title, err))
			continue
		}
		local[song.ID] = filepath.ToSlash(rel)
		result.Files = append(result.Files, filepath.Join(dir, rel))
	}
	return local
}

// ManifestEntry describes one format written by a library export run.
type ManifestEntry struct {
	Format string   `json:"format"`
	Status string   `json:"status"`
	Files  []string `json:"files"`
	Error  string   `json:"error,omitempty"`
}

// Manifest summarizes a multi-format library export.
type Manifest struct {
	GeneratedAt time.Time       `json:"generated_at"`
	TotalSongs  int             `json:"total_songs"`
	Successful  int             `json:"successful_exports"`
	Failed      int             `json:"failed_exports"`
	Exports     []ManifestEntry `json:"exports"`
}

// WriteExportManifest writes m as indented JSON to path.
func WriteExportManifest(m Manifest, path string) error {
	data, err := shared.MarshalJSON(m, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

func writeLinks(songs []models.Song, dir string, result *ExportResult) error {
	data, err := ToLinksJSON(songs)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, "links.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write links.json: %w", err)
	}
	result.Files = append(result.Files, path)
	return nil
}
