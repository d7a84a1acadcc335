package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	PrepareExport Phase = iota
	ExportFormat
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case PrepareExport:
		return "prepare_export"
	case ExportFormat:
		return "export_format"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func prepareExportUpdate(songs, formats int, dir string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PrepareExport,
		Step:    0,
		Total:   formats,
		Message: fmt.Sprintf("Exporting %d songs in %d formats to %s...", songs, formats, dir),
	}
}

func exportCompletedUpdate(step, total int, format string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportFormat,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, format, filesCount),
	}
}

func exportFailedUpdate(step, total int, format string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportFormat,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, format, err),
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Manifest written to %s", path),
		Data:    path,
	}
}
