// Package tasks runs the asynchronous and side-effecting work around the collection store.
//
// # Catalog Search
//
// [Searcher] numbers every request with a generation. The caller keeps only the outcome whose
// generation is still current ([Searcher.IsCurrent]), so a slow response can never overwrite the
// results of a newer query. Each request runs under the configured timeout.
//
// # Activity Journal
//
// [Journal] subscribes to store events and appends one [models.Activity] per event through an
// [ActivityWriter] (repositories.ActivityRepository). Write failures are logged and never reach the store.
//
// # Library Export
//
// [Exporter.Export] writes several export formats concurrently with a small worker pool and reports
// progress over a non-blocking channel of [ProgressUpdate] values, then writes a manifest.
package tasks
