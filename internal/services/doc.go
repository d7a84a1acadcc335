// Package services defines the [Catalog] interface for remote song catalogs and implements it for the iTunes Search API.
//
// # iTunes Implementation
//
// [ITunesService] issues GET {base}/search?term=...&media=music&entity=song&limit=N and maps each
// result's trackName, artistName, collectionName, primaryGenreName, and artworkUrl100 to a [models.Candidate].
//
// Requests wait on a [rate.Limiter] and run under a per-request timeout.
//
// # Error Handling
//
// Transport failures, non-2xx responses, and malformed JSON are all reported as errors wrapping
// [shared.ErrSearchUnavailable], so callers can tell "search failed" apart from "no results".
// A blank term or a response without results yields an empty slice and a nil error.
// Every search goes to the catalog; nothing is cached between requests.
package services
