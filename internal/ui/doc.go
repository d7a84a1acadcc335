// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI is a single [Model] with a closed set of tabs:
//  1. [HomeTab] : Recently added songs, highlights and "continue practice"
//  2. [SearchTab] : Catalog search with an add action per result
//  3. [LibraryTab] : Liked songs with a text query, status/difficulty filters and sort
//  4. [ProgressTab] : Section checklist, notes, status and difficulty for one song
//  5. [InsightsTab] : Status bars and the session activity journal
//  6. [ProfileTab] : Profile details and library export
//
// The model subscribes to the [collection.Store]; events raised while handling a message are collected
// and turned into notifications once the message is processed. Notifications dismiss themselves after the
// configured duration, and a dismissal only clears the notification that scheduled it.
//
// Searches are numbered by [tasks.Searcher] so an outcome that arrives after a newer request is dropped.
package ui
