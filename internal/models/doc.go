// Package models defines the domain entities of the woodshed practice tracker.
//
// The package contains two categories of types:
//
// 1. Catalog records: lightweight structs describing search results
//   - [Candidate] : a track returned by the remote catalog, not yet tracked
//
// 2. Tracked entities
//   - [Song] : a song in the practice collection with status, difficulty, notes, and structure
//   - [Activity] : a journal entry describing a change to the collection
//
// [Status] and [Difficulty] are closed enumerations with display names matching the UI labels.
// [KnownStructures] maps normalized titles to canonical practice structures; [StructureFor] falls back to a single "Intro" section.
// [NewLinks] builds the deterministic external search URLs for a song.
package models
