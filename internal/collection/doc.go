// Package collection owns the in-memory song collection and the read-only views derived from it.
//
// [Store] is the single authority for mutations. Every mutation replaces only the touched
// entry (copy on write) and notifies subscribers with an [Event] once the change is visible.
// Update operations on unknown ids report false and never return an error.
//
// Projections ([Filter], [Sort], [Recent], [Highlighter], [Stats]) are pure functions over a
// snapshot returned by [Store.Songs]; none of them mutate their input.
package collection
