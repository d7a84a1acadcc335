package models

import "strings"

// Search URL templates for the external services linked from every song.
const (
	SpotifySearchURL = "https://open.spotify.com/search/"
	AppleSearchURL   = "https://music.apple.com/us/search?term="
	YouTubeSearchURL = "https://www.youtube.com/results?search_query="
)

// Links are the external search URLs for a song.
type Links struct {
	Spotify string `json:"spotify"`
	Apple   string `json:"apple"`
	YouTube string `json:"youtube"`
}

// NewLinks builds each service URL as template + EncodeURIComponent(title + " " + artist).
func NewLinks(title, artist string) Links {
	q := EncodeURIComponent(title + " " + artist)
	return Links{
		Spotify: SpotifySearchURL + q,
		Apple:   AppleSearchURL + q,
		YouTube: YouTubeSearchURL + q,
	}
}

// All returns the links in display order paired with their service names.
func (l Links) All() [][2]string {
	return [][2]string{{"Spotify", l.Spotify}, {"Apple Music", l.Apple}, {"YouTube", l.YouTube}}
}

const upperhex = "0123456789ABCDEF"

// EncodeURIComponent percent-encodes s exactly like ECMAScript's encodeURIComponent:
// every UTF-8 byte is escaped except A-Z a-z 0-9 and - _ . ! ~ * ' ( ).
func EncodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
