// Package m3u reads and writes extended M3U playlists.
package m3u

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/alorle/iptv-browser/internal/channel"
)

const (
	directiveHeader = "#EXTM3U"
	directiveInfo   = "#EXTINF:"
)

var (
	logoAttr  = regexp.MustCompile(`tvg-logo="([^"]+)"`)
	groupAttr = regexp.MustCompile(`group-title="([^"]+)"`)
	idAttr    = regexp.MustCompile(`tvg-id="([^"]+)"`)
)

// Playlist is the result of parsing an M3U document.
type Playlist struct {
	// Channels holds one entry per complete #EXTINF record, in document order.
	Channels []channel.Channel
	// Categories holds the distinct group titles in first-seen order.
	Categories []string
}

// record is an #EXTINF line waiting for its URL.
type record struct {
	name     string
	logo     string
	category string
	id       string
}

// Parse reads an extended M3U playlist.
//
// Each #EXTINF line starts a record. Its logo (tvg-logo), category
// (group-title, default "Other"), id (tvg-id) and name (the text after the
// attribute list) come from that line; its URL is the next non-empty line
// that is not a directive. Records without a logo, a name or a URL are
// dropped. The only error returned is a read error from r.
func Parse(r io.Reader) (*Playlist, error) {
	pl := &Playlist{
		Channels:   []channel.Channel{},
		Categories: []string{},
	}
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	// Long #EXTINF lines with logos and many attributes
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var pending *record

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, directiveInfo) {
			// A pending record without a URL line is discarded here.
			pending = parseInfo(line)
			continue
		}

		// #EXTVLCOPT, #EXTGRP and friends between #EXTINF and its URL
		if strings.HasPrefix(line, "#") {
			continue
		}

		if pending == nil {
			continue
		}

		rec := pending
		pending = nil

		if rec.logo == "" || rec.name == "" {
			continue
		}

		ch, err := channel.NewChannel(rec.name, channel.Attributes{
			ID:        rec.id,
			LogoURL:   rec.logo,
			Category:  rec.category,
			StreamURL: line,
		})
		if err != nil {
			continue
		}

		pl.Channels = append(pl.Channels, ch)
		if _, ok := seen[ch.Category()]; !ok {
			seen[ch.Category()] = struct{}{}
			pl.Categories = append(pl.Categories, ch.Category())
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading m3u playlist: %w", err)
	}

	return pl, nil
}

func parseInfo(line string) *record {
	rec := &record{
		name:     displayName(line),
		logo:     submatch(logoAttr, line),
		category: submatch(groupAttr, line),
		id:       submatch(idAttr, line),
	}
	if rec.category == "" {
		rec.category = channel.DefaultCategory
	}
	return rec
}

func submatch(re *regexp.Regexp, line string) string {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// displayName returns the text after the first comma that is not inside a
// quoted attribute value.
func displayName(line string) string {
	quoted := false
	for i, r := range line {
		switch r {
		case '"':
			quoted = !quoted
		case ',':
			if !quoted {
				return strings.TrimSpace(line[i+1:])
			}
		}
	}
	return ""
}
