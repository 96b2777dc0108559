package m3u

import (
	"fmt"
	"io"
)

// Item is one entry of an encoded playlist.
type Item struct {
	Title    string
	URI      string
	Duration float64
	TVGTags  *TVGTags
}

func (it *Item) encode(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s%0.0f", directiveInfo, it.Duration); err != nil {
		return err
	}

	if it.TVGTags != nil {
		if err := it.TVGTags.encode(w); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, ",%s\n%s\n", it.Title, it.URI); err != nil {
		return err
	}

	return nil
}
