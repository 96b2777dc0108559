package m3u

import (
	"fmt"
	"io"
)

// TVGTags are the attributes written between the duration and the title of
// an #EXTINF line.
type TVGTags struct {
	ID         string
	Logo       string
	GroupTitle string
}

func (t *TVGTags) encode(w io.Writer) error {
	attrs := []struct{ key, value string }{
		{"tvg-id", t.ID},
		{"tvg-logo", t.Logo},
		{"group-title", t.GroupTitle},
	}

	for _, a := range attrs {
		if a.value == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, " %s=\"%s\"", a.key, a.value); err != nil {
			return err
		}
	}

	return nil
}
