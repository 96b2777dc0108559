package channel_test

import (
	"errors"
	"testing"

	"github.com/alorle/iptv-browser/internal/channel"
)

func TestNewChannel(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		attrs        channel.Attributes
		wantName     string
		wantCategory string
		wantError    error
	}{
		{
			name:         "valid channel name",
			input:        "Geo News",
			attrs:        channel.Attributes{Category: "News"},
			wantName:     "Geo News",
			wantCategory: "News",
		},
		{
			name:         "name and category are trimmed",
			input:        "  Geo News  ",
			attrs:        channel.Attributes{Category: " News "},
			wantName:     "Geo News",
			wantCategory: "News",
		},
		{
			name:         "missing category defaults to Other",
			input:        "Geo News",
			wantName:     "Geo News",
			wantCategory: channel.DefaultCategory,
		},
		{
			name:         "whitespace category defaults to Other",
			input:        "Geo News",
			attrs:        channel.Attributes{Category: "   "},
			wantName:     "Geo News",
			wantCategory: channel.DefaultCategory,
		},
		{
			name:      "empty string",
			input:     "",
			wantError: channel.ErrEmptyName,
		},
		{
			name:      "only whitespace",
			input:     " \t\n ",
			wantError: channel.ErrEmptyName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch, err := channel.NewChannel(tt.input, tt.attrs)

			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Errorf("NewChannel() error = %v, wantError %v", err, tt.wantError)
				}
				return
			}

			if err != nil {
				t.Fatalf("NewChannel() unexpected error = %v", err)
			}
			if ch.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", ch.Name(), tt.wantName)
			}
			if ch.Category() != tt.wantCategory {
				t.Errorf("Category() = %q, want %q", ch.Category(), tt.wantCategory)
			}
		})
	}
}

func TestChannel_Check(t *testing.T) {
	eligible := channel.Attributes{
		ID:        "geo.pk",
		LogoURL:   "http://img/geo.png",
		StreamURL: "http://x/geo.m3u8",
		Status:    "OK",
	}

	tests := []struct {
		name    string
		mutate  func(a *channel.Attributes)
		wantErr error
	}{
		{
			name:    "eligible channel",
			mutate:  func(a *channel.Attributes) {},
			wantErr: nil,
		},
		{
			name:    "empty status is eligible",
			mutate:  func(a *channel.Attributes) { a.Status = "" },
			wantErr: nil,
		},
		{
			name:    "missing logo",
			mutate:  func(a *channel.Attributes) { a.LogoURL = "" },
			wantErr: channel.ErrMissingLogo,
		},
		{
			name:    "missing stream url",
			mutate:  func(a *channel.Attributes) { a.StreamURL = " " },
			wantErr: channel.ErrMissingStream,
		},
		{
			name:    "nsfw",
			mutate:  func(a *channel.Attributes) { a.NSFW = true },
			wantErr: channel.ErrNSFW,
		},
		{
			name:    "broken",
			mutate:  func(a *channel.Attributes) { a.Status = "BROKEN" },
			wantErr: channel.ErrBroken,
		},
		{
			name:    "broken in lower case",
			mutate:  func(a *channel.Attributes) { a.Status = "broken" },
			wantErr: channel.ErrBroken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := eligible
			tt.mutate(&attrs)

			ch, err := channel.NewChannel("Geo News", attrs)
			if err != nil {
				t.Fatalf("NewChannel() unexpected error = %v", err)
			}

			if err := ch.Check(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Check() = %v, want %v", err, tt.wantErr)
			}
			if ch.Eligible() != (tt.wantErr == nil) {
				t.Errorf("Eligible() = %v, want %v", ch.Eligible(), tt.wantErr == nil)
			}
		})
	}
}

func TestChannel_HasStream(t *testing.T) {
	withStream, _ := channel.NewChannel("A", channel.Attributes{StreamURL: "http://x/a.m3u8"})
	withoutStream, _ := channel.NewChannel("B", channel.Attributes{})

	if !withStream.HasStream() {
		t.Error("expected channel with url to have a stream")
	}
	if withoutStream.HasStream() {
		t.Error("expected channel without url to have no stream")
	}
	if withoutStream.StreamURL() != "" {
		t.Errorf("expected empty stream url, got %q", withoutStream.StreamURL())
	}
}
