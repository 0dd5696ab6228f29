package playlist

import (
	"reflect"
	"testing"
)

func TestParseBasicEntry(t *testing.T) {
	content := `#EXTM3U
#EXTINF:-1,Test Channel
http://example.com/stream.m3u8
`
	channels, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(channels) != 1 {
		t.Fatalf("Expected 1 channel, got %d", len(channels))
	}
	if channels[0].Name != "Test Channel" {
		t.Errorf("Unexpected name: %q", channels[0].Name)
	}
	if channels[0].URL != "http://example.com/stream.m3u8" {
		t.Errorf("Unexpected URL: %q", channels[0].URL)
	}
	if channels[0].Group != UncategorizedGroup {
		t.Errorf("Expected default group, got %q", channels[0].Group)
	}
}

func TestParseQuotedAttributes(t *testing.T) {
	content := `#EXTM3U
#EXTINF:-1 tvg-id="test.tv" tvg-logo="http://example.com/logo.png" group-title="News",Test Channel
http://example.com/stream.m3u8
`
	channels, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(channels) != 1 {
		t.Fatalf("Expected 1 channel, got %d", len(channels))
	}

	ch := channels[0]
	if ch.TVGID != "test.tv" {
		t.Errorf("Unexpected tvg-id: %q", ch.TVGID)
	}
	if ch.Logo != "http://example.com/logo.png" {
		t.Errorf("Unexpected logo: %q", ch.Logo)
	}
	if ch.Group != "News" {
		t.Errorf("Unexpected group: %q", ch.Group)
	}
}

func TestParseUnquotedAttributes(t *testing.T) {
	content := `#EXTINF:-1 tvg-id=test.tv group-title=News,Test Channel
http://example.com/stream.m3u8
`
	channels, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(channels) != 1 {
		t.Fatalf("Expected 1 channel, got %d", len(channels))
	}
	if channels[0].TVGID != "test.tv" {
		t.Errorf("Unexpected tvg-id: %q", channels[0].TVGID)
	}
	if channels[0].Group != "News" {
		t.Errorf("Unexpected group: %q", channels[0].Group)
	}
}

func TestParseNameWithCommaInAttribute(t *testing.T) {
	content := `#EXTINF:-1 group-title="News, World",World News
http://example.com/stream.m3u8
`
	channels, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(channels) != 1 {
		t.Fatalf("Expected 1 channel, got %d", len(channels))
	}
	if channels[0].Name != "World News" {
		t.Errorf("Expected name after last comma, got %q", channels[0].Name)
	}
	if channels[0].Group != "News, World" {
		t.Errorf("Unexpected group: %q", channels[0].Group)
	}
}

func TestParseSkipsJunk(t *testing.T) {
	content := `#EXTM3U
# a comment
http://example.com/orphan-url.m3u8

#EXTINF:-1,Kept Channel
#EXTVLCOPT:network-caching=1000
http://example.com/kept.m3u8
`
	channels, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(channels) != 1 {
		t.Fatalf("Expected 1 channel, got %d", len(channels))
	}
	if channels[0].Name != "Kept Channel" || channels[0].Num != 1 {
		t.Errorf("Unexpected channel: %+v", channels[0])
	}
}

func TestParseExtendedRequiresHeader(t *testing.T) {
	if _, err := ParseExtended("#EXTINF:-1,No Header\nhttp://x/1.m3u8\n"); err == nil {
		t.Error("Expected error for missing #EXTM3U header")
	}

	channels, err := ParseExtended("#EXTM3U\n#EXTINF:-1,Ok\nhttp://x/1.m3u8\n")
	if err != nil {
		t.Fatalf("ParseExtended failed: %v", err)
	}
	if len(channels) != 1 {
		t.Errorf("Expected 1 channel, got %d", len(channels))
	}
}

func TestExtractCategories(t *testing.T) {
	content := `#EXTM3U
#EXTINF:-1 group-title="News",Channel 1
http://example.com/1.m3u8
#EXTINF:-1 group-title="Sports",Channel 2
http://example.com/2.m3u8
#EXTINF:-1 group-title="News",Channel 3
http://example.com/3.m3u8
`
	channels, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	categories := ExtractCategories(channels)
	if !reflect.DeepEqual(categories, []string{"News", "Sports"}) {
		t.Errorf("Unexpected categories: %v", categories)
	}
}

func TestChannelNumbering(t *testing.T) {
	content := `#EXTM3U
#EXTINF:-1,First
http://x/1.m3u8
#EXTINF:-1,Second
http://x/2.m3u8
`
	channels, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	for i, ch := range channels {
		if ch.Num != i+1 {
			t.Errorf("Expected num %d, got %d", i+1, ch.Num)
		}
	}
}
