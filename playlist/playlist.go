// Package playlist parses M3U playlists into channel lists. The parser
// is deliberately forgiving: real-world playlists mix quoted and
// unquoted attributes, skip the header, and interleave junk lines.
package playlist

import (
	"bufio"
	"fmt"
	"sort"
	"strings"
)

// UncategorizedGroup is assigned to channels without a group-title
const UncategorizedGroup = "Uncategorized"

// Channel is one playlist entry
type Channel struct {
	Num   int
	Name  string
	TVGID string
	Logo  string
	Group string
	URL   string
}

// Parse reads M3U content and returns the channels it declares.
// An entry needs an EXTINF line with a name followed by a URL line;
// anything else is skipped.
func Parse(content string) ([]Channel, error) {
	var channels []Channel
	var current Channel

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, "#EXTINF:"):
			current = Channel{
				Name:  extractName(line),
				TVGID: extractAttribute(line, "tvg-id"),
				Logo:  extractAttribute(line, "tvg-logo"),
				Group: extractAttribute(line, "group-title"),
			}
			if current.Group == "" {
				current.Group = UncategorizedGroup
			}

		case line == "" || strings.HasPrefix(line, "#"):
			// comments and directives between entries

		default:
			if current.Name == "" {
				continue
			}
			current.URL = line
			current.Num = len(channels) + 1
			channels = append(channels, current)
			current = Channel{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read playlist: %w", err)
	}

	return channels, nil
}

// ParseExtended parses M3U content, requiring the #EXTM3U header
func ParseExtended(content string) ([]Channel, error) {
	if !strings.HasPrefix(content, "#EXTM3U") {
		return nil, fmt.Errorf("invalid M3U format: missing #EXTM3U header")
	}
	return Parse(content)
}

// ExtractCategories returns the distinct channel groups, sorted
func ExtractCategories(channels []Channel) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, ch := range channels {
		if !seen[ch.Group] {
			seen[ch.Group] = true
			categories = append(categories, ch.Group)
		}
	}
	sort.Strings(categories)
	return categories
}

// extractName returns the display name after the last comma of an
// EXTINF line. Attribute values may themselves contain commas, which
// is why the last comma wins.
func extractName(line string) string {
	pos := strings.LastIndex(line, ",")
	if pos < 0 {
		return ""
	}
	return strings.TrimSpace(line[pos+1:])
}

// extractAttribute pulls one attr="value" or attr=value out of an
// EXTINF line. Unquoted values end at the next space or comma.
func extractAttribute(line, attr string) string {
	quoted := attr + `="`
	if start := strings.Index(line, quoted); start >= 0 {
		start += len(quoted)
		if end := strings.Index(line[start:], `"`); end >= 0 {
			return line[start : start+end]
		}
	}

	unquoted := attr + "="
	if start := strings.Index(line, unquoted); start >= 0 {
		start += len(unquoted)
		rest := line[start:]
		if pos := strings.IndexAny(rest, " ,"); pos >= 0 {
			rest = rest[:pos]
		}
		return strings.TrimSpace(rest)
	}

	return ""
}
