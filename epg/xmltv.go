package epg

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
	"time"
)

// XMLTV timestamp layouts, with and without a timezone offset
const (
	xmltvLayoutTZ = "20060102150405 -0700"
	xmltvLayout   = "20060102150405"
)

// xmltvChannel represents a channel element in the guide XML
type xmltvChannel struct {
	ID          string `xml:"id,attr"`
	DisplayName string `xml:"display-name"`
}

// xmltvProgramme represents a programme element in the guide XML
type xmltvProgramme struct {
	Channel string `xml:"channel,attr"`
	Start   string `xml:"start,attr"`
	Stop    string `xml:"stop,attr"`
	Title   string `xml:"title"`
	Desc    string `xml:"desc"`
}

// xmltvDocument represents the root tv element of the guide XML
type xmltvDocument struct {
	XMLName    xml.Name         `xml:"tv"`
	Channels   []xmltvChannel   `xml:"channel"`
	Programmes []xmltvProgramme `xml:"programme"`
}

// Guide holds the parsed contents of an XMLTV document: the channel
// index plus the per-channel program lists, each sorted by start time.
type Guide struct {
	channels    map[string]ChannelInfo
	channelList []ChannelInfo
	programs    map[string][]Program
}

// ChannelInfo holds identification data for a guide channel
type ChannelInfo struct {
	ID          string
	DisplayName string
}

// ParseGuide parses an XMLTV document into a Guide.
// Programmes with no channel or title are skipped; timestamps that fail
// to parse become zero and the programme is dropped.
func ParseGuide(data []byte) (*Guide, error) {
	var doc xmltvDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse guide XML: %w", err)
	}

	g := &Guide{
		channels: make(map[string]ChannelInfo),
		programs: make(map[string][]Program),
	}

	for _, ch := range doc.Channels {
		info := ChannelInfo{
			ID:          ch.ID,
			DisplayName: ch.DisplayName,
		}
		g.channels[ch.ID] = info
		g.channelList = append(g.channelList, info)
	}

	for _, prog := range doc.Programmes {
		if prog.Channel == "" || prog.Title == "" {
			continue
		}

		start := parseXMLTVTime(prog.Start)
		end := parseXMLTVTime(prog.Stop)
		if start == 0 || end == 0 {
			continue
		}

		g.programs[prog.Channel] = append(g.programs[prog.Channel], Program{
			ChannelID:   prog.Channel,
			Title:       prog.Title,
			Description: prog.Desc,
			Start:       start,
			End:         end,
		})
	}

	for id := range g.programs {
		ps := g.programs[id]
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].Start < ps[j].Start
		})
	}

	return g, nil
}

// parseXMLTVTime converts an XMLTV timestamp to unix seconds, or 0 if
// it cannot be parsed
func parseXMLTVTime(value string) int64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}

	if t, err := time.Parse(xmltvLayoutTZ, value); err == nil {
		return t.Unix()
	}
	if t, err := time.Parse(xmltvLayout, value); err == nil {
		return t.Unix()
	}
	return 0
}

// Programs returns the program list for a channel, sorted by start
func (g *Guide) Programs(channelID string) []Program {
	return g.programs[channelID]
}

// Timeline returns a Timeline over a channel's programs
func (g *Guide) Timeline(channelID string) Timeline {
	return NewTimeline(g.programs[channelID])
}

// IsValid checks if a channel ID exists in the guide
func (g *Guide) IsValid(channelID string) bool {
	_, exists := g.channels[channelID]
	return exists
}

// ChannelInfo retrieves channel information by ID
func (g *Guide) ChannelInfo(channelID string) (ChannelInfo, bool) {
	info, exists := g.channels[channelID]
	return info, exists
}

// Search returns channels matching a partial ID or display name
// (case-insensitive). Returns up to maxResults channels.
func (g *Guide) Search(query string, maxResults int) []ChannelInfo {
	if query == "" {
		return nil
	}

	query = strings.ToLower(query)
	var results []ChannelInfo

	for _, ch := range g.channelList {
		if strings.Contains(strings.ToLower(ch.ID), query) ||
			strings.Contains(strings.ToLower(ch.DisplayName), query) {
			results = append(results, ch)
			if len(results) >= maxResults {
				break
			}
		}
	}

	return results
}

// ChannelCount returns the total number of channels in the guide
func (g *Guide) ChannelCount() int {
	return len(g.channels)
}
