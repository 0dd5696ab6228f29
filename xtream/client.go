// Package xtream implements a client for the Xtream-codes player_api
// exposed by IPTV portals: authentication, category and stream listings,
// the short EPG, and the URL builders for the actual media endpoints.
package xtream

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alorle/iptv-deck/epg"
	"github.com/alorle/iptv-deck/internal/httpx"
)

// DefaultTimeout bounds a single portal request. Stream listings can
// run to tens of megabytes on large portals.
const DefaultTimeout = 120 * time.Second

// DefaultShortEPGLimit is how many programs the short EPG asks for
const DefaultShortEPGLimit = 4

// Category is one live/VOD/series category as served by player_api
type Category struct {
	CategoryID   FlexString `json:"category_id"`
	CategoryName string     `json:"category_name"`
	ParentID     FlexInt    `json:"parent_id"`
}

// Channel is one live stream as served by get_live_streams
type Channel struct {
	Num          FlexString `json:"num"`
	Name         string     `json:"name"`
	StreamType   string     `json:"stream_type"`
	StreamID     FlexString `json:"stream_id"`
	StreamIcon   string     `json:"stream_icon"`
	EPGChannelID string     `json:"epg_channel_id"`
	CategoryID   FlexString `json:"category_id"`
	TVArchive    FlexInt    `json:"tv_archive"`
	IsAdult      FlexInt    `json:"is_adult"`
}

// Client talks to one Xtream portal
type Client struct {
	baseURL  string
	username string
	password string
	http     *httpx.Client
}

// NewClient creates a Client for the given portal. Whitespace and a
// trailing slash in the server URL are tolerated.
func NewClient(serverURL, username, password string) *Client {
	return &Client{
		baseURL:  strings.TrimSuffix(strings.TrimSpace(serverURL), "/"),
		username: strings.TrimSpace(username),
		password: strings.TrimSpace(password),
		http:     httpx.New(DefaultTimeout),
	}
}

func (c *Client) credentials() string {
	return fmt.Sprintf("username=%s&password=%s",
		url.QueryEscape(c.username), url.QueryEscape(c.password))
}

func (c *Client) apiURL(action string) string {
	return fmt.Sprintf("%s/player_api.php?%s&action=%s", c.baseURL, c.credentials(), action)
}

// Authenticate checks the credentials against the portal. A reachable
// portal that rejects the credentials returns false without error.
func (c *Client) Authenticate() (bool, error) {
	var resp struct {
		UserInfo map[string]interface{} `json:"user_info"`
	}
	endpoint := fmt.Sprintf("%s/player_api.php?%s", c.baseURL, c.credentials())
	if err := c.http.GetJSON(endpoint, nil, &resp); err != nil {
		return false, err
	}
	return resp.UserInfo != nil, nil
}

// GetLiveCategories returns the live TV categories
func (c *Client) GetLiveCategories() ([]Category, error) {
	var categories []Category
	if err := c.http.GetJSON(c.apiURL("get_live_categories"), nil, &categories); err != nil {
		return nil, fmt.Errorf("failed to load live categories: %w", err)
	}
	return categories, nil
}

// GetVODCategories returns the movie categories
func (c *Client) GetVODCategories() ([]Category, error) {
	var categories []Category
	if err := c.http.GetJSON(c.apiURL("get_vod_categories"), nil, &categories); err != nil {
		return nil, fmt.Errorf("failed to load VOD categories: %w", err)
	}
	return categories, nil
}

// GetSeriesCategories returns the series categories
func (c *Client) GetSeriesCategories() ([]Category, error) {
	var categories []Category
	if err := c.http.GetJSON(c.apiURL("get_series_categories"), nil, &categories); err != nil {
		return nil, fmt.Errorf("failed to load series categories: %w", err)
	}
	return categories, nil
}

// GetLiveStreams returns every live channel the account can see.
// Channels missing a num get one assigned from their list position.
func (c *Client) GetLiveStreams() ([]Channel, error) {
	var channels []Channel
	if err := c.http.GetJSON(c.apiURL("get_live_streams"), nil, &channels); err != nil {
		return nil, fmt.Errorf("failed to load channels: %w", err)
	}
	for i := range channels {
		if channels[i].Num == "" {
			channels[i].Num = FlexString(strconv.Itoa(i + 1))
		}
	}
	return channels, nil
}

// shortEPGEntry is the wire shape of one epg_listings element. Titles
// and descriptions arrive base64-encoded on most panels.
type shortEPGEntry struct {
	ID             FlexString `json:"id"`
	ChannelID      FlexString `json:"epg_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	StartTimestamp FlexInt    `json:"start_timestamp"`
	StopTimestamp  FlexInt    `json:"stop_timestamp"`
}

// GetShortEPG returns the current and next programs for one stream,
// sorted by start time. limit <= 0 uses DefaultShortEPGLimit.
func (c *Client) GetShortEPG(streamID string, limit int) ([]epg.Program, error) {
	if limit <= 0 {
		limit = DefaultShortEPGLimit
	}
	endpoint := fmt.Sprintf("%s&stream_id=%s&limit=%d",
		c.apiURL("get_short_epg"), url.QueryEscape(streamID), limit)

	var resp struct {
		Listings []shortEPGEntry `json:"epg_listings"`
	}
	if err := c.http.GetJSON(endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to load short EPG: %w", err)
	}

	programs := make([]epg.Program, 0, len(resp.Listings))
	for _, entry := range resp.Listings {
		programs = append(programs, epg.Program{
			ChannelID:   entry.ChannelID.String(),
			Title:       decodeIfBase64(entry.Title),
			Description: decodeIfBase64(entry.Description),
			Start:       entry.StartTimestamp.Int64(),
			End:         entry.StopTimestamp.Int64(),
		})
	}
	sort.SliceStable(programs, func(i, j int) bool {
		return programs[i].Start < programs[j].Start
	})
	return programs, nil
}

// LiveStreamURL builds the playable URL for a live channel
func (c *Client) LiveStreamURL(streamID string) string {
	return fmt.Sprintf("%s/live/%s/%s/%s.ts", c.baseURL, c.username, c.password, streamID)
}

// MovieURL builds the playable URL for a VOD stream
func (c *Client) MovieURL(streamID, extension string) string {
	return fmt.Sprintf("%s/movie/%s/%s/%s.%s", c.baseURL, c.username, c.password, streamID, extension)
}

// EpisodeURL builds the playable URL for a series episode
func (c *Client) EpisodeURL(episodeID, extension string) string {
	return fmt.Sprintf("%s/series/%s/%s/%s.%s", c.baseURL, c.username, c.password, episodeID, extension)
}

// XMLTVURL builds the URL of the portal's full XMLTV guide
func (c *Client) XMLTVURL() string {
	return fmt.Sprintf("%s/xmltv.php?%s", c.baseURL, c.credentials())
}

// decodeIfBase64 decodes payloads that arrive base64-encoded, leaving
// plain text alone when decoding fails or yields invalid UTF-8
func decodeIfBase64(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}
	decoded, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil || !utf8.Valid(decoded) {
		return s
	}
	return string(decoded)
}
