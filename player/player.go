// Package player launches an external media player for a stream URL.
// The child process is fire-and-forget: playback control stays with the
// player's own UI.
package player

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Kind selects the media player backend
type Kind string

const (
	// KindMPV is the default, the most reliable across platforms
	KindMPV Kind = "mpv"
	// KindVLC uses VLC media player
	KindVLC Kind = "vlc"
	// KindFFplay uses the bare-bones player from the FFmpeg suite
	KindFFplay Kind = "ffplay"
	// KindCustom uses a user-supplied executable and argument template
	KindCustom Kind = "custom"
)

// Kinds returns the supported players in recommended order
func Kinds() []Kind {
	return []Kind{KindMPV, KindVLC, KindFFplay, KindCustom}
}

// DisplayName returns the label shown in settings UIs
func (k Kind) DisplayName() string {
	switch k {
	case KindMPV:
		return "MPV (Recommended)"
	case KindVLC:
		return "VLC Media Player"
	case KindFFplay:
		return "FFplay"
	case KindCustom:
		return "Custom Player"
	default:
		return string(k)
	}
}

// DefaultExecutable returns the executable looked up on PATH when no
// override is configured
func (k Kind) DefaultExecutable() string {
	switch k {
	case KindMPV:
		return "mpv"
	case KindVLC:
		return "vlc"
	case KindFFplay:
		return "ffplay"
	default:
		return ""
	}
}

// Settings configures how streams are handed to the player
type Settings struct {
	Kind       Kind     `yaml:"kind" env:"PLAYER_KIND"`
	Executable string   `yaml:"executable" env:"PLAYER_EXECUTABLE"`
	CustomArgs []string `yaml:"custom_args"`
	CacheSecs  int      `yaml:"cache_secs" env:"PLAYER_CACHE_SECS"`
	Volume     int      `yaml:"volume" env:"PLAYER_VOLUME"`
	Fullscreen bool     `yaml:"fullscreen" env:"PLAYER_FULLSCREEN"`
}

// DefaultSettings returns the settings used when the config file has
// no player section
func DefaultSettings() Settings {
	return Settings{
		Kind:       KindMPV,
		CacheSecs:  5,
		Volume:     100,
		Fullscreen: true,
	}
}

// Validate reports configuration problems
func (s Settings) Validate() error {
	switch s.Kind {
	case KindMPV, KindVLC, KindFFplay:
	case KindCustom:
		if s.Executable == "" {
			return fmt.Errorf("custom player requires an executable path")
		}
	default:
		return fmt.Errorf("unknown player kind %q", s.Kind)
	}
	if s.Volume < 0 || s.Volume > 200 {
		return fmt.Errorf("player volume %d out of range 0-200", s.Volume)
	}
	return nil
}

func (s Settings) executable() string {
	if s.Executable != "" {
		return s.Executable
	}
	return s.Kind.DefaultExecutable()
}

// BuildArgs builds the player command line for one stream. live tweaks
// buffering for live streams where latency matters more than smoothness.
func (s Settings) BuildArgs(url, title string, live bool) []string {
	switch s.Kind {
	case KindVLC:
		args := []string{
			"--meta-title=" + title,
			// VLC volume runs 0-512 with 256 as 100%
			fmt.Sprintf("--volume=%d", s.Volume*256/100),
			"--play-and-exit",
			"--no-video-title-show",
		}
		if s.CacheSecs > 0 {
			args = append(args, fmt.Sprintf("--network-caching=%d", s.CacheSecs*1000))
		}
		if s.Fullscreen {
			args = append(args, "--fullscreen")
		}
		return append(args, url)

	case KindFFplay:
		args := []string{
			"-window_title", title,
			"-volume", strconv.Itoa(s.Volume),
		}
		if s.Fullscreen {
			args = append(args, "-fs")
		}
		if live {
			args = append(args, "-probesize", "32", "-analyzeduration", "0")
		}
		return append(args, url)

	case KindCustom:
		args := make([]string, 0, len(s.CustomArgs))
		for _, arg := range s.CustomArgs {
			arg = strings.ReplaceAll(arg, "{url}", url)
			arg = strings.ReplaceAll(arg, "{title}", title)
			args = append(args, arg)
		}
		return args

	default: // mpv
		args := []string{
			"--title=" + title,
			fmt.Sprintf("--volume=%d", s.Volume),
			"--keep-open=no",
		}
		if s.CacheSecs > 0 {
			args = append(args, fmt.Sprintf("--cache-secs=%d", s.CacheSecs))
		}
		if s.Fullscreen {
			args = append(args, "--fullscreen")
		}
		if live {
			args = append(args, "--profile=low-latency")
		}
		return append(args, url)
	}
}

// Launch starts the player detached and returns once the process is
// running. The child is reaped in the background.
func (s Settings) Launch(url, title string, live bool) error {
	cmd := exec.Command(s.executable(), s.BuildArgs(url, title, live)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", s.Kind, err)
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
