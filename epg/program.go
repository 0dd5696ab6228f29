package epg

import "fmt"

// Program is a single time-bounded guide entry for a channel.
// Start and End are unix seconds; a program occupies [Start, End).
type Program struct {
	ChannelID   string
	Title       string
	Description string
	Start       int64
	End         int64
}

// Contains reports whether the program is on air at the given time.
// The start is inclusive, the end exclusive, so back-to-back programs
// never both match.
func (p Program) Contains(now int64) bool {
	return now >= p.Start && now < p.End
}

// Progress returns how far through the program the given time is, in
// [0, 1]. Degenerate intervals (End <= Start) report 0.
func (p Program) Progress(now int64) float32 {
	if p.End <= p.Start {
		return 0.0
	}

	elapsed := now - p.Start
	duration := p.End - p.Start

	progress := float32(elapsed) / float32(duration)
	if progress < 0 {
		return 0.0
	}
	if progress > 1 {
		return 1.0
	}
	return progress
}

// StartClock formats the start time as HH:MM in UTC
func (p Program) StartClock() string {
	return clock(p.Start)
}

// EndClock formats the end time as HH:MM in UTC
func (p Program) EndClock() string {
	return clock(p.End)
}

func clock(ts int64) string {
	if ts == 0 {
		return ""
	}
	secsInDay := ts % 86400
	return fmt.Sprintf("%02d:%02d", secsInDay/3600, (secsInDay%3600)/60)
}
