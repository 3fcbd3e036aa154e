package lavalink

import "encoding/json"

// Track mirrors a Lavalink v4 track object. Encoded is the opaque handle
// the node expects back when asked to play the track.
type Track struct {
	Encoded string    `json:"encoded"`
	Info    TrackInfo `json:"info"`
}

type TrackInfo struct {
	Identifier string `json:"identifier"`
	Author     string `json:"author"`
	Length     int64  `json:"length"` // milliseconds
	IsStream   bool   `json:"isStream"`
	Title      string `json:"title"`
	URI        string `json:"uri"`
	ArtworkURL string `json:"artworkUrl"`
	SourceName string `json:"sourceName"`
}

// message is the envelope for everything the node pushes over the socket.
type message struct {
	Op        string `json:"op"`
	SessionID string `json:"sessionId"` // op=ready

	// op=event
	Type     string `json:"type"`
	GuildID  string `json:"guildId"`
	Track    *Track `json:"track"`
	Reason   string `json:"reason"` // TrackEndEvent
	Code     int    `json:"code"`   // WebSocketClosedEvent
	ByRemote bool   `json:"byRemote"`
}

type EventType string

const (
	EventTrackStart      EventType = "TrackStartEvent"
	EventTrackEnd        EventType = "TrackEndEvent"
	EventTrackException  EventType = "TrackExceptionEvent"
	EventTrackStuck      EventType = "TrackStuckEvent"
	EventWebSocketClosed EventType = "WebSocketClosedEvent"
)

// Event is a track-lifecycle notification emitted by the node.
type Event struct {
	Type    EventType
	GuildID string
	Track   *Track
	Reason  string
	Code    int
}

// --- REST payloads ---

// PlayerUpdate is the PATCH body for a player. Nil fields are omitted and
// leave the corresponding player state untouched.
type PlayerUpdate struct {
	Track   *PlayerTrack `json:"track,omitempty"`
	Paused  *bool        `json:"paused,omitempty"`
	Volume  *int         `json:"volume,omitempty"`
	Filters *Filters     `json:"filters,omitempty"`
	Voice   *VoiceState  `json:"voice,omitempty"`
}

// PlayerTrack carries the track to play. An explicit JSON null Encoded
// stops the current track, so the field must marshal even when nil.
type PlayerTrack struct {
	Encoded *string `json:"encoded"`
}

// VoiceState is the Discord voice credential triple the node needs to
// join a voice channel on the bot's behalf.
type VoiceState struct {
	Token     string `json:"token"`
	Endpoint  string `json:"endpoint"`
	SessionID string `json:"sessionId"`
}

type Filters struct {
	Equalizer []Band     `json:"equalizer,omitempty"`
	Timescale *Timescale `json:"timescale,omitempty"`
}

type Band struct {
	Band int     `json:"band"`
	Gain float64 `json:"gain"`
}

type Timescale struct {
	Speed float64 `json:"speed"`
	Pitch float64 `json:"pitch"`
	Rate  float64 `json:"rate"`
}

// BassboostFilters boosts the low equalizer bands.
func BassboostFilters() Filters {
	bands := make([]Band, 6)
	gains := []float64{0.2, 0.15, 0.1, 0.05, 0.0, -0.05}
	for i, g := range gains {
		bands[i] = Band{Band: i, Gain: g}
	}
	return Filters{Equalizer: bands}
}

// NightcoreFilters speeds playback up and raises the pitch.
func NightcoreFilters() Filters {
	return Filters{Timescale: &Timescale{Speed: 1.2, Pitch: 1.2, Rate: 1.0}}
}

// ClearFilters resets every filter on the player.
func ClearFilters() Filters {
	return Filters{}
}

// loadResult is the GET /v4/loadtracks response. The shape of Data depends
// on LoadType, hence the RawMessage.
type loadResult struct {
	LoadType string          `json:"loadType"`
	Data     json.RawMessage `json:"data"`
}
