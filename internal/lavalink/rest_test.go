package lavalink

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLoadResultSearch(t *testing.T) {
	body := []byte(`{
		"loadType": "search",
		"data": [
			{"encoded": "abc", "info": {"identifier": "id1", "title": "First", "author": "A", "length": 215000, "uri": "https://example.com/1"}},
			{"encoded": "def", "info": {"identifier": "id2", "title": "Second", "author": "B", "length": 180000, "uri": "https://example.com/2"}}
		]
	}`)

	tracks, err := parseLoadResult(body)
	if err != nil {
		t.Fatalf("parseLoadResult: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}
	if tracks[0].Encoded != "abc" || tracks[0].Info.Title != "First" {
		t.Errorf("first track = %+v", tracks[0])
	}
	if tracks[1].Info.Length != 180000 {
		t.Errorf("second track length = %d, want 180000", tracks[1].Info.Length)
	}
}

func TestParseLoadResultSingleTrack(t *testing.T) {
	body := []byte(`{
		"loadType": "track",
		"data": {"encoded": "xyz", "info": {"identifier": "id", "title": "Direct", "isStream": true}}
	}`)

	tracks, err := parseLoadResult(body)
	if err != nil {
		t.Fatalf("parseLoadResult: %v", err)
	}
	if len(tracks) != 1 || tracks[0].Encoded != "xyz" || !tracks[0].Info.IsStream {
		t.Errorf("tracks = %+v", tracks)
	}
}

func TestParseLoadResultPlaylist(t *testing.T) {
	body := []byte(`{
		"loadType": "playlist",
		"data": {
			"info": {"name": "Mix"},
			"tracks": [
				{"encoded": "p1", "info": {"title": "One"}},
				{"encoded": "p2", "info": {"title": "Two"}}
			]
		}
	}`)

	tracks, err := parseLoadResult(body)
	if err != nil {
		t.Fatalf("parseLoadResult: %v", err)
	}
	if len(tracks) != 2 || tracks[0].Encoded != "p1" {
		t.Errorf("tracks = %+v", tracks)
	}
}

func TestParseLoadResultEmpty(t *testing.T) {
	tracks, err := parseLoadResult([]byte(`{"loadType": "empty", "data": {}}`))
	if err != nil {
		t.Fatalf("parseLoadResult: %v", err)
	}
	if len(tracks) != 0 {
		t.Errorf("got %d tracks, want 0", len(tracks))
	}
}

func TestParseLoadResultError(t *testing.T) {
	body := []byte(`{"loadType": "error", "data": {"message": "video unavailable"}}`)

	_, err := parseLoadResult(body)
	if err == nil {
		t.Fatal("want error")
	}
	if !strings.Contains(err.Error(), "video unavailable") {
		t.Errorf("error = %v, want the node's message surfaced", err)
	}
}

func TestParseLoadResultUnknownType(t *testing.T) {
	if _, err := parseLoadResult([]byte(`{"loadType": "surprise", "data": {}}`)); err == nil {
		t.Fatal("want error on unknown load type")
	}
}

func TestPlayerTrackMarshalsExplicitNull(t *testing.T) {
	// A null encoded field is the stop command; omitting it would leave the
	// current track playing.
	data, err := json.Marshal(PlayerUpdate{Track: &PlayerTrack{Encoded: nil}})
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != `{"track":{"encoded":null}}` {
		t.Errorf("marshal = %s", got)
	}
}

func TestPlayerUpdateOmitsUnsetFields(t *testing.T) {
	vol := 40
	data, err := json.Marshal(PlayerUpdate{Volume: &vol})
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != `{"volume":40}` {
		t.Errorf("marshal = %s", got)
	}
}

func TestFilterPresets(t *testing.T) {
	bb := BassboostFilters()
	if len(bb.Equalizer) != 6 || bb.Equalizer[0].Gain != 0.2 {
		t.Errorf("bassboost = %+v", bb)
	}

	nc := NightcoreFilters()
	if nc.Timescale == nil || nc.Timescale.Speed != 1.2 || nc.Timescale.Pitch != 1.2 {
		t.Errorf("nightcore = %+v", nc)
	}

	data, err := json.Marshal(ClearFilters())
	if err != nil {
		t.Fatal(err)
	}
	// Clearing sends an empty filters object, which resets the player.
	if string(data) != `{}` {
		t.Errorf("clear marshal = %s", data)
	}
}
