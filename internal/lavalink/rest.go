package lavalink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Search asks the node to resolve a query. Bare queries go through a
// YouTube search; anything that looks like a URL is passed straight
// through. May return an empty slice.
func (c *Client) Search(ctx context.Context, query string) ([]Track, error) {
	identifier := query
	if u, err := url.Parse(query); err != nil || u.Scheme == "" {
		identifier = "ytsearch:" + query
	}

	endpoint := c.restURL("/loadtracks") + "?identifier=" + url.QueryEscape(identifier)
	body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return parseLoadResult(body)
}

// parseLoadResult decodes a /loadtracks response; the data payload's shape
// depends on loadType.
func parseLoadResult(body []byte) ([]Track, error) {
	var res loadResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("failed to decode load result: %w", err)
	}

	switch res.LoadType {
	case "track":
		var t Track
		if err := json.Unmarshal(res.Data, &t); err != nil {
			return nil, fmt.Errorf("failed to decode track: %w", err)
		}
		return []Track{t}, nil

	case "search":
		var tracks []Track
		if err := json.Unmarshal(res.Data, &tracks); err != nil {
			return nil, fmt.Errorf("failed to decode search results: %w", err)
		}
		return tracks, nil

	case "playlist":
		var pl struct {
			Tracks []Track `json:"tracks"`
		}
		if err := json.Unmarshal(res.Data, &pl); err != nil {
			return nil, fmt.Errorf("failed to decode playlist: %w", err)
		}
		return pl.Tracks, nil

	case "empty":
		return nil, nil

	case "error":
		var exc struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(res.Data, &exc)
		return nil, fmt.Errorf("track load failed: %s", exc.Message)

	default:
		return nil, fmt.Errorf("unknown load type %q", res.LoadType)
	}
}

// UpdatePlayer patches the guild's player on the node: track, pause state,
// volume, filters and/or voice credentials, depending on which fields of
// upd are set.
func (c *Client) UpdatePlayer(ctx context.Context, guildID string, upd PlayerUpdate) error {
	sessionID, err := c.SessionID()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(upd)
	if err != nil {
		return err
	}

	endpoint := c.restURL(fmt.Sprintf("/sessions/%s/players/%s?noReplace=false", sessionID, guildID))
	_, err = c.do(ctx, http.MethodPatch, endpoint, payload)
	return err
}

// DestroyPlayer removes the guild's player from the node.
func (c *Client) DestroyPlayer(ctx context.Context, guildID string) error {
	sessionID, err := c.SessionID()
	if err != nil {
		return err
	}

	endpoint := c.restURL(fmt.Sprintf("/sessions/%s/players/%s", sessionID, guildID))
	_, err = c.do(ctx, http.MethodDelete, endpoint, nil)
	return err
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.password)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("lavalink http %d: %s", resp.StatusCode, truncate(body))
	}
	return body, nil
}

func truncate(b []byte) string {
	if len(b) > 200 {
		return string(b[:200]) + "..."
	}
	return string(b)
}
