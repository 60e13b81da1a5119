package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// apiURLFromEnv returns the HTTP API base URL from EPOCHLINE_HTTP or a default.
func apiURLFromEnv() string {
	if addr := os.Getenv("EPOCHLINE_HTTP"); addr != "" {
		return addr
	}
	return "http://127.0.0.1:8080"
}

// ownerTokenFromEnv returns the owner bearer token from EPOCHLINE_OWNER_TOKEN.
func ownerTokenFromEnv() string {
	return os.Getenv("EPOCHLINE_OWNER_TOKEN")
}

// doJSON performs one API request. A non-nil body is sent as JSON; a non-nil
// out receives the decoded response. Error responses are surfaced with the
// server's error message when present.
func doJSON(ctx context.Context, method, url string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := ownerTokenFromEnv(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			return fmt.Errorf("%s (status %d)", e.Error, resp.StatusCode)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// printJSON pretty-prints v to w.
func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
