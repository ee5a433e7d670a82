// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dropbox implements the document-export uploader used by the
statistics reporting pipeline.

It is a deliberately thin wrapper over two Dropbox HTTP endpoints: content
upload and shared-link creation. The stats domain depends only on the
stats.Uploader interface.
*/
package dropbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/ripple/internal/platform/apperr"
)

// Client uploads rendered report documents to a Dropbox app folder.
type Client struct {
	apiURL     string
	contentURL string
	token      string
	httpClient *http.Client
}

// New constructs a Client from an access token.
func New(apiURL, contentURL, token string) *Client {
	return &Client{
		apiURL:     strings.TrimRight(apiURL, "/"),
		contentURL: strings.TrimRight(contentURL, "/"),
		token:      token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Upload stores the document under the given name and returns a shareable URL.
func (client *Client) Upload(ctx context.Context, name string, document []byte) (string, error) {
	path := "/" + strings.TrimLeft(name, "/")

	if err := client.uploadContent(ctx, path, document); err != nil {
		return "", err
	}

	return client.createSharedLink(ctx, path)
}

// uploadContent ships the raw bytes to /2/files/upload.
func (client *Client) uploadContent(ctx context.Context, path string, document []byte) error {
	args, _ := json.Marshal(map[string]any{
		"path":       path,
		"mode":       "overwrite",
		"autorename": false,
		"mute":       true,
	})

	request, err := http.NewRequestWithContext(ctx, http.MethodPost,
		client.contentURL+"/2/files/upload", bytes.NewReader(document))
	if err != nil {
		return apperr.Upstream("Failed to build report upload request", err)
	}
	request.Header.Set("Authorization", "Bearer "+client.token)
	request.Header.Set("Content-Type", "application/octet-stream")
	request.Header.Set("Dropbox-API-Arg", string(args))

	response, err := client.httpClient.Do(request)
	if err != nil {
		return apperr.Upstream("Failed to upload report", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return apperr.Upstream(fmt.Sprintf("Report upload rejected (status %d)", response.StatusCode), nil)
	}

	return nil
}

// createSharedLink asks /2/sharing/create_shared_link_with_settings for a
// public URL to the uploaded document.
func (client *Client) createSharedLink(ctx context.Context, path string) (string, error) {
	body, _ := json.Marshal(map[string]any{"path": path})

	request, err := http.NewRequestWithContext(ctx, http.MethodPost,
		client.apiURL+"/2/sharing/create_shared_link_with_settings", bytes.NewReader(body))
	if err != nil {
		return "", apperr.Upstream("Failed to build share link request", err)
	}
	request.Header.Set("Authorization", "Bearer "+client.token)
	request.Header.Set("Content-Type", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return "", apperr.Upstream("Failed to create share link", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", apperr.Upstream(fmt.Sprintf("Share link rejected (status %d)", response.StatusCode), nil)
	}

	payload := struct {
		URL string `json:"url"`
	}{}
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return "", apperr.Upstream("Share link response malformed", err)
	}

	return payload.URL, nil
}
