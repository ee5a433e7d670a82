// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package imgur implements the object-store collaborator for user-supplied
images (post images, avatars) against the Imgur v3 API.

Core Responsibilities:

  - Upload: base64 form submission returning a public image URL.
  - Delete: removal by the delete hash embedded in the stored URL.
  - Isolation: domain code sees only the post.ObjectStore interface.
*/
package imgur

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taibuivan/ripple/internal/platform/apperr"
)

// Client talks to the Imgur anonymous-upload API.
type Client struct {
	baseURL    string
	clientID   string
	httpClient *http.Client
}

// New constructs a Client. baseURL is typically https://api.imgur.com.
func New(baseURL, clientID string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		clientID: clientID,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// uploadResponse is the subset of the Imgur payload we consume.
type uploadResponse struct {
	Data struct {
		Link       string `json:"link"`
		DeleteHash string `json:"deletehash"`
	} `json:"data"`
	Success bool `json:"success"`
}

// Upload submits raw image bytes and returns the public link.
func (client *Client) Upload(ctx context.Context, image []byte) (string, error) {
	form := url.Values{}
	form.Set("image", base64.StdEncoding.EncodeToString(image))

	request, err := http.NewRequestWithContext(ctx, http.MethodPost,
		client.baseURL+"/3/image", strings.NewReader(form.Encode()))
	if err != nil {
		return "", apperr.Upstream("Failed to build image upload request", err)
	}
	request.Header.Set("Authorization", "Client-ID "+client.clientID)
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return "", apperr.Upstream("Failed to upload image", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", apperr.Upstream("Image host rejected the upload", nil)
	}

	payload := uploadResponse{}
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil || !payload.Success {
		return "", apperr.Upstream("Image host returned a malformed response", err)
	}

	return payload.Data.Link, nil
}

// Delete removes a previously uploaded image by its URL.
//
// The delete hash is the last path segment of the stored link, mirroring how
// the upload response embeds it.
func (client *Client) Delete(ctx context.Context, imageURL string) error {
	deleteHash := ExtractDeleteHash(imageURL)
	if deleteHash == "" {
		return nil
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		client.baseURL+"/3/image/"+deleteHash, nil)
	if err != nil {
		return apperr.Upstream("Failed to build image delete request", err)
	}
	request.Header.Set("Authorization", "Client-ID "+client.clientID)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return apperr.Upstream("Failed to delete image", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return apperr.Upstream("Image host rejected the delete", nil)
	}

	return nil
}

// ExtractDeleteHash pulls the delete hash out of a stored image URL.
func ExtractDeleteHash(imageURL string) string {
	trimmed := strings.TrimRight(imageURL, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return ""
	}
	hash := trimmed[idx+1:]

	// Stored links keep the file extension; the hash does not.
	if dot := strings.IndexByte(hash, '.'); dot >= 0 {
		hash = hash[:dot]
	}
	return hash
}
