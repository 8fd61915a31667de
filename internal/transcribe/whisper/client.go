// Package whisper is a client for OpenAI-compatible speech-to-text
// endpoints. Only the transcription call is implemented; the target spoken
// language is fixed by configuration, never inferred from the audio.
package whisper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/fieldscope/field-inspector/internal/model"
)

var _ model.SpeechBackend = (*Client)(nil)

// Client calls the /audio/transcriptions endpoint of an OpenAI-compatible
// API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	language   string
}

// NewClient creates a transcription client. baseURL is the API root, e.g.
// "https://api.openai.com/v1".
func NewClient(baseURL, apiKey, speechModel, language string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		model:      speechModel,
		language:   language,
	}
}

// Transcribe submits the audio buffer and returns the transcribed text
// verbatim.
func (c *Client) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", audioFileName(contentType))
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("failed to write audio part: %w", err)
	}

	fields := map[string]string{
		"model":           c.model,
		"language":        c.language,
		"response_format": "text",
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return "", fmt.Errorf("failed to write field %s: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read transcription response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription backend returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return strings.TrimSpace(string(respBody)), nil
}

// audioFileName derives a filename for the multipart part; the backend uses
// the extension to pick a decoder.
func audioFileName(contentType string) string {
	exts, err := mime.ExtensionsByType(contentType)
	if err == nil && len(exts) > 0 {
		return "audio" + exts[0]
	}
	return "audio.wav"
}
