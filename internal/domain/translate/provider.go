package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Provider turns text in one language into another. Implementations must be safe for concurrent use.
type Provider interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
	Name() string
}

const (
	googleProviderName = "google-translate"
	googlePath         = "/translate_a/single"
	userAgent          = "Artha-Translator/1.0"
	// Caps how much of a provider response is read.
	maxResponseBytes = 4 << 20
)

type GoogleProvider struct {
	client  *http.Client
	baseURL string
}

func NewGoogleProvider(baseURL string, timeout time.Duration) *GoogleProvider {
	return &GoogleProvider{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (p *GoogleProvider) Name() string {
	return googleProviderName
}

func (p *GoogleProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	query := url.Values{}
	query.Set("client", "gtx")
	query.Set("sl", sourceLang)
	query.Set("tl", targetLang)
	query.Set("dt", "t")
	query.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+googlePath+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("provider request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return "", fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	return decodeGoogle(io.LimitReader(resp.Body, maxResponseBytes))
}

// decodeGoogle reads the nested array payload: element 0 is a list of
// fragments whose first item is the translated chunk.
func decodeGoogle(r io.Reader) (string, error) {
	var root []json.RawMessage
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(root) == 0 {
		return "", fmt.Errorf("empty response")
	}

	var fragments [][]json.RawMessage
	if err := json.Unmarshal(root[0], &fragments); err != nil {
		return "", fmt.Errorf("decode fragments: %w", err)
	}

	var b strings.Builder
	for _, fragment := range fragments {
		if len(fragment) == 0 {
			continue
		}
		var chunk string
		if err := json.Unmarshal(fragment[0], &chunk); err != nil {
			continue
		}
		b.WriteString(chunk)
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("no translated text in response")
	}

	return b.String(), nil
}
