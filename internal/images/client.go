// Package images generates hero and feature images for a project through an
// OpenAI-compatible multimodal chat endpoint.
package images

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"

	"ice_ai_server/config"
	"ice_ai_server/internal/types"
)

// Client calls the image gateway. A zero-key client is disabled and returns
// no images.
type Client struct {
	gatewayURL string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates an image client from configuration.
func NewClient(cfg config.Config) *Client {
	return &Client{
		gatewayURL: cfg.ImageGatewayURL,
		apiKey:     cfg.ImageAPIKey,
		model:      cfg.ImageModel,
		httpClient: &http.Client{},
	}
}

// Enabled reports whether image generation is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != "" && c.gatewayURL != ""
}

type gatewayRequest struct {
	Model      string              `json:"model"`
	Messages   []types.ChatMessage `json:"messages"`
	Modalities []string            `json:"modalities"`
}

type gatewayResponse struct {
	Choices []struct {
		Message struct {
			Images []struct {
				ImageURL struct {
					URL string `json:"url"`
				} `json:"image_url"`
			} `json:"images"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateProjectImages runs the hero and feature image calls in parallel and
// returns whichever succeeded. A failed call logs and omits only that image;
// it never fails the generation request.
func (c *Client) GenerateProjectImages(ctx context.Context, sitePrompt string) []types.GeneratedImage {
	if !c.Enabled() {
		return nil
	}

	specs := []struct {
		prompt      string
		alt         string
		description string
	}{
		{
			prompt:      fmt.Sprintf("Professional hero banner for %s. High-quality, realistic photography. 16:9, no text.", sitePrompt),
			alt:         "Hero Image",
			description: "Main hero section image",
		},
		{
			prompt:      fmt.Sprintf("Feature image for %s. Clean, professional. Square format, no text.", sitePrompt),
			alt:         "Feature Image",
			description: "Feature section illustration",
		},
	}

	urls := make([]string, len(specs))
	var wg sync.WaitGroup
	for i, spec := range specs {
		wg.Add(1)
		go func(i int, prompt string) {
			defer wg.Done()
			url, err := c.generateOne(ctx, prompt)
			if err != nil {
				log.Printf("WARN: image generation failed, omitting image: %v", err)
				return
			}
			urls[i] = url
		}(i, spec.prompt)
	}
	wg.Wait()

	var out []types.GeneratedImage
	for i, url := range urls {
		if url == "" {
			continue
		}
		out = append(out, types.GeneratedImage{
			URL:         url,
			Alt:         specs[i].alt,
			Description: specs[i].description,
		})
	}
	return out
}

func (c *Client) generateOne(ctx context.Context, prompt string) (string, error) {
	payload := gatewayRequest{
		Model: c.model,
		Messages: []types.ChatMessage{
			{Role: types.RoleUser, Content: prompt},
		},
		Modalities: []string{"image", "text"},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("error marshaling image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("error creating image request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error calling image gateway: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading image response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("image gateway returned status %d", resp.StatusCode)
	}

	var decoded gatewayResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", fmt.Errorf("error decoding image response: %w", err)
	}
	if len(decoded.Choices) == 0 || len(decoded.Choices[0].Message.Images) == 0 {
		return "", fmt.Errorf("image gateway returned no image")
	}

	url := decoded.Choices[0].Message.Images[0].ImageURL.URL
	if url == "" {
		return "", fmt.Errorf("image gateway returned an empty image url")
	}
	return url, nil
}
