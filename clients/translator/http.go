package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 5 * time.Second

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error,omitempty"`
}

type clientImpl struct {
	apiHost    string
	source     string
	httpClient *http.Client
	logger     *slog.Logger
}

type Config struct {
	ApiHost string
	// Source language code, "auto" when empty.
	Source  string
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewClient returns a translator for a LibreTranslate compatible API.
func NewClient(cfg *Config) (Translator, error) {
	if cfg == nil {
		return nil, errors.New("missing parameter: cfg")
	}

	if cfg.ApiHost == "" {
		return nil, errors.New("missing parameter: cfg.ApiHost")
	}

	source := cfg.Source
	if source == "" {
		source = "auto"
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &clientImpl{
		apiHost:    strings.TrimRight(cfg.ApiHost, "/"),
		source:     source,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

func (client *clientImpl) ToEnglish(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	english, err := client.translate(ctx, text)
	if err != nil {
		client.logger.Warn("Translation error", slog.String("error", err.Error()))

		return text
	}

	client.logger.Debug("Translated", slog.String("original", text), slog.String("english", english))

	return english
}

func (client *clientImpl) translate(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(translateRequest{
		Q:      text,
		Source: client.source,
		Target: "en",
		Format: "text",
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, client.apiHost+"/translate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return "", err
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var out translateResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, out.Error)
	}

	if strings.TrimSpace(out.TranslatedText) == "" {
		return "", errors.New("empty translation")
	}

	return out.TranslatedText, nil
}

type passthrough struct{}

// NewPassthrough returns a translator that leaves text untouched, for
// sessions that are already spoken in English.
func NewPassthrough() Translator {
	return passthrough{}
}

func (passthrough) ToEnglish(_ context.Context, text string) string {
	return text
}
