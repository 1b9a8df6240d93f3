// Package share serializes a shopping list into a compact token that can
// travel inside a URL, and restores lists from such tokens.
package share

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/yukirin/cplist/internal/model"
)

// MaxTokenLength caps encoded tokens so share URLs stay below common
// browser and chat-client limits.
const MaxTokenLength = 8000

// ErrTokenTooLong reports a list too large to fit in a share URL.
var ErrTokenTooLong = errors.New("list too large to share as a link")

// Payload is the shared representation of a list.
type Payload struct {
	Name   string              `json:"name"`
	Booths []model.BoothRecord `json:"booths"`
}

// Encode serializes the payload to a deflate-compressed, URL-safe token.
func Encode(p *Payload) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("failed to create compressor: %w", err)
	}
	if _, err := fw.Write(raw); err != nil {
		return "", fmt.Errorf("failed to compress payload: %w", err)
	}
	if err := fw.Close(); err != nil {
		return "", fmt.Errorf("failed to finish compression: %w", err)
	}

	token := base64.RawURLEncoding.EncodeToString(buf.Bytes())
	if len(token) > MaxTokenLength {
		return "", fmt.Errorf("%w: %d characters", ErrTokenTooLong, len(token))
	}
	return token, nil
}

// Decode restores a payload from a token produced by Encode.
func Decode(token string) (*Payload, error) {
	compressed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("malformed share token: %w", err)
	}

	fr := flate.NewReader(bytes.NewReader(compressed))
	defer func() { _ = fr.Close() }()

	raw, err := io.ReadAll(fr)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress share token: %w", err)
	}

	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("failed to decode share payload: %w", err)
	}
	return &p, nil
}
