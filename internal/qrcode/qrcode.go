// Package qrcode renders QR codes for TOTP provisioning URIs, either as raw
// PNG bytes or as a base64 data URI ready to be embedded in an <img> tag.
// It is a thin wrapper around github.com/skip2/go-qrcode.
package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

// Sentinel errors returned by this package.
var (
	// ErrEmptyContent is returned when the content string is empty or only
	// whitespace.
	ErrEmptyContent = errors.New("qr content cannot be empty")

	// ErrGenerationFailed is returned when the underlying library cannot
	// encode the content.
	ErrGenerationFailed = errors.New("failed to generate QR code")
)

// DefaultSize is the image edge length in pixels used when size is zero or
// negative.
const DefaultSize = 256

// Generate encodes content into a PNG QR code of the given size.
func Generate(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	if size <= 0 {
		size = DefaultSize
	}

	png, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	return png, nil
}

// GenerateDataURI encodes content into a QR code and returns it as a
// "data:image/png;base64," URI for direct embedding in HTML.
func GenerateDataURI(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
