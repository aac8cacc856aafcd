package qrcode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestGenerate_ReturnsPNG(t *testing.T) {
	png, err := Generate("otpauth://totp/pm:abc?secret=GEZDGNBV", 128)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic), "output is not a PNG")
}

func TestGenerate_EmptyContent(t *testing.T) {
	_, err := Generate("   ", 128)
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestGenerate_DefaultSize(t *testing.T) {
	png, err := Generate("content", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestGenerateDataURI_Prefix(t *testing.T) {
	uri, err := GenerateDataURI("otpauth://totp/pm:abc?secret=GEZDGNBV", 128)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}

func TestGenerateDataURI_EmptyContent(t *testing.T) {
	_, err := GenerateDataURI("", 128)
	assert.ErrorIs(t, err, ErrEmptyContent)
}
