package analyzer

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImage(t *testing.T) {
	raw := []byte{0x89, 'P', 'N', 'G'}
	enc := base64.StdEncoding.EncodeToString(raw)

	img, err := ParseImage("image/png", enc)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MediaType)
	assert.Equal(t, raw, img.Data)

	img, err = ParseImage("IMAGE/JPG", enc)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.MediaType)
}

func TestParseImageDataURI(t *testing.T) {
	raw := []byte("jpegbytes")
	uri := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw)

	img, err := ParseImage("", uri)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.MediaType)
	assert.Equal(t, raw, img.Data)
}

func TestParseImageDataURIWithMatchingType(t *testing.T) {
	uri := "data:image/jpg;base64," + base64.StdEncoding.EncodeToString([]byte("jpeg"))

	img, err := ParseImage("image/jpeg", uri)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.MediaType)

	_, err = ParseImage("image/png", uri)
	assert.ErrorContains(t, err, "does not match")
}

func TestParseImageRejects(t *testing.T) {
	enc := base64.StdEncoding.EncodeToString([]byte("x"))
	cases := map[string][2]string{
		"gif":        {"image/gif", enc},
		"no type":    {"", enc},
		"bad base64": {"image/png", "%%%"},
		"empty":      {"image/png", ""},
		"bad uri":    {"", "data:image/png;base64"},
		"uri gif":    {"", "data:image/gif;base64," + enc},
		"mismatch":   {"image/png", "data:image/gif;base64," + enc},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseImage(c[0], c[1])
			assert.Error(t, err)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	detailed := BuildPrompt(DetailedPrompt, "English", 2307)
	assert.Contains(t, detailed, "2307 kcal")
	assert.Contains(t, detailed, "Markdown tables")
	assert.Contains(t, detailed, "Answer in English")

	brief := BuildPrompt(BriefPrompt, "Traditional Chinese", -120)
	assert.Contains(t, brief, "-120 kcal")
	assert.Contains(t, brief, "Traditional Chinese")
	assert.False(t, strings.Contains(brief, "Markdown"))
}

func TestParsePromptStyle(t *testing.T) {
	s, err := ParsePromptStyle("")
	require.NoError(t, err)
	assert.Equal(t, DetailedPrompt, s)

	s, err = ParsePromptStyle("brief")
	require.NoError(t, err)
	assert.Equal(t, BriefPrompt, s)

	_, err = ParsePromptStyle("verbose")
	assert.Error(t, err)
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), GeminiConfig{Model: "gemini-2.5-flash"})
	assert.Error(t, err)
}
