// internal/analyzer/analyzer.go
package analyzer

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

// Requester turns a food photo and a daily calorie budget into a free-form
// nutrition report. The report is returned as the model wrote it.
type Requester interface {
	Analyze(ctx context.Context, img Image, recommendedIntake int) (string, error)
}

type Image struct {
	MediaType string
	Data      []byte
}

var supportedMediaTypes = map[string]string{
	"image/jpeg": "image/jpeg",
	"image/jpg":  "image/jpeg",
	"image/png":  "image/png",
}

// ParseImage decodes a base64 payload (optionally a data URI) and checks the
// declared media type.
func ParseImage(mediaType, encoded string) (Image, error) {
	if strings.HasPrefix(encoded, "data:") {
		header, payload, ok := strings.Cut(encoded, ",")
		if !ok {
			return Image{}, fmt.Errorf("invalid data URI")
		}
		uriType := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		switch {
		case mediaType == "":
			mediaType = uriType
		case uriType != "" && canonicalMediaType(uriType) != canonicalMediaType(mediaType):
			return Image{}, fmt.Errorf("media type %q does not match data URI type %q", mediaType, uriType)
		}
		encoded = payload
	}

	canonical := canonicalMediaType(mediaType)
	if canonical == "" {
		return Image{}, fmt.Errorf("unsupported image type %q: expected jpeg or png", mediaType)
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return Image{}, fmt.Errorf("failed to decode image: %w", err)
	}
	if len(data) == 0 {
		return Image{}, fmt.Errorf("image is empty")
	}

	return Image{MediaType: canonical, Data: data}, nil
}

// canonicalMediaType returns "" for anything other than jpeg or png.
func canonicalMediaType(mediaType string) string {
	return supportedMediaTypes[strings.ToLower(strings.TrimSpace(mediaType))]
}
