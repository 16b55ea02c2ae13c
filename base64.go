package watermark

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"
)

// DecodeBase64Image decodes a base64-encoded image (optionally a data URL) into
// an image.Image. It returns the decoded image and the detected format string
// ("png", "jpeg", "bmp", etc.).
func DecodeBase64Image(input string) (image.Image, string, error) {
	raw := stripDataPrefix(input)

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(raw))
	if err != nil {
		return nil, "", fmt.Errorf("decode base64: %w", err)
	}

	return DecodeImageBytes(data)
}

// EncodePNGToBase64 encodes an image as PNG and returns a base64 string.
func EncodePNGToBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// RenderBase64 watermarks a base64-encoded image and returns the result as
// base64 PNG together with the text placement.
func RenderBase64(input string, p Params) (string, Placement, error) {
	img, _, err := DecodeBase64Image(input)
	if err != nil {
		return "", Placement{}, err
	}

	res, err := Render(img, p)
	if err != nil {
		return "", Placement{}, err
	}

	output, err := EncodePNGToBase64(res.Image)
	if err != nil {
		return "", Placement{}, err
	}
	return output, res.Placement, nil
}

func stripDataPrefix(input string) string {
	lower := strings.ToLower(input)
	if strings.HasPrefix(lower, "data:") {
		if idx := strings.Index(input, ","); idx != -1 {
			return input[idx+1:]
		}
	}
	return input
}
