package watermark

import (
	"bytes"
)

// RenderBytes decodes raw image bytes, applies the watermark with the default
// engine and returns the result encoded as PNG.
func RenderBytes(data []byte, p Params) ([]byte, Placement, error) {
	img, _, err := DecodeImageBytes(data)
	if err != nil {
		return nil, Placement{}, err
	}

	res, err := Render(img, p)
	if err != nil {
		return nil, Placement{}, err
	}

	var buf bytes.Buffer
	if err := EncodePNG(&buf, res.Image); err != nil {
		return nil, Placement{}, err
	}
	return buf.Bytes(), res.Placement, nil
}
