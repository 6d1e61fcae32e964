package assets

import (
	"bytes"
	"fmt"
	"image"
	"net/http"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const (
	maxEdge     = 1600
	webpQuality = 80
)

func decodeImage(all []byte) (image.Image, error) {
	if len(all) == 0 {
		return nil, ErrNotAnImage
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	if strings.Contains(http.DetectContentType(head), "webp") {
		img, err := webp.Decode(bytes.NewReader(all))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotAnImage, err)
		}
		return img, nil
	}
	img, err := imaging.Decode(bytes.NewReader(all), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}
	return img, nil
}

// NormalizeImage decode -> fit 1600px (tanpa upscale) -> WebP q80.
func NormalizeImage(all []byte) ([]byte, error) {
	img, err := decodeImage(all)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	if b.Dx() > maxEdge || b.Dy() > maxEdge {
		img = imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}
