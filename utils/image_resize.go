package utils

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/nfnt/resize"
	"go.uber.org/zap"
)

// DownscaleImage shrinks PNG and JPEG images wider than maxWidth, preserving the aspect
// ratio. Other formats, narrower images, a zero maxWidth and undecodable content are
// returned unchanged.
func DownscaleImage(content []byte, ext string, maxWidth uint) []byte {
	if maxWidth == 0 {
		return content
	}

	var (
		img image.Image
		err error
	)
	switch ext {
	case ".png":
		img, err = png.Decode(bytes.NewReader(content))
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(bytes.NewReader(content))
	default:
		return content
	}
	if err != nil {
		zap.L().Warn("Skipping resize of undecodable image", zap.String("ext", ext), zap.Error(err))
		return content
	}

	if uint(img.Bounds().Dx()) <= maxWidth {
		return content
	}

	// Resize image (preserve aspect ratio)
	resized := resize.Resize(maxWidth, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	if ext == ".png" {
		err = png.Encode(&buf, resized)
	} else {
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		zap.L().Warn("Failed to encode resized image", zap.String("ext", ext), zap.Error(err))
		return content
	}
	return buf.Bytes()
}
