package storage

import (
	"errors"

	"github.com/gabriel-vasile/mimetype"
)

// SniffLen is how many leading bytes DetectImage needs.
const SniffLen = 512

var ErrUnsupportedImage = errors.New("unsupported image type")

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// DetectImage identifies an upload by its content, not its declared type.
func DetectImage(head []byte) (contentType, ext string, err error) {
	detected := mimetype.Detect(head)
	for m := detected; m != nil; m = m.Parent() {
		if ext, ok := imageExtensions[m.String()]; ok {
			return m.String(), ext, nil
		}
	}
	return "", "", ErrUnsupportedImage
}
