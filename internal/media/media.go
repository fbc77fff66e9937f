// Package media turns image files into self-contained data URLs that can be
// stored verbatim in a product record.
package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageBytes caps the size of an encoded image file.
const MaxImageBytes = 5 << 20

// Errors returned by EncodeFile.
var (
	ErrNotImage = errors.New("file is not an image")
	ErrTooLarge = errors.New("image exceeds size limit")
)

// EncodeFile reads path and returns a data URL such as
// "data:image/png;base64,iVBOR...".
func EncodeFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat image: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrNotImage, path)
	}
	if info.Size() > MaxImageBytes {
		return "", fmt.Errorf("%w: %s is %d bytes (max %d)", ErrTooLarge, path, info.Size(), MaxImageBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	return Encode(data)
}

// Encode wraps raw image bytes in a data URL.
func Encode(data []byte) (string, error) {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mt.String())
	}
	if len(data) > MaxImageBytes {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(data), MaxImageBytes)
	}
	return "data:" + mt.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Describe summarizes a data URL for display, e.g. "image/png, 12.3 KiB".
func Describe(dataURL string) string {
	if dataURL == "" {
		return "no image"
	}
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return fmt.Sprintf("%d characters", len(dataURL))
	}
	mimeType, encoded, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return mimeType
	}
	size := base64.StdEncoding.DecodedLen(len(encoded))
	return fmt.Sprintf("%s, %.1f KiB", mimeType, float64(size)/1024)
}
