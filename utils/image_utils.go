package utils

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

var dataURLPattern = regexp.MustCompile(`^data:image/(png|jpeg|jpg);base64,`)

// ErrInvalidImageData is returned for payloads that are not PNG/JPEG data URLs
var ErrInvalidImageData = errors.New("invalid image data")

// DecodeImageDataURL decodes a base64 image data URL into raw bytes
func DecodeImageDataURL(dataURL string) ([]byte, error) {
	match := dataURLPattern.FindString(dataURL)
	if match == "" {
		return nil, ErrInvalidImageData
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, match))
	if err != nil {
		return nil, ErrInvalidImageData
	}
	return raw, nil
}

// SaveImageDataURL decodes and stores a captured photo under
// <uploadDir>/<subfolder> and returns the path relative to uploadDir
func SaveImageDataURL(dataURL, uploadDir, subfolder string) (string, error) {
	raw, err := DecodeImageDataURL(dataURL)
	if err != nil {
		return "", err
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", ErrInvalidImageData
	}

	dir := filepath.Join(uploadDir, subfolder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s.jpg", strings.ReplaceAll(uuid.New().String(), "-", ""))
	if err := imaging.Save(img, filepath.Join(dir, name), imaging.JPEGQuality(90)); err != nil {
		return "", err
	}
	return filepath.ToSlash(filepath.Join(subfolder, name)), nil
}

// CropToFill center-crops and resizes an image to exactly width x height
func CropToFill(img image.Image, width, height int) image.Image {
	return imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)
}

// LoadImage opens an image file from disk
func LoadImage(path string) (image.Image, error) {
	return imaging.Open(path)
}
