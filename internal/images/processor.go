// Package images re-encodes uploaded pictures for static storage.
// Every accepted image is resized to a fixed frame and written out as
// JPEG; only the resulting filename is persisted, clients resolve it
// against the configured base URL.
package images

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	MaxWidth  = 2000
	MaxHeight = 1333
	Quality   = 95

	// MaxFileSize caps one uploaded image at 5 MB.
	MaxFileSize = 5 << 20
)

var (
	ErrNotAnImage = errors.New("only images allowed")
	ErrBadDataURI = errors.New("invalid image data")
	ErrTooLarge   = errors.New("image exceeds the 5 MB limit")
)

// Processor writes re-encoded images below Dir, one subdirectory per
// upload area (products, command).
type Processor struct {
	Dir string
}

func NewProcessor(dir string) (*Processor, error) {
	for _, sub := range []string{"products", "command"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &Processor{Dir: dir}, nil
}

// Save scales and center-crops the image read from r to exactly
// MaxWidth x MaxHeight, encodes it as JPEG and stores it under area.
// suffix distinguishes files within one request ("cover", "1", "2",
// ...). The returned name is relative to the area and suitable for
// persistence.
func (p *Processor) Save(r io.Reader, area, prefix, suffix string) (string, error) {
	img, err := imaging.Decode(io.LimitReader(r, MaxFileSize+1), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}
	// Fill keeps the aspect ratio and crops the overflow around the
	// center instead of stretching the frame.
	resized := imaging.Fill(img, MaxWidth, MaxHeight, imaging.Center, imaging.Lanczos)

	name := fmt.Sprintf("%s-%s-%d-%s.jpeg", prefix, uuid.NewString(), time.Now().UnixMilli(), suffix)
	dst := filepath.Join(p.Dir, area, name)
	if err := imaging.Save(resized, dst, imaging.JPEGQuality(Quality)); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return name, nil
}

// SaveUpload opens a multipart file header, checks its declared type
// and size, and hands it to Save.
func (p *Processor) SaveUpload(fh *multipart.FileHeader, area, prefix, suffix string) (string, error) {
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image") {
		return "", ErrNotAnImage
	}
	if fh.Size > MaxFileSize {
		return "", ErrTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return p.Save(f, area, prefix, suffix)
}

// DecodeDataURI extracts the raw bytes of a base64 data URI of the
// form "data:image/...;base64,<payload>". Cart uploads arrive in this
// shape.
func DecodeDataURI(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "data:image/") {
		return nil, ErrBadDataURI
	}
	_, payload, ok := strings.Cut(s, ",")
	if !ok {
		return nil, ErrBadDataURI
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDataURI, err)
	}
	if len(raw) > MaxFileSize {
		return nil, ErrTooLarge
	}
	return raw, nil
}
