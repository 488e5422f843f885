// Package uploads is the image-host collaborator: it stores an uploaded
// picture plus a resized thumbnail under a static directory and can remove
// both again when a record is replaced.
package uploads

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"unwind/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const thumbWidth = 300

// Result describes a stored image.
type Result struct {
	URL     string // public path, e.g. /static/roompic/<id>.jpg
	ImageID string // host reference used for later deletion
}

// SaveImage reads the named multipart form file, stores the original and a
// thumbnail under dir, and returns the public URL and image id. urlPrefix is
// the static route the directory is served from.
func SaveImage(r *http.Request, field, dir, urlPrefix string) (*Result, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("image file missing: %w", err)
	}
	defer file.Close()

	if !utils.SupportedImageTypes[header.Header.Get("Content-Type")] {
		return nil, fmt.Errorf("unsupported image type %q", header.Header.Get("Content-Type"))
	}

	img, err := imaging.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	id := uuid.New().String()
	fileName := id + ".jpg"
	thumbDir := filepath.Join(dir, "thumb")

	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := utils.EnsureDir(thumbDir); err != nil {
		return nil, fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	if err := imaging.Save(img, filepath.Join(dir, fileName)); err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(thumbDir, fileName)); err != nil {
		return nil, fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return &Result{
		URL:     urlPrefix + "/" + fileName,
		ImageID: id,
	}, nil
}

// Delete removes a previously stored image and its thumbnail. Missing files
// are ignored so replacing an already-cleaned record stays idempotent.
func Delete(dir, imageID string) error {
	if imageID == "" {
		return nil
	}
	fileName := imageID + ".jpg"
	if err := os.Remove(filepath.Join(dir, fileName)); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Remove(filepath.Join(dir, "thumb", fileName)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
