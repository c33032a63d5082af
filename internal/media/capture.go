package media

import (
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// CaptureTime returns the moment the media was captured: EXIF
// DateTimeOriginal when the file carries one, otherwise the file's
// modification time. Videos and EXIF-less images take the fallback path.
func CaptureTime(path string) (time.Time, error) {
	if ts, ok := exifCaptureTime(path); ok {
		return ts, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime().UTC(), nil
}

func exifCaptureTime(path string) (time.Time, bool) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer f.Close()

	meta, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, false
	}
	ts, err := meta.DateTime()
	if err != nil {
		return time.Time{}, false
	}
	return ts.UTC(), true
}
