package assets

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var unsafeChars = regexp.MustCompile(`[^a-z0-9\-_]+`)

func sanitizeBase(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = unsafeChars.ReplaceAllString(strings.ToLower(base), "-")
	base = strings.Trim(base, "-")
	if len(base) > 40 {
		base = base[:40]
	}
	if base == "" {
		return "image"
	}
	return base
}

// BuildObjectKey -> <folder>/<yyyy>/<mm>/<dd>/<nama>-<uuid>.webp
func BuildObjectKey(folder, filename string, now time.Time) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		folder = "misc"
	}
	return fmt.Sprintf("%s/%s/%s-%s.webp", folder, now.Format("2006/01/02"), sanitizeBase(filename), uuid.NewString())
}

func publicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
