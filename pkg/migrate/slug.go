package migrate

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/gosimple/slug"
)

const (
	// SlugPrefix starts every note and attachment filename.
	SlugPrefix = "paper-"
	// MaxTitleSlug caps the title part of a slug.
	MaxTitleSlug = 60
	hashLength   = 8
)

// Slug derives the filename stem shared by a note and its attachment.
// It is deterministic in (title, url): the title part is a normalized,
// truncated copy of title and the suffix is the first 8 hex digits of the
// MD5 of the raw url.
func Slug(title, url string) string {
	s := slug.Make(title)
	if len(s) > MaxTitleSlug {
		s = s[:MaxTitleSlug]
	}
	return SlugPrefix + s + "-" + urlHash(url)
}

func urlHash(url string) string {
	sum := md5.Sum([]byte(url))
	return hex.EncodeToString(sum[:])[:hashLength]
}
