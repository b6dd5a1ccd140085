package sources

import (
	"path"
	"path/filepath"
	"strings"
)

// Format identifies how an archive has to be unpacked.
type Format string

const (
	FormatRar     Format = "rar"
	FormatZip     Format = "zip"
	FormatUnknown Format = ""
)

// Archive is a remote file fetched into the download directory.
type Archive struct {
	Name string
	URL  string
}

// LocalName is the file name the downloader writes, taken from the URL path.
func (a Archive) LocalName() string {
	p := a.URL
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return path.Base(p)
}

// FormatOf picks the archive format from a file extension.
func FormatOf(file string) Format {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".rar":
		return FormatRar
	case ".zip":
		return FormatZip
	default:
		return FormatUnknown
	}
}
