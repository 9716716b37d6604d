package converter

import (
	"path/filepath"
	"strings"
)

// Extension is the trailing format suffix of a path, dot included.
type Extension string

const (
	CSV  Extension = ".csv"
	TXT  Extension = ".txt"
	XLSX Extension = ".xlsx"
)

// Extensions lists the supported formats in the order front ends offer them.
var Extensions = []Extension{CSV, TXT, XLSX}

// SourceExtension returns the extension of the final path element exactly as
// written. No case folding is applied, so "DATA.CSV" yields ".CSV".
func SourceExtension(path string) Extension {
	return Extension(filepath.Ext(path))
}

// ParseExtension reads a user supplied target format. It accepts "xlsx",
// ".xlsx" or "XLSX".
func ParseExtension(s string) (Extension, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s != "" && !strings.HasPrefix(s, ".") {
		s = "." + s
	}

	ext := Extension(s)
	if !ext.Supported() {
		return "", &Error{Kind: KindUnsupportedConversion, Reason: ErrUnknownExtension, Path: s}
	}
	return ext, nil
}

// Supported reports whether the extension belongs to the supported set.
func (e Extension) Supported() bool {
	for _, ext := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

func (e Extension) String() string {
	return string(e)
}

// OutputPath replaces the trailing source extension of path with target.
// Occurrences of the extension elsewhere in the path are left alone.
func OutputPath(path string, source, target Extension) string {
	return strings.TrimSuffix(path, string(source)) + string(target)
}
