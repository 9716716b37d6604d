package converter

import (
	"bytes"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
)

// zipContainer is the MIME type every xlsx workbook inherits.
const zipContainer = "application/zip"

// sniff rejects content that does not fit the extension, e.g. a binary file
// renamed to .csv. Text sources are checked for UTF-8 without NUL bytes only;
// magic numbers would misread headers such as "ID3" or "MZ".
func sniff(data []byte, ext Extension) error {
	// Empty input is left to the decoder.
	if len(data) == 0 {
		return nil
	}

	switch ext {
	case CSV, TXT:
		if !utf8.Valid(data) {
			return errors.New("content is not valid UTF-8 text")
		}
		if bytes.IndexByte(data, 0) >= 0 {
			return errors.New("content contains NUL bytes")
		}
		return nil

	case XLSX:
		detected := mimetype.Detect(data)
		for m := detected; m != nil; m = m.Parent() {
			if m.Is(zipContainer) {
				return nil
			}
		}
		return errors.Errorf("content detected as %s, expected %s", detected.String(), zipContainer)
	}

	return nil
}
