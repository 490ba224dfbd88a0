package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"mime"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const peekSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// CharsetFromContentType extracts the charset parameter of a Content-Type
// header, or "" when there is none.
func CharsetFromContentType(contentType string) string {
	if contentType == "" {
		return ""
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(params["charset"])
}

// NewUTF8Reader returns a reader that decodes r to UTF-8.
//
// Resolution order:
//  1. BOM (UTF-8 BOM is stripped; UTF-16 LE/BE is decoded)
//  2. The declared charset, when it names a known encoding
//  3. Content that is already valid UTF-8 passes through
//  4. Heuristic detection via chardet
//  5. Fallback to Windows-1252
func NewUTF8Reader(r io.Reader, declared string) (io.Reader, error) {
	br := bufio.NewReaderSize(r, peekSize)

	buf, err := br.Peek(peekSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	case bytes.HasPrefix(buf, bomUTF16LE):
		return decode(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)), nil
	case bytes.HasPrefix(buf, bomUTF16BE):
		return decode(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)), nil
	}

	if enc := lookup(declared); enc != nil {
		return decode(br, enc), nil
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err == nil {
		if enc := lookup(result.Charset); enc != nil {
			return decode(br, enc), nil
		}
	}

	return decode(br, charmap.Windows1252), nil
}

// lookup resolves a WHATWG charset label such as "latin1" or "utf-8".
func lookup(label string) encoding.Encoding {
	if label == "" {
		return nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil
	}

	return enc
}

func decode(r io.Reader, enc encoding.Encoding) io.Reader {
	if enc == unicode.UTF8 {
		return r
	}

	return transform.NewReader(r, enc.NewDecoder())
}
