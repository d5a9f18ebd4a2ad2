// Package encoding normalises imported text to UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names reported by Detect.
const (
	CharsetUTF8    = "UTF-8"
	CharsetUTF16LE = "UTF-16LE"
	CharsetUTF16BE = "UTF-16BE"
	CharsetLatin1  = "windows-1252"
	CharsetLatin5  = "ISO-8859-9"
)

const sniffLen = 4096

var boms = []struct {
	prefix  []byte
	charset string
}{
	{[]byte{0xEF, 0xBB, 0xBF}, CharsetUTF8},
	{[]byte{0xFF, 0xFE}, CharsetUTF16LE},
	{[]byte{0xFE, 0xFF}, CharsetUTF16BE},
}

var decoders = map[string]encoding.Encoding{
	CharsetUTF16LE: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	CharsetUTF16BE: unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	CharsetLatin1:  charmap.Windows1252,
	CharsetLatin5:  charmap.ISO8859_9,
}

// Detect sniffs the start of r and returns a reader yielding UTF-8 together with the
// charset it decoded from. A UTF-8 byte order mark is dropped. Unrecognised input is
// decoded as windows-1252.
func Detect(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	for _, bom := range boms {
		if !bytes.HasPrefix(head, bom.prefix) {
			continue
		}

		if bom.charset == CharsetUTF8 {
			_, _ = br.Discard(len(bom.prefix))
			return br, CharsetUTF8, nil
		}

		return transform.NewReader(br, decoders[bom.charset].NewDecoder()), bom.charset, nil
	}

	if utf8.Valid(head) {
		return br, CharsetUTF8, nil
	}

	charset := CharsetLatin1

	if result, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		switch result.Charset {
		case "UTF-8":
			return br, CharsetUTF8, nil
		case "ISO-8859-9":
			charset = CharsetLatin5
		}
	}

	return transform.NewReader(br, decoders[charset].NewDecoder()), charset, nil
}
