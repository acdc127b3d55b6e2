package driver

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// Encoding 设备输出的文本编码。每个平台在 Profile 中静态声明，
// 不做自动探测：设备输出片段太短，探测不可靠。
type Encoding string

const (
	EncodingUTF8    Encoding = "utf-8"
	EncodingGBK     Encoding = "gbk"
	EncodingGB18030 Encoding = "gb18030"
)

func (e Encoding) codec() encoding.Encoding {
	switch e {
	case EncodingGBK:
		return simplifiedchinese.GBK
	case EncodingGB18030:
		return simplifiedchinese.GB18030
	default:
		return nil
	}
}

// Decode converts raw device bytes to text. Malformed input for the
// declared encoding is an error, never a lossy substitution: a silently
// mangled string would corrupt the structured parsers downstream.
func (e Encoding) Decode(raw []byte) (string, error) {
	codec := e.codec()
	if codec == nil {
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("invalid byte sequence for encoding %q", e)
		}
		return string(raw), nil
	}
	out, _, err := transform.Bytes(codec.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("decode %q: %w", e, err)
	}
	// x/text decoders substitute U+FFFD instead of failing; treat any
	// replacement rune as a malformed sequence.
	text := string(out)
	if strings.ContainsRune(text, utf8.RuneError) {
		return "", fmt.Errorf("invalid byte sequence for encoding %q", e)
	}
	return text, nil
}

// DecodeLenient decodes with replacement characters allowed. Used by the
// read loop for prompt matching while a multi-byte sequence may still be
// split across a read boundary; the final result always goes through
// Decode.
func (e Encoding) DecodeLenient(raw []byte) string {
	codec := e.codec()
	if codec == nil {
		return string(raw)
	}
	out, _, err := transform.Bytes(codec.NewDecoder(), raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}
