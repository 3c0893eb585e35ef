package gateway

import (
	"bytes"
	"compress/zlib"
	"io"
)

// Decompress inflates a zlib-compressed gateway frame. Discord sends them as
// binary messages when the session identifies with compression enabled.
func Decompress(data []byte) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	_, err = io.Copy(buf, r)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
