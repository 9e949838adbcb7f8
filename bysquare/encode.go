package bysquare

import (
	"bytes"
	"encoding/base32"
	"encoding/binary"
	"hash/crc32"
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/ulikunitz/xz/lzma"
)

const (
	headerSize   = 2
	lengthSize   = 2
	checksumSize = 4

	// bysquare type 0 (PAY), version 1.0.0, document type 0.
	headerByte0 = 0x00
	headerByte1 = 0x00

	lzmaDictCap   = 1 << 17
	lzmaHeaderLen = 13
)

var (
	lzmaProperties = lzma.Properties{LC: 3, LP: 0, PB: 2}

	// base32hex alphabet without padding; trailing bits are zero filled.
	payloadEncoding = base32.HexEncoding.WithPadding(base32.NoPadding)
)

// Encode produces the PAY by square string for m.
func Encode(m Model) (string, error) {
	if err := m.validate(); err != nil {
		return "", err
	}

	data := []byte(serialize(m))
	body := make([]byte, checksumSize, checksumSize+len(data))
	binary.LittleEndian.PutUint32(body, crc32.ChecksumIEEE(data))
	body = append(body, data...)
	if len(body) > math.MaxUint16 {
		return "", ErrPayloadTooLarge
	}

	compressed, err := compress(body)
	if err != nil {
		return "", err
	}

	out := make([]byte, 0, headerSize+lengthSize+len(compressed))
	out = append(out, headerByte0, headerByte1)
	out = binary.LittleEndian.AppendUint16(out, uint16(len(body)))
	out = append(out, compressed...)
	return payloadEncoding.EncodeToString(out), nil
}

// Decode parses a PAY by square string back into its model.
func Decode(payload string) (Model, error) {
	raw, err := payloadEncoding.DecodeString(strings.ToUpper(strings.TrimSpace(payload)))
	if err != nil {
		return Model{}, errors.Wrap(ErrMalformedPayload, err.Error())
	}
	if len(raw) < headerSize+lengthSize {
		return Model{}, ErrMalformedPayload
	}
	if raw[0]>>4 != 0 {
		return Model{}, errors.Wrapf(ErrUnsupported, "bysquare type %d", raw[0]>>4)
	}

	size := binary.LittleEndian.Uint16(raw[headerSize:])
	body, err := decompress(raw[headerSize+lengthSize:], int(size))
	if err != nil {
		return Model{}, err
	}
	if len(body) < checksumSize {
		return Model{}, ErrMalformedPayload
	}

	data := body[checksumSize:]
	if binary.LittleEndian.Uint32(body) != crc32.ChecksumIEEE(data) {
		return Model{}, ErrChecksum
	}
	return deserialize(string(data))
}

// compress returns a raw LZMA1 stream: the 13 byte .lzma header the writer
// emits is dropped because the uncompressed size travels in the bysquare
// header instead.
func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	props := lzmaProperties
	w, err := lzma.WriterConfig{
		Properties: &props,
		DictCap:    lzmaDictCap,
		Size:       int64(len(data)),
	}.NewWriter(&buf)
	if err != nil {
		return nil, errors.Wrap(err, "bysquare: lzma writer")
	}
	if _, err := w.Write(data); err != nil {
		return nil, errors.Wrap(err, "bysquare: lzma write")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "bysquare: lzma close")
	}

	stream := buf.Bytes()
	if len(stream) < lzmaHeaderLen {
		return nil, errors.New("bysquare: short lzma stream")
	}
	return stream[lzmaHeaderLen:], nil
}

// decompress rebuilds the .lzma header stripped by compress and inflates
// exactly size bytes.
func decompress(stream []byte, size int) ([]byte, error) {
	header := make([]byte, lzmaHeaderLen)
	header[0] = byte((lzmaProperties.PB*5+lzmaProperties.LP)*9 + lzmaProperties.LC)
	binary.LittleEndian.PutUint32(header[1:], lzmaDictCap)
	binary.LittleEndian.PutUint64(header[5:], uint64(size))

	r, err := lzma.NewReader(io.MultiReader(bytes.NewReader(header), bytes.NewReader(stream)))
	if err != nil {
		return nil, errors.Wrap(ErrMalformedPayload, err.Error())
	}
	out := make([]byte, size)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, errors.Wrap(ErrMalformedPayload, err.Error())
	}
	return out, nil
}
