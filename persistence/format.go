package persistence

import "errors"

const (
	// MagicNumber identifies graphstore snapshot files (ASCII: "GRF0")
	MagicNumber = 0x47524630
	// Version is the current file format version (v1.0.0)
	Version = 0x00010000
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported version")
	ErrInvalidCompression = errors.New("invalid compression type")
	ErrCorruptLength      = errors.New("corrupt length prefix")
)

// FileHeader is the 64-byte header at the start of every snapshot file.
//
// The body that follows it holds the four index sections in fixed order:
// forward offsets, forward values (targets, payload blob), reverse offsets,
// reverse values (sources, edge ids). The body may be block-compressed as a
// whole; RawLen/BodyLen describe the uncompressed and on-disk sizes.
type FileHeader struct {
	Magic       uint32
	Version     uint32
	Compression uint8 // CompressionType of the body
	Padding     [3]byte
	NumVertices uint64
	NumEdges    uint64
	RawLen      uint64   // Uncompressed body size
	BodyLen     uint64   // On-disk body size
	Checksum    uint32   // CRC32 of the uncompressed body
	CodecName   [16]byte // Payload codec, NUL-padded
}

// SetCodecName stores the codec name, truncated to the field size.
func (h *FileHeader) SetCodecName(name string) {
	var b [16]byte
	copy(b[:], name)
	h.CodecName = b
}

// CodecNameString returns the codec name with NUL padding stripped.
func (h *FileHeader) CodecNameString() string {
	b := h.CodecName[:]
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
