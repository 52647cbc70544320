// Package persistence provides the length-prefixed binary snapshot codec for
// finalized graphs. This replaced a slower, reflection-heavy encoding used in
// earlier iterations.
package persistence

import (
	"encoding/binary"
	"fmt"
	"io"
	"unsafe"
)

// maxSliceLen bounds decoded slice lengths to guard against corrupt length
// prefixes producing huge allocations.
const maxSliceLen = 1 << 33

// Writer writes snapshot sections in optimized binary format.
type Writer struct {
	w         io.Writer
	byteOrder binary.ByteOrder
}

// NewWriter creates a new binary writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:         w,
		byteOrder: binary.LittleEndian, // Native on x86/ARM
	}
}

// WriteHeader writes the file header.
func (bw *Writer) WriteHeader(header *FileHeader) error {
	header.Magic = MagicNumber
	header.Version = Version
	return binary.Write(bw.w, bw.byteOrder, header)
}

// WriteUint32Slice writes a length-prefixed uint32 slice as raw bytes
// (zero-copy compatible).
// Safety: Validates alignment before unsafe conversion.
func (bw *Writer) WriteUint32Slice(slice []uint32) error {
	if err := binary.Write(bw.w, bw.byteOrder, uint64(len(slice))); err != nil {
		return err
	}
	if len(slice) == 0 {
		return nil
	}

	// Verify alignment before unsafe operation
	if err := validateUint32SliceAlignment(slice); err != nil {
		return err
	}

	// Direct memory conversion (no allocation)
	byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&slice[0])), len(slice)*4)
	_, err := bw.w.Write(byteSlice)
	return err
}

// WriteBytes writes a length-prefixed opaque byte section.
func (bw *Writer) WriteBytes(data []byte) error {
	if err := binary.Write(bw.w, bw.byteOrder, uint64(len(data))); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	_, err := bw.w.Write(data)
	return err
}

// Reader reads snapshot sections from binary format.
type Reader struct {
	r         io.Reader
	byteOrder binary.ByteOrder
}

// NewReader creates a new binary reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		r:         r,
		byteOrder: binary.LittleEndian,
	}
}

// ReadHeader reads and validates the file header.
func (br *Reader) ReadHeader() (*FileHeader, error) {
	var header FileHeader
	if err := binary.Read(br.r, br.byteOrder, &header); err != nil {
		return nil, err
	}
	if header.Magic != MagicNumber {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, header.Magic)
	}
	if header.Version != Version {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidVersion, header.Version)
	}
	// Bound the size fields before anyone allocates from them.
	if header.BodyLen > maxSliceLen || header.RawLen > maxSliceLen {
		return nil, fmt.Errorf("%w: body %d, raw %d", ErrCorruptLength, header.BodyLen, header.RawLen)
	}
	return &header, nil
}

func (br *Reader) readLength() (int, error) {
	var n uint64
	if err := binary.Read(br.r, br.byteOrder, &n); err != nil {
		return 0, err
	}
	if n > maxSliceLen {
		return 0, fmt.Errorf("%w: %d", ErrCorruptLength, n)
	}
	return int(n), nil
}

// ReadUint32Slice reads a length-prefixed uint32 slice.
func (br *Reader) ReadUint32Slice() ([]uint32, error) {
	count, err := br.readLength()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	slice := make([]uint32, count)
	byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&slice[0])), count*4)
	if _, err := io.ReadFull(br.r, byteSlice); err != nil {
		return nil, err
	}
	return slice, nil
}

// ReadBytes reads a length-prefixed opaque byte section.
func (br *Reader) ReadBytes() ([]byte, error) {
	count, err := br.readLength()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	data := make([]byte, count)
	if _, err := io.ReadFull(br.r, data); err != nil {
		return nil, err
	}
	return data, nil
}
