package persistence

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	header := &FileHeader{
		Compression: uint8(CompressionZSTD),
		NumVertices: 10,
		NumEdges:    42,
		RawLen:      1000,
		BodyLen:     100,
		Checksum:    0xdeadbeef,
	}
	header.SetCodecName("go-json")

	require.NoError(t, NewWriter(&buf).WriteHeader(header))
	assert.Equal(t, 64, buf.Len(), "header must be exactly 64 bytes")

	got, err := NewReader(&buf).ReadHeader()
	require.NoError(t, err)
	assert.Equal(t, uint64(10), got.NumVertices)
	assert.Equal(t, uint64(42), got.NumEdges)
	assert.Equal(t, "go-json", got.CodecNameString())
	assert.Equal(t, uint32(0xdeadbeef), got.Checksum)
}

func TestHeaderValidation(t *testing.T) {
	t.Run("BadMagic", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(&buf).WriteHeader(&FileHeader{}))

		raw := buf.Bytes()
		raw[0] ^= 0xff

		_, err := NewReader(bytes.NewReader(raw)).ReadHeader()
		assert.ErrorIs(t, err, ErrInvalidMagic)
	})

	t.Run("BadVersion", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(&buf).WriteHeader(&FileHeader{}))

		raw := buf.Bytes()
		raw[4] ^= 0xff

		_, err := NewReader(bytes.NewReader(raw)).ReadHeader()
		assert.ErrorIs(t, err, ErrInvalidVersion)
	})

	// A header with valid magic/version but an absurd size field must be
	// rejected before the body is allocated.
	t.Run("OversizedBodyLen", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(&buf).WriteHeader(&FileHeader{BodyLen: 1 << 62}))

		_, err := NewReader(bytes.NewReader(buf.Bytes())).ReadHeader()
		assert.ErrorIs(t, err, ErrCorruptLength)
	})

	t.Run("OversizedRawLen", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(&buf).WriteHeader(&FileHeader{RawLen: 1 << 62}))

		_, err := NewReader(bytes.NewReader(buf.Bytes())).ReadHeader()
		assert.ErrorIs(t, err, ErrCorruptLength)
	})
}

func TestUint32SliceRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteUint32Slice([]uint32{0, 1, 2, 0xffffffff}))
	require.NoError(t, w.WriteUint32Slice(nil))
	require.NoError(t, w.WriteBytes([]byte("payload")))

	r := NewReader(&buf)

	s, err := r.ReadUint32Slice()
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2, 0xffffffff}, s)

	s, err = r.ReadUint32Slice()
	require.NoError(t, err)
	assert.Empty(t, s)

	b, err := r.ReadBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), b)
}

func TestChecksum(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChecksumWriter(&buf)

	_, err := cw.Write([]byte("hello"))
	require.NoError(t, err)

	require.NoError(t, VerifyChecksum([]byte("hello"), cw.Sum()))

	err = VerifyChecksum([]byte("hellx"), cw.Sum())
	var mismatch *ChecksumMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, cw.Sum(), mismatch.Expected)
}

func TestCompression(t *testing.T) {
	// Repetitive data so every algorithm actually compresses.
	data := bytes.Repeat([]byte("graphstore snapshot body "), 200)

	for _, ct := range []CompressionType{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(ct.name(), func(t *testing.T) {
			compressed, err := Compress(ct, data)
			require.NoError(t, err)
			if ct != CompressionNone {
				assert.Less(t, len(compressed), len(data))
			}

			restored, err := Decompress(ct, compressed, len(data))
			require.NoError(t, err)
			assert.Equal(t, data, restored)
		})
	}

	t.Run("IncompressibleFallback", func(t *testing.T) {
		data := []byte{0x01} // too small to compress

		compressed, err := Compress(CompressionLZ4, data)
		require.NoError(t, err)
		assert.Equal(t, data, compressed)

		restored, err := Decompress(CompressionLZ4, compressed, len(data))
		require.NoError(t, err)
		assert.Equal(t, data, restored)
	})

	t.Run("InvalidType", func(t *testing.T) {
		_, err := Compress(CompressionType(99), []byte("x"))
		assert.ErrorIs(t, err, ErrInvalidCompression)
	})
}

func (ct CompressionType) name() string {
	switch ct {
	case CompressionLZ4:
		return "LZ4"
	case CompressionZSTD:
		return "ZSTD"
	default:
		return "None"
	}
}
