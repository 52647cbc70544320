package graphstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/graphstore/blobstore"
	"github.com/hupe1980/graphstore/codec"
	"github.com/hupe1980/graphstore/core"
	"github.com/hupe1980/graphstore/csr"
	"github.com/hupe1980/graphstore/persistence"
)

// Save writes a snapshot of the storage. The layout is fixed and
// order-sensitive: forward offsets, forward values (targets, payload blob),
// reverse offsets, reverse values (sources, edge ids), each section
// length-prefixed. The payload blob is encoded with the configured codec;
// the whole body is optionally block-compressed. Load(Save(g)) reproduces g
// observably.
func (s *Storage[E]) Save(w io.Writer) error {
	start := time.Now()
	n, err := s.save(w)
	s.opts.metrics.RecordSave(n, time.Since(start), err)
	s.opts.logger.LogSnapshot(context.Background(), "save", n, time.Since(start), err)
	return err
}

func (s *Storage[E]) save(w io.Writer) (int64, error) {
	var body bytes.Buffer
	bw := persistence.NewWriter(&body)

	if err := bw.WriteUint32Slice(s.fwd.Offsets()); err != nil {
		return 0, err
	}

	numEdges := s.NumEdges()
	targets := make([]uint32, numEdges)
	payloads := make([]E, numEdges)
	for i, v := range s.fwd.Values() {
		targets[i] = uint32(v.Target)
		payloads[i] = v.Data
	}
	if err := bw.WriteUint32Slice(targets); err != nil {
		return 0, err
	}

	blob, err := s.opts.codec.Marshal(payloads)
	if err != nil {
		return 0, fmt.Errorf("encode payloads: %w", err)
	}
	if err := bw.WriteBytes(blob); err != nil {
		return 0, err
	}

	if err := bw.WriteUint32Slice(s.rev.Offsets()); err != nil {
		return 0, err
	}

	sources := make([]uint32, numEdges)
	edges := make([]uint32, numEdges)
	for j, v := range s.rev.Values() {
		sources[j] = uint32(v.Source)
		edges[j] = uint32(v.Edge)
	}
	if err := bw.WriteUint32Slice(sources); err != nil {
		return 0, err
	}
	if err := bw.WriteUint32Slice(edges); err != nil {
		return 0, err
	}

	raw := body.Bytes()
	compressed, err := persistence.Compress(s.opts.compression, raw)
	if err != nil {
		return 0, err
	}

	header := persistence.FileHeader{
		Compression: uint8(s.opts.compression),
		NumVertices: uint64(s.NumVertices()),
		NumEdges:    uint64(numEdges),
		RawLen:      uint64(len(raw)),
		BodyLen:     uint64(len(compressed)),
		Checksum:    persistence.ComputeChecksum(raw),
	}
	header.SetCodecName(s.opts.codec.Name())

	if err := persistence.NewWriter(w).WriteHeader(&header); err != nil {
		return 0, err
	}
	if _, err := w.Write(compressed); err != nil {
		return 0, err
	}
	return int64(64 + len(compressed)), nil
}

// Load replaces the storage contents with a snapshot previously written by
// Save. The codec and compression are selected from the file header, not
// from the storage's options. On error the storage is left unchanged.
// Requires exclusive access.
func (s *Storage[E]) Load(r io.Reader) error {
	start := time.Now()
	n, err := s.load(r)
	s.opts.metrics.RecordLoad(n, time.Since(start), err)
	s.opts.logger.LogSnapshot(context.Background(), "load", n, time.Since(start), err)
	return err
}

func (s *Storage[E]) load(r io.Reader) (int64, error) {
	header, err := persistence.NewReader(r).ReadHeader()
	if err != nil {
		return 0, err
	}

	body := make([]byte, header.BodyLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return 0, err
	}
	read := int64(64 + len(body))

	raw, err := persistence.Decompress(persistence.CompressionType(header.Compression), body, int(header.RawLen))
	if err != nil {
		return read, err
	}
	if err := persistence.VerifyChecksum(raw, header.Checksum); err != nil {
		return read, err
	}

	c, ok := codec.ByName(header.CodecNameString())
	if !ok {
		return read, fmt.Errorf("unknown payload codec %q", header.CodecNameString())
	}

	br := persistence.NewReader(bytes.NewReader(raw))

	fwdOffsets, err := br.ReadUint32Slice()
	if err != nil {
		return read, err
	}
	targets, err := br.ReadUint32Slice()
	if err != nil {
		return read, err
	}
	blob, err := br.ReadBytes()
	if err != nil {
		return read, err
	}
	revOffsets, err := br.ReadUint32Slice()
	if err != nil {
		return read, err
	}
	sources, err := br.ReadUint32Slice()
	if err != nil {
		return read, err
	}
	edges, err := br.ReadUint32Slice()
	if err != nil {
		return read, err
	}

	var payloads []E
	if len(blob) > 0 {
		if err := c.Unmarshal(blob, &payloads); err != nil {
			return read, fmt.Errorf("decode payloads: %w", err)
		}
	}

	numEdges := int(header.NumEdges)
	if len(targets) != numEdges || len(payloads) != numEdges ||
		len(sources) != numEdges || len(edges) != numEdges {
		return read, fmt.Errorf("%w: section sizes do not match edge count %d",
			persistence.ErrCorruptLength, numEdges)
	}
	if err := checkOffsets(fwdOffsets, int(header.NumVertices), numEdges); err != nil {
		return read, err
	}
	if err := checkOffsets(revOffsets, int(header.NumVertices), numEdges); err != nil {
		return read, err
	}

	fwdValues := make([]halfedge[E], numEdges)
	for i := 0; i < numEdges; i++ {
		fwdValues[i] = halfedge[E]{Target: core.VertexID(targets[i]), Data: payloads[i]}
	}
	revValues := make([]backref, numEdges)
	for j := 0; j < numEdges; j++ {
		revValues[j] = backref{Source: core.VertexID(sources[j]), Edge: core.EdgeID(edges[j])}
	}

	s.install(csr.Wrap(fwdOffsets, fwdValues), csr.Wrap(revOffsets, revValues))
	return read, nil
}

func checkOffsets(offsets []uint32, numVertices, numEdges int) error {
	if numVertices == 0 && len(offsets) == 0 {
		return nil
	}
	if len(offsets) != numVertices+1 {
		return fmt.Errorf("%w: offsets length %d, want %d",
			persistence.ErrCorruptLength, len(offsets), numVertices+1)
	}
	if offsets[0] != 0 || int(offsets[numVertices]) != numEdges {
		return fmt.Errorf("%w: offsets endpoints [%d, %d], want [0, %d]",
			persistence.ErrCorruptLength, offsets[0], offsets[numVertices], numEdges)
	}
	for k := 0; k < numVertices; k++ {
		if offsets[k] > offsets[k+1] {
			return fmt.Errorf("%w: offsets decrease at key %d", persistence.ErrCorruptLength, k)
		}
	}
	return nil
}

// SaveSnapshot writes a snapshot into a blob store under the given name.
func (s *Storage[E]) SaveSnapshot(ctx context.Context, store blobstore.BlobStore, name string) error {
	w, err := store.Create(ctx, name)
	if err != nil {
		return err
	}
	if err := s.Save(w); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// LoadSnapshot replaces the storage contents with a snapshot read from a
// blob store.
func (s *Storage[E]) LoadSnapshot(ctx context.Context, store blobstore.BlobStore, name string) error {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return err
	}
	defer blob.Close()

	return s.Load(blobstore.NewBlobReader(ctx, blob))
}
