package graphstore_test

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/graphstore"
	"github.com/hupe1980/graphstore/blobstore"
	"github.com/hupe1980/graphstore/buffer"
	"github.com/hupe1980/graphstore/persistence"
)

// Example_finalize demonstrates staging edges and finalizing the dual index.
func Example_finalize() {
	buf := buffer.New[string]()
	buf.Add(0, 1, "a")
	buf.Add(1, 2, "b")
	buf.Add(0, 2, "c")

	g := graphstore.New[string]()
	if err := g.Finalize(buf, 3); err != nil {
		log.Fatal(err)
	}

	fmt.Println("vertices:", g.NumVertices())
	fmt.Println("edges:", g.NumEdges())
	// Output:
	// vertices: 3
	// edges: 3
}

// Example_neighbors demonstrates iterating a vertex's in-edges.
func Example_neighbors() {
	buf := buffer.New[string]()
	buf.Add(0, 1, "a")
	buf.Add(1, 2, "b")
	buf.Add(0, 2, "c")

	g := graphstore.New[string]()
	if err := g.Finalize(buf, 3); err != nil {
		log.Fatal(err)
	}

	for e := range g.InEdges(2).All() {
		fmt.Printf("%d -> %d %q\n", e.Source(), e.Target(), e.Data())
	}
	// Output:
	// 0 -> 2 "c"
	// 1 -> 2 "b"
}

// Example_snapshot demonstrates saving a finalized graph and loading it back.
func Example_snapshot() {
	ctx := context.Background()

	buf := buffer.New[string]()
	buf.Add(0, 1, "a")
	buf.Add(1, 2, "b")

	g := graphstore.New[string](graphstore.WithCompression(persistence.CompressionZSTD))
	if err := g.Finalize(buf, 3); err != nil {
		log.Fatal(err)
	}

	store := blobstore.NewMemoryStore()
	if err := g.SaveSnapshot(ctx, store, "graph.snap"); err != nil {
		log.Fatal(err)
	}

	loaded := graphstore.New[string]()
	if err := loaded.LoadSnapshot(ctx, store, "graph.snap"); err != nil {
		log.Fatal(err)
	}

	fmt.Println("edges:", loaded.NumEdges())
	// Output: edges: 2
}

// Example_saveToWriter demonstrates the stream-based snapshot form.
func Example_saveToWriter() {
	buf := buffer.New[int]()
	buf.Add(0, 1, 10)

	g := graphstore.New[int]()
	if err := g.Finalize(buf, 2); err != nil {
		log.Fatal(err)
	}

	var snap bytes.Buffer
	if err := g.Save(&snap); err != nil {
		log.Fatal(err)
	}

	loaded := graphstore.New[int]()
	if err := loaded.Load(bytes.NewReader(snap.Bytes())); err != nil {
		log.Fatal(err)
	}

	data, err := loaded.EdgeData(0)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("data:", data)
	// Output: data: 10
}
