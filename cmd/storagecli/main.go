// Command storagecli is the storage core's sole demonstration entry
// point: it builds a page, a catalog, a directory, and a B-Tree in
// memory, round-trips the page and the catalog through their codecs,
// and prints the results.
// There is no SQL surface, no server, and no environment-variable
// configuration here — everything is driven by flags, matching the
// rest of this lineage's small cmd/ demos.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/relcore/storage/internal/storage/btree"
	"github.com/relcore/storage/internal/storage/catalog"
	"github.com/relcore/storage/internal/storage/codec"
	"github.com/relcore/storage/internal/storage/directory"
	"github.com/relcore/storage/internal/storage/fileio"
	"github.com/relcore/storage/internal/storage/page"
)

func main() {
	dataDir := flag.String("data-dir", "data", "directory backing persisted catalog/directory/page files")
	degree := flag.Int("btree-degree", 3, "B-Tree minimum degree t")
	persist := flag.Bool("persist", false, "write the demo catalog and directory to -data-dir")
	flag.Parse()

	fmt.Println("=== storagecli: storage core demo ===")

	runPageDemo()
	runCatalogDemo(*dataDir, *persist)
	runDirectoryDemo(*dataDir, *persist)
	runBTreeDemo(*degree)
}

func runPageDemo() {
	fmt.Println("\n1. Page: append + serialize + reload")

	p := page.New(page.Header{Type: page.TypeData, PageNumber: 0, NextPage: -1})
	rows := [][]codec.Value{
		{codec.Int32Value(10), codec.VarcharValue("test")},
		{codec.Int32Value(20), codec.VarcharValue("test2")},
		{codec.Int32Value(30), codec.VarcharValue("test3")},
	}
	for _, r := range rows {
		id, err := p.AppendTuple(r)
		if err != nil {
			log.Fatalf("append tuple: %v", err)
		}
		fmt.Printf("   appended tuple %d, free_space=%d\n", id, p.FreeSpace())
	}

	buf, err := p.Serialize()
	if err != nil {
		log.Fatalf("serialize page: %v", err)
	}
	reloaded, err := page.Deserialize(buf)
	if err != nil {
		log.Fatalf("deserialize page: %v", err)
	}
	for _, t := range reloaded.Tuples() {
		fmt.Printf("   recovered tuple %d: %v\n", t.ID, describeValues(t.Data))
	}
}

func runCatalogDemo(dataDir string, persist bool) {
	fmt.Println("\n2. Catalog: table/column/index round-trip")

	path := filepath.Join(dataDir, "catalog.db")
	cat := catalog.New(path)
	cat.AddTable(catalog.Table{
		OID:  1,
		Name: "table",
		Columns: []catalog.Column{
			{
				OID:      2,
				Name:     "column",
				MaxValue: codec.Int32Value(100),
				MinValue: codec.Int32Value(0),
				Constraints: []catalog.Constraint{
					{OID: 3, Name: "constraint", DType: "type"},
				},
			},
		},
		Indexes: []catalog.Index{
			{OID: 4, Name: "index", Columns: []string{"column"}, Unique: true},
		},
	})

	encoded := cat.Encode()
	offset := 0
	reloaded, err := catalog.Decode(encoded, &offset)
	if err != nil {
		log.Fatalf("decode catalog: %v", err)
	}
	fmt.Printf("   table count: %d, table[0].name=%q\n", len(reloaded.Tables), reloaded.Tables[0].Name)

	if persist {
		if err := fileio.WriteAll(path, encoded); err != nil {
			log.Fatalf("write catalog: %v", err)
		}
		fmt.Printf("   persisted to %s\n", path)
	}
}

func runDirectoryDemo(dataDir string, persist bool) {
	fmt.Println("\n3. Directory: page/object maps + uuid page paths")

	path := filepath.Join(dataDir, "directory.db")
	dir := directory.New()
	generatedPath := dir.NewPagePath(1, dataDir)
	if err := dir.AddObject(100, 1); err != nil {
		log.Fatalf("add object: %v", err)
	}
	fmt.Printf("   page 1 -> %s\n", generatedPath.String())
	fmt.Printf("   objects for page 1: %v\n", dir.GetObjectsForPage(1))

	if persist {
		if err := fileio.WriteAll(path, dir.Encode()); err != nil {
			log.Fatalf("write directory: %v", err)
		}
		fmt.Printf("   persisted to %s\n", path)
	}
}

func runBTreeDemo(t int) {
	fmt.Printf("\n4. B-Tree (t=%d): insert, search, delete\n", t)

	tree := btree.New[string](t)
	for _, k := range []int32{1, 4, 12, 13, 12, 5, 6} {
		tree.Insert(k, fmt.Sprintf("v%d", k))
	}

	if v, ok := tree.Search(6); ok {
		fmt.Printf("   search(6) = %q\n", v)
	} else {
		fmt.Println("   search(6) = absent")
	}

	if err := tree.Delete(6); err != nil {
		log.Fatalf("delete(6): %v", err)
	}

	if _, ok := tree.Search(6); ok {
		fmt.Println("   search(6) after delete: FOUND (unexpected)")
		os.Exit(1)
	}
	fmt.Println("   search(6) after delete: absent")
	fmt.Printf("   tree height=%d, entries=%d\n", tree.Height(), tree.Len())
}

func describeValues(vs []codec.Value) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		switch v.Kind() {
		case codec.KindVarchar:
			out[i] = v.String()
		case codec.KindInt32:
			out[i] = v.Int32()
		case codec.KindFloat64:
			out[i] = v.Float64()
		case codec.KindBool:
			out[i] = v.Bool()
		default:
			out[i] = nil
		}
	}
	return out
}
