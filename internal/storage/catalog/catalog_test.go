package catalog

import (
	"testing"

	"github.com/relcore/storage/internal/storage/codec"
)

func sampleTable() Table {
	return Table{
		OID:  1,
		Name: "table",
		Columns: []Column{
			{
				OID:      2,
				Name:     "column",
				MaxValue: codec.Int32Value(100),
				MinValue: codec.Int32Value(0),
				Constraints: []Constraint{
					{OID: 3, Name: "constraint", DType: "type"},
				},
			},
		},
		Indexes: []Index{
			{OID: 4, Name: "index", Columns: []string{"column"}, Unique: true},
		},
	}
}

func TestCatalog_SerializeInMemoryRoundTrip(t *testing.T) {
	c := New("data/catalog.db")
	c.AddTable(sampleTable())

	buf := c.Encode()
	offset := 0
	got, err := Decode(buf, &offset)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Tables) != len(c.Tables) {
		t.Fatalf("got %d tables, want %d", len(got.Tables), len(c.Tables))
	}
	if got.Tables[0].Name != c.Tables[0].Name {
		t.Fatalf("got table name %q, want %q", got.Tables[0].Name, c.Tables[0].Name)
	}
	if len(got.Tables[0].Columns) != 1 || got.Tables[0].Columns[0].Name != "column" {
		t.Fatalf("column did not round-trip: %+v", got.Tables[0].Columns)
	}
	if len(got.Tables[0].Columns[0].Constraints) != 1 {
		t.Fatalf("constraint did not round-trip: %+v", got.Tables[0].Columns[0])
	}
	if len(got.Tables[0].Indexes) != 1 || !got.Tables[0].Indexes[0].Unique {
		t.Fatalf("index did not round-trip: %+v", got.Tables[0].Indexes)
	}
}

func TestCatalog_EmptyRoundTrip(t *testing.T) {
	c := New("data/catalog.db")
	buf := c.Encode()
	offset := 0
	got, err := Decode(buf, &offset)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Tables) != 0 {
		t.Fatalf("got %d tables, want 0", len(got.Tables))
	}
}

func TestCatalog_AddTableDoesNotDeduplicate(t *testing.T) {
	c := New("data/catalog.db")
	c.AddTable(sampleTable())
	c.AddTable(sampleTable())
	if len(c.Tables) != 2 {
		t.Fatalf("got %d tables, want 2 (no uniqueness enforcement)", len(c.Tables))
	}
}

func TestCatalog_SetFileChangesPathOnly(t *testing.T) {
	c := New("data/catalog.db")
	c.AddTable(sampleTable())
	c.SetFile("data/other.db")
	if c.Path() != "data/other.db" {
		t.Fatalf("got path %q, want %q", c.Path(), "data/other.db")
	}
	if len(c.Tables) != 1 {
		t.Fatalf("SetFile must not alter in-memory tables")
	}
}
