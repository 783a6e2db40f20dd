// Package catalog holds the database's schema metadata: tables, their
// columns, indexes, and constraints. It is a plain in-memory structure
// with no uniqueness enforcement (see spec §9) — that responsibility
// belongs to whatever layer eventually sits above this storage core.
//
// Grounded on the original catalog module's Table/Column/Index/
// Constraint hierarchy; Go structure and doc-comment density follow the
// teacher lineage's pager/catalog.go, adapted from its B+Tree-backed
// schema store to this package's flat, codec-serialized blob.
package catalog

import "github.com/relcore/storage/internal/storage/codec"

// Constraint is a named rule attached to a column, e.g. "NOT NULL" or
// "CHECK". The rule's semantics are left to callers — the catalog only
// stores the declaration.
type Constraint struct {
	OID   int32
	Name  string
	DType string
}

func (c Constraint) Encode() []byte {
	out := codec.Int32Value(c.OID).Encode()
	out = append(out, codec.VarcharValue(c.Name).Encode()...)
	out = append(out, codec.VarcharValue(c.DType).Encode()...)
	return out
}

func decodeConstraint(buf []byte, offset *int) (Constraint, error) {
	oid, err := codec.Decode(buf, offset)
	if err != nil {
		return Constraint{}, err
	}
	name, err := codec.Decode(buf, offset)
	if err != nil {
		return Constraint{}, err
	}
	dtype, err := codec.Decode(buf, offset)
	if err != nil {
		return Constraint{}, err
	}
	return Constraint{OID: oid.Int32(), Name: name.String(), DType: dtype.String()}, nil
}

// Column describes one column of a Table.
type Column struct {
	OID         int32
	Name        string
	MaxValue    codec.Value
	MinValue    codec.Value
	Constraints []Constraint
}

func (c Column) Encode() []byte {
	out := codec.Int32Value(c.OID).Encode()
	out = append(out, codec.VarcharValue(c.Name).Encode()...)
	out = append(out, c.MaxValue.Encode()...)
	out = append(out, c.MinValue.Encode()...)
	out = append(out, codec.EncodeList(constraintValues(c.Constraints))...)
	return out
}

func decodeColumn(buf []byte, offset *int) (Column, error) {
	oid, err := codec.Decode(buf, offset)
	if err != nil {
		return Column{}, err
	}
	name, err := codec.Decode(buf, offset)
	if err != nil {
		return Column{}, err
	}
	maxVal, err := codec.Decode(buf, offset)
	if err != nil {
		return Column{}, err
	}
	minVal, err := codec.Decode(buf, offset)
	if err != nil {
		return Column{}, err
	}
	constraints, err := codec.DecodeList(buf, offset, decodeConstraint)
	if err != nil {
		return Column{}, err
	}
	return Column{
		OID:         oid.Int32(),
		Name:        name.String(),
		MaxValue:    maxVal,
		MinValue:    minVal,
		Constraints: constraints,
	}, nil
}

// Index describes a named index over one or more columns, identified by
// name rather than by Column reference — matching the original design's
// deliberately simple "list of strings" placeholder for column
// references (see spec §9, carried forward rather than "fixed", since
// resolving column names to Column objects is query-planner territory,
// explicitly out of scope).
type Index struct {
	OID     int32
	Name    string
	Columns []string
	Unique  bool
}

func (ix Index) Encode() []byte {
	out := codec.Int32Value(ix.OID).Encode()
	out = append(out, codec.VarcharValue(ix.Name).Encode()...)
	out = append(out, codec.EncodeList(columnNameValues(ix.Columns))...)
	out = append(out, codec.BoolValue(ix.Unique).Encode()...)
	return out
}

func decodeIndex(buf []byte, offset *int) (Index, error) {
	oid, err := codec.Decode(buf, offset)
	if err != nil {
		return Index{}, err
	}
	name, err := codec.Decode(buf, offset)
	if err != nil {
		return Index{}, err
	}
	columns, err := codec.DecodeList(buf, offset, codec.ValueDecoder)
	if err != nil {
		return Index{}, err
	}
	unique, err := codec.Decode(buf, offset)
	if err != nil {
		return Index{}, err
	}
	names := make([]string, len(columns))
	for i, v := range columns {
		names[i] = v.String()
	}
	return Index{OID: oid.Int32(), Name: name.String(), Columns: names, Unique: unique.Bool()}, nil
}

// Table is a named collection of columns and indexes.
type Table struct {
	OID     int32
	Name    string
	Columns []Column
	Indexes []Index
}

func (t Table) Encode() []byte {
	out := codec.Int32Value(t.OID).Encode()
	out = append(out, codec.VarcharValue(t.Name).Encode()...)
	out = append(out, codec.EncodeList(columnValues(t.Columns))...)
	out = append(out, codec.EncodeList(indexValues(t.Indexes))...)
	return out
}

func decodeTable(buf []byte, offset *int) (Table, error) {
	oid, err := codec.Decode(buf, offset)
	if err != nil {
		return Table{}, err
	}
	name, err := codec.Decode(buf, offset)
	if err != nil {
		return Table{}, err
	}
	columns, err := codec.DecodeList(buf, offset, decodeColumn)
	if err != nil {
		return Table{}, err
	}
	indexes, err := codec.DecodeList(buf, offset, decodeIndex)
	if err != nil {
		return Table{}, err
	}
	return Table{OID: oid.Int32(), Name: name.String(), Columns: columns, Indexes: indexes}, nil
}

// Catalog is the database's schema store: a flat list of tables backed
// by a single file. There is no name or OID uniqueness check on
// AddTable (spec §9) — duplicate detection belongs to a layer above
// this one.
type Catalog struct {
	path   string
	Tables []Table
}

// New creates an empty catalog bound to path. The file is not touched;
// this package only encodes and decodes, and callers write the bytes
// from Encode themselves (for example with the fileio package).
func New(path string) *Catalog {
	return &Catalog{path: path}
}

// SetFile rebinds the catalog to a different backing path without
// altering its in-memory tables.
func (c *Catalog) SetFile(path string) {
	c.path = path
}

// Path returns the catalog's current backing file path.
func (c *Catalog) Path() string {
	return c.path
}

// AddTable appends table to the catalog.
func (c *Catalog) AddTable(t Table) {
	c.Tables = append(c.Tables, t)
}

// Encode serializes the catalog as a single list of tables.
func (c *Catalog) Encode() []byte {
	return codec.EncodeList(tableValues(c.Tables))
}

// Decode reconstructs a catalog's tables from buf at offset. The
// resulting catalog's path is left empty; callers should SetFile
// afterward if they need one.
func Decode(buf []byte, offset *int) (*Catalog, error) {
	tables, err := codec.DecodeList(buf, offset, decodeTable)
	if err != nil {
		return nil, err
	}
	return &Catalog{Tables: tables}, nil
}

func constraintValues(cs []Constraint) []codec.Serializable {
	out := make([]codec.Serializable, len(cs))
	for i, c := range cs {
		out[i] = c
	}
	return out
}

func columnValues(cs []Column) []codec.Serializable {
	out := make([]codec.Serializable, len(cs))
	for i, c := range cs {
		out[i] = c
	}
	return out
}

func indexValues(ixs []Index) []codec.Serializable {
	out := make([]codec.Serializable, len(ixs))
	for i, ix := range ixs {
		out[i] = ix
	}
	return out
}

func tableValues(ts []Table) []codec.Serializable {
	out := make([]codec.Serializable, len(ts))
	for i, t := range ts {
		out[i] = t
	}
	return out
}

func columnNameValues(names []string) []codec.Value {
	out := make([]codec.Value, len(names))
	for i, n := range names {
		out[i] = codec.VarcharValue(n)
	}
	return out
}
