// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package table implements the Table/DataSet layer of spec.md §4.F:
// ordered, by-name-indexable collections of columns and tables. A
// Table's logical row count is the minimum over its columns' sizes,
// since columns may be over-allocated ahead of the output-completion
// truncation (spec.md §4.F). This mirrors file.go's File, which owns
// an ordered list of sections plus a name index built once at parse
// time — generalized here one level, from "sections in a file" to
// "columns in a table, tables in a dataset".
package table

import (
	"github.com/kineticadb/kinetica-proc-sdk-go/codec"
	"github.com/kineticadb/kinetica-proc-sdk-go/column"
	"github.com/kineticadb/kinetica-proc-sdk-go/scalar"
)

// Table is an ordered collection of columns with lookup by index and
// by name.
type Table struct {
	name    string
	columns []*column.Column
	byName  map[string]*column.Column
}

// Name returns the table's name.
func (t *Table) Name() string { return t.name }

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.columns) }

// ColumnAt returns the column at index i.
func (t *Table) ColumnAt(i int) (*column.Column, error) {
	if i < 0 || i >= len(t.columns) {
		return nil, ErrOutOfRange
	}
	return t.columns[i], nil
}

// Column returns the column named name.
func (t *Table) Column(name string) (*column.Column, error) {
	c, ok := t.byName[name]
	if !ok {
		return nil, ErrOutOfRange
	}
	return c, nil
}

// RowCount returns the table's logical row count: the minimum
// element count over its columns (spec.md §4.F). A table with no
// columns has zero rows.
func (t *Table) RowCount() int64 {
	if len(t.columns) == 0 {
		return 0
	}
	min := t.columns[0].Size()
	for _, c := range t.columns[1:] {
		if c.Size() < min {
			min = c.Size()
		}
	}
	return min
}

// Close releases every column the table owns.
func (t *Table) Close() error {
	var firstErr error
	for _, c := range t.columns {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// DataSet is an ordered collection of tables with lookup by index and
// by name.
type DataSet struct {
	tables []*Table
	byName map[string]*Table
}

// TableCount returns the number of tables.
func (d *DataSet) TableCount() int { return len(d.tables) }

// TableAt returns the table at index i.
func (d *DataSet) TableAt(i int) (*Table, error) {
	if i < 0 || i >= len(d.tables) {
		return nil, ErrOutOfRange
	}
	return d.tables[i], nil
}

// Table returns the table named name.
func (d *DataSet) Table(name string) (*Table, error) {
	t, ok := d.byName[name]
	if !ok {
		return nil, ErrOutOfRange
	}
	return t, nil
}

// Close releases every table the dataset owns.
func (d *DataSet) Close() error {
	var firstErr error
	for _, t := range d.tables {
		if err := t.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// DecodeColumn reads one column header off cur: name, type tag, and
// the three file paths it may reference (spec.md §6 `column :=`),
// then opens it.
func DecodeColumn(cur codec.Cursor, writable bool) (*column.Column, error) {
	name, err := codec.ReadString(cur)
	if err != nil {
		return nil, err
	}
	rawTag, err := codec.ReadUint64(cur)
	if err != nil {
		return nil, err
	}
	dataPath, err := codec.ReadString(cur)
	if err != nil {
		return nil, err
	}
	nullsPath, err := codec.ReadString(cur)
	if err != nil {
		return nil, err
	}
	varDataPath, err := codec.ReadString(cur)
	if err != nil {
		return nil, err
	}
	return column.Open(name, scalar.TypeTag(rawTag), dataPath, nullsPath, varDataPath, writable)
}

// DecodeTable reads one table header off cur: name, column count, and
// that many columns (spec.md §6 `table :=`).
func DecodeTable(cur codec.Cursor, writable bool) (*Table, error) {
	name, err := codec.ReadString(cur)
	if err != nil {
		return nil, err
	}
	count, err := codec.ReadUint64(cur)
	if err != nil {
		return nil, err
	}

	t := &Table{
		name:   name,
		byName: make(map[string]*column.Column, count),
	}
	for i := uint64(0); i < count; i++ {
		c, err := DecodeColumn(cur, writable)
		if err != nil {
			t.Close()
			return nil, err
		}
		t.columns = append(t.columns, c)
		t.byName[c.Name()] = c
	}
	return t, nil
}

// DecodeDataSet reads one dataset off cur: table count and that many
// tables (spec.md §6 `dataset :=`).
func DecodeDataSet(cur codec.Cursor, writable bool) (*DataSet, error) {
	count, err := codec.ReadUint64(cur)
	if err != nil {
		return nil, err
	}

	d := &DataSet{byName: make(map[string]*Table, count)}
	for i := uint64(0); i < count; i++ {
		t, err := DecodeTable(cur, writable)
		if err != nil {
			d.Close()
			return nil, err
		}
		d.tables = append(d.tables, t)
		d.byName[t.name] = t
	}
	return d, nil
}
