// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package table

import "github.com/kineticadb/kinetica-proc-sdk-go/column"

// OutputTable wraps a Table whose columns were opened writable,
// adding setSize/complete (spec.md §4.F).
type OutputTable struct {
	*Table
	outputs []*column.OutputColumn
}

// WrapOutputTable adapts a writable Table into an OutputTable. The
// caller must have constructed t via DecodeTable(cur, true).
func WrapOutputTable(t *Table) *OutputTable {
	outputs := make([]*column.OutputColumn, len(t.columns))
	for i, c := range t.columns {
		outputs[i] = column.Wrap(c)
	}
	return &OutputTable{Table: t, outputs: outputs}
}

// Output returns the writable handle for the column at index i.
func (ot *OutputTable) Output(i int) (*column.OutputColumn, error) {
	if i < 0 || i >= len(ot.outputs) {
		return nil, ErrOutOfRange
	}
	return ot.outputs[i], nil
}

// OutputByName returns the writable handle for the column named name.
func (ot *OutputTable) OutputByName(name string) (*column.OutputColumn, error) {
	for i, c := range ot.Table.columns {
		if c.Name() == name {
			return ot.outputs[i], nil
		}
	}
	return nil, ErrOutOfRange
}

// SetSize preallocates every column for n rows (spec.md §4.F:
// "OutputTable::setSize(n) calls reserve(n) on every column").
func (ot *OutputTable) SetSize(n int64) error {
	for _, oc := range ot.outputs {
		if err := oc.Reserve(n); err != nil {
			return err
		}
	}
	return nil
}

// Complete finalizes every column (spec.md §4.F: "each table calls
// complete() on each column").
func (ot *OutputTable) Complete() error {
	for _, oc := range ot.outputs {
		if err := oc.Complete(); err != nil {
			return err
		}
	}
	return nil
}

// OutputDataSet wraps a DataSet whose tables were opened writable.
type OutputDataSet struct {
	*DataSet
	outputs []*OutputTable
}

// WrapOutputDataSet adapts a writable DataSet into an OutputDataSet.
func WrapOutputDataSet(d *DataSet) *OutputDataSet {
	outputs := make([]*OutputTable, len(d.tables))
	for i, t := range d.tables {
		outputs[i] = WrapOutputTable(t)
	}
	return &OutputDataSet{DataSet: d, outputs: outputs}
}

// Output returns the writable handle for the table at index i.
func (od *OutputDataSet) Output(i int) (*OutputTable, error) {
	if i < 0 || i >= len(od.outputs) {
		return nil, ErrOutOfRange
	}
	return od.outputs[i], nil
}

// OutputByName returns the writable handle for the table named name.
func (od *OutputDataSet) OutputByName(name string) (*OutputTable, error) {
	for i, t := range od.DataSet.tables {
		if t.name == name {
			return od.outputs[i], nil
		}
	}
	return nil, ErrOutOfRange
}

// Complete invokes Complete on every table (spec.md §4.G complete()
// step 1: "Invoke outputData.complete()").
func (od *OutputDataSet) Complete() error {
	for _, ot := range od.outputs {
		if err := ot.Complete(); err != nil {
			return err
		}
	}
	return nil
}
