// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Command exampleproc is the thin collaborator spec.md §1 describes:
// it reads KINETICA_PCF, copies every input table's columns to the
// identically-named output table column for column, and calls
// Complete. It exists to exercise the full proc lifecycle end to end,
// not to demonstrate anything clever.
package main

import (
	"fmt"
	"os"

	ilog "github.com/kineticadb/kinetica-proc-sdk-go/internal/log"
	"github.com/kineticadb/kinetica-proc-sdk-go/proc"
	"github.com/kineticadb/kinetica-proc-sdk-go/scalar"
	"github.com/kineticadb/kinetica-proc-sdk-go/table"
)

func copyColumn(dst *table.OutputTable, src *table.Table, colIndex int) error {
	srcCol, err := src.ColumnAt(colIndex)
	if err != nil {
		return err
	}
	dstCol, err := dst.Output(colIndex)
	if err != nil {
		return err
	}

	n := srcCol.Size()
	for i := int64(0); i < n; i++ {
		isNull, err := srcCol.IsNull(i)
		if err != nil {
			return err
		}

		if dstCol.VarWidth() {
			if isNull {
				if err := dstCol.AppendVarNull(); err != nil {
					return err
				}
				continue
			}
			if srcCol.Type() == scalar.TypeString {
				s, err := srcCol.GetString(i)
				if err != nil {
					return err
				}
				if err := dstCol.AppendString(s); err != nil {
					return err
				}
				continue
			}
			b, err := srcCol.GetBytes(i)
			if err != nil {
				return err
			}
			if err := dstCol.AppendVarValue(b); err != nil {
				return err
			}
			continue
		}

		if isNull {
			if err := dstCol.AppendNull(); err != nil {
				return err
			}
			continue
		}
		raw, err := srcCol.Raw(i)
		if err != nil {
			return err
		}
		if err := dstCol.AppendValue(raw); err != nil {
			return err
		}
	}
	return nil
}

func run() error {
	log := ilog.Default()

	p, err := proc.Open()
	if err != nil {
		return err
	}
	defer p.Close()

	in := p.InputData()
	out := p.OutputData()

	for i := 0; i < in.TableCount(); i++ {
		srcTable, err := in.TableAt(i)
		if err != nil {
			return err
		}
		dstTable, err := out.OutputByName(srcTable.Name())
		if err != nil {
			log.Warnf("no matching output table for input table %q, skipping", srcTable.Name())
			continue
		}
		for c := 0; c < srcTable.ColumnCount(); c++ {
			if err := copyColumn(dstTable, srcTable, c); err != nil {
				return err
			}
		}
	}

	p.SetResult("status", "ok")
	if err := p.SetStatus("complete"); err != nil {
		return err
	}
	return p.Complete()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
