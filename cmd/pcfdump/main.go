// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Command pcfdump inspects a control file and the columnar files it
// references, for debugging a proc invocation from the shell. It is
// grounded on cmd/pedumper.go's cobra rootCmd/subcommand layout and
// its json.Indent pretty-printer, adapted from "dump a parsed PE
// image's structs" to "dump a parsed control file's datasets".
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	ilog "github.com/kineticadb/kinetica-proc-sdk-go/internal/log"
	"github.com/kineticadb/kinetica-proc-sdk-go/proc"
	"github.com/kineticadb/kinetica-proc-sdk-go/table"
)

var (
	verbose    bool
	showValues bool
	maxRows    int
)

func prettyPrint(buf []byte) string {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf, "", "\t"); err != nil {
		return string(buf)
	}
	return pretty.String()
}

type columnSummary struct {
	Name       string   `json:"name"`
	Type       uint64   `json:"type"`
	Size       int64    `json:"size"`
	Nullable   bool     `json:"nullable"`
	VarWidth   bool     `json:"varWidth"`
	SampleRows []string `json:"sampleRows,omitempty"`
}

type tableSummary struct {
	Name     string          `json:"name"`
	RowCount int64           `json:"rowCount"`
	Columns  []columnSummary `json:"columns"`
}

type datasetSummary struct {
	Tables []tableSummary `json:"tables"`
}

func summarizeDataSet(ds *table.DataSet) datasetSummary {
	var out datasetSummary
	for i := 0; i < ds.TableCount(); i++ {
		t, err := ds.TableAt(i)
		if err != nil {
			continue
		}
		ts := tableSummary{Name: t.Name(), RowCount: t.RowCount()}
		for j := 0; j < t.ColumnCount(); j++ {
			c, err := t.ColumnAt(j)
			if err != nil {
				continue
			}
			cs := columnSummary{
				Name:     c.Name(),
				Type:     uint64(c.Type()),
				Size:     c.Size(),
				Nullable: c.Nullable(),
				VarWidth: c.VarWidth(),
			}
			if showValues {
				limit := int64(maxRows)
				if limit > c.Size() {
					limit = c.Size()
				}
				for r := int64(0); r < limit; r++ {
					s, err := c.ToString(r)
					if err != nil {
						s = fmt.Sprintf("<error: %v>", err)
					}
					cs.SampleRows = append(cs.SampleRows, s)
				}
			}
			ts.Columns = append(ts.Columns, cs)
		}
		out.Tables = append(out.Tables, ts)
	}
	return out
}

func dump(cmd *cobra.Command, args []string) error {
	log := ilog.Default()
	path := args[0]
	log.Infof("opening control file %s", path)

	p, err := proc.OpenFile(path)
	if err != nil {
		return fmt.Errorf("pcfdump: %w", err)
	}
	defer p.Close()

	report := struct {
		Version     uint64            `json:"version"`
		RequestInfo map[string]string `json:"requestInfo"`
		Params      map[string]string `json:"params"`
		InputData   datasetSummary    `json:"inputData"`
	}{
		Version:     p.Version(),
		RequestInfo: p.RequestInfo(),
		Params:      p.Params(),
		InputData:   summarizeDataSet(p.InputData()),
	}

	buf, err := json.Marshal(report)
	if err != nil {
		return err
	}
	fmt.Println(prettyPrint(buf))
	return nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "pcfdump",
		Short: "Inspect a kinetica proc control file",
		Long:  "pcfdump parses a control file and the columnar files it references, for debugging a proc invocation from the shell.",
	}

	dumpCmd := &cobra.Command{
		Use:   "dump <path-to-control-file>",
		Short: "Dump a control file's request metadata and input dataset",
		Args:  cobra.ExactArgs(1),
		RunE:  dump,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	dumpCmd.Flags().BoolVar(&showValues, "values", false, "render sample row values")
	dumpCmd.Flags().IntVar(&maxRows, "max-rows", 10, "maximum sample rows per column when --values is set")

	rootCmd.AddCommand(dumpCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
