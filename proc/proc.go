// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package proc implements the proc lifecycle contract of spec.md
// §4.G: reading the control file named by KINETICA_PCF, constructing
// the input/output datasets it references, exposing request
// metadata/params/status to the user's proc body, and publishing the
// output control file atomically on completion.
//
// spec.md §9 Open Question 2 leaves the choice between a process-wide
// singleton and an explicit caller-held handle to the implementation,
// provided at most one handle is ever live per process (the
// underlying files are not safe to open twice). This package takes
// the explicit-handle route — Open returns *Proc directly rather than
// routing through a package-level Get() — enforced by a package-level
// guard in guard.go, the same way file.go's New centralizes
// construction behind one entry point rather than a lazily
// initialized global.
package proc

import (
	"os"

	"github.com/natefinch/atomic"

	"github.com/kineticadb/kinetica-proc-sdk-go/codec"
	ilog "github.com/kineticadb/kinetica-proc-sdk-go/internal/log"
	"github.com/kineticadb/kinetica-proc-sdk-go/mmapfile"
	"github.com/kineticadb/kinetica-proc-sdk-go/table"
)

// controlFileEnv is the environment variable naming the input control
// file (spec.md §6).
const controlFileEnv = "KINETICA_PCF"

// Proc holds everything a running proc needs: the decoded request
// metadata, the input/output datasets, and the bookkeeping required to
// publish results on Complete (spec.md §3 "Proc").
type Proc struct {
	log *ilog.Helper

	controlFile *mmapfile.MappedFile
	version     uint64

	requestInfo map[string]string
	params      map[string]string
	binParams   map[string][]byte

	inputData  *table.DataSet
	outputData *table.OutputDataSet

	outputControlFileName string

	statusFileName string
	statusFile     *mmapfile.MappedFile // nil unless version == 2
	status         string

	results    map[string]string
	binResults map[string][]byte
}

// Open reads KINETICA_PCF, parses the control file it names, and
// builds the input/output datasets (spec.md §4.G init()). Only one
// Proc may be open at a time per process.
func Open() (*Proc, error) {
	path := os.Getenv(controlFileEnv)
	if path == "" {
		return nil, ErrMissingControlFile
	}
	return OpenFile(path)
}

// OpenFile is Open with an explicit control file path, useful for
// tests and for cmd/pcfdump which never sets KINETICA_PCF.
func OpenFile(path string) (*Proc, error) {
	if err := claim(); err != nil {
		return nil, err
	}

	p := &Proc{log: ilog.Default()}
	if err := p.init(path); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

func (p *Proc) init(path string) error {
	cur, err := mmapfile.Map(path, false, nil)
	if err != nil {
		return err
	}
	p.controlFile = cur

	version, err := codec.ReadUint64(cur)
	if err != nil {
		return err
	}
	if version != 1 && version != 2 {
		return ErrUnsupportedVersion
	}
	p.version = version

	// The host writes requestInfo twice; the second read replaces the
	// first rather than merging with it (spec.md §4.G step 4, §9 Open
	// Question 1).
	if _, err := codec.ReadStringMap(cur); err != nil {
		return err
	}
	requestInfo, err := codec.ReadStringMap(cur)
	if err != nil {
		return err
	}
	p.requestInfo = requestInfo

	params, err := codec.ReadStringMap(cur)
	if err != nil {
		return err
	}
	p.params = params

	binParams, err := codec.ReadBytesMap(cur)
	if err != nil {
		return err
	}
	p.binParams = binParams

	inputData, err := table.DecodeDataSet(cur, false)
	if err != nil {
		return err
	}
	p.inputData = inputData

	outputDataSet, err := table.DecodeDataSet(cur, true)
	if err != nil {
		return err
	}
	p.outputData = table.WrapOutputDataSet(outputDataSet)

	outputControlFileName, err := codec.ReadString(cur)
	if err != nil {
		return err
	}
	p.outputControlFileName = outputControlFileName

	p.results = make(map[string]string)
	p.binResults = make(map[string][]byte)

	if p.version == 2 {
		statusFileName, err := codec.ReadString(cur)
		if err != nil {
			return err
		}
		p.statusFileName = statusFileName
		statusFile, err := mmapfile.Map(statusFileName, true, nil)
		if err != nil {
			return err
		}
		p.statusFile = statusFile
	}

	p.log.Infof("opened control file %s (version %d)", path, p.version)
	return nil
}

// Close tears down every resource the Proc holds: input/output
// datasets, the control file mapping, and the status file mapping if
// present (spec.md §4.G "On any failure during init, the partially
// built state must be torn down").
func (p *Proc) Close() error {
	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if p.outputData != nil {
		record(p.outputData.Close())
		p.outputData = nil
	}
	if p.inputData != nil {
		record(p.inputData.Close())
		p.inputData = nil
	}
	if p.statusFile != nil {
		record(p.statusFile.Unmap())
		p.statusFile = nil
	}
	if p.controlFile != nil {
		record(p.controlFile.Unmap())
		p.controlFile = nil
	}
	p.requestInfo, p.params, p.binParams = nil, nil, nil
	release()
	return firstErr
}

// Version returns the control file's declared version, 1 or 2.
func (p *Proc) Version() uint64 { return p.version }

// RequestInfo returns the host-provided request metadata.
func (p *Proc) RequestInfo() map[string]string { return p.requestInfo }

// Params returns the user-supplied string parameters.
func (p *Proc) Params() map[string]string { return p.params }

// BinParams returns the user-supplied binary parameters.
func (p *Proc) BinParams() map[string][]byte { return p.binParams }

// InputData returns the read-only input dataset.
func (p *Proc) InputData() *table.DataSet { return p.inputData }

// OutputData returns the writable output dataset.
func (p *Proc) OutputData() *table.OutputDataSet { return p.outputData }

// SetResult records a string result the host will read back from the
// output control file.
func (p *Proc) SetResult(key, value string) { p.results[key] = value }

// SetBinResult records a binary result.
func (p *Proc) SetBinResult(key string, value []byte) { p.binResults[key] = value }

// Status returns the in-memory status last set via SetStatus.
func (p *Proc) Status() string { return p.status }

// SetStatus updates the in-memory status and, on version 2 control
// files, persists it to the status file under an exclusive advisory
// lock spanning the seek-and-write, releasing the lock on every exit
// path (spec.md §4.G setStatus(), §5 "Shared resource policy").
func (p *Proc) SetStatus(value string) error {
	p.status = value
	if p.statusFile == nil {
		return nil
	}
	if err := p.statusFile.Lock(true); err != nil {
		return err
	}
	defer p.statusFile.Unlock()

	if err := p.statusFile.Seek(0); err != nil {
		return err
	}
	return codec.WriteString(p.statusFile, value)
}

// Complete finalizes the output dataset and publishes the output
// control file atomically (write-to-temp-then-rename), per spec.md
// §4.G complete(): "Invoke outputData.complete()", then write
// version=1, results, binResults to the output control file.
func (p *Proc) Complete() error {
	if err := p.outputData.Complete(); err != nil {
		return err
	}

	tmp, err := mmapfile.Map(p.outputControlFileName+".tmp", true, nil)
	if err != nil {
		return err
	}
	writeErr := writeOutputControlFile(tmp, p.results, p.binResults)
	closeErr := tmp.Unmap()
	if writeErr != nil {
		os.Remove(p.outputControlFileName + ".tmp")
		return writeErr
	}
	if closeErr != nil {
		os.Remove(p.outputControlFileName + ".tmp")
		return closeErr
	}

	// natefinch/atomic performs the publish as a rename, so a reader
	// of outputControlFileName never observes a partially written file
	// (spec.md §4.G "write the output control file through A+B" —
	// generalized here to an atomic publish since the spec requires a
	// complete, valid file or none at all, not a torn one).
	return atomic.ReplaceFile(p.outputControlFileName+".tmp", p.outputControlFileName)
}

func writeOutputControlFile(cur codec.Cursor, results map[string]string, binResults map[string][]byte) error {
	if err := codec.WriteUint64(cur, 1); err != nil {
		return err
	}
	if err := codec.WriteStringMap(cur, results); err != nil {
		return err
	}
	return codec.WriteBytesMap(cur, binResults)
}
