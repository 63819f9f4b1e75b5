package storage

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/natefinch/atomic"
)

// SaveGzippedJson replaces the file atomically, readers never see a half
// written snapshot.
func (ds *DiskStorage) SaveGzippedJson(data any, filename string) error {
	if err := ds.ensureFolder(); err != nil {
		return err
	}
	buf := &bytes.Buffer{}
	zipWriter := gzip.NewWriter(buf)
	if err := json.NewEncoder(zipWriter).Encode(data); err != nil {
		zipWriter.Close()
		return err
	}
	if err := zipWriter.Close(); err != nil {
		return err
	}
	return atomic.WriteFile(ds.GetFileName(filename), buf)
}

func (ds *DiskStorage) LoadGzippedJson(data any, filename string) error {
	file, err := os.Open(ds.GetFileName(filename))
	if err != nil {
		return err
	}
	defer file.Close()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer zipReader.Close()

	err = json.NewDecoder(zipReader).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (ds *DiskStorage) SaveJson(data any, filename string) error {
	if err := ds.ensureFolder(); err != nil {
		return err
	}
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return atomic.WriteFile(ds.GetFileName(filename), bytes.NewReader(encoded))
}

func (ds *DiskStorage) LoadJson(data any, filename string) error {
	file, err := os.Open(ds.GetFileName(filename))
	if err != nil {
		return err
	}
	defer file.Close()

	err = json.NewDecoder(file).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
