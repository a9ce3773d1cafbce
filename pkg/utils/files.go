package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// LoadFile loads the given file and performs decompression if necessary.
// Archives (.zip, .7z) yield their first file.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	// try to assert the compression type from the file extension
	var decoder io.Reader
	r := bytes.NewReader(data)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".gz":
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		defer gz.Close()
		decoder = gz
	case ".zip":
		zipReader, err := zip.NewReader(r, int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		if len(zipReader.File) == 0 {
			return nil, fmt.Errorf("%s: empty archive", filename)
		}

		// read the first file in the zip file
		rc, err := zipReader.File[0].Open()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		defer rc.Close()
		decoder = rc
	case ".7z":
		szReader, err := sevenzip.NewReader(r, int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		if len(szReader.File) == 0 {
			return nil, fmt.Errorf("%s: empty archive", filename)
		}

		// read the first file in the archive
		rc, err := szReader.File[0].Open()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		defer rc.Close()
		decoder = rc
	default:
		// return the data as is
		return data, nil
	}

	// read the decompressed data into a byte slice
	data, err = io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}
