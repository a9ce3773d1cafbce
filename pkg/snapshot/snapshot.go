// Package snapshot keeps timestamped synthesizer snapshots in a
// folder, so that a session can be resumed where it was left.
//
// snapshot file naming convention:
// <name>.<timestamp>.1bit
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/thelolagemann/onebit/pkg/utils"
)

const extension = ".1bit"

// Store is a folder of snapshots.
type Store struct {
	Dir string
	now func() time.Time
}

// Snapshot is a snapshot file.
type Snapshot struct {
	Path      string
	Timestamp int64
}

// NewStore returns a Store in dir, creating the folder if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Store{Dir: dir, now: time.Now}, nil
}

// Save writes b as a new snapshot named name. The data is written to
// a temporary file first and renamed into place, so that a crash
// never leaves a truncated snapshot behind.
func (s *Store) Save(name string, b []byte) (string, error) {
	path := filepath.Join(s.Dir, fmt.Sprintf("%s.%d%s", name, s.now().Unix(), extension))
	f, err := os.CreateTemp(s.Dir, filepath.Base(path)+".*")
	if err != nil {
		return "", err
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return path, os.Rename(f.Name(), path)
}

// List returns every snapshot named name, newest first.
func (s *Store) List(name string) ([]Snapshot, error) {
	files, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}

	snapshots := make([]Snapshot, 0)
	for _, file := range files {
		if file.IsDir() || !isSnapshotFile(file.Name()) || !strings.HasPrefix(file.Name(), name+".") {
			continue
		}
		snapshots = append(snapshots, Snapshot{
			Path:      filepath.Join(s.Dir, file.Name()),
			Timestamp: parseTimestampFromFilename(file.Name()),
		})
	}

	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].Timestamp > snapshots[j].Timestamp
	})
	return snapshots, nil
}

// Latest returns the data of the newest snapshot named name. The
// returned path is empty when there is none.
func (s *Store) Latest(name string) ([]byte, string, error) {
	snapshots, err := s.List(name)
	if err != nil || len(snapshots) == 0 {
		return nil, "", err
	}
	b, err := utils.LoadFile(snapshots[0].Path)
	if err != nil {
		return nil, "", err
	}
	return b, snapshots[0].Path, nil
}

// parseTimestampFromFilename parses the timestamp from the given filename.
// The filename is expected to be in the format of "<...>.<timestamp>.1bit".
// Where <timestamp> is the number of seconds since the Unix epoch,
// and <...> is any string.
func parseTimestampFromFilename(filename string) int64 {
	// strip the file extension
	filename = strings.TrimSuffix(filename, filepath.Ext(filename))

	// get the timestamp from the filename (the last part preceded by a dot)
	parts := strings.Split(filename, ".")
	n, err := strconv.ParseInt(parts[len(parts)-1], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// isSnapshotFile returns true if the given filename is a snapshot file.
func isSnapshotFile(filename string) bool {
	return strings.HasSuffix(filename, extension)
}
