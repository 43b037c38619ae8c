package soundcloud

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/oshokin/soundcloud-grabber/internal/constants"
	"github.com/oshokin/soundcloud-grabber/internal/utils"
)

// LogEntry is the download log record of one finished track.
type LogEntry struct {
	// TrackID is the canonical (string) track ID.
	TrackID string `json:"track_id"`
	// Title is the track title.
	Title string `json:"title"`
	// Artist is the uploader's username.
	Artist string `json:"artist"`
	// DownloadURL is the resolved payload URL the track was fetched from.
	DownloadURL string `json:"url"`
	// Path is the location of the saved file.
	Path string `json:"path"`
}

// UnmarshalJSON accepts track_id written either as a string or as a number.
func (e *LogEntry) UnmarshalJSON(data []byte) error {
	type plainEntry LogEntry

	var raw struct {
		plainEntry

		TrackID json.RawMessage `json:"track_id"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*e = LogEntry(raw.plainEntry)

	trackID := bytes.TrimSpace(raw.TrackID)

	switch {
	case len(trackID) == 0, bytes.Equal(trackID, []byte("null")):
		e.TrackID = ""
	case trackID[0] == '"':
		if err := json.Unmarshal(trackID, &e.TrackID); err != nil {
			return fmt.Errorf("invalid track_id: %w", err)
		}
	default:
		var number json.Number
		if err := json.Unmarshal(trackID, &number); err != nil {
			return fmt.Errorf("invalid track_id: %w", err)
		}

		id, err := number.Int64()
		if err != nil {
			return fmt.Errorf("invalid track_id %s: %w", number, err)
		}

		e.TrackID = strconv.FormatInt(id, 10)
	}

	return nil
}

// DownloadLog maps track IDs to the entries of finished downloads.
// It is safe for concurrent use.
type DownloadLog struct {
	path    string
	entries map[string]*LogEntry
	mutex   *sync.RWMutex
}

// LoadDownloadLog reads the log at path. A missing file gives an empty log.
// Keys are normalized to the string form of the track ID.
func LoadDownloadLog(path string) (*DownloadLog, error) {
	log := &DownloadLog{
		path:    path,
		entries: make(map[string]*LogEntry),
		mutex:   new(sync.RWMutex),
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return log, nil
		}

		return nil, fmt.Errorf("failed to read download log: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return log, nil
	}

	var entries map[string]*LogEntry
	if err = json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse download log %s: %w", path, err)
	}

	for key, entry := range entries {
		if entry == nil {
			continue
		}

		if entry.TrackID == "" {
			entry.TrackID = key
		}

		log.entries[entry.TrackID] = entry
	}

	return log, nil
}

// Path returns the location of the log file.
func (l *DownloadLog) Path() string {
	return l.path
}

// Get returns the entry of trackID, or nil.
func (l *DownloadLog) Get(trackID string) *LogEntry {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.entries[trackID]
}

// IsDownloaded reports whether trackID has an entry whose file is still on disk.
func (l *DownloadLog) IsDownloaded(trackID string) bool {
	entry := l.Get(trackID)
	if entry == nil || entry.Path == "" {
		return false
	}

	exists, err := utils.IsFileExist(entry.Path)

	return err == nil && exists
}

// Record adds or replaces the entry of entry.TrackID.
func (l *DownloadLog) Record(entry *LogEntry) {
	if entry == nil || entry.TrackID == "" {
		return
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.entries[entry.TrackID] = entry
}

// Len returns the number of entries.
func (l *DownloadLog) Len() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return len(l.entries)
}

// Save writes the whole log to its file through a temporary file and a rename.
func (l *DownloadLog) Save() error {
	l.mutex.RLock()
	data, err := json.MarshalIndent(l.entries, "", "  ")
	l.mutex.RUnlock()

	if err != nil {
		return fmt.Errorf("failed to encode download log: %w", err)
	}

	dir := filepath.Dir(l.path)
	tempPath := filepath.Join(dir, "."+filepath.Base(l.path)+"_"+uuid.New().String())

	if err = os.WriteFile(tempPath, data, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write download log: %w", err)
	}

	if err = os.Rename(tempPath, l.path); err != nil {
		_ = os.Remove(tempPath)

		return fmt.Errorf("failed to replace download log: %w", err)
	}

	return nil
}
