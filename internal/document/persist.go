package document

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"draft-engine/internal/dimension"
	"draft-engine/internal/sheet"
)

// FileVersion is the current drawing file format version.
const FileVersion = 1

// drawingFile is the on-disk JSON shape of a drawing.
type drawingFile struct {
	Version     int                   `json:"version"`
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Sheet       sheet.Config          `json:"sheet"`
	Views       []View                `json:"views"`
	Dimensions  []dimension.Dimension `json:"dimensions,omitempty"`
	Annotations []Annotation          `json:"annotations,omitempty"`
	Created     time.Time             `json:"created"`
	Modified    time.Time             `json:"modified"`
}

// Save writes the drawing to path.
func (s *Store) Save(path string) error {
	// The file struct aliases the drawing's slices, so marshal before
	// releasing the lock.
	s.mu.RLock()
	file := drawingFile{
		Version:     FileVersion,
		ID:          s.drawing.ID,
		Name:        s.drawing.Name,
		Sheet:       s.drawing.Sheet,
		Views:       s.drawing.Views,
		Dimensions:  s.drawing.Dimensions,
		Annotations: s.drawing.Annotations,
		Created:     s.drawing.Created,
		Modified:    s.drawing.Modified,
	}
	data, err := json.MarshalIndent(file, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	s.mu.Lock()
	s.modified = false
	s.mu.Unlock()

	s.Log.WithFields(logrus.Fields{"path": path}).Info("drawing saved")
	s.Emit(EventDrawingSaved, path)
	return nil
}

// Load replaces the store's drawing with the one at path.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var file drawingFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse drawing file: %w", err)
	}
	if file.Version > FileVersion {
		return fmt.Errorf("drawing file version %d is newer than supported version %d", file.Version, FileVersion)
	}
	if err := file.Sheet.Validate(); err != nil {
		return fmt.Errorf("drawing file sheet: %w", err)
	}

	s.mu.Lock()
	s.drawing = &Drawing{
		ID:          file.ID,
		Name:        file.Name,
		Sheet:       file.Sheet,
		Views:       file.Views,
		Dimensions:  file.Dimensions,
		Annotations: file.Annotations,
		Created:     file.Created,
		Modified:    file.Modified,
	}
	s.modified = false
	s.mu.Unlock()

	s.Log.WithFields(logrus.Fields{
		"path":  path,
		"views": len(file.Views),
	}).Info("drawing loaded")
	s.Emit(EventDrawingLoaded, path)
	return nil
}
