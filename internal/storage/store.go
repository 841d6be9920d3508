package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/promplot/internal/render"
)

const metadataFile = "metadata.json"

// Store archives rendered figures, one directory per run.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID             string    `json:"id"`
	Preset         string    `json:"preset"`
	Timestamp      time.Time `json:"timestamp"`
	DataDir        string    `json:"data_dir"`
	DemoPattern    string    `json:"demo_pattern"`
	Demonstrations int       `json:"demonstrations"`
	MeanFile       string    `json:"mean_file"`
	DeviationFile  string    `json:"variance_file"`
	Samples        int       `json:"samples"`
	Channels       []string  `json:"channels"`
	Figure         string    `json:"figure"`
}

// Save writes the figure in the given format and the metadata next to it.
// ID, Timestamp and Figure are filled in.
func (s *Store) Save(meta RunMetadata, fig *render.Figure, format string, width, height vg.Length) (string, error) {
	label := meta.Preset
	if label == "" {
		label = "run"
	}
	runID := fmt.Sprintf("%s_%s", label, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Figure = "figure." + format

	if err := s.writeRun(runDir, meta, fig, format, width, height); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func (s *Store) writeRun(runDir string, meta RunMetadata, fig *render.Figure, format string, width, height vg.Length) error {
	figFile, err := os.Create(filepath.Join(runDir, meta.Figure))
	if err != nil {
		return err
	}
	if _, err := fig.WriteTo(figFile, width, height, format); err != nil {
		figFile.Close()
		return err
	}
	if err := figFile.Close(); err != nil {
		return err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		metaFile.Close()
		return err
	}
	return metaFile.Close()
}

// List returns archived runs, oldest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// FigurePath is where the run's figure was written.
func (s *Store) FigurePath(meta *RunMetadata) string {
	return filepath.Join(s.baseDir, meta.ID, meta.Figure)
}
