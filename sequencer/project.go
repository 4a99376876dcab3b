package sequencer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	timestampLayout = "2006-01-02_15-04-05"
	autosaveFile    = "current.json"
	defaultProject  = "untitled"
)

// SaveInfo represents a saved sequence file (for listing)
type SaveInfo struct {
	Filename  string
	Name      string // parsed from filename (empty if unnamed)
	Timestamp time.Time
}

// Store keeps projects as folders of timestamped sequence saves.
type Store struct {
	Dir string
	now func() time.Time
}

// NewStore roots a store at dir, usually <config dir>/projects.
func NewStore(dir string) *Store {
	return &Store{Dir: dir, now: time.Now}
}

// ErrInvalidName is returned for project or save names that would resolve
// outside the store.
var ErrInvalidName = errors.New("invalid name")

// ProjectDir returns the path to a specific project. Names that sanitize to
// "." or ".." fall back to the default project.
func (st *Store) ProjectDir(projectName string) string {
	name := sanitizeFilename(projectName)
	if name == "" || name == "." || name == ".." {
		name = defaultProject
	}
	return filepath.Join(st.Dir, name)
}

func checkProjectName(name string) error {
	switch sanitizeFilename(name) {
	case "", ".", "..":
		return fmt.Errorf("%w: project %q", ErrInvalidName, name)
	}
	return nil
}

// AutosavePath is where the live sequence of a project is mirrored.
func (st *Store) AutosavePath(projectName string) string {
	return filepath.Join(st.ProjectDir(projectName), autosaveFile)
}

// ListProjects returns all project folder names
func (st *Store) ListProjects() ([]string, error) {
	entries, err := os.ReadDir(st.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}

	projects := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			projects = append(projects, entry.Name())
		}
	}
	sort.Strings(projects)
	return projects, nil
}

// ListSaves returns timestamped saves for a project, newest first
func (st *Store) ListSaves(projectName string) ([]SaveInfo, error) {
	entries, err := os.ReadDir(st.ProjectDir(projectName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []SaveInfo{}, nil
		}
		return nil, err
	}

	saves := []SaveInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if info, ok := parseSaveName(entry.Name()); ok {
			saves = append(saves, info)
		}
	}

	sort.Slice(saves, func(i, j int) bool {
		return saves[i].Timestamp.After(saves[j].Timestamp)
	})
	return saves, nil
}

// parseSaveName accepts 2024-01-15_14-30-00.json and 2024-01-15_14-30-00_name.json
func parseSaveName(filename string) (SaveInfo, bool) {
	base, ok := strings.CutSuffix(filename, ".json")
	if !ok || len(base) < len(timestampLayout) {
		return SaveInfo{}, false
	}
	ts, err := time.Parse(timestampLayout, base[:len(timestampLayout)])
	if err != nil {
		return SaveInfo{}, false
	}
	info := SaveInfo{Filename: filename, Timestamp: ts}
	if rest := base[len(timestampLayout):]; len(rest) > 1 && rest[0] == '_' {
		info.Name = rest[1:]
	}
	return info, true
}

// Save writes seq as a new timestamped save and returns its filename.
func (st *Store) Save(projectName, name string, seq Sequence) (string, error) {
	dir := st.ProjectDir(projectName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	filename := st.now().Format(timestampLayout)
	if name != "" {
		filename += "_" + sanitizeFilename(name)
	}
	filename += ".json"

	if err := WriteSequence(filepath.Join(dir, filename), seq); err != nil {
		return "", err
	}
	return filename, nil
}

// Load reads a specific save, or the most recent if filename is empty.
func (st *Store) Load(projectName, filename string) (Sequence, error) {
	if filename == "" {
		saves, err := st.ListSaves(projectName)
		if err != nil {
			return nil, err
		}
		if len(saves) == 0 {
			return nil, fmt.Errorf("no saves found in project %s", projectName)
		}
		filename = saves[0].Filename
	}
	return ReadSequence(filepath.Join(st.ProjectDir(projectName), filename))
}

// CreateProject creates a new empty project folder
func (st *Store) CreateProject(name string) error {
	if err := checkProjectName(name); err != nil {
		return err
	}
	return os.MkdirAll(st.ProjectDir(name), 0755)
}

// DeleteSave deletes a specific save file
func (st *Store) DeleteSave(projectName, filename string) error {
	if _, ok := parseSaveName(filepath.Base(filename)); !ok {
		return fmt.Errorf("%w: save %q", ErrInvalidName, filename)
	}
	return os.Remove(filepath.Join(st.ProjectDir(projectName), filepath.Base(filename)))
}

// RenameSave changes the name part of a save and keeps its timestamp.
func (st *Store) RenameSave(projectName, oldFilename, newName string) (string, error) {
	oldFilename = filepath.Base(oldFilename)
	info, ok := parseSaveName(oldFilename)
	if !ok {
		return "", fmt.Errorf("%w: save %q", ErrInvalidName, oldFilename)
	}

	newFilename := info.Timestamp.Format(timestampLayout)
	if newName != "" {
		newFilename += "_" + sanitizeFilename(newName)
	}
	newFilename += ".json"

	dir := st.ProjectDir(projectName)
	if err := os.Rename(filepath.Join(dir, oldFilename), filepath.Join(dir, newFilename)); err != nil {
		return "", err
	}
	return newFilename, nil
}

// DeleteProject deletes entire project folder
func (st *Store) DeleteProject(name string) error {
	if err := checkProjectName(name); err != nil {
		return err
	}
	return os.RemoveAll(st.ProjectDir(name))
}

// RenameProject renames a project folder
func (st *Store) RenameProject(oldName, newName string) error {
	if err := checkProjectName(oldName); err != nil {
		return err
	}
	if err := checkProjectName(newName); err != nil {
		return err
	}
	return os.Rename(st.ProjectDir(oldName), st.ProjectDir(newName))
}

// sanitizeFilename removes/replaces characters that are problematic in filenames
func sanitizeFilename(name string) string {
	return strings.NewReplacer(
		" ", "-", "/", "-", "\\", "-", ":", "-",
		"*", "", "?", "", "\"", "", "<", "", ">", "", "|", "",
	).Replace(name)
}

// WriteSequence stores seq as a flat JSON array, rests as null.
func WriteSequence(path string, seq Sequence) error {
	data, err := json.MarshalIndent(seq, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ReadSequence loads and validates a persisted sequence.
func ReadSequence(path string) (Sequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(data)
}
