package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	TranscriptFileName = "transcript.txt"
	NotesFileName      = "notes.md"
	InfoFileName       = "project_info.txt"
)

// Store manages dated project directories under one root, typically the
// transcriptions directory. Each conversion gets its own directory holding
// the transcript, generated notes and a small info file.
type Store struct {
	root string
	now  func() time.Time
}

func NewStore(root string) *Store {
	return &Store{root: root, now: time.Now}
}

func (s *Store) Root() string {
	return s.root
}

// Project is one materialized project directory.
type Project struct {
	Name string
	Dir  string
}

// Info is the metadata written to project_info.txt.
type Info struct {
	Name         string
	SourceFile   string
	DurationMs   int
	ChunkCount   int
	SuccessCount int
	Provider     string
	Language     string
	CreatedAt    time.Time
}

// Create makes a fresh project directory named YYYY-MM-DD_name, adding a _NN
// counter when the name is already taken that day.
func (s *Store) Create(name string) (*Project, error) {
	sanitized := sanitizeName(name)
	if sanitized == "" {
		sanitized = "untitled"
	}

	base := filepath.Join(s.root, fmt.Sprintf("%s_%s", s.now().Format("2006-01-02"), sanitized))
	dir, err := uniqueDir(base)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create project directory: %w", err)
	}
	return &Project{Name: sanitized, Dir: dir}, nil
}

// Open returns the project stored in the named directory under the root.
func (s *Store) Open(dirName string) (*Project, error) {
	dir := filepath.Join(s.root, dirName)
	stat, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("project %s not found: %w", dirName, err)
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("project %s is not a directory", dirName)
	}
	return &Project{Name: projectName(dirName), Dir: dir}, nil
}

// List returns all projects under the root, newest first by modification
// time.
func (s *Store) List() ([]Project, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read project root: %w", err)
	}

	type datedProject struct {
		project Project
		modTime time.Time
	}
	var dated []datedProject
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		dated = append(dated, datedProject{
			project: Project{Name: projectName(entry.Name()), Dir: filepath.Join(s.root, entry.Name())},
			modTime: info.ModTime(),
		})
	}

	sort.Slice(dated, func(i, j int) bool { return dated[i].modTime.After(dated[j].modTime) })

	projects := make([]Project, len(dated))
	for i, d := range dated {
		projects[i] = d.project
	}
	return projects, nil
}

// Latest returns the most recently touched project, or an error when the
// store is empty.
func (s *Store) Latest() (*Project, error) {
	projects, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, fmt.Errorf("no projects under %s", s.root)
	}
	return &projects[0], nil
}

func (p *Project) TranscriptPath() string {
	return filepath.Join(p.Dir, TranscriptFileName)
}

func (p *Project) NotesPath() string {
	return filepath.Join(p.Dir, NotesFileName)
}

func (p *Project) InfoPath() string {
	return filepath.Join(p.Dir, InfoFileName)
}

func (p *Project) SaveTranscript(text string) error {
	return writeFile(p.TranscriptPath(), text)
}

func (p *Project) ReadTranscript() (string, error) {
	data, err := os.ReadFile(p.TranscriptPath())
	if err != nil {
		return "", fmt.Errorf("failed to read transcript: %w", err)
	}
	return string(data), nil
}

func (p *Project) SaveNotes(markdown string) error {
	return writeFile(p.NotesPath(), markdown)
}

// HasNotes reports whether notes were already generated for this project.
func (p *Project) HasNotes() bool {
	_, err := os.Stat(p.NotesPath())
	return err == nil
}

// WriteInfo stores the project metadata as plain key: value lines.
func (p *Project) WriteInfo(info Info) error {
	createdAt := info.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Transcription Project: %s\n", info.Name)
	fmt.Fprintf(&b, "Created: %s\n", createdAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Source File: %s\n", info.SourceFile)
	fmt.Fprintf(&b, "Duration: %s\n", (time.Duration(info.DurationMs) * time.Millisecond).Round(time.Second))
	fmt.Fprintf(&b, "Chunks: %d/%d\n", info.SuccessCount, info.ChunkCount)
	fmt.Fprintf(&b, "Provider: %s\n", info.Provider)
	fmt.Fprintf(&b, "Language: %s\n", info.Language)

	return writeFile(p.InfoPath(), b.String())
}

// sanitizeName keeps letters, digits, spaces, dashes and underscores, the
// same characters the dated directory scheme tolerates on every platform.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// uniqueDir appends _01, _02, ... until the path is free. After 999 tries it
// falls back to a second-resolution timestamp suffix.
func uniqueDir(base string) (string, error) {
	if _, err := os.Stat(base); os.IsNotExist(err) {
		return base, nil
	}
	for counter := 1; counter <= 999; counter++ {
		candidate := fmt.Sprintf("%s_%02d", base, counter)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return fmt.Sprintf("%s_%s", base, time.Now().Format("15-04-05")), nil
}

func projectName(dirName string) string {
	// Strip the YYYY-MM-DD_ prefix when present.
	if len(dirName) > 11 && dirName[10] == '_' {
		return dirName[11:]
	}
	return dirName
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
