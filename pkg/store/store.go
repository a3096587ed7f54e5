package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/stefanpenner/loiter/pkg/model"
)

const (
	stateFile   = "state.json"
	configFile  = "config.json"
	projectFile = "project.json"
	taskFile    = "task.json"
	logsDir     = "logs"
	tasksDir    = "tasks"
)

// Store manages projects, tasks and logs as a tree of JSON documents.
type Store struct {
	Root   string // e.g., ~/.loiter
	Clock  func() time.Time
	Logger *slog.Logger
}

// NewStore creates a Store rooted at the given directory.
// It creates the directory if it doesn't exist.
func NewStore(root string) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}
	if err := os.MkdirAll(abs, dirPerms); err != nil {
		return nil, fmt.Errorf("%w: creating store root: %w", ErrIO, err)
	}
	return &Store{Root: abs}, nil
}

// Now returns the current time according to the store's clock.
func (s *Store) Now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s *Store) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// StatePath returns the path to state.json.
func (s *Store) StatePath() string {
	return filepath.Join(s.Root, stateFile)
}

// ConfigPath returns the path to config.json.
func (s *Store) ConfigPath() string {
	return filepath.Join(s.Root, configFile)
}

func (s *Store) ProjectDir(projectID string) string {
	return filepath.Join(s.Root, projectID)
}

func (s *Store) ProjectPath(projectID string) string {
	return filepath.Join(s.ProjectDir(projectID), projectFile)
}

// ProjectLogsDir holds the logs that belong to no task.
func (s *Store) ProjectLogsDir(projectID string) string {
	return filepath.Join(s.ProjectDir(projectID), logsDir)
}

func (s *Store) TasksDir(projectID string) string {
	return filepath.Join(s.ProjectDir(projectID), tasksDir)
}

func (s *Store) TaskDir(projectID string, taskID model.TaskID) string {
	return filepath.Join(s.TasksDir(projectID), taskID.DirName())
}

func (s *Store) TaskPath(projectID string, taskID model.TaskID) string {
	return filepath.Join(s.TaskDir(projectID, taskID), taskFile)
}

// LogsDir returns the directory holding the logs of a task, or of the
// project itself when taskID is model.NoTask.
func (s *Store) LogsDir(projectID string, taskID model.TaskID) string {
	if taskID == model.NoTask {
		return s.ProjectLogsDir(projectID)
	}
	return s.TaskDir(projectID, taskID)
}

func (s *Store) LogPath(projectID string, taskID model.TaskID, logID model.LogID) string {
	return filepath.Join(s.LogsDir(projectID, taskID), logID.FileName())
}

// State loads state.json, writing a fresh one if it is missing.
func (s *Store) State() (*model.State, error) {
	st := &model.State{}
	err := loadJSON(s.StatePath(), st)
	if errors.Is(err, ErrNotFound) {
		s.logger().Debug("state not found, creating it", "path", s.StatePath())
		return st, s.SaveState(st)
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// PeekState loads state.json like State, but a missing file reads as
// nothing being tracked and is not created.
func (s *Store) PeekState() (*model.State, error) {
	st := &model.State{}
	err := loadJSON(s.StatePath(), st)
	if errors.Is(err, ErrNotFound) {
		return st, nil
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// SaveState writes state.json.
func (s *Store) SaveState(st *model.State) error {
	return saveJSON(s.StatePath(), st)
}

// Config loads config.json, writing the default one if it is missing.
// The file may contain comments and trailing commas.
func (s *Store) Config() (*model.Config, error) {
	path := s.ConfigPath()
	cfg := &model.Config{}
	err := loadJSONC(path, cfg)
	if errors.Is(err, ErrNotFound) {
		s.logger().Debug("config not found, writing defaults", "path", path)
		cfg = model.DefaultConfig()
		return cfg, s.SaveConfig(cfg)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.TaskStateConfig.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes config.json.
func (s *Store) SaveConfig(cfg *model.Config) error {
	if err := cfg.TaskStateConfig.Validate(); err != nil {
		return err
	}
	return saveJSON(s.ConfigPath(), cfg)
}

// TaskStateConfig returns the task states that apply to p: its own, or the
// configured default.
func (s *Store) TaskStateConfig(p *model.Project) (model.TaskStateConfig, error) {
	if p != nil && p.TaskStateConfig != nil {
		return *p.TaskStateConfig, nil
	}
	cfg, err := s.Config()
	if err != nil {
		return model.TaskStateConfig{}, err
	}
	return cfg.TaskStateConfig, nil
}

func projectIDFor(id string) (string, error) {
	slug := model.Slugify(id)
	if slug == "" {
		return "", fmt.Errorf("%w: project %q", model.ErrInvalidIdentifier, id)
	}
	return slug, nil
}

// Project loads a project by ID. The ID is slugified first, so a project
// name also works.
func (s *Store) Project(id string) (*model.Project, error) {
	slug, err := projectIDFor(id)
	if err != nil {
		return nil, err
	}
	return s.loadProject(slug)
}

func (s *Store) loadProject(id string) (*model.Project, error) {
	p := &model.Project{}
	if err := loadJSON(s.ProjectPath(id), p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: project %q", ErrNotFound, id)
		}
		return nil, err
	}
	p.ID = id
	return p, nil
}

// SaveProject writes a project's metadata, creating the project if needed.
// An empty ID is derived from the name.
func (s *Store) SaveProject(p *model.Project) error {
	id := p.ID
	if id == "" {
		id = p.Name
	}
	slug, err := projectIDFor(id)
	if err != nil {
		return err
	}
	if err := p.SetTags(p.Tags); err != nil {
		return err
	}
	if p.TaskStateConfig != nil {
		if err := p.TaskStateConfig.Validate(); err != nil {
			return err
		}
	}
	p.ID = slug
	s.logger().Debug("saving project", "project", slug)
	return saveJSON(s.ProjectPath(slug), p)
}

// RemoveProject deletes a project with all of its tasks and logs.
func (s *Store) RemoveProject(id string) error {
	dir := s.ProjectDir(id)
	if !isFile(s.ProjectPath(id)) {
		return fmt.Errorf("%w: project %q", ErrNotFound, id)
	}
	s.logger().Debug("removing project", "project", id)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("%w: removing %s: %w", ErrIO, dir, err)
	}
	return nil
}

// RenameProject moves the project oldID to p.ID (or the slug of p.Name)
// and saves p there. The destination must not exist.
func (s *Store) RenameProject(oldID string, p *model.Project) error {
	if !isFile(s.ProjectPath(oldID)) {
		return fmt.Errorf("%w: project %q", ErrNotFound, oldID)
	}
	if p.ID == "" {
		p.ID = p.Name
	}
	newID, err := projectIDFor(p.ID)
	if err != nil {
		return err
	}
	if newID == oldID {
		return s.SaveProject(p)
	}
	newDir := s.ProjectDir(newID)
	if _, err := os.Lstat(newDir); err == nil {
		return fmt.Errorf("%w: project %q", ErrAlreadyExists, newID)
	}
	s.logger().Debug("renaming project", "from", oldID, "to", newID)
	if err := os.Rename(s.ProjectDir(oldID), newDir); err != nil {
		return fmt.Errorf("%w: renaming project %q: %w", ErrIO, oldID, err)
	}
	p.ID = newID
	return s.SaveProject(p)
}

// Task loads a single task.
func (s *Store) Task(projectID string, id model.TaskID) (*model.Task, error) {
	if id == model.NoTask {
		return nil, fmt.Errorf("%w: task id 0", model.ErrInvalidIdentifier)
	}
	return s.loadTask(projectID, id)
}

func (s *Store) loadTask(projectID string, id model.TaskID) (*model.Task, error) {
	t := &model.Task{}
	if err := loadJSON(s.TaskPath(projectID, id), t); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: task %d in project %q", ErrNotFound, id, projectID)
		}
		return nil, err
	}
	t.ProjectID = projectID
	t.ID = id
	if t.Priority == 0 {
		t.Priority = model.DefaultPriority
	}
	return t, nil
}

// SaveTask validates and writes a task, assigning it the next free ID if
// it has none. The project must exist. The task's state is checked
// against the project's task states, defaulting to the initial state.
func (s *Store) SaveTask(t *model.Task) (*model.Task, error) {
	project, err := s.Project(t.ProjectID)
	if err != nil {
		return nil, err
	}
	states, err := s.TaskStateConfig(project)
	if err != nil {
		return nil, err
	}

	saved := *t
	saved.ProjectID = project.ID
	if saved.Priority == 0 {
		saved.Priority = model.DefaultPriority
	}
	if err := model.ValidatePriority(saved.Priority); err != nil {
		return nil, err
	}
	if saved.State, err = states.ValidateOrInitial(saved.State); err != nil {
		return nil, err
	}
	if err := saved.SetTags(saved.Tags); err != nil {
		return nil, err
	}
	if saved.ID == model.NoTask {
		next, err := s.nextID(s.TasksDir(project.ID), taskEntryID)
		if err != nil {
			return nil, err
		}
		saved.ID = model.TaskID(next)
	}

	s.logger().Debug("saving task", "project", saved.ProjectID, "task", saved.ID)
	if err := saveJSON(s.TaskPath(saved.ProjectID, saved.ID), &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// RemoveTask deletes a task together with its logs.
func (s *Store) RemoveTask(projectID string, id model.TaskID) error {
	if id == model.NoTask {
		return fmt.Errorf("%w: task id 0", model.ErrInvalidIdentifier)
	}
	if !isFile(s.TaskPath(projectID, id)) {
		return fmt.Errorf("%w: task %d in project %q", ErrNotFound, id, projectID)
	}
	dir := s.TaskDir(projectID, id)
	s.logger().Debug("removing task", "project", projectID, "task", id)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("%w: removing %s: %w", ErrIO, dir, err)
	}
	return nil
}

// Log loads a single log. taskID is model.NoTask for project logs.
func (s *Store) Log(projectID string, taskID model.TaskID, id model.LogID) (*model.Log, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: log id 0", model.ErrInvalidIdentifier)
	}
	return s.loadLog(projectID, taskID, id)
}

func (s *Store) loadLog(projectID string, taskID model.TaskID, id model.LogID) (*model.Log, error) {
	l := &model.Log{}
	if err := loadJSON(s.LogPath(projectID, taskID, id), l); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: log %s", ErrNotFound, model.LogRef{ProjectID: projectID, TaskID: taskID, LogID: id})
		}
		return nil, err
	}
	l.ProjectID = projectID
	l.TaskID = taskID
	l.ID = id
	return l, nil
}

// SaveLog writes a log, assigning it the next free ID in its project or
// task if it has none. The project, and the task if any, must exist.
func (s *Store) SaveLog(l *model.Log) (*model.Log, error) {
	if l.ProjectID == "" {
		return nil, fmt.Errorf("%w: log has no project", model.ErrInvalidIdentifier)
	}
	if !isFile(s.ProjectPath(l.ProjectID)) {
		return nil, fmt.Errorf("%w: project %q", ErrNotFound, l.ProjectID)
	}
	if l.HasTask() && !isFile(s.TaskPath(l.ProjectID, l.TaskID)) {
		return nil, fmt.Errorf("%w: task %d in project %q", ErrNotFound, l.TaskID, l.ProjectID)
	}

	saved := *l
	if err := saved.SetTags(saved.Tags); err != nil {
		return nil, err
	}
	if saved.ID == 0 {
		next, err := s.nextID(s.LogsDir(saved.ProjectID, saved.TaskID), logEntryID)
		if err != nil {
			return nil, err
		}
		saved.ID = model.LogID(next)
	}

	s.logger().Debug("saving log", "log", model.RefOf(&saved).String())
	if err := saveJSON(s.LogPath(saved.ProjectID, saved.TaskID, saved.ID), &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// RemoveLog deletes a single log.
func (s *Store) RemoveLog(projectID string, taskID model.TaskID, id model.LogID) error {
	path := s.LogPath(projectID, taskID, id)
	if !isFile(path) {
		return fmt.Errorf("%w: log %s", ErrNotFound, model.LogRef{ProjectID: projectID, TaskID: taskID, LogID: id})
	}
	s.logger().Debug("removing log", "path", path)
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("%w: removing %s: %w", ErrIO, path, err)
	}
	return nil
}

// nextID returns one more than the largest ID among dir's entries, or 1.
// Only names are inspected; no documents are loaded.
func (s *Store) nextID(dir string, parse func(fs.DirEntry) (uint32, bool)) (uint32, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: reading %s: %w", ErrIO, dir, err)
	}
	var highest uint32
	for _, entry := range entries {
		if id, ok := parse(entry); ok && id > highest {
			highest = id
		}
	}
	return highest + 1, nil
}

func taskEntryID(entry fs.DirEntry) (uint32, bool) {
	if !entry.IsDir() {
		return 0, false
	}
	id, err := model.ParseTaskID(entry.Name())
	return uint32(id), err == nil
}

func logEntryID(entry fs.DirEntry) (uint32, bool) {
	name := entry.Name()
	if entry.IsDir() || !strings.HasSuffix(name, ".json") {
		return 0, false
	}
	id, err := model.ParseLogID(strings.TrimSuffix(name, ".json"))
	return uint32(id), err == nil
}
