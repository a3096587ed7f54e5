package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefanpenner/loiter/pkg/model"
	"github.com/stefanpenner/loiter/pkg/query"
	"github.com/stefanpenner/loiter/pkg/timeparse"
)

// setupQueryStore builds:
//
//	alpha (work):  log 1 (project level)
//	  task 1 doing, priority 1: logs 1, 2
//	  task 2 todo
//	beta (home):
//	  task 1 done: log 1
func setupQueryStore(t *testing.T) *Store {
	t.Helper()
	s := setupTestStore(t)

	alpha := model.NewProject("Alpha")
	alpha.Tags = []string{"work"}
	require.NoError(t, s.SaveProject(alpha))
	beta := model.NewProject("Beta")
	beta.Tags = []string{"home"}
	require.NoError(t, s.SaveProject(beta))

	doing := model.NewTask("alpha", "urgent")
	doing.State = "doing"
	doing.Priority = 1
	_, err := s.SaveTask(doing)
	require.NoError(t, err)
	todo := model.NewTask("alpha", "later")
	todo.State = "todo"
	_, err = s.SaveTask(todo)
	require.NoError(t, err)
	done := model.NewTask("beta", "finished")
	done.State = "done"
	_, err = s.SaveTask(done)
	require.NoError(t, err)

	yesterday := testNow.AddDate(0, 0, -1)
	addLog(t, s, "alpha", model.NoTask, testNow.Add(-3*time.Hour), 30*timeparse.Minute)
	addLog(t, s, "alpha", 1, testNow.Add(-2*time.Hour), timeparse.Hour)
	addLog(t, s, "alpha", 1, yesterday, 2*timeparse.Hour)
	addLog(t, s, "beta", 1, testNow.Add(-time.Hour), 15*timeparse.Minute)
	return s
}

func logRefs(logs []*model.Log) []string {
	var out []string
	for _, l := range logs {
		out = append(out, model.RefOf(l).String())
	}
	return out
}

func corrupt(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
}

func TestProjectsQuery(t *testing.T) {
	s := setupQueryStore(t)

	all, err := s.Projects(model.AllProjects())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	work, err := s.Projects(query.Where[*model.Project](model.ProjectTags{"work"}))
	require.NoError(t, err)
	require.Len(t, work, 1)
	assert.Equal(t, "alpha", work[0].ID)
}

func TestProjectsSkipsDirectoriesWithoutMetadata(t *testing.T) {
	s := setupQueryStore(t)
	require.NoError(t, os.MkdirAll(filepath.Join(s.Root, "stray"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(s.Root, ".git"), 0o755))

	all, err := s.Projects(model.AllProjects())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTasksOnlyLoadedForMatchingProjects(t *testing.T) {
	s := setupQueryStore(t)
	corrupt(t, s.TaskPath("beta", 1))

	tasks, err := s.Tasks(query.Where[*model.Project](model.ProjectIDs{"alpha"}), model.AllTasks())
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	_, err = s.Tasks(model.AllProjects(), model.AllTasks())
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestTasksQuery(t *testing.T) {
	s := setupQueryStore(t)

	open, err := s.Tasks(model.AllProjects(), query.Where[*model.Task](model.TaskStateNot("done")))
	require.NoError(t, err)
	assert.Len(t, open, 2)

	urgent, err := s.ProjectTasks("alpha", query.Where[*model.Task](model.TaskPriorities{1}))
	require.NoError(t, err)
	require.Len(t, urgent, 1)
	assert.Equal(t, "urgent", urgent[0].Description)
}

func TestTaskDirectoryWithoutMetadataIsSkipped(t *testing.T) {
	s := setupQueryStore(t)
	require.NoError(t, os.MkdirAll(s.TaskDir("alpha", 9), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(s.TasksDir("alpha"), "scratch"), 0o755))

	tasks, err := s.ProjectTasks("alpha", model.AllTasks())
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestLogsPassthrough(t *testing.T) {
	s := setupQueryStore(t)

	logs, err := s.Logs(model.AllProjects(), model.AllTasks(), model.AllLogs())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha/1", "alpha/1/1", "alpha/1/2", "beta/1/1"}, logRefs(logs))
}

func TestLogsTaskFilterImpliesHasTask(t *testing.T) {
	s := setupQueryStore(t)

	logs, err := s.Logs(model.AllProjects(), query.Where[*model.Task](model.TaskStates{"doing"}), model.AllLogs())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha/1/1", "alpha/1/2"}, logRefs(logs))
}

func TestLogsExplicitTaskFilter(t *testing.T) {
	s := setupQueryStore(t)

	logs, err := s.Logs(
		query.Where[*model.Project](model.ProjectIDs{"beta"}),
		model.AllTasks(),
		query.Where[*model.Log](model.LogTasks{1}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"beta/1/1"}, logRefs(logs))
}

func TestLogsRequiringTaskSkipProjectLogs(t *testing.T) {
	s := setupQueryStore(t)
	corrupt(t, s.LogPath("alpha", model.NoTask, 1))

	logs, err := s.Logs(model.AllProjects(), model.AllTasks(), query.Where[*model.Log](model.LogHasTask{}))
	require.NoError(t, err)
	assert.Len(t, logs, 3)

	_, err = s.Logs(model.AllProjects(), query.Where[*model.Task](model.TaskStates{"doing"}), model.AllLogs())
	require.NoError(t, err, "an implied task filter must not read project logs either")

	_, err = s.Logs(model.AllProjects(), model.AllTasks(), model.AllLogs())
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestLogsStartFilterUsesStoreClock(t *testing.T) {
	s := setupQueryStore(t)

	today, err := s.Logs(model.AllProjects(), model.AllTasks(), query.Where[*model.Log](model.LogStart(timeparse.Today())))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha/1", "alpha/1/1", "beta/1/1"}, logRefs(today))

	long, err := s.Logs(model.AllProjects(), model.AllTasks(),
		query.Where[*model.Log](model.LogDuration{Op: timeparse.GreaterOrEqual, Value: timeparse.Hour}))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha/1/1", "alpha/1/2"}, logRefs(long))
}

func TestLogsFor(t *testing.T) {
	s := setupQueryStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.ProjectLogsDir("alpha"), "notes.json"), []byte("{}"), 0o644))

	projectLogs, err := s.LogsFor("alpha", model.NoTask, model.AllLogs())
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha/1"}, logRefs(projectLogs))

	taskLogs, err := s.LogsFor("alpha", 1, model.AllLogs())
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha/1/1", "alpha/1/2"}, logRefs(taskLogs))

	none, err := s.LogsFor("alpha", 2, model.AllLogs())
	require.NoError(t, err)
	assert.Empty(t, none)
}
