package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefanpenner/loiter/pkg/model"
	"github.com/stefanpenner/loiter/pkg/query"
	"github.com/stefanpenner/loiter/pkg/store"
	"github.com/stefanpenner/loiter/pkg/timeparse"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func setupTestStore(t *testing.T) (*store.Store, *fakeClock) {
	t.Helper()
	s, err := store.NewStore(t.TempDir())
	require.NoError(t, err)
	clock := &fakeClock{now: time.Date(2021, 11, 4, 17, 0, 0, 0, time.FixedZone("", -4*60*60))}
	s.Clock = clock.Now
	return s, clock
}

func ptr[T any](v T) *T { return &v }

func TestAddProjectAndTask(t *testing.T) {
	s, _ := setupTestStore(t)

	p, err := AddProject(s, AddProjectParams{Name: "Project 1", Description: "first", Tags: []string{"Work"}})
	require.NoError(t, err)
	assert.Equal(t, "project-1", p.ID)
	assert.Equal(t, []string{"work"}, p.Tags)

	task, err := AddTask(s, AddTaskParams{ProjectID: "Project 1", Description: "do it", Priority: 3})
	require.NoError(t, err)
	assert.Equal(t, model.TaskID(1), task.ID)
	assert.Equal(t, "project-1", task.ProjectID)
	assert.Equal(t, "inbox", task.State)
	assert.Equal(t, 3, task.Priority)

	_, err = AddProject(s, AddProjectParams{Name: "Bad", Tags: []string{"has space"}})
	assert.ErrorIs(t, err, model.ErrInvalidTag)
}

func TestStartStopLog(t *testing.T) {
	s, clock := setupTestStore(t)
	_, err := AddProject(s, AddProjectParams{Name: "Project"})
	require.NoError(t, err)
	task, err := AddTask(s, AddTaskParams{ProjectID: "project", Description: "work"})
	require.NoError(t, err)

	started, err := StartLog(s, StartLogParams{ProjectID: "project", TaskID: task.ID, Comment: "go"})
	require.NoError(t, err)
	assert.True(t, started.IsActive())

	st, err := s.State()
	require.NoError(t, err)
	assert.Equal(t, &model.LogRef{ProjectID: "project", TaskID: task.ID, LogID: started.ID}, st.ActiveLog)

	inProgress, err := s.Task("project", task.ID)
	require.NoError(t, err)
	assert.Equal(t, "doing", inProgress.State)

	clock.Advance(90 * time.Minute)
	status, err := Status(s)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, "1h 30m", status.ActiveFor.String())

	stopped, err := StopLog(s, StopLogParams{Comment: ptr("done for now"), Tags: []string{"deep"}})
	require.NoError(t, err)
	require.NotNil(t, stopped.Duration)
	assert.Equal(t, 90*timeparse.Minute, *stopped.Duration)
	assert.Equal(t, "done for now", stopped.Comment)
	assert.Equal(t, []string{"deep"}, stopped.Tags)

	st, err = s.State()
	require.NoError(t, err)
	assert.Nil(t, st.ActiveLog)

	status, err = Status(s)
	require.NoError(t, err)
	assert.Nil(t, status)

	_, err = StopLog(s, StopLogParams{})
	assert.ErrorIs(t, err, ErrNoActiveLog)
}

func TestStartLogStopsActiveLog(t *testing.T) {
	s, clock := setupTestStore(t)
	_, err := AddProject(s, AddProjectParams{Name: "Project"})
	require.NoError(t, err)

	first, err := StartLog(s, StartLogParams{ProjectID: "project"})
	require.NoError(t, err)
	clock.Advance(time.Hour)
	second, err := StartLog(s, StartLogParams{ProjectID: "project"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	closed, err := s.Log("project", model.NoTask, first.ID)
	require.NoError(t, err)
	require.NotNil(t, closed.Duration)
	assert.Equal(t, timeparse.Hour, *closed.Duration)

	st, err := s.State()
	require.NoError(t, err)
	assert.Equal(t, second.ID, st.ActiveLog.LogID)
}

func TestStartLogUnknownTargetKeepsActiveLog(t *testing.T) {
	s, _ := setupTestStore(t)
	_, err := AddProject(s, AddProjectParams{Name: "Project"})
	require.NoError(t, err)
	active, err := StartLog(s, StartLogParams{ProjectID: "project"})
	require.NoError(t, err)

	_, err = StartLog(s, StartLogParams{ProjectID: "project", TaskID: 42})
	assert.ErrorIs(t, err, store.ErrNotFound)

	st, err := s.State()
	require.NoError(t, err)
	assert.Equal(t, active.ID, st.ActiveLog.LogID)
}

func TestStopLogWithExplicitStop(t *testing.T) {
	s, clock := setupTestStore(t)
	_, err := AddProject(s, AddProjectParams{Name: "Project"})
	require.NoError(t, err)
	start := clock.now.Add(-2 * time.Hour)
	_, err = StartLog(s, StartLogParams{ProjectID: "project", Start: &start})
	require.NoError(t, err)

	tooEarly := start.Add(-time.Minute)
	_, err = StopLog(s, StopLogParams{Stop: &tooEarly})
	assert.ErrorIs(t, err, model.ErrStopBeforeStart)

	stop := start.Add(45 * time.Minute)
	d := 10 * timeparse.Minute
	_, err = StopLog(s, StopLogParams{Stop: &stop, Duration: &d})
	assert.ErrorIs(t, err, model.ErrDurationAndStop)

	stopped, err := StopLog(s, StopLogParams{Stop: &stop})
	require.NoError(t, err)
	assert.Equal(t, 45*timeparse.Minute, *stopped.Duration)
}

func TestCancelLog(t *testing.T) {
	s, _ := setupTestStore(t)
	_, err := AddProject(s, AddProjectParams{Name: "Project"})
	require.NoError(t, err)

	none, err := CancelLog(s)
	require.NoError(t, err)
	assert.Nil(t, none)

	started, err := StartLog(s, StartLogParams{ProjectID: "project"})
	require.NoError(t, err)
	cancelled, err := CancelLog(s)
	require.NoError(t, err)
	assert.Equal(t, started.ID, cancelled.ID)

	_, err = s.Log("project", model.NoTask, started.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	st, err := s.State()
	require.NoError(t, err)
	assert.Nil(t, st.ActiveLog)
}

func TestAddLog(t *testing.T) {
	s, clock := setupTestStore(t)
	_, err := AddProject(s, AddProjectParams{Name: "Project"})
	require.NoError(t, err)

	start := clock.now.Add(-time.Hour)
	stop := clock.now
	l, err := AddLog(s, AddLogParams{ProjectID: "project", Start: &start, Stop: &stop, Comment: "meeting"})
	require.NoError(t, err)
	assert.Equal(t, timeparse.Hour, *l.Duration)

	_, err = AddLog(s, AddLogParams{ProjectID: "project", Stop: &stop})
	assert.ErrorIs(t, err, model.ErrNoStart)

	st, err := s.State()
	require.NoError(t, err)
	assert.Nil(t, st.ActiveLog, "adding a log never starts tracking")
}

func TestUpdateProjectRenameFollowsActiveLog(t *testing.T) {
	s, _ := setupTestStore(t)
	_, err := AddProject(s, AddProjectParams{Name: "Old"})
	require.NoError(t, err)
	started, err := StartLog(s, StartLogParams{ProjectID: "old"})
	require.NoError(t, err)

	p, err := UpdateProject(s, UpdateProjectParams{ID: "old", Name: ptr("Brand New"), Description: ptr("renamed")})
	require.NoError(t, err)
	assert.Equal(t, "brand-new", p.ID)

	st, err := s.State()
	require.NoError(t, err)
	assert.Equal(t, "brand-new", st.ActiveLog.ProjectID)

	status, err := Status(s)
	require.NoError(t, err)
	assert.Equal(t, started.ID, status.Log.ID)
}

func TestUpdateProjectCollision(t *testing.T) {
	s, _ := setupTestStore(t)
	_, err := AddProject(s, AddProjectParams{Name: "One"})
	require.NoError(t, err)
	_, err = AddProject(s, AddProjectParams{Name: "Two"})
	require.NoError(t, err)

	_, err = UpdateProject(s, UpdateProjectParams{ID: "one", Name: ptr("two")})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestRemoveProjectClearsActiveLog(t *testing.T) {
	s, _ := setupTestStore(t)
	_, err := AddProject(s, AddProjectParams{Name: "Gone"})
	require.NoError(t, err)
	_, err = StartLog(s, StartLogParams{ProjectID: "gone"})
	require.NoError(t, err)

	require.NoError(t, RemoveProject(s, "gone"))
	st, err := s.State()
	require.NoError(t, err)
	assert.Nil(t, st.ActiveLog)
}

func TestUpdateAndDoneTasks(t *testing.T) {
	s, _ := setupTestStore(t)
	_, err := AddProject(s, AddProjectParams{Name: "Project"})
	require.NoError(t, err)
	for _, d := range []string{"a", "b", "c"} {
		_, err := AddTask(s, AddTaskParams{ProjectID: "project", Description: d})
		require.NoError(t, err)
	}

	updated, err := UpdateTasks(s, UpdateTasksParams{ProjectID: "project", TaskIDs: []model.TaskID{1, 2}, Priority: ptr(2), State: ptr("todo")})
	require.NoError(t, err)
	require.Len(t, updated, 2)
	assert.Equal(t, 2, updated[1].Priority)

	_, err = UpdateTasks(s, UpdateTasksParams{ProjectID: "project", TaskIDs: []model.TaskID{3}, State: ptr("nope")})
	assert.ErrorIs(t, err, model.ErrInvalidState)

	done, err := DoneTasks(s, "project", []model.TaskID{1, 3})
	require.NoError(t, err)
	for _, task := range done {
		assert.Equal(t, "done", task.State)
	}
}

func TestTaskStates(t *testing.T) {
	s, _ := setupTestStore(t)
	def, err := TaskStates(s, "")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultTaskStateConfig(), def)

	p := model.NewProject("Custom")
	p.TaskStateConfig = &model.TaskStateConfig{States: []string{"open", "active", "closed"}, Initial: "open", InProgress: "active", Done: "closed"}
	require.NoError(t, s.SaveProject(p))

	custom, err := TaskStates(s, "custom")
	require.NoError(t, err)
	assert.Equal(t, "closed", custom.Done)
}

func TestListTasks(t *testing.T) {
	s, _ := setupTestStore(t)
	_, err := AddProject(s, AddProjectParams{Name: "Alpha", Tags: []string{"work"}})
	require.NoError(t, err)
	_, err = AddProject(s, AddProjectParams{Name: "Beta"})
	require.NoError(t, err)
	_, err = AddTask(s, AddTaskParams{ProjectID: "alpha", Description: "low", Priority: 9})
	require.NoError(t, err)
	_, err = AddTask(s, AddTaskParams{ProjectID: "alpha", Description: "high", Priority: 1})
	require.NoError(t, err)
	_, err = AddTask(s, AddTaskParams{ProjectID: "beta", Description: "finished", State: "done", Priority: 1})
	require.NoError(t, err)

	tasks, err := ListTasks(s, ListTasksParams{})
	require.NoError(t, err)
	var descriptions []string
	for _, task := range tasks {
		descriptions = append(descriptions, task.Description)
	}
	assert.Equal(t, []string{"high", "finished", "low"}, descriptions)

	open, err := ListTasks(s, ListTasksParams{Tasks: TaskQuery{NotState: "done"}, Sort: "priority:desc"})
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, "low", open[0].Description)

	work, err := ListTasks(s, ListTasksParams{Projects: ProjectQuery{Tags: "work"}, Tasks: TaskQuery{Priorities: "1,2"}})
	require.NoError(t, err)
	require.Len(t, work, 1)
	assert.Equal(t, "high", work[0].Description)

	_, err = ListTasks(s, ListTasksParams{Sort: "colour"})
	assert.ErrorIs(t, err, query.ErrUnrecognizedField)

	_, err = ListTasks(s, ListTasksParams{Tasks: TaskQuery{Deadline: "someday"}})
	assert.ErrorIs(t, err, timeparse.ErrInvalidFilter)
}

func TestListLogs(t *testing.T) {
	s, clock := setupTestStore(t)
	_, err := AddProject(s, AddProjectParams{Name: "Alpha"})
	require.NoError(t, err)
	_, err = AddTask(s, AddTaskParams{ProjectID: "alpha", Description: "task"})
	require.NoError(t, err)

	today := clock.now.Add(-3 * time.Hour)
	lastWeek := clock.now.AddDate(0, 0, -8)
	short, long := 20*timeparse.Minute, 2*timeparse.Hour
	_, err = AddLog(s, AddLogParams{ProjectID: "alpha", Start: &today, Duration: &short})
	require.NoError(t, err)
	_, err = AddLog(s, AddLogParams{ProjectID: "alpha", TaskID: 1, Start: &today, Duration: &long, Tags: []string{"deep"}})
	require.NoError(t, err)
	_, err = AddLog(s, AddLogParams{ProjectID: "alpha", TaskID: 1, Start: &lastWeek, Duration: &long})
	require.NoError(t, err)

	all, err := ListLogs(s, ListLogsParams{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, model.NoTask, all[0].TaskID, "default sort puts project logs first")

	recent, err := ListLogs(s, ListLogsParams{Logs: LogQuery{Start: "7 days", Duration: ">= 1h"}})
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, []string{"deep"}, recent[0].Tags)

	taskLogs, err := ListLogs(s, ListLogsParams{Tasks: TaskQuery{IDs: "1"}, Sort: "start:desc"})
	require.NoError(t, err)
	require.Len(t, taskLogs, 2)
	assert.True(t, taskLogs[0].Start.After(*taskLogs[1].Start))

	_, err = ListLogs(s, ListLogsParams{Logs: LogQuery{Duration: "<= soon"}})
	assert.ErrorIs(t, err, timeparse.ErrInvalidFilter)
}

func TestListProjects(t *testing.T) {
	s, clock := setupTestStore(t)
	soon := clock.now.Add(2 * time.Hour)
	_, err := AddProject(s, AddProjectParams{Name: "Zeta", Deadline: &soon})
	require.NoError(t, err)
	_, err = AddProject(s, AddProjectParams{Name: "Alpha"})
	require.NoError(t, err)

	projects, err := ListProjects(s, ListProjectsParams{})
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Alpha", projects[0].Name)

	due, err := ListProjects(s, ListProjectsParams{Projects: ProjectQuery{Deadline: "today"}})
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "zeta", due[0].ID)

	byID, err := ListProjects(s, ListProjectsParams{Projects: ProjectQuery{IDs: "Zeta"}})
	require.NoError(t, err)
	assert.Len(t, byID, 1)
}

func TestBlankTagQueriesDoNotFilter(t *testing.T) {
	s, clock := setupTestStore(t)
	_, err := AddProject(s, AddProjectParams{Name: "Alpha", Tags: []string{"work"}})
	require.NoError(t, err)
	_, err = AddTask(s, AddTaskParams{ProjectID: "alpha", Description: "task", Tags: []string{"urgent"}})
	require.NoError(t, err)
	start := clock.now.Add(-time.Hour)
	d := 30 * timeparse.Minute
	_, err = AddLog(s, AddLogParams{ProjectID: "alpha", Start: &start, Duration: &d, Tags: []string{"deep"}})
	require.NoError(t, err)

	for _, blank := range []string{",", " ", " , ,"} {
		projects, err := ListProjects(s, ListProjectsParams{Projects: ProjectQuery{Tags: blank}})
		require.NoError(t, err)
		assert.Len(t, projects, 1, "project tags %q", blank)

		tasks, err := ListTasks(s, ListTasksParams{Tasks: TaskQuery{Tags: blank}})
		require.NoError(t, err)
		assert.Len(t, tasks, 1, "task tags %q", blank)

		logs, err := ListLogs(s, ListLogsParams{Logs: LogQuery{Tags: blank}})
		require.NoError(t, err)
		assert.Len(t, logs, 1, "log tags %q", blank)
	}

	none, err := ListTasks(s, ListTasksParams{Tasks: TaskQuery{Tags: "other"}})
	require.NoError(t, err)
	assert.Empty(t, none)
}
