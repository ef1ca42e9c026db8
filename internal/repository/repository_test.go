package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/todometer/internal/database"
	"github.com/thenoetrevino/todometer/internal/events"
	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/result"
	"github.com/thenoetrevino/todometer/internal/testutil"
	"github.com/thenoetrevino/todometer/internal/types"
)

const waitFor = 2 * time.Second

func setup(t *testing.T) (Repository, *events.Bus, types.TaskListID) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	bus := events.NewBus()
	return New(database.NewRepository(db), bus), bus, testutil.DefaultTaskListID(t, db)
}

// next waits for the next snapshot of a stream
func next[T any](t *testing.T, stream <-chan result.Result[T]) result.Result[T] {
	t.Helper()
	select {
	case r, ok := <-stream:
		require.True(t, ok, "stream closed")
		return r
	case <-time.After(waitFor):
		t.Fatal("timeout waiting for snapshot")
		return result.Result[T]{}
	}
}

// nextMatching skips snapshots until one satisfies cond
func nextMatching[T any](t *testing.T, stream <-chan result.Result[T], cond func(result.Result[T]) bool) result.Result[T] {
	t.Helper()
	deadline := time.After(waitFor)
	for {
		select {
		case r, ok := <-stream:
			require.True(t, ok, "stream closed")
			if cond(r) {
				return r
			}
		case <-deadline:
			t.Fatal("timeout waiting for matching snapshot")
			return result.Result[T]{}
		}
	}
}

func TestInsertTask_Defaults(t *testing.T) {
	repo, _, listID := setup(t)
	ctx := context.Background()

	id, err := repo.InsertTask(ctx, "Buy milk", "", nil, nil, listID).Unwrap()
	require.NoError(t, err)
	assert.True(t, types.IsValid(id))

	detail, err := First(ctx, repo.GetTask(ctx, id)).Unwrap()
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", detail.Task.Title)
	assert.Equal(t, models.TagGray, detail.Task.Tag)
	assert.Equal(t, models.TaskStateOpen, detail.Task.State)
	assert.Nil(t, detail.Task.Description)
	assert.Nil(t, detail.Task.DueDate)
	assert.Empty(t, detail.Checklist)
}

func TestInsertTask_UnknownTaskList(t *testing.T) {
	repo, _, _ := setup(t)

	r := repo.InsertTask(context.Background(), "Orphan", models.TagRed, nil, nil, types.NewTaskListID())
	require.True(t, r.IsError())
	assert.ErrorIs(t, r.Err(), ErrTaskListNotFound)
	assert.True(t, IsNotFound(r.Err()))
}

func TestInsertTaskWithChecklist(t *testing.T) {
	repo, _, listID := setup(t)
	ctx := context.Background()
	desc := "weekly"
	due := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	id, err := repo.InsertTaskWithChecklist(ctx, TaskInput{
		Title:       "Groceries",
		Tag:         models.TagGreen,
		Description: &desc,
		DueDate:     &due,
		TaskListID:  listID,
		Checklist:   []string{"eggs", "flour"},
	}).Unwrap()
	require.NoError(t, err)

	detail, err := First(ctx, repo.GetTask(ctx, id)).Unwrap()
	require.NoError(t, err)
	assert.Equal(t, models.TagGreen, detail.Task.Tag)
	require.NotNil(t, detail.Task.Description)
	assert.Equal(t, "weekly", *detail.Task.Description)
	require.NotNil(t, detail.Task.DueDate)
	assert.True(t, due.Equal(*detail.Task.DueDate))
	require.Len(t, detail.Checklist, 2)
	assert.Equal(t, "eggs", detail.Checklist[0].Text)
	assert.Equal(t, "flour", detail.Checklist[1].Text)
	assert.Equal(t, models.ChecklistItemUnchecked, detail.Checklist[0].State)
}

func TestInsertTaskWithChecklist_UnknownTaskListWritesNothing(t *testing.T) {
	repo, _, listID := setup(t)
	ctx := context.Background()

	r := repo.InsertTaskWithChecklist(ctx, TaskInput{
		Title:      "Nope",
		TaskListID: types.NewTaskListID(),
		Checklist:  []string{"a"},
	})
	assert.ErrorIs(t, r.Err(), ErrTaskListNotFound)

	tasks, err := First(ctx, repo.GetTasks(ctx, listID)).Unwrap()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestUpdateTask(t *testing.T) {
	repo, _, listID := setup(t)
	ctx := context.Background()
	id, err := repo.InsertTask(ctx, "Old", models.TagGray, nil, nil, listID).Unwrap()
	require.NoError(t, err)

	desc := "new description"
	require.True(t, repo.UpdateTask(ctx, models.Task{
		ID:          id,
		Title:       "New",
		Description: &desc,
		Tag:         models.TagBlue,
		State:       models.TaskStateDone,
	}).IsSuccess())

	detail, err := First(ctx, repo.GetTask(ctx, id)).Unwrap()
	require.NoError(t, err)
	assert.Equal(t, "New", detail.Task.Title)
	assert.Equal(t, models.TagBlue, detail.Task.Tag)
	assert.Equal(t, models.TaskStateDone, detail.Task.State)
	assert.Equal(t, listID, detail.Task.TaskListID)
}

func TestUpdateTask_ScopesEventToOwningList(t *testing.T) {
	repo, _, listID := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	otherID, err := repo.InsertTaskList(ctx, "Other", "").Unwrap()
	require.NoError(t, err)
	id, err := repo.InsertTask(ctx, "Old", models.TagGray, nil, nil, listID).Unwrap()
	require.NoError(t, err)

	stream := repo.GetTasks(ctx, listID)
	first, err := next(t, stream).Unwrap()
	require.NoError(t, err)
	require.Len(t, first, 1)

	// a stale list id on the input must not redirect the event
	require.True(t, repo.UpdateTask(ctx, models.Task{
		ID:         id,
		Title:      "Renamed",
		TaskListID: otherID,
	}).IsSuccess())

	snap := nextMatching(t, stream, func(r result.Result[[]models.Task]) bool {
		tasks, ok := r.Value()
		return ok && len(tasks) == 1 && tasks[0].Title == "Renamed"
	})
	tasks, _ := snap.Value()
	assert.Equal(t, listID, tasks[0].TaskListID)
}

func TestTaskMutations_UnknownTask(t *testing.T) {
	repo, _, _ := setup(t)
	ctx := context.Background()
	missing := types.NewTaskID()

	assert.ErrorIs(t, repo.UpdateTask(ctx, models.Task{ID: missing, Title: "x"}).Err(), ErrTaskNotFound)
	assert.ErrorIs(t, repo.UpdateTaskState(ctx, missing, models.TaskStateDone).Err(), ErrTaskNotFound)
	assert.ErrorIs(t, repo.DeleteTask(ctx, missing).Err(), ErrTaskNotFound)
	assert.ErrorIs(t, First(ctx, repo.GetTask(ctx, missing)).Err(), ErrTaskNotFound)
	assert.ErrorIs(t, repo.InsertTaskChecklistItems(ctx, missing, "a").Err(), ErrTaskNotFound)
}

func TestGetTasks_ReemitsAfterMutation(t *testing.T) {
	repo, _, listID := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := repo.GetTasks(ctx, listID)
	first, err := next(t, stream).Unwrap()
	require.NoError(t, err)
	assert.Empty(t, first)

	_, err = repo.InsertTask(ctx, "A", "", nil, nil, listID).Unwrap()
	require.NoError(t, err)

	snap := nextMatching(t, stream, func(r result.Result[[]models.Task]) bool {
		tasks, ok := r.Value()
		return ok && len(tasks) == 1
	})
	tasks, _ := snap.Value()
	assert.Equal(t, "A", tasks[0].Title)
}

func TestGetTasks_IgnoresOtherTaskLists(t *testing.T) {
	repo, bus, listID := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	otherID, err := repo.InsertTaskList(ctx, "Other", "").Unwrap()
	require.NoError(t, err)

	stream := repo.GetTasks(ctx, listID)
	next(t, stream)

	_, err = repo.InsertTask(ctx, "Elsewhere", "", nil, nil, otherID).Unwrap()
	require.NoError(t, err)

	// the filter runs on the bus, so a foreign change never reaches the stream
	sub := bus.Subscribe(ctx, affectsTasksOf(listID))
	bus.Publish(events.Event{Type: events.EventTaskChanged, TaskListID: otherID})
	select {
	case <-sub:
		t.Fatal("event for another task list passed the filter")
	case <-time.After(50 * time.Millisecond):
	}

	select {
	case r := <-stream:
		t.Fatalf("unexpected snapshot: %+v", r)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestStream_CoalescesUnreadSnapshots(t *testing.T) {
	repo, _, listID := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := repo.GetTasks(ctx, listID)
	// leave the first snapshot unread while several commits land
	for _, title := range []string{"A", "B", "C"} {
		_, err := repo.InsertTask(ctx, title, "", nil, nil, listID).Unwrap()
		require.NoError(t, err)
	}

	snap := nextMatching(t, stream, func(r result.Result[[]models.Task]) bool {
		tasks, ok := r.Value()
		return ok && len(tasks) == 3
	})
	tasks, _ := snap.Value()
	assert.Equal(t, "A", tasks[0].Title)
	assert.Equal(t, "C", tasks[2].Title)
	assert.LessOrEqual(t, len(stream), 1)
}

func TestStream_ClosesOnCancel(t *testing.T) {
	repo, bus, listID := setup(t)
	ctx, cancel := context.WithCancel(context.Background())

	stream := repo.GetTasks(ctx, listID)
	next(t, stream)
	cancel()

	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-stream:
			return !ok
		default:
			return false
		}
	}, waitFor, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return bus.Subscribers() == 0 }, waitFor, 10*time.Millisecond)
}

func TestGetTask_ReemitsOnChecklistChange(t *testing.T) {
	repo, _, listID := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	id, err := repo.InsertTask(ctx, "Pack", "", nil, nil, listID).Unwrap()
	require.NoError(t, err)

	stream := repo.GetTask(ctx, id)
	next(t, stream)

	itemIDs, err := repo.InsertTaskChecklistItems(ctx, id, "socks", "charger").Unwrap()
	require.NoError(t, err)
	require.Len(t, itemIDs, 2)

	nextMatching(t, stream, func(r result.Result[models.TaskDetail]) bool {
		d, ok := r.Value()
		return ok && len(d.Checklist) == 2
	})

	require.True(t, repo.SetTaskChecklistItemState(ctx, itemIDs[0], models.ChecklistItemChecked).IsSuccess())
	snap := nextMatching(t, stream, func(r result.Result[models.TaskDetail]) bool {
		d, ok := r.Value()
		return ok && len(d.Checklist) == 2 && d.Checklist[0].State == models.ChecklistItemChecked
	})
	d, _ := snap.Value()
	assert.Equal(t, models.TaskStateInProgress, d.EffectiveState())

	require.True(t, repo.DeleteTaskChecklistItem(ctx, itemIDs[1]).IsSuccess())
	nextMatching(t, stream, func(r result.Result[models.TaskDetail]) bool {
		d, ok := r.Value()
		return ok && len(d.Checklist) == 1
	})
}

func TestGetTask_EmitsNotFoundAfterDelete(t *testing.T) {
	repo, _, listID := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	id, err := repo.InsertTask(ctx, "Gone soon", "", nil, nil, listID).Unwrap()
	require.NoError(t, err)

	stream := repo.GetTask(ctx, id)
	require.True(t, next(t, stream).IsSuccess())

	require.True(t, repo.DeleteTask(ctx, id).IsSuccess())
	snap := nextMatching(t, stream, func(r result.Result[models.TaskDetail]) bool { return r.IsError() })
	assert.ErrorIs(t, snap.Err(), ErrTaskNotFound)
}

func TestChecklistItems_UnknownItem(t *testing.T) {
	repo, _, _ := setup(t)
	ctx := context.Background()
	missing := types.NewChecklistItemID()

	assert.ErrorIs(t, repo.SetTaskChecklistItemState(ctx, missing, models.ChecklistItemChecked).Err(), ErrChecklistItemNotFound)
	assert.ErrorIs(t, repo.DeleteTaskChecklistItem(ctx, missing).Err(), ErrChecklistItemNotFound)
}

func TestGetTaskChecklistItems(t *testing.T) {
	repo, _, listID := setup(t)
	ctx := context.Background()

	id, err := repo.InsertTask(ctx, "Trip", "", nil, nil, listID).Unwrap()
	require.NoError(t, err)
	_, err = repo.InsertTaskChecklistItems(ctx, id, "one", "two", "three").Unwrap()
	require.NoError(t, err)

	items, err := First(ctx, repo.GetTaskChecklistItems(ctx, id)).Unwrap()
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"one", "two", "three"}, []string{items[0].Text, items[1].Text, items[2].Text})
}

func TestTaskLists_CRUD(t *testing.T) {
	repo, _, defaultID := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := repo.GetTaskLists(ctx)
	lists, err := next(t, stream).Unwrap()
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, database.DefaultTaskListName, lists[0].Name)

	workID, err := repo.InsertTaskList(ctx, "Work", "office").Unwrap()
	require.NoError(t, err)
	nextMatching(t, stream, func(r result.Result[[]models.TaskList]) bool {
		l, ok := r.Value()
		return ok && len(l) == 2
	})

	require.True(t, repo.UpdateTaskList(ctx, models.TaskList{ID: workID, Name: "Job", Description: ""}).IsSuccess())
	snap := nextMatching(t, stream, func(r result.Result[[]models.TaskList]) bool {
		l, ok := r.Value()
		return ok && len(l) == 2 && l[1].Name == "Job"
	})
	l, _ := snap.Value()
	assert.Equal(t, defaultID, l[0].ID)

	require.True(t, repo.DeleteTaskList(ctx, workID).IsSuccess())
	nextMatching(t, stream, func(r result.Result[[]models.TaskList]) bool {
		l, ok := r.Value()
		return ok && len(l) == 1
	})
}

func TestTaskLists_UnknownID(t *testing.T) {
	repo, _, _ := setup(t)
	ctx := context.Background()
	missing := types.NewTaskListID()

	assert.ErrorIs(t, repo.UpdateTaskList(ctx, models.TaskList{ID: missing, Name: "x"}).Err(), ErrTaskListNotFound)
	assert.ErrorIs(t, repo.DeleteTaskList(ctx, missing).Err(), ErrTaskListNotFound)
	assert.ErrorIs(t, repo.SetTaskListSelected(ctx, missing).Err(), ErrTaskListNotFound)
}

func TestDeleteTaskList_CascadesToTaskStream(t *testing.T) {
	repo, _, _ := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listID, err := repo.InsertTaskList(ctx, "Temp", "").Unwrap()
	require.NoError(t, err)
	taskID, err := repo.InsertTask(ctx, "Inside", "", nil, nil, listID).Unwrap()
	require.NoError(t, err)

	stream := repo.GetTask(ctx, taskID)
	require.True(t, next(t, stream).IsSuccess())

	require.True(t, repo.DeleteTaskList(ctx, listID).IsSuccess())
	snap := nextMatching(t, stream, func(r result.Result[models.TaskDetail]) bool { return r.IsError() })
	assert.ErrorIs(t, snap.Err(), ErrTaskNotFound)
}

func TestTaskListSelected(t *testing.T) {
	repo, _, defaultID := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := repo.GetTaskListSelected(ctx)
	selected, err := next(t, stream).Unwrap()
	require.NoError(t, err)
	assert.Equal(t, defaultID, selected.ID, "oldest list is selected by default")

	workID, err := repo.InsertTaskList(ctx, "Work", "").Unwrap()
	require.NoError(t, err)
	require.True(t, repo.SetTaskListSelected(ctx, workID).IsSuccess())

	nextMatching(t, stream, func(r result.Result[models.TaskList]) bool {
		tl, ok := r.Value()
		return ok && tl.ID == workID
	})

	// deleting the selected list falls back to the oldest remaining one
	require.True(t, repo.DeleteTaskList(ctx, workID).IsSuccess())
	nextMatching(t, stream, func(r result.Result[models.TaskList]) bool {
		tl, ok := r.Value()
		return ok && tl.ID == defaultID
	})
}

func TestTaskListSelected_NoTaskLists(t *testing.T) {
	repo, _, defaultID := setup(t)
	ctx := context.Background()

	require.True(t, repo.DeleteTaskList(ctx, defaultID).IsSuccess())

	r := First(ctx, repo.GetTaskListSelected(ctx))
	require.True(t, r.IsError())
	assert.ErrorIs(t, r.Err(), ErrTaskListNotFound)
}

func TestMutations_PublishScopedEvents(t *testing.T) {
	repo, bus, listID := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := bus.Subscribe(ctx, events.All)
	taskID, err := repo.InsertTask(ctx, "Scoped", "", nil, nil, listID).Unwrap()
	require.NoError(t, err)

	e := testutil.WaitForEvent(t, sub, waitFor)
	assert.Equal(t, events.EventTaskChanged, e.Type)
	assert.Equal(t, listID, e.TaskListID)
	assert.Equal(t, taskID, e.TaskID)
	assert.Equal(t, bus.Origin(), e.Origin)

	_, err = repo.InsertTaskChecklistItems(ctx, taskID, "step").Unwrap()
	require.NoError(t, err)
	e = testutil.WaitForEvent(t, sub, waitFor)
	assert.Equal(t, events.EventChecklistChanged, e.Type)
	assert.Equal(t, listID, e.TaskListID, "checklist events are scoped to the owning list")
}

func TestFailedMutation_PublishesNothing(t *testing.T) {
	repo, bus, _ := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := bus.Subscribe(ctx, events.All)
	require.True(t, repo.DeleteTask(ctx, types.NewTaskID()).IsError())
	testutil.WaitForNoEvent(t, sub, 50*time.Millisecond)
}

func TestFirst_ContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := First(ctx, make(chan result.Result[int]))
	assert.ErrorIs(t, r.Err(), context.Canceled)
}

func TestFirst_ClosedStream(t *testing.T) {
	ch := make(chan result.Result[int])
	close(ch)

	r := First(context.Background(), ch)
	assert.True(t, r.IsError())
}

func TestOnce_ReleasesStream(t *testing.T) {
	repo, bus, defaultID := setup(t)

	lists, err := Once(context.Background(), repo.GetTaskLists).Unwrap()
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, defaultID, lists[0].ID)

	assert.Eventually(t, func() bool { return bus.Subscribers() == 0 }, waitFor, 10*time.Millisecond)
}

func TestOffer_ReplacesUnread(t *testing.T) {
	ch := make(chan int, 1)
	offer(ch, 1)
	offer(ch, 2)
	assert.Equal(t, 2, <-ch)
	assert.Empty(t, ch)
}

func TestSwitch_FollowsSelection(t *testing.T) {
	repo, _, defaultID := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := repo.InsertTask(ctx, "In default", "", nil, nil, defaultID).Unwrap()
	require.NoError(t, err)
	workID, err := repo.InsertTaskList(ctx, "Work", "").Unwrap()
	require.NoError(t, err)
	_, err = repo.InsertTask(ctx, "In work", "", nil, nil, workID).Unwrap()
	require.NoError(t, err)

	tasks := Switch(ctx, repo.GetTaskListSelected(ctx),
		func(tl models.TaskList) types.TaskListID { return tl.ID },
		func(ctx context.Context, tl models.TaskList) <-chan result.Result[[]models.Task] {
			return repo.GetTasks(ctx, tl.ID)
		})

	titleIs := func(want string) func(result.Result[[]models.Task]) bool {
		return func(r result.Result[[]models.Task]) bool {
			ts, ok := r.Value()
			return ok && len(ts) == 1 && ts[0].Title == want
		}
	}

	nextMatching(t, tasks, titleIs("In default"))
	require.True(t, repo.SetTaskListSelected(ctx, workID).IsSuccess())
	nextMatching(t, tasks, titleIs("In work"))
}

func TestSwitch_ForwardsSourceErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := make(chan result.Result[string], 1)
	cause := assert.AnError
	src <- result.Error[string](cause)

	out := Switch(ctx, src, func(s string) string { return s },
		func(context.Context, string) <-chan result.Result[int] {
			t.Fatal("inner stream opened for an error")
			return nil
		})

	assert.ErrorIs(t, next(t, out).Err(), cause)
}
