package entrant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/virtual-queue/internal/audit"
	projectdomain "github.com/BruksfildServices01/virtual-queue/internal/domain/project"
	"github.com/BruksfildServices01/virtual-queue/internal/formschema"
	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/infra/memory"
	"github.com/BruksfildServices01/virtual-queue/internal/metrics"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
	"github.com/BruksfildServices01/virtual-queue/internal/timezone"
	projectuc "github.com/BruksfildServices01/virtual-queue/internal/usecase/project"
)

// ======================================================
// FIXTURES
// ======================================================

type env struct {
	store      *memory.Store
	clock      *timezone.Manual
	dispatcher *audit.Dispatcher
	metrics    *metrics.Metrics

	join       *JoinQueue
	first      *FirstActive
	deactivate *DeactivateEntrant
	serve      *ServeNext
	list       *ListEntrants
}

func newEnv(t *testing.T) *env {
	t.Helper()

	e := &env{clock: timezone.NewManual(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))}
	e.store = memory.New(e.clock.Now)
	e.dispatcher = audit.NewDispatcher(e.store.Audit(), 10)
	e.metrics = metrics.New()
	t.Cleanup(e.dispatcher.Close)

	projects, entrants := e.store.Projects(), e.store.Entrants()
	e.join = NewJoinQueue(projects, entrants, e.dispatcher, e.metrics, e.clock.Now)
	e.first = NewFirstActive(projects, entrants)
	e.deactivate = NewDeactivateEntrant(entrants, e.dispatcher, e.clock.Now)
	e.serve = NewServeNext(e.first, e.deactivate, e.metrics)
	e.list = NewListEntrants(projects, entrants)
	return e
}

func (e *env) project(t *testing.T, businessID, username, status string, tpl formschema.Template) *models.Project {
	t.Helper()

	p, err := projectuc.NewCreateProject(e.store.Projects(), e.dispatcher, e.metrics).
		Execute(context.Background(), projectuc.CreateProjectInput{
			BusinessID:    businessID,
			BusinessEmail: "owner@x.com",
			Name:          username,
			Username:      username,
			Status:        status,
			CustomFields:  tpl,
		})
	require.NoError(t, err)
	return p
}

func (e *env) enqueue(t *testing.T, username, name string) *models.Entrant {
	t.Helper()

	res := e.join.Execute(context.Background(), JoinInput{
		Username: username,
		Data:     map[string]string{"name": name, "email": name + "@x.com"},
	})
	require.True(t, res.Success, res.Error)
	return res.Entrant
}

// ======================================================
// JOIN
// ======================================================

func TestJoinQueue_Success(t *testing.T) {
	e := newEnv(t)
	p := e.project(t, "b1", "cafe", "PUBLIC", nil)

	res := e.join.Execute(context.Background(), JoinInput{
		Username: "cafe",
		Data: map[string]string{
			"name":        "Amit",
			"email":       "a@x.com",
			"phoneNumber": "+14155550100",
			"unexpected":  "dropped",
		},
	})

	require.True(t, res.Success)
	assert.Empty(t, res.Error)
	assert.Equal(t, p.ID, res.Entrant.ProjectID)
	assert.Equal(t, "ACTIVE", res.Entrant.Status)
	assert.Equal(t, "Amit", res.Entrant.Value("name"))
	assert.NotContains(t, res.Entrant.Data.Data(), "unexpected")
}

func TestJoinQueue_Failures(t *testing.T) {
	e := newEnv(t)
	e.project(t, "b1", "cafe", "PUBLIC", nil)
	e.project(t, "b1", "closed", "PRIVATE", nil)

	tests := []struct {
		name   string
		in     JoinInput
		code   string
		fields []string
	}{
		{"unknown project", JoinInput{Username: "nope", Data: map[string]string{"name": "A", "email": "a@x.com"}}, "project_not_found", nil},
		{"private project", JoinInput{Username: "closed", Data: map[string]string{"name": "A", "email": "a@x.com"}}, "project_not_found", nil},
		{"no address", JoinInput{Data: map[string]string{"name": "A"}}, "project_not_found", nil},
		{"missing email", JoinInput{Username: "cafe", Data: map[string]string{"name": "A"}}, "invalid_form", []string{"email"}},
		{"bad email and phone", JoinInput{Username: "cafe", Data: map[string]string{
			"name": "A", "email": "nope", "phoneNumber": "12-ab",
		}}, "invalid_form", []string{"email", "phoneNumber"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.join.Execute(context.Background(), tt.in)

			assert.False(t, res.Success)
			assert.Nil(t, res.Entrant)
			assert.Equal(t, tt.code, res.Code)
			assert.NotEmpty(t, res.Error)
			for _, f := range tt.fields {
				assert.Contains(t, res.Fields, f)
			}
		})
	}
}

func TestJoinQueue_CustomFieldRoundTrip(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	tpl := formschema.Template{{Name: "reason", Field: formschema.Field{Type: formschema.FieldText}}}
	p := e.project(t, "b1", "clinic", "PUBLIC", tpl)

	res := e.join.Execute(ctx, JoinInput{Username: "clinic", Data: map[string]string{"name": "A", "email": "a@b.com"}})
	require.False(t, res.Success)
	assert.Contains(t, res.Fields, "reason")

	res = e.join.Execute(ctx, JoinInput{Username: "clinic", Data: map[string]string{
		"name": "A", "email": "a@b.com", "reason": "x",
	}})
	require.True(t, res.Success)
	assert.Equal(t, "x", res.Entrant.Value("reason"))

	manage := projectuc.NewManageCustomFields(e.store.Projects(),
		projectuc.NewUpdateProject(e.store.Projects(), nil, e.dispatcher))
	_, err := manage.RemoveField(ctx, projectdomain.Scope{ID: p.ID, BusinessID: "b1"}, "reason")
	require.NoError(t, err)

	table, err := e.list.Execute(ctx, ListInput{BusinessID: "b1", ProjectID: p.ID})
	require.NoError(t, err)
	require.Len(t, table.Entrants, 1)
	assert.Equal(t, "x", table.Entrants[0].Value("reason"))

	for _, c := range table.Columns {
		assert.NotEqual(t, "data.reason", c.ID)
	}

	res = e.join.Execute(ctx, JoinInput{Username: "clinic", Data: map[string]string{"name": "B", "email": "b@b.com"}})
	assert.True(t, res.Success)
}

// ======================================================
// QUEUE
// ======================================================

func TestFirstActive_FIFO(t *testing.T) {
	e := newEnv(t)
	p := e.project(t, "b1", "cafe", "PUBLIC", nil)
	ctx := context.Background()

	t1 := e.enqueue(t, "cafe", "one")
	e.clock.Advance(time.Minute)
	t2 := e.enqueue(t, "cafe", "two")
	e.clock.Advance(time.Minute)
	e.enqueue(t, "cafe", "three")

	first, err := e.first.Execute(ctx, "b1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, t1.ID, first.ID)

	_, err = e.deactivate.Execute(ctx, "b1", t1.ID)
	require.NoError(t, err)

	first, err = e.first.Execute(ctx, "b1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, t2.ID, first.ID)
}

func TestFirstActive_OtherBusinessIsNotFound(t *testing.T) {
	e := newEnv(t)
	p := e.project(t, "b1", "cafe", "PUBLIC", nil)

	_, err := e.first.Execute(context.Background(), "b2", p.ID)
	assert.True(t, httperr.IsNotFound(err))
}

func TestDeactivateEntrant_IdempotentAndScoped(t *testing.T) {
	e := newEnv(t)
	e.project(t, "b1", "cafe", "PUBLIC", nil)
	entrant := e.enqueue(t, "cafe", "one")
	ctx := context.Background()

	_, err := e.deactivate.Execute(ctx, "b2", entrant.ID)
	assert.True(t, httperr.IsNotFound(err))

	for i := 0; i < 2; i++ {
		got, err := e.deactivate.Execute(ctx, "b1", entrant.ID)
		require.NoError(t, err)
		assert.Equal(t, "INACTIVE", got.Status)
	}
}

func TestDeleteEntrant(t *testing.T) {
	e := newEnv(t)
	p := e.project(t, "b1", "cafe", "PUBLIC", nil)
	entrant := e.enqueue(t, "cafe", "one")
	ctx := context.Background()

	uc := NewDeleteEntrant(e.store.Entrants(), e.dispatcher)

	_, err := uc.Execute(ctx, "b2", entrant.ID)
	assert.True(t, httperr.IsNotFound(err))

	deleted, err := uc.Execute(ctx, "b1", entrant.ID)
	require.NoError(t, err)
	assert.Equal(t, entrant.ID, deleted.ID)

	first, err := e.first.Execute(ctx, "b1", p.ID)
	require.NoError(t, err)
	assert.Nil(t, first)

	e.dispatcher.Close()
	logs, _, err := e.store.Audit().List(ctx, audit.Query{BusinessID: "b1", Action: audit.ActionEntrantDeleted})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestServeNext(t *testing.T) {
	e := newEnv(t)
	p := e.project(t, "b1", "cafe", "PUBLIC", nil)
	ctx := context.Background()

	served, err := e.serve.Execute(ctx, "b1", p.ID)
	require.NoError(t, err)
	assert.Nil(t, served)

	one := e.enqueue(t, "cafe", "one")
	e.clock.Advance(time.Second)
	two := e.enqueue(t, "cafe", "two")

	served, err = e.serve.Execute(ctx, "b1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, one.ID, served.ID)
	assert.Equal(t, "INACTIVE", served.Status)

	served, err = e.serve.Execute(ctx, "b1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, two.ID, served.ID)

	_, err = e.serve.Execute(ctx, "b2", p.ID)
	assert.True(t, httperr.IsNotFound(err))
}

// ======================================================
// TABLE
// ======================================================

func TestListEntrants_FiltersAndColumns(t *testing.T) {
	e := newEnv(t)
	tpl := formschema.Template{{Name: "table", Field: formschema.Field{Type: formschema.FieldText}}}
	p := e.project(t, "b1", "bistro", "PUBLIC", tpl)
	ctx := context.Background()

	for _, row := range []map[string]string{
		{"name": "Alice", "email": "alice@x.com", "table": "window"},
		{"name": "Bob", "email": "bob@x.com", "table": "bar"},
		{"name": "Alina", "email": "alina@x.com", "table": "Window seat"},
	} {
		res := e.join.Execute(ctx, JoinInput{ProjectID: p.ID, Data: row})
		require.True(t, res.Success, res.Error)
		e.clock.Advance(time.Second)
	}

	table, err := e.list.Execute(ctx, ListInput{BusinessID: "b1", ProjectID: p.ID})
	require.NoError(t, err)
	assert.Len(t, table.Entrants, 3)
	assert.Equal(t, "Alice", table.Entrants[0].Value("name"))

	table, err = e.list.Execute(ctx, ListInput{
		BusinessID: "b1",
		ProjectID:  p.ID,
		Filters:    map[string]string{"data.name": "ali", "data.table": "window"},
	})
	require.NoError(t, err)
	require.Len(t, table.Entrants, 2)
	assert.Equal(t, "Alina", table.Entrants[1].Value("name"))

	_, err = e.deactivate.Execute(ctx, "b1", table.Entrants[0].ID)
	require.NoError(t, err)

	table, err = e.list.Execute(ctx, ListInput{
		BusinessID: "b1",
		ProjectID:  p.ID,
		Filters:    map[string]string{"status": "INACTIVE"},
	})
	require.NoError(t, err)
	require.Len(t, table.Entrants, 1)
	assert.Equal(t, "Alice", table.Entrants[0].Value("name"))

	table, err = e.list.Execute(ctx, ListInput{BusinessID: "b1", ProjectID: p.ID, Status: "ACTIVE"})
	require.NoError(t, err)
	assert.Len(t, table.Entrants, 2)

	_, err = e.list.Execute(ctx, ListInput{BusinessID: "b1", ProjectID: p.ID, Status: "done"})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	cols, err := e.list.Columns(ctx, "b1", p.ID)
	require.NoError(t, err)
	ids := make([]string, len(cols))
	for i, c := range cols {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{
		"select", "data.name", "data.email", "data.address", "data.phoneNumber", "data.notes",
		"status", "data.table", "createdAt", "actions",
	}, ids)

	_, err = e.list.Columns(ctx, "b2", p.ID)
	assert.True(t, httperr.IsNotFound(err))
}

// ======================================================
// END TO END
// ======================================================

func TestQueue_EndToEnd(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.store.Projects().UpsertBusiness(ctx, "b1", "owner@x.com")
	require.NoError(t, err)

	created, err := projectuc.NewCreateProject(e.store.Projects(), e.dispatcher, e.metrics).
		Execute(ctx, projectuc.CreateProjectInput{
			BusinessID:    "b1",
			BusinessEmail: "owner@x.com",
			Name:          "Cafe",
			Username:      "cafe",
			Status:        "PUBLIC",
		})
	require.NoError(t, err)

	resolved, err := projectuc.NewGetProjectByUsername(e.store.Projects(), nil).Execute(ctx, "cafe", "")
	require.NoError(t, err)
	assert.Equal(t, created.ID, resolved.ID)

	res := e.join.Execute(ctx, JoinInput{
		Username: "cafe",
		Data:     map[string]string{"name": "Amit", "email": "a@x.com"},
	})
	require.True(t, res.Success)

	first, err := e.first.Execute(ctx, "", resolved.ID)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, res.Entrant.ID, first.ID)

	_, err = e.deactivate.Execute(ctx, "b1", first.ID)
	require.NoError(t, err)

	first, err = e.first.Execute(ctx, "", resolved.ID)
	require.NoError(t, err)
	assert.Nil(t, first)
}
