package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/virtual-queue/internal/audit"
	"github.com/BruksfildServices01/virtual-queue/internal/domain/entrant"
	"github.com/BruksfildServices01/virtual-queue/internal/domain/project"
	"github.com/BruksfildServices01/virtual-queue/internal/domain/stats"
	"github.com/BruksfildServices01/virtual-queue/internal/formschema"
	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/models"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func setup(t *testing.T) (*Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)}
	return New(clock.Now), clock
}

func seedProject(t *testing.T, s *Store, businessID, id, username string) *models.Project {
	t.Helper()
	ctx := context.Background()

	_, err := s.Projects().UpsertBusiness(ctx, businessID, businessID+"@x.com")
	require.NoError(t, err)

	p := &models.Project{
		ID:           id,
		BusinessID:   businessID,
		Name:         username,
		Username:     username,
		Status:       string(project.StatusPublic),
		APIKey:       "key-" + id,
		CustomFields: datatypes.NewJSONType(formschema.Template{}),
	}
	require.NoError(t, s.Projects().Create(ctx, p))
	return p
}

func seedEntrant(t *testing.T, s *Store, projectID, id string) {
	t.Helper()
	require.NoError(t, s.Entrants().Create(context.Background(), &models.Entrant{
		ID:        id,
		ProjectID: projectID,
		Status:    string(entrant.StatusActive),
		Data:      datatypes.NewJSONType(map[string]string{"name": id}),
	}))
}

func TestProjects_UniqueUsernameAndKey(t *testing.T) {
	s, _ := setup(t)
	ctx := context.Background()
	seedProject(t, s, "b1", "p1", "cafe")

	err := s.Projects().Create(ctx, &models.Project{
		ID: "p2", BusinessID: "b1", Username: "cafe", APIKey: "other",
	})
	assert.True(t, httperr.IsBusiness(err, "username_taken"))

	err = s.Projects().Create(ctx, &models.Project{
		ID: "p3", BusinessID: "b1", Username: "bar", APIKey: "key-p1",
	})
	assert.True(t, httperr.IsBusiness(err, "api_key_conflict"))

	list, err := s.Projects().ListByBusiness(ctx, "b1", nil)
	require.NoError(t, err)
	assert.Len(t, list, 1, "no partial rows")
}

func TestProjects_ScopeHidesOtherTenants(t *testing.T) {
	s, _ := setup(t)
	ctx := context.Background()
	seedProject(t, s, "b1", "p1", "cafe")
	seedProject(t, s, "b2", "p2", "bar")

	repo := s.Projects()
	scope := project.Scope{ID: "p1", BusinessID: "b2"}

	_, err := repo.Find(ctx, scope, false)
	assert.True(t, httperr.IsNotFound(err))

	name := "hijacked"
	_, err = repo.Update(ctx, scope, project.Patch{Name: &name})
	assert.True(t, httperr.IsNotFound(err))

	_, err = repo.Delete(ctx, scope)
	assert.True(t, httperr.IsNotFound(err))

	p, err := repo.Find(ctx, project.Scope{ID: "p1", BusinessID: "b1"}, false)
	require.NoError(t, err)
	assert.Equal(t, "cafe", p.Name)
}

func TestProjects_UpdateBumpsUpdatedAt(t *testing.T) {
	s, clock := setup(t)
	ctx := context.Background()
	created := seedProject(t, s, "b1", "p1", "cafe")

	clock.Advance(time.Hour)
	status := project.StatusPrivate
	tpl := formschema.Template{{Name: "reason", Field: formschema.Field{Type: formschema.FieldText}}}

	p, err := s.Projects().Update(ctx, project.Scope{ID: "p1", BusinessID: "b1"}, project.Patch{
		Status:       &status,
		CustomFields: &tpl,
	})
	require.NoError(t, err)
	assert.Equal(t, "PRIVATE", p.Status)
	assert.Equal(t, []string{"reason"}, p.Template().Names())
	assert.True(t, p.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, created.CreatedAt, p.CreatedAt)
}

func TestProjects_RegenerateByKey(t *testing.T) {
	s, _ := setup(t)
	ctx := context.Background()
	seedProject(t, s, "b1", "p1", "cafe")

	next := "fresh"
	p, err := s.Projects().Update(ctx, project.Scope{APIKey: "key-p1"}, project.Patch{APIKey: &next})
	require.NoError(t, err)
	assert.Equal(t, "fresh", p.APIKey)

	_, err = s.Projects().Find(ctx, project.Scope{APIKey: "key-p1"}, false)
	assert.True(t, httperr.IsNotFound(err))
}

func TestProjects_DeleteCascades(t *testing.T) {
	s, _ := setup(t)
	ctx := context.Background()
	seedProject(t, s, "b1", "p1", "cafe")
	seedEntrant(t, s, "p1", "e1")
	seedEntrant(t, s, "p1", "e2")

	deleted, err := s.Projects().Delete(ctx, project.Scope{ID: "p1", BusinessID: "b1"})
	require.NoError(t, err)
	assert.Len(t, deleted.Entrants, 2)

	_, err = s.Entrants().Find(ctx, entrant.Scope{ID: "e1"})
	assert.True(t, httperr.IsNotFound(err))

	n, err := s.Stats().CountEntrants(ctx, stats.Filter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestProjects_ReturnedValuesAreCopies(t *testing.T) {
	s, _ := setup(t)
	ctx := context.Background()
	seedProject(t, s, "b1", "p1", "cafe")

	p, err := s.Projects().Find(ctx, project.Scope{ID: "p1"}, false)
	require.NoError(t, err)
	p.Name = "changed"

	again, err := s.Projects().Find(ctx, project.Scope{ID: "p1"}, false)
	require.NoError(t, err)
	assert.Equal(t, "cafe", again.Name)
}

func TestEntrants_FirstActiveIsFIFO(t *testing.T) {
	s, clock := setup(t)
	ctx := context.Background()
	seedProject(t, s, "b1", "p1", "cafe")

	seedEntrant(t, s, "p1", "t1")
	clock.Advance(time.Minute)
	seedEntrant(t, s, "p1", "t2")
	clock.Advance(time.Minute)
	seedEntrant(t, s, "p1", "t3")

	first, err := s.Entrants().FirstActive(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "t1", first.ID)

	_, err = s.Entrants().Deactivate(ctx, entrant.Scope{ID: "t1"}, clock.Now())
	require.NoError(t, err)

	first, err = s.Entrants().FirstActive(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "t2", first.ID)
}

func TestEntrants_FirstActiveTiesUseInsertionOrder(t *testing.T) {
	s, _ := setup(t)
	ctx := context.Background()
	seedProject(t, s, "b1", "p1", "cafe")

	for _, id := range []string{"c", "a", "b"} {
		seedEntrant(t, s, "p1", id)
	}

	first, err := s.Entrants().FirstActive(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "c", first.ID)
}

func TestEntrants_FirstActiveEmpty(t *testing.T) {
	s, _ := setup(t)
	seedProject(t, s, "b1", "p1", "cafe")

	first, err := s.Entrants().FirstActive(context.Background(), "p1")
	require.NoError(t, err)
	assert.Nil(t, first)
}

func TestEntrants_DeactivateIdempotentAndScoped(t *testing.T) {
	s, _ := setup(t)
	ctx := context.Background()
	seedProject(t, s, "b1", "p1", "cafe")
	seedEntrant(t, s, "p1", "e1")

	_, err := s.Entrants().Deactivate(ctx, entrant.Scope{ID: "e1", BusinessID: "b2"}, time.Now())
	assert.True(t, httperr.IsNotFound(err))

	for i := 0; i < 2; i++ {
		e, err := s.Entrants().Deactivate(ctx, entrant.Scope{ID: "e1", BusinessID: "b1"}, time.Now())
		require.NoError(t, err)
		assert.Equal(t, "INACTIVE", e.Status)
	}

	active := entrant.StatusActive
	list, err := s.Entrants().List(ctx, "p1", &active)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStats_CountsAndCreationCounts(t *testing.T) {
	s, clock := setup(t)
	ctx := context.Background()
	seedProject(t, s, "b1", "p1", "cafe")
	seedProject(t, s, "b1", "p2", "bar")
	seedProject(t, s, "b2", "p3", "deli")
	seedEntrant(t, s, "p1", "e1")
	seedEntrant(t, s, "p1", "e2")
	clock.Advance(24 * time.Hour)
	seedEntrant(t, s, "p3", "e3")

	repo := s.Stats()

	n, err := repo.CountProjects(ctx, stats.Filter{BusinessID: "b1"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = repo.CountEntrants(ctx, stats.Filter{BusinessID: "b1", Status: "ACTIVE"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = repo.CountBusinesses(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	per, err := repo.EntrantsPerProject(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, []stats.ProjectUserCount{
		{ProjectID: "p1", ProjectName: "cafe", UserCount: 2},
		{ProjectID: "p2", ProjectName: "bar", UserCount: 0},
	}, per)

	rows, err := repo.CreationCounts(ctx, stats.EntityEntrant, "", time.Time{})
	require.NoError(t, err)
	series := stats.DailySeries(rows, clock.Now())
	assert.Equal(t, []stats.TimeSeriesPoint{
		{Date: "2024-05-10", Value: 2},
		{Date: "2024-05-11", Value: 1},
	}, series)
}

func TestAuditStore_ListPagesNewestFirst(t *testing.T) {
	s, clock := setup(t)
	ctx := context.Background()
	store := s.Audit()

	for _, action := range []string{"a1", "a2", "a3"} {
		require.NoError(t, store.Write(ctx, &models.AuditLog{BusinessID: "b1", Action: action}))
		clock.Advance(time.Second)
	}
	require.NoError(t, store.Write(ctx, &models.AuditLog{BusinessID: "b2", Action: "other"}))

	logs, total, err := store.List(ctx, audit.Query{BusinessID: "b1", Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, logs, 2)
	assert.Equal(t, "a3", logs[0].Action)
	assert.Equal(t, "a2", logs[1].Action)

	logs, _, err = store.List(ctx, audit.Query{BusinessID: "b1", Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "a1", logs[0].Action)
}
