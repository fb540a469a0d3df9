package repository

import (
	"context"
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
	"gorm.io/gorm"

	"github.com/nurpe/sitetrack/internal/model"
	"github.com/nurpe/sitetrack/internal/testutil"
)

func TestInsertIfMissingThenUpsertPresent(t *testing.T) {
	c := qt.New(t)
	database := testutil.NewDB(t)
	ctx := context.Background()

	owner := testutil.CreateUser(t, database, "pm@example.com")
	project := testutil.CreateProject(t, database, owner, "Riverside")
	laborer := testutil.CreateLaborer(t, database, project, "Okello", "80")
	day := testutil.Date(2024, 3, 15)
	repo := NewAttendanceRepository(database)

	created, err := repo.InsertIfMissing(ctx, laborer.ID, project.ID, day)
	c.Assert(err, qt.IsNil)
	c.Assert(created, qt.IsTrue)
	created, err = repo.InsertIfMissing(ctx, laborer.ID, project.ID, day)
	c.Assert(err, qt.IsNil)
	c.Assert(created, qt.IsFalse)

	first, err := repo.UpsertPresent(ctx, laborer.ID, project.ID, day)
	c.Assert(err, qt.IsNil)
	c.Assert(first.Status, qt.Equals, model.AttendanceStatusPresent)

	second, err := repo.UpsertPresent(ctx, laborer.ID, project.ID, day)
	c.Assert(err, qt.IsNil)
	c.Assert(second.ID, qt.Equals, first.ID)

	// A present row is never downgraded by a later reset.
	created, err = repo.InsertIfMissing(ctx, laborer.ID, project.ID, day)
	c.Assert(err, qt.IsNil)
	c.Assert(created, qt.IsFalse)

	records, total, err := repo.ListForOwner(ctx, owner.ID, AttendanceFilter{}, Page{})
	c.Assert(err, qt.IsNil)
	c.Assert(total, qt.Equals, int64(1))
	c.Assert(records[0].Status, qt.Equals, model.AttendanceStatusPresent)

	stranger := testutil.CreateUser(t, database, "other@example.com")
	_, total, err = repo.ListForOwner(ctx, stranger.ID, AttendanceFilter{}, Page{})
	c.Assert(err, qt.IsNil)
	c.Assert(total, qt.Equals, int64(0))
}

func TestIsUniqueViolation(t *testing.T) {
	c := qt.New(t)
	database := testutil.NewDB(t)
	users := NewUserRepository(database)

	testutil.CreateUser(t, database, "pm@example.com")
	err := users.Create(context.Background(), &model.User{Email: "pm@example.com", PasswordHash: "x"})
	c.Assert(err, qt.Not(qt.IsNil))
	c.Assert(IsUniqueViolation(err), qt.IsTrue)

	c.Assert(IsUniqueViolation(nil), qt.IsFalse)
	c.Assert(IsUniqueViolation(gorm.ErrRecordNotFound), qt.IsFalse)
	c.Assert(IsUniqueViolation(errors.New("boom")), qt.IsFalse)
}

func TestProjectScoping(t *testing.T) {
	c := qt.New(t)
	database := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewProjectRepository(database)

	owner := testutil.CreateUser(t, database, "pm@example.com")
	stranger := testutil.CreateUser(t, database, "other@example.com")
	project := testutil.CreateProject(t, database, owner, "Riverside")

	got, err := repo.GetForOwner(ctx, project.ID, owner.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Name, qt.Equals, "Riverside")

	_, err = repo.GetForOwner(ctx, project.ID, stranger.ID)
	c.Assert(err, qt.ErrorIs, gorm.ErrRecordNotFound)

	c.Assert(repo.Delete(ctx, project.ID), qt.IsNil)
	c.Assert(repo.Delete(ctx, project.ID), qt.ErrorIs, gorm.ErrRecordNotFound)
}
