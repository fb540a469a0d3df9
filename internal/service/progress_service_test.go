package service

import (
	"context"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/nurpe/sitetrack/internal/repository"
	"github.com/nurpe/sitetrack/internal/testutil"
)

func TestProgressLifecycle(t *testing.T) {
	c := qt.New(t)
	f := newFixture(t)
	ctx := context.Background()

	project := f.project(c, f.alice, "Riverside")
	photo := " photos/slab.jpg "
	first, err := f.progress.Create(ctx, f.alice, ProgressInput{
		ProjectID: project.ID,
		Date:      testutil.Date(2024, 3, 1),
		Summary:   "Foundation poured",
		PhotoRef:  &photo,
	})
	c.Assert(err, qt.IsNil)
	c.Assert(*first.PhotoRef, qt.Equals, "photos/slab.jpg")

	blank := "  "
	second, err := f.progress.Create(ctx, f.alice, ProgressInput{
		ProjectID: project.ID,
		Date:      testutil.Date(2024, 3, 4),
		Summary:   "Framing started",
		PhotoRef:  &blank,
	})
	c.Assert(err, qt.IsNil)
	c.Assert(second.PhotoRef, qt.IsNil)

	list, err := f.progress.List(ctx, f.alice, repository.ProgressFilter{ProjectID: &project.ID}, ListParams{})
	c.Assert(err, qt.IsNil)
	c.Assert(list.Total, qt.Equals, int64(2))
	c.Assert(list.Items[0].ID, qt.Equals, second.ID)

	updated, err := f.progress.Update(ctx, f.alice, first.ID, ProgressInput{
		ProjectID: project.ID,
		Date:      testutil.Date(2024, 3, 2),
		Summary:   "Foundation cured",
	})
	c.Assert(err, qt.IsNil)
	c.Assert(updated.Summary, qt.Equals, "Foundation cured")
	c.Assert(updated.PhotoRef, qt.IsNil)

	_, err = f.progress.Get(ctx, f.bob, first.ID)
	c.Assert(err, qt.ErrorIs, ErrNotFound)
	c.Assert(f.progress.Delete(ctx, f.alice, first.ID), qt.IsNil)
	_, err = f.progress.Get(ctx, f.alice, first.ID)
	c.Assert(err, qt.ErrorIs, ErrNotFound)
}

func TestProgressRejects(t *testing.T) {
	c := qt.New(t)
	f := newFixture(t)
	ctx := context.Background()

	project := f.project(c, f.alice, "Riverside")
	foreign := f.project(c, f.bob, "Tower")

	_, err := f.progress.Create(ctx, f.alice, ProgressInput{ProjectID: project.ID, Date: testutil.Date(2024, 3, 1), Summary: " "})
	c.Assert(err, qt.ErrorIs, ErrInvalidInput)

	long := strings.Repeat("x", 501)
	_, err = f.progress.Create(ctx, f.alice, ProgressInput{ProjectID: project.ID, Date: testutil.Date(2024, 3, 1), Summary: "ok", PhotoRef: &long})
	c.Assert(err, qt.ErrorIs, ErrInvalidInput)

	_, err = f.progress.Create(ctx, f.alice, ProgressInput{ProjectID: foreign.ID, Date: testutil.Date(2024, 3, 1), Summary: "ok"})
	c.Assert(err, qt.ErrorIs, ErrPermissionDenied)
}
