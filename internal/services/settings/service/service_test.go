package service

import (
	"context"
	"testing"

	perr "bulkdate/internal/platform/errors"
	"bulkdate/internal/platform/store/storetest"
	"bulkdate/internal/services/settings/domain"
	"bulkdate/internal/services/settings/repo"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSvc(t *testing.T) *Svc {
	t.Helper()
	st := storetest.Open(t, repo.Migrations...)
	return New(st.DB, repo.NewSQL(), zerolog.Nop())
}

func ptr[T any](v T) *T { return &v }

func TestNew_PanicsOnNilDeps(t *testing.T) {
	assert.Panics(t, func() { New(nil, repo.NewSQL(), zerolog.Nop()) })
	st := storetest.Open(t)
	assert.Panics(t, func() { New(st.DB, nil, zerolog.Nop()) })
}

func TestActivate_SeedsOnce(t *testing.T) {
	s := newSvc(t)
	ctx := context.Background()

	added, err := s.Activate(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{domain.OptHistoryEnabled, domain.OptHistoryRetention, domain.OptTabs}, added)

	_, err = s.Update(ctx, domain.UpdateInput{RetentionDays: 7})
	require.NoError(t, err)

	added, err = s.Activate(ctx)
	require.NoError(t, err)
	assert.Empty(t, added)

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, got.RetentionDays, "activate must not overwrite existing options")
}

func TestGet_DefaultsWhenEmpty(t *testing.T) {
	s := newSvc(t)
	got, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Defaults(), got)
}

func TestGet_InvalidValuesFallBack(t *testing.T) {
	s := newSvc(t)
	ctx := context.Background()
	require.NoError(t, s.Repo.Set(ctx, domain.OptHistoryRetention, "45"))
	require.NoError(t, s.Repo.Set(ctx, domain.OptTabs, "{not json"))
	require.NoError(t, s.Repo.Set(ctx, domain.OptHistoryEnabled, "0"))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.False(t, got.HistoryEnabled)
	assert.Equal(t, domain.DefaultRetention, got.RetentionDays)
	assert.Equal(t, domain.DefaultTabs(), got.Tabs)
}

func TestUpdate(t *testing.T) {
	s := newSvc(t)
	ctx := context.Background()

	got, err := s.Update(ctx, domain.UpdateInput{HistoryEnabled: ptr(false), RetentionDays: 60})
	require.NoError(t, err)
	assert.False(t, got.HistoryEnabled)
	assert.Equal(t, 60, got.RetentionDays)

	// zero retention leaves it alone
	got, err = s.Update(ctx, domain.UpdateInput{HistoryEnabled: ptr(true)})
	require.NoError(t, err)
	assert.True(t, got.HistoryEnabled)
	assert.Equal(t, 60, got.RetentionDays)

	_, err = s.Update(ctx, domain.UpdateInput{RetentionDays: 90})
	assert.True(t, perr.IsCode(err, perr.ErrorCodeInvalidArgument), "got %v", err)
}

func TestToggleTab(t *testing.T) {
	s := newSvc(t)
	ctx := context.Background()
	_, err := s.Activate(ctx)
	require.NoError(t, err)

	res, err := s.ToggleTab(ctx, domain.ToggleInput{Tab: "Posts", Enabled: false})
	require.NoError(t, err)
	assert.Equal(t, "posts", res.Tab)
	assert.Equal(t, "The Posts tab has been disabled.", res.Message)

	res, err = s.ToggleTab(ctx, domain.ToggleInput{Tab: "book_review", Enabled: false})
	require.NoError(t, err)
	assert.Equal(t, "The Book Review tab has been disabled.", res.Message)

	res, err = s.ToggleTab(ctx, domain.ToggleInput{Tab: "posts", Enabled: true})
	require.NoError(t, err)
	assert.Equal(t, "The Posts tab has been enabled.", res.Message)

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.True(t, got.TabEnabled("posts"))
	assert.False(t, got.TabEnabled("book_review"))
	assert.True(t, got.TabEnabled("pages"))

	_, err = s.ToggleTab(ctx, domain.ToggleInput{Tab: "!!"})
	assert.True(t, perr.IsCode(err, perr.ErrorCodeInvalidArgument), "got %v", err)
}
