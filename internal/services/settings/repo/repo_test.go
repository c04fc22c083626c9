package repo

import (
	"context"
	"testing"

	"bulkdate/internal/platform/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_SetAndAll(t *testing.T) {
	st := storetest.Open(t, Migrations...)
	r := NewSQL().Bind(st.DB)
	ctx := context.Background()

	all, err := r.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, r.Set(ctx, "history_enabled", "1"))
	require.NoError(t, r.Set(ctx, "history_enabled", "0"))
	require.NoError(t, r.Set(ctx, "history_retention", "14"))

	all, err = r.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"history_enabled": "0", "history_retention": "14"}, all)
}

func TestOptions_AddIfMissing(t *testing.T) {
	st := storetest.Open(t, Migrations...)
	r := NewSQL().Bind(st.DB)
	ctx := context.Background()

	added, err := r.AddIfMissing(ctx, "tabs", `{"posts":true}`)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = r.AddIfMissing(ctx, "tabs", `{}`)
	require.NoError(t, err)
	assert.False(t, added)

	all, err := r.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"posts":true}`, all["tabs"])
}
