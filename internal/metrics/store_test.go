package metrics_test

import (
	"testing"

	"github.com/mkjeldsen/rallyrank/internal/database"
	"github.com/mkjeldsen/rallyrank/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsStore(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	store := metrics.New(db)

	store.Increment("matches_logged")
	store.Increment("matches_logged")
	store.Add("recalc_skipped_records", 3)

	all, err := store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, 2, all["matches_logged"])
	assert.Equal(t, 3, all["recalc_skipped_records"])
}

func TestMetricsStoreEmpty(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	store := metrics.New(db)
	all, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}
