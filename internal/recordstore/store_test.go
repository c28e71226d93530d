package recordstore

import (
	"context"
	"testing"
	"time"

	"investorparser/internal/profile"

	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	database, err := Config{File: ":memory:"}.OpenDB()
	require.NoError(t, err)
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	store := NewStore(database)
	require.NoError(t, store.Migrate(ctx))
	// migrating twice is harmless
	require.NoError(t, store.Migrate(ctx))

	{
		records, err := store.All(ctx)
		require.NoError(t, err)
		require.Len(t, records, 0)

		_, found, err := store.Get(ctx, "nobody.html")
		require.NoError(t, err)
		require.False(t, found)
	}

	first, err := profile.Parse(`<h1 class="f3 f1-ns mv1">Zed Quinn</h1>`, "zed.html")
	require.NoError(t, err)
	second, err := profile.Parse(`<h1 class="f3 f1-ns mv1">Abe Lin</h1>`, "abe.html")
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, first, second))

	{
		rec, found, err := store.Get(ctx, "zed.html")
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, "Zed Quinn", rec.Name)
		require.Equal(t, profile.METHOD_HEURISTIC, rec.ExtractionMethod)
	}

	renamed := first
	renamed.Name = "Zed Q. Quinn"
	require.NoError(t, store.Put(ctx, renamed))

	records, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "abe.html", records[0].SourceFile)
	require.Equal(t, "zed.html", records[1].SourceFile)
	require.Equal(t, "Zed Q. Quinn", records[1].Name)
}

func TestConfigOpenDB(t *testing.T) {
	_, err := Config{}.OpenDB()
	require.Error(t, err)
	require.False(t, Config{}.Enabled())
	require.True(t, Config{File: "records.db"}.Enabled())
}
