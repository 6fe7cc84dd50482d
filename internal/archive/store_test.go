// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/jira-digest/pkg/types"
)

// testStore opens an archive in a temp dir whose clock advances one minute
// per Save.
func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.ArchiveConfig{Dir: filepath.Join(t.TempDir(), "archive")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return s
}

func ticket(key, summary, status string) types.Ticket {
	return types.Ticket{
		Key:                key,
		Summary:            summary,
		Status:             status,
		Labels:             []string{},
		Components:         []string{},
		FixVersions:        []string{},
		Requirements:       []string{},
		AcceptanceCriteria: []string{},
		Sprints:            []types.Sprint{},
	}
}

func keys(tickets []types.ArchivedTicket) []string {
	out := make([]string, len(tickets))
	for i, t := range tickets {
		out[i] = t.Key
	}
	return out
}

func TestOpen_CreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "archive")
	s, err := Open(types.ArchiveConfig{Dir: dir})
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, dir, s.Dir())
	assert.Equal(t, types.DefaultArchiveResults, s.maxResults)
	_, err = os.Stat(filepath.Join(dir, dbFile))
	assert.NoError(t, err)
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(types.ArchiveConfig{Dir: dir})
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, ticket("A-1", "first", "Open")))
	require.NoError(t, s.Close())

	s, err = Open(types.ArchiveConfig{Dir: dir})
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(ctx, "A-1")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Summary)
}

func TestSaveAndGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	in := ticket("SHOP-42", "Checkout keeps the cart", "In Progress")
	in.Description = "Requirements\n- Empty the cart"
	in.Requirements = []string{"Empty the cart"}
	in.Epic = &types.Epic{Key: "SHOP-1", Source: types.EpicFromParent}
	in.Created = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.Save(ctx, in))

	got, err := s.Get(ctx, "SHOP-42")
	require.NoError(t, err)
	assert.Equal(t, in.Summary, got.Summary)
	assert.Equal(t, in.Requirements, got.Requirements)
	assert.Equal(t, in.Epic, got.Epic)
	assert.True(t, in.Created.Equal(got.Created))
	assert.Equal(t, time.Date(2025, 3, 1, 12, 1, 0, 0, time.UTC), got.ArchivedAt)
}

func TestSave_ReplacesSnapshot(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, ticket("A-1", "old", "Open")))
	require.NoError(t, s.Save(ctx, ticket("A-1", "new", "Done")))

	got, err := s.Get(ctx, "A-1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Summary)
	assert.Equal(t, "Done", got.Status)
	assert.Equal(t, time.Date(2025, 3, 1, 12, 2, 0, 0, time.UTC), got.ArchivedAt)

	all, err := s.List(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSave_NoKey(t *testing.T) {
	s := testStore(t)
	assert.Error(t, s.Save(context.Background(), types.Ticket{Summary: "orphan"}))
}

func TestGet_NotFound(t *testing.T) {
	s := testStore(t)
	_, err := s.Get(context.Background(), "NOPE-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	for _, tk := range []types.Ticket{
		ticket("SHOP-1", "a", "Open"),
		ticket("PAY-7", "b", "Done"),
		ticket("SHOP-2", "c", "done"),
		ticket("SHOP-3", "d", "Open"),
	} {
		require.NoError(t, s.Save(ctx, tk))
	}

	tests := []struct {
		name string
		opts ListOptions
		want []string
	}{
		{"all newest first", ListOptions{}, []string{"SHOP-3", "SHOP-2", "PAY-7", "SHOP-1"}},
		{"project", ListOptions{Project: "shop"}, []string{"SHOP-3", "SHOP-2", "SHOP-1"}},
		{"status ignores case", ListOptions{Status: "DONE"}, []string{"SHOP-2", "PAY-7"}},
		{"project and status", ListOptions{Project: "SHOP", Status: "open"}, []string{"SHOP-3", "SHOP-1"}},
		{"limit", ListOptions{Limit: 2}, []string{"SHOP-3", "SHOP-2"}},
		{"no match", ListOptions{Project: "OPS"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(ctx, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, keys(got))
		})
	}
}

func TestSearch(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	a := ticket("A-1", "Checkout keeps the cart", "Open")
	b := ticket("A-2", "Login page", "Open")
	b.AcceptanceCriteria = []string{"Cart badge shows 0"}
	c := ticket("A-3", "Discount of 100% off", "Open")
	c.Description = "apply_code handles promo"
	for _, tk := range []types.Ticket{a, b, c} {
		require.NoError(t, s.Save(ctx, tk))
	}

	tests := []struct {
		text string
		want []string
	}{
		{"CART", []string{"A-2", "A-1"}},
		{"login", []string{"A-2"}},
		{"100%", []string{"A-3"}},
		{"y_c", []string{"A-3"}},
		{"%", []string{"A-3"}},
		{"missing", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := s.Search(ctx, tt.text, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, keys(got))
		})
	}

	_, err := s.Search(ctx, "  ", 0)
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, ticket("A-1", "x", "Open")))

	require.NoError(t, s.Delete(ctx, "A-1"))
	_, err := s.Get(ctx, "A-1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "A-1"), ErrNotFound)
}

func TestExport(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, ticket("A-1", "first", "Open")))
	require.NoError(t, s.Save(ctx, ticket("B-1", "second", "Done")))

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, s.Export(ctx, &buf, types.OutputJSON, ListOptions{}))
		var got []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "B-1", got[0]["key"])
		assert.Equal(t, "first", got[1]["summary"])
		assert.Contains(t, got[0], "archived_at")
	})

	t.Run("yaml with filter", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, s.Export(ctx, &buf, types.OutputYAML, ListOptions{Project: "A"}))
		var got []map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "A-1", got[0]["key"])
		assert.Equal(t, "first", got[0]["summary"])
	})

	t.Run("text rejected", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, s.Export(ctx, &buf, types.OutputText, ListOptions{}))
	})
}

func TestProject(t *testing.T) {
	assert.Equal(t, "SHOP", project("SHOP-42"))
	assert.Equal(t, "MY_TEAM", project("my_team-7"))
	assert.Equal(t, "", project("10042"))
}
