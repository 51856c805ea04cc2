package rename

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func Test_Apply_RenamesPendingEntries(t *testing.T) {
	dir := makeDir(t, "Café Müller.JPG", "notes.txt", "Straße 12.TXT")

	plan, err := NewPlan(dir, Options{})
	require.NoError(t, err)

	var progressed []string
	res, err := Apply(context.Background(), plan, ApplyOptions{
		OnProgress: func(e Entry) { progressed = append(progressed, e.To) },
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Renamed)
	assert.Empty(t, res.Failures)
	assert.Equal(t, []string{"cafe-mueller.jpg", "strasse-12.txt"}, progressed)

	files, err := ListFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"cafe-mueller.jpg", "notes.txt", "strasse-12.txt"}, files)
	assert.Equal(t, "Café Müller.JPG", readFile(t, dir, "cafe-mueller.jpg"))
}

func Test_Apply_RefusesTargetCreatedAfterPlanning(t *testing.T) {
	dir := makeDir(t, "A B.txt", "C D.txt")

	plan, err := NewPlan(dir, Options{})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a-b.txt"), []byte("late"), 0644))

	t.Run("stops by default", func(t *testing.T) {
		res, err := Apply(context.Background(), plan, ApplyOptions{})
		require.ErrorIs(t, err, ErrTargetExists)

		var pathErr *PathError
		require.ErrorAs(t, err, &pathErr)
		assert.Equal(t, "rename", pathErr.Op)
		assert.Equal(t, "A B.txt", pathErr.Path)

		assert.Equal(t, 0, res.Renamed)
		assert.Equal(t, "late", readFile(t, dir, "a-b.txt"))
		assert.Equal(t, "A B.txt", readFile(t, dir, "A B.txt"))
		assert.Equal(t, "C D.txt", readFile(t, dir, "C D.txt"))
	})

	t.Run("keeps going", func(t *testing.T) {
		var failed []string
		res, err := Apply(context.Background(), plan, ApplyOptions{
			KeepGoing: true,
			OnError:   func(e Entry, _ error) { failed = append(failed, e.From) },
		})
		require.NoError(t, err)

		assert.Equal(t, 1, res.Renamed)
		require.Len(t, res.Failures, 1)
		assert.ErrorIs(t, res.Failures[0].Err, ErrTargetExists)
		assert.Equal(t, []string{"A B.txt"}, failed)
		assert.Equal(t, "C D.txt", readFile(t, dir, "c-d.txt"))
	})
}

func Test_Apply_OverwriteReplacesTarget(t *testing.T) {
	dir := makeDir(t, "Photo #1.png", "Photo 1.png")

	plan, err := NewPlan(dir, Options{Collision: CollisionOverwrite})
	require.NoError(t, err)

	res, err := Apply(context.Background(), plan, ApplyOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Renamed)

	files, err := ListFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"photo-1.png"}, files)
	assert.Equal(t, "Photo 1.png", readFile(t, dir, "photo-1.png"))
}

func Test_Apply_SuffixKeepsBothFiles(t *testing.T) {
	dir := makeDir(t, "Photo #1.png", "Photo 1.png")

	plan, err := NewPlan(dir, Options{Collision: CollisionSuffix})
	require.NoError(t, err)

	_, err = Apply(context.Background(), plan, ApplyOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Photo #1.png", readFile(t, dir, "photo-1.png"))
	assert.Equal(t, "Photo 1.png", readFile(t, dir, "photo-1-2.png"))
}

func Test_Apply_StopsOnCancelledContext(t *testing.T) {
	dir := makeDir(t, "A B.txt")

	plan, err := NewPlan(dir, Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Apply(ctx, plan, ApplyOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, res.Renamed)
	assert.Equal(t, "A B.txt", readFile(t, dir, "A B.txt"))
}

func Test_Apply_MissingSource(t *testing.T) {
	dir := makeDir(t, "A B.txt")

	plan, err := NewPlan(dir, Options{})
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(dir, "A B.txt")))

	_, err = Apply(context.Background(), plan, ApplyOptions{})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
