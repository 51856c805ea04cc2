package rename

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/sanename/internal/sanitize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
	}
	return dir
}

func targets(p *Plan) map[string]Entry {
	out := make(map[string]Entry, len(p.Entries))
	for _, e := range p.Entries {
		out[e.From] = e
	}
	return out
}

func Test_NewPlan_SanitizesEveryFile(t *testing.T) {
	dir := makeDir(t, "Café Müller.JPG", "notes.txt", "Report 2024.PDF")

	plan, err := NewPlan(dir, Options{})
	require.NoError(t, err)

	assert.Equal(t, dir, plan.Dir)
	assert.Equal(t, []Entry{
		{From: "Café Müller.JPG", To: "cafe-mueller.jpg", Action: ActionRename},
		{From: "Report 2024.PDF", To: "report-2024.pdf", Action: ActionRename},
		{From: "notes.txt", To: "notes.txt", Action: ActionUnchanged},
	}, plan.Entries)
	assert.Equal(t, 2, plan.Pending())
	assert.Empty(t, plan.Skipped())
	assert.False(t, plan.Overwrite)
}

func Test_NewPlan_UsesConfiguredSanitizer(t *testing.T) {
	dir := makeDir(t, "Café Müller.JPG")

	cfg := sanitize.DefaultConfig()
	cfg.Separator = "_"
	s, err := sanitize.New(cfg)
	require.NoError(t, err)

	plan, err := NewPlan(dir, Options{Sanitizer: s})
	require.NoError(t, err)
	assert.Equal(t, "cafe_mueller.jpg", plan.Entries[0].To)
}

func Test_ListFiles_OnlyRegularFiles(t *testing.T) {
	dir := makeDir(t, "b.txt", "A.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Sub Dir"), 0755))
	require.NoError(t, os.Symlink(filepath.Join(dir, "b.txt"), filepath.Join(dir, "Link.txt")))

	files, err := ListFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"A.txt", "b.txt"}, files)
}

func Test_ListFiles_Errors(t *testing.T) {
	t.Run("not a directory", func(t *testing.T) {
		dir := makeDir(t, "file.txt")
		_, err := ListFiles(filepath.Join(dir, "file.txt"))
		assert.ErrorIs(t, err, ErrNotDirectory)

		var pathErr *PathError
		require.ErrorAs(t, err, &pathErr)
		assert.Equal(t, "list", pathErr.Op)
	})

	t.Run("no files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "only-a-dir"), 0755))
		_, err := ListFiles(dir)
		assert.ErrorIs(t, err, ErrNoFiles)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := ListFiles(filepath.Join(t.TempDir(), "missing"))
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func Test_NewPlan_DistinctNamesDoNotCollide(t *testing.T) {
	dir := makeDir(t, "Photo #1.png", "Photo #2.png")

	plan, err := NewPlan(dir, Options{})
	require.NoError(t, err)

	got := targets(plan)
	assert.Equal(t, "photo-1.png", got["Photo #1.png"].To)
	assert.Equal(t, "photo-2.png", got["Photo #2.png"].To)
}

func Test_NewPlan_CollisionPolicies(t *testing.T) {
	// "Photo #1.png" sorts first and claims photo-1.png.
	names := []string{"Photo #1.png", "Photo 1.png"}

	t.Run("fail", func(t *testing.T) {
		dir := makeDir(t, names...)
		_, err := NewPlan(dir, Options{Collision: CollisionFail})
		require.ErrorIs(t, err, ErrCollision)

		var collErr *CollisionError
		require.ErrorAs(t, err, &collErr)
		assert.Equal(t, []Conflict{{Source: "Photo 1.png", Target: "photo-1.png", Holder: "Photo #1.png"}}, collErr.Conflicts)
		assert.Contains(t, err.Error(), `"Photo 1.png" -> "photo-1.png"`)
	})

	t.Run("default is fail", func(t *testing.T) {
		dir := makeDir(t, names...)
		_, err := NewPlan(dir, Options{})
		assert.ErrorIs(t, err, ErrCollision)
	})

	t.Run("skip", func(t *testing.T) {
		dir := makeDir(t, names...)
		plan, err := NewPlan(dir, Options{Collision: CollisionSkip})
		require.NoError(t, err)

		got := targets(plan)
		assert.Equal(t, ActionRename, got["Photo #1.png"].Action)
		assert.Equal(t, ActionSkip, got["Photo 1.png"].Action)
		assert.Contains(t, got["Photo 1.png"].Reason, "Photo #1.png")
		assert.Len(t, plan.Skipped(), 1)
		assert.Equal(t, 1, plan.Pending())
	})

	t.Run("suffix", func(t *testing.T) {
		dir := makeDir(t, append(names, "photo-1-2.png")...)
		plan, err := NewPlan(dir, Options{Collision: CollisionSuffix})
		require.NoError(t, err)

		got := targets(plan)
		assert.Equal(t, "photo-1.png", got["Photo #1.png"].To)
		assert.Equal(t, "photo-1-3.png", got["Photo 1.png"].To)
	})

	t.Run("hash", func(t *testing.T) {
		dir := makeDir(t, names...)
		plan, err := NewPlan(dir, Options{Collision: CollisionHash})
		require.NoError(t, err)

		got := targets(plan)
		assert.Equal(t, "photo-1-"+hashSuffix("Photo 1.png")+".png", got["Photo 1.png"].To)
		assert.Len(t, hashSuffix("Photo 1.png"), hashSuffixLen)
	})

	t.Run("empty base name keeps extension", func(t *testing.T) {
		tests := []struct {
			policy CollisionPolicy
			want   string
		}{
			{CollisionSuffix, "2.txt"},
			{CollisionHash, hashSuffix("???.txt") + ".txt"},
		}

		for _, tt := range tests {
			dir := makeDir(t, "!!!.txt", "???.txt")
			plan, err := NewPlan(dir, Options{Collision: tt.policy})
			require.NoError(t, err)

			got := targets(plan)
			assert.Equal(t, ".txt", got["!!!.txt"].To, "policy %s", tt.policy)
			assert.Equal(t, tt.want, got["???.txt"].To, "policy %s", tt.policy)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		dir := makeDir(t, names...)
		plan, err := NewPlan(dir, Options{Collision: CollisionOverwrite})
		require.NoError(t, err)

		assert.True(t, plan.Overwrite)
		for _, e := range plan.Entries {
			assert.Equal(t, "photo-1.png", e.To)
			assert.Equal(t, ActionRename, e.Action)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		dir := makeDir(t, names...)
		_, err := NewPlan(dir, Options{Collision: "rename-harder"})
		assert.ErrorIs(t, err, ErrUnknownPolicy)
	})
}

func Test_NewPlan_ExistingEntriesAreTaken(t *testing.T) {
	dir := makeDir(t, "Report.PDF", "report.pdf", "NOTES")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "notes"), 0755))

	_, err := NewPlan(dir, Options{})

	var collErr *CollisionError
	require.ErrorAs(t, err, &collErr)
	assert.ElementsMatch(t, []Conflict{
		{Source: "NOTES", Target: "notes", Holder: "notes"},
		{Source: "Report.PDF", Target: "report.pdf", Holder: "report.pdf"},
	}, collErr.Conflicts)
}

func Test_NewPlan_SkipsUnusableNames(t *testing.T) {
	dir := makeDir(t, "!!!", ". .", "fine.txt")

	plan, err := NewPlan(dir, Options{})
	require.NoError(t, err)

	got := targets(plan)
	assert.Equal(t, ActionSkip, got["!!!"].Action)
	assert.Equal(t, "", got["!!!"].To)
	assert.Equal(t, ActionSkip, got[". ."].Action)
	assert.Equal(t, "..", got[". ."].To)
	assert.Equal(t, ActionUnchanged, got["fine.txt"].Action)
	assert.Len(t, plan.Skipped(), 2)
}

func Test_NewPlan_EmptyBaseKeepsExtension(t *testing.T) {
	dir := makeDir(t, "!!!.txt")

	plan, err := NewPlan(dir, Options{})
	require.NoError(t, err)
	assert.Equal(t, Entry{From: "!!!.txt", To: ".txt", Action: ActionRename}, plan.Entries[0])
}

func Test_NewPlan_TrimsPrefixAndSuffix(t *testing.T) {
	dir := makeDir(t, "IMG_001 Beach.JPG", "Notes Copy.txt")

	plan, err := NewPlan(dir, Options{TrimPrefix: "IMG_", TrimSuffix: "-copy"})
	require.NoError(t, err)

	got := targets(plan)
	assert.Equal(t, "001-beach.jpg", got["IMG_001 Beach.JPG"].To)
	assert.Equal(t, "notes.txt", got["Notes Copy.txt"].To)
}

func Test_NewPlan_TrimNeverEmptiesBaseName(t *testing.T) {
	dir := makeDir(t, "IMG.jpg", "Beach.PNG", "!!!.gif")

	plan, err := NewPlan(dir, Options{TrimPrefix: "img", TrimSuffix: "beach"})
	require.NoError(t, err)

	got := targets(plan)
	assert.Equal(t, "img.jpg", got["IMG.jpg"].To)
	assert.Equal(t, "beach.png", got["Beach.PNG"].To)
	assert.Equal(t, ".gif", got["!!!.gif"].To)
}

func Test_ParseCollisionPolicy(t *testing.T) {
	tests := []struct {
		input string
		want  CollisionPolicy
		err   error
	}{
		{"", CollisionFail, nil},
		{"FAIL", CollisionFail, nil},
		{" suffix ", CollisionSuffix, nil},
		{"hash", CollisionHash, nil},
		{"overwrite", CollisionOverwrite, nil},
		{"bogus", "", ErrUnknownPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCollisionPolicy(tt.input)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
