package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dhamidi/src2abs/abstraction"
	"github.com/dhamidi/src2abs/abstractor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/xxh3"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func sampleTree(t *testing.T) string {
	return writeTree(t, map[string]string{
		"src/A.java":      "class A { int x; }",
		"src/b/B.java":    "class B { int y; }",
		"src/C.java":      "class C { String s = \"hi\"; }",
		"src/Broken.java": "public class {",
		"gen/Gen.java":    "class Gen { int z; }",
		"README.md":       "# readme",
		"src/notes.txt":   "class NotJava {}",
	})
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	root := sampleTree(t)

	files, err := Discover(root, []string{"**.java"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"gen/Gen.java", "src/A.java", "src/Broken.java", "src/C.java", "src/b/B.java"}, files)

	files, err = Discover(root, []string{"**.java"}, []string{"gen/**", "**/Broken.java"})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/A.java", "src/C.java", "src/b/B.java"}, files)
}

func TestDiscover_BadPattern(t *testing.T) {
	t.Parallel()

	_, err := Discover(t.TempDir(), []string{"[a-"}, nil)
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	t.Parallel()

	root := sampleTree(t)
	out := t.TempDir()

	var calls []string
	runner := New(WithProgress(func(done, total int, f FileResult) {
		assert.Equal(t, 4, total)
		assert.LessOrEqual(t, done, total)
		calls = append(calls, f.Path)
	}))

	report, err := runner.Run(context.Background(), Request{
		Root:    root,
		OutDir:  out,
		Include: []string{"src/**.java"},
		Workers: 2,
	})
	require.NoError(t, err)

	assert.Len(t, calls, 4)
	require.Len(t, report.Files, 4)
	assert.Equal(t, 3, report.Completed())
	assert.Equal(t, 1, report.Failed())

	byPath := make(map[string]FileResult)
	for _, f := range report.Files {
		byPath[f.Path] = f
	}
	assert.Equal(t, StatusFailed, byPath["src/Broken.java"].Status)
	assert.Contains(t, byPath["src/Broken.java"].Error, "parse java source")
	assert.Equal(t, "class VAR_1 { int VAR_2 ; }", byPath["src/A.java"].Result.Text)

	assert.Equal(t, [][]string{{"src/A.java", "src/b/B.java"}}, report.Clones)

	text, err := os.ReadFile(filepath.Join(out, "src", "b", "B.java"+OutputExt))
	require.NoError(t, err)
	assert.Equal(t, "class VAR_1 { int VAR_2 ; }", string(text))
	assert.FileExists(t, filepath.Join(out, "src", "b", "B.java"+OutputExt+abstractor.SidecarExt))
	assert.NoFileExists(t, filepath.Join(out, "src", "Broken.java"+OutputExt))
}

func TestRun_NoOutput(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"One.java": "class One { void run() { go(1); } }",
		"Two.java": "class Two { void run() { go(2, 3); } }",
	})

	report, err := New().Run(context.Background(), Request{Root: root, Include: []string{"**.java"}})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Completed())
	assert.Empty(t, report.Clones)
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRun_IdiomsApplyToEveryFile(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"A.java": "class A { String s; }",
	})

	report, err := New(WithAbstractorOptions(abstractor.WithIdioms(idioms("String")))).
		Run(context.Background(), Request{Root: root, Include: []string{"**.java"}, Workers: 1})
	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	assert.Equal(t, "class VAR_1 { String VAR_2 ; }", report.Files[0].Result.Text)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	root := sampleTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Run(ctx, Request{Root: root, Include: []string{"**.java"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCloneGroups(t *testing.T) {
	t.Parallel()

	files := []FileResult{
		completed("z/One.java", "a"),
		completed("b/Two.java", "b"),
		completed("a/Three.java", "a"),
		completed("c/Four.java", "b"),
		completed("d/Five.java", "c"),
		{Path: "e/Six.java", Status: StatusFailed},
	}

	assert.Equal(t, [][]string{
		{"a/Three.java", "z/One.java"},
		{"b/Two.java", "c/Four.java"},
	}, cloneGroups(files))
}

func idioms(items ...string) abstraction.Set {
	return abstraction.NewSet(items...)
}

func completed(path, text string) FileResult {
	return FileResult{
		Path:   path,
		Status: StatusCompleted,
		Result: &abstraction.Result{Text: text},
		Hash:   xxh3.HashString(text),
	}
}
