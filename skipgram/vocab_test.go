package skipgram_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yashubustudio/codepairs/skipgram"
)

func entriesFor(codes ...string) []skipgram.VocabularyEntry {
	out := make([]skipgram.VocabularyEntry, len(codes))
	for i, c := range codes {
		out[i] = skipgram.VocabularyEntry{Code: c, Description: "desc " + c}
	}
	return out
}

func TestBuildVocabulary_Bijection(t *testing.T) {
	t.Parallel()

	codes := []string{"401.9", "250.0", "V30.00", "E880", "0010"}
	dict, inverse, err := skipgram.BuildVocabulary(entriesFor(codes...), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, len(codes), dict.Len())
	assert.Equal(t, len(codes), dict.Unique())
	assert.Empty(t, dict.Duplicates())
	require.Len(t, inverse, len(codes))
	seen := make(map[int]bool)
	for i, code := range codes {
		idx, ok := dict.Index(code)
		require.True(t, ok)
		assert.Equal(t, i, idx)
		assert.Equal(t, code, inverse[idx])
		back, ok := dict.Code(idx)
		require.True(t, ok)
		assert.Equal(t, code, back)
		seen[idx] = true
	}
	assert.Len(t, seen, len(codes), "indices must be distinct")

	_, ok := dict.Code(len(codes))
	assert.False(t, ok)
	_, ok = dict.Code(-1)
	assert.False(t, ok)
}

func TestBuildVocabulary_WritesFileAndCreatesDir(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "visualization", "nested")
	_, _, err := skipgram.BuildVocabulary(entriesFor("401.9", "250.0"), target)
	require.NoError(t, err)

	assert.Equal(t, []string{"401.9", "250.0"}, readLines(t, filepath.Join(target, skipgram.VocabFileName)))

	leftovers, err := filepath.Glob(filepath.Join(target, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers, "temp files must be renamed away")
}

func TestBuildVocabulary_IdempotentIntoExistingDir(t *testing.T) {
	t.Parallel()

	target := t.TempDir()
	entries := entriesFor("401.9", "250.0", "V01")

	_, _, err := skipgram.BuildVocabulary(entries, target)
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(target, skipgram.VocabFileName))
	require.NoError(t, err)

	_, _, err = skipgram.BuildVocabulary(entries, target)
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(target, skipgram.VocabFileName))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestBuildVocabulary_OverwritesLongerFile(t *testing.T) {
	t.Parallel()

	target := t.TempDir()
	writeFile(t, target, skipgram.VocabFileName, "a\nb\nc\nd\n")

	_, _, err := skipgram.BuildVocabulary(entriesFor("x"), target)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, readLines(t, filepath.Join(target, skipgram.VocabFileName)))
}

func TestBuildVocabulary_DuplicateCodes(t *testing.T) {
	t.Parallel()

	target := t.TempDir()
	dict, inverse, err := skipgram.BuildVocabulary(entriesFor("A", "B", "A"), target)
	require.NoError(t, err)

	idx, ok := dict.Index("A")
	require.True(t, ok)
	assert.Equal(t, 2, idx, "later occurrence overwrites")
	assert.Equal(t, 3, dict.Len())
	assert.Equal(t, 2, dict.Unique())
	assert.Equal(t, []string{"A"}, dict.Duplicates())
	assert.Equal(t, map[int]string{1: "B", 2: "A"}, inverse)
	assert.Equal(t, []string{"A", "B", "A"}, readLines(t, filepath.Join(target, skipgram.VocabFileName)))
}

func TestBuildVocabulary_TargetIsFile(t *testing.T) {
	t.Parallel()

	blocker := writeFile(t, t.TempDir(), "blocker", "x")
	_, _, err := skipgram.BuildVocabulary(entriesFor("A"), blocker)
	require.Error(t, err)
}

func TestWriteDescriptions(t *testing.T) {
	t.Parallel()

	target := t.TempDir()
	entries := []skipgram.VocabularyEntry{
		{Code: "401.9", Description: "Hypertension"},
		{Code: "V01", Description: ""},
		{Code: "250.0", Description: "Diabetes"},
	}
	require.NoError(t, skipgram.WriteDescriptions(skipgram.Descriptions(entries), target))

	assert.Equal(t, []string{"Hypertension", "", "Diabetes"}, readLines(t, filepath.Join(target, skipgram.DescriptionsFileName)))
}

func TestNewDictionary_Empty(t *testing.T) {
	t.Parallel()

	dict := skipgram.NewDictionary(nil)
	assert.Equal(t, 0, dict.Len())
	assert.Empty(t, dict.Inverse())
	_, ok := dict.Index("401.9")
	assert.False(t, ok)
}
