package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderDefaults(t *testing.T) {
	ee := Newf("boom").Build()
	assert.Equal(t, ComponentUnknown, ee.Component)
	assert.Equal(t, CategoryGeneric, ee.Category)
	assert.Equal(t, "boom", ee.Error())
	assert.False(t, ee.Timestamp.IsZero())
}

func TestBuilderMetadata(t *testing.T) {
	ee := New(stderrors.New("open failed")).
		Component("parser").
		Category(CategoryFileIO).
		FileContext("/data/catver.ini").
		Context("line", 42).
		Build()

	assert.Equal(t, "parser", ee.Component)
	assert.Equal(t, "file-io", ee.GetCategory())

	ctx := ee.GetContext()
	require.NotNil(t, ctx)
	assert.Equal(t, "/data/catver.ini", ctx["file_path"])
	assert.Equal(t, 42, ctx["line"])

	// Mutating the copy must not touch the error.
	ctx["line"] = 0
	assert.Equal(t, 42, ee.GetContext()["line"])
}

func TestUnwrapPreservesSentinel(t *testing.T) {
	ee := New(fs.ErrNotExist).Category(CategoryNotFound).Build()
	assert.True(t, Is(ee, fs.ErrNotExist))
}

func TestHasCategory(t *testing.T) {
	ee := Newf("malformed element").Category(CategoryFileParsing).Build()
	assert.True(t, HasCategory(ee, CategoryFileParsing))
	assert.False(t, HasCategory(ee, CategoryNetwork))
	assert.False(t, HasCategory(stderrors.New("plain"), CategoryFileParsing))
}

func TestIsMatchesByCategory(t *testing.T) {
	a := Newf("a").Category(CategoryArchive).Build()
	b := Newf("b").Category(CategoryArchive).Build()
	c := Newf("c").Category(CategoryDatabase).Build()
	assert.True(t, stderrors.Is(a, b))
	assert.False(t, stderrors.Is(a, c))
}
