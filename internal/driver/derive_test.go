package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/driver"
	"github.com/elk-cloner/proc-macro-workshop/internal/testkit"
)

const deriveSrc = `package cmd

//macrokit:derive Builder
type Command struct {
	Name string
	Args []string ` + "`builder:\"each=arg\"`" + `
}
`

func TestDerive(t *testing.T) {
	dir := t.TempDir()
	cmd := writeFile(t, dir, "cmd.go", deriveSrc)
	plain := writeFile(t, dir, "plain.go", "package cmd\n\ntype Plain struct{}\n")
	writeFile(t, dir, "old_derive.go", "package cmd\n")
	bad := writeFile(t, dir, "bad.go", "package cmd\n\n//macrokit:derive Nope\ntype X struct{}\n")

	files, err := driver.ListGoSources([]string{dir}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{bad, cmd, plain}, files)

	rec := &recorder{}
	opts := driver.DefaultOptions()
	opts.Progress = rec
	_, results, err := driver.Derive(context.Background(), files, opts, 0)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, results[0].Failed())
	assert.Equal(t, []diag.Code{diag.DrvUnknownDerive}, testkit.Codes(results[0].Bag))

	got := results[1]
	require.False(t, got.Failed(), "%v", got.Bag.Items())
	assert.Equal(t, filepath.Join(dir, "cmd_derive.go"), got.OutPath)
	assert.Equal(t, []string{"Command"}, got.Result.Targets)
	assert.Contains(t, string(got.Result.Code), "func NewCommandBuilder() *CommandBuilder")

	assert.Nil(t, results[2].Result.Code)

	for i := range results {
		require.NoError(t, results[i].Write(rec))
	}
	assert.FileExists(t, got.OutPath)
	assert.NoFileExists(t, filepath.Join(dir, "plain_derive.go"))
	assert.NoFileExists(t, filepath.Join(dir, "bad_derive.go"))

	data, err := os.ReadFile(got.OutPath)
	require.NoError(t, err)
	assert.Equal(t, got.Result.Code, data)
}

func TestListGoSourcesMissing(t *testing.T) {
	_, err := driver.ListGoSources([]string{filepath.Join(t.TempDir(), "nope")}, "")
	require.Error(t, err)
}

func TestDeriveReportsSharedShapeOnce(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "emb.go", "package cmd\n\n//macrokit:derive Builder, CustomDebug\ntype T struct {\n\terror\n\tN int\n}\n")

	_, results, err := driver.Derive(context.Background(), []string{path}, driver.DefaultOptions(), 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Failed())
	assert.Equal(t, []diag.Code{diag.DrvUnsupportedShape}, testkit.Codes(results[0].Bag))
}
