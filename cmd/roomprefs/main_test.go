package main

import (
	"errors"
	"testing"

	"github.com/cristianoliveira/roomprefs/cmd"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestRunExitCodes(t *testing.T) {
	assert.Equal(t, 0, run(func() error { return nil }))
	assert.Equal(t, 1, run(func() error { return errors.New("boom") }))
}

func TestCommandsAreRegisteredOnRoot(t *testing.T) {
	for _, c := range []*cobra.Command{
		showCmd, getCmd, setCmd, resetCmd, editCmd, keysCmd, profilesCmd,
		exportCmd, importCmd, migrateCmd, verifyCmd, hooksCmd, versionCmd,
	} {
		assert.Same(t, cmd.RootCmd, c.Parent(), c.Name())
	}
}

func TestConstructorsRejectNilDependencies(t *testing.T) {
	assert.Panics(t, func() { NewShowCmd(nil) })
	assert.Panics(t, func() { NewGetCmd(nil) })
	assert.Panics(t, func() { NewSetCmd(nil) })
	assert.Panics(t, func() { NewResetCmd(nil, confirmReset) })
	assert.Panics(t, func() { NewResetCmd(newMemorySessions(), nil) })
	assert.Panics(t, func() { NewEditCmd(newMemorySessions(), nil) })
	assert.Panics(t, func() { NewMigrateCmd(nil) })
	assert.Panics(t, func() { NewHooksCmd(nil) })
	assert.Panics(t, func() { NewVersionCmd(nil) })
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, NewVersionCmd(func() string { return "9.9.9" }))
	assert.NoError(t, err)
	assert.Equal(t, "roomprefs version 9.9.9\n", out)
}

func TestVersionCommandJSON(t *testing.T) {
	out, err := execute(t, NewVersionCmd(func() string { return "9.9.9" }), "--json")
	assert.NoError(t, err)
	assert.Contains(t, out, `"version": "9.9.9"`)
	assert.Contains(t, out, `"go_version": "go`)
	assert.Contains(t, out, `"platform": `)
}
