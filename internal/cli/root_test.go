package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Commands(t *testing.T) {
	for _, name := range []string{"reset", "status", "today", "history", "detect", "recognize", "match", "migrate"} {
		cmd, _, err := RootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	status, _, err := RootCmd.Find([]string{"status"})
	require.NoError(t, err)
	assert.NotNil(t, status.Flags().Lookup("date"))
	assert.NotNil(t, status.Flags().Lookup("group"))
}

func TestRootCmd_HistoryRequiresIdentity(t *testing.T) {
	history, _, err := RootCmd.Find([]string{"history"})
	require.NoError(t, err)
	assert.Error(t, history.Args(history, nil))
	assert.NoError(t, history.Args(history, []string{"S001"}))
}
