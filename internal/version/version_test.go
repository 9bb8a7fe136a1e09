package version

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// TestVersionStrings ensures Short and Full return consistent information.
func TestVersionStrings(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, Short())
	require.Contains(t, Full(), Short())
	require.Contains(t, Full(), Commit)
	require.Len(t, KV(), 6)
}

// TestVersionCommand runs the attached subcommand with and without --short.
func TestVersionCommand(t *testing.T) {
	t.Parallel()

	for args, want := range map[string]string{"version": Full(), "version --short": Short()} {
		root := &cobra.Command{Use: "test"}
		AttachCobraVersionCommand(root)

		var out bytes.Buffer

		root.SetOut(&out)
		root.SetArgs(strings.Fields(args))

		require.NoError(t, root.Execute())
		require.Equal(t, want+"\n", out.String())
	}
}
