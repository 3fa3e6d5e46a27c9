package slurm

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/slurmchain/internal/chain"
)

func TestDryRunSubmit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	runDir := t.TempDir()
	sub := NewDryRun(runDir, Options{Partition: "debug"})
	nodes := []*chain.Node{
		{Index: 0, Payload: chain.CommandPayload([]string{"echo", "a"})},
		{Index: 1, Payload: chain.CommandPayload([]string{"echo", "b"})},
	}

	// --- Act ---
	id0, err := sub.Submit(context.Background(), nodes[0], "")
	require.NoError(t, err)
	id1, err := sub.Submit(context.Background(), nodes[1], "afterok:"+id0)
	require.NoError(t, err)

	// --- Assert ---
	assert.Equal(t, "1000000", id0)
	assert.Equal(t, "1000001", id1)

	// The wrapper scripts are written for inspection even though sbatch was
	// never invoked.
	for _, name := range []string{"job-000.sh", "job-001.sh"} {
		content, err := os.ReadFile(filepath.Join(runDir, name))
		require.NoError(t, err)
		assert.Contains(t, string(content), "#SBATCH --partition=debug")
	}
}
