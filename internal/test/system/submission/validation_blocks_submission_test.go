package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/slurmchain/internal/app"
	"github.com/vk/slurmchain/internal/chain"
	"github.com/vk/slurmchain/internal/testutil"
)

// TestLengthMismatchBlocksSubmission: a dependency file with the wrong line
// count fails validation before the scheduler is contacted even once.
func TestLengthMismatchBlocksSubmission(t *testing.T) {
	t.Parallel()

	batchPath := testutil.WriteFile(t, "cmds.txt", "echo a\necho b\necho c\n")
	depsPath := testutil.WriteFile(t, "deps.txt", "-\n0\n")
	fake := testutil.NewFakeSubmitter("10", "11", "12")

	_, err := testutil.RunApp(t, app.Config{
		BatchPath: batchPath,
		DepsPath:  depsPath,
	}, app.WithSubmitter(fake))

	require.Error(t, err)
	var verr *chain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, fake.Calls, "no submission may happen on a validation failure")
}

// TestForwardReferenceBlocksSubmission: an edge pointing at a later job is
// rejected with the offending index, before any submission.
func TestForwardReferenceBlocksSubmission(t *testing.T) {
	t.Parallel()

	batchPath := testutil.WriteFile(t, "cmds.txt", "echo a\necho b\necho c\n")
	depsPath := testutil.WriteFile(t, "deps.txt", "-\n2\n-\n")
	fake := testutil.NewFakeSubmitter("10", "11", "12")

	_, err := testutil.RunApp(t, app.Config{
		BatchPath: batchPath,
		DepsPath:  depsPath,
	}, app.WithSubmitter(fake))

	require.Error(t, err)
	var verr *chain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, verr.Line)
	assert.Empty(t, fake.Calls)
}

// TestMalformedDepsLineBlocksSubmission: a token that is not a job index is
// rejected at parse time.
func TestMalformedDepsLineBlocksSubmission(t *testing.T) {
	t.Parallel()

	batchPath := testutil.WriteFile(t, "cmds.txt", "echo a\necho b\n")
	depsPath := testutil.WriteFile(t, "deps.txt", "-\nzero\n")
	fake := testutil.NewFakeSubmitter("10", "11")

	_, err := testutil.RunApp(t, app.Config{
		BatchPath: batchPath,
		DepsPath:  depsPath,
	}, app.WithSubmitter(fake))

	require.Error(t, err)
	var verr *chain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), `"zero"`)
	assert.Empty(t, fake.Calls)
}
