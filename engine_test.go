package malbolge_gen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineGeneratesAllTargets(t *testing.T) {
	engine := NewGenerationEngine(&GeneratorConfig{RandomSeed: 5}, 2)
	targets := []string{"Hi", "A", "Go"}
	results := engine.Run(context.Background(), targets)

	require.Len(t, results, len(targets))
	for i, res := range results {
		require.NoError(t, res.Err, "target %q", targets[i])
		assert.Equal(t, targets[i], res.Target)
		assert.Equal(t, targets[i], string(res.Result.MachineOutput))
	}
}

func TestEngineIsDeterministicAcrossWorkerCounts(t *testing.T) {
	targets := []string{"Hi", "A"}
	one := NewGenerationEngine(&GeneratorConfig{RandomSeed: 11}, 1).Run(context.Background(), targets)
	four := NewGenerationEngine(&GeneratorConfig{RandomSeed: 11}, 4).Run(context.Background(), targets)

	for i := range targets {
		require.NoError(t, one[i].Err)
		require.NoError(t, four[i].Err)
		assert.Equal(t, one[i].Result.Opcodes, four[i].Result.Opcodes, "target %q", targets[i])
	}
}

func TestEngineCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := NewGenerationEngine(nil, 2).Run(ctx, []string{"Hi", "A"})
	require.Len(t, results, 2)
	for _, res := range results {
		assert.Error(t, res.Err)
	}
}
