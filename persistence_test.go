package malbolge_gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nickandperla.net/malbolge"
)

func testResult(target, opcodes string) *GenerationResult {
	ascii, err := malbolge.ReverseNormalize(opcodes, 0)
	if err != nil {
		panic(err)
	}
	return &GenerationResult{
		Target:        target,
		Opcodes:       opcodes,
		AsciiSource:   ascii,
		MachineOutput: []byte(target),
		Stats: &GenerationStats{
			Evaluations: 120,
			CacheHits:   30,
			Pruned:      100,
			DurationNS:  1500,
		},
		Execution: &malbolge.ExecutionResult{Steps: 107, PeakMemoryCells: 218},
	}
}

func newTestPersistence(t *testing.T) *Persistence {
	t.Helper()
	persist, err := NewPersistence(&PersistenceConfig{
		Name:          "archive_test.db",
		Path:          t.TempDir(),
		SQLitePragmas: []string{"journal_mode(WAL)"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { persist.Shutdown() })
	return persist
}

func TestPersistenceRequiresNameAndPath(t *testing.T) {
	_, err := NewPersistence(nil)
	require.Error(t, err)
	_, err = NewPersistence(&PersistenceConfig{Name: "x.db"})
	require.Error(t, err)
	_, err = NewPersistence(&PersistenceConfig{Path: "/tmp"})
	require.Error(t, err)
}

func TestSaveAndLoadRecord(t *testing.T) {
	persist := newTestPersistence(t)

	record, err := persist.SaveResult(testResult("Hi", "iop*<v"))
	require.NoError(t, err)
	require.NotEmpty(t, record.ID)

	loaded, err := persist.LoadRecord(record.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hi", loaded.Target)
	assert.Equal(t, []byte("Hi"), loaded.Output)
	assert.Equal(t, uint64(120), loaded.Evaluations)
	assert.Equal(t, uint(107), loaded.Steps)
	assert.Equal(t, uint(218), loaded.PeakMemoryCells)

	opcodes, err := loaded.Opcodes()
	require.NoError(t, err)
	assert.Equal(t, "iop*<v", opcodes)
}

func TestLoadRecordsForTarget(t *testing.T) {
	persist := newTestPersistence(t)

	_, err := persist.SaveResult(testResult("Hi", "io<v"))
	require.NoError(t, err)
	_, err = persist.SaveResult(testResult("Hi", "ip<v"))
	require.NoError(t, err)
	_, err = persist.SaveResult(testResult("Go", "i*<v"))
	require.NoError(t, err)

	records, err := persist.LoadRecordsForTarget("Hi")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestQueryMetrics(t *testing.T) {
	persist := newTestPersistence(t)

	_, err := persist.SaveResult(testResult("Hi", "io<v"))
	require.NoError(t, err)
	_, err = persist.SaveResult(testResult("Go", "ip<v"))
	require.NoError(t, err)

	metrics, err := persist.QueryMetrics()
	require.NoError(t, err)
	assert.Equal(t, int64(2), metrics.Count)
	assert.Equal(t, int64(2), metrics.Targets)
	assert.InDelta(t, 120.0, metrics.AvgEvaluations, 0.001)
	assert.Equal(t, uint64(120), metrics.MaxEvaluations)
}
