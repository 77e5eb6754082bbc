package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"txHumanizer/internal/humanizer"
	"txHumanizer/internal/humanizer/modules"
	"txHumanizer/internal/model"
)

type memorySink struct {
	summaries []model.SummaryRecord
	failures  []model.DecodeError
	batches   int
}

func (m *memorySink) PutSummaryBatch(_ context.Context, records []model.SummaryRecord) error {
	m.batches++
	m.summaries = append(m.summaries, records...)
	return nil
}

func (m *memorySink) PutErrorBatch(_ context.Context, errs []model.DecodeError) error {
	m.failures = append(m.failures, errs...)
	return nil
}

type memoryState struct {
	last  uint64
	ok    bool
	saves []uint64
}

func (s *memoryState) Load(context.Context) (uint64, bool, error) { return s.last, s.ok, nil }

func (s *memoryState) Save(_ context.Context, last uint64) error {
	s.saves = append(s.saves, last)
	s.last, s.ok = last, true
	return nil
}

const input = `{"hash":"0x01","to":"0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2","data":"0xd0e30db0","value":"1000000000000000000","chainId":1}
{"hash":"0x02","to":"0x1111111111111111111111111111111111111111","data":"0xdeadbeef","chain_id":1}
{not json

{"hash":"0x03","to":"0x5555555555555555555555555555555555555555","data":"0x2e1a7d4d","chain_id":1}
{"hash":"0x04","data":"0x3d18b912","chain_id":1}
{"hash":"0x05","to":"0x5555555555555555555555555555555555555555","data":"0x3d18b912"}
`

func testEngine(t *testing.T) *humanizer.Engine {
	t.Helper()
	reg, err := modules.NewDefaultRegistry(nil, nil)
	require.NoError(t, err)
	return humanizer.NewEngine(reg)
}

func TestRunnerHumanizesStream(t *testing.T) {
	sink := &memorySink{}
	state := &memoryState{}
	runner := NewRunner(RunConfig{RunID: "run-1", BatchSize: 2, ChainID: 1}, testEngine(t), nil, nil, sink, state, nil)
	runner.now = func() time.Time { return time.Unix(0, 0) }

	stats, err := runner.RunReader(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 6, Humanized: 2, Skipped: 1, Failed: 3}, stats)

	require.Len(t, sink.summaries, 2)
	assert.Equal(t, "run-1", sink.summaries[0].RunID)
	assert.Equal(t, uint64(1), sink.summaries[0].Line)
	assert.Equal(t, modules.WETHName, sink.summaries[0].Module)
	assert.Equal(t, []string{"Wrap 1 ETH"}, sink.summaries[0].Lines)
	assert.Equal(t, "1970-01-01T00:00:00Z", sink.summaries[0].HumanizedAt)
	assert.Equal(t, uint64(7), sink.summaries[1].Line)
	assert.Equal(t, uint64(1), sink.summaries[1].ChainID)
	assert.Equal(t, []string{"Claim rewards"}, sink.summaries[1].Lines)

	require.Len(t, sink.failures, 3)
	assert.Equal(t, KindInput, sink.failures[0].Kind)
	assert.Equal(t, uint64(3), sink.failures[0].Line)
	assert.Equal(t, string(humanizer.KindDecode), sink.failures[1].Kind)
	assert.Equal(t, modules.StakingRewardsName, sink.failures[1].Module)
	assert.Equal(t, "0x2e1a7d4d", sink.failures[1].Selector)
	assert.Equal(t, KindInput, sink.failures[2].Kind)
	for _, f := range sink.failures {
		assert.Equal(t, "run-1", f.RunID)
	}

	assert.Equal(t, uint64(7), state.last)
	assert.Equal(t, []uint64{3, 6, 7}, state.saves)
}

func TestRunnerResumesFromCheckpoint(t *testing.T) {
	sink := &memorySink{}
	state := &memoryState{last: 5, ok: true}
	runner := NewRunner(RunConfig{BatchSize: 10, ChainID: 1}, testEngine(t), nil, nil, sink, state, nil)
	assert.NotEmpty(t, runner.RunID())

	stats, err := runner.RunReader(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 2, Humanized: 1, Failed: 1}, stats)
	assert.Equal(t, []uint64{7}, state.saves)
}

type stubEnricher struct{ err error }

func (s stubEnricher) Enrich(_ context.Context, tx model.TransactionRecord, info *model.HumanizerInfo) (*model.HumanizerInfo, humanizer.ContractMeta, error) {
	if s.err != nil {
		return nil, humanizer.ContractMeta{}, s.err
	}
	return info, humanizer.ContractMeta{Address: tx.To}, nil
}

func TestRunnerRecordsEnrichFailures(t *testing.T) {
	sink := &memorySink{}
	runner := NewRunner(RunConfig{BatchSize: 10}, testEngine(t), nil, stubEnricher{err: errors.New("rpc down")}, sink, nil, nil)

	line := `{"to":"0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2","data":"0xd0e30db0","chain_id":1}` + "\n"
	stats, err := runner.RunReader(context.Background(), strings.NewReader(line))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Failed)
	require.Len(t, sink.failures, 1)
	assert.Equal(t, KindEnrich, sink.failures[0].Kind)
	assert.Equal(t, "rpc down", sink.failures[0].Error)
}

func TestRunnerRejectsBadConfig(t *testing.T) {
	runner := NewRunner(RunConfig{}, testEngine(t), nil, nil, &memorySink{}, nil, nil)
	_, err := runner.RunReader(context.Background(), strings.NewReader(""))
	assert.EqualError(t, err, "batch size must be greater than zero")

	runner = NewRunner(RunConfig{BatchSize: 1, InputPath: filepath.Join(t.TempDir(), "missing.jsonl")}, testEngine(t), nil, nil, &memorySink{}, nil, nil)
	_, err = runner.Run(context.Background())
	assert.ErrorContains(t, err, "open input")
}

func TestFileStateStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "checkpoint.json")

	disabled := NewFileStateStore(path, false)
	require.NoError(t, disabled.Save(ctx, 9))
	_, ok, err := disabled.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	store := NewFileStateStore(path, true)
	_, ok, err = store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(ctx, 42))
	last, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(42), last)
}

type fakeStateDB struct{ rows map[string]uint64 }

func (f *fakeStateDB) LoadState(_ context.Context, name string) (uint64, bool, error) {
	v, ok := f.rows[name]
	return v, ok, nil
}

func (f *fakeStateDB) SaveState(_ context.Context, name string, last uint64) error {
	f.rows[name] = last
	return nil
}

func TestDBStateStoreUsesName(t *testing.T) {
	db := &fakeStateDB{rows: map[string]uint64{}}
	store := NewDBStateStore(db, "txs.jsonl")
	require.NoError(t, store.Save(context.Background(), 3))
	assert.Equal(t, uint64(3), db.rows["txs.jsonl"])

	last, ok, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(3), last)
}
