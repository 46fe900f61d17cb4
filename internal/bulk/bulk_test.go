package bulk

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"commander/internal/domain"
	"commander/internal/jamf"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSleep struct {
	mu    sync.Mutex
	calls []time.Duration
}

func (r *recordingSleep) sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, d)
	return ctx.Err()
}

func TestDeployerPartialFailure(t *testing.T) {
	client := &jamf.StaticClient{Fail: map[string]error{
		"create-policy:Slack": errors.New("409 conflict"),
	}}
	rs := &recordingSleep{}
	d := NewDeployer(client, DefaultDeployDelay, nil).WithSleep(rs.sleep)

	items := []DeployItem{
		{Name: "Firefox", Label: "firefox"},
		{Name: "Slack", Label: "slack"},
		{Name: "Zoom", Label: "zoom"},
	}
	report := d.Run(context.Background(), items, DeployOptions{Category: "Apps", ScriptID: "1"})

	require.Len(t, report.Results, 3)
	assert.Equal(t, "Firefox", report.Results[0].ItemName)
	assert.True(t, report.Results[0].Success)
	assert.Equal(t, "Slack", report.Results[1].ItemName)
	assert.False(t, report.Results[1].Success)
	assert.Equal(t, "409 conflict", report.Results[1].Error)
	assert.True(t, report.Results[2].Success)

	assert.Equal(t, 2, report.SuccessCount)
	assert.Equal(t, 1, report.FailureCount)
	assert.False(t, report.Clean())
	assert.Equal(t, "Completed: 2 created, 1 failed", report.Summary())

	require.Len(t, client.Created, 2)
	assert.Equal(t, "zoom", client.Created[1].Label)
	assert.Equal(t, "Apps", client.Created[1].CategoryName)

	assert.Equal(t, []time.Duration{DefaultDeployDelay, DefaultDeployDelay, DefaultDeployDelay}, rs.calls)
	_, err := uuid.Parse(report.RunID)
	assert.NoError(t, err)
	assert.False(t, report.FinishedAt.Before(report.StartedAt))
}

func TestDeployerEmptyBatch(t *testing.T) {
	rs := &recordingSleep{}
	report := NewDeployer(&jamf.StaticClient{}, DefaultDeployDelay, nil).
		WithSleep(rs.sleep).
		Run(context.Background(), nil, DeployOptions{})
	assert.Empty(t, report.Results)
	assert.True(t, report.Clean())
	assert.Equal(t, "Completed: 0 created", report.Summary())
	assert.Empty(t, rs.calls)
}

type countingCreator struct {
	calls  int
	cancel context.CancelFunc
}

func (c *countingCreator) CreatePolicy(ctx context.Context, _ jamf.InstallPolicy) error {
	c.calls++
	if c.calls == 2 {
		c.cancel()
	}
	return nil
}

func TestDeployerCancellationRecordsRemaining(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	creator := &countingCreator{cancel: cancel}
	d := NewDeployer(creator, 0, nil)

	items := []DeployItem{{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}}
	report := d.Run(ctx, items, DeployOptions{})

	assert.Equal(t, 2, creator.calls)
	require.Len(t, report.Results, 4)
	assert.True(t, report.Results[0].Success)
	assert.True(t, report.Results[1].Success)
	for _, res := range report.Results[2:] {
		assert.False(t, res.Success)
		assert.Equal(t, context.Canceled.Error(), res.Error)
	}
	assert.Equal(t, 2, report.FailureCount)
}

func TestDeployOptionsValidate(t *testing.T) {
	assert.Error(t, DeployOptions{ScriptID: "1"}.Validate())
	assert.Error(t, DeployOptions{Category: "Apps"}.Validate())
	assert.NoError(t, DeployOptions{Category: "Apps", ScriptID: "1"}.Validate())
}

func newMutationClient() *jamf.StaticClient {
	return &jamf.StaticClient{
		Categories: []jamf.Category{{ID: 1, Name: "Old"}, {ID: 2, Name: "New"}},
		Policies: []jamf.Policy{
			{ID: 10, Name: "Install A", CategoryID: 1, CategoryName: "Old"},
			{ID: 11, Name: "Install B"},
		},
		Profiles: []jamf.Profile{{ID: 20, Name: "Wi-Fi", CategoryName: "Old"}},
	}
}

func TestMutatorMoveRecordsCategories(t *testing.T) {
	client := newMutationClient()
	rs := &recordingSleep{}
	m := NewMutator(client, 0, nil).WithSleep(rs.sleep)

	report := m.Move(context.Background(), domain.RecordPolicy, []MutateItem{
		{ID: 10, Name: "Install A", Category: "Old"},
		{ID: 11, Name: "Install B"},
		{ID: 99, Name: "Missing"},
	}, jamf.Category{ID: 2, Name: "New"})

	require.Len(t, report.Results, 3)
	assert.Equal(t, OperationResult{ItemName: "Install A", Success: true, FromCategory: "Old", ToCategory: "New"}, report.Results[0])
	assert.Equal(t, jamf.NoCategory, report.Results[1].FromCategory)
	assert.False(t, report.Results[2].Success)
	assert.Equal(t, "Completed: 2 moved, 1 failed", report.Summary())
	assert.Equal(t, "New", client.Policies[0].CategoryName)
	assert.Len(t, rs.calls, 3)
}

func TestMutatorDeleteProfiles(t *testing.T) {
	client := newMutationClient()
	report := NewMutator(client, 0, nil).Delete(context.Background(), domain.RecordProfile,
		[]MutateItem{{ID: 20, Name: "Wi-Fi"}})
	assert.True(t, report.Clean())
	assert.Equal(t, "Completed: 1 deleted", report.Summary())
	assert.Empty(t, client.Profiles)
}

func TestMutatorUnknownKind(t *testing.T) {
	report := NewMutator(newMutationClient(), 0, nil).Delete(context.Background(), domain.RecordKind("script"),
		[]MutateItem{{ID: 1, Name: "x"}})
	require.Len(t, report.Results, 1)
	assert.False(t, report.Results[0].Success)
}
