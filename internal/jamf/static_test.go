package jamf

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticClientCreateAndMove(t *testing.T) {
	ctx := context.Background()
	c := &StaticClient{}

	cat, err := c.CreateCategory(ctx, "Browsers")
	require.NoError(t, err)
	require.NoError(t, c.CreatePolicy(ctx, InstallPolicy{AppName: "Firefox", Label: "firefox"}))

	summaries, err := c.ListPolicies(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Install Firefox", summaries[0].Name)

	require.NoError(t, c.MovePolicy(ctx, summaries[0].ID, cat.ID))
	p, err := c.GetPolicy(ctx, summaries[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Browsers", p.CategoryName)

	require.NoError(t, c.DeletePolicy(ctx, p.ID))
	_, err = c.GetPolicy(ctx, p.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStaticClientInjectedFailure(t *testing.T) {
	boom := errors.New("boom")
	c := &StaticClient{Fail: map[string]error{"create-policy:Zoom": boom}}
	err := c.CreatePolicy(context.Background(), InstallPolicy{AppName: "Zoom"})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, c.Created)
}
