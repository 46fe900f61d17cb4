package matching

import (
	"testing"

	"commander/internal/domain"
	"commander/internal/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMatches() ([]MatchResult, inventory.Catalogue) {
	catalogue := inventory.Catalogue{"zoom", "chrome", "slack", "firefox"}
	apps := []inventory.Application{mac("Zoom"), win("Google Chrome"), win("Slack")}
	return Match(apps, catalogue), catalogue
}

func TestProjectMatchedMode(t *testing.T) {
	matches, catalogue := sampleMatches()
	items := Project(domain.ViewMatched, matches, catalogue)
	require.Len(t, items, 3)
	for i, item := range items {
		assert.True(t, item.Matched())
		assert.Equal(t, matches[i].ID, item.ID)
		assert.Equal(t, matches[i].Application.Name, item.DisplayName())
	}
}

func TestProjectAllLabelsMode(t *testing.T) {
	matches, catalogue := sampleMatches()
	items := Project(domain.ViewAllLabels, matches, catalogue)
	require.Len(t, items, 4)

	assert.Equal(t, "chrome", items[0].Label)
	assert.Equal(t, "LABEL_chrome", items[0].ID)
	assert.Equal(t, "Google Chrome", items[0].DisplayName())

	assert.Equal(t, "firefox", items[1].Label)
	assert.False(t, items[1].Matched())
	assert.Equal(t, "firefox", items[1].DisplayName())
	assert.Equal(t, UnmatchedPlatform, items[1].Platform())
	assert.False(t, items[1].Selectable(domain.ViewAllLabels))
	assert.True(t, items[0].Selectable(domain.ViewAllLabels))
}

func TestProjectIDsStableAcrossRecompute(t *testing.T) {
	matches, catalogue := sampleMatches()
	again, _ := sampleMatches()
	assert.Equal(t, Project(domain.ViewMatched, matches, catalogue), Project(domain.ViewMatched, again, catalogue))
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	matches, catalogue := sampleMatches()
	items := Project(domain.ViewAllLabels, matches, catalogue)

	got := Filter{Search: "GOOGLE"}.Apply(items)
	require.Len(t, got, 1)
	assert.Equal(t, "chrome", got[0].Label)

	got = Filter{Search: "fire"}.Apply(items)
	require.Len(t, got, 1)
	assert.Equal(t, "firefox", got[0].Label)
}

func TestFilterPlatform(t *testing.T) {
	matches, catalogue := sampleMatches()
	items := Project(domain.ViewAllLabels, matches, catalogue)

	assert.Len(t, Filter{Platform: PlatformAll}.Apply(items), 4)
	assert.Len(t, Filter{Platform: "Windows"}.Apply(items), 2)
	unmatched := Filter{Platform: UnmatchedPlatform}.Apply(items)
	require.Len(t, unmatched, 1)
	assert.Equal(t, "firefox", unmatched[0].Label)
}

func TestGroupByPlatform(t *testing.T) {
	matches, catalogue := sampleMatches()
	groups := GroupByPlatform(Project(domain.ViewAllLabels, matches, catalogue))
	require.Len(t, groups, 3)
	assert.Equal(t, []string{UnmatchedPlatform, "Windows", "macOS"}, []string{groups[0].Key, groups[1].Key, groups[2].Key})
	assert.Len(t, groups[1].Items, 2)

	flat := Flatten(groups)
	require.Len(t, flat, 4)
	assert.Equal(t, "firefox", flat[0].Label)
	assert.Equal(t, "zoom", flat[3].Label)
}
