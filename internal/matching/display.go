package matching

import (
	"sort"
	"strings"

	"commander/internal/domain"
	"commander/internal/inventory"

	"golang.org/x/text/cases"
)

const (
	// UnmatchedPlatform 是未匹配 label 的分组名。
	UnmatchedPlatform = "Installomator"
	// PlatformAll 表示不按平台过滤。
	PlatformAll = "All"
)

// DisplayItem 是视图层条目：要么包装一个匹配结果，要么是没有应用的 label。
type DisplayItem struct {
	ID    string                 `json:"id"`
	Label string                 `json:"label"`
	App   *inventory.Application `json:"app,omitempty"`
}

// Matched 表示条目是否对应一个匹配结果。
func (d DisplayItem) Matched() bool {
	return d.App != nil
}

// DisplayName 优先返回应用名，未匹配时返回 label。
func (d DisplayItem) DisplayName() string {
	if d.App != nil {
		return d.App.Name
	}
	return d.Label
}

// Platform 返回条目的分组平台。
func (d DisplayItem) Platform() string {
	if d.App != nil {
		return string(d.App.Platform)
	}
	return UnmatchedPlatform
}

// Selectable 表示条目在当前视图下能否被范围选择选中。
func (d DisplayItem) Selectable(mode domain.ViewMode) bool {
	return mode != domain.ViewAllLabels || d.Matched()
}

// Project 按视图模式把匹配结果与目录投影为展示条目。
func Project(mode domain.ViewMode, matches []MatchResult, catalogue inventory.Catalogue) []DisplayItem {
	if mode != domain.ViewAllLabels {
		items := make([]DisplayItem, 0, len(matches))
		for i := range matches {
			app := matches[i].Application
			items = append(items, DisplayItem{
				ID:    domain.MakeKey(domain.PrefixMatch, matches[i].MatchedLabel),
				Label: matches[i].MatchedLabel,
				App:   &app,
			})
		}
		return items
	}

	byLabel := make(map[string]inventory.Application, len(matches))
	for _, m := range matches {
		byLabel[m.MatchedLabel] = m.Application
	}
	labels := catalogue.Sorted()
	items := make([]DisplayItem, 0, len(labels))
	for _, label := range labels {
		item := DisplayItem{ID: domain.MakeKey(domain.PrefixLabel, label), Label: label}
		if app, ok := byLabel[label]; ok {
			item.App = &app
		}
		items = append(items, item)
	}
	return items
}

// Filter 描述搜索文本与平台过滤条件。
type Filter struct {
	Search   string `json:"search"`
	Platform string `json:"platform"`
}

// Apply 返回满足过滤条件的条目，保持原有顺序。
func (f Filter) Apply(items []DisplayItem) []DisplayItem {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(f.Search))
	out := make([]DisplayItem, 0, len(items))
	for _, item := range items {
		if needle != "" &&
			!strings.Contains(fold.String(item.DisplayName()), needle) &&
			!strings.Contains(fold.String(item.Label), needle) {
			continue
		}
		if !f.platformMatch(item) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (f Filter) platformMatch(item DisplayItem) bool {
	switch f.Platform {
	case "", PlatformAll:
		return true
	case UnmatchedPlatform:
		return !item.Matched()
	}
	return item.Platform() == f.Platform
}

// Group 是同一平台下的条目。
type Group struct {
	Key   string        `json:"key"`
	Items []DisplayItem `json:"items"`
}

// GroupByPlatform 按平台分组，组按 key 升序，组内保持原有顺序。
func GroupByPlatform(items []DisplayItem) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, item := range items {
		key := item.Platform()
		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, Group{Key: key})
		}
		groups[pos].Items = append(groups[pos].Items, item)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// Flatten 按分组展示顺序展开条目，范围选择以此顺序计算。
func Flatten(groups []Group) []DisplayItem {
	var out []DisplayItem
	for _, g := range groups {
		out = append(out, g.Items...)
	}
	return out
}
