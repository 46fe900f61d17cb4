package app

import (
	"errors"
	"fmt"

	"commander/internal/domain"
	"commander/internal/inventory"
	"commander/internal/matching"
	"commander/internal/selection"
)

// ErrUnknownItem 表示条目不在当前视图中。
var ErrUnknownItem = errors.New("item not in current view")

// ViewItem 是带选择状态的展示条目。
type ViewItem struct {
	ID          string                 `json:"id"`
	Label       string                 `json:"label"`
	DisplayName string                 `json:"display_name"`
	Platform    string                 `json:"platform"`
	Matched     bool                   `json:"matched"`
	App         *inventory.Application `json:"app,omitempty"`
	Selected    bool                   `json:"selected"`
	Selectable  bool                   `json:"selectable"`
}

// ViewGroup 是按平台分组后的条目。
type ViewGroup struct {
	Key   string     `json:"key"`
	Items []ViewItem `json:"items"`
}

// View 是当前视图的快照。
type View struct {
	Mode          domain.ViewMode `json:"mode"`
	Filter        matching.Filter `json:"filter"`
	Groups        []ViewGroup     `json:"groups"`
	Total         int             `json:"total"`
	Visible       int             `json:"visible"`
	SelectedCount int             `json:"selected_count"`
	CanRun        bool            `json:"can_run"`
}

// View 返回当前模式与过滤条件下的分组视图。
func (s *Service) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	mode := s.selection.Mode()
	all := s.projectLocked()
	groups := matching.GroupByPlatform(s.filter.Apply(all))

	v := View{
		Mode:          mode,
		Filter:        s.filter,
		Groups:        make([]ViewGroup, 0, len(groups)),
		Total:         len(all),
		SelectedCount: s.selection.Len(),
		CanRun:        s.matcher.CanRun() == nil,
	}
	for _, g := range groups {
		vg := ViewGroup{Key: g.Key, Items: make([]ViewItem, 0, len(g.Items))}
		for _, item := range g.Items {
			vg.Items = append(vg.Items, ViewItem{
				ID:          item.ID,
				Label:       item.Label,
				DisplayName: item.DisplayName(),
				Platform:    item.Platform(),
				Matched:     item.Matched(),
				App:         item.App,
				Selected:    s.selection.Contains(item.ID),
				Selectable:  item.Selectable(mode),
			})
		}
		v.Visible += len(vg.Items)
		v.Groups = append(v.Groups, vg)
	}
	return v
}

// SetMode 切换视图模式，模式变化时清空选择。
func (s *Service) SetMode(mode domain.ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.SetMode(mode)
}

// SetFilter 更新过滤条件，选择保持不变。
func (s *Service) SetFilter(f matching.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

// Toggle 切换单个条目。
func (s *Service) Toggle(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !containsID(s.projectLocked(), id) {
		return fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	s.selection.Toggle(id)
	return nil
}

// ToggleRange 在 extend 为真时从锚点到 id 在可见顺序上做范围选择，否则等同 Toggle。
func (s *Service) ToggleRange(id string, extend bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.projectLocked()
	if !containsID(all, id) {
		return fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	visible := matching.Flatten(matching.GroupByPlatform(s.filter.Apply(all)))
	s.selection.ToggleRange(id, entries(visible, s.selection.Mode()), extend)
	return nil
}

// ToggleGroup 全选或全不选某个可见分组。
func (s *Service) ToggleGroup(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	mode := s.selection.Mode()
	for _, g := range matching.GroupByPlatform(s.filter.Apply(s.projectLocked())) {
		if g.Key == key {
			s.selection.ToggleGroup(entries(g.Items, mode))
			return nil
		}
	}
	return fmt.Errorf("%w: group %s", ErrUnknownItem, key)
}

// ClearSelection 清空选择。
func (s *Service) ClearSelection() {
	s.resetSelection()
}

// SelectedItems 按展示顺序返回已选条目，不受过滤条件影响。
func (s *Service) SelectedItems() []matching.DisplayItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedLocked()
}

func (s *Service) selectedLocked() []matching.DisplayItem {
	var out []matching.DisplayItem
	for _, item := range matching.Flatten(matching.GroupByPlatform(s.projectLocked())) {
		if s.selection.Contains(item.ID) {
			out = append(out, item)
		}
	}
	return out
}

func (s *Service) projectLocked() []matching.DisplayItem {
	return matching.Project(s.selection.Mode(), s.matcher.Matches(), s.matcher.Catalogue())
}

func entries(items []matching.DisplayItem, mode domain.ViewMode) []selection.Entry {
	out := make([]selection.Entry, 0, len(items))
	for _, item := range items {
		out = append(out, selection.Entry{ID: item.ID, Selectable: item.Selectable(mode)})
	}
	return out
}

func containsID(items []matching.DisplayItem, id string) bool {
	for _, item := range items {
		if item.ID == id {
			return true
		}
	}
	return false
}
