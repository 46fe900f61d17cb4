// Package selection 维护当前视图下被选中的条目 id 以及范围选择的锚点。
package selection

import (
	"sort"

	"commander/internal/domain"
)

// Entry 是可见列表中的一项。Selectable 为 false 的条目不会被范围选择或分组选择选中。
type Entry struct {
	ID         string
	Selectable bool
}

// Set 是单个视图模式下的选择集合，非并发安全，由调用方串行访问。
type Set struct {
	mode   domain.ViewMode
	ids    map[string]struct{}
	anchor string
}

// New 创建指定模式下的空集合。
func New(mode domain.ViewMode) *Set {
	return &Set{mode: mode, ids: make(map[string]struct{})}
}

// Mode 返回当前视图模式。
func (s *Set) Mode() domain.ViewMode {
	return s.mode
}

// SetMode 切换视图模式。模式变化时清空选择与锚点，两种视图的 id 来源不同。
func (s *Set) SetMode(mode domain.ViewMode) {
	if mode == s.mode {
		return
	}
	s.mode = mode
	s.Reset()
}

// Reset 清空选择与锚点，重新加载目录或应用列表后调用。
func (s *Set) Reset() {
	s.ids = make(map[string]struct{})
	s.anchor = ""
}

// Toggle 翻转 id 的选中状态，并把它设为新的锚点。
func (s *Set) Toggle(id string) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
	s.anchor = id
}

// ToggleRange 在 extend 为真且锚点存在时，把锚点与 id 之间的可选条目并入选择，不改变锚点。
// 条件不满足时退化为 Toggle。锚点或 id 不在 visible 中时不做任何修改。
func (s *Set) ToggleRange(id string, visible []Entry, extend bool) {
	if !extend || s.anchor == "" {
		s.Toggle(id)
		return
	}
	from, to := indexOf(visible, s.anchor), indexOf(visible, id)
	if from < 0 || to < 0 {
		return
	}
	if from > to {
		from, to = to, from
	}
	for _, entry := range visible[from : to+1] {
		if entry.Selectable {
			s.ids[entry.ID] = struct{}{}
		}
	}
}

// ToggleGroup 在组内可选条目已全部选中时取消它们，否则全部选中。
func (s *Set) ToggleGroup(group []Entry) {
	all := true
	for _, entry := range group {
		if !entry.Selectable {
			continue
		}
		if _, ok := s.ids[entry.ID]; !ok {
			all = false
			break
		}
	}
	for _, entry := range group {
		if !entry.Selectable {
			continue
		}
		if all {
			delete(s.ids, entry.ID)
		} else {
			s.ids[entry.ID] = struct{}{}
		}
	}
}

// Contains 判断 id 是否被选中。
func (s *Set) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len 返回选中数量。
func (s *Set) Len() int {
	return len(s.ids)
}

// Anchor 返回当前锚点。
func (s *Set) Anchor() (string, bool) {
	return s.anchor, s.anchor != ""
}

// IDs 返回排序后的选中 id。
func (s *Set) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func indexOf(entries []Entry, id string) int {
	for i, entry := range entries {
		if entry.ID == id {
			return i
		}
	}
	return -1
}
