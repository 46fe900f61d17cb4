package domain

import "fmt"

// ViewMode 表示匹配结果的两种展示视图。
type ViewMode string

const (
	// ViewMatched 只展示匹配成功的条目。
	ViewMatched ViewMode = "matched"
	// ViewAllLabels 展示全部 label，未匹配的 label 也会出现。
	ViewAllLabels ViewMode = "all"
)

// ParseViewMode 解析视图模式，空字符串视为 matched。
func ParseViewMode(raw string) (ViewMode, error) {
	switch ViewMode(raw) {
	case "", ViewMatched:
		return ViewMatched, nil
	case ViewAllLabels:
		return ViewAllLabels, nil
	}
	return "", fmt.Errorf("unknown view mode %q", raw)
}

// RecordKind 表示可批量变更的远端记录类型。
type RecordKind string

const (
	RecordPolicy  RecordKind = "policy"
	RecordProfile RecordKind = "profile"
)

// ParseRecordKind 解析记录类型。
func ParseRecordKind(raw string) (RecordKind, error) {
	switch RecordKind(raw) {
	case RecordPolicy, "policies":
		return RecordPolicy, nil
	case RecordProfile, "profiles":
		return RecordProfile, nil
	}
	return "", fmt.Errorf("unknown record kind %q", raw)
}

// Operation 表示批量操作类型。
type Operation string

const (
	OpCreate Operation = "create"
	OpMove   Operation = "move"
	OpDelete Operation = "delete"
)
