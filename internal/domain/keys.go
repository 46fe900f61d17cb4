package domain

import (
	"fmt"
	"strings"
)

const (
	PrefixMatch = "MATCH"
	PrefixLabel = "LABEL"
)

// MakeKey 统一生成展示条目 key，带上前缀以区分不同视图来源。
func MakeKey(prefix string, rawID any) string {
	return fmt.Sprintf("%s_%v", prefix, rawID)
}

// SplitKey 拆出 key 的前缀与原始值，格式不符时 ok 为 false。
func SplitKey(key string) (prefix, raw string, ok bool) {
	prefix, raw, ok = strings.Cut(key, "_")
	if !ok || prefix == "" {
		return "", "", false
	}
	return prefix, raw, true
}
