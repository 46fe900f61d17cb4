// Package matching 把 label 目录与应用导出表对账成去重后的匹配集合。
package matching

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var separatorStripper = strings.NewReplacer(" ", "", "-", "", "_", "", ".", "")

// Normalize 把展示名称归一为比较用的 key：转小写并去掉空格、连字符、下划线和句点。
func Normalize(name string) string {
	// cases.Caser 有状态，不能跨 goroutine 共享。
	return separatorStripper.Replace(cases.Lower(language.Und).String(name))
}
