// Package inventory 负责两类导入数据：label 目录与应用导出表，以及它们在本地目录的持久化。
package inventory

import "sort"

// Platform 是导出表第二列的原始值，不做枚举校验。
type Platform string

const (
	PlatformMacOS   Platform = "macOS"
	PlatformWindows Platform = "Windows"
)

// Application 表示导出表中的一行应用记录。
// Rank 为来源优先级，数值越小越先参与匹配、越先占用 label。
type Application struct {
	Name      string   `json:"name"`
	Platform  Platform `json:"platform"`
	SourceRow string   `json:"source_row"`
	Rank      int      `json:"rank"`
}

// Catalogue 是按文件顺序保存的 label 列表，加载后不再修改，重新导入时整体替换。
type Catalogue []string

// Sorted 返回去重后按字典序排列的 label。
func (c Catalogue) Sorted() []string {
	seen := make(map[string]struct{}, len(c))
	out := make([]string, 0, len(c))
	for _, label := range c {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// Inputs 汇总一次匹配所需的全部输入。
type Inputs struct {
	Catalogue   Catalogue
	MacApps     []Application
	WindowsApps []Application
}

// Applications 按 macOS 在前、Windows 在后的顺序合并应用列表。
func (in Inputs) Applications() []Application {
	apps := make([]Application, 0, len(in.MacApps)+len(in.WindowsApps))
	apps = append(apps, in.MacApps...)
	apps = append(apps, in.WindowsApps...)
	return apps
}

// Ready 表示是否具备运行匹配的最小输入：有目录且至少有一份应用列表。
func (in Inputs) Ready() bool {
	return len(in.Catalogue) > 0 && (len(in.MacApps) > 0 || len(in.WindowsApps) > 0)
}
