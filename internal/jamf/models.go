package jamf

// Category 表示后端的分类。
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// NoCategory 是未设置分类时的分组名。
const NoCategory = "No Category"

// PolicySummary 是策略列表中的摘要。
type PolicySummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Policy 是补全详情后的策略。
type Policy struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	CategoryID   int          `json:"category_id,omitempty"`
	CategoryName string       `json:"category_name,omitempty"`
	Enabled      bool         `json:"enabled"`
	Scope        *PolicyScope `json:"scope,omitempty"`
}

// SafeCategory 返回用于分组的分类名。
func (p Policy) SafeCategory() string {
	if p.CategoryName == "" {
		return NoCategory
	}
	return p.CategoryName
}

// PolicyScope 描述策略作用范围。
type PolicyScope struct {
	AllComputers bool             `json:"all_computers"`
	Computers    []ComputerTarget `json:"computers,omitempty"`
}

// ComputerTarget 是作用范围内的单台电脑。
type ComputerTarget struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProfileSummary 是配置描述文件列表中的摘要。
type ProfileSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Profile 是补全详情后的配置描述文件。
type Profile struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	CategoryID   int    `json:"category_id,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
	Distribution string `json:"distribution_method,omitempty"`
}

// SafeCategory 返回用于分组的分类名。
func (p Profile) SafeCategory() string {
	if p.CategoryName == "" {
		return NoCategory
	}
	return p.CategoryName
}

// Script 是脚本记录。
type Script struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Info         string `json:"info,omitempty"`
	Notes        string `json:"notes,omitempty"`
	Priority     string `json:"priority,omitempty"`
	CategoryID   string `json:"categoryId,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
}

// ComputerSummary 是电脑列表中的摘要。
type ComputerSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// InstallPolicy 描述一次通过 Installomator 安装软件的策略创建请求。
type InstallPolicy struct {
	AppName           string `json:"app_name"`
	Label             string `json:"label"`
	CategoryName      string `json:"category_name"`
	ScriptID          string `json:"script_id"`
	FeatureOnMainPage bool   `json:"feature_on_main_page"`
	DisplayInCategory bool   `json:"display_in_category"`
}

type policyListResponse struct {
	Policies []PolicySummary `json:"policies"`
}

type policyDetailResponse struct {
	Policy struct {
		General struct {
			ID       int       `json:"id"`
			Name     string    `json:"name"`
			Enabled  bool      `json:"enabled"`
			Category *Category `json:"category"`
		} `json:"general"`
		Scope PolicyScope `json:"scope"`
	} `json:"policy"`
}

type profileListResponse struct {
	Profiles []ProfileSummary `json:"os_x_configuration_profiles"`
}

type profileDetailResponse struct {
	Profile struct {
		General struct {
			ID           int       `json:"id"`
			Name         string    `json:"name"`
			Distribution string    `json:"distribution_method"`
			Category     *Category `json:"category"`
		} `json:"general"`
	} `json:"os_x_configuration_profile"`
}

type categoryListResponse struct {
	Categories []Category `json:"categories"`
}

type computerListResponse struct {
	Computers []ComputerSummary `json:"computers"`
}

type scriptListResponse struct {
	TotalCount int      `json:"totalCount"`
	Results    []Script `json:"results"`
}
