package jamf

import (
	"encoding/xml"
	"fmt"

	"commander/internal/domain"
)

type policyXML struct {
	XMLName     xml.Name        `xml:"policy"`
	General     generalXML      `xml:"general"`
	Scope       *scopeXML       `xml:"scope,omitempty"`
	SelfService *selfServiceXML `xml:"self_service,omitempty"`
	Scripts     *scriptsXML     `xml:"scripts,omitempty"`
}

type profileXML struct {
	XMLName xml.Name   `xml:"os_x_configuration_profile"`
	General generalXML `xml:"general"`
}

type generalXML struct {
	Name      string       `xml:"name,omitempty"`
	Enabled   *bool        `xml:"enabled,omitempty"`
	Frequency string       `xml:"frequency,omitempty"`
	Category  *categoryRef `xml:"category,omitempty"`
}

type categoryRef struct {
	ID   int    `xml:"id,omitempty"`
	Name string `xml:"name,omitempty"`
}

type scopeXML struct {
	AllComputers bool `xml:"all_computers"`
}

type selfServiceXML struct {
	UseForSelfService    bool                 `xml:"use_for_self_service"`
	DisplayName          string               `xml:"self_service_display_name"`
	InstallButtonText    string               `xml:"install_button_text"`
	ForceViewDescription bool                 `xml:"force_users_to_view_description"`
	FeatureOnMainPage    bool                 `xml:"feature_on_main_page"`
	Categories           []selfServiceCatXML  `xml:"self_service_categories>category"`
}

type selfServiceCatXML struct {
	Name      string `xml:"name"`
	DisplayIn bool   `xml:"display_in"`
	FeatureIn bool   `xml:"feature_in"`
}

type scriptsXML struct {
	Scripts []scriptXML `xml:"script"`
}

type scriptXML struct {
	ID         string `xml:"id"`
	Priority   string `xml:"priority"`
	Parameter4 string `xml:"parameter4"`
	Parameter5 string `xml:"parameter5"`
	Parameter6 string `xml:"parameter6"`
}

type categoryXML struct {
	XMLName  xml.Name `xml:"category"`
	Name     string   `xml:"name"`
	Priority int      `xml:"priority,omitempty"`
}

// PolicyName 返回安装策略的名称。
func (p InstallPolicy) PolicyName() string {
	return "Install " + p.AppName
}

// XML 生成创建安装策略的请求体。
func (p InstallPolicy) XML() ([]byte, error) {
	enabled := true
	body := policyXML{
		General: generalXML{
			Name:      p.PolicyName(),
			Enabled:   &enabled,
			Frequency: "Ongoing",
			Category:  &categoryRef{Name: p.CategoryName},
		},
		Scope: &scopeXML{AllComputers: true},
		SelfService: &selfServiceXML{
			UseForSelfService: true,
			DisplayName:       p.PolicyName(),
			InstallButtonText: "Install",
			FeatureOnMainPage: p.FeatureOnMainPage,
			Categories: []selfServiceCatXML{{
				Name:      p.CategoryName,
				DisplayIn: p.DisplayInCategory,
				FeatureIn: p.FeatureOnMainPage,
			}},
		},
		Scripts: &scriptsXML{Scripts: []scriptXML{{
			ID:         p.ScriptID,
			Priority:   "After",
			Parameter4: p.Label,
			Parameter5: "DEBUG=0",
			Parameter6: "NOTIFY=silent",
		}}},
	}
	return xml.Marshal(body)
}

// moveXML 生成把记录移动到指定分类的请求体，分类必须嵌套在 general 中。
func moveXML(kind domain.RecordKind, categoryID int) ([]byte, error) {
	general := generalXML{Category: &categoryRef{ID: categoryID}}
	switch kind {
	case domain.RecordPolicy:
		return xml.Marshal(policyXML{General: general})
	case domain.RecordProfile:
		return xml.Marshal(profileXML{General: general})
	}
	return nil, fmt.Errorf("unsupported record kind %q", kind)
}

func categoryBody(name string, priority int) ([]byte, error) {
	return xml.Marshal(categoryXML{Name: name, Priority: priority})
}
