package jamf

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Client 抽象后端管理服务的远程调用能力。
type Client interface {
	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, name string) (Category, error)
	UpdateCategory(ctx context.Context, id int, name string) error
	DeleteCategory(ctx context.Context, id int) error

	ListPolicies(ctx context.Context) ([]PolicySummary, error)
	GetPolicy(ctx context.Context, id int) (Policy, error)
	CreatePolicy(ctx context.Context, policy InstallPolicy) error
	MovePolicy(ctx context.Context, id, categoryID int) error
	DeletePolicy(ctx context.Context, id int) error

	ListProfiles(ctx context.Context) ([]ProfileSummary, error)
	GetProfile(ctx context.Context, id int) (Profile, error)
	MoveProfile(ctx context.Context, id, categoryID int) error
	DeleteProfile(ctx context.Context, id int) error

	ListScripts(ctx context.Context) ([]Script, error)
	ListComputers(ctx context.Context) ([]ComputerSummary, error)
}

// StaticClient 用于测试或演练，所有数据都保存在内存中。
// Fail 中的键为 "操作:名称或 id"，命中时返回对应错误。
type StaticClient struct {
	mu sync.Mutex

	Categories []Category
	Policies   []Policy
	Profiles   []Profile
	Scripts    []Script
	Computers  []ComputerSummary
	Created    []InstallPolicy
	Fail       map[string]error

	nextID int
}

var _ Client = (*StaticClient)(nil)

func (c *StaticClient) failure(op string, key any) error {
	if c.Fail == nil {
		return nil
	}
	return c.Fail[fmt.Sprintf("%s:%v", op, key)]
}

func (c *StaticClient) allocID() int {
	if c.nextID == 0 {
		c.nextID = 1000
	}
	c.nextID++
	return c.nextID
}

// ListCategories 返回预设分类。
func (c *StaticClient) ListCategories(context.Context) ([]Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.failure("list", "categories"); err != nil {
		return nil, err
	}
	return append([]Category(nil), c.Categories...), nil
}

// CreateCategory 新增分类。
func (c *StaticClient) CreateCategory(_ context.Context, name string) (Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.failure("create-category", name); err != nil {
		return Category{}, err
	}
	cat := Category{ID: c.allocID(), Name: name}
	c.Categories = append(c.Categories, cat)
	return cat, nil
}

// UpdateCategory 重命名分类。
func (c *StaticClient) UpdateCategory(_ context.Context, id int, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.Categories {
		if c.Categories[i].ID == id {
			c.Categories[i].Name = name
			return nil
		}
	}
	return ErrNotFound
}

// DeleteCategory 删除分类。
func (c *StaticClient) DeleteCategory(_ context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.Categories {
		if c.Categories[i].ID == id {
			c.Categories = append(c.Categories[:i], c.Categories[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ListPolicies 返回策略摘要。
func (c *StaticClient) ListPolicies(context.Context) ([]PolicySummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.failure("list", "policies"); err != nil {
		return nil, err
	}
	out := make([]PolicySummary, 0, len(c.Policies))
	for _, p := range c.Policies {
		out = append(out, PolicySummary{ID: p.ID, Name: p.Name})
	}
	return out, nil
}

// GetPolicy 返回策略详情。
func (c *StaticClient) GetPolicy(_ context.Context, id int) (Policy, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.failure("get-policy", id); err != nil {
		return Policy{}, err
	}
	for _, p := range c.Policies {
		if p.ID == id {
			return p, nil
		}
	}
	return Policy{}, ErrNotFound
}

// CreatePolicy 记录一次策略创建。
func (c *StaticClient) CreatePolicy(_ context.Context, policy InstallPolicy) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.failure("create-policy", policy.AppName); err != nil {
		return err
	}
	c.Created = append(c.Created, policy)
	c.Policies = append(c.Policies, Policy{
		ID:           c.allocID(),
		Name:         policy.PolicyName(),
		CategoryName: policy.CategoryName,
		Enabled:      true,
		Scope:        &PolicyScope{AllComputers: true},
	})
	return nil
}

// MovePolicy 修改策略分类。
func (c *StaticClient) MovePolicy(_ context.Context, id, categoryID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.failure("move-policy", id); err != nil {
		return err
	}
	cat, ok := c.category(categoryID)
	if !ok {
		return ErrNotFound
	}
	for i := range c.Policies {
		if c.Policies[i].ID == id {
			c.Policies[i].CategoryID = cat.ID
			c.Policies[i].CategoryName = cat.Name
			return nil
		}
	}
	return ErrNotFound
}

// DeletePolicy 删除策略。
func (c *StaticClient) DeletePolicy(_ context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.failure("delete-policy", id); err != nil {
		return err
	}
	for i := range c.Policies {
		if c.Policies[i].ID == id {
			c.Policies = append(c.Policies[:i], c.Policies[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ListProfiles 返回配置描述文件摘要。
func (c *StaticClient) ListProfiles(context.Context) ([]ProfileSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.failure("list", "profiles"); err != nil {
		return nil, err
	}
	out := make([]ProfileSummary, 0, len(c.Profiles))
	for _, p := range c.Profiles {
		out = append(out, ProfileSummary{ID: p.ID, Name: p.Name})
	}
	return out, nil
}

// GetProfile 返回配置描述文件详情。
func (c *StaticClient) GetProfile(_ context.Context, id int) (Profile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.failure("get-profile", id); err != nil {
		return Profile{}, err
	}
	for _, p := range c.Profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return Profile{}, ErrNotFound
}

// MoveProfile 修改配置描述文件分类。
func (c *StaticClient) MoveProfile(_ context.Context, id, categoryID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.failure("move-profile", id); err != nil {
		return err
	}
	cat, ok := c.category(categoryID)
	if !ok {
		return ErrNotFound
	}
	for i := range c.Profiles {
		if c.Profiles[i].ID == id {
			c.Profiles[i].CategoryID = cat.ID
			c.Profiles[i].CategoryName = cat.Name
			return nil
		}
	}
	return ErrNotFound
}

// DeleteProfile 删除配置描述文件。
func (c *StaticClient) DeleteProfile(_ context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.failure("delete-profile", id); err != nil {
		return err
	}
	for i := range c.Profiles {
		if c.Profiles[i].ID == id {
			c.Profiles = append(c.Profiles[:i], c.Profiles[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ListScripts 返回脚本，按名称排序。
func (c *StaticClient) ListScripts(context.Context) ([]Script, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := append([]Script(nil), c.Scripts...)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// ListComputers 返回电脑列表。
func (c *StaticClient) ListComputers(context.Context) ([]ComputerSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ComputerSummary(nil), c.Computers...), nil
}

func (c *StaticClient) category(id int) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}
