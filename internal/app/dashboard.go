package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"commander/internal/domain"
	"commander/internal/hydrate"
	"commander/internal/jamf"
	"golang.org/x/sync/errgroup"
)

// Dashboard 是各类记录的数量概览。
type Dashboard struct {
	Computers  int `json:"computers"`
	Profiles   int `json:"profiles"`
	Scripts    int `json:"scripts"`
	Policies   int `json:"policies"`
	Categories int `json:"categories"`
}

// Dashboard 并发拉取各类列表并计数。任一失败时返回其余已拿到的数量和第一个错误。
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	var (
		d Dashboard
		g errgroup.Group
	)
	count := func(dst *int, name string, list func(context.Context) (int, error)) {
		g.Go(func() error {
			n, err := list(ctx)
			if err != nil {
				return fmt.Errorf("获取%s失败: %w", name, err)
			}
			*dst = n
			return nil
		})
	}
	count(&d.Computers, "电脑列表", func(ctx context.Context) (int, error) {
		v, err := s.client.ListComputers(ctx)
		return len(v), err
	})
	count(&d.Profiles, "配置描述文件", func(ctx context.Context) (int, error) {
		v, err := s.client.ListProfiles(ctx)
		return len(v), err
	})
	count(&d.Scripts, "脚本", func(ctx context.Context) (int, error) {
		v, err := s.client.ListScripts(ctx)
		return len(v), err
	})
	count(&d.Policies, "策略", func(ctx context.Context) (int, error) {
		v, err := s.client.ListPolicies(ctx)
		return len(v), err
	})
	count(&d.Categories, "分类", func(ctx context.Context) (int, error) {
		v, err := s.client.ListCategories(ctx)
		return len(v), err
	})
	err := g.Wait()
	return d, err
}

// Policies 拉取策略摘要并并发补全详情，补全失败的条目退回摘要，结果按名称排序。
func (s *Service) Policies(ctx context.Context) ([]jamf.Policy, error) {
	summaries, err := s.client.ListPolicies(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取策略失败: %w", err)
	}
	hydrated := hydrate.Hydrate(ctx, s.hydrator, "policy", summaries,
		func(ctx context.Context, sum jamf.PolicySummary) (jamf.Policy, error) {
			return s.client.GetPolicy(ctx, sum.ID)
		})
	out := make([]jamf.Policy, 0, len(hydrated))
	for _, h := range hydrated {
		if h.Enriched() {
			out = append(out, *h.Detail)
			continue
		}
		out = append(out, jamf.Policy{ID: h.Summary.ID, Name: h.Summary.Name})
	}
	sort.SliceStable(out, func(i, j int) bool { return lessName(out[i].Name, out[j].Name) })
	return out, nil
}

// Profiles 拉取配置描述文件并补全详情，规则同 Policies。
func (s *Service) Profiles(ctx context.Context) ([]jamf.Profile, error) {
	summaries, err := s.client.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取配置描述文件失败: %w", err)
	}
	hydrated := hydrate.Hydrate(ctx, s.hydrator, "profile", summaries,
		func(ctx context.Context, sum jamf.ProfileSummary) (jamf.Profile, error) {
			return s.client.GetProfile(ctx, sum.ID)
		})
	out := make([]jamf.Profile, 0, len(hydrated))
	for _, h := range hydrated {
		if h.Enriched() {
			out = append(out, *h.Detail)
			continue
		}
		out = append(out, jamf.Profile{ID: h.Summary.ID, Name: h.Summary.Name})
	}
	sort.SliceStable(out, func(i, j int) bool { return lessName(out[i].Name, out[j].Name) })
	return out, nil
}

// Record 是可移动/删除记录的统一视图。
type Record struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Records 返回指定类型的补全记录。
func (s *Service) Records(ctx context.Context, kind domain.RecordKind) ([]Record, error) {
	switch kind {
	case domain.RecordPolicy:
		policies, err := s.Policies(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]Record, 0, len(policies))
		for _, p := range policies {
			out = append(out, Record{ID: p.ID, Name: p.Name, Category: p.SafeCategory()})
		}
		return out, nil
	case domain.RecordProfile:
		profiles, err := s.Profiles(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]Record, 0, len(profiles))
		for _, p := range profiles {
			out = append(out, Record{ID: p.ID, Name: p.Name, Category: p.SafeCategory()})
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported record kind %q", kind)
}

// Categories 返回按名称排序的分类。
func (s *Service) Categories(ctx context.Context) ([]jamf.Category, error) {
	cats, err := s.client.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(cats, func(i, j int) bool { return lessName(cats[i].Name, cats[j].Name) })
	return cats, nil
}

// Scripts 返回脚本列表，供选择部署脚本。
func (s *Service) Scripts(ctx context.Context) ([]jamf.Script, error) {
	return s.client.ListScripts(ctx)
}

// Client 返回远程调用客户端，分类增删改直接透传。
func (s *Service) Client() jamf.Client {
	return s.client
}

func lessName(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}
