package jamf

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"commander/internal/domain"
	"commander/internal/logging"
	"commander/internal/util"
	"go.uber.org/zap"
)

const (
	classicPrefix = "/JSSResource"
	// DefaultTokenPath 是 client credentials 换取 token 的默认路径。
	DefaultTokenPath = "/api/v1/oauth/token"
)

// HTTPConfig 配置 HTTP 客户端。
type HTTPConfig struct {
	BaseURL      string
	TokenSource  TokenSource
	Timeout      time.Duration
	CustomClient *http.Client
	// ReadAttempts 是幂等读取的最大尝试次数，写操作从不重试。
	ReadAttempts int
	ReadBackoff  time.Duration
	Logger       *zap.Logger
}

// HTTPClient 实现 Client，通过 Classic API 与 Pro API 与后端通信。
type HTTPClient struct {
	baseURL      string
	httpClient   *http.Client
	tokenSource  TokenSource
	readAttempts int
	readBackoff  time.Duration
	logger       *zap.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient 根据配置创建 HTTP 客户端。
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("jamf base url 不能为空")
	}
	if cfg.TokenSource == nil {
		return nil, errors.New("jamf token source 不能为空")
	}
	client := cfg.CustomClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	attempts := cfg.ReadAttempts
	if attempts <= 0 {
		attempts = 3
	}
	backoff := cfg.ReadBackoff
	if backoff <= 0 {
		backoff = 200 * time.Millisecond
	}
	return &HTTPClient{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:   client,
		tokenSource:  cfg.TokenSource,
		readAttempts: attempts,
		readBackoff:  backoff,
		logger:       logging.OrNop(cfg.Logger),
	}, nil
}

// ListCategories 获取全部分类。
func (c *HTTPClient) ListCategories(ctx context.Context) ([]Category, error) {
	var resp categoryListResponse
	if err := c.getJSON(ctx, classicPrefix+"/categories", &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// CreateCategory 新建分类并返回服务端分配的 id。
func (c *HTTPClient) CreateCategory(ctx context.Context, name string) (Category, error) {
	body, err := categoryBody(name, 9)
	if err != nil {
		return Category{}, err
	}
	out, err := c.sendXML(ctx, http.MethodPost, classicPrefix+"/categories/id/0", body)
	if err != nil {
		return Category{}, err
	}
	var created struct {
		ID int `xml:"id"`
	}
	if err := xml.Unmarshal(out, &created); err != nil {
		return Category{}, fmt.Errorf("解析分类创建响应失败: %w", err)
	}
	return Category{ID: created.ID, Name: name}, nil
}

// UpdateCategory 重命名分类。
func (c *HTTPClient) UpdateCategory(ctx context.Context, id int, name string) error {
	body, err := categoryBody(name, 0)
	if err != nil {
		return err
	}
	_, err = c.sendXML(ctx, http.MethodPut, fmt.Sprintf("%s/categories/id/%d", classicPrefix, id), body)
	return err
}

// DeleteCategory 删除分类。
func (c *HTTPClient) DeleteCategory(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("%s/categories/id/%d", classicPrefix, id))
}

// ListPolicies 获取策略摘要。
func (c *HTTPClient) ListPolicies(ctx context.Context) ([]PolicySummary, error) {
	var resp policyListResponse
	if err := c.getJSON(ctx, classicPrefix+"/policies", &resp); err != nil {
		return nil, err
	}
	return resp.Policies, nil
}

// GetPolicy 获取策略详情。
func (c *HTTPClient) GetPolicy(ctx context.Context, id int) (Policy, error) {
	var resp policyDetailResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/policies/id/%d", classicPrefix, id), &resp); err != nil {
		return Policy{}, err
	}
	g := resp.Policy.General
	p := Policy{ID: g.ID, Name: g.Name, Enabled: g.Enabled}
	if g.Category != nil {
		p.CategoryID = g.Category.ID
		p.CategoryName = g.Category.Name
	}
	scope := resp.Policy.Scope
	p.Scope = &scope
	return p, nil
}

// CreatePolicy 创建一条安装策略。
func (c *HTTPClient) CreatePolicy(ctx context.Context, policy InstallPolicy) error {
	body, err := policy.XML()
	if err != nil {
		return fmt.Errorf("编码策略失败: %w", err)
	}
	_, err = c.sendXML(ctx, http.MethodPost, classicPrefix+"/policies/id/0", body)
	return err
}

// MovePolicy 把策略移动到指定分类。
func (c *HTTPClient) MovePolicy(ctx context.Context, id, categoryID int) error {
	return c.move(ctx, domain.RecordPolicy, fmt.Sprintf("%s/policies/id/%d", classicPrefix, id), categoryID)
}

// DeletePolicy 删除策略。
func (c *HTTPClient) DeletePolicy(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("%s/policies/id/%d", classicPrefix, id))
}

// ListProfiles 获取配置描述文件摘要。
func (c *HTTPClient) ListProfiles(ctx context.Context) ([]ProfileSummary, error) {
	var resp profileListResponse
	if err := c.getJSON(ctx, classicPrefix+"/osxconfigurationprofiles", &resp); err != nil {
		return nil, err
	}
	return resp.Profiles, nil
}

// GetProfile 获取配置描述文件详情。
func (c *HTTPClient) GetProfile(ctx context.Context, id int) (Profile, error) {
	var resp profileDetailResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/osxconfigurationprofiles/id/%d", classicPrefix, id), &resp); err != nil {
		return Profile{}, err
	}
	g := resp.Profile.General
	p := Profile{ID: g.ID, Name: g.Name, Distribution: g.Distribution}
	if g.Category != nil {
		p.CategoryID = g.Category.ID
		p.CategoryName = g.Category.Name
	}
	return p, nil
}

// MoveProfile 把配置描述文件移动到指定分类。
func (c *HTTPClient) MoveProfile(ctx context.Context, id, categoryID int) error {
	return c.move(ctx, domain.RecordProfile, fmt.Sprintf("%s/osxconfigurationprofiles/id/%d", classicPrefix, id), categoryID)
}

// DeleteProfile 删除配置描述文件。
func (c *HTTPClient) DeleteProfile(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("%s/osxconfigurationprofiles/id/%d", classicPrefix, id))
}

// ListScripts 通过 Pro API 获取脚本。
func (c *HTTPClient) ListScripts(ctx context.Context) ([]Script, error) {
	var resp scriptListResponse
	if err := c.getJSON(ctx, "/api/v1/scripts?page=0&page-size=1000&sort=name%3Aasc", &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// ListComputers 获取电脑列表。
func (c *HTTPClient) ListComputers(ctx context.Context) ([]ComputerSummary, error) {
	var resp computerListResponse
	if err := c.getJSON(ctx, classicPrefix+"/computers", &resp); err != nil {
		return nil, err
	}
	return resp.Computers, nil
}

func (c *HTTPClient) move(ctx context.Context, kind domain.RecordKind, path string, categoryID int) error {
	body, err := moveXML(kind, categoryID)
	if err != nil {
		return err
	}
	_, err = c.sendXML(ctx, http.MethodPut, path, body)
	return err
}

func (c *HTTPClient) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, "")
	return err
}

func (c *HTTPClient) sendXML(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	return c.do(ctx, method, path, body, "application/xml")
}

// getJSON 发起幂等读取，网络错误与 429/5xx 按退避重试。
func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	return util.Retry(ctx, c.readAttempts, c.readBackoff, func(ctx context.Context) error {
		data, err := c.do(ctx, http.MethodGet, path, nil, "")
		if err != nil {
			var apiErr *APIError
			if (errors.As(err, &apiErr) && !apiErr.Temporary()) || errors.Is(err, ErrNotAuthenticated) {
				return util.Permanent(err)
			}
			c.logger.Debug("jamf read failed, retrying", zap.String("path", path), zap.Error(err))
			return err
		}
		if err := json.Unmarshal(data, out); err != nil {
			return util.Permanent(fmt.Errorf("解析 %s 响应失败: %w", path, err))
		}
		return nil
	})
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body []byte, contentType string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("构建请求失败: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Accept", contentType)
	} else {
		req.Header.Set("Accept", "application/json")
	}
	token, err := c.tokenSource.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取 token 失败: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求 %s %s 失败: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized {
			if inv, ok := c.tokenSource.(interface{ Invalidate() }); ok {
				inv.Invalidate()
			}
		}
		return nil, &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(data)), 512),
		}
	}
	return data, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
