package jamf

import (
	"context"
	"encoding/xml"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewHTTPClient(HTTPConfig{
		BaseURL:     srv.URL + "/",
		TokenSource: &StaticTokenSource{Value: "tkn"},
		ReadBackoff: time.Millisecond,
	})
	require.NoError(t, err)
	return client
}

func TestHTTPClientListPolicies(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/JSSResource/policies", r.URL.Path)
		assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = io.WriteString(w, `{"policies":[{"id":1,"name":"Install Firefox"},{"id":2,"name":"Install Zoom"}]}`)
	}))

	policies, err := client.ListPolicies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []PolicySummary{{ID: 1, Name: "Install Firefox"}, {ID: 2, Name: "Install Zoom"}}, policies)
}

func TestHTTPClientGetPolicyDetail(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/JSSResource/policies/id/7", r.URL.Path)
		_, _ = io.WriteString(w, `{"policy":{"general":{"id":7,"name":"Install Slack","enabled":true,
			"category":{"id":3,"name":"Apps"}},"scope":{"all_computers":true}}}`)
	}))

	p, err := client.GetPolicy(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Install Slack", p.Name)
	assert.Equal(t, "Apps", p.SafeCategory())
	require.NotNil(t, p.Scope)
	assert.True(t, p.Scope.AllComputers)
}

func TestHTTPClientCreatePolicySendsXML(t *testing.T) {
	var body []byte
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/JSSResource/policies/id/0", r.URL.Path)
		assert.Equal(t, "application/xml", r.Header.Get("Content-Type"))
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `<policy><id>12</id></policy>`)
	}))

	err := client.CreatePolicy(context.Background(), InstallPolicy{
		AppName: "Firefox", Label: "firefox", CategoryName: "Browsers", ScriptID: "5",
	})
	require.NoError(t, err)
	s := string(body)
	assert.Contains(t, s, "<name>Install Firefox</name>")
	assert.Contains(t, s, "<parameter4>firefox</parameter4>")
	assert.Contains(t, s, "<all_computers>true</all_computers>")
}

func TestHTTPClientWriteIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))

	err := client.DeletePolicy(context.Background(), 4)
	require.Error(t, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, http.MethodDelete, apiErr.Method)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPClientReadRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `{"categories":[{"id":1,"name":"Apps"}]}`)
	}))

	cats, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPClientNotFoundIsPermanent(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))

	_, err := client.GetProfile(context.Background(), 9)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPClientMoveProfileBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/JSSResource/osxconfigurationprofiles/id/3", r.URL.Path)
		data, _ := io.ReadAll(r.Body)
		assert.Equal(t,
			`<os_x_configuration_profile><general><category><id>8</id></category></general></os_x_configuration_profile>`,
			string(data))
	}))

	require.NoError(t, client.MoveProfile(context.Background(), 3, 8))
}

func TestHTTPClientCreateCategoryParsesID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		var got struct {
			XMLName  xml.Name `xml:"category"`
			Name     string   `xml:"name"`
			Priority int      `xml:"priority"`
		}
		assert.NoError(t, xml.Unmarshal(data, &got))
		assert.Equal(t, "Utilities", got.Name)
		assert.Equal(t, 9, got.Priority)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `<category><id>44</id></category>`)
	}))

	cat, err := client.CreateCategory(context.Background(), "Utilities")
	require.NoError(t, err)
	assert.Equal(t, Category{ID: 44, Name: "Utilities"}, cat)
}

func TestClientCredentialsTokenSourceCaches(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "id", r.PostForm.Get("client_id"))
		assert.Equal(t, "secret", r.PostForm.Get("client_secret"))
		_, _ = io.WriteString(w, `{"access_token":"abc","expires_in":600}`)
	}))
	defer srv.Close()

	ts, err := NewClientCredentialsTokenSource(ClientCredentialsConfig{
		Endpoint: srv.URL + DefaultTokenPath, ClientID: "id", ClientSecret: "secret",
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		tok, err := ts.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "abc", tok)
	}
	assert.Equal(t, int32(1), calls.Load())

	ts.Invalidate()
	_, err = ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientCredentialsTokenSourceRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	ts, err := NewClientCredentialsTokenSource(ClientCredentialsConfig{
		Endpoint: srv.URL, ClientID: "id", ClientSecret: "bad",
	})
	require.NoError(t, err)
	_, err = ts.Token(context.Background())
	assert.True(t, errors.Is(err, ErrNotAuthenticated))
}

func TestNewHTTPClientValidates(t *testing.T) {
	_, err := NewHTTPClient(HTTPConfig{TokenSource: &StaticTokenSource{Value: "x"}})
	assert.Error(t, err)
	_, err = NewHTTPClient(HTTPConfig{BaseURL: "https://example.invalid"})
	assert.Error(t, err)
}

func TestInstallPolicyXML(t *testing.T) {
	data, err := InstallPolicy{
		AppName: "Zoom", Label: "zoom", CategoryName: "Video", ScriptID: "2",
		FeatureOnMainPage: true, DisplayInCategory: true,
	}.XML()
	require.NoError(t, err)
	s := string(data)
	assert.True(t, strings.HasPrefix(s, "<policy><general><name>Install Zoom</name><enabled>true</enabled>"))
	assert.Contains(t, s, "<frequency>Ongoing</frequency>")
	assert.Contains(t, s, "<feature_on_main_page>true</feature_on_main_page>")
	assert.Contains(t, s, "<self_service_categories><category><name>Video</name><display_in>true</display_in>")
	assert.Contains(t, s, "<priority>After</priority>")
	assert.Contains(t, s, "<parameter5>DEBUG=0</parameter5><parameter6>NOTIFY=silent</parameter6>")
}
