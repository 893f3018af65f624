package moodle

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/muddle/form"
)

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		baseURL string
		token   string
		wantURL string
		errMsg  string
	}{
		{
			name:    "valid config",
			baseURL: "https://example.org",
			token:   "T1",
			wantURL: "https://example.org/webservice/rest/server.php",
		},
		{
			name:    "trailing slash",
			baseURL: "https://example.org/moodle/",
			token:   "T1",
			wantURL: "https://example.org/moodle/webservice/rest/server.php",
		},
		{
			name:    "endpoint already present",
			baseURL: "https://example.org/webservice/rest/server.php",
			token:   "T1",
			wantURL: "https://example.org/webservice/rest/server.php",
		},
		{
			name:    "missing URL",
			baseURL: "",
			token:   "T1",
			errMsg:  "URL is required",
		},
		{
			name:    "missing token",
			baseURL: "https://example.org",
			token:   "",
			errMsg:  "token is required",
		},
		{
			name:    "relative URL",
			baseURL: "example.org",
			token:   "T1",
			errMsg:  "invalid moodle URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, tt.token, logger)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidConfig))
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, client.URL())
		})
	}
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("default timeout", func(t *testing.T) {
		client, err := NewClient("https://example.org", "T1", logger)
		require.NoError(t, err)
		assert.Equal(t, defaultTimeout, client.httpClient.Timeout)
		assert.Equal(t, defaultUserAgent, client.userAgent)
	})

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("https://example.org", "T1", logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with insecure skip verify", func(t *testing.T) {
		client, err := NewClient("https://example.org", "T1", logger, WithInsecureSkipVerify())
		require.NoError(t, err)
		transport, ok := client.httpClient.Transport.(*http.Transport)
		require.True(t, ok)
		require.NotNil(t, transport.TLSClientConfig)
		assert.True(t, transport.TLSClientConfig.InsecureSkipVerify)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("https://example.org", "T1", logger, WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Equal(t, customClient, client.httpClient)
	})

	t.Run("with user agent", func(t *testing.T) {
		client, err := NewClient("https://example.org", "T1", logger, WithUserAgent("test-agent"))
		require.NoError(t, err)
		assert.Equal(t, "test-agent", client.userAgent)
	})
}

func TestRequestParams(t *testing.T) {
	client, err := NewClient("https://example.org", "T1", zerolog.Nop())
	require.NoError(t, err)

	first := client.RequestParams()
	assert.Equal(t, url.Values{
		"wstoken":            {"T1"},
		"moodlewsrestformat": {"json"},
	}, first)

	// mutating one copy must not leak into the next
	first.Set("wstoken", "tampered")
	first.Set("wsfunction", "core_course_get_courses")

	second := client.RequestParams()
	assert.Equal(t, "T1", second.Get("wstoken"))
	assert.NotContains(t, second, "wsfunction")
}

func TestCall(t *testing.T) {
	var received []*http.Request
	var forms []url.Values

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		received = append(received, r)
		forms = append(forms, r.Form)

		switch r.Form.Get("wsfunction") {
		case "core_course_get_courses":
			w.Write([]byte(`[{"id": 2, "shortname": "MATH101"}]`))
		default:
			w.Write([]byte(`null`))
		}
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "T1", zerolog.Nop())
	require.NoError(t, err)

	t.Run("GET sends query parameters", func(t *testing.T) {
		var out []struct {
			ID        int    `json:"id"`
			ShortName string `json:"shortname"`
		}
		params := url.Values{"options[ids][0]": {"2"}}

		resp, err := client.Get(context.Background(), "core_course_get_courses", params, &out)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "core_course_get_courses", resp.Function)
		require.Len(t, out, 1)
		assert.Equal(t, "MATH101", out[0].ShortName)

		r := received[len(received)-1]
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, Endpoint, r.URL.Path)
		assert.Equal(t, "T1", r.URL.Query().Get("wstoken"))
		assert.Equal(t, "json", r.URL.Query().Get("moodlewsrestformat"))
		assert.Equal(t, "2", r.URL.Query().Get("options[ids][0]"))

		// caller's params are not modified
		assert.Equal(t, url.Values{"options[ids][0]": {"2"}}, params)
	})

	t.Run("POST sends a form body", func(t *testing.T) {
		resp, err := client.Post(context.Background(), "core_course_delete_courses", url.Values{"courseids[0]": {"7"}}, nil)
		require.NoError(t, err)
		assert.Equal(t, []byte("null"), resp.Body)

		r := received[len(received)-1]
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Empty(t, r.URL.RawQuery)
		assert.Equal(t, "T1", r.PostForm.Get("wstoken"))
		assert.Equal(t, "json", r.PostForm.Get("moodlewsrestformat"))
		assert.Equal(t, "core_course_delete_courses", r.PostForm.Get("wsfunction"))
		assert.Equal(t, "7", r.PostForm.Get("courseids[0]"))
	})

	t.Run("reserved parameter", func(t *testing.T) {
		before := len(received)
		for _, key := range []string{"wstoken", "moodlewsrestformat", "wsfunction"} {
			_, err := client.Post(context.Background(), "core_course_delete_courses", url.Values{key: {"x"}}, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrReservedParam))
		}
		assert.Len(t, received, before)
	})

	t.Run("missing function", func(t *testing.T) {
		_, err := client.Get(context.Background(), "", nil, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, form.ErrMissingRequired))
	})

	t.Run("unsupported method", func(t *testing.T) {
		_, err := client.Call(context.Background(), http.MethodPut, "core_course_get_courses", nil, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnsupportedMethod))
	})

	t.Run("base parameters on every call", func(t *testing.T) {
		for _, f := range forms {
			assert.Equal(t, "T1", f.Get("wstoken"))
			assert.Equal(t, "json", f.Get("moodlewsrestformat"))
		}
	})
}

func TestCallErrors(t *testing.T) {
	t.Run("remote exception", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"exception":"moodle_exception","errorcode":"invalidtoken","message":"Invalid token - token not found"}`))
		}))
		defer server.Close()

		client, err := NewClient(server.URL, "bad", zerolog.Nop())
		require.NoError(t, err)

		var out []any
		resp, err := client.Get(context.Background(), "core_webservice_get_site_info", nil, &out)
		require.Error(t, err)
		require.NotNil(t, resp)

		var remoteErr *RemoteError
		require.True(t, errors.As(err, &remoteErr))
		assert.Equal(t, "moodle_exception", remoteErr.Exception)
		assert.Equal(t, "invalidtoken", remoteErr.ErrorCode)
		assert.Equal(t, "Invalid token - token not found", remoteErr.Message)
		assert.Equal(t, "core_webservice_get_site_info", remoteErr.Function)
		assert.True(t, remoteErr.IsInvalidToken())
		assert.Nil(t, out)
	})

	t.Run("http status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte("forbidden"))
		}))
		defer server.Close()

		client, err := NewClient(server.URL, "T1", zerolog.Nop())
		require.NoError(t, err)

		resp, err := client.Get(context.Background(), "core_webservice_get_site_info", nil, nil)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.True(t, apiErr.IsUnauthorized())
		assert.Equal(t, "forbidden", apiErr.Body)
	})

	t.Run("not json", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>maintenance</html>"))
		}))
		defer server.Close()

		client, err := NewClient(server.URL, "T1", zerolog.Nop())
		require.NoError(t, err)

		_, err = client.Get(context.Background(), "core_webservice_get_site_info", nil, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidResponse))
	})

	t.Run("transport failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		serverURL := server.URL
		server.Close()

		client, err := NewClient(serverURL, "T1", zerolog.Nop())
		require.NoError(t, err)

		resp, err := client.Post(context.Background(), "core_course_delete_courses", nil, nil)
		require.Error(t, err)
		assert.Nil(t, resp)

		var transportErr *TransportError
		require.True(t, errors.As(err, &transportErr))
		assert.Equal(t, "core_course_delete_courses", transportErr.Function)
	})

	t.Run("cancelled context is not retried", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Write([]byte("null"))
		}))
		defer server.Close()

		client, err := NewClient(server.URL, "T1", zerolog.Nop())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = client.Post(ctx, "core_course_create_courses", nil, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Equal(t, int32(0), calls.Load())
	})
}

func TestAPIError(t *testing.T) {
	err := &APIError{StatusCode: 404, Message: "Not Found"}
	assert.Equal(t, "moodle API error: status 404: Not Found", err.Error())
	assert.True(t, err.IsNotFound())
	assert.False(t, err.IsUnauthorized())

	for code, want := range map[int]bool{401: true, 403: true, 404: false, 500: false} {
		assert.Equal(t, want, (&APIError{StatusCode: code}).IsUnauthorized())
	}
}

func TestRemoteError(t *testing.T) {
	err := &RemoteError{
		Function:  "core_course_create_categories",
		Exception: "webservice_access_exception",
		ErrorCode: "accessexception",
		Message:   "Access control exception",
	}
	assert.Equal(t, "moodle core_course_create_categories: accessexception: Access control exception", err.Error())
	assert.True(t, err.IsAccessDenied())
	assert.False(t, err.IsInvalidToken())

	err.DebugInfo = "missing capability"
	assert.Contains(t, err.Error(), "(missing capability)")
}
