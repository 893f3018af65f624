package moodle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blang/semver"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteInfoSemVer(t *testing.T) {
	tests := []struct {
		name    string
		release string
		want    semver.Version
		wantErr bool
	}{
		{
			name:    "release with build",
			release: "4.1.2+ (Build: 20230317)",
			want:    semver.Version{Major: 4, Minor: 1, Patch: 2},
		},
		{
			name:    "short release",
			release: "3.9",
			want:    semver.Version{Major: 3, Minor: 9},
		},
		{
			name:    "empty",
			release: "",
			wantErr: true,
		},
		{
			name:    "garbage",
			release: "unknown",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := &SiteInfo{Release: tt.release}
			got, err := info.SemVer()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equals(got), "got %s", got)
		})
	}
}

func TestSiteInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "core_webservice_get_site_info", r.URL.Query().Get("wsfunction"))
		w.Write([]byte(`{
			"sitename": "Example Campus",
			"username": "wsuser",
			"userid": 3,
			"release": "4.3 (Build: 20231009)",
			"functions": [{"name": "core_course_get_courses", "version": "2023100900"}]
		}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "T1", zerolog.Nop())
	require.NoError(t, err)

	info, resp, err := client.SiteInfo(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "Example Campus", info.SiteName)
	assert.Equal(t, 3, info.UserID)
	assert.True(t, info.HasFunction("core_course_get_courses"))
	assert.False(t, info.HasFunction("core_course_delete_courses"))

	require.NoError(t, client.Ping(context.Background()))
}
