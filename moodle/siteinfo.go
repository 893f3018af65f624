package moodle

import (
	"context"
	"fmt"
	"strings"

	"github.com/blang/semver"
)

// SiteInfo describes the site and the user the token belongs to
type SiteInfo struct {
	SiteName       string     `json:"sitename"`
	SiteURL        string     `json:"siteurl"`
	UserID         int        `json:"userid"`
	UserName       string     `json:"username"`
	FirstName      string     `json:"firstname"`
	LastName       string     `json:"lastname"`
	FullName       string     `json:"fullname"`
	Lang           string     `json:"lang"`
	UserPictureURL string     `json:"userpictureurl"`
	Release        string     `json:"release"`
	Version        string     `json:"version"`
	Functions      []Function `json:"functions"`
}

// Function is a web-service function the token may call
type Function struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// SemVer parses the release string, e.g. "4.1.2+ (Build: 20230317)"
func (s *SiteInfo) SemVer() (semver.Version, error) {
	fields := strings.Fields(s.Release)
	if len(fields) == 0 {
		return semver.Version{}, fmt.Errorf("empty release string")
	}
	return semver.ParseTolerant(strings.TrimRight(fields[0], "+"))
}

// HasFunction checks if the token is allowed to call the named function
func (s *SiteInfo) HasFunction(name string) bool {
	for _, f := range s.Functions {
		if f.Name == name {
			return true
		}
	}
	return false
}

// SiteInfo retrieves core_webservice_get_site_info
func (c *Client) SiteInfo(ctx context.Context) (*SiteInfo, *Response, error) {
	var info SiteInfo
	resp, err := c.Get(ctx, "core_webservice_get_site_info", nil, &info)
	if err != nil {
		return nil, resp, err
	}
	return &info, resp, nil
}

// Ping tests the connection and the token
func (c *Client) Ping(ctx context.Context) error {
	info, _, err := c.SiteInfo(ctx)
	if err != nil {
		return err
	}

	c.logger.Debug().
		Str("site", info.SiteName).
		Str("user", info.UserName).
		Str("release", info.Release).
		Msg("Successfully connected to Moodle")
	return nil
}
