package category

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/muddle/form"
	"github.com/s0up4200/muddle/moodle"
	"github.com/s0up4200/muddle/moodle/moodletest"
)

func TestDelete(t *testing.T) {
	srv := moodletest.NewServer(t, "null")
	client := srv.Client()

	// the endpoint suffix is appended to the server's base URL
	assert.Equal(t, srv.URL+moodle.Endpoint, client.URL())

	_, err := New(client).Delete(context.Background(), DeleteOptions{NewParent: moodle.Ptr(5)}, 10, 11)
	require.NoError(t, err)

	req := srv.Last()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, moodle.Endpoint, req.Path)
	assert.Equal(t, url.Values{
		"wstoken":                  {moodletest.Token},
		"moodlewsrestformat":       {"json"},
		"wsfunction":               {"core_course_delete_categories"},
		"categories[0][id]":        {"10"},
		"categories[0][recursive]": {"0"},
		"categories[0][newparent]": {"5"},
		"categories[1][id]":        {"11"},
		"categories[1][recursive]": {"0"},
		"categories[1][newparent]": {"5"},
	}, req.Params)
}

func TestDeleteEach(t *testing.T) {
	srv := moodletest.NewServer(t, "null")
	api := New(srv.Client())

	t.Run("per category options", func(t *testing.T) {
		_, err := api.DeleteEach(context.Background(), []DeleteRequest{
			{ID: 10, Recursive: true},
			{ID: 11, NewParent: moodle.Ptr(2)},
		})
		require.NoError(t, err)

		params := srv.Last().Params
		assert.Equal(t, "1", params.Get("categories[0][recursive]"))
		assert.NotContains(t, params, "categories[0][newparent]")
		assert.Equal(t, "0", params.Get("categories[1][recursive]"))
		assert.Equal(t, "2", params.Get("categories[1][newparent]"))
	})

	t.Run("nothing to delete", func(t *testing.T) {
		before := len(srv.Requests())
		_, err := api.DeleteEach(context.Background(), nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, form.ErrMissingRequired))
		assert.Len(t, srv.Requests(), before)
	})
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name     string
		catName  string
		opts     CreateOptions
		expected url.Values
	}{
		{
			name:    "name only",
			catName: "Science",
			expected: url.Values{
				"categories[0][name]": {"Science"},
			},
		},
		{
			name:    "with options",
			catName: "Physics",
			opts: CreateOptions{
				Parent:            moodle.Ptr(3),
				Description:       "Department of Physics",
				DescriptionFormat: moodle.Ptr(moodle.FormatMarkdown),
				Theme:             "boost",
			},
			expected: url.Values{
				"categories[0][name]":              {"Physics"},
				"categories[0][parent]":            {"3"},
				"categories[0][description]":       {"Department of Physics"},
				"categories[0][descriptionformat]": {"4"},
				"categories[0][theme]":             {"boost"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := moodletest.NewServer(t, `[{"id": 42, "name": "`+tt.catName+`"}]`)

			created, _, err := New(srv.Client()).Create(context.Background(), tt.catName, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, &Created{ID: 42, Name: tt.catName}, created)

			req := srv.Last()
			assert.Equal(t, "core_course_create_categories", req.Function())
			for key := range req.Params {
				switch key {
				case "wstoken", "moodlewsrestformat", "wsfunction":
					continue
				}
				assert.Contains(t, tt.expected, key)
			}
			for key, want := range tt.expected {
				assert.Equal(t, want, req.Params[key], key)
			}
		})
	}
}

func TestCreateMany(t *testing.T) {
	srv := moodletest.NewServer(t, `[{"id": 1, "name": "A"}, {"id": 2, "name": "B"}, {"id": 3, "name": "C"}]`)
	api := New(srv.Client())

	created, _, err := api.CreateMany(context.Background(), []NewCategory{
		{Name: "A"},
		{Name: "B", CreateOptions: CreateOptions{Parent: moodle.Ptr(1)}},
		{Name: "C"},
	})
	require.NoError(t, err)
	assert.Len(t, created, 3)

	params := srv.Last().Params
	assert.Equal(t, "A", params.Get("categories[0][name]"))
	assert.Equal(t, "B", params.Get("categories[1][name]"))
	assert.Equal(t, "1", params.Get("categories[1][parent]"))
	assert.Equal(t, "C", params.Get("categories[2][name]"))
	assert.NotContains(t, params, "categories[3][name]")

	t.Run("missing name", func(t *testing.T) {
		before := len(srv.Requests())
		_, _, err := api.CreateMany(context.Background(), []NewCategory{{Name: "ok"}, {}})
		require.Error(t, err)
		assert.True(t, errors.Is(err, form.ErrMissingRequired))
		assert.Contains(t, err.Error(), "category 1")
		assert.Len(t, srv.Requests(), before)
	})
}

func TestCreateOptionsFromMap(t *testing.T) {
	srv := moodletest.NewServer(t, `[{"id": 1, "name": "A"}]`)

	t.Run("unknown option", func(t *testing.T) {
		var opts CreateOptions
		err := form.Decode(map[string]any{"parent": "3", "colour": "red"}, &opts)
		require.Error(t, err)
		assert.True(t, errors.Is(err, form.ErrInvalidOption))

		var invalid *form.InvalidOptionError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, []string{"colour"}, invalid.Options)
		assert.Empty(t, srv.Requests())
	})

	t.Run("known options", func(t *testing.T) {
		var opts CreateOptions
		require.NoError(t, form.Decode(map[string]any{"parent": "3", "descriptionformat": "2"}, &opts))

		_, _, err := New(srv.Client()).Create(context.Background(), "A", opts)
		require.NoError(t, err)

		params := srv.Last().Params
		assert.Equal(t, "3", params.Get("categories[0][parent]"))
		assert.Equal(t, "2", params.Get("categories[0][descriptionformat]"))
	})
}

func TestDetails(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		srv := moodletest.NewServer(t, `[{"id": 10, "name": "Arts", "parent": 0, "coursecount": 4, "path": "/10"}]`)

		cat, _, err := New(srv.Client()).Details(context.Background(), 10)
		require.NoError(t, err)
		require.NotNil(t, cat)
		assert.Equal(t, "Arts", cat.Name)
		assert.Equal(t, 4, cat.CourseCount)

		req := srv.Last()
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "core_course_get_categories", req.Function())
		assert.Equal(t, "id", req.Params.Get("criteria[0][key]"))
		assert.Equal(t, "10", req.Params.Get("criteria[0][value]"))
	})

	t.Run("not visible", func(t *testing.T) {
		srv := moodletest.NewServer(t, `[]`)

		cat, resp, err := New(srv.Client()).Details(context.Background(), 99)
		require.NoError(t, err)
		assert.Nil(t, cat)
		assert.NotNil(t, resp)
	})
}

func TestUpdate(t *testing.T) {
	srv := moodletest.NewServer(t, "null")

	_, err := New(srv.Client()).Update(context.Background(), 10, UpdateOptions{
		Name:     "Renamed",
		IDNumber: "CAT-10",
	})
	require.NoError(t, err)

	req := srv.Last()
	assert.Equal(t, "core_course_update_categories", req.Function())
	assert.Equal(t, "10", req.Params.Get("categories[0][id]"))
	assert.Equal(t, "Renamed", req.Params.Get("categories[0][name]"))
	assert.Equal(t, "CAT-10", req.Params.Get("categories[0][idnumber]"))
	assert.NotContains(t, req.Params, "categories[0][parent]")
	assert.NotContains(t, req.Params, "categories[0][theme]")
}

func TestRemoteFailure(t *testing.T) {
	srv := moodletest.NewServer(t, `{"exception":"moodle_exception","errorcode":"cannotdeletecategory","message":"Cannot delete category"}`)

	resp, err := New(srv.Client()).Delete(context.Background(), DeleteOptions{}, 1)
	require.Error(t, err)
	require.NotNil(t, resp)

	var remoteErr *moodle.RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, "cannotdeletecategory", remoteErr.ErrorCode)
}
