package course

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/s0up4200/muddle/form"
	"github.com/s0up4200/muddle/moodle"
)

// API wraps the core_course functions of one Moodle site
type API struct {
	client *moodle.Client
}

// New creates a course API using client
func New(client *moodle.Client) *API {
	return &API{client: client}
}

// Create makes one course in category categoryID
func (a *API) Create(ctx context.Context, fullname, shortname string, categoryID int, opts CreateOptions) (*Created, *moodle.Response, error) {
	created, resp, err := a.CreateMany(ctx, []NewCourse{{
		FullName:      fullname,
		ShortName:     shortname,
		CategoryID:    categoryID,
		CreateOptions: opts,
	}})
	if err != nil {
		return nil, resp, err
	}
	if len(created) == 0 {
		return nil, resp, fmt.Errorf("%w: no course returned", moodle.ErrInvalidResponse)
	}
	return &created[0], resp, nil
}

// CreateMany makes one course per record in a single call
func (a *API) CreateMany(ctx context.Context, courses []NewCourse) ([]Created, *moodle.Response, error) {
	for i, c := range courses {
		err := form.Require(map[string]any{
			"fullname":   c.FullName,
			"shortname":  c.ShortName,
			"categoryid": c.CategoryID,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("course %d: %w", i, err)
		}
	}

	params := url.Values{}
	if err := form.Records(params, "courses", courses); err != nil {
		return nil, nil, err
	}

	var created []Created
	resp, err := a.client.Post(ctx, "core_course_create_courses", params, &created)
	if err != nil {
		return nil, resp, err
	}
	return created, resp, nil
}

// Get returns the courses with the given ids, or every course when ids is empty
func (a *API) Get(ctx context.Context, ids ...int) ([]Course, *moodle.Response, error) {
	params := url.Values{}
	form.List(params, form.Key("options", "ids"), ids)

	var courses []Course
	resp, err := a.client.Get(ctx, "core_course_get_courses", params, &courses)
	if err != nil {
		return nil, resp, err
	}
	return courses, resp, nil
}

// GetByField returns the courses whose field (id, ids, shortname, idnumber, category) matches value
func (a *API) GetByField(ctx context.Context, field, value string) (*FieldResult, *moodle.Response, error) {
	if err := form.Require(map[string]any{"field": field}); err != nil {
		return nil, nil, err
	}

	params := url.Values{
		"field": {field},
		"value": {value},
	}

	var result FieldResult
	resp, err := a.client.Get(ctx, "core_course_get_courses_by_field", params, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

// Delete removes the courses ids. Moodle reports courses it could not
// delete as warnings in the response body.
func (a *API) Delete(ctx context.Context, ids ...int) (*moodle.Response, error) {
	if err := form.Require(map[string]any{"courseids": ids}); err != nil {
		return nil, err
	}

	params := url.Values{}
	form.List(params, "courseids", ids)
	return a.client.Post(ctx, "core_course_delete_courses", params, nil)
}

// Contents returns the sections and modules of a course page
func (a *API) Contents(ctx context.Context, courseID int) ([]Section, *moodle.Response, error) {
	params := url.Values{
		"courseid": {strconv.Itoa(courseID)},
	}

	var sections []Section
	resp, err := a.client.Get(ctx, "core_course_get_contents", params, &sections)
	if err != nil {
		return nil, resp, err
	}
	return sections, resp, nil
}

// Duplicate copies course courseID into a new course. It can take a long
// time on large courses, so ctx should allow for it.
func (a *API) Duplicate(ctx context.Context, courseID int, fullname, shortname string, categoryID int, visible bool, opts DuplicateOptions) (*Created, *moodle.Response, error) {
	err := form.Require(map[string]any{
		"fullname":   fullname,
		"shortname":  shortname,
		"categoryid": categoryID,
	})
	if err != nil {
		return nil, nil, err
	}

	params := url.Values{
		"courseid":   {strconv.Itoa(courseID)},
		"fullname":   {fullname},
		"shortname":  {shortname},
		"categoryid": {strconv.Itoa(categoryID)},
		"visible":    {form.Bool(visible)},
	}
	if err := form.NameValues(params, "options", opts); err != nil {
		return nil, nil, err
	}

	var created Created
	resp, err := a.client.Post(ctx, "core_course_duplicate_course", params, &created)
	if err != nil {
		return nil, resp, err
	}
	return &created, resp, nil
}

// Import copies the activities of course from into course to, without user
// data. deleteContent empties the target course first.
func (a *API) Import(ctx context.Context, from, to int, deleteContent bool) (*moodle.Response, error) {
	params := url.Values{
		"importfrom":    {strconv.Itoa(from)},
		"importto":      {strconv.Itoa(to)},
		"deletecontent": {form.Bool(deleteContent)},
	}
	return a.client.Post(ctx, "core_course_import_course", params, nil)
}
