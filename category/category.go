package category

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/s0up4200/muddle/form"
	"github.com/s0up4200/muddle/moodle"
)

// API wraps the category functions of one Moodle site
type API struct {
	client *moodle.Client
}

// New creates a category API using client
func New(client *moodle.Client) *API {
	return &API{client: client}
}

// Details returns the category with the given id, or nil if the token cannot see it
func (a *API) Details(ctx context.Context, id int) (*Category, *moodle.Response, error) {
	categories, resp, err := a.Find(ctx, Criterion{Key: "id", Value: strconv.Itoa(id)})
	if err != nil {
		return nil, resp, err
	}
	if len(categories) == 0 {
		return nil, resp, nil
	}
	return &categories[0], resp, nil
}

// Find returns the categories matching every criterion
func (a *API) Find(ctx context.Context, criteria ...Criterion) ([]Category, *moodle.Response, error) {
	params := url.Values{}
	if err := form.Records(params, "criteria", criteria); err != nil {
		return nil, nil, err
	}

	var categories []Category
	resp, err := a.client.Get(ctx, "core_course_get_categories", params, &categories)
	if err != nil {
		return nil, resp, err
	}
	return categories, resp, nil
}

// Create makes one category named name
func (a *API) Create(ctx context.Context, name string, opts CreateOptions) (*Created, *moodle.Response, error) {
	created, resp, err := a.CreateMany(ctx, []NewCategory{{Name: name, CreateOptions: opts}})
	if err != nil {
		return nil, resp, err
	}
	if len(created) == 0 {
		return nil, resp, fmt.Errorf("%w: no category returned", moodle.ErrInvalidResponse)
	}
	return &created[0], resp, nil
}

// CreateMany makes one category per record in a single call
func (a *API) CreateMany(ctx context.Context, categories []NewCategory) ([]Created, *moodle.Response, error) {
	for i, c := range categories {
		if err := form.Require(map[string]any{"name": c.Name}); err != nil {
			return nil, nil, fmt.Errorf("category %d: %w", i, err)
		}
	}

	params := url.Values{}
	if err := form.Records(params, "categories", categories); err != nil {
		return nil, nil, err
	}

	var created []Created
	resp, err := a.client.Post(ctx, "core_course_create_categories", params, &created)
	if err != nil {
		return nil, resp, err
	}
	return created, resp, nil
}

// Delete removes the categories ids, applying opts to each of them
func (a *API) Delete(ctx context.Context, opts DeleteOptions, ids ...int) (*moodle.Response, error) {
	requests := make([]DeleteRequest, len(ids))
	for i, id := range ids {
		requests[i] = DeleteRequest{
			ID:        id,
			Recursive: opts.Recursive,
			NewParent: opts.NewParent,
		}
	}
	return a.DeleteEach(ctx, requests)
}

// DeleteEach removes categories with per-category options
func (a *API) DeleteEach(ctx context.Context, requests []DeleteRequest) (*moodle.Response, error) {
	if err := form.Require(map[string]any{"categories": requests}); err != nil {
		return nil, err
	}

	params := url.Values{}
	if err := form.Records(params, "categories", requests); err != nil {
		return nil, err
	}
	return a.client.Post(ctx, "core_course_delete_categories", params, nil)
}

// Update changes the fields of category id that are set in opts
func (a *API) Update(ctx context.Context, id int, opts UpdateOptions) (*moodle.Response, error) {
	params := url.Values{
		form.Key("categories", 0, "id"): {strconv.Itoa(id)},
	}
	if err := form.Record(params, form.Key("categories", 0), opts); err != nil {
		return nil, err
	}
	return a.client.Post(ctx, "core_course_update_categories", params, nil)
}
