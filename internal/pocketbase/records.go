package pocketbase

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Batch size used by GetFullList
const fullListBatch = 500

// RecordService issues record queries against one collection and decodes
// the results as T.
type RecordService[T any] struct {
	client     *Client
	collection string
}

// Collection binds a typed record service to the named collection.
func Collection[T any](c *Client, name string) *RecordService[T] {
	return &RecordService[T]{
		client:     c,
		collection: name,
	}
}

func (s *RecordService[T]) Name() string {
	return s.collection
}

// ListOptions are the optional query parameters of a list request.
type ListOptions struct {
	Sort      string
	Filter    string
	Expand    string
	Fields    string
	SkipTotal bool
}

func (o *ListOptions) values() url.Values {
	q := url.Values{}
	if o == nil {
		return q
	}
	if o.Sort != "" {
		q.Set("sort", o.Sort)
	}
	if o.Filter != "" {
		q.Set("filter", o.Filter)
	}
	if o.Expand != "" {
		q.Set("expand", o.Expand)
	}
	if o.Fields != "" {
		q.Set("fields", o.Fields)
	}
	if o.SkipTotal {
		q.Set("skipTotal", "1")
	}
	return q
}

// QueryOptions apply to single-record requests.
type QueryOptions struct {
	Expand string
	Fields string
}

func (o *QueryOptions) values() url.Values {
	q := url.Values{}
	if o == nil {
		return q
	}
	if o.Expand != "" {
		q.Set("expand", o.Expand)
	}
	if o.Fields != "" {
		q.Set("fields", o.Fields)
	}
	return q
}

// ListResult is one page of records. TotalItems and TotalPages are -1 when
// the request skipped the total count.
type ListResult[T any] struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
	Items      []T `json:"items"`
}

func (s *RecordService[T]) basePath() string {
	return "/api/collections/" + url.PathEscape(s.collection) + "/records"
}

func (s *RecordService[T]) recordPath(id string) string {
	return s.basePath() + "/" + url.PathEscape(id)
}

// GetList returns a single page of records. page starts at 1.
func (s *RecordService[T]) GetList(ctx context.Context, page, perPage int, opts *ListOptions) (*ListResult[T], error) {
	q := opts.values()
	q.Set("page", strconv.Itoa(page))
	q.Set("perPage", strconv.Itoa(perPage))

	var res ListResult[T]
	if err := s.client.Send(ctx, http.MethodGet, s.basePath(), q, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetFullList walks every page until a short page comes back.
func (s *RecordService[T]) GetFullList(ctx context.Context, opts *ListOptions) ([]T, error) {
	all := ListOptions{}
	if opts != nil {
		all = *opts
	}
	all.SkipTotal = true

	var items []T
	for page := 1; ; page++ {
		res, err := s.GetList(ctx, page, fullListBatch, &all)
		if err != nil {
			return nil, err
		}
		items = append(items, res.Items...)
		if len(res.Items) < fullListBatch {
			break
		}
	}
	return items, nil
}

// GetFirstListItem returns the first record matching filter, or a 404
// *ResponseError if there is none.
func (s *RecordService[T]) GetFirstListItem(ctx context.Context, filter string, opts *QueryOptions) (*T, error) {
	lo := &ListOptions{Filter: filter, SkipTotal: true}
	if opts != nil {
		lo.Expand = opts.Expand
		lo.Fields = opts.Fields
	}

	res, err := s.GetList(ctx, 1, 1, lo)
	if err != nil {
		return nil, err
	}
	if len(res.Items) == 0 {
		return nil, &ResponseError{
			Status:  http.StatusNotFound,
			Message: "The requested resource wasn't found.",
		}
	}
	return &res.Items[0], nil
}

func (s *RecordService[T]) GetOne(ctx context.Context, id string, opts *QueryOptions) (*T, error) {
	var rec T
	if err := s.client.Send(ctx, http.MethodGet, s.recordPath(id), opts.values(), nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create inserts a record. body is anything that encodes to the record's
// JSON fields.
func (s *RecordService[T]) Create(ctx context.Context, body any) (*T, error) {
	var rec T
	if err := s.client.Send(ctx, http.MethodPost, s.basePath(), nil, body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *RecordService[T]) Update(ctx context.Context, id string, body any) (*T, error) {
	var rec T
	if err := s.client.Send(ctx, http.MethodPatch, s.recordPath(id), nil, body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *RecordService[T]) Delete(ctx context.Context, id string) error {
	return s.client.Send(ctx, http.MethodDelete, s.recordPath(id), nil, nil, nil)
}
