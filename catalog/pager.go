package catalog

import (
	"context"
	"fmt"
)

// Pager returns one page of the catalog list. Pages are numbered from 1.
type Pager interface {
	Page(ctx context.Context, page int) ([]Item, error)
}

// PagerFunc adapts a function to Pager.
type PagerFunc func(ctx context.Context, page int) ([]Item, error)

func (f PagerFunc) Page(ctx context.Context, page int) ([]Item, error) { return f(ctx, page) }

// DefaultMaxPages bounds how many list pages a PagedLister requests.
const DefaultMaxPages = 200

// PagedLister walks a paginated list until a page is empty, a page adds no
// unseen codes, or maxPages is reached. Items keep their first-seen order.
type PagedLister struct {
	pager    Pager
	maxPages int
}

var _ Lister = (*PagedLister)(nil)

// NewPagedLister creates a lister over pager. A maxPages below 1 uses
// DefaultMaxPages.
func NewPagedLister(pager Pager, maxPages int) (*PagedLister, error) {
	if pager == nil {
		return nil, ErrPagerRequired
	}
	if maxPages < 1 {
		maxPages = DefaultMaxPages
	}
	return &PagedLister{pager: pager, maxPages: maxPages}, nil
}

func (l *PagedLister) List(ctx context.Context) ([]Item, error) {
	seen := make(map[string]struct{})
	var items []Item

	for page := 1; page <= l.maxPages; page++ {
		pageItems, err := l.pager.Page(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("list page %d: %w", page, err)
		}

		added := 0
		for _, item := range pageItems {
			if _, dup := seen[item.Code]; dup {
				continue
			}
			seen[item.Code] = struct{}{}
			items = append(items, item)
			added++
		}
		if len(pageItems) == 0 || added == 0 {
			break
		}
	}

	if len(items) == 0 {
		return nil, ErrEmptyCatalog
	}
	return items, nil
}
