// Package listview derives the visible page of a fetched collection from
// search text, an equality filter and pagination.
package listview

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oceanticsports/oceantic-admin/internal/client/models"
	"github.com/oceanticsports/oceantic-admin/internal/client/resource"
	"github.com/oceanticsports/oceantic-admin/internal/common"
)

// DefaultPageSize is used when no positive page size is configured.
const DefaultPageSize = 5

// Controller holds list state for one page. The page number is kept inside
// [1, TotalPages()] after every change. Not safe for concurrent use.
type Controller struct {
	searchFields []string
	filterField  string
	size         int

	items  []models.Record
	query  string
	filter string
	page   int
}

// New returns a controller matching search text against searchFields and
// filter values against filterField ("" disables filtering).
func New(searchFields []string, filterField string, pageSize int) *Controller {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Controller{
		searchFields: searchFields,
		filterField:  filterField,
		size:         pageSize,
		page:         1,
	}
}

// ForResource returns a controller configured from d.
func ForResource(d *resource.Descriptor, pageSize int) *Controller {
	return New(d.Search, d.Filter, pageSize)
}

// SetItems replaces the collection, e.g. after a re-fetch. The page is
// re-clamped since the collection may have shrunk.
func (c *Controller) SetItems(items []models.Record) {
	c.items = items
	c.clamp()
}

// SetSearch changes the search text and returns to the first page.
func (c *Controller) SetSearch(q string) {
	c.query = q
	c.page = 1
	c.clamp()
}

// SetFilter changes the filter value and returns to the first page. An
// empty value disables the filter.
func (c *Controller) SetFilter(v string) error {
	if c.filterField == "" && v != "" {
		return fmt.Errorf("filter: %w", common.ErrUnsupportedOperation)
	}
	c.filter = v
	c.page = 1
	c.clamp()
	return nil
}

// SetPage moves to page n, clamped into range.
func (c *Controller) SetPage(n int) {
	c.page = n
	c.clamp()
}

func (c *Controller) Next() { c.SetPage(c.page + 1) }
func (c *Controller) Prev() { c.SetPage(c.page - 1) }

func (c *Controller) Page() int           { return c.page }
func (c *Controller) PageSize() int       { return c.size }
func (c *Controller) Search() string      { return c.query }
func (c *Controller) Filter() string      { return c.filter }
func (c *Controller) FilterField() string { return c.filterField }
func (c *Controller) Total() int          { return len(c.items) }

// Items returns the whole fetched collection.
func (c *Controller) Items() []models.Record {
	return c.items
}

// Filtered returns the records matching the search text and the filter.
func (c *Controller) Filtered() []models.Record {
	q := strings.ToLower(c.query)
	out := make([]models.Record, 0, len(c.items))
	for _, r := range c.items {
		if q != "" && !c.matches(r, q) {
			continue
		}
		if c.filter != "" && r.Text(c.filterField) != c.filter {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (c *Controller) matches(r models.Record, q string) bool {
	for _, f := range c.searchFields {
		if strings.Contains(strings.ToLower(r.Text(f)), q) {
			return true
		}
	}
	return false
}

// TotalPages is never less than 1.
func (c *Controller) TotalPages() int {
	return pages(len(c.Filtered()), c.size)
}

// Visible returns the current page of Filtered.
func (c *Controller) Visible() []models.Record {
	filtered := c.Filtered()
	start := (c.page - 1) * c.size
	if start >= len(filtered) {
		return []models.Record{}
	}
	end := start + c.size
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// Categories returns the distinct non-empty values of the filter field
// across the whole collection, sorted.
func (c *Controller) Categories() []string {
	if c.filterField == "" {
		return nil
	}
	seen := map[string]struct{}{}
	for _, r := range c.items {
		if v := r.Text(c.filterField); v != "" {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (c *Controller) clamp() {
	total := c.TotalPages()
	if c.page > total {
		c.page = total
	}
	if c.page < 1 {
		c.page = 1
	}
}

func pages(n, size int) int {
	if n == 0 {
		return 1
	}
	return (n + size - 1) / size
}
