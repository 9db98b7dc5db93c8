package domain

import (
	"net/url"
	"sort"
	"strconv"
)

const (
	// linkWindow is the number of page links shown either side of the current page
	linkWindow = 3
	// linkAllThreshold is the page count up to which every page gets a link
	linkAllThreshold = 12
)

// MaxPage bounds the requested page number
const MaxPage = 100000

// PageLink is one entry in the navigation list of a paginated response.
// URL is nil for entries that cannot be navigated to.
type PageLink struct {
	URL    *string `json:"url"`
	Label  string  `json:"label"`
	Active bool    `json:"active"`
}

// PaginatedResponse is the page descriptor returned by every list endpoint
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
	Links      []PageLink  `json:"links"`
}

// NewPaginatedResponse builds a page descriptor. TotalPages is at least 1.
func NewPaginatedResponse(data interface{}, total int64, page, pageSize int) *PaginatedResponse {
	totalPages := 1
	if pageSize > 0 && total > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return &PaginatedResponse{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Links:      []PageLink{},
	}
}

// WithLinks fills Links using base as the URL template. Existing query
// parameters on base are kept and "page" is replaced per link.
func (p *PaginatedResponse) WithLinks(base *url.URL) *PaginatedResponse {
	if base == nil {
		return p
	}

	links := make([]PageLink, 0, linkAllThreshold)

	var prev *string
	if p.Page > 1 {
		prev = pageURL(base, p.Page-1)
	}
	links = append(links, PageLink{URL: prev, Label: "Previous"})

	last := 0
	for _, n := range visiblePages(p.Page, p.TotalPages) {
		if last != 0 && n > last+1 {
			links = append(links, PageLink{Label: "..."})
		}
		links = append(links, PageLink{
			URL:    pageURL(base, n),
			Label:  strconv.Itoa(n),
			Active: n == p.Page,
		})
		last = n
	}

	var next *string
	if p.Page < p.TotalPages {
		next = pageURL(base, p.Page+1)
	}
	links = append(links, PageLink{URL: next, Label: "Next"})

	p.Links = links
	return p
}

func visiblePages(current, total int) []int {
	if total <= linkAllThreshold {
		pages := make([]int, 0, total)
		for i := 1; i <= total; i++ {
			pages = append(pages, i)
		}
		return pages
	}

	set := map[int]bool{1: true, 2: true, total - 1: true, total: true}
	for i := current - linkWindow; i <= current+linkWindow; i++ {
		if i >= 1 && i <= total {
			set[i] = true
		}
	}

	pages := make([]int, 0, len(set))
	for n := range set {
		pages = append(pages, n)
	}
	sort.Ints(pages)
	return pages
}

func pageURL(base *url.URL, page int) *string {
	u := *base
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
