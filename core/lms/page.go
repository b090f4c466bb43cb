// Package lms holds the portal's clients for the domain resources of the remote API: courses,
// lessons, exams, payments, subscriptions, support tickets, users and so on.
package lms

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
)

// Paging defaults
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

// PageRequest selects a page of a listing.
type PageRequest struct {
	Number int `query:"pageNumber" json:"pageNumber"`
	Size   int `query:"pageSize" json:"pageSize"`
}

// NewPageRequest returns a normalized PageRequest.
func NewPageRequest(number, size int) PageRequest {
	return PageRequest{Number: number, Size: size}.Normalize()
}

// Normalize applies the defaults and clamps the page size to 1..MaxPageSize.
func (p PageRequest) Normalize() PageRequest {
	if p.Number < 1 {
		p.Number = DefaultPageNumber
	}
	switch {
	case p.Size == 0:
		p.Size = DefaultPageSize
	case p.Size < 1:
		p.Size = 1
	case p.Size > MaxPageSize:
		p.Size = MaxPageSize
	}
	return p
}

func (p PageRequest) Values() url.Values {
	p = p.Normalize()
	return url.Values{
		"pageNumber": {strconv.Itoa(p.Number)},
		"pageSize":   {strconv.Itoa(p.Size)},
	}
}

// Page is one page of a listing.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// UnmarshalJSON accepts the standard envelope, the {data, totalRecords} variant some endpoints
// use, and a bare array.
func (p *Page[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*p = Page[T]{Items: items, TotalCount: len(items), PageNumber: 1, PageSize: len(items), TotalPages: 1}
		p.fill()
		return nil
	}

	var raw struct {
		Items        []T  `json:"items"`
		Data         []T  `json:"data"`
		TotalCount   *int `json:"totalCount"`
		TotalRecords *int `json:"totalRecords"`
		PageNumber   int  `json:"pageNumber"`
		PageSize     int  `json:"pageSize"`
		TotalPages   int  `json:"totalPages"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	page := Page[T]{Items: raw.Items, PageNumber: raw.PageNumber, PageSize: raw.PageSize, TotalPages: raw.TotalPages}
	if page.Items == nil {
		page.Items = raw.Data
	}
	switch {
	case raw.TotalCount != nil:
		page.TotalCount = *raw.TotalCount
	case raw.TotalRecords != nil:
		page.TotalCount = *raw.TotalRecords
	default:
		page.TotalCount = len(page.Items)
	}
	*p = page
	p.fill()
	return nil
}

func (p *Page[T]) fill() {
	if p.Items == nil {
		p.Items = []T{}
	}
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.TotalPages == 0 && p.PageSize > 0 {
		p.TotalPages = (p.TotalCount + p.PageSize - 1) / p.PageSize
	}
}

func (p Page[T]) HasNext() bool {
	return p.PageNumber < p.TotalPages
}

func (p Page[T]) HasPrevious() bool {
	return p.PageNumber > 1
}
