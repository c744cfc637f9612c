package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page selects one slice of a listing.
type Page struct {
	Number int
	Limit  int
}

// NewPage clamps the requested page number and size into the accepted range.
func NewPage(number, limit int) Page {
	if number < 1 {
		number = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Number: number, Limit: limit}
}

// Offset is the number of records to skip.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// PageResult is the shape shared by every list response.
type PageResult[T any] struct {
	Data        []T   `json:"data"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
}

// NewPageResult wraps a page of records together with the total match count.
func NewPageResult[T any](data []T, total int64, page Page) PageResult[T] {
	if data == nil {
		data = []T{}
	}
	return PageResult[T]{
		Data:        data,
		TotalCount:  total,
		TotalPages:  TotalPages(total, page.Limit),
		CurrentPage: page.Number,
	}
}

// TotalPages is ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// TaskFilter narrows a task listing. Every set field must match (AND).
type TaskFilter struct {
	Page         Page
	ProjectID    *uuid.UUID
	MemberID     *uuid.UUID
	Status       *TaskStatus
	Search       string
	DeadlineFrom *time.Time
	DeadlineTo   *time.Time
}
