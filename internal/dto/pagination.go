package dto

import (
	"math"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a 1-based page window.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// ParsePage coerces raw query values to a valid window. Missing, malformed or
// non-positive values fall back to the defaults; limit is capped at MaxLimit.
// Page is capped so that Offset never overflows; such a page is past the end
// of any result set.
func ParsePage(page, limit string) Page {
	p := Page{Page: positiveInt(page, DefaultPage), Limit: positiveInt(limit, DefaultLimit)}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if maxPage := math.MaxInt / p.Limit; p.Page > maxPage {
		p.Page = maxPage
	}
	return p
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
