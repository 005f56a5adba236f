package api

import (
	"fmt"
	"net/http"
	"strconv"

	"deckbox-api/internal/scrapers/deckbox"
)

const defaultPageSize = 100

type PageEnvelope[T any] struct {
	Count        int `json:"count"`
	Page         int `json:"page"`
	ItemsPerPage int `json:"items_per_page"`
	TotalPages   int `json:"total_pages"`
	Items        []T `json:"items"`
}

type listArgs struct {
	page     int
	count    int
	paginate bool
}

func positiveInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return value, nil
}

func parseListArgs(r *http.Request) (listArgs, error) {
	page, err := positiveInt(r, "page", 1)
	if err != nil {
		return listArgs{}, err
	}
	count, err := positiveInt(r, "count", defaultPageSize)
	if err != nil {
		return listArgs{}, err
	}

	paginate := true
	if raw := r.URL.Query().Get("pagination"); raw != "" {
		paginate, err = strconv.ParseBool(raw)
		if err != nil {
			return listArgs{}, fmt.Errorf("pagination must be true or false")
		}
	}
	return listArgs{page: page, count: count, paginate: paginate}, nil
}

// paginationParams clamps page into the available range and returns the
// offset of its first item.
func paginationParams(total, page, count int) (totalPages, clamped, offset int) {
	totalPages = (total + count - 1) / count
	clamped = page
	if clamped > totalPages {
		clamped = totalPages
	}
	if clamped < 1 {
		clamped = 1
	}
	return totalPages, clamped, (clamped - 1) * count
}

func paginateList[T any](items []T, args listArgs) PageEnvelope[T] {
	total := len(items)
	if !args.paginate {
		return PageEnvelope[T]{
			Count:        total,
			Page:         1,
			ItemsPerPage: total,
			TotalPages:   1,
			Items:        items,
		}
	}

	totalPages, page, offset := paginationParams(total, args.page, args.count)
	end := min(offset+args.count, total)
	return PageEnvelope[T]{
		Count:        total,
		Page:         page,
		ItemsPerPage: args.count,
		TotalPages:   totalPages,
		Items:        items[min(offset, total):end],
	}
}

// fromPaged wraps a page that upstream already paginated, count stays -1 when
// upstream gave no total for a multi-page listing.
func fromPaged[T any](p deckbox.PagedResult[T]) PageEnvelope[T] {
	return PageEnvelope[T]{
		Count:        p.Total,
		Page:         p.Page,
		ItemsPerPage: len(p.Items),
		TotalPages:   p.TotalPages,
		Items:        p.Items,
	}
}
