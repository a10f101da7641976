package catalog

import (
	"context"
	"strings"

	"plantshop/internal/domain"
	"plantshop/internal/pagination"
	plantrepo "plantshop/internal/repository/plant"
)

// Result is one catalog page plus the pagination controls for it.
type Result struct {
	Page   domain.CatalogPage `json:"page"`
	Pager  pagination.Pager   `json:"pagination"`
	Search string             `json:"search"`
}

type Service struct {
	repo    plantrepo.Repository
	perPage int
}

func New(repo plantrepo.Repository, perPage int) *Service {
	if perPage <= 0 {
		perPage = pagination.DefaultPerPage
	}
	return &Service{repo: repo, perPage: perPage}
}

func (s *Service) PerPage() int {
	return s.perPage
}

// Browse fetches page of the catalog, filtered by search when it is not blank.
// Every call goes upstream; nothing is cached.
func (s *Service) Browse(ctx context.Context, page int, search string) (Result, error) {
	return s.BrowsePage(ctx, page, s.perPage, search)
}

// BrowsePage is Browse with an explicit page size.
func (s *Service) BrowsePage(ctx context.Context, page, perPage int, search string) (Result, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = s.perPage
	}
	search = strings.TrimSpace(search)

	result, err := s.repo.Fetch(ctx, page, perPage, search)
	if err != nil {
		return Result{}, err
	}
	if result.Plants == nil {
		result.Plants = []domain.Plant{}
	}
	return Result{
		Page:   result,
		Pager:  pagination.New(page, perPage, result.TotalCount),
		Search: search,
	}, nil
}
