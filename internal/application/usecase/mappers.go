package usecase

import (
	"github.com/jhoicas/pricewatch-api/internal/application/dto"
	"github.com/jhoicas/pricewatch-api/internal/domain/entity"
	"github.com/jhoicas/pricewatch-api/internal/domain/repository"
)

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		ExternalID:  c.ExternalID,
		Code:        c.Code,
		Name:        c.Name,
		NameEnglish: c.NameEnglish,
		ParentID:    c.ParentID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toCategoryResponses(list []*entity.Category) []dto.CategoryResponse {
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryResponse(c))
	}
	return out
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		ExternalID:  p.ExternalID,
		Code:        p.Code,
		Name:        p.Name,
		NameEnglish: p.NameEnglish,
		Unit:        p.Unit,
		CategoryID:  p.CategoryID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toStoreResponse(s *entity.Store) dto.StoreResponse {
	return dto.StoreResponse{
		ID:          s.ID,
		ExternalID:  s.ExternalID,
		Name:        s.Name,
		NameEnglish: s.NameEnglish,
		Chain:       s.Chain,
		District:    s.District,
		Location:    s.Location,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toPriceWithStoreResponse(p repository.PriceWithStore) dto.PriceWithStoreResponse {
	return dto.PriceWithStoreResponse{
		PriceResponse: dto.PriceResponse{
			ID:        p.Price.ID,
			ProductID: p.Price.ProductID,
			StoreID:   p.Price.StoreID,
			Price:     p.Price.Price,
			ScrapedAt: p.Price.ScrapedAt,
		},
		Store: toStoreResponse(&p.Store),
	}
}

func toPriceWithStoreResponses(list []repository.PriceWithStore) []dto.PriceWithStoreResponse {
	out := make([]dto.PriceWithStoreResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPriceWithStoreResponse(p))
	}
	return out
}
