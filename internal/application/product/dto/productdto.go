package dto

import (
	"time"

	"stocktake/internal/domain/product"
)

type ProductDTO struct {
	ID        uint      `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Quantity  *int64    `json:"quantity"`
	Counted   bool      `json:"counted"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToProductDTO(p *product.Product) *ProductDTO {
	return &ProductDTO{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		Quantity:  p.Quantity,
		Counted:   p.Counted(),
		UpdatedAt: p.UpdatedAt,
	}
}

func ToProductDTOs(products []*product.Product) []*ProductDTO {
	dtos := make([]*ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = ToProductDTO(p)
	}
	return dtos
}

// CountingStatsDTO summarizes stocktake progress.
type CountingStatsDTO struct {
	Total     int64   `json:"total"`
	Counted   int64   `json:"counted"`
	Remaining int64   `json:"remaining"`
	Progress  float64 `json:"progress"`
}
