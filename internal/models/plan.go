// Package models содержит доменные структуры тарифных планов и покупок.
package models

// Plan описывает тарифный план из статического каталога.
// Каталог неизменяем во время работы процесса.
type Plan struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// PurchaseRequest используется для приёма данных покупки плана.
// Цена передается клиентом и сверяется с каталогом по точному совпадению,
// чтобы нельзя было купить настоящий план по подделанной цене.
type PurchaseRequest struct {
	PlanName string  `json:"plan_name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
}
