// Package plan содержит статический каталог тарифных планов.
//
// Каталог определяется один раз при старте процесса и неизменяем во время
// работы. Валидация покупки требует точного совпадения имени и цены с записью
// каталога, чтобы клиент не мог купить настоящий план по подделанной цене.
package plan

import (
	"errors"

	"github.com/oceanmeet/meeting-hub/internal/models"
)

// ErrInvalidPlan возвращается, когда пара (имя, цена) не совпадает ни с одной
// записью каталога.
var ErrInvalidPlan = errors.New("invalid plan")

// Catalog неизменяемый упорядоченный список планов.
type Catalog struct {
	plans []models.Plan
}

// NewCatalog создает каталог из переданного списка планов.
func NewCatalog(plans []models.Plan) *Catalog {
	cp := make([]models.Plan, len(plans))
	copy(cp, plans)
	return &Catalog{plans: cp}
}

// DefaultPlans возвращает планы эталонного развертывания.
func DefaultPlans() []models.Plan {
	return []models.Plan{
		{
			Name:        "Plus",
			Price:       5,
			Description: "Ideal for individual users seeking essential services with flexibility and affordability.",
			Features:    []string{"Basic meeting reports", "Up to 10 meetings/month", "Email support"},
		},
		{
			Name:        "Pro",
			Price:       19,
			Description: "Best suited for professionals looking for advanced tools and enhanced capabilities.",
			Features:    []string{"Advanced AI reports", "Unlimited meetings", "Sentiment analysis", "Priority support"},
		},
		{
			Name:        "Business",
			Price:       39.5,
			Description: "Tailored for large organizations and enterprises seeking comprehensive solutions and premium support.",
			Features:    []string{"Enterprise features", "Team management", "Custom integrations", "24/7 support"},
		},
	}
}

// List возвращает копию списка планов в порядке определения.
func (c *Catalog) List() []models.Plan {
	cp := make([]models.Plan, len(c.plans))
	copy(cp, c.plans)
	return cp
}

// Validate возвращает план каталога, точно совпадающий по имени и цене,
// либо ErrInvalidPlan.
func (c *Catalog) Validate(name string, price float64) (*models.Plan, error) {
	for i := range c.plans {
		if c.plans[i].Name == name && c.plans[i].Price == price {
			p := c.plans[i]
			return &p, nil
		}
	}
	return nil, ErrInvalidPlan
}
