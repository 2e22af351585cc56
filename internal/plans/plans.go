// Package plans содержит каталог тарифов подписки.
package plans

import (
	"strings"
	"time"
)

// Type тип тарифа.
type Type string

// Типы тарифов.
const (
	Monthly  Type = "monthly"
	Semester Type = "semester"
	Annual   Type = "annual"
)

// Plan тариф подписки.
type Plan struct {
	Type      Type   `json:"type"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Months    int    `json:"months"`
}

var catalog = []Plan{
	{Type: Monthly, ProductID: "227ebec4-ebf0-4e94-a9ee-8e13f323c3ac", Name: "Plano Mensal", Months: 1},
	{Type: Semester, ProductID: "c27cf3e4-51e9-41df-8101-3988f6073c45", Name: "Plano Semestral", Months: 6},
	{Type: Annual, ProductID: "351891dd-c61a-42d1-b9ce-90d32f33e246", Name: "Plano Anual", Months: 12},
}

var aliases = map[string]Type{
	"monthly":    Monthly,
	"semester":   Semester,
	"semiannual": Semester,
	"annual":     Annual,
}

// All возвращает копию каталога.
func All() []Plan {
	out := make([]Plan, len(catalog))
	copy(out, catalog)
	return out
}

// ByType возвращает тариф по типу.
func ByType(t Type) (Plan, bool) {
	for _, p := range catalog {
		if p.Type == t {
			return p, true
		}
	}
	return Plan{}, false
}

// Resolve определяет тариф по product_id, затем по plan_id.
// Идентификатор сравнивается с ID продукта у провайдера и с названиями типов.
// Неизвестный идентификатор даёт месячный тариф.
func Resolve(productID, planID string) Plan {
	for _, id := range []string{productID, planID} {
		if p, ok := match(id); ok {
			return p
		}
	}
	p, _ := ByType(Monthly)
	return p
}

func match(id string) (Plan, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Plan{}, false
	}
	for _, p := range catalog {
		if p.ProductID == id {
			return p, true
		}
	}
	if t, ok := aliases[strings.ToLower(id)]; ok {
		return ByType(t)
	}
	return Plan{}, false
}

// EndDate возвращает дату окончания подписки, начатой в start.
func (p Plan) EndDate(start time.Time) time.Time {
	return start.AddDate(0, p.Months, 0)
}
