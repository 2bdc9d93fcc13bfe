package models

// PlanStat агрегат покупок по одному плану.
type PlanStat struct {
	PlanName string  `json:"plan_name"`
	Count    int     `json:"count"`
	Revenue  float64 `json:"revenue"`
}

// Stats сводная статистика для админ-панели. Пересчитывается полностью
// при каждом запросе, без кеширования и инкрементального обновления.
type Stats struct {
	TotalUsers        int        `json:"total_users"`
	TotalAdmins       int        `json:"total_admins"`
	RegularUsers      int        `json:"regular_users"`
	TotalTransactions int        `json:"total_transactions"`
	TotalRevenue      float64    `json:"total_revenue"`
	PlanStats         []PlanStat `json:"plan_stats"`
}
