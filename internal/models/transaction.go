package models

import "time"

// Transaction представляет событие покупки плана.
// Цена копируется из каталога в момент покупки и никогда не пересчитывается,
// поэтому исторические записи остаются точными при смене цен каталога.
// Запись не обновляется: единственный способ сменить план — отменить и купить заново.
type Transaction struct {
	ID        string    `json:"id"`
	UserUID   string    `json:"user_uid"`
	PlanName  string    `json:"plan_name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// TransactionWithOwner дополняет покупку минимальной проекцией владельца
// для админского списка всех транзакций.
type TransactionWithOwner struct {
	Transaction
	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
	OwnerRole  string `json:"owner_role"`
}
