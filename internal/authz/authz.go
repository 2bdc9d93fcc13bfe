// Package authz реализует единую проверку прав по роли пользователя.
// Все ролевые ограничения проходят через Allowed, а не через разрозненные
// сравнения ролей в обработчиках.
package authz

// Allowed сообщает, разрешена ли операция пользователю с данной ролью.
// Чистая функция без побочных эффектов.
func Allowed(role string, allowedRoles ...string) bool {
	for _, allowed := range allowedRoles {
		if role == allowed {
			return true
		}
	}
	return false
}
