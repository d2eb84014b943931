package model

// Role — роль участника. Закрытый набор значений.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleBasic Role = "BASIC"
	RoleBlack Role = "BLACK"
)

// implied задаёт иерархию ролей для авторизации маршрутов: ADMIN покрывает BASIC.
// Иерархия используется только на уровне маршрутов; проверки владения ресурсом
// сравнивают личность, а не роли.
var implied = map[Role][]Role{
	RoleAdmin: {RoleBasic},
}

// Implies сообщает, покрывает ли выданная роль требуемую.
func Implies(granted, required Role) bool {
	if granted == required {
		return true
	}
	for _, role := range implied[granted] {
		if role == required {
			return true
		}
	}
	return false
}

// Valid проверяет, что роль входит в закрытый набор.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleBasic || r == RoleBlack
}

// CanWrite : BLACK не имеет права записи ни в одной доменной операции.
func (r Role) CanWrite() bool {
	return r == RoleAdmin || r == RoleBasic
}
