package requestresponse

// LoginRequest : тело запроса на аутентификацию
type LoginRequest struct {
	Username string `json:"username" example:"user1@mail.ru"`
	Password string `json:"password" example:"P@ssw0rd123"`
}

// SignupRequest : тело запроса на регистрацию
type SignupRequest struct {
	Email    string `json:"email" example:"user1@mail.ru"`
	Name     string `json:"name" example:"user1"`
	Password string `json:"password" example:"P@ssw0rd123"`
}

// SignupResponse : ответ на успешную регистрацию
type SignupResponse struct {
	Response struct {
		UUID  string `json:"uuid" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
		Email string `json:"email" example:"user1@mail.ru"`
	} `json:"response"`
}

// CurrentMemberResponse : информация о текущем участнике
type CurrentMemberResponse struct {
	Response struct {
		UUID  string `json:"uuid" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
		Email string `json:"email" example:"user1@mail.ru"`
		Role  string `json:"role" example:"BASIC"`
	} `json:"response"`
}

// RoleUpdateRequest : запрос на изменение роли участника
type RoleUpdateRequest struct {
	Role string `json:"role" example:"BLACK"`
}
