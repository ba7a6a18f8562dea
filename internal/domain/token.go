package domain

// Token — ответ на успешный логин.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Message — короткий ответ-подтверждение.
type Message struct {
	Message string `json:"message"`
}
