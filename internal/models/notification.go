package models

// WelcomeMessage сообщение для воркера рассылки о новом подписчике.
// Password заполнен только для учётных записей, созданных при оплате.
type WelcomeMessage struct {
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Plan     string `json:"plan"`
	Password string `json:"password,omitempty"`
	LoginURL string `json:"login_url"`
}
