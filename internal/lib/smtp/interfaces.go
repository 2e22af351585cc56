// Package smtp содержит транспорт для отправки писем через SMTP со STARTTLS.
package smtp

import "io"

// Client подмножество методов *smtp.Client, нужное для отправки письма.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface открывает авторизованное соединение с почтовым сервером.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
