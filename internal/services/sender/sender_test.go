package sender

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/investment-dashboard/internal/lib/smtp"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	return m.Called().String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error { return m.Called(from).Error(0) }
func (m *MockSMTPClient) Rcpt(to string) error   { return m.Called(to).Error(0) }
func (m *MockSMTPClient) Quit() error            { return m.Called().Error(0) }
func (m *MockSMTPClient) Close() error           { return m.Called().Error(0) }

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

type MockSMTPWriter struct {
	mock.Mock
	written []byte
}

func (m *MockSMTPWriter) Write(p []byte) (int, error) {
	m.written = append(m.written, p...)
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockSMTPWriter) Close() error { return m.Called().Error(0) }

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func successfulClient(to string) (*MockSMTPClient, *MockSMTPWriter) {
	client := new(MockSMTPClient)
	writer := new(MockSMTPWriter)
	client.On("Mail", "bot@example.com").Return(nil).Once()
	client.On("Rcpt", to).Return(nil).Once()
	client.On("Data").Return(writer, nil).Once()
	writer.On("Write", mock.AnythingOfType("[]uint8")).Return(100, nil).Once()
	writer.On("Close").Return(nil).Once()
	client.On("Quit").Return(nil).Once()
	client.On("Close").Return(nil).Once()
	return client, writer
}

func TestService_SendWelcome(t *testing.T) {
	t.Run("new account gets credentials", func(t *testing.T) {
		transport := new(MockTransport)
		client, writer := successfulClient("new@example.com")
		transport.On("GetSMTPUser").Return("bot@example.com")
		transport.On("Connect").Return(client, nil).Once()

		err := New(newNoopLogger(), transport).SendWelcome([]byte(
			`{"email":"new@example.com","plan":"Plano Anual","password":"Ab1!cdefghij","login_url":"http://app/login"}`))

		assert.NoError(t, err)
		body := string(writer.written)
		assert.Contains(t, body, "To: new@example.com")
		assert.Contains(t, body, "Plano Anual")
		assert.Contains(t, body, "Ab1!cdefghij")
		assert.Contains(t, body, "http://app/login")
		transport.AssertExpectations(t)
		client.AssertExpectations(t)
	})

	t.Run("existing account gets no password block", func(t *testing.T) {
		transport := new(MockTransport)
		client, writer := successfulClient("old@example.com")
		transport.On("GetSMTPUser").Return("bot@example.com")
		transport.On("Connect").Return(client, nil).Once()

		err := New(newNoopLogger(), transport).SendWelcome([]byte(
			`{"email":"old@example.com","plan":"Plano Mensal","login_url":"http://app/login"}`))

		assert.NoError(t, err)
		assert.NotContains(t, string(writer.written), "Senha")
	})

	t.Run("invalid JSON", func(t *testing.T) {
		transport := new(MockTransport)
		err := New(newNoopLogger(), transport).SendWelcome([]byte(`invalid json`))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "error unmarshalling message")
		transport.AssertNotCalled(t, "Connect")
	})

	t.Run("empty recipient", func(t *testing.T) {
		transport := new(MockTransport)
		err := New(newNoopLogger(), transport).SendWelcome([]byte(`{"plan":"Plano Mensal"}`))

		assert.Error(t, err)
		transport.AssertNotCalled(t, "Connect")
	})

	t.Run("SMTP connection error", func(t *testing.T) {
		transport := new(MockTransport)
		transport.On("GetSMTPUser").Return("bot@example.com")
		transport.On("Connect").Return(nil, errors.New("connection error")).Once()

		err := New(newNoopLogger(), transport).SendWelcome([]byte(`{"email":"a@example.com"}`))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "connection error")
	})

	t.Run("recipient rejected", func(t *testing.T) {
		transport := new(MockTransport)
		client := new(MockSMTPClient)
		transport.On("GetSMTPUser").Return("bot@example.com")
		transport.On("Connect").Return(client, nil).Once()
		client.On("Mail", "bot@example.com").Return(nil).Once()
		client.On("Rcpt", "a@example.com").Return(errors.New("550 no such user")).Once()
		client.On("Close").Return(nil).Once()

		err := New(newNoopLogger(), transport).SendWelcome([]byte(`{"email":"a@example.com"}`))

		assert.Error(t, err)
		client.AssertExpectations(t)
	})
}
