package authrpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageAndAccessors(t *testing.T) {
	msg := Message(map[string]any{
		FieldEmail: "user@example.com",
		FieldValid: true,
		"ignored":  42,
	})

	assert.Equal(t, "user@example.com", String(msg, FieldEmail))
	assert.True(t, Bool(msg, FieldValid))
	assert.Empty(t, String(msg, FieldToken))
	assert.False(t, Bool(msg, FieldFound))
	assert.NotContains(t, msg.GetFields(), "ignored")

	assert.Empty(t, String(nil, FieldEmail))
	assert.False(t, Bool(nil, FieldValid))
}

func TestFullMethod(t *testing.T) {
	assert.Equal(t, "/credentials.v1.CredentialService/Authenticate", FullMethod(MethodAuthenticate))
}

func TestServiceDesc(t *testing.T) {
	assert.Equal(t, ServiceName, ServiceDesc.ServiceName)
	names := make([]string, 0, len(ServiceDesc.Methods))
	for _, m := range ServiceDesc.Methods {
		names = append(names, m.MethodName)
	}
	assert.ElementsMatch(t, []string{
		MethodAuthenticate, MethodValidateSession, MethodRevokeSession, MethodLookupAccount, MethodCreateAccount,
	}, names)
}
