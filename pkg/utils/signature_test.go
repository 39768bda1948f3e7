package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	secret := "automation-secret"
	body := []byte(`{"draftId":42}`)

	sig := SignBody(body, secret)
	assert.True(t, VerifySignature(body, sig, secret))
}

func TestVerifySignatureKnownVector(t *testing.T) {
	// echo -n 'hello' | openssl dgst -sha256 -hmac 'key'
	sig := "9307b3b915efb5171ff14d8cb55fbcc798c6c0ef1456d66ded1a6aa723a58b7b"
	assert.True(t, VerifySignature([]byte("hello"), sig, "key"))
}

func TestVerifySignatureRejectsTamperedBody(t *testing.T) {
	secret := "automation-secret"
	body := []byte(`{"draftId":42}`)
	sig := SignBody(body, secret)

	assert.False(t, VerifySignature([]byte(`{"draftId":43}`), sig, secret))
}

func TestVerifySignatureRejectsWrongSignature(t *testing.T) {
	body := []byte(`{"draftId":42}`)
	assert.False(t, VerifySignature(body, "deadbeef", "automation-secret"))
}

func TestVerifySignatureRejectsWrongSecret(t *testing.T) {
	body := []byte(`{"draftId":42}`)
	sig := SignBody(body, "automation-secret")
	assert.False(t, VerifySignature(body, sig, "other-secret"))
}

func TestVerifySignatureEmptyInputs(t *testing.T) {
	body := []byte(`{"draftId":42}`)
	assert.False(t, VerifySignature(body, "", "automation-secret"))
	assert.False(t, VerifySignature(body, SignBody(body, ""), ""))
}
