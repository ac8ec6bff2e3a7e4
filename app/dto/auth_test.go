package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validSignup() SignupRequest {
	return SignupRequest{Username: "alice01", Password: "Str0ng!Pass", Email: "a@b.com"}
}

func TestSignupRequestNormalize(t *testing.T) {
	req := SignupRequest{Username: "ALICE ", Password: "Str0ng!Pass", Email: " A@B.Com"}
	req.Normalize()
	assert.Equal(t, "alice", req.Username)
	assert.Equal(t, "a@b.com", req.Email)
	assert.NoError(t, req.Validate())
}

func TestSignupRequestUsernameShape(t *testing.T) {
	tests := []struct {
		name     string
		username string
		ok       bool
	}{
		{name: "simple", username: "alice01", ok: true},
		{name: "separators inside", username: "a.b-c_d", ok: true},
		{name: "minimum length", username: "abc", ok: true},
		{name: "too short", username: "a", ok: false},
		{name: "leading separators", username: "..ab", ok: false},
		{name: "trailing separator", username: "ab.", ok: false},
		{name: "doubled separator", username: "a..b", ok: false},
		{name: "uppercase rejected pre-normalization", username: "Alice", ok: false},
		{name: "space inside", username: "al ice", ok: false},
		{name: "too long", username: "abcdefghijklmnopqrstuvwxyz0123456789", ok: false},
		{name: "empty", username: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignup()
			req.Username = tt.username
			err := req.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSignupRequestPasswordAndEmail(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SignupRequest)
		ok     bool
	}{
		{name: "valid", mutate: func(r *SignupRequest) {}, ok: true},
		{name: "password too short", mutate: func(r *SignupRequest) { r.Password = "short1!" }, ok: false},
		{name: "password with space", mutate: func(r *SignupRequest) { r.Password = "has space1!" }, ok: false},
		{name: "password non-ascii", mutate: func(r *SignupRequest) { r.Password = "pässword123" }, ok: false},
		{name: "missing email", mutate: func(r *SignupRequest) { r.Email = "" }, ok: false},
		{name: "malformed email", mutate: func(r *SignupRequest) { r.Email = "not-an-email" }, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignup()
			tt.mutate(&req)
			err := req.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSigninRequestNormalize(t *testing.T) {
	req := SigninRequest{Username: " ALICE01 ", Password: "Str0ng!Pass"}
	req.Normalize()
	assert.Equal(t, "alice01", req.Username)
	assert.NoError(t, req.Validate())
}
