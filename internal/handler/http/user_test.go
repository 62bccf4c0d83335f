package http

import (
	"net/http"
	"testing"

	"github.com/cmlabs-hris/attendance-tracker-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
)

func TestUserHandler_Profile(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.accessToken(t, "EMP001", user.RoleEmployee)

	w := s.do(t, http.MethodGet, "/api/v1/users/me", token, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPut, "/api/v1/users/me", token, `{"full_name":"Ana Tan","department":"Finance"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Your information have been updated.", decodeBody(t, w)["message"])

	w = s.do(t, http.MethodPut, "/api/v1/users/me", token, `{"full_name":"An","department":"Space"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUserHandler_EmailChange(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.accessToken(t, "EMP001", user.RoleEmployee)

	w := s.do(t, http.MethodPost, "/api/v1/users/me/email", token, `{"email":"ana.lim@example.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "A confirmation email has been sent.", decodeBody(t, w)["message"])

	s.users.err = user.ErrUserEmailExists
	w = s.do(t, http.MethodPost, "/api/v1/users/me/email", token, `{"email":"boss@example.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Confirmation does not need a session
	s.users.err = user.ErrEmailChangeTokenInvalid
	w = s.do(t, http.MethodPost, "/api/v1/users/email/confirm", "", `{"token":"stale"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	s.users.err = nil
	w = s.do(t, http.MethodPost, "/api/v1/users/email/confirm", "", `{"token":"fresh"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserHandler_UpdatePassword(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.accessToken(t, "EMP001", user.RoleEmployee)

	w := s.do(t, http.MethodPut, "/api/v1/users/me/password", token, `{"new_password":"new-password-1","confirm_password":"new-password-2"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	details := decodeBody(t, w)["error"].(map[string]interface{})["details"].(map[string]interface{})
	assert.Equal(t, "Passwords do not match", details["confirm_password"])

	w = s.do(t, http.MethodPut, "/api/v1/users/me/password", token, `{"new_password":"new-password-1","confirm_password":"new-password-1"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Your password have been updated.", decodeBody(t, w)["message"])
}

func TestUserHandler_Delete(t *testing.T) {
	s := newTestServer(t, nil)
	admin := s.accessToken(t, "ADM001", user.RoleAdmin)
	id := "0190a5c4-7b3e-7d6f-9a1b-2c3d4e5f6a7b"

	w := s.do(t, http.MethodDelete, "/api/v1/users/"+id, s.accessToken(t, "EMP001", user.RoleEmployee), "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodDelete, "/api/v1/users/not-a-uuid", admin, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodDelete, "/api/v1/users/"+id, admin, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, s.users.deletedID)

	s.users.err = user.ErrCannotDeleteSelf
	w = s.do(t, http.MethodDelete, "/api/v1/users/"+id, admin, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
