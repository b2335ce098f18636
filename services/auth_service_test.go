package services

import (
	"strings"
	"testing"

	"github.com/quillhq/quill/db"
	"github.com/quillhq/quill/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (AuthService, *db.GormDB, *stubMailer) {
	t.Helper()
	gdb := newTestDB(t)
	mailer := &stubMailer{}
	svc := NewAuthService(db.NewAuthRepo(gdb), mailer, testConfig())
	return svc, gdb, mailer
}

func TestSignupAndLogin(t *testing.T) {
	svc, _, _ := newAuthService(t)

	user, err := svc.SignupUser(&models.User{
		Fullname: "Leo T",
		Username: "leo",
		Email:    "leo@example.com",
		Password: "sekret1",
	})
	require.NoError(t, err)
	assert.Empty(t, user.Password)
	assert.NotEmpty(t, user.HashedPassword)

	got, token, loginErr := svc.LoginUser(&models.LoginRequest{Email: "leo@example.com", Password: "sekret1"})
	require.Nil(t, loginErr)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, token)
}

func TestSignupRejectsShortPassword(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.SignupUser(&models.User{
		Fullname: "Leo T",
		Username: "leo",
		Email:    "leo@example.com",
		Password: "short",
	})
	require.Error(t, err)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	svc, gdb, _ := newAuthService(t)
	seedUser(t, gdb, "leo")

	_, err := svc.SignupUser(&models.User{
		Fullname: "Other Leo",
		Username: "leo2",
		Email:    "leo@example.com",
		Password: "sekret1",
	})
	require.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, gdb, _ := newAuthService(t)
	seedUser(t, gdb, "leo")

	_, _, loginErr := svc.LoginUser(&models.LoginRequest{Email: "leo@example.com", Password: "wrong"})
	require.NotNil(t, loginErr)

	_, _, loginErr = svc.LoginUser(&models.LoginRequest{Email: "nobody@example.com", Password: "sekret1"})
	require.NotNil(t, loginErr)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	svc, gdb, _ := newAuthService(t)
	user := seedUser(t, gdb, "leo")
	repo := db.NewAuthRepo(gdb)

	_, token, loginErr := svc.LoginUser(&models.LoginRequest{Email: user.Email, Password: "sekret1"})
	require.Nil(t, loginErr)

	require.NoError(t, svc.LogoutUser(user.Email, token))
	assert.True(t, repo.IsTokenInBlacklist(token))
}

func TestPasswordResetFlow(t *testing.T) {
	svc, gdb, mailer := newAuthService(t)
	user := seedUser(t, gdb, "leo")

	require.Nil(t, svc.SendEmailForPasswordReset(&models.ForgotPassword{Email: user.Email}))
	assert.Equal(t, user.Email, mailer.to)
	require.NotEmpty(t, mailer.link)

	parts := strings.Split(mailer.link, "/password/reset/")
	require.Len(t, parts, 2)
	token := parts[1]

	resetErr := svc.ResetPassword(&models.ResetPassword{
		Password:        "newsekret",
		ConfirmPassword: "newsekret",
	}, token)
	require.Nil(t, resetErr)

	_, _, loginErr := svc.LoginUser(&models.LoginRequest{Email: user.Email, Password: "newsekret"})
	require.Nil(t, loginErr)
	_, _, loginErr = svc.LoginUser(&models.LoginRequest{Email: user.Email, Password: "sekret1"})
	require.NotNil(t, loginErr)
}

func TestResetPasswordMismatch(t *testing.T) {
	svc, _, _ := newAuthService(t)

	resetErr := svc.ResetPassword(&models.ResetPassword{
		Password:        "newsekret",
		ConfirmPassword: "different",
	}, "whatever")
	require.NotNil(t, resetErr)
}

func TestResetPasswordRejectsSessionToken(t *testing.T) {
	svc, gdb, _ := newAuthService(t)
	user := seedUser(t, gdb, "leo")

	// A plain session token must not be usable as a reset token.
	_, token, loginErr := svc.LoginUser(&models.LoginRequest{Email: user.Email, Password: "sekret1"})
	require.Nil(t, loginErr)

	resetErr := svc.ResetPassword(&models.ResetPassword{
		Password:        "newsekret",
		ConfirmPassword: "newsekret",
	}, token)
	require.NotNil(t, resetErr)
}
