package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-voting-server/internal/logger"
	"github.com/MKhiriev/go-voting-server/internal/mock"
	"github.com/MKhiriev/go-voting-server/internal/store"
	"github.com/MKhiriev/go-voting-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestUserSvc(t *testing.T) (UserService, *mock.MockUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	return NewUserService(users, plainHasher{}, logger.Nop()), users
}

func TestUserService_Profile(t *testing.T) {
	svc, users := newTestUserSvc(t)
	ctx := context.Background()

	users.EXPECT().FindUserByID(ctx, "user-1").Return(storedUser("user-1", models.RoleVoter, "secret"), nil)

	user, err := svc.Profile(ctx, "user-1")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "user-1", user.ID)
}

func TestUserService_Profile_Errors(t *testing.T) {
	svc, users := newTestUserSvc(t)
	ctx := context.Background()

	users.EXPECT().FindUserByID(ctx, "broken").Return(models.User{}, errDB)

	user, err := svc.Profile(ctx, "broken")
	require.ErrorIs(t, err, errDB)
	assert.NotErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, user)
}

func TestUserService_Profile_MissingUserIsNil(t *testing.T) {
	svc, users := newTestUserSvc(t)
	ctx := context.Background()

	users.EXPECT().FindUserByID(ctx, "gone").Return(models.User{}, store.ErrUserNotFound)

	user, err := svc.Profile(ctx, "gone")

	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserService_ChangePassword_Success(t *testing.T) {
	svc, users := newTestUserSvc(t)
	ctx := context.Background()

	gomock.InOrder(
		users.EXPECT().FindUserByID(ctx, "user-1").Return(storedUser("user-1", models.RoleVoter, "old"), nil),
		users.EXPECT().UpdatePassword(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.User) error {
				assert.Equal(t, "user-1", u.ID)
				assert.Equal(t, "new", u.Password)
				assert.True(t, u.PasswordModified(), "repository must hash the new password")
				return nil
			},
		),
	)

	err := svc.ChangePassword(ctx, "user-1", models.PasswordChangeRequest{CurrentPassword: "old", NewPassword: "new"})

	require.NoError(t, err)
}

func TestUserService_ChangePassword_Failures(t *testing.T) {
	tests := []struct {
		name    string
		req     models.PasswordChangeRequest
		setup   func(users *mock.MockUserRepository)
		wantErr error
	}{
		{
			name:    "missing new password",
			req:     models.PasswordChangeRequest{CurrentPassword: "old"},
			setup:   func(*mock.MockUserRepository) {},
			wantErr: ErrInvalidDataProvided,
		},
		{
			name: "wrong current password",
			req:  models.PasswordChangeRequest{CurrentPassword: "guess", NewPassword: "new"},
			setup: func(users *mock.MockUserRepository) {
				users.EXPECT().FindUserByID(gomock.Any(), "user-1").Return(storedUser("user-1", models.RoleVoter, "old"), nil)
			},
			wantErr: ErrInvalidCurrentPassword,
		},
		{
			name: "user deleted",
			req:  models.PasswordChangeRequest{CurrentPassword: "old", NewPassword: "new"},
			setup: func(users *mock.MockUserRepository) {
				users.EXPECT().FindUserByID(gomock.Any(), "user-1").Return(models.User{}, store.ErrUserNotFound)
			},
			wantErr: ErrInvalidCurrentPassword,
		},
		{
			name: "update fails",
			req:  models.PasswordChangeRequest{CurrentPassword: "old", NewPassword: "new"},
			setup: func(users *mock.MockUserRepository) {
				users.EXPECT().FindUserByID(gomock.Any(), "user-1").Return(storedUser("user-1", models.RoleVoter, "old"), nil)
				users.EXPECT().UpdatePassword(gomock.Any(), gomock.Any()).Return(errDB)
			},
			wantErr: errDB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users := newTestUserSvc(t)
			tt.setup(users)

			err := svc.ChangePassword(context.Background(), "user-1", tt.req)

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUserService_CheckAdmin(t *testing.T) {
	svc, users := newTestUserSvc(t)
	ctx := context.Background()

	users.EXPECT().FindUserByID(ctx, "admin-1").Return(storedUser("admin-1", models.RoleAdmin, "x"), nil)
	users.EXPECT().FindUserByID(ctx, "voter-1").Return(storedUser("voter-1", models.RoleVoter, "x"), nil)
	users.EXPECT().FindUserByID(ctx, "gone").Return(models.User{}, store.ErrUserNotFound)

	require.NoError(t, svc.CheckAdmin(ctx, "admin-1"))
	require.ErrorIs(t, svc.CheckAdmin(ctx, "voter-1"), ErrNotAdmin)
	require.ErrorIs(t, svc.CheckAdmin(ctx, "gone"), ErrUserNotFound)
}
