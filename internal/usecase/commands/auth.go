package commands

import (
	"context"

	"cinebook/internal/domain/user"
	"cinebook/internal/infra"
	"cinebook/internal/pkg/errs"
	"cinebook/internal/pkg/jwt"
	"cinebook/internal/pkg/password"
	"cinebook/internal/usecase/queries"
)

var (
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrGuestLogin         = errs.New("guest accounts cannot log in")
)

type LoginResult struct {
	AccessToken string
	UserID      string
	Role        string
}

type AuthCommands interface {
	Login(ctx context.Context, email, rawPassword string) (*LoginResult, error)
}

// UserAuthSource reads credential data for login.
type UserAuthSource interface {
	FindAuthByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, error)
}

type authCommandsImpl struct {
	users      UserAuthSource
	jwtService *jwt.Service
}

func NewAuthCommands(users UserAuthSource, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		users:      users,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, email, rawPassword string) (*LoginResult, error) {
	view, err := a.users.FindAuthByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	// Guests carry only the placeholder credential
	if view.IsGuest {
		return nil, ErrGuestLogin
	}

	if err := password.ComparePassword(view.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	token, err := a.jwtService.GenerateToken(view.ID, role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate token")
	}

	return &LoginResult{
		AccessToken: token,
		UserID:      view.ID.String(),
		Role:        view.Role,
	}, nil
}
