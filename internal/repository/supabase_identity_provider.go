package repository

import (
	"context"
	"fmt"

	"github.com/supabase-community/gotrue-go"

	"MiddleMeetup-App/internal/domain/model"
	"MiddleMeetup-App/internal/domain/repository"
	"MiddleMeetup-App/internal/infrastructure/database"
)

// SupabaseIdentityProvider Supabase Authでアクセストークンを検証する
type SupabaseIdentityProvider struct {
	auth gotrue.Client
}

func NewSupabaseIdentityProvider(client *database.SupabaseClient) repository.IdentityProvider {
	return newIdentityProvider(client.GetClient().Auth)
}

func newIdentityProvider(auth gotrue.Client) *SupabaseIdentityProvider {
	return &SupabaseIdentityProvider{auth: auth}
}

// VerifyAccessToken トークンに対応する利用者を取得する
func (p *SupabaseIdentityProvider) VerifyAccessToken(ctx context.Context, token string) (*model.Identity, error) {
	if token == "" {
		return nil, repository.ErrInvalidToken
	}

	user, err := p.auth.WithToken(token).GetUser()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrInvalidToken, err)
	}

	return &model.Identity{
		UserID: user.ID.String(),
		Email:  user.Email,
	}, nil
}
