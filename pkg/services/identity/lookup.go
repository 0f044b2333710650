package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/de-tools/cart-report/pkg/adapters"
	"github.com/de-tools/cart-report/pkg/models/domain"
	"github.com/de-tools/cart-report/pkg/models/store"
	"github.com/de-tools/cart-report/pkg/store/query"
)

var ErrUserNotFound = errors.New("user not found")

type Store interface {
	Get(ctx context.Context, dest any, stmt query.Statement) error
}

// Lookup resolves a buyer account by id.
type Lookup interface {
	Resolve(ctx context.Context, userID int64) (domain.Identity, error)
}

type lookup struct {
	store      Store
	builder    *query.Builder
	profileURL string
}

func NewLookup(store Store, builder *query.Builder, profileURL string) Lookup {
	return &lookup{
		store:      store,
		builder:    builder,
		profileURL: profileURL,
	}
}

func (l *lookup) Resolve(ctx context.Context, userID int64) (domain.Identity, error) {
	var row store.UserRow
	if err := l.store.Get(ctx, &row, l.builder.User(userID)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Identity{}, fmt.Errorf("%w: %d", ErrUserNotFound, userID)
		}
		return domain.Identity{}, fmt.Errorf("failed to resolve user %d: %w", userID, err)
	}

	identity := adapters.MapStoreUserRowToDomain(row)
	identity.ProfileURL = ProfileURL(l.profileURL, row.ID)
	return identity, nil
}

// FromCart builds the buyer identity from the account columns already joined onto a cart.
func FromCart(cart domain.Cart, profileURL string) domain.Identity {
	return domain.Identity{
		UserID:      cart.UserID,
		Username:    cart.Username,
		Email:       cart.Email,
		DisplayName: adapters.DisplayName(cart.FirstName, cart.LastName, cart.Username),
		ProfileURL:  ProfileURL(profileURL, cart.UserID),
	}
}

// ProfileURL expands a pattern holding a single %d verb. An empty pattern yields no link.
func ProfileURL(pattern string, userID int64) string {
	return domain.ExpandLink(pattern, userID)
}
