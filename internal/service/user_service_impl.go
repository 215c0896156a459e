package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/aula/internal/domain"
	"github.com/alexanderramin/aula/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	users    repository.UserRepo
	observer UseCaseObserver
}

func NewUserService(users repository.UserRepo, observers ...UseCaseObserver) UserService {
	return &userService{users: users, observer: useCaseObserverOrNoop(observers)}
}

func (s *userService) Create(ctx context.Context, in CreateUserInput) (user *domain.User, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"role": string(in.Role)}
	defer func() { observe(ctx, s.observer, "create-user", startedAt, fields, err) }()

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err = inputs.Struct(in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user = &domain.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		Role:         in.Role,
		PasswordHash: string(hash),
		Active:       true,
		CreatedAt:    startedAt,
		UpdatedAt:    startedAt,
	}
	if err = s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrStoreConflict) {
			return nil, domain.ErrDuplicateEmail.With("%s is already registered", in.Email)
		}
		return nil, err
	}
	fields["user_id"] = user.ID
	return user, nil
}

func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *userService) CheckPassword(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.ErrForbidden.With("invalid credentials")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrForbidden.With("invalid credentials")
	}
	return u, nil
}

func (s *userService) ResolveActor(ctx context.Context, key string) (domain.Actor, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.Actor{}, domain.ErrForbidden.With("no acting user given (use --as)")
	}

	var u *domain.User
	var err error
	if strings.Contains(key, "@") {
		u, err = s.users.GetByEmail(ctx, key)
	} else {
		u, err = s.users.GetByID(ctx, key)
	}
	if err != nil {
		return domain.Actor{}, err
	}
	if !u.Active {
		return domain.Actor{}, domain.ErrForbidden.With("user %s is inactive", u.Email)
	}
	return domain.Actor{UserID: u.ID, Role: u.Role}, nil
}
