package usecase

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/iho/gobank/internal/domain"
)

// UserUseCase handles signup and authentication.
type UserUseCase struct {
	userRepo  UserRepository
	idGen     IDGenerator
	encryptor FieldEncryptor
}

// NewUserUseCase creates a new user use case.
func NewUserUseCase(userRepo UserRepository, idGen IDGenerator, encryptor FieldEncryptor) *UserUseCase {
	return &UserUseCase{
		userRepo:  userRepo,
		idGen:     idGen,
		encryptor: encryptor,
	}
}

// SignupInput represents input for registering a user.
type SignupInput struct {
	Email       string
	Name        string
	Password    string
	DateOfBirth time.Time
	NationalID  string
}

// Signup registers a new user. The national ID is encrypted before it is
// handed to the repository; nothing downstream ever sees the plaintext.
func (uc *UserUseCase) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	if err := domain.ValidateDateOfBirth(input.DateOfBirth); err != nil {
		return nil, err
	}

	existing, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	encryptedID, err := uc.encryptor.Encrypt(input.NationalID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	user := &domain.User{
		ID:                  uc.idGen.Generate(),
		Email:               input.Email,
		Name:                input.Name,
		HashedPassword:      hashedPassword,
		DateOfBirth:         input.DateOfBirth,
		NationalIDEncrypted: encryptedID,
		Active:              true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return sanitized(user), nil
}

// AuthenticateInput represents authentication input.
type AuthenticateInput struct {
	Email    string
	Password string
}

// Authenticate verifies user credentials. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (uc *UserUseCase) Authenticate(ctx context.Context, input AuthenticateInput) (*domain.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	if !user.Active {
		return nil, domain.ErrUserInactive
	}

	if err := verifyPassword(user.HashedPassword, input.Password); err != nil {
		return nil, domain.ErrUnauthorized
	}

	return sanitized(user), nil
}

// GetUser retrieves a user by ID.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return sanitized(user), nil
}

// sanitized projects a user for callers outside the use case layer.
// It copies before scrubbing so the object held by the repository keeps
// its credential material.
func sanitized(user *domain.User) *domain.User {
	copied := *user
	copied.HashedPassword = ""
	copied.NationalIDEncrypted = nil
	return &copied
}

// hashPassword hashes a password using bcrypt.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword verifies a password against a hash.
func verifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
