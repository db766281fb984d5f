package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/DevRyuki/todo-with-cline/app/dto"
	"github.com/DevRyuki/todo-with-cline/app/entity"
	"github.com/DevRyuki/todo-with-cline/app/repository"
	"github.com/DevRyuki/todo-with-cline/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrWeakPassword       = errors.New("password does not meet policy requirements")
)

const resetTokenBytes = 32

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type AuthService struct {
	db           *sql.DB
	userRepo     *repository.UserRepository
	passwordRepo *repository.PasswordRepository
	tokenRepo    *repository.VerificationTokenRepository
	sessionRepo  *repository.SessionRepository
	mailer       Mailer
	cfg          *config.Config
}

func NewAuthService(
	db *sql.DB,
	userRepo *repository.UserRepository,
	passwordRepo *repository.PasswordRepository,
	tokenRepo *repository.VerificationTokenRepository,
	sessionRepo *repository.SessionRepository,
	mailer Mailer,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		db:           db,
		userRepo:     userRepo,
		passwordRepo: passwordRepo,
		tokenRepo:    tokenRepo,
		sessionRepo:  sessionRepo,
		mailer:       mailer,
		cfg:          cfg,
	}
}

// Register creates the user and its credential row in a single transaction so
// a failure between the two writes cannot leave an orphaned user behind.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*entity.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	if err := s.cfg.Password.Policy.Validate(password); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	userID, err := newOpaqueID()
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:    userID,
		Email: email,
	}
	if name != "" {
		user.Name = sql.NullString{String: name, Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.userRepo.WithTx(tx).Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.passwordRepo.WithTx(tx).Create(ctx, &entity.Password{
		UserID:    userID,
		Hash:      string(hashedPassword),
		UpdatedAt: time.Now(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return user, nil
}

// ValidateUser returns the user for a correct email/password pair and
// (nil, nil) for an unknown email, a missing credential row, or a mismatch.
// It performs no writes.
func (s *AuthService) ValidateUser(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	credential, err := s.passwordRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if credential == nil {
		return nil, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.Hash), []byte(password)); err != nil {
		return nil, nil
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.LoginResult, error) {
	user, err := s.ValidateUser(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	sessionID, err := newOpaqueID()
	if err != nil {
		return nil, err
	}

	session := &entity.Session{
		ID:           sessionID,
		SessionToken: uuid.New().String(),
		UserID:       user.ID,
		Expires:      time.Now().Add(s.cfg.Session.TTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResult{
		AccessToken:  accessToken,
		SessionToken: session.SessionToken,
		ExpiresIn:    int64(s.cfg.JWT.AccessTokenTTL.Seconds()),
		User:         user,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, userID, sessionToken string) error {
	_, err := s.sessionRepo.DeleteBySessionToken(ctx, sessionToken, userID)
	return err
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GeneratePasswordResetToken invalidates any outstanding reset tokens for the
// email and issues a fresh one.
func (s *AuthService) GeneratePasswordResetToken(ctx context.Context, email string) (*entity.VerificationToken, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := s.tokenRepo.DeleteByIdentifier(ctx, email); err != nil {
		return nil, err
	}

	raw := make([]byte, resetTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}

	token := &entity.VerificationToken{
		Identifier: email,
		Token:      hex.EncodeToString(raw),
		Expires:    time.Now().Add(s.cfg.Tokens.ResetTTL),
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return token, nil
}

// ResetPassword consumes a reset token and replaces the owner's credential.
// The hash overwrite, token deletion, and session revocation commit together.
// A token whose user row has since been deleted is treated the same as an
// unknown token.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	txTokenRepo := s.tokenRepo.WithTx(tx)
	vt, err := txTokenRepo.FindByToken(ctx, token)
	if err != nil {
		return err
	}
	if vt == nil {
		return ErrInvalidToken
	}

	if !vt.Expires.After(time.Now()) {
		return ErrInvalidToken
	}

	user, err := s.userRepo.WithTx(tx).FindByEmail(ctx, vt.Identifier)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidToken
	}

	if err := s.cfg.Password.Policy.Validate(newPassword); err != nil {
		return fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.passwordRepo.WithTx(tx).UpdateHash(ctx, user.ID, string(hashedPassword)); err != nil {
		return err
	}

	if err := txTokenRepo.DeleteByToken(ctx, token); err != nil {
		return err
	}

	if err := s.sessionRepo.WithTx(tx).DeleteByUserID(ctx, user.ID); err != nil {
		return err
	}

	return tx.Commit()
}

// SendPasswordResetEmail dispatches the reset link for a freshly issued token.
// Delivery failures are returned to the caller rather than swallowed.
func (s *AuthService) SendPasswordResetEmail(ctx context.Context, token *entity.VerificationToken, userName string) error {
	resetURL := fmt.Sprintf("%s/auth/reset-password?token=%s", s.cfg.Mail.AppURL, token.Token)
	return s.mailer.SendPasswordReset(ctx, token.Identifier, userName, resetURL)
}

func (s *AuthService) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *AuthService) generateAccessToken(user *entity.User) (string, error) {
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.JWT.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.Email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.Secret))
}

func newOpaqueID() (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}
