package authenticating

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/c4-store-api/infrastructure/repository"
	"github.com/vfg2006/c4-store-api/internal/config"
	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/pkg/actor"
	"github.com/vfg2006/c4-store-api/pkg/apiErrors"
	"github.com/vfg2006/c4-store-api/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	defaultTokenTTL   = 24 * time.Hour
	demoUserPrefix    = "demo_user_"
)

type Authenticator interface {
	Register(ctx context.Context, input RegisterInput) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	LoginDemo(ctx context.Context) (*Session, error)
	Me(ctx context.Context) (*Profile, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	ValidatePasswordStrength(password string) error
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile é o usuário sem o hash da senha
type Profile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	RoleID int    `json:"roleId"`
	IsDemo bool   `json:"isDemo"`
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      Profile   `json:"user"`
}

type Service struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	clock    func() time.Time
}

func NewService(userRepo repository.UserRepository, cfg *config.Config) *Service {
	return &Service{
		userRepo: userRepo,
		cfg:      cfg,
		clock:    time.Now,
	}
}

// WithClock substitui o relógio usado na emissão dos tokens
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

// Register cria o usuário e já devolve a sessão. O primeiro usuário da loja é o dono.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = handleEmail(input.Email)

	if input.Email == "" || input.Password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	if err := s.ValidatePasswordStrength(input.Password); err != nil {
		return nil, NewAuthError(ErrWeakPassword, apiErrors.ErrInvalidFormat, err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário")
	}
	if existing != nil {
		return nil, NewUserAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, existing.ID, "Email já cadastrado")
	}

	roleID, err := s.roleForNewUser(ctx)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao proteger a senha")
	}

	name := input.Name
	if name == "" {
		name = strings.SplitN(input.Email, "@", 2)[0]
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Name:         name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		RoleID:       roleID,
		Active:       true,
	})
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao criar usuário")
	}

	log.ForComponent(ctx, "authenticating").WithFields(log.Fields{
		"user_id": user.ID,
		"role_id": user.RoleID,
	}).Info("Usuário registrado")

	return s.session(user)
}

func (s *Service) roleForNewUser(ctx context.Context) (int, error) {
	users, err := s.userRepo.List(ctx, nil)
	if err != nil {
		return 0, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuários")
	}
	if len(users) == 0 {
		return domain.RoleOwner, nil
	}
	return domain.RoleSeller, nil
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}

func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	email = handleEmail(email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário")
	}

	if user == nil {
		return nil, NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "Usuário não encontrado")
	}

	if !user.Active {
		return nil, NewUserAuthError(ErrUserDisabled, apiErrors.ErrUserDisabled, user.ID, "Conta desativada")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.ID, "Senha incorreta")
	}

	return s.session(user)
}

// LoginDemo emite um token para um usuário demo avulso, sem consultar o armazenamento
func (s *Service) LoginDemo(ctx context.Context) (*Session, error) {
	demo := actor.Demo()
	user := &domain.User{
		ID:     demoUserPrefix + strconv.FormatInt(s.clock().UnixMilli(), 10),
		Name:   demo.Name,
		Email:  "demo@c4store.local",
		RoleID: demo.RoleID,
		Active: true,
	}

	log.ForComponent(ctx, "authenticating").WithField("user_id", user.ID).Info("Login demo")
	return s.session(user)
}

// Me devolve o perfil do ator da requisição. O ator demo não tem registro no armazenamento.
func (s *Service) Me(ctx context.Context) (*Profile, error) {
	current := actor.FromContext(ctx)
	if current.IsDemo {
		return &Profile{
			ID:     current.ID,
			Name:   current.Name,
			Email:  current.Email,
			RoleID: current.RoleID,
			IsDemo: true,
		}, nil
	}

	user, err := s.userRepo.Get(ctx, current.ID)
	if err != nil {
		return nil, NewUserAuthError(err, apiErrors.ErrDatabaseOperation, current.ID, "Erro ao consultar usuário")
	}
	if user == nil {
		return nil, NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, current.ID, "Usuário não encontrado")
	}

	profile := profileOf(user)
	return &profile, nil
}

func profileOf(user *domain.User) Profile {
	return Profile{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		RoleID: user.RoleID,
		IsDemo: strings.HasPrefix(user.ID, demoUserPrefix) || user.ID == domain.DemoUserID,
	}
}

func (s *Service) session(user *domain.User) (*Session, error) {
	ttl := s.cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	expiresAt := s.clock().Add(ttl)

	token, err := generateJWT(user, s.cfg.SecretKey, expiresAt)
	if err != nil {
		return nil, NewUserAuthError(err, apiErrors.ErrInternalServer, user.ID, "Erro ao gerar token de autenticação")
	}

	return &Session{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      profileOf(user),
	}, nil
}

func generateJWT(user *domain.User, secretKey string, expiresAt time.Time) (string, error) {
	claims := domain.Claims{
		UserID:     user.ID,
		UserName:   user.Name,
		UserEmail:  user.Email,
		UserRoleID: user.RoleID,
		IsDemo:     profileOf(user).IsDemo,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	}, jwt.WithTimeFunc(s.clock))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "Token expirado")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	if claims, ok := token.Claims.(*domain.Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "Token inválido")
}

// ValidatePasswordStrength exige ao menos seis caracteres que não sejam só espaços
func (s *Service) ValidatePasswordStrength(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return fmt.Errorf("a senha deve conter pelo menos %d caracteres", minPasswordLength)
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("a senha não pode conter apenas espaços")
	}
	return nil
}
