package service

import (
	"context"
	"errors"
	"time"

	"ayher/internal/apierror"
	"ayher/internal/config"
	"ayher/internal/dto"
	"ayher/internal/model"
	"ayher/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error)
	DesactivarUsuario(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, errors.New("credenciales inválidas")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("credenciales inválidas")
	}

	expira := time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour)
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"username": user.Username,
		"rol":      user.Rol,
		"exp":      expira.Unix(),
		"iat":      time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	log.Info().Str("username", user.Username).Str("rol", user.Rol).Msg("login exitoso")

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expira.Format(time.RFC3339),
		Usuario:   user.Username,
		Rol:       user.Rol,
	}, nil
}

func (s *authService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.Usuario{
		Username:     req.Username,
		PasswordHash: string(hash),
		Nombre:       req.Nombre,
		Email:        req.Email,
		Rol:          req.Rol,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &apierror.ConflictoError{Detalle: "el username " + req.Username + " ya existe"}
		}
		return nil, err
	}
	return usuarioToResponse(user), nil
}

func (s *authService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	usuarios, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsuarioResponse, 0, len(usuarios))
	for i := range usuarios {
		out = append(out, *usuarioToResponse(&usuarios[i]))
	}
	return out, nil
}

func (s *authService) DesactivarUsuario(ctx context.Context, id uuid.UUID) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NoEncontrado("usuario " + id.String())
		}
		return err
	}
	user.Activo = false
	return s.repo.Update(ctx, user)
}

func usuarioToResponse(u *model.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Nombre:   u.Nombre,
		Email:    u.Email,
		Rol:      u.Rol,
		Activo:   u.Activo,
	}
}
