// Package auth implementa el login del dashboard contra la credencial
// estática configurada. No hay registro de usuarios ni roles.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/delivery-tax-api/internal/application/dto"
	"github.com/jhoicas/delivery-tax-api/internal/domain"
	"github.com/jhoicas/delivery-tax-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Credential credencial estática del dashboard. PasswordHash es un hash
// bcrypt; nunca se configura la contraseña en claro.
type Credential struct {
	Username     string
	PasswordHash string
}

// UseCase caso de uso de autenticación: login contra la credencial estática.
type UseCase struct {
	credential Credential
	jwtCfg     JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(credential Credential, jwtCfg JWTConfig) *UseCase {
	return &UseCase{credential: credential, jwtCfg: jwtCfg}
}

// Login verifica usuario y contraseña contra la credencial estática y genera
// el token Bearer. Usuario desconocido y contraseña incorrecta devuelven el
// mismo error para no filtrar cuál de los dos falló.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username != uc.credential.Username {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.credential.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, in.Username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
	}, nil
}
