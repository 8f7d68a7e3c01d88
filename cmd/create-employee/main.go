// Comando create-employee: da de alta un empleado en PostgreSQL (password con bcrypt).
//
//	go run ./cmd/create-employee -name "Ana" -email ana@tienda.co -password 'clave-segura' -role admin
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/apimarket/internal/application/auth"
	"github.com/jhoicas/apimarket/internal/application/dto"
	"github.com/jhoicas/apimarket/internal/domain"
	"github.com/jhoicas/apimarket/internal/infrastructure/postgres"
	"github.com/jhoicas/apimarket/pkg/config"
	"github.com/jhoicas/apimarket/pkg/logger"
)

func main() {
	name := flag.String("name", "", "nombre del empleado")
	email := flag.String("email", "", "email (login)")
	password := flag.String("password", "", "password (mínimo 8 caracteres)")
	role := flag.String("role", "cajero", "rol: admin | cajero | bodega")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uc := auth.NewAuthUseCase(postgres.NewEmployeeRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	out, err := uc.RegisterEmployee(ctx, dto.CreateEmployeeRequest{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Role:     *role,
	})
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			log.Error().Str("field", verr.Field).Msg(verr.Message)
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			log.Error().Str("email", *email).Msg("el email ya está registrado")
		default:
			log.Error().Err(err).Msg("crear empleado")
		}
		os.Exit(1)
	}
	log.Info().Int64("id", out.ID).Str("email", out.Email).Str("role", out.Role).Msg("empleado creado")
}
