// seed carga en PostgreSQL el maestro de demostración (bodega MAIN, ubicaciones RECEIVING y A001,
// artículos WIDGET-001, MED-100 y SCAN-200) y opcionalmente imprime un token JWT de desarrollo.
//
// Uso: go run ./cmd/seed [-token-user u1 -token-role bodeguero]
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/jhoicas/wms-api/internal/infrastructure/postgres"
	"github.com/jhoicas/wms-api/internal/infrastructure/seed"
	"github.com/jhoicas/wms-api/pkg/config"
	"github.com/jhoicas/wms-api/pkg/jwt"
	"github.com/jhoicas/wms-api/pkg/logger"
)

func main() {
	tokenUser := flag.String("token-user", "", "si se indica, imprime un token JWT para este usuario")
	tokenRole := flag.String("token-role", jwt.RoleBodeguero, "rol del token (admin, bodeguero, operario)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("seed")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	res, err := seed.Load(ctx, postgres.NewRepos(pool), time.Now().UTC())
	if err != nil {
		log.Fatal().Err(err).Msg("cargar maestro de demostración")
	}
	log.Info().
		Int("warehouses", res.Warehouses).
		Int("locations", res.Locations).
		Int("items", res.Items).
		Msg("maestro de demostración cargado")

	if *tokenUser == "" {
		return
	}
	token, err := jwt.Generate(cfg.JWT.Secret, *tokenUser, *tokenRole, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		log.Fatal().Err(err).Msg("generar token")
	}
	fmt.Println(token)
}
