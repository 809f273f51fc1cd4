// Command admin provides bootstrap and support operations: seeding the first
// platform administrator and minting tokens for manual testing.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/mail"
	"os"
	"time"

	"github.com/emendasgov/emendas/app/sdk/auth"
	"github.com/emendasgov/emendas/business/domain/rolebus"
	"github.com/emendasgov/emendas/business/domain/rolebus/stores/roledb"
	"github.com/emendasgov/emendas/business/domain/userbus"
	"github.com/emendasgov/emendas/business/domain/userbus/stores/identityapi"
	"github.com/emendasgov/emendas/business/domain/userbus/stores/userdb"
	"github.com/emendasgov/emendas/business/sdk/sqldb"
	"github.com/emendasgov/emendas/business/types/name"
	"github.com/emendasgov/emendas/business/types/password"
	"github.com/emendasgov/emendas/business/types/role"
	"github.com/emendasgov/emendas/foundation/keystore"
	"github.com/emendasgov/emendas/foundation/logger"
	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"emendas"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
	Identity struct {
		URL        string `envconfig:"IDENTITY_URL" default:"http://localhost:9999"`
		ServiceKey string `envconfig:"IDENTITY_SERVICE_KEY"`
	}
	Auth struct {
		KeysFolder string `envconfig:"AUTH_KEYS_FOLDER" default:"foundation/zarf/keys"`
		ActiveKID  string `envconfig:"AUTH_ACTIVE_KID" default:"54bb2165-71e1-41a6-af3e-7da4a0e1e2c1"`
		Issuer     string `envconfig:"AUTH_ISSUER" default:"https://emendasgov.com.br/auth/"`
	}
}

func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, "ADMIN-TOOL", nil)
	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: seed-admin, gentoken")
		return nil
	}

	db, err := sqldb.Open(sqldb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Name:         cfg.DB.Name,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		DisableTLS:   cfg.DB.DisableTLS,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer db.Close()

	roleBus := rolebus.NewCore(roledb.NewStore(log, db))
	identity := identityapi.NewStore(log, cfg.Identity.URL, cfg.Identity.ServiceKey)
	userBus := userbus.NewCore(log, sqldb.NewBeginner(db), userdb.NewStore(log, db), identity, roleBus)

	switch os.Args[1] {
	case "seed-admin":
		return runSeedAdmin(ctx, userBus, os.Args[2:])
	case "gentoken":
		return runGenToken(ctx, log, cfg, userBus, os.Args[2:])
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

// runSeedAdmin provisions the first platform administrator. The provisioning
// policy is evaluated with a bootstrap super admin grant since there is no
// authenticated caller at seed time.
func runSeedAdmin(ctx context.Context, ub *userbus.Core, args []string) error {
	cmd := flag.NewFlagSet("seed-admin", flag.ExitOnError)
	emailStr := cmd.String("email", "", "Admin email (Required)")
	passStr := cmd.String("password", "", "Admin password (Required)")
	nameStr := cmd.String("name", "", "Admin full name (Required)")
	cmd.Parse(args)

	if *emailStr == "" || *passStr == "" || *nameStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	addr, err := mail.ParseAddress(*emailStr)
	if err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	pass, err := password.Parse(*passStr)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	n, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	bootstrap := []rolebus.Assignment{
		{Role: role.SuperAdmin},
	}

	nu := userbus.NewUser{
		Email:        *addr,
		Password:     pass,
		NomeCompleto: n,
		Role:         role.SuperAdmin,
	}

	usr, asg, err := ub.Provision(ctx, bootstrap, nu)
	if err != nil {
		return fmt.Errorf("provision admin: %w", err)
	}

	fmt.Printf("\nSUCCESS: Admin created!\nID: %s\nEmail: %s\nAssignment: %s\n", usr.ID, usr.Email.Address, asg.ID)
	return nil
}

// runGenToken mints a token for manual testing against a live environment.
func runGenToken(ctx context.Context, log *logger.Logger, cfg Config, ub *userbus.Core, args []string) error {
	cmd := flag.NewFlagSet("gentoken", flag.ExitOnError)
	userIDStr := cmd.String("user-id", "", "User UUID (Required)")
	roleStr := cmd.String("role", "super_admin", "Role to embed in the token")
	prefIDStr := cmd.String("prefeitura-id", "", "Prefeitura UUID (tenant roles only)")
	cmd.Parse(args)

	if *userIDStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required user id")
	}

	userID, err := uuid.Parse(*userIDStr)
	if err != nil {
		return fmt.Errorf("invalid user uuid: %w", err)
	}

	r, err := role.Parse(*roleStr)
	if err != nil {
		return fmt.Errorf("invalid role: %w", err)
	}

	var prefeituraID uuid.UUID
	if *prefIDStr != "" {
		prefeituraID, err = uuid.Parse(*prefIDStr)
		if err != nil {
			return fmt.Errorf("invalid prefeitura uuid: %w", err)
		}
	}

	ks := keystore.New()
	if _, err := ks.LoadByFileSystem(os.DirFS(cfg.Auth.KeysFolder)); err != nil {
		return fmt.Errorf("loading keys: %w", err)
	}

	a := auth.New(auth.Config{
		Log:       log,
		UserBus:   ub,
		KeyLookup: ks,
		Issuer:    cfg.Auth.Issuer,
	})

	token, err := a.GenerateToken(cfg.Auth.ActiveKID, userID, prefeituraID, r)
	if err != nil {
		return fmt.Errorf("generating token: %w", err)
	}

	fmt.Printf("\nTOKEN (valid %s):\n%s\n", 24*time.Hour, token)
	return nil
}
