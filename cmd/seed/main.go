package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"bdrdragon/internal/cache"
	"bdrdragon/internal/config"
	"bdrdragon/internal/db"
	apperrors "bdrdragon/internal/errors"
	"bdrdragon/internal/logger"
	"bdrdragon/internal/model"
	"bdrdragon/internal/repository"
	"bdrdragon/internal/service"
)

const (
	devAdminEmail    = "admin@bdrdragon.local"
	devAdminPassword = "Admin123!"
)

// sampleSnapshot is the activity recorded for today when -kpis is set.
var sampleSnapshot = service.SnapshotInput{
	Calls:                45,
	Emails:               120,
	MeetingsBooked:       3,
	MeetingsHeld:         2,
	OpportunitiesCreated: 1,
	CleanOpportunities:   1,
}

func main() {
	withKpis := flag.Bool("kpis", false, "also record a sample KPI snapshot for today")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg.Environment, cfg.LogLevel)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("resolve timezone")
	}

	email, password, err := adminCredentials(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("admin credentials")
	}

	gormDB, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer db.Close(gormDB)

	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer cacheClient.Close()

	clock := service.NewClock(loc)
	userRepo := repository.NewUserRepository(gormDB)
	userService := service.NewUserService(userRepo, repository.NewMarketRepository(gormDB), cacheClient)
	kpiService := service.NewKpiService(userRepo, repository.NewKpiRepository(gormDB), clock)

	ctx := context.Background()

	admin, created, err := upsertAdmin(ctx, userRepo, userService, email, password)
	if err != nil {
		log.Fatal().Err(err).Str("email", email).Msg("seed admin")
	}
	log.Info().Str("email", admin.Email).Str("id", admin.ID.String()).Bool("created", created).Msg("admin seeded")

	if !*withKpis {
		return
	}

	snapshot, err := seedSnapshot(ctx, kpiService, admin)
	switch {
	case err != nil:
		log.Fatal().Err(err).Msg("seed kpi snapshot")
	case snapshot == nil:
		log.Info().Str("user", admin.Email).Msg("today's snapshot already recorded, skipping")
	default:
		log.Info().
			Str("user", admin.Email).
			Time("date", snapshot.Date).
			Msg("kpi snapshot seeded")
	}
}

// seedSnapshot records the sample activity for today against user. A snapshot that
// already exists for today is not an error; it yields a nil snapshot.
func seedSnapshot(ctx context.Context, kpis service.KpiService, user *model.User) (*model.KpiSnapshot, error) {
	in := sampleSnapshot
	in.UserID = user.ID
	snapshot, err := kpis.RecordSnapshot(ctx, in)
	if errors.Is(err, apperrors.ErrSnapshotExists) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// adminCredentials reads the seed admin from the environment. Outside production the
// local defaults apply.
func adminCredentials(cfg *config.Config) (string, string, error) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if cfg.IsProduction() {
		if email == "" || password == "" {
			return "", "", errors.New("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required in production")
		}
		return email, password, nil
	}
	if email == "" {
		email = devAdminEmail
	}
	if password == "" {
		password = devAdminPassword
	}
	return email, password, nil
}

// upsertAdmin creates the admin, or promotes, reactivates and resets the password of an
// existing account with that email.
func upsertAdmin(ctx context.Context, repo repository.UserRepository, users service.UserService, email, password string) (*model.User, bool, error) {
	existing, err := repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("look up %s: %w", email, err)
	}

	if err != nil {
		user, err := users.Register(ctx, service.RegisterInput{
			Email:        email,
			Role:         model.RoleAdmin,
			TempPassword: password,
		})
		if err != nil {
			return nil, false, err
		}
		return user, true, nil
	}

	role := model.RoleAdmin
	active := true
	if _, err := users.Update(ctx, existing.ID, service.UpdateUserInput{Role: &role, IsActive: &active}); err != nil {
		return nil, false, err
	}
	if err := users.SetPassword(ctx, existing.ID, password); err != nil {
		return nil, false, err
	}
	return existing, false, nil
}
