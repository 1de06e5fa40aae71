package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"strings"

	skillDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/skill"
	userDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/user"
	wantDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/want"
	"github.com/frahmantamala/skill-exchange/internal/media"
	"github.com/frahmantamala/skill-exchange/pkg/logger"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample users, skills and wants for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		logger.Init(cfg.Server.Env, cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gdb, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		store, err := media.NewStore(ctx, cfg.Media)
		if err != nil {
			log.Fatalf("failed to init media store: %v", err)
		}

		seeder := &Seeder{DB: gdb, Media: store, Logger: logger.LoggerWrapper(), BCryptCost: bcrypt.MinCost}
		if clearData {
			if err := seeder.Clear(ctx); err != nil {
				log.Fatalf("failed to clear data: %v", err)
			}
		}
		if err := seeder.Seed(ctx); err != nil {
			log.Fatalf("failed to seed: %v", err)
		}
		fmt.Println("Seeding complete. Every demo user logs in with password \"password\".")
	},
}

type seedUser struct {
	Name       string
	Email      string
	Profession string
	Skills     []string
	Wants      []string
}

var demoUsers = []seedUser{
	{
		Name:       "Alice",
		Email:      "alice@mail.com",
		Profession: "Musician",
		Skills:     []string{"Guitar Lessons for Beginners", "Music Theory Basics"},
		Wants:      []string{"cooking"},
	},
	{
		Name:       "Bob",
		Email:      "bob@mail.com",
		Profession: "Chef",
		Skills:     []string{"Home Cooking Essentials"},
		Wants:      []string{"guitar"},
	},
	{
		Name:       "Carol",
		Email:      "carol@mail.com",
		Profession: "Designer",
		Skills:     []string{"Sketching with Pencil"},
		Wants:      []string{"theory", "guitar"},
	},
}

// Seeder inserts demo users with a skill video placeholder each. It is idempotent on user email.
type Seeder struct {
	DB         *gorm.DB
	Media      media.Store
	Logger     *slog.Logger
	BCryptCost int
}

func (s *Seeder) Seed(ctx context.Context) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), s.BCryptCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	for _, du := range demoUsers {
		var existing userDatamodel.User
		err := s.DB.WithContext(ctx).Where("email = ?", du.Email).Take(&existing).Error
		if err == nil {
			s.Logger.Info("demo user already exists", "email", du.Email)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("look up %s: %w", du.Email, err)
		}

		u := &userDatamodel.User{Name: du.Name, Email: du.Email, PasswordHash: string(hash), Profession: du.Profession}
		if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
			return fmt.Errorf("create user %s: %w", du.Email, err)
		}

		for _, title := range du.Skills {
			ref, err := s.Media.Save(ctx, "demo.mp4", strings.NewReader("demo video for "+title))
			if err != nil {
				return fmt.Errorf("store demo video: %w", err)
			}
			sk := &skillDatamodel.Skill{Title: title, Description: "Demo skill by " + du.Name, Video: ref, UserID: u.ID}
			if err := s.DB.WithContext(ctx).Create(sk).Error; err != nil {
				return fmt.Errorf("create skill %q: %w", title, err)
			}
		}

		for _, title := range du.Wants {
			w := &wantDatamodel.Want{Title: title, UserID: u.ID}
			if err := s.DB.WithContext(ctx).Create(w).Error; err != nil {
				return fmt.Errorf("create want %q: %w", title, err)
			}
		}

		s.Logger.Info("seeded demo user", "email", du.Email, "skills", len(du.Skills), "wants", len(du.Wants))
	}
	return nil
}

// Clear removes every row the seeder could have written, children first.
func (s *Seeder) Clear(ctx context.Context) error {
	for _, table := range []string{"permissions", "requests", "wants", "skills", "users"} {
		if err := s.DB.WithContext(ctx).Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	s.Logger.Info("cleared existing data")
	return nil
}
