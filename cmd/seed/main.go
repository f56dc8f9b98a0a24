// Command seed loads a JSON fixture into the store, hashing plaintext
// passwords and resolving natural keys (username, card front, deck name) to
// generated identifiers before insertion.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/spec-kit/deckflow-admin/internal/auth"
	"github.com/spec-kit/deckflow-admin/internal/config"
	"github.com/spec-kit/deckflow-admin/internal/domain"
	"github.com/spec-kit/deckflow-admin/internal/observability"
	"github.com/spec-kit/deckflow-admin/internal/persistence"
	"github.com/spec-kit/deckflow-admin/internal/repository"
)

type seedFile struct {
	Users []struct {
		Name     string  `json:"name"`
		Email    string  `json:"email"`
		Avatar   *string `json:"avatar"`
		Password string  `json:"password"`
		Role     string  `json:"role"`
	} `json:"users"`
	Cards []struct {
		Front string `json:"frontCard"`
		Back  string `json:"backCard"`
	} `json:"cards"`
	Decks []struct {
		Name        string   `json:"deckName"`
		Description string   `json:"description"`
		Owner       string   `json:"owner"`
		Cards       []string `json:"cards"`
	} `json:"decks"`
	Requests []struct {
		Deck   string `json:"deck"`
		User   string `json:"user"`
		Status string `json:"status"`
	} `json:"requests"`
}

func main() {
	dataPath := flag.String("data", "data.json", "path to the seed fixture")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	if err := seed(ctx, cfg, pg, *dataPath, logger); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
	logger.Info("database seeded")
}

func seed(ctx context.Context, cfg *config.Config, pg *persistence.Postgres, dataPath string, logger *zap.Logger) error {
	raw, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}
	var data seedFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parse fixture: %w", err)
	}

	pool := pg.PoolHandle()
	users := repository.NewUserRepository(pool)
	cards := repository.NewCardRepository(pool)
	decks := repository.NewDeckRepository(pool)
	requests := repository.NewRequestRepository(pool)

	userIDs := make(map[string]string, len(data.Users))
	for _, u := range data.Users {
		hash, err := auth.HashPassword(u.Password, cfg.Auth.BcryptCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.Email, err)
		}
		role := domain.RoleCustomer
		if parsed, err := parseRole(u.Role); err == nil {
			role = parsed
		}
		user := &domain.User{
			Name:         u.Name,
			Email:        u.Email,
			AvatarURL:    u.Avatar,
			PasswordHash: hash,
			Role:         role,
		}
		if err := users.Create(ctx, user); err != nil {
			return fmt.Errorf("insert user %s: %w", u.Email, err)
		}
		userIDs[u.Name] = user.ID
	}
	logger.Info("seeded users", zap.Int("count", len(data.Users)))

	cardIDs := make(map[string]string, len(data.Cards))
	for _, c := range data.Cards {
		card := &domain.Card{Front: c.Front, Back: c.Back}
		if err := cards.Create(ctx, card); err != nil {
			return fmt.Errorf("insert card %q: %w", c.Front, err)
		}
		cardIDs[c.Front] = card.ID
	}
	logger.Info("seeded cards", zap.Int("count", len(data.Cards)))

	deckIDs := make(map[string]string, len(data.Decks))
	for _, d := range data.Decks {
		ownerID, ok := userIDs[d.Owner]
		if !ok {
			return fmt.Errorf("deck %q references unknown owner %q", d.Name, d.Owner)
		}
		deck := &domain.Deck{
			Name:        d.Name,
			Description: d.Description,
			OwnerID:     ownerID,
		}
		if err := decks.Create(ctx, deck); err != nil {
			return fmt.Errorf("insert deck %q: %w", d.Name, err)
		}

		ids := make([]string, 0, len(d.Cards))
		for _, front := range d.Cards {
			cardID, ok := cardIDs[front]
			if !ok {
				return fmt.Errorf("deck %q references unknown card %q", d.Name, front)
			}
			ids = append(ids, cardID)
		}
		if err := decks.AttachCards(ctx, deck.ID, ids); err != nil {
			return fmt.Errorf("attach cards to deck %q: %w", d.Name, err)
		}
		deckIDs[d.Name] = deck.ID
	}
	logger.Info("seeded decks", zap.Int("count", len(data.Decks)))

	for _, r := range data.Requests {
		deckID, ok := deckIDs[r.Deck]
		if !ok {
			return fmt.Errorf("request references unknown deck %q", r.Deck)
		}
		userID, ok := userIDs[r.User]
		if !ok {
			return fmt.Errorf("request references unknown user %q", r.User)
		}
		status := domain.RequestStatusPending
		if r.Status != "" {
			parsed, err := domain.ParseRequestStatus(r.Status)
			if err != nil {
				return fmt.Errorf("request for deck %q: %w", r.Deck, err)
			}
			status = parsed
		}
		request := &domain.Request{DeckID: deckID, UserID: userID, Status: status}
		if err := requests.Create(ctx, request); err != nil {
			return fmt.Errorf("insert request for deck %q: %w", r.Deck, err)
		}
	}
	logger.Info("seeded requests", zap.Int("count", len(data.Requests)))
	return nil
}

func parseRole(raw string) (domain.UserRole, error) {
	switch raw {
	case "admin", "ADMIN":
		return domain.RoleAdmin, nil
	case "customer", "user", "CUSTOMER":
		return domain.RoleCustomer, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}
