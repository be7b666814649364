package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"vibelink/database"
	"vibelink/internal/auth"
	"vibelink/internal/microservices/http-api/dto"
	"vibelink/internal/microservices/http-api/models"
	"vibelink/internal/microservices/http-api/server"
)

const (
	seedEmail    = "test@vibelink.com"
	seedUsername = "testuser"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a small demo catalog",
	Long: `Creates a demo user (test@vibelink.com), four creators, ten tags, four media items
with ratings and two links. Every write goes through the same services the API uses,
so activities and the search index are produced the normal way.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reset, _ := cmd.Flags().GetBool("reset")
		password, _ := cmd.Flags().GetString("password")

		ctx := cmd.Context()
		e, err := openEnv(ctx)
		if err != nil {
			return err
		}
		defer e.close()

		if err := database.Migrate(e.db, e.log); err != nil {
			return err
		}
		if reset {
			if err := resetCatalog(e.db); err != nil {
				return fmt.Errorf("reset failed: %w", err)
			}
			e.log.Info("existing data removed")
		}

		tokens := auth.NewTokenManager(e.cfg.JWTAccessSecret, e.cfg.JWTRefreshSecret, e.cfg.AccessTokenTTL, e.cfg.RefreshTokenTTL)
		summary, err := seedCatalog(ctx, server.NewServices(e.db, tokens, nil, e.log), password)
		if err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}

		e.log.Info("seed complete", "user", summary.UserID, "media", len(summary.MediaIDs))
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Seeded %d media items. Log in as %s / %s\n", len(summary.MediaIDs), seedEmail, password)
		return nil
	},
}

func init() {
	seedCmd.Flags().Bool("reset", false, "delete all existing rows before seeding")
	seedCmd.Flags().String("password", "password123", "password for the demo user")
	rootCmd.AddCommand(seedCmd)
}

// resetCatalog empties every table, children first.
func resetCatalog(db *gorm.DB) error {
	return db.Session(&gorm.Session{AllowGlobalUpdate: true}).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&models.Activity{},
			&models.Link{},
			&models.Rating{},
			&models.MediaItemTag{},
			&models.MediaItemCreator{},
			&models.MediaSearchIndex{},
			&models.MediaItem{},
			&models.Tag{},
			&models.Creator{},
			&models.RefreshToken{},
			&models.User{},
		} {
			if err := tx.Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

type seedSummary struct {
	UserID   string
	MediaIDs map[string]string // title -> id
}

func seedCatalog(ctx context.Context, svcs *server.Services, password string) (*seedSummary, error) {
	account, err := svcs.Auth.Register(ctx, dto.RegisterRequest{Email: seedEmail, Username: seedUsername, Password: password})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	userID := account.User.ID
	avatar := "https://i.pravatar.cc/150?u=" + seedUsername
	if _, err := svcs.User.UpdateMe(ctx, userID, dto.UpdateUserRequest{AvatarURL: &avatar}); err != nil {
		return nil, fmt.Errorf("set avatar: %w", err)
	}

	creators := map[string]string{}
	for _, c := range []dto.CreateCreatorRequest{
		{Name: "Brandon Sanderson", Bio: strPtr("American fantasy and science fiction writer")},
		{Name: "Christopher Nolan", Aliases: []string{"Chris Nolan"}, Bio: strPtr("British-American film director and screenwriter")},
		{Name: "Hayao Miyazaki", Aliases: []string{"Miyazaki Hayao", "宮崎駿"}, Bio: strPtr("Japanese animator, director, and co-founder of Studio Ghibli")},
		{Name: "Radiohead", Bio: strPtr("English rock band formed in 1985")},
	} {
		created, err := svcs.Creator.Create(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("create creator %q: %w", c.Name, err)
		}
		creators[c.Name] = created.ID
	}

	tags := map[string]string{}
	for _, t := range []struct {
		name string
		kind models.TagKind
	}{
		{"Fantasy", models.TagKindGenre},
		{"Sci-Fi", models.TagKindGenre},
		{"Drama", models.TagKindGenre},
		{"Dystopian", models.TagKindMood},
		{"Epic", models.TagKindMood},
		{"Atmospheric", models.TagKindMood},
		{"Magic System", models.TagKindTopic},
		{"Time", models.TagKindTopic},
		{"Identity", models.TagKindTopic},
		{"Cinematic", models.TagKindStyle},
	} {
		kind := t.kind
		created, err := svcs.Tag.Create(ctx, dto.CreateTagRequest{Name: t.name, Kind: &kind})
		if err != nil {
			return nil, fmt.Errorf("create tag %q: %w", t.name, err)
		}
		tags[t.name] = created.ID
	}

	tagIDs := func(names ...string) []string {
		ids := make([]string, 0, len(names))
		for _, n := range names {
			ids = append(ids, tags[n])
		}
		return ids
	}
	credit := func(name string, role models.CreatorRole) []dto.CreatorCreditInput {
		return []dto.CreatorCreditInput{{CreatorID: creators[name], Role: role}}
	}

	media := map[string]string{}
	for _, m := range []dto.CreateMediaRequest{
		{
			Type:        models.MediaTypeBook,
			Title:       "Mistborn: The Final Empire",
			Subtitle:    strPtr("Book One of Mistborn"),
			Description: strPtr("In a world where ash falls from the sky, and mist dominates the night, an unlikely hero rises to challenge an immortal emperor."),
			Year:        intPtr(2006),
			CoverURL:    strPtr("https://images-na.ssl-images-amazon.com/images/I/51qY5UDx1jL.jpg"),
			ExternalIDs: map[string]string{"goodreads": "68428", "isbn": "9780765311788"},
			Creators:    credit("Brandon Sanderson", models.CreatorRoleAuthor),
			TagIDs:      tagIDs("Fantasy", "Dystopian", "Epic", "Magic System"),
		},
		{
			Type:        models.MediaTypeMovie,
			Title:       "Inception",
			Description: strPtr("A thief who steals corporate secrets through dream-sharing technology is given the inverse task of planting an idea."),
			Year:        intPtr(2010),
			CoverURL:    strPtr("https://m.media-amazon.com/images/I/81p+xe8cbnL._SY679_.jpg"),
			ExternalIDs: map[string]string{"imdb": "tt1375666", "tmdb": "27205"},
			Creators:    credit("Christopher Nolan", models.CreatorRoleDirector),
			TagIDs:      tagIDs("Sci-Fi", "Atmospheric", "Time", "Cinematic"),
		},
		{
			Type:        models.MediaTypeMovie,
			Title:       "Spirited Away",
			Subtitle:    strPtr("千と千尋の神隠し"),
			Description: strPtr("A young girl becomes trapped in a mysterious spirit world and must find a way to free her parents and return home."),
			Year:        intPtr(2001),
			CoverURL:    strPtr("https://m.media-amazon.com/images/I/51JtXdEbAyL._SY679_.jpg"),
			ExternalIDs: map[string]string{"imdb": "tt0245429", "tmdb": "129"},
			Creators:    credit("Hayao Miyazaki", models.CreatorRoleDirector),
			TagIDs:      tagIDs("Fantasy", "Atmospheric", "Identity"),
		},
		{
			Type:        models.MediaTypeAlbum,
			Title:       "OK Computer",
			Description: strPtr("Radiohead's third studio album, exploring themes of modern alienation."),
			Year:        intPtr(1997),
			CoverURL:    strPtr("https://upload.wikimedia.org/wikipedia/en/b/ba/Radioheadokcomputer.png"),
			ExternalIDs: map[string]string{"spotify": "6dVIqQ8qmQ5GBnJ9shOYGE"},
			Creators:    credit("Radiohead", models.CreatorRoleMusician),
			TagIDs:      tagIDs("Dystopian", "Atmospheric"),
		},
	} {
		created, err := svcs.Media.Create(ctx, userID, m)
		if err != nil {
			return nil, fmt.Errorf("create media %q: %w", m.Title, err)
		}
		media[m.Title] = created.ID
	}

	for _, r := range []struct {
		title  string
		score  int
		review *string
	}{
		{"Mistborn: The Final Empire", 9, strPtr("Amazing magic system!")},
		{"Inception", 10, strPtr("Mind-bending masterpiece")},
		{"Spirited Away", 10, strPtr("Beautiful and imaginative")},
		{"OK Computer", 8, nil},
	} {
		score := r.score
		if _, err := svcs.Rating.Upsert(ctx, userID, media[r.title], dto.UpsertRatingRequest{Score: &score, ReviewText: r.review}); err != nil {
			return nil, fmt.Errorf("rate %q: %w", r.title, err)
		}
	}

	for _, l := range []struct {
		from, to string
		kind     models.LinkType
		strength float64
		note     string
	}{
		{"Mistborn: The Final Empire", "Spirited Away", models.LinkTypeVibe, 0.7, "Both feature imaginative worlds with unique magic/spiritual systems"},
		{"Inception", "OK Computer", models.LinkTypeTheme, 0.6, "Explore themes of reality, consciousness, and modern alienation"},
	} {
		strength, note := l.strength, l.note
		if _, err := svcs.Link.Create(ctx, userID, dto.CreateLinkRequest{
			FromMediaID: media[l.from],
			ToMediaID:   media[l.to],
			LinkType:    l.kind,
			Strength:    &strength,
			Note:        &note,
		}); err != nil {
			return nil, fmt.Errorf("link %q to %q: %w", l.from, l.to, err)
		}
	}

	return &seedSummary{UserID: userID, MediaIDs: media}, nil
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
