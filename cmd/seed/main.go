// Command seed inserts a demo form with responses and prints an owner token
// that can be used against the API.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"kudoswall/internal/config"
	"kudoswall/internal/logger"
	"kudoswall/internal/model"
	"kudoswall/internal/repository"
	"kudoswall/internal/service"
)

var (
	ownerID    string
	ownerEmail string
	tokenTTL   time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert a demo form and responses",
	Long: `Insert a demo feedback form with a handful of responses into the
configured MongoDB database, then print an owner token for it.

MONGO_URI, MONGO_DATABASE and JWT_SECRET are read like the server does.`,
	RunE: runSeed,
}

func init() {
	rootCmd.Flags().StringVar(&ownerID, "owner", "owner_demo", "owner id to seed the form under")
	rootCmd.Flags().StringVar(&ownerEmail, "email", "", "owner email for new response notifications")
	rootCmd.Flags().DurationVar(&tokenTTL, "token-ttl", 24*time.Hour, "lifetime of the printed owner token")
}

func main() {
	defer logger.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var demoResponses = []struct {
	name, role string
	rating     int
	spam       bool
	answers    []string
	daysAgo    int
}{
	{"Ada Lovelace", "CTO, Analytical Co", 5, false, []string{"Setup took five minutes.", "The embed widget."}, 6},
	{"Grace Hopper", "Engineer", 4, false, []string{"Mostly smooth, docs could be longer.", "Analytics charts."}, 4},
	{"Alan Turing", "", 5, false, []string{"Clean and fast.", "Spam filtering."}, 2},
	{"Free Prizes", "", 1, true, []string{"Visit my site for cheap watches", "buy now"}, 1},
	{"Katherine Johnson", "Researcher", 3, false, []string{"Good, but I wanted CSV export.", "Insights."}, 0},
}

func runSeed(cmd *cobra.Command, _ []string) error {
	log := logger.GetLogger()
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.UsesMemoryStore() {
		return fmt.Errorf("seeding needs a MongoDB MONGO_URI, not %q", config.MemoryStore)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.Mongo.Database)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	forms := repository.NewFormRepo(db)
	responses := repository.NewResponseRepo(db)

	form := &model.Form{
		OwnerID:     ownerID,
		OwnerEmail:  ownerEmail,
		Title:       "Product feedback",
		Description: "Tell us how onboarding went.",
		Questions:   []string{"How was your onboarding?", "Which feature do you use most?"},
		Suggestions: []string{},
	}
	formID, err := forms.Create(ctx, form)
	if err != nil {
		return fmt.Errorf("create form: %w", err)
	}

	now := time.Now().UTC()
	for _, d := range demoResponses {
		_, err := responses.Create(ctx, &model.Response{
			FormID:        formID,
			ResponderName: d.name,
			ResponderRole: d.role,
			Questions:     form.Questions,
			Answers:       d.answers,
			Rating:        d.rating,
			Spam:          d.spam,
			CreatedAt:     now.AddDate(0, 0, -d.daysAgo),
		})
		if err != nil {
			return fmt.Errorf("create response: %w", err)
		}
	}

	token, err := service.NewAuthService(cfg.Server.JwtSecretKey).IssueOwnerToken(ownerID, ownerEmail, tokenTTL)
	if err != nil {
		return err
	}

	log.Infow("Seeded demo data", "formId", formID, "responses", len(demoResponses), "ownerId", ownerID)
	fmt.Fprintf(cmd.OutOrStdout(), "form:  %s\ntoken: %s\n", formID, token.Token)
	return nil
}
