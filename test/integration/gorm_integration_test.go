package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"faq-assistant-be/internal/entity"
	"faq-assistant-be/internal/repository/implementation"
	"faq-assistant-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormFaqRoundTrip(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}
	if err := database.Migrate(gormDB); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	faqRepo := implementation.NewFaqRepository(gormDB)
	embRepo := implementation.NewFaqEmbeddingRepository(gormDB)
	ctx := context.Background()

	entry := &entity.FaqEntry{
		Id:       uuid.New(),
		Type:     entity.FaqTypeScenario,
		Question: "intg: problème de connexion",
		Answer:   "Je vais vous aider.",
		Scenario: &entity.Scenario{
			Steps: []entity.ScenarioStep{
				{Question: "Fibre ou ADSL ?", Answers: []entity.ScenarioRule{{Pattern: ".*", Response: "Vérifiez votre box."}}},
			},
			ExitPhrases: []string{"annuler"},
		},
	}

	assert.NoError(t, faqRepo.Create(ctx, entry))
	defer func() {
		assert.NoError(t, faqRepo.Delete(ctx, entry.Id))
	}()

	t.Run("Scenario survives the JSONB round trip", func(t *testing.T) {
		got, err := faqRepo.FindOne(ctx, entry.Id)
		assert.NoError(t, err)
		if assert.NotNil(t, got) && assert.NotNil(t, got.Scenario) {
			assert.Equal(t, "Fibre ou ADSL ?", got.Scenario.Steps[0].Question)
			assert.Equal(t, []string{"annuler"}, got.Scenario.ExitPhrases)
		}
	})

	t.Run("Embeddings replace and read back in entry order", func(t *testing.T) {
		vec := make([]float32, 768)
		vec[0] = 1
		err := embRepo.ReplaceAll(ctx, []*entity.FaqEmbedding{
			{Id: uuid.New(), FaqEntryId: entry.Id, EmbeddingValue: vec},
		})
		assert.NoError(t, err)

		got, err := embRepo.FindAll(ctx)
		assert.NoError(t, err)
		if assert.Len(t, got, 1) {
			assert.Equal(t, entry.Id, got[0].FaqEntryId)
			assert.Len(t, got[0].EmbeddingValue, 768)
		}
	})
}
