package bootstrap

import (
	"github.com/eleven-am/scribe-backend/internal/transcript"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideTranscriptStore(db *gorm.DB) *transcript.Store {
	return transcript.NewStore(db)
}

func RunMigrations(store *transcript.Store) error {
	return store.Migrate()
}

var StoresModule = fx.Options(
	fx.Provide(
		ProvideTranscriptStore,
	),
	fx.Invoke(RunMigrations),
)
