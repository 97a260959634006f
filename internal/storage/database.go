package storage

import (
	"github.com/eracards/eraclash/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the sqlite database, keeps the schema updated
// via AutoMigrate and seeds the card catalog table. Card stats always
// come from the config file (the single source of truth); only names
// are persisted.
func OpenAndMigrate(dataSourceName string, cardsFromConfig []game.CardDefinition) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&game.CardDefinition{},
		&game.Match{},
		&game.Player{},
		&game.CardInstance{},
		&game.DeckCard{},
		&game.User{},
	)
	if err != nil {
		return nil, err
	}

	seedCatalog(db, cardsFromConfig)
	return db, nil
}

func seedCatalog(db *gorm.DB, cardsFromConfig []game.CardDefinition) {
	var count int64
	db.Model(&game.CardDefinition{}).Count(&count)
	if count > 0 {
		return
	}
	defs := make([]game.CardDefinition, 0, len(cardsFromConfig))
	for _, c := range cardsFromConfig {
		defs = append(defs, game.CardDefinition{Name: c.Name})
	}
	if len(defs) > 0 {
		db.Create(&defs)
	}
}
