// Package wire provides dependency injection for homeseed.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog/log"

	cliadapter "github.com/example/homeseed/internal/adapters/cli"
	"github.com/example/homeseed/internal/adapters/filesystem"
	"github.com/example/homeseed/internal/adapters/manifest"
	"github.com/example/homeseed/internal/adapters/sqlite"
	"github.com/example/homeseed/internal/adapters/xmldoc"
	"github.com/example/homeseed/internal/app"
	"github.com/example/homeseed/internal/config"
	"github.com/example/homeseed/internal/db"
	"github.com/example/homeseed/internal/logging"
	"github.com/example/homeseed/internal/ports/primary"
)

var (
	cfg             config.Config
	database        *sql.DB
	importService   primary.ImportService
	favoriteService primary.FavoriteService
	configOnce      sync.Once
	once            sync.Once
)

// Config returns the loaded configuration.
func Config() config.Config {
	configOnce.Do(loadConfig)
	return cfg
}

// ImportService returns the singleton ImportService instance.
func ImportService() primary.ImportService {
	once.Do(initServices)
	return importService
}

// FavoriteService returns the singleton FavoriteService instance.
func FavoriteService() primary.FavoriteService {
	once.Do(initServices)
	return favoriteService
}

// Close releases the database connection if one was opened.
func Close() error {
	if database == nil {
		return nil
	}
	return database.Close()
}

func loadConfig() {
	c, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	cfg = c
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	c := Config()

	var err error
	database, err = db.Open(c.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", c.Database.Path).Msg("failed to initialize database")
	}

	registry, err := manifest.Load(c.Registry.Manifest)
	if err != nil {
		log.Fatal().Err(err).Str("path", c.Registry.Manifest).Msg("failed to load component manifest")
	}

	// Create adapters (secondary ports) with injected DB
	favoriteRepo := sqlite.NewFavoriteRepository(database)
	widgetHost := sqlite.NewWidgetHost(database)
	logWriter := sqlite.NewLogWriterAdapter(database)
	locale := manifest.NewLocale(registry, c.Locale.Language, c.Folder.DefaultTitle)
	locator := filesystem.NewDocumentLocator(c.Layout.SearchPaths, c.Layout.FileName)

	builder := app.NewItemBuilder(registry, favoriteRepo, widgetHost, locale)
	walker := app.NewWalker(builder, favoriteRepo, logWriter, logging.GetLogger("walker"))

	// Create services (primary ports implementation)
	importService = app.NewImportService(walker, locator, xmldoc.Factory, logWriter, logWriter, logging.GetLogger("import"))
	favoriteService = app.NewFavoriteService(favoriteRepo)
}

// ImportAdapter returns a new ImportAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func ImportAdapter() *cliadapter.ImportAdapter {
	return ImportAdapterWithOutput(os.Stdout)
}

// ImportAdapterWithOutput returns a new ImportAdapter writing to the given output.
func ImportAdapterWithOutput(out io.Writer) *cliadapter.ImportAdapter {
	once.Do(initServices)
	return cliadapter.NewImportAdapter(importService, out)
}

// FavoriteAdapter returns a new FavoriteAdapter writing to stdout.
func FavoriteAdapter() *cliadapter.FavoriteAdapter {
	return FavoriteAdapterWithOutput(os.Stdout)
}

// FavoriteAdapterWithOutput returns a new FavoriteAdapter writing to the given output.
func FavoriteAdapterWithOutput(out io.Writer) *cliadapter.FavoriteAdapter {
	once.Do(initServices)
	return cliadapter.NewFavoriteAdapter(favoriteService, out)
}
