// Package app wires settings, the store profile and the report services together for
// the web and CLI binaries.
package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/de-tools/cart-report/pkg/models/domain"
	"github.com/de-tools/cart-report/pkg/services/config"
	"github.com/de-tools/cart-report/pkg/services/i18n"
	"github.com/de-tools/cart-report/pkg/services/identity"
	"github.com/de-tools/cart-report/pkg/services/money"
	"github.com/de-tools/cart-report/pkg/services/report"
	"github.com/de-tools/cart-report/pkg/store/query"
	sqlstore "github.com/de-tools/cart-report/pkg/store/sql"
)

type App struct {
	Settings   config.Settings
	Profile    domain.StoreProfile
	DB         *sqlx.DB
	Report     report.Service
	Identities identity.Lookup
	Translator *i18n.Translator

	store sqlstore.Store
}

// Options override the settings file.
type Options struct {
	ConfigPath   string
	Profile      string
	ProfilesPath string
}

// Load reads settings and the selected connection profile, then opens the store.
func Load(ctx context.Context, opts Options) (*App, error) {
	settings, err := config.LoadSettings(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Profile != "" {
		settings.Store.Profile = opts.Profile
	}
	if opts.ProfilesPath != "" {
		settings.Store.ProfilesPath = opts.ProfilesPath
	}

	registry, err := config.NewRegistry(settings.Store.ProfilesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create config registry: %w", err)
	}

	profile, err := registry.GetProfile(ctx, settings.Store.Profile)
	if err != nil {
		return nil, err
	}

	return New(ctx, settings, profile)
}

func New(ctx context.Context, settings config.Settings, profile domain.StoreProfile) (*App, error) {
	logger := zerolog.Ctx(ctx)

	tables, err := query.NewTables(profile.TablePrefix)
	if err != nil {
		return nil, err
	}

	loc, err := settings.Location()
	if err != nil {
		return nil, err
	}

	db, err := sqlstore.Open(ctx, profile)
	if err != nil {
		return nil, err
	}

	store, err := sqlstore.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	translator := i18n.NewTranslator(settings.Report.Language)
	builder := query.NewBuilder(tables, loc)
	formatter := money.NewFormatter(translator.Tag())

	svc := report.NewService(store, builder, formatter, report.Settings{
		DefaultCurrency: settings.Report.DefaultCurrency,
		CartURL:         settings.Report.CartURL,
		ProfileURL:      settings.Report.ProfileURL,
		FreeLabel:       translator.T(i18n.Free),
	})

	logger.Info().
		Str("profile", profile.String()).
		Str("cart_table", tables.Cart).
		Str("timezone", loc.String()).
		Str("language", translator.Tag().String()).
		Msg("report store ready")

	return &App{
		Settings:   settings,
		Profile:    profile,
		DB:         db,
		Report:     svc,
		Identities: identity.NewLookup(store, builder, settings.Report.ProfileURL),
		Translator: translator,
		store:      store,
	}, nil
}

func (a *App) Close() error {
	return a.store.Close()
}
