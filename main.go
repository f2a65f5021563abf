package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"wtfSpaces/auth"
	"wtfSpaces/crud"
	"wtfSpaces/http"
	"wtfSpaces/metrics"
)

// main is the app's entry point.
func main() {
	// Check if the flag "-prod" has been provided. It means that we're running in production.
	productionBool := flag.Bool("prod", false, "Provide this flag in production to ensure that a .config.json file is provided before the application starts.")
	flag.Parse()

	// Structured json logs on stdout.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// Load configuration from a .config.json file if present, otherwise use the default dev setup.
	config := LoadConfig(*productionBool)

	// Open a database connection and execute migrations.
	db := NewDB(config.Database.ConnectionInfo())
	err := Open(db, config.IsProd())
	must(err)
	defer Close(db)
	err = AutoMigrate(db)
	must(err)

	// Start the crud services.
	services, err := crud.NewServices(
		db.Gorm,
		crud.WithAccount(),
		crud.WithUser(),
		crud.WithSpace(),
		crud.WithFollowing(),
	)
	must(err)

	// Set up bearer token verification against the identity provider's
	// JWKS, unless auth is disabled for local development.
	var verifier http.SubjectVerifier
	if config.Auth.Disabled {
		if config.IsProd() {
			panic("auth must not be disabled in production")
		}
		slog.Warn("token verification is disabled, bearer tokens are taken as subjects")
		verifier = auth.PassthroughVerifier{}
	} else {
		tokenVerifier, err := auth.NewTokenVerifier(context.Background(), config.Auth.JwksUri, config.Auth.Issuer, config.Auth.Audience)
		must(err)
		defer tokenVerifier.Close()
		verifier = tokenVerifier
	}

	// Set up a webserver.
	collector := metrics.NewCollector()
	server := http.NewServer(
		config.IsProd(),
		config.CSRFAuthKey,
		verifier,
		collector,
		services.Account,
		services.User,
		services.Space,
		services.Following,
	)

	// Serve the app.
	must(server.Run(config.Port))
}

// must is a little helper for shortening the panic instruction.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
