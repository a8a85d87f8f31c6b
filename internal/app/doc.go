// Package app is the composition root for shopfront.
//
// # Overview
//
// Run wires configuration, logging, the catalog API client, the state store,
// the router and its pages, then hands control to the terminal UI. Render
// builds the same graph around a writer surface and prints each visited page,
// which is how the render subcommand works without a terminal.
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        TOML, .env, SHOPFRONT_* overrides
//	       ├─────> newLogger()          zap JSON logs to the log file
//	       ├─────> shopapi.NewClient()  catalog and auth HTTP client
//	       ├─────> state.New()          shared store
//	       ├─────> router.New()         pages registered on the route table
//	       ├─────> router.Start("/")    first render
//	       ├─────> StartPoller()        optional catalog refresh
//	       └─────> ui.Run()             blocks until quit
//
// # Catalog refresh
//
// When catalog_refresh is positive the poller re-fetches the catalog on that
// interval while the catalog page is on screen, and reloads the page if a
// price, discount or stock level changed. Failures back off exponentially up
// to 30 seconds and never stop the loop.
//
// # Errors
//
// Configuration, logger and client setup errors are returned from Run and
// Render. Everything after startup is logged and surfaced on the page that
// hit it.
package app
