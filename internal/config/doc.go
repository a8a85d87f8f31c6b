// Package config loads shopfront's startup configuration.
//
// # Sources
//
// Values are layered, later sources winning:
//
//  1. Built-in defaults (Default)
//  2. ~/.config/shopfront/config.toml, or the path given with --config
//  3. A .env file in the working directory, loaded into the environment
//  4. SHOPFRONT_* environment variables
//
// A missing config file is not an error. Malformed TOML, unparsable durations
// and non-positive limits or timeouts are.
//
// # File Format
//
//	api_url = "https://dummyjson.com"
//	request_timeout = "5s"       # per HTTP request
//	render_timeout = "10s"       # per page render, including all its fetches
//	catalog_limit = 30           # products fetched by the catalog page
//	clear_cart_on_logout = true  # session-scoped cart
//	simulated_delay = "1s"       # latency of the mock checkout/contact/register forms
//	catalog_refresh = "0s"       # background catalog refresh; 0 disables
//	log_file = "~/.local/state/shopfront/shopfront.log"
//
// # Environment
//
//	SHOPFRONT_API_URL             SHOPFRONT_CATALOG_LIMIT
//	SHOPFRONT_REQUEST_TIMEOUT     SHOPFRONT_CLEAR_CART_ON_LOGOUT
//	SHOPFRONT_RENDER_TIMEOUT      SHOPFRONT_SIMULATED_DELAY
//	SHOPFRONT_CATALOG_REFRESH     SHOPFRONT_LOG_FILE
//
// Durations use Go syntax ("750ms", "2s", "1m").
package config
