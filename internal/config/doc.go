// Package config provides configuration loading, merging, and validation
// facilities for the catalog server and the offline-first client.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. Environment variables (a .env file in the working directory is loaded
//     first when present)
//  3. Command-line flags
//  4. JSON config file
//
// The main entry points are [GetServerConfig] for the server runtime and
// [GetClientConfig] for the client.
package config
