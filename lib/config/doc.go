// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the pong
// client.
//
// Configuration comes from at most one file, named by the --config
// flag (via [LoadFile]) or the PONG_CLI_CONFIG environment variable
// (via [Load]). There is no ~/.config discovery. Without a file the
// client runs on [Default], which targets a development server.
//
// The file may carry development and production sections that override
// base values when [Config].Environment matches. The environment also
// picks the port and scheme defaults: a development server listens on
// plain HTTP port 3000, a production deployment on HTTPS port 8443.
// The websocket endpoint is always wss.
//
// ${HOME} and ${VAR:-default} patterns are expanded in logging.file.
// No other environment variables override config values.
//
// Key exports:
//
//   - [Config] -- Server, Network, Input, Display and Logging sections
//   - [Default], [Load] and [LoadFile]
//   - [Config.SocketEndpoint] and [Config.APIBaseURL] -- the URLs the
//     transport and the authentication client connect to
//
// This package depends on no other packages of this module.
package config
