// SPDX-License-Identifier: MPL-2.0

// Package postgres dumps and restores the project's PostgreSQL database with the
// standard client tools (pg_dump, psql, gzip and gunzip).
package postgres
