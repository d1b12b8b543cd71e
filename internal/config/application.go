// SPDX-License-Identifier: MPL-2.0

package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
)

const (
	// ApplicationName is the registry name of the application configuration.
	ApplicationName = "application"

	// FieldFormat selects the output format ("json" or "text").
	FieldFormat = "format"
	// FieldVerbose enables debug logging.
	FieldVerbose = "verbose"
	// FieldSecretKey is the web application's secret key.
	FieldSecretKey = "secret_key"
	// FieldManage is the command line that runs the management entrypoint.
	FieldManage = "manage"
	// FieldSettings is the settings module passed to management commands.
	FieldSettings = "settings"
	// FieldDBHost is the PostgreSQL host.
	FieldDBHost = "db_host"
	// FieldDBPort is the PostgreSQL port.
	FieldDBPort = "db_port"
	// FieldDBUser is the PostgreSQL user.
	FieldDBUser = "db_user"
	// FieldDBName is the PostgreSQL database name.
	FieldDBName = "db_name"
	// FieldDBPassword is the PostgreSQL password.
	FieldDBPassword = "db_password"
	// FieldDBTimeout bounds each database tool invocation, in seconds. Zero disables it.
	FieldDBTimeout = "db_timeout"
	// FieldBackupDir is the default output directory for database dumps.
	FieldBackupDir = "backup_dir"

	// SecretKeyLength is the length of a generated secret key.
	SecretKeyLength = 50
	// SecretKeyAllowedChars are the characters a generated secret key is drawn from.
	SecretKeyAllowedChars = "abcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*(-_=+)"
)

var (
	// ConsoleFields are the fields shared by every teactl configuration.
	ConsoleFields = Fields{
		{Name: FieldFormat, FieldSpec: FieldSpec{Section: "console", Option: "format", Type: TypeString, Constraint: `"json" | "text"`}},
		{Name: FieldVerbose, FieldSpec: FieldSpec{Section: "console", Option: "verbose", Type: TypeBoolean}},
	}

	// ApplicationFields extends ConsoleFields with the project and database settings.
	ApplicationFields = ConsoleFields.Merge(Fields{
		{Name: FieldSecretKey, FieldSpec: FieldSpec{Section: "django", Option: "secret_key", Type: TypeString, Decode: DecodeBase64, Encode: EncodeBase64}},
		{Name: FieldManage, FieldSpec: FieldSpec{Section: "project", Option: "manage", Type: TypeString}},
		{Name: FieldSettings, FieldSpec: FieldSpec{Section: "project", Option: "settings", Type: TypeString}},
		{Name: FieldDBHost, FieldSpec: FieldSpec{Section: "database", Option: "host", Type: TypeString}},
		{Name: FieldDBPort, FieldSpec: FieldSpec{Section: "database", Option: "port", Type: TypeInteger, Constraint: `>0 & <=65535`}},
		{Name: FieldDBUser, FieldSpec: FieldSpec{Section: "database", Option: "user", Type: TypeString}},
		{Name: FieldDBName, FieldSpec: FieldSpec{Section: "database", Option: "name", Type: TypeString}},
		{Name: FieldDBPassword, FieldSpec: FieldSpec{Section: "database", Option: "password", Type: TypeString}},
		{Name: FieldDBTimeout, FieldSpec: FieldSpec{Section: "database", Option: "timeout", Type: TypeFloat, Constraint: `>=0`}},
		{Name: FieldBackupDir, FieldSpec: FieldSpec{Section: "database", Option: "backup_dir", Type: TypeString}},
	})
)

// NewApplication creates the application configuration persisted at path, with
// defaults applied and a freshly generated secret key.
func NewApplication(path string) (*Store, error) {
	secret, err := GenerateSecretKey()
	if err != nil {
		return nil, err
	}

	return NewStore(ApplicationName, path, ApplicationFields, map[string]any{
		FieldFormat:     "text",
		FieldSecretKey:  secret,
		FieldManage:     "python manage.py",
		FieldDBHost:     "localhost",
		FieldDBPort:     5432,
		FieldDBUser:     "postgres",
		FieldDBName:     "postgres",
		FieldBackupDir:  "backups",
		FieldDBTimeout:  0.0,
		FieldDBPassword: "",
	}), nil
}

// GenerateSecretKey returns SecretKeyLength characters drawn uniformly from
// SecretKeyAllowedChars using a cryptographic source.
func GenerateSecretKey() (string, error) {
	limit := big.NewInt(int64(len(SecretKeyAllowedChars)))
	key := make([]byte, SecretKeyLength)
	for i := range key {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate secret key: %w", err)
		}
		key[i] = SecretKeyAllowedChars[n.Int64()]
	}
	return string(key), nil
}

// EncodeBase64 stores a string field base64-encoded.
func EncodeBase64(v any) string {
	s, _ := v.(string)
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// DecodeBase64 reverses EncodeBase64.
func DecodeBase64(v any) (any, error) {
	s, _ := v.(string)
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("not valid base64: %w", err)
	}
	return string(decoded), nil
}
