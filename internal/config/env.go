// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TEACTL_DATABASE_HOST.
const EnvPrefix = "TEACTL"

// EnvVar returns the environment variable that overrides field f.
func EnvVar(f Field) string {
	return EnvPrefix + "_" + strings.ToUpper(f.Section) + "_" + strings.ToUpper(f.Option)
}

// ApplyEnv overrides fields from TEACTL_<SECTION>_<OPTION> environment variables.
// Values go through SetOverride: they are coerced and validated like file values
// but never saved.
func ApplyEnv(s *Store) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, f := range s.Fields() {
		key := f.Section + "." + f.Option
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind %s: %w", EnvVar(f), err)
		}
		if !v.IsSet(key) {
			continue
		}
		if err := s.SetOverride(f.Name, v.GetString(key)); err != nil {
			return fmt.Errorf("%s: %w", EnvVar(f), err)
		}
		slog.Debug("configuration overridden from environment", "field", f.Name, "env", EnvVar(f))
	}
	return nil
}
