package config

import (
	"errors"
	"math"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/phyten/todomark/internal/keyword"
)

// EnvPrefix starts every environment variable the tool reads.
const EnvPrefix = "TODOMARK_"

func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var cfg Config
	var errs []error

	setString := func(target **string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		value := raw
		*target = &value
	}
	setList := func(target **[]string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		list := SplitMulti([]string{raw})
		if len(list) == 0 {
			empty := make([]string, 0)
			*target = &empty
			return
		}
		copyVals := make([]string, len(list))
		copy(copyVals, list)
		*target = &copyVals
	}
	setBool := func(target **bool, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := ParseBool(raw, key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}
	setInt := func(target **int, key string, min, max int) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := ParseIntInRange(raw, key, min, max)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}

	if raw := strings.TrimSpace(getenv(EnvPrefix + "KEYWORDS")); raw != "" {
		entries, err := keyword.ParseEntries(SplitMulti([]string{raw}))
		if err != nil {
			errs = append(errs, err)
		} else {
			cfg.Match.Keywords = &entries
		}
	}
	// not trimmed: " " is a meaningful punctuation set
	if raw, ok := lookup(getenv, EnvPrefix+"PUNCTUATION"); ok {
		value := raw
		cfg.Match.Punctuation = &value
	}
	setBool(&cfg.Match.RequirePunctuation, EnvPrefix+"REQUIRE_PUNCTUATION")
	setList(&cfg.Match.TextKinds, EnvPrefix+"TEXT_KINDS")
	if raw := strings.TrimSpace(getenv(EnvPrefix + "MATCH_TIMEOUT")); raw != "" {
		d, err := ParseDuration(raw, EnvPrefix+"MATCH_TIMEOUT")
		if err != nil {
			errs = append(errs, err)
		} else {
			cfg.Match.MatchTimeout = &d
		}
	}

	setList(&cfg.Scan.Paths, EnvPrefix+"PATH")
	setList(&cfg.Scan.Excludes, EnvPrefix+"EXCLUDE")
	setList(&cfg.Scan.Langs, EnvPrefix+"LANGS")
	// large values are accepted here so NormalizeScan reports the bound
	setInt(&cfg.Scan.Jobs, EnvPrefix+"JOBS", 0, math.MaxInt)
	setInt(&cfg.Scan.MaxFileBytes, EnvPrefix+"MAX_FILE_BYTES", 0, math.MaxInt)
	setString(&cfg.Scan.Oracle, EnvPrefix+"ORACLE")
	setBool(&cfg.Scan.Raw, EnvPrefix+"RAW")
	setBool(&cfg.Scan.NoPrefilter, EnvPrefix+"NO_PREFILTER")
	setBool(&cfg.Scan.Git, EnvPrefix+"GIT")

	setString(&cfg.UI.Output, EnvPrefix+"OUTPUT")
	setString(&cfg.UI.Color, EnvPrefix+"COLOR")
	setString(&cfg.UI.Fields, EnvPrefix+"FIELDS")
	setString(&cfg.UI.Sort, EnvPrefix+"SORT")
	if raw := strings.TrimSpace(getenv(EnvPrefix + "MIN_CONTRAST")); raw != "" {
		f, err := parseFloat(raw, EnvPrefix+"MIN_CONTRAST")
		if err != nil {
			errs = append(errs, err)
		} else {
			cfg.UI.MinContrast = &f
		}
	}

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}

func lookup(getenv func(string) string, key string) (string, bool) {
	v := getenv(key)
	return v, v != ""
}

// WithDotenv layers the variables of a .env file under getenv. Process
// variables win; a missing file leaves getenv unchanged.
func WithDotenv(path string, getenv func(string) string) (func(string) string, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if strings.TrimSpace(path) == "" {
		return getenv, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return getenv, nil
		}
		return getenv, err
	}
	return func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return values[key]
	}, nil
}
