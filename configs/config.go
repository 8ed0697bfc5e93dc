package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"

	"hava-checkout/internal/pkg/helper"
)

// GetEnv loads .env (if present) and fills Config from the environment.
// Keys missing from the environment take their envDefault value; keys
// without a default are required.
func GetEnv() (*Config, error) {
	_ = helper.LoadDotEnv(".env", "../../.env")

	config := &Config{}
	if err := fill(config, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func fill(config *Config, lookup func(string) (string, bool)) error {
	v := reflect.ValueOf(config).Elem()
	t := v.Type()

	for i := range make([]struct{}, v.NumField()) {
		field := t.Field(i)
		envTag := field.Tag.Get("env")
		if envTag == "" {
			continue
		}

		value, exists := lookup(envTag)
		if !exists {
			def, hasDefault := field.Tag.Lookup("envDefault")
			if !hasDefault {
				return fmt.Errorf("environment variable %s not set", envTag)
			}
			value = def
		}

		switch field.Type.Kind() {
		case reflect.String:
			v.Field(i).SetString(value)
		case reflect.Int:
			intValue, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %v", envTag, err)
			}
			v.Field(i).SetInt(int64(intValue))
		case reflect.Bool:
			boolValue, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean value for %s: %v", envTag, err)
			}
			v.Field(i).SetBool(boolValue)
		default:
			return fmt.Errorf("unsupported type %s for %s", field.Type.Kind(), envTag)
		}
	}

	return nil
}
