package config

import (
	"reflect"
	"strings"
)

// GetSettingsExample uses reflection to generate an example settings.json.
// It stays in sync when new fields are added to Settings.
func GetSettingsExample() map[string]any {
	t := reflect.TypeOf(Settings{})
	example := make(map[string]any, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == "" || jsonTag == "-" {
			continue
		}
		jsonName := strings.Split(jsonTag, ",")[0]
		example[jsonName] = exampleValue(field.Type, jsonName)
	}
	return example
}

// exampleValue creates an example value based on type and field name
func exampleValue(t reflect.Type, fieldName string) any {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Bool:
		return fieldName == "debug"
	case reflect.Int, reflect.Uint:
		switch fieldName {
		case "cli_user_id":
			return 1
		case "max_log_files":
			return DefaultMaxLogFiles
		case "nonce_ttl_minutes":
			return int(DefaultNonceTTL.Minutes())
		}
		return 10
	case reflect.String:
		switch fieldName {
		case "authorized_keys":
			return "~/.ssh/authorized_keys"
		case "db_path":
			return "~/.sitenotes/sitenotes.db"
		case "driver":
			return DefaultDriver
		case "listen_addr":
			return DefaultListenAddr
		case "log_file":
			return "~/.sitenotes/sitenotes.log"
		case "screenshots_base_url":
			return "https://notes.example.com/screenshots"
		case "screenshots_dir":
			return "~/.sitenotes/agwp-sn-screenshots"
		case "ssh_addr":
			return DefaultSSHAddr
		case "table_prefix":
			return DefaultTablePrefix
		}
		return "example"
	case reflect.Slice:
		if t.Elem().Kind() == reflect.String {
			return []string{"https://www.example.com"}
		}
		if t.Elem().Name() == "UserConfig" {
			return []map[string]any{
				{"id": 1, "name": "admin", "roles": []string{"administrator"}, "token": "change-me"},
			}
		}
	}
	return nil
}
