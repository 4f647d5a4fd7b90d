package config

import (
	"strings"
	"testing"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		kind    int
		value   string
		want    interface{}
		wantErr bool
	}{
		{configKindBool, "yes", true, false},
		{configKindBool, "OFF", false, false},
		{configKindBool, "maybe", nil, true},
		{configKindInt, "8", 8, false},
		{configKindInt, "eight", nil, true},
		{configKindFloat, "2.5", 2.5, false},
		{configKindString, "1.3.1", "1.3.1", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := parseValue(tt.kind, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseValue() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("parseValue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeysAreLowercase(t *testing.T) {
	for key, entry := range config {
		if key != strings.ToLower(entry.key) {
			t.Errorf("key %s does not match viper key %s", key, entry.key)
		}
	}
}

