package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-c", "conf.json", "-x", "1"},
			allowed: []string{"-c"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=conf.json", "-a=:1"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.json"},
		},
		{
			name:    "flag without value followed by another flag",
			args:    []string{"-v", "-c", "x.json"},
			allowed: []string{"-v", "-c"},
			want:    []string{"-v", "-c", "x.json"},
		},
		{
			name:    "positional arguments dropped",
			args:    []string{"login", "-a", ":9000", "extra"},
			allowed: []string{"-a"},
			want:    []string{"-a", ":9000"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "b"},
			allowed: nil,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "a.json", ConfigPath([]string{"-c", "a.json"}))
	assert.Equal(t, "b.json", ConfigPath([]string{"-a", ":1", "-config", "b.json"}))
	assert.Equal(t, "c.json", ConfigPath([]string{"--config=c.json"}))
	assert.Equal(t, "", ConfigPath([]string{"-a", ":1"}))
	assert.Equal(t, "", ConfigPath(nil))
}
