package cacheaside

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name    string
		a, b    []Arg
		exclude []string
		same    bool
	}{
		{
			name: "порядок аргументов не важен",
			a:    []Arg{{Name: "start", Value: 1}, {Name: "end", Value: 2}},
			b:    []Arg{{Name: "end", Value: 2}, {Name: "start", Value: 1}},
			same: true,
		},
		{
			name:    "исключённый аргумент не влияет на ключ",
			a:       []Arg{{Name: "db", Value: "conn-1"}},
			b:       []Arg{{Name: "db", Value: "conn-2"}},
			exclude: []string{"db"},
			same:    true,
		},
		{
			name: "разные значения — разные ключи",
			a:    []Arg{{Name: "days", Value: 7}},
			b:    []Arg{{Name: "days", Value: 30}},
			same: false,
		},
		{
			name: "без аргументов ключ зависит только от имени",
			same: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka := Key("get_current_price", tt.a, tt.exclude)
			kb := Key("get_current_price", tt.b, tt.exclude)
			assert.True(t, strings.HasPrefix(ka, "cache:"))
			if tt.same {
				assert.Equal(t, ka, kb)
			} else {
				assert.NotEqual(t, ka, kb)
			}
		})
	}
}

func TestKey_DependsOnName(t *testing.T) {
	assert.NotEqual(t, Key("a", nil, nil), Key("b", nil, nil))
}

func TestOptionsKey_Prefix(t *testing.T) {
	opts := Options{Name: "get_current_price", KeyPrefix: "btc_price"}
	key := opts.Key(nil)
	assert.True(t, strings.HasPrefix(key, "btc_price:cache:"), key)

	assert.Equal(t, Key("get_current_price", nil, nil), Options{Name: "get_current_price"}.Key(nil))
}
