package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func typed(m map[string]any) Typed {
	return Typed{Lookup: func(key string) (any, bool) {
		v, ok := m[key]
		return v, ok
	}}
}

// ==================== Getter Tests ====================

func TestTyped_GetInt(t *testing.T) {
	tv := typed(map[string]any{
		"int":     500,
		"int64":   int64(750),
		"whole":   300.0,
		"frac":    0.75,
		"string":  " 250 ",
		"garbage": "soon",
		"bool":    true,
	})

	assert.Equal(t, 500, tv.GetInt("int"))
	assert.Equal(t, 750, tv.GetInt("int64"), "TOML integers decode as int64")
	assert.Equal(t, 300, tv.GetInt("whole"))
	assert.Equal(t, 0, tv.GetInt("frac"))
	assert.Equal(t, 250, tv.GetInt("string"))
	assert.Equal(t, 0, tv.GetInt("garbage"))
	assert.Equal(t, 0, tv.GetInt("bool"))
	assert.Equal(t, 0, tv.GetInt("missing"))
}

func TestTyped_GetFloat(t *testing.T) {
	tv := typed(map[string]any{
		"float":  0.65,
		"int64":  int64(2),
		"string": "0.8",
		"bool":   false,
	})

	assert.InDelta(t, 0.65, tv.GetFloat("float"), 1e-9)
	assert.InDelta(t, 2.0, tv.GetFloat("int64"), 1e-9)
	assert.InDelta(t, 0.8, tv.GetFloat("string"), 1e-9)
	assert.Zero(t, tv.GetFloat("bool"))
	assert.Zero(t, tv.GetFloat("missing"))
}

func TestTyped_GetBool(t *testing.T) {
	tv := typed(map[string]any{
		"bool":   true,
		"string": "true",
		"no":     "nope",
		"int":    1,
	})

	assert.True(t, tv.GetBool("bool"))
	assert.True(t, tv.GetBool("string"))
	assert.False(t, tv.GetBool("no"))
	assert.False(t, tv.GetBool("int"))
	assert.False(t, tv.GetBool("missing"))
}

func TestTyped_GetString(t *testing.T) {
	tv := typed(map[string]any{"provider": "ollama", "port": 11434})

	assert.Equal(t, "ollama", tv.GetString("provider"))
	assert.Empty(t, tv.GetString("port"))
	assert.Empty(t, tv.GetString("missing"))
}

func TestTyped_GetStringSlice(t *testing.T) {
	src := []string{"style", "grammar"}
	tv := typed(map[string]any{
		"strings": src,
		"decoded": []any{"style", 3, "goals"},
		"csv":     "style, grammar,,goals",
		"number":  4,
	})

	got := tv.GetStringSlice("strings")
	assert.Equal(t, []string{"style", "grammar"}, got)
	got[0] = "changed"
	assert.Equal(t, "style", src[0], "returned slice is a copy")

	assert.Equal(t, []string{"style", "goals"}, tv.GetStringSlice("decoded"))
	assert.Equal(t, []string{"style", "grammar", "goals"}, tv.GetStringSlice("csv"))
	assert.Nil(t, tv.GetStringSlice("number"))
	assert.Nil(t, tv.GetStringSlice("missing"))
}
