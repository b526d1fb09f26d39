package execution

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContext_SetGet(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value interface{}
	}{
		{name: "string", key: "name", value: "rule"},
		{name: "int", key: "count", value: 5},
		{name: "nil", key: "empty", value: nil},
		{name: "map", key: "meta", value: map[string]interface{}{"y": 1}},
		{name: "slice", key: "items", value: []interface{}{"a", 1}},
		{name: "empty key", key: "", value: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := NewContext(nil)
			ctx.Set(tc.key, tc.value)
			actual, err := ctx.Get(tc.key)
			assert.Nil(t, err)
			assert.EqualValues(t, tc.value, actual)
		})
	}
}

func TestContext_SetOverwrites(t *testing.T) {
	ctx := NewContext(nil)
	ctx.Set("k", 1)
	ctx.Set("k", "two")
	actual, err := ctx.Get("k")
	assert.Nil(t, err)
	assert.Equal(t, "two", actual)
	assert.Equal(t, []string{"k"}, ctx.Keys())
	assert.Equal(t, 1, ctx.Len())
}

func TestContext_GetMissing(t *testing.T) {
	testCases := []struct {
		name        string
		initial     map[string]interface{}
		set         []string
		key         string
		expectKeys  []string
		expectError string
	}{
		{
			name:        "empty context",
			key:         "missing",
			expectKeys:  []string{},
			expectError: `the data "missing" missed in context. Possible keys are "".`,
		},
		{
			name:        "seeded keys are sorted",
			initial:     map[string]interface{}{"b": 2, "a": 1},
			key:         "c",
			expectKeys:  []string{"a", "b"},
			expectError: `the data "c" missed in context. Possible keys are "a", "b".`,
		},
		{
			name:        "set keys keep insertion order",
			initial:     map[string]interface{}{"x": 0},
			set:         []string{"z", "y"},
			key:         "w",
			expectKeys:  []string{"x", "z", "y"},
			expectError: `the data "w" missed in context. Possible keys are "x", "z", "y".`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := NewContext(tc.initial)
			for _, k := range tc.set {
				ctx.Set(k, k)
			}
			actual, err := ctx.Get(tc.key)
			assert.Nil(t, actual)
			assert.True(t, errors.Is(err, ErrMissingKey))
			var missing *MissingKeyError
			if assert.True(t, errors.As(err, &missing)) {
				assert.Equal(t, tc.key, missing.Key)
				assert.ElementsMatch(t, tc.expectKeys, missing.Keys)
			}
			assert.EqualError(t, err, tc.expectError)
		})
	}
}

func TestContext_InitialIsCopied(t *testing.T) {
	initial := map[string]interface{}{"a": 1}
	ctx := NewContext(initial)
	ctx.Set("b", 2)
	initial["c"] = 3

	assert.False(t, ctx.Has("c"))
	_, ok := initial["b"]
	assert.False(t, ok)
	assert.Equal(t, map[string]interface{}{"a": 1, "b": 2}, ctx.Values())
}

func TestContext_Scenario(t *testing.T) {
	ctx := NewContext(map[string]interface{}{"items": []interface{}{}})
	assert.Nil(t, ctx.Add("items", nil, "a"))
	assert.Nil(t, ctx.Add("items", nil, "b"))
	actual, err := ctx.Get("items")
	assert.Nil(t, err)
	assert.Equal(t, []interface{}{"a", "b"}, actual)
}

func TestContext_TypedGetters(t *testing.T) {
	ctx := NewContext(map[string]interface{}{"s": "v", "i": 3, "b": true})

	s, err := ctx.GetString("s")
	assert.Nil(t, err)
	assert.Equal(t, "v", s)

	i, err := ctx.GetInt("i")
	assert.Nil(t, err)
	assert.Equal(t, 3, i)

	b, err := ctx.GetBool("b")
	assert.Nil(t, err)
	assert.True(t, b)

	_, err = ctx.GetInt("s")
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	_, err = ctx.GetString("none")
	assert.True(t, errors.Is(err, ErrMissingKey))
}

func TestContext_Listeners(t *testing.T) {
	var changes []Change
	listener := func(c *Context, change *Change) {
		changes = append(changes, *change)
	}
	ctx := NewContext(map[string]interface{}{"empty": nil}, WithID("ctx-1"), WithStateListeners(listener, nil))
	assert.Equal(t, "ctx-1", ctx.ID)

	ctx.Set("k", 1)
	ctx.Set("empty", "filled")
	ctx.Set("list", []interface{}{})
	assert.Nil(t, ctx.Append("list", "a"))
	assert.NotNil(t, ctx.Append("k", "a"))

	assert.Equal(t, []Change{
		{Key: "k", Old: nil, New: 1, Existed: false},
		{Key: "empty", Old: nil, New: "filled", Existed: true},
		{Key: "list", Old: nil, New: []interface{}{}, Existed: false},
		{Key: "list", Old: []interface{}{}, New: []interface{}{"a"}, Existed: true},
	}, changes)
}
