package pagination

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{name: "defaults", params: Params{}},
		{name: "explicit page", params: Params{Offset: 40, Limit: 20}},
		{name: "max limit", params: Params{Limit: MaxLimit}},
		{name: "negative offset", params: Params{Offset: -1}, wantErr: ErrInvalidOffset},
		{name: "negative limit", params: Params{Limit: -1}, wantErr: ErrInvalidLimit},
		{name: "limit over cap", params: Params{Limit: MaxLimit + 1}, wantErr: ErrInvalidLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRegisterBindsFlags(t *testing.T) {
	var p Params
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	p.Register(flags)

	require.NoError(t, flags.Parse([]string{
		"--offset", "20", "--limit", "10",
		"--filter", `status == "active"`, "--order", "created_at:desc",
	}))

	assert.Equal(t, 20, p.Offset)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, `status == "active"`, p.Filter)
	assert.Equal(t, "created_at:desc", p.Order)
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		name      string
		expr      string
		wantField string
		wantDesc  bool
		wantErr   error
	}{
		{name: "bare field ascends", expr: "username", wantField: "username"},
		{name: "explicit asc", expr: "username:asc", wantField: "username"},
		{name: "explicit desc", expr: "created_at:desc", wantField: "created_at", wantDesc: true},
		{name: "case insensitive direction", expr: "email:DESC", wantField: "email", wantDesc: true},
		{name: "empty", expr: "", wantErr: ErrEmptyOrder},
		{name: "blank field", expr: ":desc", wantErr: ErrEmptyOrder},
		{name: "bad direction", expr: "email:sideways", wantErr: ErrInvalidOrderDir},
		{name: "too many colons", expr: "a:b:c", wantErr: ErrInvalidOrderSpec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, desc, err := ParseOrder(tt.expr)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantDesc, desc)
		})
	}
}

func TestOrderExpression(t *testing.T) {
	t.Run("empty passes through", func(t *testing.T) {
		expr, err := Params{}.OrderExpression("username")
		require.NoError(t, err)
		assert.Empty(t, expr)
	})

	t.Run("descending gets manager prefix", func(t *testing.T) {
		expr, err := Params{Order: "created_at:desc"}.OrderExpression("username", "created_at")
		require.NoError(t, err)
		assert.Equal(t, "-created_at", expr)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		_, err := Params{Order: "shoe_size"}.OrderExpression("username", "created_at")
		assert.ErrorIs(t, err, ErrInvalidOrderField)
	})

	t.Run("no field whitelist accepts anything", func(t *testing.T) {
		expr, err := Params{Order: "anything"}.OrderExpression()
		require.NoError(t, err)
		assert.Equal(t, "anything", expr)
	})
}
