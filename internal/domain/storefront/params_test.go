package storefront

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActionParams(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    ActionParams
		wantErr bool
	}{
		{
			name: "well formed",
			raw:  "arisku=ABC123&ariqty=2",
			want: ActionParams{SKU: "ABC123", Quantity: 2},
		},
		{
			name: "order does not matter",
			raw:  "ariqty=7&arisku=XYZ",
			want: ActionParams{SKU: "XYZ", Quantity: 7},
		},
		{
			name: "extra keys are ignored",
			raw:  "foo=bar&arisku=SKU1&ariqty=3&baz",
			want: ActionParams{SKU: "SKU1", Quantity: 3},
		},
		{
			name: "duplicate keys last wins",
			raw:  "arisku=FIRST&ariqty=1&arisku=SECOND&ariqty=4",
			want: ActionParams{SKU: "SECOND", Quantity: 4},
		},
		{
			name: "escaped values are decoded",
			raw:  "arisku=AB%2F12+X&ariqty=1",
			want: ActionParams{SKU: "AB/12 X", Quantity: 1},
		},
		{
			name: "trailing separator",
			raw:  "arisku=ABC&ariqty=5&",
			want: ActionParams{SKU: "ABC", Quantity: 5},
		},
		{name: "empty input", raw: "", wantErr: true},
		{name: "blank input", raw: "   ", wantErr: true},
		{name: "missing sku", raw: "ariqty=2", wantErr: true},
		{name: "missing quantity", raw: "arisku=ABC", wantErr: true},
		{name: "non numeric quantity", raw: "arisku=ABC&ariqty=two", wantErr: true},
		{name: "fractional quantity", raw: "arisku=ABC&ariqty=1.5", wantErr: true},
		{name: "zero quantity", raw: "arisku=ABC&ariqty=0", wantErr: true},
		{name: "negative quantity", raw: "arisku=ABC&ariqty=-3", wantErr: true},
		{name: "empty sku", raw: "arisku=&ariqty=1", wantErr: true},
		{name: "key without value", raw: "arisku&ariqty=1", wantErr: true},
		{name: "bad escape", raw: "arisku=%zz&ariqty=1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseActionParams(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrParse)
				assert.Equal(t, "Couldn't parse ARI parameters", err.Error())

				var parseErr *ParseError
				require.True(t, errors.As(err, &parseErr))
				assert.Equal(t, tt.raw, parseErr.Input)
				assert.NotEmpty(t, parseErr.Reason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestActionParams_Encode(t *testing.T) {
	params := ActionParams{SKU: "AB/12 X", Quantity: 3}

	parsed, err := ParseActionParams(params.Encode())
	require.NoError(t, err)
	assert.Equal(t, params, parsed)
}
