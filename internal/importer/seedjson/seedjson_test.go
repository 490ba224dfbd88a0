package seedjson_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/salesdash/internal/importer/seedjson"
	"github.com/MrJamesThe3rd/salesdash/internal/transaction"
)

func TestParser_Parse(t *testing.T) {
	type args struct {
		payload string
	}

	type testCase struct {
		name    string
		args    args
		wantLen int
		verify  func(t *testing.T, params []transaction.CreateParams)
		wantErr bool
	}

	tests := []testCase{
		{
			name: "SeedShape",
			args: args{
				payload: `[
					{
						"id": 1,
						"title": "Fjallraven  - Foldsack No. 1 Backpack, Fits 15 Laptops",
						"price": 329.85,
						"description": "Your perfect pack for everyday use and walks in the forest.",
						"category": "men's clothing",
						"image": "https://fakestoreapi.com/img/81fPKd-2AYL._AC_SL1500_.jpg",
						"sold": false,
						"dateOfSale": "2021-11-27T20:29:54+05:30"
					},
					{
						"id": 2,
						"title": "Mens Casual Premium Slim Fit T-Shirts ",
						"price": 44.6,
						"description": "Slim-fitting style.",
						"category": "men's clothing",
						"image": "https://fakestoreapi.com/img/71-3HjGNDUL._AC_SY879._SX._UX._SY._UY_.jpg",
						"sold": true,
						"dateOfSale": "2021-10-27"
					}
				]`,
			},
			wantLen: 2,
			verify: func(t *testing.T, params []transaction.CreateParams) {
				assert.Equal(t, int64(1), params[0].ID)
				assert.Equal(t, 329.85, params[0].Price)
				assert.Equal(t, "men's clothing", params[0].Category)
				assert.False(t, params[0].Sold)
				assert.True(t, params[0].DateOfSale.Equal(time.Date(2021, 11, 27, 14, 59, 54, 0, time.UTC)))

				assert.True(t, params[1].Sold)
				assert.True(t, params[1].DateOfSale.Equal(time.Date(2021, 10, 27, 0, 0, 0, 0, time.UTC)))
			},
		},
		{
			name:    "EmptyArray",
			args:    args{payload: `[]`},
			wantLen: 0,
		},
		{
			name:    "NotAnArray",
			args:    args{payload: `{"id": 1}`},
			wantErr: true,
		},
		{
			name:    "BadDate",
			args:    args{payload: `[{"id": 7, "dateOfSale": "yesterday"}]`},
			wantErr: true,
		},
		{
			name:    "Truncated",
			args:    args{payload: `[{"id": 7,`},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := seedjson.New().Parse(strings.NewReader(tt.args.payload))

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)

			if tt.verify != nil {
				tt.verify(t, got)
			}
		})
	}
}
