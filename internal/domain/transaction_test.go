package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEffect(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		txType    TransactionType
		amount    string
		want      string
		wantError error
	}{
		{
			name:   "InIsPositive",
			txType: TypeIn,
			amount: "2000",
			want:   "2000",
		},
		{
			name:   "OutIsNegative",
			txType: TypeOut,
			amount: "500",
			want:   "-500",
		},
		{
			name:   "FractionalAmount",
			txType: TypeOut,
			amount: "10.55",
			want:   "-10.55",
		},
		{
			name:   "ZeroAmount",
			txType: TypeIn,
			amount: "0",
			want:   "0",
		},
		{
			name:      "InvalidType",
			txType:    TransactionType(5),
			amount:    "500",
			wantError: ErrInvalidTransactionType,
		},
		{
			name:      "MalformedAmount",
			txType:    TypeIn,
			amount:    "abc",
			wantError: ErrInvalidAmount,
		},
		{
			name:      "NegativeAmount",
			txType:    TypeIn,
			amount:    "-500",
			wantError: ErrNegativeAmount,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := Effect(tc.txType, tc.amount)

			if tc.wantError != nil {
				require.ErrorIs(t, err, tc.wantError)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.want, got.String())
		})
	}
}

func TestFormatTransactionName(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		txType    TransactionType
		raw       string
		want      string
		wantError error
	}{
		{
			name:   "Out",
			txType: TypeOut,
			raw:    "rent",
			want:   "T0-RENT",
		},
		{
			name:   "In",
			txType: TypeIn,
			raw:    "salary",
			want:   "T1-SALARY",
		},
		{
			name:   "AlreadyUpper",
			txType: TypeIn,
			raw:    "BONUS",
			want:   "T1-BONUS",
		},
		{
			name:   "Empty",
			txType: TypeOut,
			raw:    "",
			want:   "T0-",
		},
		{
			name:      "InvalidType",
			txType:    TransactionType(2),
			raw:       "rent",
			wantError: ErrInvalidTransactionType,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := FormatTransactionName(tc.txType, tc.raw)

			if tc.wantError != nil {
				require.ErrorIs(t, err, tc.wantError)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestTransactionTypeValid(t *testing.T) {
	t.Parallel()

	require.True(t, TypeOut.Valid())
	require.True(t, TypeIn.Valid())
	require.False(t, TransactionType(-1).Valid())
	require.False(t, TransactionType(2).Valid())
}
