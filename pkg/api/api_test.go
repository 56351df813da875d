package api

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/emptypb"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		msg     any
		wantErr string
	}{
		{
			name: "valid expense",
			msg: &CreateExpenseRequest{
				GroupID: "g1", Amount: 90, PayerID: "alice", ParticipantIDs: []string{"alice", "bob"},
			},
		},
		{
			name:    "missing group",
			msg:     &CreateExpenseRequest{Amount: 90, PayerID: "alice", ParticipantIDs: []string{"alice"}},
			wantErr: "group_id is required",
		},
		{
			name:    "non-positive amount",
			msg:     &CreateExpenseRequest{GroupID: "g1", Amount: 0, PayerID: "alice", ParticipantIDs: []string{"alice"}},
			wantErr: "amount must be greater than 0",
		},
		{
			name:    "infinite amount",
			msg:     &CreateExpenseRequest{GroupID: "g1", Amount: math.Inf(1), PayerID: "alice", ParticipantIDs: []string{"alice"}},
			wantErr: "amount must be a finite number",
		},
		{
			name:    "no participants",
			msg:     &CreateExpenseRequest{GroupID: "g1", Amount: 1, PayerID: "alice"},
			wantErr: "participant_ids is required",
		},
		{
			name:    "duplicate participants",
			msg:     &CreateExpenseRequest{GroupID: "g1", Amount: 1, PayerID: "alice", ParticipantIDs: []string{"bob", "bob"}},
			wantErr: "participant_ids must not contain duplicates",
		},
		{
			name:    "self settlement",
			msg:     &RecordSettlementRequest{GroupID: "g1", FromMemberID: "bob", ToMemberID: "bob", Amount: 5},
			wantErr: "to_member_id must differ from FromMemberID",
		},
		{
			name:    "add member needs id or name",
			msg:     &AddMemberRequest{GroupID: "g1"},
			wantErr: "member_id is required when Name is empty",
		},
		{
			name: "add member by name",
			msg:  &AddMemberRequest{GroupID: "g1", Name: "Dave"},
		},
		{
			name:    "non-finite balance",
			msg:     &SimplifyBalancesRequest{Balances: map[string]float64{"alice": math.NaN()}},
			wantErr: "must be a finite number",
		},
		{
			name: "empty balances",
			msg:  &SimplifyBalancesRequest{Balances: map[string]float64{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.msg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRequest)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCodec(t *testing.T) {
	codec := Codec{}
	assert.Equal(t, "json", codec.Name())

	t.Run("plain struct", func(t *testing.T) {
		data, err := codec.Marshal(&Payment{FromMemberID: "bob", ToMemberID: "alice", Amount: 30})
		require.NoError(t, err)
		assert.JSONEq(t, `{"from_member_id":"bob","to_member_id":"alice","amount":30}`, string(data))

		var got Payment
		require.NoError(t, codec.Unmarshal(data, &got))
		assert.Equal(t, Payment{FromMemberID: "bob", ToMemberID: "alice", Amount: 30}, got)
	})

	t.Run("protobuf message", func(t *testing.T) {
		data, err := codec.Marshal(&emptypb.Empty{})
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(data))

		require.NoError(t, codec.Unmarshal([]byte(`{}`), &emptypb.Empty{}))
	})

	t.Run("empty body", func(t *testing.T) {
		var req GetGroupRequest
		require.NoError(t, codec.Unmarshal(nil, &req))
		assert.Empty(t, req.GroupID)
	})
}
