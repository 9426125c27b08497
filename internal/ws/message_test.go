package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage(TypeSessionInfo, map[string]string{"code": "ABCD"})
	require.NoError(t, err)
	assert.Equal(t, TypeSessionInfo, msg.Type)

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"session_info","data":{"code":"ABCD"}}`, string(data))
}

func TestNewMessage_Unmarshalable(t *testing.T) {
	_, err := NewMessage(TypeEvent, make(chan int))
	assert.Error(t, err)
}

func TestNewErrorMessage(t *testing.T) {
	msg := NewErrorMessage("session not found")
	assert.Equal(t, TypeError, msg.Type)

	var payload ErrorMessage
	require.NoError(t, json.Unmarshal(msg.Data, &payload))
	assert.Equal(t, "session not found", payload.Message)
}

func TestMessage_NoData(t *testing.T) {
	var msg Message
	require.NoError(t, json.Unmarshal([]byte(`{"type":"possess"}`), &msg))
	assert.Equal(t, TypePossess, msg.Type)
	assert.Empty(t, msg.Data)
}
