package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastReachesRoomOnly(t *testing.T) {
	h := NewHub()
	a := NewClient("u1", "TENANT")
	b := NewClient("u2", "LANDLORD")
	outsider := NewClient("u3", "VENDOR")
	h.Join("m1", a)
	h.Join("m1", b)
	h.Join("m2", outsider)
	assert.Equal(t, 2, h.ClientCount("m1"))

	h.Broadcast("m1", map[string]string{"type": "message", "message": "hi"})

	for _, c := range []*Client{a, b} {
		select {
		case got := <-c.Send:
			assert.JSONEq(t, `{"type":"message","message":"hi"}`, string(got))
		default:
			t.Fatalf("client %s missed the broadcast", c.UserID)
		}
	}
	assert.Len(t, outsider.Send, 0)
}

func TestHub_BroadcastToSkipsNonParticipants(t *testing.T) {
	h := NewHub()
	landlord := NewClient("l1", "LANDLORD")
	vendor := NewClient("v1", "VENDOR")
	tenant := NewClient("t1", "TENANT")
	admin := NewClient("a1", "ADMIN")
	for _, c := range []*Client{landlord, vendor, tenant, admin} {
		h.Join("m1", c)
	}

	h.BroadcastTo("m1", map[string]string{"message": "quote"}, "l1", "v1")

	assert.Len(t, landlord.Send, 1)
	assert.Len(t, vendor.Send, 1)
	assert.Len(t, admin.Send, 1)
	assert.Len(t, tenant.Send, 0)
}

func TestHub_LeaveDropsEmptyRoom(t *testing.T) {
	h := NewHub()
	c := NewClient("u1", "TENANT")
	h.Join("m1", c)
	h.Leave("m1", c)
	assert.Equal(t, 0, h.ClientCount("m1"))
	h.mu.RLock()
	_, ok := h.rooms["m1"]
	h.mu.RUnlock()
	assert.False(t, ok)

	h.Leave("never-joined", c)
}

func TestClient_CloseIsIdempotent(t *testing.T) {
	h := NewHub()
	c := NewClient("u1", "TENANT")
	h.Join("m1", c)
	c.Close()
	c.Close()

	// Delivery to a closed client must not panic.
	require.NotPanics(t, func() { h.Broadcast("m1", "late") })
	_, open := <-c.Send
	assert.False(t, open)
}

func TestHub_FullBufferDropsMessage(t *testing.T) {
	h := NewHub()
	c := &Client{UserID: "u1", Send: make(chan []byte, 1)}
	h.Join("m1", c)
	h.Broadcast("m1", 1)
	h.Broadcast("m1", 2)
	assert.Len(t, c.Send, 1)
	assert.Equal(t, "1", string(<-c.Send))
}
