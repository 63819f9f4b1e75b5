package tracking

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIp(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1:1234", clientIp(r))
	r.Header.Set("X-Forwarded-For", "1.1.1.1")
	assert.Equal(t, "1.1.1.1", clientIp(r))
	r.Header.Set("X-Real-Ip", "2.2.2.2")
	assert.Equal(t, "2.2.2.2", clientIp(r))
}

func TestToggleEventShape(t *testing.T) {
	rt := &RabbitTracking{chain: "ethereum"}
	data, err := json.Marshal(ToggleEventData{
		BaseEvent:    rt.base("sid", eventToggle),
		CollectionId: "0xabc",
		Key:          "sort",
		Value:        "price",
		Added:        true,
	})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"session_id":"sid","chain":"ethereum","event":2,"collection":"0xabc","key":"sort","value":"price","added":true}`, string(data))
}
