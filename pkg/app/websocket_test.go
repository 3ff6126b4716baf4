package app

import (
	"testing"
	"time"

	"github.com/daybookhq/journal-sync-service/global"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWebsocketServerDefaultPingTimes(t *testing.T) {
	wss := NewWebsocketServer(WebsocketServerConfig{})

	assert.Equal(t, 25*time.Second, wss.config.PingInterval)
	assert.Equal(t, 40*time.Second, wss.config.PingWait)
}

func TestWebsocketServerKeepsConfiguredPingTimes(t *testing.T) {
	wss := NewWebsocketServer(WebsocketServerConfig{
		PingInterval: 30 * time.Second,
		PingWait:     10 * time.Second,
	})

	assert.Equal(t, 30*time.Second, wss.config.PingInterval)
	assert.Equal(t, 10*time.Second, wss.config.PingWait)
}

// PingLoop 必须按原样使用传入的间隔，定时器可以正常创建并随 done 退出
func TestPingLoopAcceptsRealDuration(t *testing.T) {
	if global.Logger == nil {
		global.Logger = zap.NewNop()
	}
	c := &WebsocketClient{done: make(chan struct{})}

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		c.PingLoop(30 * time.Second)
	}()

	close(c.done)

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("PingLoop did not exit after close signal")
	}
}
